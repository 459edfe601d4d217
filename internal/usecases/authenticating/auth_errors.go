package authenticating

import "errors"

// Erros específicos para o contexto de autenticação
var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrNotConfigured      = errors.New("operator credentials not configured")
)
