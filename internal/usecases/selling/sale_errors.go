package selling

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de vendas
var (
	// Erros de validação e busca
	ErrSaleNotFound    = errors.New("sale not found")
	ErrInvalidSaleData = errors.New("invalid sale data")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
)

// ValidationError descreve a primeira regra de validação violada.
// Sempre ocorre antes de qualquer mutação chegar ao banco.
type ValidationError struct {
	Field   string // Campo inválido
	Message string // Mensagem voltada ao operador
}

// Error implementa a interface error
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap permite errors.Is(err, ErrInvalidSaleData)
func (e *ValidationError) Unwrap() error {
	return ErrInvalidSaleData
}

// NewValidationError cria um novo ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// SaleError é um erro com contexto adicional para operações de venda
type SaleError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	SaleID  int    // ID da venda envolvida (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *SaleError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *SaleError) Unwrap() error {
	return e.Err
}

// NewSaleError cria um novo SaleError
func NewSaleError(err error, code string, details string) *SaleError {
	return &SaleError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewSaleErrorWithID cria um novo SaleError com o ID da venda
func NewSaleErrorWithID(err error, code string, saleID int, details string) *SaleError {
	return &SaleError{
		Err:     err,
		Code:    code,
		SaleID:  saleID,
		Details: details,
	}
}
