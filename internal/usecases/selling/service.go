package selling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-manager-api/infrastructure/repository"
	"github.com/vfg2006/sales-manager-api/internal/domain"
	"github.com/vfg2006/sales-manager-api/pkg/apiErrors"
)

const maxNameLength = 100

// CreateSaleInput são os dados brutos de uma nova venda.
// SoldAt nulo assume o horário da criação.
type CreateSaleInput struct {
	Name      string     `json:"name"`
	UnitPrice float64    `json:"unit_price"`
	Quantity  int        `json:"quantity"`
	SoldAt    *time.Time `json:"sold_at,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

// UpdateSaleInput atualiza apenas os campos presentes (nil = manter).
type UpdateSaleInput struct {
	Name      *string    `json:"name,omitempty"`
	UnitPrice *float64   `json:"unit_price,omitempty"`
	Quantity  *int       `json:"quantity,omitempty"`
	SoldAt    *time.Time `json:"sold_at,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

// SaleService valida e gerencia o ciclo de vida das vendas.
// Nenhuma mutação chega ao repositório sem passar pelas validações.
type SaleService interface {
	Create(input CreateSaleInput) (*domain.Sale, error)
	CreateBatch(ctx context.Context, inputs []CreateSaleInput) ([]*domain.Sale, error)
	Get(id int) (*domain.Sale, error)
	ListAll() ([]*domain.Sale, error)
	Update(id int, input UpdateSaleInput) (*domain.Sale, error)
	Delete(id int) error
	SearchByName(substring string) ([]*domain.Sale, error)
	Statistics() (*domain.SalesStatistics, error)
}

type Service struct {
	saleRepo repository.SaleRepository
}

func NewService(saleRepo repository.SaleRepository) SaleService {
	return &Service{
		saleRepo: saleRepo,
	}
}

func (s *Service) Create(input CreateSaleInput) (*domain.Sale, error) {
	sale, err := buildSale(input)
	if err != nil {
		return nil, err
	}

	sale, err = s.saleRepo.Insert(sale)
	if err != nil {
		logrus.WithError(err).Error("Erro ao inserir venda no banco")
		return nil, NewSaleError(err, apiErrors.ErrDatabaseOperation, "Erro ao criar venda")
	}

	logrus.WithFields(logrus.Fields{
		"sale_id": sale.ID,
		"name":    sale.Name,
	}).Info("Venda criada com sucesso")

	return sale, nil
}

// CreateBatch valida todas as entradas antes de tocar no banco e insere
// o lote em uma única transação: nada é gravado se alguma venda falhar.
func (s *Service) CreateBatch(ctx context.Context, inputs []CreateSaleInput) ([]*domain.Sale, error) {
	if len(inputs) == 0 {
		return nil, NewValidationError("sales", "Lote de vendas vazio")
	}

	sales := make([]*domain.Sale, 0, len(inputs))
	for i, input := range inputs {
		sale, err := buildSale(input)
		if err != nil {
			return nil, fmt.Errorf("venda %d: %w", i+1, err)
		}
		sales = append(sales, sale)
	}

	if err := s.saleRepo.InsertBatch(ctx, sales); err != nil {
		logrus.WithError(err).Error("Erro ao importar lote de vendas")
		return nil, NewSaleError(err, apiErrors.ErrDatabaseOperation, "Erro ao importar vendas")
	}

	logrus.WithField("count", len(sales)).Info("Lote de vendas importado")
	return sales, nil
}

func (s *Service) Get(id int) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		return nil, NewSaleErrorWithID(err, apiErrors.ErrDatabaseOperation, id, "Erro ao buscar venda")
	}

	if sale == nil {
		return nil, ErrSaleNotFound
	}

	return sale, nil
}

func (s *Service) ListAll() ([]*domain.Sale, error) {
	sales, err := s.saleRepo.FindAll()
	if err != nil {
		return nil, NewSaleError(err, apiErrors.ErrDatabaseOperation, "Erro ao listar vendas")
	}

	return sales, nil
}

// Update revalida apenas os campos presentes e aplica tudo em um único
// statement: ou todos os campos entram, ou nenhum.
func (s *Service) Update(id int, input UpdateSaleInput) (*domain.Sale, error) {
	sale, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		sale.Name = name
	}

	if input.UnitPrice != nil {
		if err := validateUnitPrice(*input.UnitPrice); err != nil {
			return nil, err
		}
		sale.UnitPrice = *input.UnitPrice
	}

	if input.Quantity != nil {
		if err := validateQuantity(*input.Quantity); err != nil {
			return nil, err
		}
		sale.Quantity = *input.Quantity
	}

	if input.SoldAt != nil && !input.SoldAt.IsZero() {
		sale.SoldAt = *input.SoldAt
	}

	if input.Notes != nil {
		sale.Notes = normalizeNotes(input.Notes)
	}

	if err := s.saleRepo.Update(sale); err != nil {
		logrus.WithError(err).WithField("sale_id", id).Error("Erro ao atualizar venda")
		return nil, NewSaleErrorWithID(err, apiErrors.ErrDatabaseOperation, id, "Erro ao atualizar venda")
	}

	logrus.WithField("sale_id", id).Info("Venda atualizada com sucesso")
	return sale, nil
}

func (s *Service) Delete(id int) error {
	deleted, err := s.saleRepo.Delete(id)
	if err != nil {
		return NewSaleErrorWithID(err, apiErrors.ErrDatabaseOperation, id, "Erro ao remover venda")
	}

	if !deleted {
		return ErrSaleNotFound
	}

	logrus.WithField("sale_id", id).Info("Venda removida")
	return nil
}

func (s *Service) SearchByName(substring string) ([]*domain.Sale, error) {
	sales, err := s.saleRepo.FindByNameContains(substring)
	if err != nil {
		return nil, NewSaleError(err, apiErrors.ErrDatabaseOperation, "Erro ao buscar vendas por nome")
	}

	return sales, nil
}

func (s *Service) Statistics() (*domain.SalesStatistics, error) {
	sales, err := s.saleRepo.FindAll()
	if err != nil {
		return nil, NewSaleError(err, apiErrors.ErrDatabaseOperation, "Erro ao calcular estatísticas")
	}

	stats := &domain.SalesStatistics{}
	if len(sales) == 0 {
		return stats, nil
	}

	var priceSum float64
	for _, sale := range sales {
		stats.TotalRevenue += sale.Revenue()
		stats.TotalQuantity += sale.Quantity
		priceSum += sale.UnitPrice
	}

	stats.SalesCount = len(sales)
	stats.AveragePrice = priceSum / float64(len(sales))
	stats.AverageQuantity = float64(stats.TotalQuantity) / float64(len(sales))

	return stats, nil
}

// buildSale aplica as validações e monta a venda pronta para inserção.
func buildSale(input CreateSaleInput) (*domain.Sale, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	if err := validateUnitPrice(input.UnitPrice); err != nil {
		return nil, err
	}

	if err := validateQuantity(input.Quantity); err != nil {
		return nil, err
	}

	soldAt := time.Now()
	if input.SoldAt != nil && !input.SoldAt.IsZero() {
		soldAt = *input.SoldAt
	}

	return &domain.Sale{
		Name:      name,
		UnitPrice: input.UnitPrice,
		Quantity:  input.Quantity,
		SoldAt:    soldAt,
		Notes:     normalizeNotes(input.Notes),
	}, nil
}

// Regras de validação, na ordem do contrato: nome não vazio após trim,
// nome com no máximo 100 caracteres, preço > 0, quantidade > 0.
func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", NewValidationError("name", "Nome do produto é obrigatório")
	}

	if len([]rune(name)) > maxNameLength {
		return "", NewValidationError("name", "Nome do produto deve ter no máximo 100 caracteres")
	}

	return name, nil
}

func validateUnitPrice(price float64) error {
	if price <= 0 {
		return NewValidationError("unit_price", "Preço deve ser maior que zero")
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return NewValidationError("quantity", "Quantidade deve ser maior que zero")
	}
	return nil
}

func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}
