package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/sales-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-manager-api/internal/domain"
)

const (
	salesTable = "sales"

	saleColumns = "id, name, unit_price, quantity, sold_at, notes, created_at, updated_at"
)

// SaleRepository é o contrato do Record Store consumido pelo serviço de vendas.
// FindAll e FindByNameContains devolvem as vendas da mais recente para a mais
// antiga (sold_at DESC), com empates resolvidos pela ordem de inserção (id ASC)
// — essa ordenação é contrato para quem exibe listas.
type SaleRepository interface {
	Insert(sale *domain.Sale) (*domain.Sale, error)
	InsertBatch(ctx context.Context, sales []*domain.Sale) error
	FindByID(id int) (*domain.Sale, error)
	FindAll() ([]*domain.Sale, error)
	FindByNameContains(substring string) ([]*domain.Sale, error)
	Update(sale *domain.Sale) error
	Delete(id int) (bool, error)
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

func (r *saleRepository) Insert(sale *domain.Sale) (*domain.Sale, error) {
	queryBuilder := squirrel.
		Insert(salesTable).
		Columns("name", "unit_price", "quantity", "sold_at", "notes").
		Values(sale.Name, sale.UnitPrice, sale.Quantity, sale.SoldAt, sale.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&sale.ID, &sale.CreatedAt, &sale.UpdatedAt)
	if err != nil {
		return nil, wrapDBError(err)
	}

	return sale, nil
}

// InsertBatch insere todas as vendas em uma única transação: ou o lote
// inteiro entra, ou nada entra. Os ids e timestamps gerados são escritos
// de volta nos ponteiros recebidos.
func (r *saleRepository) InsertBatch(ctx context.Context, sales []*domain.Sale) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, sale := range sales {
			query, args, err := squirrel.
				Insert(salesTable).
				Columns("name", "unit_price", "quantity", "sold_at", "notes").
				Values(sale.Name, sale.UnitPrice, sale.Quantity, sale.SoldAt, sale.Notes).
				Suffix("RETURNING id, created_at, updated_at").
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			err = tx.QueryRowContext(ctx, query, args...).Scan(&sale.ID, &sale.CreatedAt, &sale.UpdatedAt)
			if err != nil {
				return wrapDBError(err)
			}
		}

		return nil
	})
}

func (r *saleRepository) FindByID(id int) (*domain.Sale, error) {
	query, args, err := squirrel.
		Select(saleColumns).
		From(salesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	sale, err := scanSale(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, wrapDBError(err)
	}

	return sale, nil
}

func (r *saleRepository) FindAll() ([]*domain.Sale, error) {
	return r.findOrdered(squirrel.
		Select(saleColumns).
		From(salesTable))
}

func (r *saleRepository) FindByNameContains(substring string) ([]*domain.Sale, error) {
	return r.findOrdered(squirrel.
		Select(saleColumns).
		From(salesTable).
		Where(squirrel.ILike{"name": fmt.Sprintf("%%%s%%", substring)}))
}

func (r *saleRepository) findOrdered(builder squirrel.SelectBuilder) ([]*domain.Sale, error) {
	query, args, err := builder.
		OrderBy("sold_at DESC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0)
	for rows.Next() {
		sale, err := scanSaleRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}
		sales = append(sales, sale)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return sales, nil
}

// Update persiste todos os campos mutáveis em um único statement,
// mantendo a atualização parcial atômica no nível do serviço.
func (r *saleRepository) Update(sale *domain.Sale) error {
	query, args, err := squirrel.
		Update(salesTable).
		Set("name", sale.Name).
		Set("unit_price", sale.UnitPrice).
		Set("quantity", sale.Quantity).
		Set("sold_at", sale.SoldAt).
		Set("notes", sale.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": sale.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return wrapDBError(err)
	}

	return nil
}

func (r *saleRepository) Delete(id int) (bool, error) {
	query, args, err := squirrel.
		Delete(salesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return false, wrapDBError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected > 0, nil
}

func scanSale(row *sql.Row) (*domain.Sale, error) {
	sale := &domain.Sale{}
	var notes sql.NullString

	err := row.Scan(
		&sale.ID,
		&sale.Name,
		&sale.UnitPrice,
		&sale.Quantity,
		&sale.SoldAt,
		&notes,
		&sale.CreatedAt,
		&sale.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		sale.Notes = &notes.String
	}

	return sale, nil
}

func scanSaleRows(rows *sql.Rows) (*domain.Sale, error) {
	sale := &domain.Sale{}
	var notes sql.NullString

	err := rows.Scan(
		&sale.ID,
		&sale.Name,
		&sale.UnitPrice,
		&sale.Quantity,
		&sale.SoldAt,
		&notes,
		&sale.CreatedAt,
		&sale.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		sale.Notes = &notes.String
	}

	return sale, nil
}

func wrapDBError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("erro ao executar a query: %w", err)
}
