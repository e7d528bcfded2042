package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/netyark/mall-api/internal/domain/entity"
	"github.com/netyark/mall-api/internal/domain/repository"
)

var _ repository.StockLedgerRepository = (*StockLedgerRepo)(nil)

const ledgerColumns = "id, product_id, change_type, quantity, previous_stock, new_stock, admin_id, order_id, reason, notes, created_at"

// StockLedgerRepo append-only ledger adapter over PostgreSQL (usable with pool or tx).
type StockLedgerRepo struct {
	q Querier
}

// NewStockLedgerRepository builds the adapter. Pass pool or tx (Querier).
func NewStockLedgerRepository(q Querier) *StockLedgerRepo {
	return &StockLedgerRepo{q: q}
}

// Create persists one ledger entry.
func (r *StockLedgerRepo) Create(entry *entity.StockLedgerEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_ledger (id, product_id, change_type, quantity, previous_stock, new_stock, admin_id, order_id, reason, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ProductID, string(entry.Type), entry.Quantity,
		entry.PreviousStock, entry.NewStock,
		nullIfEmpty(entry.AdminID), nullIfEmpty(entry.OrderID),
		entry.Reason, entry.Notes, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create ledger entry: %w", err)
	}
	return nil
}

// GetByID fetches one entry.
func (r *StockLedgerRepo) GetByID(id string) (*entity.StockLedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	e, err := scanLedgerRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	return e, nil
}

// List returns entries newest first, optionally filtered by change type and date range.
func (r *StockLedgerRepo) List(changeType entity.ChangeType, from, to *time.Time, limit, offset int) ([]*entity.StockLedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger WHERE 1=1`
	var args []any
	pos := 1
	if changeType != "" {
		query += fmt.Sprintf(" AND change_type = $%d", pos)
		args = append(args, string(changeType))
		pos++
	}
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.scanMany(query, args...)
}

// ListByProduct returns one product's entries newest first.
func (r *StockLedgerRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockLedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, productID, limit, offset)
}

// ListByOrder returns the sale/return entries of one order.
func (r *StockLedgerRepo) ListByOrder(orderID string) ([]*entity.StockLedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger WHERE order_id = $1 ORDER BY created_at ASC`
	return r.scanMany(query, orderID)
}

// DeleteByProduct removes a product's entries. Only called as a cascade of
// product deletion, inside the same transaction.
func (r *StockLedgerRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_ledger WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete ledger entries: %w", err)
	}
	return nil
}

func (r *StockLedgerRepo) scanMany(query string, args ...any) ([]*entity.StockLedgerEntry, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLedgerEntry
	for rows.Next() {
		e, err := scanLedgerRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanLedgerRow(row pgx.Row) (*entity.StockLedgerEntry, error) {
	var e entity.StockLedgerEntry
	var changeType string
	var adminID, orderID *string
	err := row.Scan(
		&e.ID, &e.ProductID, &changeType, &e.Quantity,
		&e.PreviousStock, &e.NewStock, &adminID, &orderID,
		&e.Reason, &e.Notes, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Type = entity.ChangeType(changeType)
	if adminID != nil {
		e.AdminID = *adminID
	}
	if orderID != nil {
		e.OrderID = *orderID
	}
	return &e, nil
}
