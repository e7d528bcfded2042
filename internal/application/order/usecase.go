package order

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/netyark/mall-api/internal/application/dto"
	"github.com/netyark/mall-api/internal/application/inventory"
	"github.com/netyark/mall-api/internal/domain"
	"github.com/netyark/mall-api/internal/domain/entity"
	"github.com/netyark/mall-api/internal/domain/repository"
)

// UseCase places and transitions orders. Stock moves with the order inside one
// transaction: placement decrements every line or none, and the transition
// into cancelled restores every surviving line's stock exactly once.
type UseCase struct {
	txRunner inventory.TxRunner
	stock    *inventory.StockUseCase
	orders   repository.OrderRepository
	ledger   repository.StockLedgerRepository
}

// NewUseCase builds the use case. orders and ledger are pool-bound
// repositories used for reads.
func NewUseCase(
	txRunner inventory.TxRunner,
	stock *inventory.StockUseCase,
	orders repository.OrderRepository,
	ledger repository.StockLedgerRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, stock: stock, orders: orders, ledger: ledger}
}

// Create places an order: every line is validated and decremented inside one
// transaction, with a sale ledger entry per line. Any failing line rolls the
// whole order back.
func (uc *UseCase) Create(ctx context.Context, adminID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	ord := &entity.Order{
		ID:           uuid.New().String(),
		CustomerName: strings.TrimSpace(in.CustomerName),
		Status:       entity.OrderStatusPending,
		Total:        decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.StockLedgerRepository,
		orderRepo repository.OrderRepository,
	) error {
		for _, item := range in.Items {
			product, err := uc.stock.RecordSaleInTx(productRepo, ledgerRepo, item.ProductID, item.Quantity, adminID, ord.ID, now)
			if err != nil {
				return err
			}
			ord.Items = append(ord.Items, entity.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    item.Quantity,
			})
			ord.Total = ord.Total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		return orderRepo.Create(ord)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(ord), nil
}

// UpdateStatus transitions an order. Setting the same status again is a no-op;
// a cancelled order accepts no further transitions. Only the specific
// transition into cancelled triggers the stock reversal, so it cannot run twice.
func (uc *UseCase) UpdateStatus(ctx context.Context, adminID, orderID, status string) (*dto.OrderResponse, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.OrderResponse
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.StockLedgerRepository,
		orderRepo repository.OrderRepository,
	) error {
		ord, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if ord == nil {
			return domain.ErrNotFound
		}
		if ord.Status == status {
			out = toOrderResponse(ord)
			return nil
		}
		if ord.Status == entity.OrderStatusCancelled {
			return domain.ErrConflict
		}
		if status == entity.OrderStatusCancelled {
			now := time.Now()
			for _, item := range ord.Items {
				// Missing products are skipped inside RecordReturnInTx.
				if err := uc.stock.RecordReturnInTx(productRepo, ledgerRepo, item.ProductID, item.Quantity, adminID, ord.ID, now); err != nil {
					return err
				}
			}
		}
		if err := orderRepo.UpdateStatus(ord.ID, status); err != nil {
			return err
		}
		ord.Status = status
		ord.UpdatedAt = time.Now()
		out = toOrderResponse(ord)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns one order with the sale/return ledger entries it produced.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	ord, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	out := toOrderResponse(ord)
	entries, err := uc.ledger.ListByOrder(ord.ID)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		out.StockMovements = append(out.StockMovements, inventory.ToLedgerEntry(e))
	}
	return out, nil
}

// List returns orders, optionally filtered by status.
func (uc *UseCase) List(ctx context.Context, status string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	if status != "" && !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.orders.List(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		})
	}
	return &dto.OrderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Status:       o.Status,
		Items:        items,
		Total:        o.Total,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
