package orders

import (
	"context"
	"fmt"

	"github.com/jayeuse/Inventory-System-sub000/internal/repository"
	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
	"github.com/jayeuse/Inventory-System-sub000/pkg/validator"
	"go.uber.org/zap"
)

const (
	OrdersPath   = "/api/orders/"
	ReceivesPath = "/api/receive-orders/"
)

type OrderService struct {
	orders   repository.Store[models.Order]
	receipts repository.Store[models.ReceiveResult]
	logger   *zap.Logger
}

func NewOrderService(orders repository.Store[models.Order], receipts repository.Store[models.ReceiveResult], logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{orders: orders, receipts: receipts, logger: logger}
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx, nil)
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListAll(ctx, nil)
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.Get(ctx, id)
}

func (s *OrderService) Create(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: please add at least one item to the order", validator.ErrInvalidInput)
	}
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	order, err := s.orders.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.logger.Info("Order created", zap.String("order_id", order.OrderID), zap.Int("items", len(req.Items)))
	return order, nil
}

// BulkReceive checks every line against what is still outstanding on its
// order and posts the whole batch in one request.
func (s *OrderService) BulkReceive(ctx context.Context, req models.ReceiveRequest) (*models.ReceiveResult, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	orders := map[string]*models.Order{}
	// Lines for the same order item share its remaining quantity.
	claimed := map[[2]string]int{}
	total := 0
	for _, line := range req.Items {
		order, ok := orders[line.OrderID]
		if !ok {
			fetched, err := s.orders.Get(ctx, line.OrderID)
			if err != nil {
				return nil, fmt.Errorf("load order %s: %w", line.OrderID, err)
			}
			order = fetched
			orders[line.OrderID] = order
		}
		key := [2]string{line.OrderID, line.OrderItemID}
		claimed[key] += line.QuantityReceived
		cumulative := line
		cumulative.QuantityReceived = claimed[key]
		if err := checkRemaining(order, cumulative); err != nil {
			return nil, err
		}
		total += line.QuantityReceived
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: please enter a received quantity for at least one item", validator.ErrInvalidInput)
	}

	var result models.ReceiveResult
	if err := s.receipts.CollectionAction(ctx, "bulk_receive", req, &result); err != nil {
		return nil, fmt.Errorf("receive orders: %w", err)
	}
	s.logger.Info("Orders received", zap.Int("lines", len(req.Items)), zap.Int("quantity", total))
	return &result, nil
}

func checkRemaining(order *models.Order, line models.ReceiveItem) error {
	for _, item := range order.Items {
		if item.OrderItemID != line.OrderItemID {
			continue
		}
		remaining := item.QuantityOrdered - item.QuantityReceived
		if remaining < 0 {
			remaining = 0
		}
		if line.QuantityReceived > remaining {
			return fmt.Errorf("%w: %s: received quantity %d exceeds remaining %d",
				validator.ErrInvalidInput, item.Label(), line.QuantityReceived, remaining)
		}
		return nil
	}
	return fmt.Errorf("%w: order item %s is not part of order %s", validator.ErrInvalidInput, line.OrderItemID, order.OrderID)
}
