package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/order"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrInvalidOrder = errors.New("invalid order data")
)

// ValidationError carries every failed order rule message
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidOrder, strings.Join(e.Errors, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidOrder
}

// Quote is the price breakdown shown before an order is placed
type Quote struct {
	Items          domain.Cart            `json:"items"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	ShippingOption *domain.ShippingOption `json:"shipping_option"`
	ShippingCost   decimal.Decimal        `json:"shipping_cost"`
	Total          decimal.Decimal        `json:"total"`
}

// CheckoutService turns the current cart and delivery data into an order
type CheckoutService interface {
	Quote(ctx context.Context, shippingOptionID string) (*Quote, error)
	PlaceOrder(ctx context.Context, data domain.OrderData) (*domain.Order, error)
}

type checkoutService struct {
	carts    *cart.Manager
	shipping repository.ShippingRepository
	ids      *order.IDGenerator
	delay    time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// CheckoutOption configures the checkout service
type CheckoutOption func(*checkoutService)

// WithDelay sets the simulated submission delay
func WithDelay(d time.Duration) CheckoutOption {
	return func(s *checkoutService) {
		s.delay = d
	}
}

// WithClock sets the time source for order timestamps and IDs
func WithClock(now func() time.Time) CheckoutOption {
	return func(s *checkoutService) {
		s.now = now
	}
}

// NewCheckoutService creates a new instance of CheckoutService
func NewCheckoutService(
	carts *cart.Manager,
	shipping repository.ShippingRepository,
	logger *zap.Logger,
	opts ...CheckoutOption,
) CheckoutService {
	s := &checkoutService{
		carts:    carts,
		shipping: shipping,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ids = order.NewIDGenerator(s.now)
	return s
}

// Quote prices the current cart with the given shipping option
func (s *checkoutService) Quote(ctx context.Context, shippingOptionID string) (*Quote, error) {
	option, err := s.shipping.FindByID(ctx, shippingOptionID)
	if err != nil {
		return nil, err
	}

	items := s.carts.Load(ctx)
	subtotal := cart.Total(items)

	return &Quote{
		Items:          items,
		Subtotal:       subtotal,
		ShippingOption: option,
		ShippingCost:   option.Price,
		Total:          subtotal.Add(option.Price),
	}, nil
}

// PlaceOrder validates data, simulates submission, clears the cart and
// returns the confirmed order. Orders are not stored anywhere.
func (s *checkoutService) PlaceOrder(ctx context.Context, data domain.OrderData) (*domain.Order, error) {
	if res := order.Validate(data); !res.Valid {
		return nil, &ValidationError{Errors: res.Errors}
	}

	items := s.carts.Load(ctx)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	option, err := s.shipping.FindByID(ctx, data.ShippingOption)
	if err != nil {
		return nil, fmt.Errorf("failed to find shipping option: %w", err)
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	subtotal := cart.Total(items)
	o := &domain.Order{
		ID:           s.ids.Generate(),
		OrderData:    data,
		Items:        make([]domain.OrderItem, 0, len(items)),
		Subtotal:     subtotal,
		ShippingCost: option.Price,
		Total:        subtotal.Add(option.Price),
		CreatedAt:    s.now().UTC(),
	}
	for _, line := range items {
		o.Items = append(o.Items, domain.OrderItem{
			ID:       line.ID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}

	s.logger.Info("Purchase",
		zap.String("order_id", o.ID),
		zap.String("total", o.Total.StringFixed(2)),
		zap.Int("item_count", cart.ItemCount(items)),
		zap.Any("items", o.Items),
	)

	s.carts.Clear(ctx)
	return o, nil
}

// wait blocks for the simulated submission delay
func (s *checkoutService) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("checkout interrupted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
