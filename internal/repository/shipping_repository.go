package repository

import (
	"context"

	"storefront/internal/domain"
)

// ShippingRepository defines read access to the shipping options
type ShippingRepository interface {
	List(ctx context.Context) ([]domain.ShippingOption, error)
	FindByID(ctx context.Context, id string) (*domain.ShippingOption, error)
}

type shippingRepository struct {
	options []domain.ShippingOption
}

// NewShippingRepository creates a read-only list of shipping options
func NewShippingRepository(options []domain.ShippingOption) ShippingRepository {
	return &shippingRepository{options: append([]domain.ShippingOption(nil), options...)}
}

func (r *shippingRepository) List(_ context.Context) ([]domain.ShippingOption, error) {
	return append([]domain.ShippingOption{}, r.options...), nil
}

func (r *shippingRepository) FindByID(_ context.Context, id string) (*domain.ShippingOption, error) {
	for _, o := range r.options {
		if o.ID == id {
			option := o
			return &option, nil
		}
	}
	return nil, ErrShippingOptionNotFound
}
