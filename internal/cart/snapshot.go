package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/storage"
)

type loadStatus int

const (
	statusLoaded loadStatus = iota
	statusAbsent
	statusCorrupt
	statusUnavailable
)

func (s loadStatus) String() string {
	switch s {
	case statusLoaded:
		return "loaded"
	case statusAbsent:
		return "absent"
	case statusCorrupt:
		return "corrupt"
	case statusUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// loadResult is what the substrate gave back for the cart key. Cart is
// only meaningful when status is statusLoaded.
type loadResult struct {
	cart   domain.Cart
	status loadStatus
	err    error
}

func readSnapshot(ctx context.Context, store storage.Store, key string) loadResult {
	raw, err := store.Get(ctx, key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return loadResult{status: statusAbsent}
	case errors.Is(err, storage.ErrUnavailable):
		return loadResult{status: statusUnavailable, err: err}
	case err != nil:
		// A substrate that errors on read is treated like a corrupt value.
		return loadResult{status: statusCorrupt, err: err}
	}

	c, err := decode(raw)
	if err != nil {
		return loadResult{status: statusCorrupt, err: err}
	}
	return loadResult{cart: c, status: statusLoaded}
}

func encode(c domain.Cart) (string, error) {
	if c == nil {
		c = domain.Cart{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode cart: %w", err)
	}
	return string(data), nil
}

// decode parses a stored snapshot. Anything that is not an array of lines
// with a non-empty id and a positive quantity is rejected as a whole.
func decode(raw string) (domain.Cart, error) {
	var c domain.Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	if c == nil {
		return nil, errors.New("failed to decode cart: not an array")
	}

	seen := make(map[string]struct{}, len(c))
	for _, line := range c {
		if line.ID == "" {
			return nil, errors.New("failed to decode cart: line without id")
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("failed to decode cart: line %s has quantity %d", line.ID, line.Quantity)
		}
		if _, dup := seen[line.ID]; dup {
			return nil, fmt.Errorf("failed to decode cart: duplicate line %s", line.ID)
		}
		seen[line.ID] = struct{}{}
	}
	return c, nil
}
