// Package storage provides the key-value substrate the cart snapshot is kept in.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when no value is stored under the key
	ErrNotFound = errors.New("key not found")
	// ErrUnavailable is returned when the substrate cannot be used in this environment
	ErrUnavailable = errors.New("storage unavailable")
	// ErrQuotaExceeded is returned by Set when the value does not fit the store's quota
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Store is a string key-value store. Values are replaced whole on Set.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Unavailable is a Store for environments without a local substrate.
// Every call fails with ErrUnavailable.
type Unavailable struct{}

func (Unavailable) Get(context.Context, string) (string, error) { return "", ErrUnavailable }

func (Unavailable) Set(context.Context, string, string) error { return ErrUnavailable }

func (Unavailable) Remove(context.Context, string) error { return ErrUnavailable }
