package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"storefront/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generatedCatalog(names []string, cents []int64, stocks []int) []domain.Product {
	n := min(len(names), len(cents), len(stocks))
	products := make([]domain.Product, 0, n)
	for i := 0; i < n; i++ {
		products = append(products, domain.Product{
			ID:          fmt.Sprintf("p%d", i),
			Name:        names[i],
			Description: "Description of " + names[i],
			Price:       decimal.New(cents[i], -2),
			Features:    []string{"feature"},
			Stock:       stocks[i],
		})
	}
	return products
}

func TestProperty_FindByIDPreservesAttributes(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every catalog product is found unchanged", prop.ForAll(
		func(names []string, cents []int64, stocks []int) bool {
			products := generatedCatalog(names, cents, stocks)
			repo := NewProductRepository(products)

			for _, want := range products {
				got, err := repo.FindByID(context.Background(), want.ID)
				if err != nil {
					t.Logf("FAIL: Failed to find product %s: %v", want.ID, err)
					return false
				}
				if got.Name != want.Name || got.Description != want.Description ||
					!got.Price.Equal(want.Price) || got.Stock != want.Stock {
					t.Logf("FAIL: attribute mismatch. Expected %+v, got %+v", want, got)
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.RegexMatch(`[A-Za-z0-9 ]{3,50}`)),
		gen.SliceOf(gen.Int64Range(1, 999999)),
		gen.SliceOf(gen.IntRange(0, 1000)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_PaginationCoversCatalog(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("walking all pages yields each product once", prop.ForAll(
		func(names []string, pageSize int) bool {
			stocks := make([]int, len(names))
			cents := make([]int64, len(names))
			repo := NewProductRepository(generatedCatalog(names, cents, stocks))

			seen := map[string]int{}
			total := -1
			for page := 1; ; page++ {
				products, count, err := repo.List(context.Background(), page, pageSize, "", SortOrderAsc)
				if err != nil {
					return false
				}
				total = count
				if len(products) == 0 {
					break
				}
				if len(products) > pageSize {
					return false
				}
				for _, p := range products {
					seen[p.ID]++
				}
			}

			if total != len(names) || len(seen) != len(names) {
				return false
			}
			for _, n := range seen {
				if n != 1 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ListSortsByPrice(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("price sort is monotonic in both directions", prop.ForAll(
		func(cents []int64) bool {
			names := make([]string, len(cents))
			stocks := make([]int, len(cents))
			repo := NewProductRepository(generatedCatalog(names, cents, stocks))

			asc, _, _ := repo.List(context.Background(), 1, 0, "price", SortOrderAsc)
			desc, _, _ := repo.List(context.Background(), 1, 0, "price", SortOrderDesc)
			for i := 1; i < len(asc); i++ {
				if asc[i].Price.LessThan(asc[i-1].Price) || desc[i].Price.GreaterThan(desc[i-1].Price) {
					return false
				}
			}
			return len(asc) == len(cents) && len(desc) == len(cents)
		},
		gen.SliceOf(gen.Int64Range(0, 100000)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_SearchResultsContainQuery(t *testing.T) {
	repo := NewProductRepository(DefaultProducts())
	properties := gopter.NewProperties(nil)

	properties.Property("every hit mentions the query", prop.ForAll(
		func(query string) bool {
			products, total, err := repo.Search(context.Background(), query, 1, 0)
			if err != nil || total != len(products) {
				return false
			}
			needle := strings.ToLower(strings.TrimSpace(query))
			for _, p := range products {
				if !strings.Contains(strings.ToLower(p.Name), needle) &&
					!strings.Contains(strings.ToLower(p.Description), needle) {
					return false
				}
			}
			return true
		},
		gen.OneConstOf("watch", "BATTERY", "speaker", "noise", "zzz", " gps "),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestCatalogIsReadOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(DefaultProducts())

	p, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	p.Stock = 0
	p.Features[0] = "changed"

	again, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 5, again.Stock)
	assert.Equal(t, "Active Noise Cancellation", again.Features[0])
}

func TestFindByIDUnknown(t *testing.T) {
	repo := NewProductRepository(DefaultProducts())

	_, err := repo.FindByID(context.Background(), "42")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSearchEmptyQueryListsAll(t *testing.T) {
	repo := NewProductRepository(DefaultProducts())

	products, total, err := repo.Search(context.Background(), "   ", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, products, 3)
}

func TestShippingRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewShippingRepository(DefaultShippingOptions())

	options, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "standard", options[0].ID)

	express, err := repo.FindByID(ctx, "express")
	require.NoError(t, err)
	assert.Equal(t, "12.99", express.Price.StringFixed(2))

	_, err = repo.FindByID(ctx, "overnight")
	assert.ErrorIs(t, err, ErrShippingOptionNotFound)
}
