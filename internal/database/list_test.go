// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/contexq/contexq/internal/models"
)

func seedListData(t *testing.T, db *DB) {
	t.Helper()

	insertCustomer(t, db, 1, "Acme", "Tech", "Europe", "2024-01-01")
	insertCustomer(t, db, 2, "Globex", "Retail", "Asia", "2024-02-01")
	insertCustomer(t, db, 3, "Initech", "Tech", "Asia", "2024-03-01")

	insertProduct(t, db, 1, "Widget", "Hardware", 10, 25)
	insertProduct(t, db, 2, "Gadget", "Hardware", 5, 80)
	insertProduct(t, db, 3, "Suite", "Software", 2, 300)

	insertSale(t, db, 1, 1, 1, 1, 25, "2025-01-01")
	insertTicket(t, db, 1, 1, 1, "Defect", "Open", 0.5)
	insertSupplier(t, db, 1, "Partwerks", 1, 12, 0.95)
}

func TestListCustomersFilters(t *testing.T) {
	db := setupTestDB(t)
	seedListData(t, db)
	ctx := context.Background()

	tests := []struct {
		name    string
		filter  CustomerFilter
		wantIDs []int
	}{
		{"no filter", CustomerFilter{}, []int{1, 2, 3}},
		{"industry", CustomerFilter{Industry: "Tech"}, []int{1, 3}},
		{"region", CustomerFilter{Region: "Asia"}, []int{2, 3}},
		{"industry and region", CustomerFilter{Industry: "Tech", Region: "Asia"}, []int{3}},
		{"no match", CustomerFilter{Industry: "Agriculture"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customers, err := db.ListCustomers(ctx, 100, 0, tt.filter)
			if err != nil {
				t.Fatalf("ListCustomers failed: %v", err)
			}
			if len(customers) != len(tt.wantIDs) {
				t.Fatalf("got %d customers, want %d", len(customers), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if customers[i].CustomerID != want {
					t.Errorf("customers[%d].CustomerID = %d, want %d", i, customers[i].CustomerID, want)
				}
			}
		})
	}
}

func TestListCustomersPagination(t *testing.T) {
	db := setupTestDB(t)
	seedListData(t, db)
	ctx := context.Background()

	page, err := db.ListCustomers(ctx, 2, 1, CustomerFilter{})
	if err != nil {
		t.Fatalf("ListCustomers failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("got %d customers, want 2", len(page))
	}
	if page[0].CustomerID != 2 || page[1].CustomerID != 3 {
		t.Errorf("page = [%d, %d], want [2, 3]", page[0].CustomerID, page[1].CustomerID)
	}
}

func TestListProductsPriceRange(t *testing.T) {
	db := setupTestDB(t)
	seedListData(t, db)
	ctx := context.Background()

	minPrice := 30.0
	maxPrice := 100.0
	products, err := db.ListProducts(ctx, 100, 0, ProductFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("got %d products, want 1", len(products))
	}
	if products[0].ProductID != 2 {
		t.Errorf("products[0].ProductID = %d, want 2", products[0].ProductID)
	}
}

func TestListProductsCategory(t *testing.T) {
	db := setupTestDB(t)
	seedListData(t, db)

	products, err := db.ListProducts(context.Background(), 100, 0, ProductFilter{Category: "Software"})
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(products) != 1 || products[0].ProductName != "Suite" {
		t.Errorf("products = %+v, want only Suite", products)
	}
}

func TestListDispatch(t *testing.T) {
	db := setupTestDB(t)
	seedListData(t, db)
	ctx := context.Background()

	tests := []struct {
		entity string
		check  func(t *testing.T, result interface{})
	}{
		{"customers", func(t *testing.T, result interface{}) {
			if got := result.([]models.Customer); len(got) != 3 {
				t.Errorf("got %d customers, want 3", len(got))
			}
		}},
		{"products", func(t *testing.T, result interface{}) {
			if got := result.([]models.Product); len(got) != 3 {
				t.Errorf("got %d products, want 3", len(got))
			}
		}},
		{"sales", func(t *testing.T, result interface{}) {
			if got := result.([]models.Sale); len(got) != 1 {
				t.Errorf("got %d sales, want 1", len(got))
			}
		}},
		{"tickets", func(t *testing.T, result interface{}) {
			if got := result.([]models.Ticket); len(got) != 1 {
				t.Errorf("got %d tickets, want 1", len(got))
			}
		}},
		{"suppliers", func(t *testing.T, result interface{}) {
			got := result.([]models.Supplier)
			if len(got) != 1 {
				t.Fatalf("got %d suppliers, want 1", len(got))
			}
			if got[0].LeadTimeDays != 12 || got[0].ReliabilityScore != 0.95 {
				t.Errorf("supplier = %+v, want lead time 12 and reliability 0.95", got[0])
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.entity, func(t *testing.T) {
			result, err := db.List(ctx, tt.entity, 100, 0)
			if err != nil {
				t.Fatalf("List(%q) failed: %v", tt.entity, err)
			}
			tt.check(t, result)
		})
	}
}

func TestListUnknownEntity(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.List(context.Background(), "invoices", 100, 0)
	if !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("List(invoices) error = %v, want ErrUnknownEntity", err)
	}
}
