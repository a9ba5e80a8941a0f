// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

// Package models defines the entity and response types served by the API.
//
// Entities are immutable once loaded: the dataset is bulk-imported from flat
// files at startup and is read-only for the lifetime of the serving process.
package models

// Customer is a business customer account.
type Customer struct {
	CustomerID   int    `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Industry     string `json:"industry"`
	Region       string `json:"region"`
	JoinDate     string `json:"join_date"`
}

// Product is a sellable catalog item. SalesPrice is expected to be >= CostPrice
// but this is not enforced at load time.
type Product struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	CostPrice   float64 `json:"cost_price"`
	SalesPrice  float64 `json:"sales_price"`
}

// Sale is a line item within a transaction. Multiple rows may share a
// TransactionID when several products were bought together.
type Sale struct {
	TransactionID   int     `json:"transaction_id"`
	CustomerID      int     `json:"customer_id"`
	ProductID       int     `json:"product_id"`
	Quantity        int     `json:"quantity"`
	SaleAmount      float64 `json:"sale_amount"`
	TransactionDate *string `json:"transaction_date"`
}

// Ticket is a support ticket raised by a customer against a product.
// ResolutionDate is nil while the ticket is unresolved. Status values
// "Open" and "In Progress" count as unresolved for aggregation.
type Ticket struct {
	TicketID       int     `json:"ticket_id"`
	CustomerID     int     `json:"customer_id"`
	ProductID      int     `json:"product_id"`
	IssueType      string  `json:"issue_type"`
	Status         string  `json:"status"`
	CreationDate   string  `json:"creation_date"`
	ResolutionDate *string `json:"resolution_date"`
	SentimentScore float64 `json:"sentiment_score"`
}

// Supplier links a supplier to one product it supplies. A supplier appears
// once per supplied product; there is no uniqueness constraint across
// (supplier_id, product_id).
type Supplier struct {
	SupplierID       int     `json:"supplier_id"`
	SupplierName     string  `json:"supplier_name"`
	ProductID        int     `json:"product_id"`
	LeadTimeDays     int     `json:"lead_time_days"`
	ReliabilityScore float64 `json:"reliability_score"`
}

// OpenTicketStatuses are the ticket statuses treated as unresolved by the
// aggregation and dashboard queries.
var OpenTicketStatuses = []string{"Open", "In Progress"}
