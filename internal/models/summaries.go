// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

package models

// CustomerSummary is the composite per-customer view combining profile,
// spending, support load and purchasing preference.
//
// AvgSentiment covers only the customer's unresolved tickets and is rounded
// to 2 decimals. FavoriteCategory is "N/A" when the customer has no sales.
type CustomerSummary struct {
	Customer          Customer `json:"customer"`
	TotalSpent        float64  `json:"total_spent"`
	TotalTransactions int      `json:"total_transactions"`
	OpenTickets       int      `json:"open_tickets"`
	AvgSentiment      float64  `json:"avg_sentiment"`
	FavoriteCategory  string   `json:"favorite_category"`
}

// ProductSummary is the composite per-product view combining catalog data,
// revenue and support signals.
//
// Profit = TotalSales - TotalQuantity * CostPrice, exact. AvgSentiment covers
// all of the product's tickets. CommonIssues holds up to 3 issue types ordered
// by descending frequency (possibly empty).
type ProductSummary struct {
	Product       Product  `json:"product"`
	TotalSales    float64  `json:"total_sales"`
	TotalQuantity int      `json:"total_quantity"`
	Profit        float64  `json:"profit"`
	AvgSentiment  float64  `json:"avg_sentiment"`
	CommonIssues  []string `json:"common_issues"`
}

// Recommendation is a single ranked entry of a recommendation result.
// Confidence is in [0,1]: co-occurrence count normalized against the
// strongest co-occurring product, or the constant 0.5 for popularity
// fallback entries.
type Recommendation struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Confidence  float64 `json:"confidence"`
}

// TopProduct is a dashboard entry ranking products by total sale amount.
type TopProduct struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	TotalSales  float64 `json:"total_sales"`
}

// RegionSales is a dashboard entry of sales totals grouped by customer region.
type RegionSales struct {
	Region     string  `json:"region"`
	TotalSales float64 `json:"total_sales"`
}

// TrendPoint is a monthly sales total. Month is formatted YYYY-MM.
type TrendPoint struct {
	Month      string  `json:"month"`
	TotalSales float64 `json:"total_sales"`
}

// DashboardStats is the composite dashboard read. SalesTrend covers the
// entire history, ascending by month, one entry per month with sales.
type DashboardStats struct {
	TotalCustomers int           `json:"total_customers"`
	TotalSales     float64       `json:"total_sales"`
	OpenTickets    int           `json:"open_tickets"`
	TopProducts    []TopProduct  `json:"top_products"`
	SalesByRegion  []RegionSales `json:"sales_by_region"`
	SalesTrend     []TrendPoint  `json:"sales_trend"`
}
