// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

package api

// Request structs with validation tags for go-playground/validator.
// Handlers populate these from query parameters and run validateRequest
// before touching the database.

// ListRequest covers paginated listing endpoints.
type ListRequest struct {
	Limit  int `validate:"min=1,max=1000"`
	Offset int `validate:"min=0"`
}

// ProductListRequest adds the product price range filter.
// Price bounds are pointers so an absent bound is not validated.
type ProductListRequest struct {
	Limit    int      `validate:"min=1,max=1000"`
	Offset   int      `validate:"min=0"`
	MinPrice *float64 `validate:"omitempty,gte=0"`
	MaxPrice *float64 `validate:"omitempty,gte=0"`
}

// RecommendRequest covers the recommendation endpoint.
type RecommendRequest struct {
	ProductID int `validate:"min=1"`
	Limit     int `validate:"min=1,max=50"`
}
