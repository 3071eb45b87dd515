package usecase

import (
	"context"
)

// MonthlySales aggregates order activity for one calendar month.
type MonthlySales struct {
	Month     string  `json:"month"`
	Sales     float64 `json:"sales"`
	Orders    int     `json:"orders"`
	Customers int     `json:"customers"`
}

// TopProduct ranks a product by revenue across recorded orders.
type TopProduct struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Units     int     `json:"units"`
	Revenue   float64 `json:"revenue"`
}

// AnalyticsOverview is the dashboard's sales summary.
type AnalyticsOverview struct {
	TotalRevenue   float64        `json:"totalRevenue"`
	TotalOrders    int            `json:"totalOrders"`
	TotalCustomers int            `json:"totalCustomers"`
	SalesData      []MonthlySales `json:"salesData"`
	TopProducts    []TopProduct   `json:"topProducts"`
}

// AnalyticsUsecase derives dashboard metrics from recorded orders.
type AnalyticsUsecase interface {
	Overview(ctx context.Context) (*AnalyticsOverview, error)
}
