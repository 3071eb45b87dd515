package impl

import (
	"context"
	"sort"

	"darkstore/internal/domain/entity"
	"darkstore/internal/domain/repository"
	"darkstore/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// analyticsService implements the AnalyticsUsecase interface. All metrics are
// derived from recorded orders at request time; nothing is precomputed.
type analyticsService struct {
	orderRepo repository.OrderRepository
}

// AnalyticsServiceParams holds dependencies for analyticsService, injected by Fx.
type AnalyticsServiceParams struct {
	fx.In

	OrderRepo repository.OrderRepository
}

// NewAnalyticsService is the constructor for analyticsService.
func NewAnalyticsService(params AnalyticsServiceParams) usecase.AnalyticsUsecase {
	return &analyticsService{
		orderRepo: params.OrderRepo,
	}
}

// Overview aggregates completed orders into the dashboard summary. Cancelled
// orders are excluded from revenue but pending ones count; they have been
// paid and are merely awaiting reconciliation.
func (srv *analyticsService) Overview(ctx context.Context) (*usecase.AnalyticsOverview, error) {
	orders, err := srv.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	type monthAgg struct {
		sales     decimal.Decimal
		orders    int
		customers map[string]bool
	}
	type productAgg struct {
		name    string
		units   int
		revenue decimal.Decimal
	}

	months := map[string]*monthAgg{}
	products := map[string]*productAgg{}
	allCustomers := map[string]bool{}
	totalRevenue := decimal.Zero
	totalOrders := 0

	for _, order := range orders {
		if order.Status == entity.OrderStatusCancelled {
			continue
		}

		totalOrders++
		totalRevenue = totalRevenue.Add(order.Total)
		if order.CustomerEmail != "" {
			allCustomers[order.CustomerEmail] = true
		}

		monthKey := order.CreatedAt.UTC().Format("2006-01")
		agg, ok := months[monthKey]
		if !ok {
			agg = &monthAgg{sales: decimal.Zero, customers: map[string]bool{}}
			months[monthKey] = agg
		}
		agg.orders++
		agg.sales = agg.sales.Add(order.Total)
		if order.CustomerEmail != "" {
			agg.customers[order.CustomerEmail] = true
		}

		for _, item := range order.Items {
			key := item.ProductID
			if key == "" {
				key = item.ProductName
			}
			pAgg, ok := products[key]
			if !ok {
				pAgg = &productAgg{name: item.ProductName, revenue: decimal.Zero}
				products[key] = pAgg
			}
			pAgg.units += item.Quantity
			pAgg.revenue = pAgg.revenue.Add(item.LineTotal)
		}
	}

	salesData := make([]usecase.MonthlySales, 0, len(months))
	for month, agg := range months {
		salesData = append(salesData, usecase.MonthlySales{
			Month:     month,
			Sales:     agg.sales.InexactFloat64(),
			Orders:    agg.orders,
			Customers: len(agg.customers),
		})
	}
	sort.Slice(salesData, func(i, j int) bool {
		return salesData[i].Month < salesData[j].Month
	})

	topProducts := make([]usecase.TopProduct, 0, len(products))
	for id, agg := range products {
		topProducts = append(topProducts, usecase.TopProduct{
			ProductID: id,
			Name:      agg.name,
			Units:     agg.units,
			Revenue:   agg.revenue.InexactFloat64(),
		})
	}
	sort.Slice(topProducts, func(i, j int) bool {
		if topProducts[i].Revenue != topProducts[j].Revenue {
			return topProducts[i].Revenue > topProducts[j].Revenue
		}

		return topProducts[i].Name < topProducts[j].Name
	})
	if len(topProducts) > 5 {
		topProducts = topProducts[:5]
	}

	return &usecase.AnalyticsOverview{
		TotalRevenue:   totalRevenue.InexactFloat64(),
		TotalOrders:    totalOrders,
		TotalCustomers: len(allCustomers),
		SalesData:      salesData,
		TopProducts:    topProducts,
	}, nil
}
