package service

import (
	"context"
	"fmt"

	"github.com/docushop/storefront/internal/core/domain"
	"github.com/docushop/storefront/internal/core/ports"
)

type DashboardService struct {
	accounts ports.AccountRepository
	products ports.ProductRepository
	orders   ports.OrderRepository
}

func NewDashboardService(accounts ports.AccountRepository, products ports.ProductRepository, orders ports.OrderRepository) *DashboardService {
	return &DashboardService{accounts: accounts, products: products, orders: orders}
}

func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var (
		stats domain.DashboardStats
		err   error
	)
	if stats.TotalAccounts, err = s.accounts.Count(ctx); err != nil {
		return nil, fmt.Errorf("count accounts: %w", err)
	}
	if stats.TotalProducts, err = s.products.Count(ctx); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	if stats.TotalOrders, err = s.orders.Count(ctx); err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	if stats.Revenue, err = s.orders.Revenue(ctx); err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	stats.Revenue = stats.Revenue.RoundBank(moneyPlaces)
	return &stats, nil
}
