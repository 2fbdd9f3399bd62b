package domain

import "github.com/shopspring/decimal"

// DashboardStats summarises the store for the admin dashboard.
type DashboardStats struct {
	TotalAccounts int64
	TotalProducts int64
	TotalOrders   int64
	// Revenue sums the totals of completed orders.
	Revenue decimal.Decimal
}
