package catalogs

import (
	"malladmin/internal/domain/catalogs/payment"
	"malladmin/internal/domain/catalogs/purchase"
	"malladmin/internal/domain/catalogs/sale"
	"malladmin/internal/domain/catalogs/tenant"
	"malladmin/internal/metadata"
)

// RecentTransactions is how many payments the dashboard lists.
const RecentTransactions = 5

// Overview declares the dashboard stat cards and the recent payments table.
// Visitor counts and the revenue chart have no backing collection.
func Overview() metadata.OverviewSpec {
	return metadata.OverviewSpec{
		Stats: []metadata.StatSpec{
			{Key: "tenants", Kind: tenant.Kind, Aggregate: metadata.AggregateCount},
			{Key: "revenue", Kind: payment.Kind, Aggregate: metadata.AggregateSum, Field: "amount",
				Where: map[string]string{"status": string(payment.StatusPaid)}},
			{Key: "sales", Kind: sale.Kind, Aggregate: metadata.AggregateSum, Field: "amount"},
			{Key: "purchases", Kind: purchase.Kind, Aggregate: metadata.AggregateCount},
			{Key: "pendingOrders", Kind: purchase.Kind, Aggregate: metadata.AggregateCount,
				Where: map[string]string{"status": string(purchase.StatusPending)}},
			{Key: "purchaseAmount", Kind: purchase.Kind, Aggregate: metadata.AggregateSum, Field: "value"},
		},
		Recent: metadata.RecentSpec{Kind: payment.Kind, DateField: "date", Limit: RecentTransactions},
	}
}
