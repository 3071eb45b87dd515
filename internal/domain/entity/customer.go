package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is the ledger record accumulated from orders. Email is the
// natural key; TotalOrders and TotalSpent only ever grow (there is no
// refund-reversal path).
type Customer struct {
	ID              uuid.UUID
	Email           string
	Name            string
	Phone           string
	ShippingAddress Address
	BillingAddress  Address
	TotalOrders     int
	TotalSpent      decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ApplyOrder folds one recorded order into the ledger. Addresses follow a
// last-order-wins policy, not a merge.
func (c *Customer) ApplyOrder(order *Order) {
	c.Name = order.CustomerName
	c.Phone = order.CustomerPhone
	c.ShippingAddress = order.ShippingAddress
	c.BillingAddress = order.BillingAddress
	c.TotalOrders++
	c.TotalSpent = c.TotalSpent.Add(order.Total)
}
