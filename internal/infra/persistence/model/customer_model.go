package model

import (
	"time"

	"darkstore/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CustomerModel mirrors the 'customers' table. One row per email; order
// recording upserts into it.
type CustomerModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email           string    `gorm:"type:varchar(255);unique;not null"`
	Name            string    `gorm:"type:varchar(255)"`
	Phone           string    `gorm:"type:varchar(64)"`
	ShippingAddress datatypes.JSONType[entity.Address]
	BillingAddress  datatypes.JSONType[entity.Address]
	TotalOrders     int             `gorm:"not null;default:0"`
	TotalSpent      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomerModel) TableName() string {
	return "customers"
}
