package model

import (
	"time"

	"darkstore/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderModel mirrors the 'orders' table. PostgreSQL generates UUIDs via
// uuid_generate_v7(). The unique index on ExternalSessionRef makes webhook
// replays a constraint violation instead of a duplicate order.
type OrderModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ExternalSessionRef string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	ExternalPaymentRef string    `gorm:"type:varchar(255)"`
	CustomerEmail      string    `gorm:"type:varchar(255);index"`
	CustomerName       string    `gorm:"type:varchar(255)"`
	CustomerPhone      string    `gorm:"type:varchar(64)"`
	ShippingAddress    datatypes.JSONType[entity.Address]
	BillingAddress     datatypes.JSONType[entity.Address]
	Items              datatypes.JSONType[[]entity.OrderItem]
	Total              decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency           string          `gorm:"type:varchar(8);not null"`
	Status             string          `gorm:"type:varchar(32);not null"`
	Fulfillment        string          `gorm:"type:varchar(32);not null"`
	PaymentStatus      string          `gorm:"type:varchar(32)"`
	Metadata           datatypes.JSONType[map[string]string]
	CreatedAt          time.Time `gorm:"index"`
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
