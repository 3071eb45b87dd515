package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ProductModel mirrors the 'products' table. IDs are assigned by the catalog
// service, not the database, so they stay stable across store backends.
type ProductModel struct {
	ID                 string          `gorm:"type:varchar(64);primaryKey"`
	Name               string          `gorm:"type:varchar(255);not null"`
	ShortDescription   string          `gorm:"type:text"`
	LongDescription    string          `gorm:"type:text"`
	Price              decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Discount           int             `gorm:"not null;default:0"`
	Stock              int             `gorm:"not null;default:0"`
	Image              string          `gorm:"type:text"`
	MetaTags           datatypes.JSONSlice[string]
	Category           string `gorm:"type:varchar(100);index"`
	Brand              string `gorm:"type:varchar(100)"`
	ExternalProductRef string `gorm:"type:varchar(255)"`
	ExternalPriceRef   string `gorm:"type:varchar(255)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
