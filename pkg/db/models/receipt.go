package models

import (
	"time"

	"github.com/angelmondragon/mixtrack-backend/pkg/enums"
)

// Receipt is an incoming batch of raw material. Status is derived from the
// receipt's mixes and is only written by the status cascade.
type Receipt struct {
	ID          uint                `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Date        string              `gorm:"column:date;type:varchar(10);not null;index:receipts_date_idx" json:"date"`
	Folio       string              `gorm:"column:folio;type:text;not null" json:"folio"`
	Kind        enums.ReceiptKind   `gorm:"column:kind;type:text;not null" json:"kind"`
	Sap         string              `gorm:"column:sap;type:text;not null" json:"sap"`
	Description *string             `gorm:"column:description;type:text" json:"description"`
	Status      enums.ReceiptStatus `gorm:"column:status;type:text;not null;default:pending" json:"status"`
	Mixes       []Mix               `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE" json:"mixes,omitempty"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Receipt) TableName() string { return "receipts" }
