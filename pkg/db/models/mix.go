package models

import (
	"time"

	"github.com/angelmondragon/mixtrack-backend/pkg/enums"
)

// Mix is a processing unit of a receipt. DeliveredDate is set exactly when
// Status is delivered.
type Mix struct {
	ID            uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ReceiptID     uint            `gorm:"column:receipt_id;not null;index:mixes_receipt_id_idx" json:"receiptId"`
	Quantity      string          `gorm:"column:quantity;type:text;not null" json:"quantity"`
	Presentation  string          `gorm:"column:presentation;type:text;not null" json:"presentation"`
	NumberOfMix   *int            `gorm:"column:number_of_mix" json:"numberOfMix"`
	Status        enums.MixStatus `gorm:"column:status;type:text;not null;default:pending" json:"status"`
	DeliveredDate *string         `gorm:"column:delivered_date;type:varchar(10)" json:"deliveredDate"`
	Receipt       *Receipt        `gorm:"foreignKey:ReceiptID" json:"receipt,omitempty"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Mix) TableName() string { return "mixes" }

// IsDelivered reports whether the mix has been marked delivered.
func (m Mix) IsDelivered() bool {
	return m.Status == enums.MixStatusDelivered
}
