package receipts

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/mixtrack-backend/pkg/db/models"
	"github.com/angelmondragon/mixtrack-backend/pkg/enums"
)

// Repository encapsulates receipt persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a receipt repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts the receipt together with its Mixes.
func (r *Repository) Create(ctx context.Context, receipt *models.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

// FindByID loads a receipt without its mixes.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := r.db.WithContext(ctx).First(&receipt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

// FindWithMixes loads a receipt and its mixes ordered by id.
func (r *Repository) FindWithMixes(ctx context.Context, id uint) (*models.Receipt, error) {
	var receipt models.Receipt
	err := r.db.WithContext(ctx).
		Preload("Mixes", func(q *gorm.DB) *gorm.DB { return q.Order("mixes.id ASC") }).
		First(&receipt, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// List returns receipts matching filter, most recent date first. Receipts
// sharing a date keep insertion order.
func (r *Repository) List(ctx context.Context, filter Filter) ([]models.Receipt, error) {
	var rows []models.Receipt
	err := r.db.WithContext(ctx).
		Model(&models.Receipt{}).
		Scopes(filter.Scope("receipts")).
		Order("receipts.date DESC").
		Order("receipts.id ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListIDs returns every receipt id in ascending order.
func (r *Repository) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Receipt{}).
		Order("id ASC").
		Pluck("id", &ids).
		Error
	return ids, err
}

// Exists reports whether a receipt with id is stored.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Receipt{}).
		Where("id = ?", id).
		Count(&count).
		Error
	return count > 0, err
}

// Update patches columns on the receipt and returns the affected row count.
func (r *Repository) Update(ctx context.Context, id uint, columns map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Receipt{}).
		Where("id = ?", id).
		Updates(columns)
	return res.RowsAffected, res.Error
}

// Delete removes the receipt; mixes go with it through the foreign key.
func (r *Repository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Receipt{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// Touch bumps updated_at on the receipt row. Inside a transaction it is the
// write that locks the row for the rest of the cascade. It reports false when
// the receipt does not exist.
func (r *Repository) Touch(ctx context.Context, id uint, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Receipt{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", at)
	return res.RowsAffected > 0, res.Error
}

// CountMixes returns the total and pending mix counts of a receipt.
func (r *Repository) CountMixes(ctx context.Context, receiptID uint) (total, pending int64, err error) {
	var row struct {
		Total   int64
		Pending int64
	}
	err = r.db.WithContext(ctx).
		Model(&models.Mix{}).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending", enums.MixStatusPending).
		Where("receipt_id = ?", receiptID).
		Scan(&row).
		Error
	return row.Total, row.Pending, err
}

// SetStatus writes the derived receipt status.
func (r *Repository) SetStatus(ctx context.Context, id uint, status enums.ReceiptStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Receipt{}).
		Where("id = ?", id).
		UpdateColumn("status", status).
		Error
}
