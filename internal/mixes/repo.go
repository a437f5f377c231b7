package mixes

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/mixtrack-backend/pkg/db/models"
	"github.com/angelmondragon/mixtrack-backend/pkg/enums"
)

// Repository encapsulates mix persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a mix repository bound to the provided gorm DB.
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

// Create inserts the mix alone; the parent receipt is never upserted.
func (r *Repository) Create(ctx context.Context, mix *models.Mix) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(mix).Error
}

// FindByID loads a mix without its receipt.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Mix, error) {
	var mix models.Mix
	if err := r.db.WithContext(ctx).First(&mix, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &mix, nil
}

// FindWithReceipt loads a mix and its parent receipt.
func (r *Repository) FindWithReceipt(ctx context.Context, id uint) (*models.Mix, error) {
	var mix models.Mix
	if err := r.db.WithContext(ctx).Preload("Receipt").First(&mix, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &mix, nil
}

// ListByReceipt returns the mixes of a receipt in id order.
func (r *Repository) ListByReceipt(ctx context.Context, receiptID uint) ([]models.Mix, error) {
	var rows []models.Mix
	err := r.db.WithContext(ctx).
		Where("receipt_id = ?", receiptID).
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

// Search returns mixes matching filter with their receipts preloaded.
func (r *Repository) Search(ctx context.Context, filter Filter) ([]models.Mix, error) {
	var rows []models.Mix
	err := r.db.WithContext(ctx).
		Model(&models.Mix{}).
		Select("mixes.*").
		Joins("JOIN receipts ON receipts.id = mixes.receipt_id").
		Scopes(filter.Scope).
		Preload("Receipt").
		Order("mixes.id ASC").
		Find(&rows).
		Error
	return rows, err
}

// Status returns the stored status of a mix.
func (r *Repository) Status(ctx context.Context, id uint) (enums.MixStatus, error) {
	var mix models.Mix
	err := r.db.WithContext(ctx).Select("status").First(&mix, "id = ?", id).Error
	return mix.Status, err
}

// Exists reports whether a mix with id is stored.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Mix{}).
		Where("id = ?", id).
		Count(&count).
		Error
	return count > 0, err
}

// MarkDelivered flips a pending mix to delivered on date. It reports false
// when the mix is missing or no longer pending; the stored date is then left
// untouched.
func (r *Repository) MarkDelivered(ctx context.Context, id uint, date string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Mix{}).
		Where("id = ? AND status = ?", id, enums.MixStatusPending).
		Updates(map[string]any{
			"status":         enums.MixStatusDelivered,
			"delivered_date": date,
		})
	return res.RowsAffected > 0, res.Error
}

// Update patches columns on the mix and returns the affected row count.
func (r *Repository) Update(ctx context.Context, id uint, columns map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Mix{}).
		Where("id = ?", id).
		Updates(columns)
	return res.RowsAffected, res.Error
}

// Delete removes the mix and returns the affected row count.
func (r *Repository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Mix{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
