package receipts

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/angelmondragon/mixtrack-backend/pkg/db"
	"github.com/angelmondragon/mixtrack-backend/pkg/db/models"
	"github.com/angelmondragon/mixtrack-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/mixtrack-backend/pkg/errors"
	"github.com/angelmondragon/mixtrack-backend/pkg/logger"
	"github.com/angelmondragon/mixtrack-backend/pkg/metrics"
	"github.com/angelmondragon/mixtrack-backend/pkg/quantity"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the receipt service.
type ServiceParams struct {
	Repo    *Repository
	DB      txRunner
	Kinds   enums.ReceiptKindSet
	Logger  *logger.Logger
	Metrics *metrics.CascadeMetrics
	Now     func() time.Time
}

// Service exposes receipt CRUD and the receipt side of the status cascade.
type Service interface {
	Create(ctx context.Context, input CreateReceiptInput) (*models.Receipt, error)
	List(ctx context.Context) ([]models.Receipt, error)
	Search(ctx context.Context, search string) ([]models.Receipt, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Get(ctx context.Context, id uint) (*ReceiptDetail, error)
	Update(ctx context.Context, id uint, input UpdateReceiptInput) (*models.Receipt, error)
	Delete(ctx context.Context, id uint) error
	// RecomputeStatus re-derives the receipt status from its mixes. With a
	// nil tx it runs in its own transaction.
	RecomputeStatus(ctx context.Context, tx *gorm.DB, receiptID uint) (enums.ReceiptStatus, error)
	ReconcileAll(ctx context.Context) (ReconcileResult, error)
}

type service struct {
	repo    *Repository
	db      txRunner
	kinds   enums.ReceiptKindSet
	logg    *logger.Logger
	metrics *metrics.CascadeMetrics
	now     func() time.Time
}

// NewService builds a receipt service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "receipt repo is required")
	}
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	kinds := params.Kinds
	if len(kinds.Kinds()) == 0 {
		kinds = enums.NewReceiptKindSet(nil)
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:    params.Repo,
		db:      params.DB,
		kinds:   kinds,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     now,
	}, nil
}

// DeriveStatus is the cascade rule: delivered iff there is at least one mix
// and none is pending.
func DeriveStatus(total, pending int64) enums.ReceiptStatus {
	if total > 0 && pending == 0 {
		return enums.ReceiptStatusDelivered
	}
	return enums.ReceiptStatusPending
}

// Create stores a pending receipt with its pending mixes.
func (s *service) Create(ctx context.Context, input CreateReceiptInput) (*models.Receipt, error) {
	if err := validateCreate(input, s.kinds); err != nil {
		return nil, err
	}

	receipt := &models.Receipt{
		Date:        input.Date,
		Folio:       strings.TrimSpace(input.Folio),
		Kind:        enums.ReceiptKind(input.Kind),
		Sap:         input.Sap,
		Description: normalizeDescription(input.Description),
		Status:      enums.ReceiptStatusPending,
		Mixes:       make([]models.Mix, 0, len(input.Mixes)),
	}
	for _, mix := range input.Mixes {
		receipt.Mixes = append(receipt.Mixes, models.Mix{
			Quantity:     strings.TrimSpace(mix.Quantity),
			Presentation: strings.TrimSpace(mix.Presentation),
			NumberOfMix:  mix.NumberOfMix,
			Status:       enums.MixStatusPending,
		})
	}

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, receipt)
	})
	if err != nil {
		return nil, storageError(err, "create receipt")
	}

	logCtx := s.logg.WithReceiptID(ctx, receipt.ID)
	s.logg.Info(logCtx, "receipt.created")
	return receipt, nil
}

// List returns every receipt, most recent date first.
func (s *service) List(ctx context.Context) ([]models.Receipt, error) {
	rows, err := s.repo.List(ctx, Filter{})
	if err != nil {
		return nil, storageError(err, "list receipts")
	}
	return rows, nil
}

// Search lists receipts matching the search tokens.
func (s *service) Search(ctx context.Context, search string) ([]models.Receipt, error) {
	rows, err := s.repo.List(ctx, ParseFilter(search))
	if err != nil {
		return nil, storageError(err, "search receipts")
	}
	return rows, nil
}

// Exists reports whether the receipt is stored.
func (s *service) Exists(ctx context.Context, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return false, storageError(err, "probe receipt")
	}
	return ok, nil
}

// Get loads the receipt with its mixes and their total quantity.
func (s *service) Get(ctx context.Context, id uint) (*ReceiptDetail, error) {
	receipt, err := s.repo.FindWithMixes(ctx, id)
	if err != nil {
		return nil, storageError(err, "load receipt")
	}

	detail := &ReceiptDetail{Receipt: *receipt}
	if len(receipt.Mixes) > 0 {
		raws := make([]string, 0, len(receipt.Mixes))
		for _, mix := range receipt.Mixes {
			raws = append(raws, mix.Quantity)
		}
		if total, ok := quantity.Sum(raws...); ok {
			value := total.String()
			detail.TotalQuantity = &value
		}
	}
	return detail, nil
}

// Update patches the supplied fields. Status is never written here.
func (s *service) Update(ctx context.Context, id uint, input UpdateReceiptInput) (*models.Receipt, error) {
	if err := validateUpdate(input, s.kinds); err != nil {
		return nil, err
	}

	var updated *models.Receipt
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if input.isEmpty() {
			receipt, err := repo.FindByID(ctx, id)
			updated = receipt
			return err
		}

		columns := map[string]any{}
		if input.Date != nil {
			columns["date"] = *input.Date
		}
		if input.Folio != nil {
			columns["folio"] = strings.TrimSpace(*input.Folio)
		}
		if input.Kind != nil {
			columns["kind"] = *input.Kind
		}
		if input.Sap != nil {
			columns["sap"] = *input.Sap
		}
		if input.Description != nil {
			columns["description"] = normalizeDescription(input.Description)
		}

		rows, err := repo.Update(ctx, id, columns)
		if err != nil {
			return err
		}
		if rows == 0 {
			return gorm.ErrRecordNotFound
		}
		updated, err = repo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, storageError(err, "update receipt")
	}
	return updated, nil
}

// Delete removes the receipt and, through the foreign key, its mixes.
func (s *service) Delete(ctx context.Context, id uint) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return storageError(err, "delete receipt")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "receipt not found")
	}

	logCtx := s.logg.WithReceiptID(ctx, id)
	s.logg.Info(logCtx, "receipt.deleted")
	return nil
}

func (s *service) RecomputeStatus(ctx context.Context, tx *gorm.DB, receiptID uint) (enums.ReceiptStatus, error) {
	if tx == nil {
		var status enums.ReceiptStatus
		err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
			var err error
			status, err = s.recompute(ctx, tx, receiptID)
			return err
		})
		if err != nil {
			return "", storageError(err, "recompute receipt status")
		}
		return status, nil
	}

	status, err := s.recompute(ctx, tx, receiptID)
	if err != nil {
		return "", storageError(err, "recompute receipt status")
	}
	return status, nil
}

func (s *service) recompute(ctx context.Context, tx *gorm.DB, receiptID uint) (enums.ReceiptStatus, error) {
	repo := s.repo.WithTx(tx)

	found, err := repo.Touch(ctx, receiptID, s.now())
	if err != nil {
		return "", err
	}
	if !found {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "receipt not found")
	}

	receipt, err := repo.FindByID(ctx, receiptID)
	if err != nil {
		return "", err
	}
	total, pending, err := repo.CountMixes(ctx, receiptID)
	if err != nil {
		return "", err
	}

	next := DeriveStatus(total, pending)
	if next == receipt.Status {
		return next, nil
	}
	if err := repo.SetStatus(ctx, receiptID, next); err != nil {
		return "", err
	}

	s.metrics.IncTransition(next.String())
	logCtx := s.logg.WithFields(s.logg.WithReceiptID(ctx, receiptID), map[string]any{
		"from":    receipt.Status.String(),
		"to":      next.String(),
		"mixes":   total,
		"pending": pending,
	})
	s.logg.Info(logCtx, "receipt.status.changed")
	return next, nil
}

// ReconcileAll recomputes every receipt in its own transaction. A failing
// receipt does not stop the sweep; failures are combined in the error.
func (s *service) ReconcileAll(ctx context.Context) (ReconcileResult, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return ReconcileResult{}, storageError(err, "list receipt ids")
	}

	var (
		result ReconcileResult
		errs   error
	)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, multierr.Append(errs, err)
		}
		result.Examined++

		var changed bool
		err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
			before, err := s.repo.WithTx(tx).FindByID(ctx, id)
			if err != nil {
				return err
			}
			after, err := s.recompute(ctx, tx, id)
			if err != nil {
				return err
			}
			changed = after != before.Status
			return nil
		})
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound), pkgerrors.IsCode(err, pkgerrors.CodeNotFound):
			// deleted since ListIDs
		case err != nil:
			result.Failed++
			errs = multierr.Append(errs, storageError(err, "reconcile receipt"))
		case changed:
			result.Changed++
		}
	}
	return result, errs
}

func normalizeDescription(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// storageError passes typed errors through and maps the rest: a missing row
// is NOT_FOUND, anything else is a dependency failure.
func storageError(err error, action string) error {
	if err == nil {
		return nil
	}
	if typed := pkgerrors.As(err); typed != nil {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "receipt not found")
	case db.IsCheckViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "mix status and deliveredDate disagree")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
