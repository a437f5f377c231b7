package mixes

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/mixtrack-backend/internal/receipts"
	"github.com/angelmondragon/mixtrack-backend/pkg/db"
	"github.com/angelmondragon/mixtrack-backend/pkg/db/models"
	"github.com/angelmondragon/mixtrack-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/mixtrack-backend/pkg/errors"
	"github.com/angelmondragon/mixtrack-backend/pkg/logger"
	"github.com/angelmondragon/mixtrack-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// StatusRecomputer re-derives a receipt status inside the caller's transaction.
type StatusRecomputer interface {
	RecomputeStatus(ctx context.Context, tx *gorm.DB, receiptID uint) (enums.ReceiptStatus, error)
}

// ServiceParams groups dependencies for the mix service.
type ServiceParams struct {
	Repo        *Repository
	ReceiptRepo *receipts.Repository
	Receipts    StatusRecomputer
	DB          txRunner
	Logger      *logger.Logger
	Now         func() time.Time
}

// Service exposes mix CRUD and the mix side of the status cascade. Every
// mutation runs in one transaction that locks the parent receipt first and
// recomputes its status last.
type Service interface {
	Create(ctx context.Context, input CreateMixInput) (*models.Mix, error)
	ListByReceipt(ctx context.Context, receiptID uint) ([]models.Mix, error)
	Get(ctx context.Context, id uint) (*models.Mix, error)
	Status(ctx context.Context, id uint) (enums.MixStatus, bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	MarkAsDelivered(ctx context.Context, id uint) (*models.Mix, error)
	Update(ctx context.Context, id uint, input UpdateMixInput) (*models.Mix, error)
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, search string) ([]models.Mix, error)
}

type service struct {
	repo        *Repository
	receiptRepo *receipts.Repository
	receipts    StatusRecomputer
	db          txRunner
	logg        *logger.Logger
	now         func() time.Time
}

// NewService builds a mix service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mix repo is required")
	}
	if params.ReceiptRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "receipt repo is required")
	}
	if params.Receipts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "receipt status recomputer is required")
	}
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:        params.Repo,
		receiptRepo: params.ReceiptRepo,
		receipts:    params.Receipts,
		db:          params.DB,
		logg:        params.Logger,
		now:         now,
	}, nil
}

// Create adds a mix to an existing receipt and recomputes the receipt.
func (s *service) Create(ctx context.Context, input CreateMixInput) (*models.Mix, error) {
	status, err := validateCreate(input)
	if err != nil {
		return nil, err
	}

	mix := &models.Mix{
		ReceiptID:    input.ReceiptID,
		Quantity:     strings.TrimSpace(input.Quantity),
		Presentation: strings.TrimSpace(input.Presentation),
		NumberOfMix:  input.NumberOfMix,
		Status:       status,
	}
	if status == enums.MixStatusDelivered {
		date := *input.DeliveredDate
		mix.DeliveredDate = &date
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.lockReceipt(ctx, tx, input.ReceiptID); err != nil {
			return err
		}
		if err := s.repo.WithTx(tx).Create(ctx, mix); err != nil {
			return err
		}
		_, err := s.receipts.RecomputeStatus(ctx, tx, input.ReceiptID)
		return err
	})
	if err != nil {
		return nil, storageError(err, "create mix")
	}

	s.logg.Info(s.mixContext(ctx, mix), "mix.created")
	return mix, nil
}

// ListByReceipt returns the receipt's mixes; an unknown receipt has none.
func (s *service) ListByReceipt(ctx context.Context, receiptID uint) ([]models.Mix, error) {
	rows, err := s.repo.ListByReceipt(ctx, receiptID)
	if err != nil {
		return nil, storageError(err, "list mixes")
	}
	return rows, nil
}

// Get loads a mix with its receipt.
func (s *service) Get(ctx context.Context, id uint) (*models.Mix, error) {
	mix, err := s.repo.FindWithReceipt(ctx, id)
	if err != nil {
		return nil, storageError(err, "load mix")
	}
	return mix, nil
}

// Status returns the mix status; ok is false when the mix does not exist.
func (s *service) Status(ctx context.Context, id uint) (enums.MixStatus, bool, error) {
	status, err := s.repo.Status(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storageError(err, "load mix status")
	}
	return status, true, nil
}

// Exists reports whether the mix is stored.
func (s *service) Exists(ctx context.Context, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return false, storageError(err, "probe mix")
	}
	return ok, nil
}

// MarkAsDelivered moves a pending mix to delivered with today's date and
// recomputes its receipt in the same transaction.
func (s *service) MarkAsDelivered(ctx context.Context, id uint) (*models.Mix, error) {
	today := types.FormatDate(s.now())

	var mix *models.Mix
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		current, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.lockReceipt(ctx, tx, current.ReceiptID); err != nil {
			return err
		}

		updated, err := repo.MarkDelivered(ctx, id, today)
		if err != nil {
			return err
		}
		if !updated {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "mix already delivered")
		}

		if _, err := s.receipts.RecomputeStatus(ctx, tx, current.ReceiptID); err != nil {
			return err
		}
		mix, err = repo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, storageError(err, "mark mix delivered")
	}

	s.logg.Info(s.mixContext(ctx, mix), "mix.delivered")
	return mix, nil
}

// Update patches the supplied fields, keeping delivered_date present exactly
// when the merged status is delivered.
func (s *service) Update(ctx context.Context, id uint, input UpdateMixInput) (*models.Mix, error) {
	if err := validateUpdateFields(input); err != nil {
		return nil, err
	}

	var mix *models.Mix
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		current, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if input.isEmpty() {
			mix = current
			return nil
		}

		// receipt_id is immutable, so the first read is only good for the
		// lock. The merge must see the row as it stands once the lock is held.
		if err := s.lockReceipt(ctx, tx, current.ReceiptID); err != nil {
			return err
		}
		current, err = repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		columns, err := mergeUpdate(current, input)
		if err != nil {
			return err
		}
		if _, err := repo.Update(ctx, id, columns); err != nil {
			return err
		}
		if _, err := s.receipts.RecomputeStatus(ctx, tx, current.ReceiptID); err != nil {
			return err
		}
		mix, err = repo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, storageError(err, "update mix")
	}
	return mix, nil
}

// Delete removes the mix and recomputes its former receipt.
func (s *service) Delete(ctx context.Context, id uint) error {
	var receiptID uint
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		current, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		receiptID = current.ReceiptID
		if err := s.lockReceipt(ctx, tx, receiptID); err != nil {
			return err
		}
		rows, err := repo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return gorm.ErrRecordNotFound
		}
		_, err = s.receipts.RecomputeStatus(ctx, tx, receiptID)
		return err
	})
	if err != nil {
		return storageError(err, "delete mix")
	}

	logCtx := s.logg.WithMixID(s.logg.WithReceiptID(ctx, receiptID), id)
	s.logg.Info(logCtx, "mix.deleted")
	return nil
}

// Search lists mixes matching the search tokens, each with its receipt.
func (s *service) Search(ctx context.Context, search string) ([]models.Mix, error) {
	rows, err := s.repo.Search(ctx, ParseFilter(search))
	if err != nil {
		return nil, storageError(err, "search mixes")
	}
	return rows, nil
}

// lockReceipt touches the parent receipt so concurrent cascades on it
// serialize behind this transaction.
func (s *service) lockReceipt(ctx context.Context, tx *gorm.DB, receiptID uint) error {
	found, err := s.receiptRepo.WithTx(tx).Touch(ctx, receiptID, s.now())
	if err != nil {
		return err
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "receipt not found")
	}
	return nil
}

func (s *service) mixContext(ctx context.Context, mix *models.Mix) context.Context {
	return s.logg.WithMixID(s.logg.WithReceiptID(ctx, mix.ReceiptID), mix.ID)
}

// storageError passes typed errors through and maps the rest: a missing row
// is NOT_FOUND, anything else is a dependency failure.
func storageError(err error, action string) error {
	if err == nil {
		return nil
	}
	if pkgerrors.As(err) != nil {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "mix not found")
	case db.IsForeignKeyViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "receipt not found")
	case db.IsCheckViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "mix status and deliveredDate disagree")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
