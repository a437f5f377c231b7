package controllers

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/mixtrack-backend/internal/mixes"
	"github.com/angelmondragon/mixtrack-backend/internal/receipts"
	"github.com/angelmondragon/mixtrack-backend/pkg/db/models"
	"github.com/angelmondragon/mixtrack-backend/pkg/enums"
)

type stubReceipts struct {
	create func(ctx context.Context, in receipts.CreateReceiptInput) (*models.Receipt, error)
	list   func(ctx context.Context) ([]models.Receipt, error)
	search func(ctx context.Context, search string) ([]models.Receipt, error)
	get    func(ctx context.Context, id uint) (*receipts.ReceiptDetail, error)
	update func(ctx context.Context, id uint, in receipts.UpdateReceiptInput) (*models.Receipt, error)
	delete func(ctx context.Context, id uint) error
}

var _ receipts.Service = (*stubReceipts)(nil)

func (s *stubReceipts) Create(ctx context.Context, in receipts.CreateReceiptInput) (*models.Receipt, error) {
	return s.create(ctx, in)
}

func (s *stubReceipts) List(ctx context.Context) ([]models.Receipt, error) {
	return s.list(ctx)
}

func (s *stubReceipts) Search(ctx context.Context, search string) ([]models.Receipt, error) {
	return s.search(ctx, search)
}

func (s *stubReceipts) Exists(context.Context, uint) (bool, error) {
	panic("not implemented")
}

func (s *stubReceipts) Get(ctx context.Context, id uint) (*receipts.ReceiptDetail, error) {
	return s.get(ctx, id)
}

func (s *stubReceipts) Update(ctx context.Context, id uint, in receipts.UpdateReceiptInput) (*models.Receipt, error) {
	return s.update(ctx, id, in)
}

func (s *stubReceipts) Delete(ctx context.Context, id uint) error {
	return s.delete(ctx, id)
}

func (s *stubReceipts) RecomputeStatus(context.Context, *gorm.DB, uint) (enums.ReceiptStatus, error) {
	panic("not implemented")
}

func (s *stubReceipts) ReconcileAll(context.Context) (receipts.ReconcileResult, error) {
	panic("not implemented")
}

type stubMixes struct {
	create func(ctx context.Context, in mixes.CreateMixInput) (*models.Mix, error)
	list   func(ctx context.Context, receiptID uint) ([]models.Mix, error)
	get    func(ctx context.Context, id uint) (*models.Mix, error)
	mark   func(ctx context.Context, id uint) (*models.Mix, error)
	update func(ctx context.Context, id uint, in mixes.UpdateMixInput) (*models.Mix, error)
	delete func(ctx context.Context, id uint) error
	search func(ctx context.Context, search string) ([]models.Mix, error)
}

var _ mixes.Service = (*stubMixes)(nil)

func (s *stubMixes) Create(ctx context.Context, in mixes.CreateMixInput) (*models.Mix, error) {
	return s.create(ctx, in)
}

func (s *stubMixes) ListByReceipt(ctx context.Context, receiptID uint) ([]models.Mix, error) {
	return s.list(ctx, receiptID)
}

func (s *stubMixes) Get(ctx context.Context, id uint) (*models.Mix, error) {
	return s.get(ctx, id)
}

func (s *stubMixes) Status(context.Context, uint) (enums.MixStatus, bool, error) {
	panic("not implemented")
}

func (s *stubMixes) Exists(context.Context, uint) (bool, error) {
	panic("not implemented")
}

func (s *stubMixes) MarkAsDelivered(ctx context.Context, id uint) (*models.Mix, error) {
	return s.mark(ctx, id)
}

func (s *stubMixes) Update(ctx context.Context, id uint, in mixes.UpdateMixInput) (*models.Mix, error) {
	return s.update(ctx, id, in)
}

func (s *stubMixes) Delete(ctx context.Context, id uint) error {
	return s.delete(ctx, id)
}

func (s *stubMixes) Search(ctx context.Context, search string) ([]models.Mix, error) {
	return s.search(ctx, search)
}
