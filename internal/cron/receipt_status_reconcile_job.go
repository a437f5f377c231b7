package cron

import (
	"context"
	"fmt"

	"github.com/angelmondragon/mixtrack-backend/internal/receipts"
	"github.com/angelmondragon/mixtrack-backend/pkg/logger"
)

const receiptStatusReconcileJobName = "receipt-status-reconcile"

type receiptReconciler interface {
	ReconcileAll(ctx context.Context) (receipts.ReconcileResult, error)
}

type ReceiptStatusReconcileJobParams struct {
	Logger   *logger.Logger
	Receipts receiptReconciler
}

// NewReceiptStatusReconcileJob re-derives the status of every receipt from
// its mixes, repairing rows written outside the service.
func NewReceiptStatusReconcileJob(params ReceiptStatusReconcileJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Receipts == nil {
		return nil, fmt.Errorf("receipt service required")
	}
	return &receiptStatusReconcileJob{
		logg:     params.Logger,
		receipts: params.Receipts,
	}, nil
}

type receiptStatusReconcileJob struct {
	logg     *logger.Logger
	receipts receiptReconciler
}

func (j *receiptStatusReconcileJob) Name() string { return receiptStatusReconcileJobName }

func (j *receiptStatusReconcileJob) Run(ctx context.Context) error {
	result, err := j.receipts.ReconcileAll(ctx)
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"receipts_examined": result.Examined,
		"receipts_changed":  result.Changed,
		"receipts_failed":   result.Failed,
	})
	j.logg.Info(logCtx, "receipt status reconcile complete")
	if err != nil {
		return fmt.Errorf("receipt status reconcile: %w", err)
	}
	return nil
}
