package mixes

import (
	"strings"

	"github.com/angelmondragon/mixtrack-backend/pkg/db/models"
	"github.com/angelmondragon/mixtrack-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/mixtrack-backend/pkg/errors"
	"github.com/angelmondragon/mixtrack-backend/pkg/types"
)

const (
	msgDateRequired  = "is required when status is delivered"
	msgDateForbidden = "must be empty unless status is delivered"
)

func validateCreate(in CreateMixInput) (enums.MixStatus, error) {
	var fields pkgerrors.FieldErrors
	if in.ReceiptID == 0 {
		fields = fields.Add("receiptId", "is required")
	}
	if strings.TrimSpace(in.Quantity) == "" {
		fields = fields.Add("quantity", "is required")
	}
	if strings.TrimSpace(in.Presentation) == "" {
		fields = fields.Add("presentation", "is required")
	}
	fields = checkNumberOfMix(fields, in.NumberOfMix)

	status := enums.MixStatusPending
	if in.Status != "" {
		parsed, err := enums.ParseMixStatus(in.Status)
		if err != nil {
			fields = fields.Add("status", "must be one of: pending, delivered")
		}
		status = parsed
	}
	if status != "" {
		fields = checkCoupling(fields, status, in.DeliveredDate)
	}

	if err := fields.Err("invalid mix"); err != nil {
		return "", err
	}
	return status, nil
}

func validateUpdateFields(in UpdateMixInput) error {
	var fields pkgerrors.FieldErrors
	if in.Quantity != nil && strings.TrimSpace(*in.Quantity) == "" {
		fields = fields.Add("quantity", "is required")
	}
	if in.Presentation != nil && strings.TrimSpace(*in.Presentation) == "" {
		fields = fields.Add("presentation", "is required")
	}
	fields = checkNumberOfMix(fields, in.NumberOfMix)
	if in.Status != nil {
		if _, err := enums.ParseMixStatus(*in.Status); err != nil {
			fields = fields.Add("status", "must be one of: pending, delivered")
		}
	}
	if in.DeliveredDate != nil && !types.IsISODate(*in.DeliveredDate) {
		fields = fields.Add("deliveredDate", "must be a valid date (YYYY-MM-DD)")
	}
	return fields.Err("invalid mix")
}

// mergeUpdate applies input over current and returns the columns to write.
// The merged row must satisfy the status/delivered_date coupling. status and
// delivered_date are only written when the input touches one of them.
func mergeUpdate(current *models.Mix, in UpdateMixInput) (map[string]any, error) {
	columns := map[string]any{}
	if in.Quantity != nil {
		columns["quantity"] = strings.TrimSpace(*in.Quantity)
	}
	if in.Presentation != nil {
		columns["presentation"] = strings.TrimSpace(*in.Presentation)
	}
	if in.NumberOfMix != nil {
		columns["number_of_mix"] = *in.NumberOfMix
	}

	if in.Status == nil && in.DeliveredDate == nil {
		return columns, nil
	}

	status := current.Status
	if in.Status != nil {
		status = enums.MixStatus(*in.Status)
	}

	var fields pkgerrors.FieldErrors
	switch status {
	case enums.MixStatusDelivered:
		date := in.DeliveredDate
		if date == nil && current.IsDelivered() {
			date = current.DeliveredDate
		}
		if date == nil {
			fields = fields.Add("deliveredDate", msgDateRequired)
			break
		}
		columns["status"] = status
		columns["delivered_date"] = *date
	default:
		if in.DeliveredDate != nil {
			fields = fields.Add("deliveredDate", msgDateForbidden)
			break
		}
		columns["status"] = status
		columns["delivered_date"] = nil
	}

	if err := fields.Err("invalid mix"); err != nil {
		return nil, err
	}
	return columns, nil
}

func checkNumberOfMix(fields pkgerrors.FieldErrors, value *int) pkgerrors.FieldErrors {
	if value != nil && *value <= 0 {
		return fields.Add("numberOfMix", "must be greater than 0")
	}
	return fields
}

func checkCoupling(fields pkgerrors.FieldErrors, status enums.MixStatus, date *string) pkgerrors.FieldErrors {
	switch {
	case status == enums.MixStatusDelivered && date == nil:
		return fields.Add("deliveredDate", msgDateRequired)
	case status == enums.MixStatusDelivered && !types.IsISODate(*date):
		return fields.Add("deliveredDate", "must be a valid date (YYYY-MM-DD)")
	case status != enums.MixStatusDelivered && date != nil:
		return fields.Add("deliveredDate", msgDateForbidden)
	}
	return fields
}
