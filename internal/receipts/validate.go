package receipts

import (
	"strconv"
	"strings"

	"github.com/angelmondragon/mixtrack-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/mixtrack-backend/pkg/errors"
	"github.com/angelmondragon/mixtrack-backend/pkg/types"
)

// IsPositiveNumeric reports whether value is a base-10 integer greater than 0.
func IsPositiveNumeric(value string) bool {
	if value == "" || strings.TrimSpace(value) != value {
		return false
	}
	n, err := strconv.ParseUint(value, 10, 64)
	return err == nil && n > 0
}

func validateCreate(in CreateReceiptInput, kinds enums.ReceiptKindSet) error {
	var fields pkgerrors.FieldErrors
	fields = checkDate(fields, "date", in.Date)
	fields = checkRequired(fields, "folio", in.Folio)
	fields = checkKind(fields, in.Kind, kinds)
	fields = checkSap(fields, in.Sap)

	if len(in.Mixes) == 0 {
		fields = fields.Add("mixes", "must contain at least one mix")
	}
	for i, mix := range in.Mixes {
		prefix := "mixes[" + strconv.Itoa(i) + "]."
		fields = checkRequired(fields, prefix+"quantity", mix.Quantity)
		fields = checkRequired(fields, prefix+"presentation", mix.Presentation)
		if mix.NumberOfMix != nil && *mix.NumberOfMix <= 0 {
			fields = fields.Add(prefix+"numberOfMix", "must be greater than 0")
		}
	}
	return fields.Err("invalid receipt")
}

func validateUpdate(in UpdateReceiptInput, kinds enums.ReceiptKindSet) error {
	var fields pkgerrors.FieldErrors
	if in.Date != nil {
		fields = checkDate(fields, "date", *in.Date)
	}
	if in.Folio != nil {
		fields = checkRequired(fields, "folio", *in.Folio)
	}
	if in.Kind != nil {
		fields = checkKind(fields, *in.Kind, kinds)
	}
	if in.Sap != nil {
		fields = checkSap(fields, *in.Sap)
	}
	return fields.Err("invalid receipt")
}

func checkRequired(fields pkgerrors.FieldErrors, field, value string) pkgerrors.FieldErrors {
	if strings.TrimSpace(value) == "" {
		return fields.Add(field, "is required")
	}
	return fields
}

func checkDate(fields pkgerrors.FieldErrors, field, value string) pkgerrors.FieldErrors {
	if value == "" {
		return fields.Add(field, "is required")
	}
	if !types.IsISODate(value) {
		return fields.Add(field, "must be a valid date (YYYY-MM-DD)")
	}
	return fields
}

func checkKind(fields pkgerrors.FieldErrors, value string, kinds enums.ReceiptKindSet) pkgerrors.FieldErrors {
	if value == "" {
		return fields.Add("kind", "is required")
	}
	if !kinds.Contains(value) {
		return fields.Add("kind", "must be one of: "+strings.Join(kinds.Strings(), ", "))
	}
	return fields
}

func checkSap(fields pkgerrors.FieldErrors, value string) pkgerrors.FieldErrors {
	if value == "" {
		return fields.Add("sap", "is required")
	}
	if !IsPositiveNumeric(value) {
		return fields.Add("sap", "must be a number greater than 0")
	}
	return fields
}
