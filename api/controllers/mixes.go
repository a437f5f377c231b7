package controllers

import (
	"net/http"

	"github.com/angelmondragon/mixtrack-backend/api/responses"
	"github.com/angelmondragon/mixtrack-backend/api/validators"
	"github.com/angelmondragon/mixtrack-backend/internal/mixes"
	"github.com/angelmondragon/mixtrack-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/mixtrack-backend/pkg/errors"
	"github.com/angelmondragon/mixtrack-backend/pkg/logger"
)

type createMixRequest struct {
	ReceiptID     uint    `json:"receiptId" validate:"required,gt=0"`
	Quantity      string  `json:"quantity" validate:"required,max=64"`
	Presentation  string  `json:"presentation" validate:"required,max=128"`
	NumberOfMix   *int    `json:"numberOfMix" validate:"omitempty,gt=0"`
	Status        string  `json:"status" validate:"omitempty,mixstatus"`
	DeliveredDate *string `json:"deliveredDate" validate:"omitempty,isodate"`
}

// coupling rejects a delivered mix without a date and a dated mix that is
// not delivered.
func (req createMixRequest) coupling() error {
	var fields pkgerrors.FieldErrors
	delivered := req.Status == string(enums.MixStatusDelivered)
	switch {
	case delivered && req.DeliveredDate == nil:
		fields = fields.Add("deliveredDate", "is required when status is delivered")
	case !delivered && req.DeliveredDate != nil:
		fields = fields.Add("deliveredDate", "must be empty unless status is delivered")
	}
	return fields.Err("validation failed")
}

type updateMixRequest struct {
	Quantity      *string `json:"quantity" validate:"omitempty,min=1,max=64"`
	Presentation  *string `json:"presentation" validate:"omitempty,min=1,max=128"`
	NumberOfMix   *int    `json:"numberOfMix" validate:"omitempty,gt=0"`
	Status        *string `json:"status" validate:"omitempty,mixstatus"`
	DeliveredDate *string `json:"deliveredDate" validate:"omitempty,isodate"`
}

// coupling checks what the body alone can decide; the merged row is checked
// by the service.
func (req updateMixRequest) coupling() error {
	var fields pkgerrors.FieldErrors
	if req.Status != nil && *req.Status == string(enums.MixStatusPending) && req.DeliveredDate != nil {
		fields = fields.Add("deliveredDate", "must be empty unless status is delivered")
	}
	return fields.Err("validation failed")
}

// MixesCreate adds a mix to an existing receipt.
func MixesCreate(svc mixes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "mix service unavailable"))
			return
		}

		var req createMixRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := req.coupling(); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		mix, err := svc.Create(ctx, mixes.CreateMixInput{
			ReceiptID:     req.ReceiptID,
			Quantity:      req.Quantity,
			Presentation:  req.Presentation,
			NumberOfMix:   req.NumberOfMix,
			Status:        req.Status,
			DeliveredDate: req.DeliveredDate,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteCreated(w, mix)
	}
}

// MixesSearch lists mixes with their receipts, filtered by the optional
// search parameter.
func MixesSearch(svc mixes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "mix service unavailable"))
			return
		}

		rows, err := svc.Search(ctx, validators.SearchParam(r))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// MixesGet returns a mix with its receipt.
func MixesGet(svc mixes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "mix service unavailable"))
			return
		}

		id, err := validators.ParseID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		mix, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, mix)
	}
}

// MixesUpdate patches a mix and recomputes its receipt.
func MixesUpdate(svc mixes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "mix service unavailable"))
			return
		}

		id, err := validators.ParseID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req updateMixRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := req.coupling(); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		mix, err := svc.Update(ctx, id, mixes.UpdateMixInput{
			Quantity:      req.Quantity,
			Presentation:  req.Presentation,
			NumberOfMix:   req.NumberOfMix,
			Status:        req.Status,
			DeliveredDate: req.DeliveredDate,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, mix)
	}
}

// MixesMarkAsDelivered moves a pending mix to delivered with today's date.
func MixesMarkAsDelivered(svc mixes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "mix service unavailable"))
			return
		}

		id, err := validators.ParseID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		mix, err := svc.MarkAsDelivered(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, mix)
	}
}

// MixesDelete removes a mix and recomputes its former receipt.
func MixesDelete(svc mixes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "mix service unavailable"))
			return
		}

		id, err := validators.ParseID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
