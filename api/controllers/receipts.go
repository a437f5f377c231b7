package controllers

import (
	"net/http"

	"github.com/angelmondragon/mixtrack-backend/api/responses"
	"github.com/angelmondragon/mixtrack-backend/api/validators"
	"github.com/angelmondragon/mixtrack-backend/internal/mixes"
	"github.com/angelmondragon/mixtrack-backend/internal/receipts"
	pkgerrors "github.com/angelmondragon/mixtrack-backend/pkg/errors"
	"github.com/angelmondragon/mixtrack-backend/pkg/logger"
)

type createReceiptMixRequest struct {
	Quantity     string `json:"quantity" validate:"required,max=64"`
	Presentation string `json:"presentation" validate:"required,max=128"`
	NumberOfMix  *int   `json:"numberOfMix" validate:"omitempty,gt=0"`
}

type createReceiptRequest struct {
	Date        string                    `json:"date" validate:"required,isodate"`
	Folio       string                    `json:"folio" validate:"required,max=64"`
	Kind        string                    `json:"kind" validate:"required,receiptkind"`
	Sap         string                    `json:"sap" validate:"required,numericstr"`
	Description *string                   `json:"description" validate:"omitempty,max=1024"`
	Mixes       []createReceiptMixRequest `json:"mixes" validate:"required,min=1,dive"`
}

func (req createReceiptRequest) input() receipts.CreateReceiptInput {
	in := receipts.CreateReceiptInput{
		Date:        req.Date,
		Folio:       req.Folio,
		Kind:        req.Kind,
		Sap:         req.Sap,
		Description: req.Description,
		Mixes:       make([]receipts.MixInput, 0, len(req.Mixes)),
	}
	for _, mix := range req.Mixes {
		in.Mixes = append(in.Mixes, receipts.MixInput{
			Quantity:     mix.Quantity,
			Presentation: mix.Presentation,
			NumberOfMix:  mix.NumberOfMix,
		})
	}
	return in
}

type updateReceiptRequest struct {
	Date        *string `json:"date" validate:"omitempty,isodate"`
	Folio       *string `json:"folio" validate:"omitempty,min=1,max=64"`
	Kind        *string `json:"kind" validate:"omitempty,receiptkind"`
	Sap         *string `json:"sap" validate:"omitempty,numericstr"`
	Description *string `json:"description" validate:"omitempty,max=1024"`
}

// ReceiptsCreate registers a receipt with its mixes.
func ReceiptsCreate(svc receipts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "receipt service unavailable"))
			return
		}

		var req createReceiptRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		receipt, err := svc.Create(ctx, req.input())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteCreated(w, receipt)
	}
}

// ReceiptsList lists receipts, filtered by the optional search parameter.
func ReceiptsList(svc receipts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "receipt service unavailable"))
			return
		}

		search := validators.SearchParam(r)
		var (
			rows any
			err  error
		)
		if search == "" {
			rows, err = svc.List(ctx)
		} else {
			rows, err = svc.Search(ctx, search)
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// ReceiptsGet returns a receipt with its mixes and total quantity.
func ReceiptsGet(svc receipts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "receipt service unavailable"))
			return
		}

		id, err := validators.ParseID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		detail, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// ReceiptsUpdate patches receipt fields; status is not writable here.
func ReceiptsUpdate(svc receipts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "receipt service unavailable"))
			return
		}

		id, err := validators.ParseID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req updateReceiptRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		receipt, err := svc.Update(ctx, id, receipts.UpdateReceiptInput{
			Date:        req.Date,
			Folio:       req.Folio,
			Kind:        req.Kind,
			Sap:         req.Sap,
			Description: req.Description,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, receipt)
	}
}

// ReceiptsDelete removes a receipt and its mixes.
func ReceiptsDelete(svc receipts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "receipt service unavailable"))
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

// ReceiptMixes lists the mixes of a receipt.
func ReceiptMixes(svc mixes.Service, logg *logger.Logger) http.HandlerFunc {
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

		rows, err := svc.ListByReceipt(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
