package receipts

import "github.com/angelmondragon/mixtrack-backend/pkg/db/models"

// MixInput describes one mix created together with its receipt.
type MixInput struct {
	Quantity     string
	Presentation string
	NumberOfMix  *int
}

// CreateReceiptInput is the payload for registering a receipt. Status is not
// accepted: new receipts always start pending.
type CreateReceiptInput struct {
	Date        string
	Folio       string
	Kind        string
	Sap         string
	Description *string
	Mixes       []MixInput
}

// UpdateReceiptInput patches the supplied fields only. An empty Description
// clears it.
type UpdateReceiptInput struct {
	Date        *string
	Folio       *string
	Kind        *string
	Sap         *string
	Description *string
}

func (in UpdateReceiptInput) isEmpty() bool {
	return in.Date == nil && in.Folio == nil && in.Kind == nil && in.Sap == nil && in.Description == nil
}

// ReceiptDetail is a receipt with its mixes and, when every mix quantity is
// numeric, their total.
type ReceiptDetail struct {
	models.Receipt
	TotalQuantity *string `json:"totalQuantity,omitempty"`
}

// ReconcileResult summarizes a full status sweep.
type ReconcileResult struct {
	Examined int
	Changed  int
	Failed   int
}
