package mixes

import (
	"gorm.io/gorm"

	"github.com/angelmondragon/mixtrack-backend/internal/receipts"
	"github.com/angelmondragon/mixtrack-backend/pkg/search"
)

// SearchKeys are the tokens accepted by mix search.
var SearchKeys = []string{"status", "deliveredDate", "folio", "sap", "kind"}

// Filter holds mix predicates plus the predicates applied to the parent
// receipt. Empty fields impose no predicate.
type Filter struct {
	Status        string
	DeliveredDate string
	Receipt       receipts.Filter
}

// ParseFilter tokenizes a mix search string.
func ParseFilter(raw string) Filter {
	tokens := search.Tokens(raw, SearchKeys)
	return Filter{
		Status:        tokens["status"],
		DeliveredDate: tokens["deliveredDate"],
		Receipt: receipts.Filter{
			Folio: tokens["folio"],
			Sap:   tokens["sap"],
			Kind:  tokens["kind"],
		},
	}
}

// Scope applies the mix predicates to the mixes table and the receipt
// predicates to the joined receipts table.
func (f Filter) Scope(q *gorm.DB) *gorm.DB {
	if f.Status != "" {
		q = q.Where("mixes.status = ?", f.Status)
	}
	if f.DeliveredDate != "" {
		q = q.Where("mixes.delivered_date = ?", f.DeliveredDate)
	}
	return q.Scopes(f.Receipt.Scope("receipts"))
}
