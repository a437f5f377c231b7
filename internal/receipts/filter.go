package receipts

import (
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/mixtrack-backend/pkg/search"
)

const likeClause = " LIKE ? ESCAPE '" + search.LikeEscape + "'"

// SearchKeys are the tokens accepted by receipt search.
var SearchKeys = []string{"folio", "sap", "date", "kind", "status"}

// Filter holds the receipt predicates of a search. Empty fields impose no
// predicate.
type Filter struct {
	Folio  string
	Sap    string
	Date   string
	Kind   string
	Status string
}

// ParseFilter tokenizes a receipt search string.
func ParseFilter(raw string) Filter {
	tokens := search.Tokens(raw, SearchKeys)
	return Filter{
		Folio:  tokens["folio"],
		Sap:    tokens["sap"],
		Date:   tokens["date"],
		Kind:   tokens["kind"],
		Status: tokens["status"],
	}
}

// IsEmpty reports whether the filter has no predicates.
func (f Filter) IsEmpty() bool {
	return f == Filter{}
}

// Scope applies the filter to the receipts table (or alias) named table:
// folio and sap match by prefix, date, kind and status match exactly.
func (f Filter) Scope(table string) func(*gorm.DB) *gorm.DB {
	col := func(name string) string {
		if table == "" {
			return name
		}
		return table + "." + name
	}
	return func(q *gorm.DB) *gorm.DB {
		if f.Folio != "" {
			q = q.Where(col("folio")+likeClause, search.LikePrefix(f.Folio))
		}
		if f.Sap != "" {
			q = q.Where(col("sap")+likeClause, search.LikePrefix(f.Sap))
		}
		if f.Date != "" {
			q = q.Where(col("date")+" = ?", f.Date)
		}
		if f.Kind != "" {
			q = q.Where(col("kind")+" = ?", f.Kind)
		}
		if f.Status != "" {
			q = q.Where(col("status")+" = ?", f.Status)
		}
		return q
	}
}

func (f Filter) String() string {
	var b strings.Builder
	for _, kv := range [][2]string{
		{"folio", f.Folio}, {"sap", f.Sap}, {"date", f.Date}, {"kind", f.Kind}, {"status", f.Status},
	} {
		if kv[1] == "" {
			continue
		}
		b.WriteString(kv[0])
		b.WriteByte(':')
		b.WriteString(kv[1])
		b.WriteByte(';')
	}
	return b.String()
}
