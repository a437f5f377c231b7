package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestDumpChain(t *testing.T) {
	err := fmt.Errorf("handler: %w", Wrap(CodeDependency, stdErrors.New("timeout"), "load receipt"))
	d := Dump(err)

	assert.Equal(t, CodeDependency, d.Code)
	assert.Len(t, d.Chain, 3)
	assert.False(t, d.HasDriverError())
	assert.NotContains(t, d.LogFields(true), "db_driver")
	assert.Equal(t, ErrorDump{}, Dump(nil))
}

func TestDumpDriverErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		driver string
		state  string
	}{
		{
			name:   "pgx",
			err:    &pgconn.PgError{Code: "23514", ConstraintName: "mixes_delivered_date_matches_status", TableName: "mixes"},
			driver: "pgx",
			state:  "23514",
		},
		{
			name:   "pq",
			err:    &pq.Error{Code: "23503", Constraint: "mixes_receipt_id_fkey"},
			driver: "pq",
			state:  "23503",
		},
		{
			name:   "sqlite",
			err:    sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck},
			driver: "sqlite",
			state:  sqlite3.ErrConstraintCheck.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Dump(Wrap(CodeDependency, tt.err, "update mix"))
			assert.Equal(t, tt.driver, d.Driver)
			assert.Equal(t, tt.state, d.SQLState)

			fields := d.LogFields(true)
			assert.Equal(t, tt.driver, fields["db_driver"])
			assert.NotContains(t, d.LogFields(false), "db_driver")
		})
	}
}
