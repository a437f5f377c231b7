package db

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/mixtrack-backend/pkg/logger"
)

func newBufferedLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.New(logger.Options{ServiceName: "db-test", Level: zerolog.DebugLevel, Output: buf})
}

func TestQueryLoggerReportsSlowAndFailedStatements(t *testing.T) {
	buf := &bytes.Buffer{}
	ql := newQueryLogger(newBufferedLogger(buf), 50*time.Millisecond)
	statement := func() (string, int64) { return "SELECT * FROM receipts", 3 }
	ctx := context.Background()

	ql.Trace(ctx, time.Now(), statement, nil)
	assert.Zero(t, buf.Len(), "fast statements are not logged")

	ql.Trace(ctx, time.Now(), statement, gorm.ErrRecordNotFound)
	assert.Zero(t, buf.Len(), "record not found is not logged")

	ql.Trace(ctx, time.Now().Add(-time.Second), statement, nil)
	assert.Contains(t, buf.String(), `"message":"db.slow_query"`)
	assert.Contains(t, buf.String(), `"sql":"SELECT * FROM receipts"`)
	assert.Contains(t, buf.String(), `"rows":3`)

	buf.Reset()
	ql.Trace(ctx, time.Now(), statement, errors.New("disk I/O error"))
	assert.Contains(t, buf.String(), `"message":"db.query_failed"`)
	assert.Contains(t, buf.String(), `"db_error":"disk I/O error"`)
}

func TestNewQueryLoggerDefaults(t *testing.T) {
	assert.Equal(t, gormlogger.Discard, newQueryLogger(nil, time.Second))

	ql := newQueryLogger(logger.Nop(), 0).(*queryLogger)
	assert.Equal(t, defaultSlowQuery, ql.slow)
	assert.Same(t, ql, ql.LogMode(gormlogger.Info))
}
