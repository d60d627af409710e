package postgres

import (
	"context"
	"errors"
	"machine-reminder/pkg/logger"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, ParseLogLevel("Silent"))
	assert.Equal(t, gormlogger.Error, ParseLogLevel("Error"))
	assert.Equal(t, gormlogger.Warn, ParseLogLevel("Warn"))
	assert.Equal(t, gormlogger.Info, ParseLogLevel("Info"))
	assert.Equal(t, gormlogger.Warn, ParseLogLevel(""))
}

func TestGormLogger_Trace(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	gl := NewGormLogger(&logger.Logger{Logger: zap.New(core)}, gormlogger.Warn)
	ctx := context.Background()
	sqlFn := func() (string, int64) { return "SELECT 1", 1 }

	gl.Trace(ctx, time.Now(), sqlFn, nil)
	gl.Trace(ctx, time.Now(), sqlFn, gorm.ErrRecordNotFound)
	assert.Equal(t, 0, logs.Len())

	gl.Trace(ctx, time.Now(), sqlFn, errors.New("connection refused"))
	gl.Trace(ctx, time.Now().Add(-time.Second), sqlFn, nil)

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "GORM query failed", entries[0].Message)
		assert.Equal(t, "gorm", entries[0].ContextMap()["component"])
		assert.Equal(t, "GORM slow query", entries[1].Message)
	}

	gl.LogMode(gormlogger.Silent).Trace(ctx, time.Now(), sqlFn, errors.New("ignored"))
	assert.Equal(t, 2, logs.Len())
}
