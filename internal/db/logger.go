package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger adapts a zap logger to gorm's logger.Interface.
// Queries are logged at debug; slow and failed queries at warn.
type GormLogger struct {
	log           *zap.Logger
	slowThreshold time.Duration
}

// NewGormLogger creates the adapter. A zero slowThreshold disables slow query warnings.
func NewGormLogger(log *zap.Logger, slowThreshold time.Duration) *GormLogger {
	if log == nil {
		log = zap.NewNop()
	}
	return &GormLogger{
		log:           log.Named("gorm"),
		slowThreshold: slowThreshold,
	}
}

// LogMode returns the adapter itself; the level is owned by zap.
func (l *GormLogger) LogMode(_ gormlogger.LogLevel) gormlogger.Interface {
	return l
}

func (l *GormLogger) Info(_ context.Context, msg string, data ...any) {
	l.log.Debug(fmt.Sprintf(msg, data...))
}

func (l *GormLogger) Warn(_ context.Context, msg string, data ...any) {
	l.log.Warn(fmt.Sprintf(msg, data...))
}

func (l *GormLogger) Error(_ context.Context, msg string, data ...any) {
	l.log.Error(fmt.Sprintf(msg, data...))
}

// Trace logs one executed statement.
func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		l.log.Warn("query error",
			zap.String("sql", sql),
			zap.Int64("rows_affected", rows),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
	case l.slowThreshold > 0 && elapsed > l.slowThreshold:
		l.log.Warn("slow query",
			zap.String("sql", sql),
			zap.Int64("rows_affected", rows),
			zap.Duration("elapsed", elapsed),
			zap.Duration("threshold", l.slowThreshold))
	default:
		l.log.Debug("sql query",
			zap.String("sql", sql),
			zap.Int64("rows_affected", rows),
			zap.Duration("elapsed", elapsed))
	}
}
