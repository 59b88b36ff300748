package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// Queries slower than this are logged at warn level. Ballot upserts
// run serializable transactions, a slow query here usually means lock
// contention during a voting rush.
const slowQueryThreshold = 200 * time.Millisecond

// queryLogger routes gorm's log output through zerolog.
type queryLogger struct {
	Logger zerolog.Logger
}

func (l *queryLogger) LogMode(gorm_logger.LogLevel) gorm_logger.Interface {
	return l
}

func (l *queryLogger) Info(_ context.Context, s string, args ...interface{}) {
	l.Logger.Info().Msgf(s, args...)
}

func (l *queryLogger) Warn(_ context.Context, s string, args ...interface{}) {
	l.Logger.Warn().Msgf(s, args...)
}

func (l *queryLogger) Error(_ context.Context, s string, args ...interface{}) {
	l.Logger.Error().Msgf(s, args...)
}

func (l *queryLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	event := l.Logger.Debug()
	switch {
	case err != nil && !errors.Is(err, ErrResourceNotFound):
		l.Logger.Error().Err(err).Str("sql", sql).Dur("duration", elapsed).Msg("query error")
		return
	case elapsed > slowQueryThreshold:
		event = l.Logger.Warn()
	}

	event.Str("sql", sql).Int64("rows", rows).Dur("duration", elapsed).Msg("query")
}
