package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultSlowQueryThreshold marks spans for statements slower than this.
const DefaultSlowQueryThreshold = 200 * time.Millisecond

type queryStartKey struct{}

// RegisterGormTracing installs the otelgorm plugin plus callbacks that tag
// spans with the table name, rows affected and a slow-query flag.
// Query variables are never attached to spans.
func RegisterGormTracing(db *gorm.DB, dbSystem string, slow time.Duration, logger *zap.Logger) error {
	if slow <= 0 {
		slow = DefaultSlowQueryThreshold
	}
	if err := db.Use(otelgorm.NewPlugin(
		otelgorm.WithDBName(dbSystem),
		otelgorm.WithoutQueryVariables(),
	)); err != nil {
		return err
	}

	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) { annotateSpan(tx, slow) }

	cb := db.Callback()
	regs := []error{
		cb.Create().Before("gorm:create").Register("otel_timing:before_create", before),
		cb.Create().After("gorm:create").Register("otel_annotate:after_create", after),
		cb.Query().Before("gorm:query").Register("otel_timing:before_query", before),
		cb.Query().After("gorm:query").Register("otel_annotate:after_query", after),
		cb.Update().Before("gorm:update").Register("otel_timing:before_update", before),
		cb.Update().After("gorm:update").Register("otel_annotate:after_update", after),
		cb.Delete().Before("gorm:delete").Register("otel_timing:before_delete", before),
		cb.Delete().After("gorm:delete").Register("otel_annotate:after_delete", after),
		cb.Row().Before("gorm:row").Register("otel_timing:before_row", before),
		cb.Row().After("gorm:row").Register("otel_annotate:after_row", after),
		cb.Raw().Before("gorm:raw").Register("otel_timing:before_raw", before),
		cb.Raw().After("gorm:raw").Register("otel_annotate:after_raw", after),
	}
	if err := errors.Join(regs...); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.String("db_system", dbSystem),
		zap.Duration("slow_query_threshold", slow),
	)
	return nil
}

func annotateSpan(tx *gorm.DB, slow time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		RecordError(span, tx.Error)
	}
	if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > slow {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
