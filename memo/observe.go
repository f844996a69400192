package memo

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/on-the-ground/memo_ive_go/memo"

// instruments reports what a memoized function does. Logs and counters never
// see the wrapped function's errors.
type instruments struct {
	id     uuid.UUID
	name   string
	logger *zap.Logger

	hits      metric.Int64Counter
	misses    metric.Int64Counter
	keyErrors metric.Int64Counter
	attrs     metric.MeasurementOption
}

func newInstruments(c config) *instruments {
	id := uuid.New()
	meter := c.meter
	if meter == nil {
		meter = noop.NewMeterProvider().Meter(instrumentationName)
	}
	ins := &instruments{
		id:   id,
		name: c.name,
		logger: c.logger.With(
			zap.String("memo", c.name),
			zap.Stringer("memo_id", id),
		),
		attrs: metric.WithAttributes(attribute.String("memo.name", c.name)),
	}

	var err error
	if ins.hits, err = meter.Int64Counter(
		"memo.hits",
		metric.WithDescription("Calls answered from the memo table"),
	); err != nil {
		otel.Handle(err)
	}
	if ins.misses, err = meter.Int64Counter(
		"memo.misses",
		metric.WithDescription("Calls that ran the wrapped function"),
	); err != nil {
		otel.Handle(err)
	}
	if ins.keyErrors, err = meter.Int64Counter(
		"memo.key_errors",
		metric.WithDescription("Calls rejected because no key could be built"),
	); err != nil {
		otel.Handle(err)
	}
	return ins
}

func (ins *instruments) hit(k key) {
	ins.add(ins.hits)
	if ce := ins.logger.Check(zap.DebugLevel, "memo hit"); ce != nil {
		ce.Write(zap.Uint64("key_hash", k.Hash()))
	}
}

func (ins *instruments) miss(k key) {
	ins.add(ins.misses)
	if ce := ins.logger.Check(zap.DebugLevel, "memo miss"); ce != nil {
		ce.Write(zap.Uint64("key_hash", k.Hash()), zap.Int("key_len", len(k.parts)))
	}
}

func (ins *instruments) stored(k key, size int) {
	if ce := ins.logger.Check(zap.DebugLevel, "memo stored"); ce != nil {
		ce.Write(zap.Uint64("key_hash", k.Hash()), zap.Int("entries", size))
	}
}

func (ins *instruments) keyError(err error) {
	ins.add(ins.keyErrors)
	ins.logger.Debug("memo key rejected", zap.Error(err))
}

func (ins *instruments) add(c metric.Int64Counter) {
	if c != nil {
		c.Add(context.Background(), 1, ins.attrs)
	}
}
