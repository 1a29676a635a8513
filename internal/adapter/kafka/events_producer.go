package kafka

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/greencart/storefront/internal/core/domain"
	"github.com/greencart/storefront/internal/core/port"
	"github.com/greencart/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.ShoppingEventsProducer = (*ShoppingEventsProducer)(nil)

// A producer is used for composition.
//
// Producing records to the kafka broker and closing the
// underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(ctx context.Context, rs ...*kgo.Record) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// A ShoppingEventsProducer publishes [domain.ShoppingEvent] values,
// keyed by product id so downstream processors partition per product.
type ShoppingEventsProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewShoppingEventsProducer(
	opts ...ProducerOpt,
) (ShoppingEventsProducer, error) {
	const op = "NewShoppingEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ShoppingEventsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "ShoppingEventsProducer"
	return ShoppingEventsProducer{
		producer: producer{opPrefix: opPrefix, cl: options.cl},
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p ShoppingEventsProducer) Close() {
	p.producer.close()
}

func (p ShoppingEventsProducer) ProduceEvent(
	ctx context.Context, evt domain.ShoppingEvent,
) error {
	const op = "ProduceEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(evt)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, &r); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

func (p ShoppingEventsProducer) createRecord(
	evt domain.ShoppingEvent,
) (kgo.Record, error) {
	const op = "createRecord"

	s := p.toSchema(evt)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return kgo.Record{}, opErr(err, p.opPrefix, op)
	}
	msgKey := []byte(strconv.Itoa(s.ProductID))
	return kgo.Record{Key: msgKey, Value: b}, nil
}

func (ShoppingEventsProducer) toSchema(
	evt domain.ShoppingEvent,
) (s schema.ShoppingEventV1) {
	s.EventID = evt.EventID
	s.Action = evt.Action
	s.ProductID = evt.ProductID
	s.Quantity = evt.Quantity
	s.Category = evt.Category
	s.SearchTerm = evt.SearchTerm
	s.OccurredAt = evt.OccurredAt.UnixMilli()
	return s
}
