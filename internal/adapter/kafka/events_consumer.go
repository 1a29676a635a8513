package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/greencart/storefront/internal/core/domain"
	"github.com/greencart/storefront/internal/core/port"
	"github.com/greencart/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

type ConsumerOpt func(*consumerOpts) error

func ConsumerClientOpt(cl ConsumerClient) ConsumerOpt {
	return func(opts *consumerOpts) error {
		if cl == nil {
			return errors.New("consumer client is nil")
		}
		opts.cl = cl
		return nil
	}
}

func ConsumerEventsSaverOpt(s port.ShoppingEventsSaver) ConsumerOpt {
	return func(opts *consumerOpts) error {
		if s == nil {
			return errors.New("consumer events saver is nil")
		}
		opts.saver = s
		return nil
	}
}

func ConsumerDecoderOpt(decoder Decoder) ConsumerOpt {
	return func(opts *consumerOpts) error {
		if decoder == nil {
			return errors.New("consumer decoder is nil")
		}
		opts.decoder = decoder
		return nil
	}
}

type consumerOpts struct {
	cl      ConsumerClient
	saver   port.ShoppingEventsSaver
	decoder Decoder
}

// An EventsConsumer polls shopping events from the broker and hands
// each batch to the configured saver.
type EventsConsumer struct {
	cl       ConsumerClient
	saver    port.ShoppingEventsSaver
	decoder  Decoder
	errTimer *time.Timer
}

func NewEventsConsumer(opts ...ConsumerOpt) EventsConsumer {
	const op = "NewEventsConsumer"

	if len(opts) != 3 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options consumerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			panic(err) // develop mistake
		}
	}

	return EventsConsumer{
		cl:       options.cl,
		saver:    options.saver,
		decoder:  options.decoder,
		errTimer: time.NewTimer(0),
	}
}

func (c EventsConsumer) Close() {
	const op = "EventsConsumer.Close"
	log := slog.With("op", op)

	log.Info("closing consumer...")
	c.errTimer.Stop()
	c.cl.Close()
	log.Info("consumer is closed")
}

func (c EventsConsumer) Run(ctx context.Context) {
	const op = "EventsConsumer.Run"
	log := slog.With("op", op)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			err := c.consume(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					log.Info("context canceled")
					continue
				}
				err = fmt.Errorf("%s: %w", op, err)
				log.Error("failed to consume messages", "err", err)
				c.slowDown()
				continue
			}
			err = c.commit(ctx)
			if err != nil {
				log.Error("failed to commit offset", "err", err)
			}
		}
	}
}

func (c EventsConsumer) consume(ctx context.Context) error {
	const op = "EventsConsumer.consume"

	fetches, err := c.pollFetches(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if fetches.Empty() {
		return nil
	}

	evts := c.toEvents(fetches)
	if len(evts) == 0 {
		return nil
	}

	if err := c.saver.SaveEvents(ctx, evts); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c EventsConsumer) commit(ctx context.Context) error {
	const op = "EventsConsumer.commit"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.cl.CommitUncommittedOffsets(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c EventsConsumer) pollFetches(ctx context.Context) (kgo.Fetches, error) {
	const op = "EventsConsumer.pollFetches"

	fetches := c.cl.PollFetches(ctx)
	if err := fetches.Err0(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := c.handleErrs(fetches); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return fetches, nil
}

func (c EventsConsumer) handleErrs(fetches kgo.Fetches) error {
	var errsData []string
	fetches.EachError(func(t string, p int32, err error) {
		if err != nil {
			errsData = append(errsData, fmt.Sprintf(
				"topic %q partition %d: %q", t, p, err,
			))
		}
	})

	if len(errsData) != 0 {
		return errors.New(strings.Join(errsData, "; "))
	}
	return nil
}

func (c EventsConsumer) toEvents(fetches kgo.Fetches) (evts []domain.ShoppingEvent) {
	const op = "EventsConsumer.toEvents"
	log := slog.With("op", op)

	fetches.EachRecord(func(r *kgo.Record) {
		var s schema.ShoppingEventV1
		if err := c.decoder.Decode(r.Value, &s); err != nil {
			log.Error("failed to decode value", "err", fmt.Errorf("%s: %w", op, err))
			return
		}
		evts = append(evts, c.toDomain(s))
	})
	return evts
}

func (c EventsConsumer) toDomain(s schema.ShoppingEventV1) (evt domain.ShoppingEvent) {
	evt.EventID = s.EventID
	evt.Action = s.Action
	evt.ProductID = s.ProductID
	evt.Quantity = s.Quantity
	evt.Category = s.Category
	evt.SearchTerm = s.SearchTerm
	evt.OccurredAt = time.UnixMilli(s.OccurredAt).UTC()
	return evt
}

func (c EventsConsumer) slowDown() {
	const timeout = 1 * time.Second
	c.errTimer.Reset(timeout)
	<-c.errTimer.C
}
