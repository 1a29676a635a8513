package kafka

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/greencart/storefront/internal/core/domain"
	"github.com/greencart/storefront/internal/core/port"
	"github.com/greencart/storefront/pkg/schema"
	"github.com/lovoo/goka"
)

var _ port.TrendingReader = (*TrendingView)(nil)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor].
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// A shoppingEventCodec used for serde [schema.ShoppingEventV1]
type shoppingEventCodec struct {
	serde Serde
}

func newShoppingEventCodec(s Serde) shoppingEventCodec {
	return shoppingEventCodec{s}
}

func (c shoppingEventCodec) Encode(v any) ([]byte, error) {
	const op = "shoppingEventCodec.Encode"
	if _, ok := v.(schema.ShoppingEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c shoppingEventCodec) Decode(data []byte) (any, error) {
	const op = "shoppingEventCodec.Decode"
	var s schema.ShoppingEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// An addCount is the number of add-to-cart actions for one product.
type addCount int64

// An addCountCodec used for serde [addCount]
type addCountCodec struct{}

func (addCountCodec) Encode(v any) ([]byte, error) {
	const op = "addCountCodec.Encode"
	n, ok := v.(addCount)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return strconv.AppendInt([]byte(nil), int64(n), 10), nil
}

func (addCountCodec) Decode(data []byte) (any, error) {
	const op = "addCountCodec.Decode"
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return addCount(n), nil
}

// A TrendingProcessor aggregates add-to-cart events from the shopping
// events stream into a per-product counter group table.
type TrendingProcessor struct {
	opPrefix string
	proc     processor
}

func NewTrendingProc(
	seedBrokers []string,
	inputStream string,
	groupTable string,
	eventSerde Serde,
) (*TrendingProcessor, error) {
	const op = "NewTrendingProcessor"

	var p TrendingProcessor
	p.opPrefix = "TrendingProcessor"

	gg := goka.DefineGroup(goka.Group(groupTable),
		goka.Input(
			goka.Stream(inputStream),
			newShoppingEventCodec(eventSerde),
			p.processFn,
		),
		goka.Persist(addCountCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{
		opPrefix: p.opPrefix,
		gp:       gp,
	}
	return &p, nil
}

func (p *TrendingProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *TrendingProcessor) Close() {
	p.proc.close()
}

func (p *TrendingProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"
	log := slog.With("op", makeOp(p.opPrefix, op))

	event, _ := msg.(schema.ShoppingEventV1)
	if event.Action != domain.EventCartItemAdded {
		return
	}

	var n addCount
	if v := ctx.Value(); v != nil {
		n, _ = v.(addCount)
	}
	n++
	ctx.SetValue(n)
	log.Info("counted add to cart", "productID", event.ProductID, "count", int64(n))
}

// A TrendingView reads the per-product add counters materialized by
// [TrendingProcessor].
type TrendingView struct {
	gv *goka.View
}

func NewTrendingView(
	seedBrokers []string, groupTable string,
) (TrendingView, error) {
	const op = "NewTrendingView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(groupTable)),
		addCountCodec{},
		withNonlogViewOpt(),
	)
	if err != nil {
		return TrendingView{}, opErr(err, op)
	}
	return TrendingView{gv}, nil
}

func (v TrendingView) Run(ctx context.Context, stopFn context.CancelFunc) {
	const op = "TrendingView.Run"
	log := slog.With("op", op)

	defer stopFn()

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

// AddToCartCount returns the counter for productID,
// 0 when the product was never added.
func (v TrendingView) AddToCartCount(productID string) (int64, error) {
	const op = "TrendingView.AddToCartCount"

	val, err := v.gv.Get(productID)
	if err != nil {
		return 0, opErr(err, op)
	}
	if val == nil {
		return 0, nil
	}

	n, ok := val.(addCount)
	if !ok {
		return 0, opErr(ErrInvalidValueType, op)
	}
	return int64(n), nil
}
