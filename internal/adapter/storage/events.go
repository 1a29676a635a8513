package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/greencart/storefront/internal/core/domain"
	"github.com/greencart/storefront/internal/core/port"
)

var _ port.ShoppingEventsSaver = (*ShoppingEventsRepository)(nil)

// A ShoppingEventsRepository archives shopping events for offline
// analysis. Cart state itself is never persisted.
type ShoppingEventsRepository struct {
	sqldb sqldb
}

func NewShoppingEventsRepository(sqldb sqldb) ShoppingEventsRepository {
	return ShoppingEventsRepository{sqldb}
}

func (r ShoppingEventsRepository) SaveEvents(
	ctx context.Context, evts []domain.ShoppingEvent,
) (saveErr error) {
	const op = "ShoppingEventsRepository.SaveEvents"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	defer func() {
		if saveErr == nil {
			if err := tx.Commit(); err != nil {
				saveErr = fmt.Errorf("%s: failed to commit: %w", op, err)
			}
			return
		}

		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	query := `
		INSERT INTO shopping_events (
			event_id, action, product_id, quantity,
			category, search_term, occurred_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (event_id) DO NOTHING;
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare stmt: %w", op, err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close prepared stmt", "err", err)
		}
	}()

	for _, evt := range evts {
		_, err := stmt.ExecContext(ctx,
			evt.EventID, evt.Action, evt.ProductID, evt.Quantity,
			evt.Category, evt.SearchTerm, evt.OccurredAt,
		)
		if err != nil {
			return fmt.Errorf("%s: failed to exec: %w", op, err)
		}
	}

	return nil
}
