package order

import (
	"context"
	"errors"
)

// RunFeed subscribes to the store's change feed, primes the board with
// today's orders, and folds events in until ctx is cancelled. Events
// that change the board are re-published to hub for connected viewers.
// Subscribing before the initial fetch means a change landing in the
// gap is replayed onto the board rather than lost.
func (s *Service) RunFeed(ctx context.Context, board *Board, hub *Hub) error {
	events, err := s.repo.Subscribe(ctx)
	if err != nil {
		return err
	}

	if err := s.Resync(ctx, board); err != nil {
		return err
	}

	for ev := range events {
		if board.Apply(ev, s.Now()) && hub != nil {
			hub.Publish(ev)
		}
	}

	// A closed channel during normal teardown is fine; closed while the
	// context is still alive means the subscription died (e.g. a
	// dropped database connection) and the board would silently freeze.
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.New("orders feed closed unexpectedly")
}

// Resync reloads the board from the store, e.g. after a bulk purge.
func (s *Service) Resync(ctx context.Context, board *Board) error {
	orders, err := s.TodayOrders(ctx)
	if err != nil {
		return err
	}
	board.Load(orders, s.Now())
	return nil
}
