package sqlite

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/wordsaver"
)

var _ wordsaver.Subscription = (*subscription)(nil)

// subscription delivers collection snapshots. The channel holds at most one
// snapshot; a newer snapshot replaces an unread older one.
type subscription struct {
	svc *SavedWordService
	c   chan []*wordsaver.SavedTextItem

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// Subscribe returns a subscription that receives the whole collection after
// every change. Writes through s are delivered immediately; commits by other
// processes are picked up by polling SQLite's data_version. The subscription
// ends when ctx is done or Close is called.
func (s *SavedWordService) Subscribe(ctx context.Context) (wordsaver.Subscription, error) {
	version, err := s.db.DataVersion(ctx)
	if err != nil {
		return nil, err
	}

	sub := &subscription{
		svc:  s,
		c:    make(chan []*wordsaver.SavedTextItem, 1),
		done: make(chan struct{}),
	}

	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()

	go sub.poll(ctx, version)

	return sub, nil
}

// C returns the snapshot channel. It is closed after Close.
func (sub *subscription) C() <-chan []*wordsaver.SavedTextItem {
	return sub.c
}

// Close ends the subscription. It is safe to call more than once.
func (sub *subscription) Close() error {
	sub.svc.mu.Lock()
	delete(sub.svc.subs, sub)
	sub.svc.mu.Unlock()

	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed {
		return nil
	}
	sub.closed = true
	close(sub.done)
	close(sub.c)
	return nil
}

func (sub *subscription) deliver(items []*wordsaver.SavedTextItem) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed {
		return
	}
	select {
	case <-sub.c:
	default:
	}
	sub.c <- items
}

func (sub *subscription) poll(ctx context.Context, version int64) {
	defer sub.Close()

	ticker := time.NewTicker(sub.svc.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.done:
			return
		case <-ticker.C:
		}

		v, err := sub.svc.db.DataVersion(ctx)
		if err != nil || v == version {
			continue
		}
		version = v

		items, err := sub.svc.FindSavedWords(ctx, wordsaver.SavedWordFilter{})
		if err != nil {
			continue
		}
		sub.deliver(items)
	}
}

// notify pushes the current collection to every subscriber.
func (s *SavedWordService) notify(ctx context.Context) {
	s.mu.Lock()
	subs := make([]*subscription, 0, len(s.subs))
	for sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	if len(subs) == 0 {
		return
	}

	items, err := s.FindSavedWords(ctx, wordsaver.SavedWordFilter{})
	if err != nil {
		return
	}
	for _, sub := range subs {
		sub.deliver(items)
	}
}
