// Package cartstore maintains the single local mirror of the backend cart,
// persists its id across sessions, and notifies subscribers of state changes.
package cartstore

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"sme-storefront/internal/domain"
)

// ErrNoActiveCart is returned by mutating operations when no cart mirror
// exists. Distinct from backend errors so callers can prompt initialization.
var ErrNoActiveCart = errors.New("no active cart")

// Backend is the subset of the commerce client the store depends on.
type Backend interface {
	CreateCart(ctx context.Context, regionID string) (*domain.Cart, error)
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
	AddLineItem(ctx context.Context, cartID, variantID string, quantity int) (*domain.Cart, error)
	UpdateLineItem(ctx context.Context, cartID, lineItemID string, quantity int) (*domain.Cart, error)
	RemoveLineItem(ctx context.Context, cartID, lineItemID string) (*domain.Cart, error)
}

// Subscriber receives the mirror and the loading flag on every broadcast.
type Subscriber func(cart *domain.Cart, loading bool)

type subscription struct {
	id int
	fn Subscriber
}

// Store owns the cart mirror. The mirror is only ever replaced with the
// authoritative backend response, never mutated optimistically. Mutating
// operations are serialized by a single-writer mutex so that two concurrent
// calls cannot leave the mirror reflecting the older response.
type Store struct {
	backend  Backend
	ids      IDStore
	regionID string
	logger   *log.Logger

	opMu sync.Mutex // serializes mutating operations

	mu      sync.Mutex // guards the fields below
	cart    *domain.Cart
	loading bool
	subs    []subscription
	nextSub int
}

func New(backend Backend, ids IDStore, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{backend: backend, ids: ids, logger: logger}
}

// SetRegion pins the region used when creating new carts. Empty means the
// backend's default region.
func (s *Store) SetRegion(regionID string) {
	s.regionID = regionID
}

// Initialize retrieves the cart behind the stored id, discarding the id and
// creating a fresh cart when retrieval fails. Broadcasts loading state around
// the network calls.
func (s *Store) Initialize(ctx context.Context) (*domain.Cart, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.initializeLocked(ctx)
}

func (s *Store) initializeLocked(ctx context.Context) (*domain.Cart, error) {
	s.setLoading(true)

	if id, ok := s.ids.Get(); ok {
		cart, err := s.backend.GetCart(ctx, id)
		if err == nil {
			s.replaceMirror(cart)
			return cart, nil
		}
		// Stored cart is gone or expired. Forget it and fall through to
		// creation.
		s.logger.Printf("stored cart %s not retrievable, creating new cart: %v", id, err)
		s.clearStored()
	}

	cart, err := s.backend.CreateCart(ctx, s.regionID)
	if err != nil {
		s.setLoading(false)
		return nil, err
	}
	if err := s.ids.Set(cart.ID); err != nil {
		s.logger.Printf("persist cart id: %v", err)
	}
	s.replaceMirror(cart)
	return cart, nil
}

// Current returns the mirror if present, otherwise attempts a single
// retrieval via the stored id. Never creates a cart; retrieval failure
// degrades to no cart.
func (s *Store) Current(ctx context.Context) (*domain.Cart, error) {
	if cart := s.mirror(); cart != nil {
		return cart, nil
	}

	id, ok := s.ids.Get()
	if !ok {
		return nil, nil
	}

	cart, err := s.backend.GetCart(ctx, id)
	if err != nil {
		s.clearStored()
		return nil, nil
	}

	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()
	return cart, nil
}

// AddItem appends the variant to the cart, initializing one first if needed.
func (s *Store) AddItem(ctx context.Context, variantID string, quantity int) (*domain.Cart, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.setLoading(true)

	cart := s.mirror()
	if cart == nil {
		var err error
		cart, err = s.initializeLocked(ctx)
		if err != nil {
			s.setLoading(false)
			return nil, err
		}
	}

	updated, err := s.backend.AddLineItem(ctx, cart.ID, variantID, quantity)
	if err != nil {
		s.setLoading(false)
		return nil, err
	}
	s.replaceMirror(updated)
	return updated, nil
}

// UpdateItemQuantity sets the line item's quantity; zero or negative removes
// the line item.
func (s *Store) UpdateItemQuantity(ctx context.Context, lineItemID string, quantity int) (*domain.Cart, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	cart := s.mirror()
	if cart == nil {
		return nil, ErrNoActiveCart
	}

	s.setLoading(true)

	var (
		updated *domain.Cart
		err     error
	)
	if quantity <= 0 {
		updated, err = s.backend.RemoveLineItem(ctx, cart.ID, lineItemID)
	} else {
		updated, err = s.backend.UpdateLineItem(ctx, cart.ID, lineItemID, quantity)
	}
	if err != nil {
		s.setLoading(false)
		return nil, err
	}
	s.replaceMirror(updated)
	return updated, nil
}

// RemoveItem deletes the line item from the cart.
func (s *Store) RemoveItem(ctx context.Context, lineItemID string) (*domain.Cart, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	cart := s.mirror()
	if cart == nil {
		return nil, ErrNoActiveCart
	}

	s.setLoading(true)

	updated, err := s.backend.RemoveLineItem(ctx, cart.ID, lineItemID)
	if err != nil {
		s.setLoading(false)
		return nil, err
	}
	s.replaceMirror(updated)
	return updated, nil
}

// ItemCount is a pure read of the mirror.
func (s *Store) ItemCount() int {
	cart := s.mirror()
	if cart == nil {
		return 0
	}
	return cart.ItemCount()
}

// Reset forgets the stored id and nulls the mirror, e.g. after checkout
// completes.
func (s *Store) Reset() {
	s.clearStored()
}

// Subscribe registers the callback, immediately invokes it with the current
// state, and returns an unsubscribe function. Broadcasts are delivered to
// subscribers in registration order.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	cart, loading := s.cart, s.loading
	s.mu.Unlock()

	fn(cart, loading)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) mirror() *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
	s.broadcast()
}

func (s *Store) replaceMirror(cart *domain.Cart) {
	s.mu.Lock()
	s.cart = cart
	s.loading = false
	s.mu.Unlock()
	s.broadcast()
}

func (s *Store) clearStored() {
	if err := s.ids.Clear(); err != nil {
		s.logger.Printf("clear cart id: %v", err)
	}
	s.mu.Lock()
	s.cart = nil
	s.mu.Unlock()
	s.broadcast()
}

// broadcast snapshots state and subscribers under the lock, then invokes the
// callbacks outside it so a subscriber may call back into the store.
func (s *Store) broadcast() {
	s.mu.Lock()
	cart, loading := s.cart, s.loading
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(cart, loading)
	}
}
