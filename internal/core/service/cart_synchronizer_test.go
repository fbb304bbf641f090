package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/gymstore/storefront/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub cart backend
//
// Mirrors the real backend contract: every call answers with the full,
// authoritative cart representation.
// ---------------------------------------------------------------------------

type stubCartBackend struct {
	state   domain.CartState
	nextID  int64
	err     error // if set, every call fails with this error
	calls   []string
	touched map[int64]string // product names by id
}

func newStubCartBackend() *stubCartBackend {
	return &stubCartBackend{
		state:   domain.EmptyCart(),
		nextID:  1,
		touched: map[int64]string{1: "Proteína Whey", 2: "Shaker", 3: "Toalla"},
	}
}

func (b *stubCartBackend) snapshot() domain.CartState {
	items := make([]domain.CartItem, len(b.state.Items))
	copy(items, b.state.Items)
	total := int64(0)
	for i := range items {
		items[i].Subtotal = items[i].UnitPrice * int64(items[i].Quantity)
		total += items[i].Subtotal
	}
	b.state.Items = items
	b.state.Total = total
	return domain.CartState{Items: items, Total: total}
}

func (b *stubCartBackend) Fetch(_ context.Context, _ string) (domain.CartState, error) {
	b.calls = append(b.calls, "fetch")
	if b.err != nil {
		return domain.CartState{}, b.err
	}
	return b.snapshot(), nil
}

func (b *stubCartBackend) Add(_ context.Context, _ string, productID int64, quantity int) (domain.CartState, error) {
	b.calls = append(b.calls, "add")
	if b.err != nil {
		return domain.CartState{}, b.err
	}
	for i := range b.state.Items {
		if b.state.Items[i].ProductID == productID {
			b.state.Items[i].Quantity += quantity
			return b.snapshot(), nil
		}
	}
	b.state.Items = append(b.state.Items, domain.CartItem{
		ID:        b.nextID,
		ProductID: productID,
		Name:      b.touched[productID],
		UnitPrice: 10000,
		Quantity:  quantity,
	})
	b.nextID++
	return b.snapshot(), nil
}

func (b *stubCartBackend) UpdateItem(_ context.Context, _ string, itemID int64, quantity int) (domain.CartState, error) {
	b.calls = append(b.calls, "update")
	if b.err != nil {
		return domain.CartState{}, b.err
	}
	for i := range b.state.Items {
		if b.state.Items[i].ID == itemID {
			b.state.Items[i].Quantity = quantity
			return b.snapshot(), nil
		}
	}
	return domain.CartState{}, &domain.BackendError{StatusCode: 404, Message: "Item no encontrado"}
}

func (b *stubCartBackend) RemoveItem(_ context.Context, _ string, itemID int64) (domain.CartState, error) {
	b.calls = append(b.calls, "remove")
	if b.err != nil {
		return domain.CartState{}, b.err
	}
	items := b.state.Items[:0]
	for _, it := range b.state.Items {
		if it.ID != itemID {
			items = append(items, it)
		}
	}
	b.state.Items = items
	return b.snapshot(), nil
}

func (b *stubCartBackend) Empty(_ context.Context, _ string) (domain.CartState, error) {
	b.calls = append(b.calls, "empty")
	if b.err != nil {
		return domain.CartState{}, b.err
	}
	b.state = domain.EmptyCart()
	return b.snapshot(), nil
}

func clientSession() domain.Session {
	return domain.Session{Token: "tok", Role: domain.RoleCliente, UserID: 42}
}

// itemCount invariant: after any successful operation the count equals the
// sum of line quantities and every present line has quantity >= 1.
func assertCartInvariant(t *testing.T, state domain.CartState) {
	t.Helper()
	sum := 0
	for _, it := range state.Items {
		if it.Quantity < 1 {
			t.Fatalf("zero-quantity row present: %+v", it)
		}
		sum += it.Quantity
	}
	if state.ItemCount() != sum {
		t.Fatalf("itemCount %d != sum of quantities %d", state.ItemCount(), sum)
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestAddItem_ReplacesStateWholesale(t *testing.T) {
	backend := newStubCartBackend()
	sync := NewCartSynchronizer(backend, zerolog.Nop())

	state, err := sync.AddItem(context.Background(), "sid-1", clientSession(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.ItemCount() != 1 {
		t.Fatalf("expected itemCount 1, got %d", state.ItemCount())
	}
	if state.Total != 10000 {
		t.Fatalf("expected server-computed total 10000, got %d", state.Total)
	}
	assertCartInvariant(t, state)

	// The mirror holds the backend's response, not a local prediction.
	if got := sync.Current("sid-1"); got.ItemCount() != 1 {
		t.Fatalf("mirror not replaced, count=%d", got.ItemCount())
	}
}

func TestAddItem_UnauthenticatedGuard(t *testing.T) {
	backend := newStubCartBackend()
	sync := NewCartSynchronizer(backend, zerolog.Nop())

	_, err := sync.AddItem(context.Background(), "sid-1", domain.Anonymous, 1)
	if !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	if len(backend.calls) != 0 {
		t.Fatalf("backend reached without a session: %v", backend.calls)
	}
	if got := sync.Current("sid-1"); got.ItemCount() != 0 {
		t.Fatalf("state mutated without a session")
	}
}

func TestAddItem_BackendRejectionKeepsState(t *testing.T) {
	backend := newStubCartBackend()
	sync := NewCartSynchronizer(backend, zerolog.Nop())
	sess := clientSession()

	if _, err := sync.AddItem(context.Background(), "sid-1", sess, 1); err != nil {
		t.Fatalf("seed add: %v", err)
	}

	backend.err = &domain.BackendError{StatusCode: 400, Message: "Stock insuficiente"}
	_, err := sync.AddItem(context.Background(), "sid-1", sess, 2)

	var be *domain.BackendError
	if !errors.As(err, &be) || be.Message != "Stock insuficiente" {
		t.Fatalf("expected backend reason to surface, got %v", err)
	}
	if got := sync.Current("sid-1"); got.ItemCount() != 1 {
		t.Fatalf("failed mutation corrupted the mirror, count=%d", got.ItemCount())
	}
}

func TestSetQuantity_ZeroCollapsesToRemove(t *testing.T) {
	backend := newStubCartBackend()
	sync := NewCartSynchronizer(backend, zerolog.Nop())
	sess := clientSession()

	state, err := sync.AddItem(context.Background(), "sid-1", sess, 1)
	if err != nil {
		t.Fatalf("seed add: %v", err)
	}
	itemID := state.Items[0].ID

	state, err = sync.SetQuantity(context.Background(), "sid-1", sess, itemID, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, it := range state.Items {
		if it.ID == itemID {
			t.Fatalf("item %d still present after quantity 0", itemID)
		}
	}
	// The backend saw a deletion, never an invalid quantity.
	if last := backend.calls[len(backend.calls)-1]; last != "remove" {
		t.Fatalf("expected remove call, got %q", last)
	}
	assertCartInvariant(t, state)
}

func TestSetQuantity_UpdatesLine(t *testing.T) {
	backend := newStubCartBackend()
	sync := NewCartSynchronizer(backend, zerolog.Nop())
	sess := clientSession()

	state, _ := sync.AddItem(context.Background(), "sid-1", sess, 1)
	state, err := sync.SetQuantity(context.Background(), "sid-1", sess, state.Items[0].ID, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.ItemCount() != 3 {
		t.Fatalf("expected itemCount 3, got %d", state.ItemCount())
	}
	if state.Items[0].Subtotal != 30000 {
		t.Fatalf("expected server-computed subtotal 30000, got %d", state.Items[0].Subtotal)
	}
	assertCartInvariant(t, state)
}

func TestRefresh_FailureKeepsLastKnownState(t *testing.T) {
	backend := newStubCartBackend()
	sync := NewCartSynchronizer(backend, zerolog.Nop())
	sess := clientSession()

	if _, err := sync.AddItem(context.Background(), "sid-1", sess, 1); err != nil {
		t.Fatalf("seed add: %v", err)
	}

	backend.err = errors.New("connection refused")
	state, err := sync.Refresh(context.Background(), "sid-1", sess)
	if err == nil {
		t.Fatalf("expected error")
	}
	if state.ItemCount() != 1 {
		t.Fatalf("expected last known state, got count=%d", state.ItemCount())
	}
}

func TestSessionChanged_LoginRefetchesLogoutClears(t *testing.T) {
	backend := newStubCartBackend()
	backend.state.Items = []domain.CartItem{{ID: 1, ProductID: 2, Name: "Shaker", UnitPrice: 5000, Quantity: 2}}
	sync := NewCartSynchronizer(backend, zerolog.Nop())

	sync.SessionChanged(context.Background(), "sid-1", clientSession())
	if got := sync.Current("sid-1"); got.ItemCount() != 2 {
		t.Fatalf("login did not trigger refetch, count=%d", got.ItemCount())
	}

	sync.SessionChanged(context.Background(), "sid-1", domain.Anonymous)
	if got := sync.Current("sid-1"); got.ItemCount() != 0 {
		t.Fatalf("logout did not clear mirror, count=%d", got.ItemCount())
	}
}

func TestLoginAddUpdateClearScenario(t *testing.T) {
	// End to end over the real SessionManager: login with an admin token,
	// add, grow to three units, then reset.
	tokens := newStubTokenStore()
	backend := newStubCartBackend()
	mgr := NewSessionManager(tokens, zerolog.Nop())
	sync := NewCartSynchronizer(backend, zerolog.Nop())
	mgr.Subscribe(sync)

	ctx := context.Background()
	token := signToken(t, jwt.MapClaims{"user_id": 42, "role": "admin", "username": "ana"})

	sess, err := mgr.Login(ctx, "sid-1", token)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin, got %q", sess.Role)
	}

	state, err := sync.AddItem(ctx, "sid-1", sess, 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if state.ItemCount() != 1 {
		t.Fatalf("expected itemCount 1, got %d", state.ItemCount())
	}

	state, err = sync.SetQuantity(ctx, "sid-1", sess, state.Items[0].ID, 3)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if state.ItemCount() != 3 {
		t.Fatalf("expected itemCount 3, got %d", state.ItemCount())
	}

	state, err = sync.Clear(ctx, "sid-1", sess, false)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if state.ItemCount() != 0 {
		t.Fatalf("expected empty cart, got %d", state.ItemCount())
	}
}
