package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"travel-map/mapsurface"
	"travel-map/store"

	"github.com/golang-jwt/jwt/v5"
)

func newTestManager(secret string) *Manager {
	return NewManager(store.New(testCatalog(), testRoutes()), Config{
		Provider:   &mapsurface.HeadlessProvider{APIKey: "test"},
		Directions: &fakeDirections{},
	}, []byte(secret), time.Hour)
}

func TestManagerTokenRoundTrip(t *testing.T) {
	m := newTestManager("secret")

	s, token, err := m.Create(context.Background())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := m.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != s {
		t.Error("resolved a different session")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d", m.Len())
	}
}

func TestManagerRejectsForeignTokens(t *testing.T) {
	m := newTestManager("secret")
	_, token, err := newTestManager("other").Create(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.Resolve(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign secret: err = %v, want ErrInvalidToken", err)
	}
	if _, err := m.Resolve("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage: err = %v, want ErrInvalidToken", err)
	}

	claims := &Claims{
		SessionID: "x",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			Issuer:    Issuer,
		},
	}
	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if _, err := m.Resolve(expired); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired: err = %v, want ErrInvalidToken", err)
	}

	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Minute))
	claims.Issuer = "someone-else"
	wrongIssuer, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if _, err := m.Resolve(wrongIssuer); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong issuer: err = %v, want ErrInvalidToken", err)
	}
}

func TestManagerUnknownSession(t *testing.T) {
	m := newTestManager("secret")
	claims := &Claims{
		SessionID: "gone",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			Issuer:    Issuer,
		},
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if _, err := m.Resolve(token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestManagerSessionsAreIndependent(t *testing.T) {
	m := newTestManager("secret")
	a, _, _ := m.Create(context.Background())
	b, _, _ := m.Create(context.Background())
	if a.ID() == b.ID() {
		t.Fatal("session ids collide")
	}

	a.SelectDay(3)
	a.OpenInfo()
	if sel := b.Selection(); sel.Day != 1 || sel.InfoOpen {
		t.Errorf("session b affected by a: %+v", sel)
	}
}

func TestManagerPrune(t *testing.T) {
	m := newTestManager("secret")
	s, _, _ := m.Create(context.Background())

	if n := m.Prune(time.Now()); n != 0 {
		t.Errorf("pruned %d fresh sessions", n)
	}
	if n := m.Prune(time.Now().Add(2 * time.Hour)); n != 1 {
		t.Errorf("pruned %d, want 1", n)
	}
	if _, ok := m.Get(s.ID()); ok {
		t.Error("session still present after prune")
	}
}

func TestManagerMaxSessions(t *testing.T) {
	m := newTestManager("secret")
	m.MaxSessions = 2
	ctx := context.Background()

	first, _, err := m.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, _, err := m.Create(ctx); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, _, err := m.Create(ctx); !errors.Is(err, ErrTooManySessions) {
		t.Fatalf("third Create err = %v, want ErrTooManySessions", err)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}

	// 空闲会话在达到上限时先被清理
	first.mu.Lock()
	first.lastSeen = time.Now().Add(-2 * time.Hour)
	first.mu.Unlock()

	if _, _, err := m.Create(ctx); err != nil {
		t.Fatalf("Create after idle session: %v", err)
	}
	if _, ok := m.Get(first.ID()); ok {
		t.Error("idle session should have been pruned")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}
