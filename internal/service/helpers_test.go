package service

import (
	"context"
	"sync"
	"testing"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/pkg/session"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []map[string]any
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, key string, event map[string]any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e["type"].(string))
	}
	return out
}

type testEnv struct {
	repo     *repo.GormRepo
	sessions *session.MemoryStore
	events   *recordingPublisher
	cart     *CartService
	checkout *CheckoutService
	catalog  *CatalogService
	mugs     *models.Category
	tees     *models.Category
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	gdb, err := db.Open(ctx, "sqlite:file:"+uuid.NewString()+"?mode=memory&_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	require.NoError(t, repo.Migrate(gdb))

	r := &repo.GormRepo{DB: gdb}
	store := session.NewMemoryStore()
	pub := &recordingPublisher{}

	env := &testEnv{
		repo:     r,
		sessions: store,
		events:   pub,
		cart:     &CartService{Repo: r, Sessions: store, Events: pub},
		checkout: &CheckoutService{Repo: r, Sessions: store, Events: pub},
		catalog:  &CatalogService{Repo: r, Events: pub},
	}
	env.mugs, err = env.catalog.CreateCategory(ctx, models.CategoryMugs)
	require.NoError(t, err)
	env.tees, err = env.catalog.CreateCategory(ctx, models.CategoryTShirts)
	require.NoError(t, err)
	return env
}

func (e *testEnv) product(t *testing.T, cat *models.Category, name, price string) *models.Product {
	t.Helper()
	p, err := e.catalog.CreateProduct(context.Background(), NewProductInput{
		CategoryID: cat.ID,
		Name:       name,
		UnitPrice:  decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return p
}

func (e *testEnv) cartToken(t *testing.T, sid string) string {
	t.Helper()
	tok, err := e.sessions.Get(context.Background(), sid, session.CartTokenKey)
	require.NoError(t, err)
	return tok
}

func validCheckout() CheckoutInput {
	return CheckoutInput{
		Customer: CustomerDetails{
			Email:     "jane@example.com",
			Phone:     "0412 345 678",
			FirstName: "Jane",
			LastName:  "Citizen",
			Street:    "1 Collins St",
			Suburb:    "Melbourne",
			State:     "vic",
			Postcode:  "3000",
		},
		Payment: PaymentDetails{
			CardNumber: "4111 1111 1111 1111",
			Expiry:     "12/29",
			CVC:        "123",
		},
	}
}
