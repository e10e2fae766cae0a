package form

import (
	"context"
	"testing"

	"github.com/bancoplus/catalog/internal/products"
	"github.com/bancoplus/catalog/model"
)

var (
	_ ProductLister = (*products.ListCache)(nil)
	_ ProductLister = (*fakeRepository)(nil)
)

func prefillFixture() []model.Product {
	return []model.Product{
		{ID: "abc-1", Name: "Savings account", Description: "A basic savings account product.",
			Logo: "https://cdn.example.com/logo.png", DateRelease: "2026-03-15", DateRevision: "2027-03-15"},
		{ID: "abc-2", Name: "Credit card", Description: "A standard credit card product.",
			Logo: "https://cdn.example.com/cc.png", DateRelease: "2026-04-01", DateRevision: "2027-04-01"},
	}
}

func TestPrefillAppliesOncePerID(t *testing.T) {
	repo := newFakeRepository()
	repo.products = prefillFixture()

	var applied []Values
	p := NewPrefill(repo, func(v Values) { applied = append(applied, v) })

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		p.Load(ctx, "abc-1")
	}

	if len(applied) != 1 {
		t.Fatalf("apply calls = %d, want 1", len(applied))
	}
	if applied[0].Name != "Savings account" {
		t.Errorf("applied name = %q", applied[0].Name)
	}
	if repo.listed != 1 {
		t.Errorf("list fetches = %d, want 1", repo.listed)
	}
	if p.NotFound() || p.Err() != nil || p.Loading() {
		t.Errorf("unexpected state: notFound=%v err=%v loading=%v", p.NotFound(), p.Err(), p.Loading())
	}
}

func TestPrefillReArmsOnIDChange(t *testing.T) {
	repo := newFakeRepository()
	repo.products = prefillFixture()

	var applied []Values
	p := NewPrefill(repo, func(v Values) { applied = append(applied, v) })

	ctx := context.Background()
	p.Load(ctx, "abc-1")
	p.Load(ctx, "abc-2")
	p.Load(ctx, "abc-2")

	if len(applied) != 2 {
		t.Fatalf("apply calls = %d, want 2", len(applied))
	}
	if applied[1].ID != "abc-2" {
		t.Errorf("second applied id = %q", applied[1].ID)
	}
}

func TestPrefillEmptyID(t *testing.T) {
	repo := newFakeRepository()
	repo.products = prefillFixture()

	p := NewPrefill(repo, func(Values) { t.Error("apply must not run for an empty id") })
	p.Load(context.Background(), "")

	if !p.NotFound() {
		t.Error("empty id must report not found")
	}
	if repo.listed != 0 {
		t.Errorf("list fetches = %d, want 0", repo.listed)
	}
}

func TestPrefillMissingProduct(t *testing.T) {
	repo := newFakeRepository()
	repo.products = prefillFixture()

	p := NewPrefill(repo, func(Values) { t.Error("apply must not run for a missing product") })
	p.Load(context.Background(), "nope")

	if !p.NotFound() {
		t.Error("unmatched id must report not found")
	}
	if p.Err() != nil {
		t.Errorf("err = %v, want nil", p.Err())
	}
}

func TestPrefillFetchErrorRetries(t *testing.T) {
	repo := newFakeRepository()
	repo.products = prefillFixture()
	repo.listErr = model.NewNetworkError()

	var applied []Values
	p := NewPrefill(repo, func(v Values) { applied = append(applied, v) })

	ctx := context.Background()
	p.Load(ctx, "abc-1")

	if p.Err() == nil {
		t.Fatal("expected a fetch error")
	}
	if p.NotFound() {
		t.Error("a fetch failure is not a not-found")
	}
	if len(applied) != 0 {
		t.Fatal("apply must not run on fetch failure")
	}

	// The failure does not latch: once the backend recovers, the same id
	// prefills.
	repo.mu.Lock()
	repo.listErr = nil
	repo.mu.Unlock()
	p.Load(ctx, "abc-1")

	if p.Err() != nil {
		t.Fatalf("err after retry = %v", p.Err())
	}
	if len(applied) != 1 {
		t.Fatalf("apply calls after retry = %d, want 1", len(applied))
	}
}
