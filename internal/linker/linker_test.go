package linker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/tinker-fit/checkout/internal/domain"
)

// fakeStore is an in-memory linker target with call counters.
type fakeStore struct {
	mu      sync.Mutex
	docs    map[string]domain.Design
	nextID  int
	nextGen int

	getCalls    int
	insertCalls int

	failInsertID string
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: map[string]domain.Design{}}
}

func (f *fakeStore) Get(ctx context.Context, id string) (*domain.Design, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	d, ok := f.docs[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, domain.ErrNotFound)
	}
	return &d, nil
}

func (f *fakeStore) Insert(ctx context.Context, doc *domain.Design, id string) (domain.Meta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertCalls++
	if id != "" && id == f.failInsertID {
		return domain.Meta{}, errors.New("write rejected")
	}
	if id == "" {
		f.nextID++
		id = fmt.Sprintf("design-%d", f.nextID)
	}
	f.nextGen++
	rev := fmt.Sprintf("%d-rev", f.nextGen)
	stored := *doc
	stored.ID = id
	stored.Rev = rev
	f.docs[id] = stored
	return domain.Meta{ID: id, Rev: rev}, nil
}

func TestResolveRefs_CreatesUpdatesAndReads(t *testing.T) {
	store := newFakeStore()
	existing := domain.Design{ID: "design-existing", Rev: "1-rev", FrameID: 9}
	store.docs["design-existing"] = existing

	fresh := &domain.Design{FrameID: 1}
	update := &domain.Design{ID: "design-existing", Rev: "1-rev", FrameID: 9, Title: "renamed"}

	refs := []domain.Ref[domain.Design]{
		domain.DocRef(fresh),
		domain.DocRef(update),
		domain.IDRef[domain.Design]("design-existing"),
	}

	out, err := ResolveRefs[domain.Design, *domain.Design](context.Background(), refs, store)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 resolved entries, got %d", len(out))
	}

	// New document was created and stamped.
	if fresh.ID == "" || fresh.Rev == "" {
		t.Fatalf("fresh design not stamped: %+v", fresh)
	}
	// Existing document kept its id and had its rev refreshed.
	if update.ID != "design-existing" {
		t.Fatalf("update changed id: %q", update.ID)
	}
	if update.Rev == "1-rev" {
		t.Fatal("update did not refresh rev")
	}
	// Bare id became a read-through with no extra write.
	if out[2].Kind() != domain.RefDoc || out[2].Doc().FrameID != 9 {
		t.Fatalf("read-through entry not hydrated: %+v", out[2])
	}
	if store.insertCalls != 2 || store.getCalls != 1 {
		t.Fatalf("call counts: inserts=%d gets=%d", store.insertCalls, store.getCalls)
	}
}

func TestResolveRefs_InvalidEntryFailsWholeBatch(t *testing.T) {
	store := newFakeStore()

	var bad domain.Ref[domain.Design]
	if err := json.Unmarshal([]byte(`-5`), &bad); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	refs := []domain.Ref[domain.Design]{
		domain.DocRef(&domain.Design{FrameID: 2}),
		bad,
	}

	_, err := ResolveRefs[domain.Design, *domain.Design](context.Background(), refs, store)
	var invalid *domain.InvalidEntryError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidEntryError, got %v", err)
	}
	if !strings.Contains(invalid.Error(), "-5") {
		t.Fatalf("error does not name the offending value: %v", invalid)
	}
}

func TestResolveRefs_InsertFailureAbortsBatch(t *testing.T) {
	store := newFakeStore()
	store.failInsertID = "doomed"

	refs := []domain.Ref[domain.Design]{
		domain.DocRef(&domain.Design{FrameID: 1}),
		domain.DocRef(&domain.Design{ID: "doomed", FrameID: 2}),
	}

	_, err := ResolveRefs[domain.Design, *domain.Design](context.Background(), refs, store)
	if err == nil {
		t.Fatal("expected batch failure")
	}
	// Fail-fast with no partial-success reporting: entries that landed
	// before the failure stay written.
	if store.insertCalls == 0 {
		t.Fatal("expected at least one attempted insert")
	}
}

func TestResolveRefs_MissingReadThroughFailsBatch(t *testing.T) {
	store := newFakeStore()

	refs := []domain.Ref[domain.Design]{domain.IDRef[domain.Design]("absent")}
	_, err := ResolveRefs[domain.Design, *domain.Design](context.Background(), refs, store)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveRefs_EmptyBatch(t *testing.T) {
	store := newFakeStore()
	out, err := ResolveRefs[domain.Design, *domain.Design](context.Background(), nil, store)
	if err != nil || len(out) != 0 {
		t.Fatalf("expected empty result, got %v/%v", out, err)
	}
}
