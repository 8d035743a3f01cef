package kvstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestPutAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := sample{Name: "ward", Count: 3}
	if err := s.Put(ctx, "k", in); err != nil {
		t.Fatalf("put: %v", err)
	}

	var out sample
	if err := s.Get(ctx, "k", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out != in {
		t.Errorf("expected %+v, got %+v", in, out)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t)

	var out sample
	err := s.Get(context.Background(), "nope", &out)
	if !errors.Is(err, ErrAbsent) {
		t.Errorf("expected ErrAbsent, got %v", err)
	}
}

func TestSentinelPayloadsAreAbsent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, raw := range []string{"", "undefined", "null"} {
		if err := s.putRaw(ctx, "k", []byte(raw)); err != nil {
			t.Fatalf("putRaw: %v", err)
		}
		var out sample
		if err := s.Get(ctx, "k", &out); !errors.Is(err, ErrAbsent) {
			t.Errorf("payload %q: expected ErrAbsent, got %v", raw, err)
		}
	}
}

func TestCorruptPayloadClearedOnRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.putRaw(ctx, "k", []byte("{not json")); err != nil {
		t.Fatalf("putRaw: %v", err)
	}

	var out sample
	if err := s.Get(ctx, "k", &out); !errors.Is(err, ErrAbsent) {
		t.Fatalf("expected ErrAbsent for corrupt payload, got %v", err)
	}

	// the corrupt row must be gone, so a raw read sees no row at all
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM state WHERE key = 'k'`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Error("corrupt payload was not cleared")
	}
}

func TestOverwrite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "k", sample{Name: "a"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, "k", sample{Name: "b"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	var out sample
	if err := s.Get(ctx, "k", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Name != "b" {
		t.Errorf("expected b, got %s", out.Name)
	}
}

func TestDeleteMissingKey(t *testing.T) {
	s := newTestStore(t)
	if err := s.Delete(context.Background(), "absent"); err != nil {
		t.Errorf("delete of missing key must not error: %v", err)
	}
}

func TestPutAsyncDurable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.PutAsync("k", sample{Name: "async", Count: 9})
	s.pending.Wait()

	var out sample
	if err := s.Get(ctx, "k", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Name != "async" || out.Count != 9 {
		t.Errorf("unexpected value %+v", out)
	}
}
