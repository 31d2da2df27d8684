package cache

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/joblens/aggregator/internal/domain"
)

func newTestCache(maxEntries int, ttl time.Duration) (*Cache, *time.Time) {
	clock := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	c := New(maxEntries, ttl)
	c.now = func() time.Time { return clock }
	return c, &clock
}

func jobs(ids ...string) []domain.Job {
	out := make([]domain.Job, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Job{ID: id})
	}
	return out
}

func TestKey_Deterministic(t *testing.T) {
	a := Key("jooble", map[string]string{"keywords": "go", "location": "berlin", "limit": "50"})
	b := Key("jooble", map[string]string{"limit": "50", "location": "berlin", "keywords": "go"})
	if a != b {
		t.Errorf("keys differ for identical params: %q vs %q", a, b)
	}
}

func TestKey_ProviderAndParamsDistinguish(t *testing.T) {
	a := Key("jooble", map[string]string{"keywords": "go"})
	b := Key("remotive", map[string]string{"keywords": "go"})
	c := Key("jooble", map[string]string{"keywords": "rust"})
	if a == b || a == c {
		t.Errorf("distinct queries collided: %q %q %q", a, b, c)
	}
}

func TestCache_SetThenGetHits(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	c.Set("k", jobs("a", "b"))

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit immediately after Set")
	}
	if !reflect.DeepEqual(got, jobs("a", "b")) {
		t.Errorf("Get = %v", got)
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	c, clock := newTestCache(10, time.Minute)
	c.SetTTL("k", jobs("a"), time.Second)

	if _, ok := c.Get("k"); !ok {
		t.Fatal("expected hit within TTL")
	}

	*clock = clock.Add(2 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss after TTL expiry")
	}
	// Expired read evicts the entry.
	if got := c.Stats().Entries; got != 0 {
		t.Errorf("entries after expired read = %d, want 0", got)
	}
}

func TestCache_CapacityEvictsEarliestInserted(t *testing.T) {
	c, _ := newTestCache(3, time.Minute)
	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("k%d", i), jobs("x"))
	}
	// Touch the oldest key: eviction is insertion-order, not LRU, so this
	// must not protect it.
	c.Get("k0")

	c.Set("k3", jobs("y"))

	if _, ok := c.Get("k0"); ok {
		t.Error("earliest-inserted key survived capacity eviction")
	}
	for _, k := range []string{"k1", "k2", "k3"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("key %s unexpectedly evicted", k)
		}
	}
	if got := c.Stats().Entries; got != 3 {
		t.Errorf("entries = %d, want 3", got)
	}
}

func TestCache_OverwriteKeepsInsertionSlot(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)
	c.Set("a", jobs("1"))
	c.Set("b", jobs("2"))
	c.Set("a", jobs("3")) // overwrite, no eviction

	if got := c.Stats().Entries; got != 2 {
		t.Fatalf("entries = %d, want 2", got)
	}
	c.Set("c", jobs("4")) // evicts "a", still the oldest insertion
	if _, ok := c.Get("a"); ok {
		t.Error("overwritten key should still be first out")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("key b unexpectedly evicted")
	}
}

func TestCache_Sweep(t *testing.T) {
	c, clock := newTestCache(10, time.Minute)
	c.SetTTL("short", jobs("a"), time.Second)
	c.SetTTL("long", jobs("b"), time.Hour)

	*clock = clock.Add(time.Minute)
	if n := c.Sweep(); n != 1 {
		t.Errorf("Sweep removed %d entries, want 1", n)
	}
	if _, ok := c.Get("long"); !ok {
		t.Error("unexpired entry removed by sweep")
	}
}

func TestCache_Stats(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	c.Set("k", jobs("a"))
	c.Get("k")
	c.Get("absent")

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.Entries != 1 || s.MaxEntries != 10 {
		t.Errorf("unexpected stats: %+v", s)
	}
}
