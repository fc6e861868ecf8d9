package cache

import (
	"testing"
	"time"
)

// fakeClock 让测试精确控制条目年龄，避免 sleep。
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache(cfg Config) (*Cache[string], *fakeClock) {
	c := New[string](cfg, nil)
	clock := &fakeClock{t: time.Unix(1000, 0)}
	c.now = clock.now
	return c, clock
}

func TestCache_Basic(t *testing.T) {
	c, _ := newTestCache(Config{Capacity: 3, DefaultTTL: time.Minute})

	c.Set("key1", "v1")

	got, ok := c.Get("key1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != "v1" {
		t.Errorf("expected v1, got %q", got)
	}

	if _, ok := c.Get("absent"); ok {
		t.Error("expected miss for absent key")
	}
}

func TestCache_TTLAndSWR(t *testing.T) {
	c, clock := newTestCache(Config{Capacity: 10, DefaultTTL: time.Minute, StaleGracePeriod: 30 * time.Second})

	c.Set("k", "v")

	// TTL 内: 新鲜。
	if !c.IsFresh("k") {
		t.Error("entry should be fresh immediately after set")
	}
	if c.IsStale("k") {
		t.Error("fresh entry should not be stale")
	}
	if _, ok := c.Get("k"); !ok {
		t.Error("fresh entry should hit")
	}

	// TTL 过后、宽限期内: stale-but-usable。
	clock.advance(61 * time.Second)
	if c.IsFresh("k") {
		t.Error("entry should not be fresh past its TTL")
	}
	if !c.IsStale("k") {
		t.Error("entry should be stale within the grace window")
	}
	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Errorf("stale entry should still serve, got (%q, %v)", got, ok)
	}

	// 超过宽限期: 按未命中处理并丢弃。
	clock.advance(30 * time.Second)
	if c.IsFresh("k") || c.IsStale("k") {
		t.Error("entry past the grace window should be neither fresh nor stale")
	}
	if _, ok := c.Get("k"); ok {
		t.Error("entry past the grace window should miss")
	}
	if size, _ := c.Stats(); size != 0 {
		t.Errorf("expired entry should be dropped, size=%d", size)
	}
}

func TestCache_SWRDisabled(t *testing.T) {
	c, clock := newTestCache(Config{Capacity: 10, DefaultTTL: time.Minute})

	c.Set("k", "v")
	clock.advance(61 * time.Second)

	if c.IsStale("k") {
		t.Error("with SWR disabled nothing is ever stale-but-usable")
	}
	if _, ok := c.Get("k"); ok {
		t.Error("expired entry should miss when SWR is disabled")
	}
}

func TestCache_TTLFixedAtInsertion(t *testing.T) {
	c, clock := newTestCache(Config{Capacity: 10, DefaultTTL: time.Minute})

	c.Set("k", "v")

	// 读取不得延长 TTL。
	clock.advance(50 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("entry should still be fresh")
	}
	clock.advance(20 * time.Second)
	if c.IsFresh("k") {
		t.Error("reads must not extend the entry's TTL")
	}
}

func TestCache_SetWithTTLOverride(t *testing.T) {
	c, clock := newTestCache(Config{Capacity: 10, DefaultTTL: time.Minute})

	c.SetWithTTL("k", "v", 10*time.Second)
	clock.advance(11 * time.Second)
	if c.IsFresh("k") {
		t.Error("per-entry TTL should override the default")
	}
}

func TestCache_LRUEviction(t *testing.T) {
	c, _ := newTestCache(Config{Capacity: 2, DefaultTTL: time.Minute})

	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("c", "3") // 淘汰 a

	if _, ok := c.Get("a"); ok {
		t.Error("a should have been evicted")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("b should exist")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c should exist")
	}
}

func TestCache_LRUTouchOnGet(t *testing.T) {
	c, _ := newTestCache(Config{Capacity: 2, DefaultTTL: time.Minute})

	c.Set("a", "1")
	c.Set("b", "2")
	c.Get("a")      // 触碰 a
	c.Set("c", "3") // 应淘汰 b 而不是 a

	if _, ok := c.Get("a"); !ok {
		t.Error("a was just touched and must not be evicted")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
}

func TestCache_StaleHitTouchesRecency(t *testing.T) {
	c, clock := newTestCache(Config{Capacity: 2, DefaultTTL: time.Second, StaleGracePeriod: time.Hour})

	c.Set("a", "1")
	c.Set("b", "2")

	// a 过期但仍被读取: 宽限期命中同样触碰最近使用位置。
	clock.advance(2 * time.Second)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("stale a should serve within grace window")
	}
	c.Set("c", "3") // 应淘汰 b

	if _, ok := c.Get("a"); !ok {
		t.Error("stale-but-read a must stay resident")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
}

func TestCache_CapacityZeroDisables(t *testing.T) {
	c, _ := newTestCache(Config{Capacity: 0, DefaultTTL: time.Minute})

	c.Set("k", "v")
	if _, ok := c.Get("k"); ok {
		t.Error("capacity 0 must make every set a no-op")
	}
	if size, _ := c.Stats(); size != 0 {
		t.Errorf("cache should stay empty, size=%d", size)
	}

	c2, _ := newTestCache(Config{Capacity: -1, DefaultTTL: time.Minute})
	c2.Set("k", "v")
	if _, ok := c2.Get("k"); ok {
		t.Error("negative capacity behaves as disabled")
	}
}

func TestCache_SetReplacesWholesale(t *testing.T) {
	c, clock := newTestCache(Config{Capacity: 2, DefaultTTL: time.Minute})

	c.Set("k", "old")
	clock.advance(50 * time.Second)
	c.Set("k", "new")
	clock.advance(30 * time.Second)

	// 替换后 TTL 重新计时。
	got, ok := c.Get("k")
	if !ok || got != "new" {
		t.Errorf("expected fresh replacement, got (%q, %v)", got, ok)
	}
}

func TestCache_DeleteByPrompt(t *testing.T) {
	c, _ := newTestCache(Config{Capacity: 10, DefaultTTL: time.Minute})

	c.Set("prompt:p:v1", "a")
	c.Set("prompt:p:production", "b")
	c.Set("prompt:p:latest", "c")
	c.Set("prompt:q:latest", "d")
	c.StartRefresh("prompt:p:latest")
	c.StartRefresh("prompt:q:latest")

	c.DeleteByPrompt("p")

	for _, key := range []string{"prompt:p:v1", "prompt:p:production", "prompt:p:latest"} {
		if _, ok := c.Get(key); ok {
			t.Errorf("%s should have been removed", key)
		}
	}
	if _, ok := c.Get("prompt:q:latest"); !ok {
		t.Error("other prompt names must be untouched")
	}
	if c.IsRefreshing("prompt:p:latest") {
		t.Error("refresh markers of removed keys must be cleared")
	}
	if !c.IsRefreshing("prompt:q:latest") {
		t.Error("refresh markers of other prompts must survive")
	}
}

func TestCache_RefreshMarkers(t *testing.T) {
	c, _ := newTestCache(Config{Capacity: 10, DefaultTTL: time.Minute})

	if c.IsRefreshing("k") {
		t.Error("no refresh should be marked initially")
	}
	c.StartRefresh("k")
	if !c.IsRefreshing("k") {
		t.Error("StartRefresh should mark the key")
	}
	c.EndRefresh("k")
	if c.IsRefreshing("k") {
		t.Error("EndRefresh should clear the key")
	}
}
