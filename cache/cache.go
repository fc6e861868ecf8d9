package cache

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Entry 缓存条目。TTL 在写入时固定，后续读取不会延长；
// 条目只会被整体替换，不做原地修改。
type Entry[T any] struct {
	Data      T             `json:"data"`
	FetchedAt time.Time     `json:"fetched_at"`
	TTL       time.Duration `json:"ttl"`
}

// Config 缓存配置。
type Config struct {
	// Capacity 最大条目数。≤ 0 时禁用缓存：Set 为空操作，Get 总是未命中。
	Capacity int
	// DefaultTTL 未显式指定 TTL 时使用的默认值。
	DefaultTTL time.Duration
	// StaleGracePeriod SWR 宽限期。TTL 过后、宽限期内的条目仍可返回；
	// 为 0 时关闭 SWR，TTL 过期即按未命中处理。
	StaleGracePeriod time.Duration
}

// DefaultConfig 默认配置。
func DefaultConfig() Config {
	return Config{
		Capacity:         100,
		DefaultTTL:       60 * time.Second,
		StaleGracePeriod: 30 * time.Second,
	}
}

// Cache Prompt 定义的本地 LRU 缓存（双向链表 + 索引表，O(1) 操作）。
type Cache[T any] struct {
	mu         sync.RWMutex
	config     Config
	items      map[string]*lruNode[T]
	head       *lruNode[T] // 最近使用
	tail       *lruNode[T] // 最久未使用
	refreshing map[string]struct{}
	logger     *zap.Logger
	metrics    *Metrics
	now        func() time.Time
}

type lruNode[T any] struct {
	key   string
	entry Entry[T]
	prev  *lruNode[T]
	next  *lruNode[T]
}

// New 创建缓存。logger 为 nil 时不输出日志。
func New[T any](config Config, logger *zap.Logger) *Cache[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache[T]{
		config:     config,
		items:      make(map[string]*lruNode[T]),
		refreshing: make(map[string]struct{}),
		logger:     logger,
		now:        time.Now,
	}
}

// WithMetrics 挂载 Prometheus 指标采集。返回接收者便于链式调用。
func (c *Cache[T]) WithMetrics(m *Metrics) *Cache[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = m
	return c
}

// Get 获取缓存。
//
// 未命中返回零值。TTL 内视为新鲜命中；TTL 过后、SWR 宽限期内
// 视为 stale-but-usable，同样返回数据；超过宽限期的条目按未命中
// 处理并被丢弃。新鲜命中与宽限期命中都会把条目移到最近使用端。
func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T

	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.items[key]
	if !ok {
		c.metrics.miss()
		return zero, false
	}

	age := c.now().Sub(node.entry.FetchedAt)
	switch {
	case age < node.entry.TTL:
		c.moveToHead(node)
		c.metrics.hit()
		c.logger.Debug("cache hit", zap.String("key", key))
		return node.entry.Data, true

	case c.config.StaleGracePeriod > 0 && age < node.entry.TTL+c.config.StaleGracePeriod:
		// 宽限期命中同样触碰最近使用位置（与原行为一致：
		// 持续被读取的过期条目不会被优先淘汰）。
		c.moveToHead(node)
		c.metrics.staleHit()
		c.logger.Debug("cache stale hit", zap.String("key", key), zap.Duration("age", age))
		return node.entry.Data, true

	default:
		// 超过宽限期：当作未命中并丢弃。
		c.removeNode(node)
		delete(c.items, key)
		c.metrics.miss()
		c.logger.Debug("cache entry expired past grace window", zap.String("key", key))
		return zero, false
	}
}

// IsFresh 判定条目是否在 TTL 内。只读，不触碰 LRU 顺序，也不淘汰条目。
func (c *Cache[T]) IsFresh(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	node, ok := c.items[key]
	if !ok {
		return false
	}
	return c.now().Sub(node.entry.FetchedAt) < node.entry.TTL
}

// IsStale 判定条目是否处于 SWR 宽限期内（TTL ≤ age < TTL + 宽限期）。
// 只读，不触碰 LRU 顺序。超过宽限期时 IsFresh 与 IsStale 都为 false。
func (c *Cache[T]) IsStale(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	node, ok := c.items[key]
	if !ok {
		return false
	}
	age := c.now().Sub(node.entry.FetchedAt)
	return age >= node.entry.TTL && age < node.entry.TTL+c.config.StaleGracePeriod
}

// Set 以默认 TTL 写入缓存。
func (c *Cache[T]) Set(key string, data T) {
	c.SetWithTTL(key, data, c.config.DefaultTTL)
}

// SetWithTTL 以指定 TTL 写入缓存。容量 ≤ 0 时为空操作。
// 已存在的键被整体替换并移到最近使用端；达到容量时先淘汰
// 最久未使用的条目。
func (c *Cache[T]) SetWithTTL(key string, data T, ttl time.Duration) {
	if c.config.Capacity <= 0 {
		return
	}
	if ttl <= 0 {
		ttl = c.config.DefaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry := Entry[T]{Data: data, FetchedAt: c.now(), TTL: ttl}

	if node, ok := c.items[key]; ok {
		node.entry = entry
		c.moveToHead(node)
		return
	}

	if len(c.items) >= c.config.Capacity {
		c.evictTail()
	}

	node := &lruNode[T]{key: key, entry: entry}
	c.items[key] = node
	c.addToHead(node)
	c.logger.Debug("cache set", zap.String("key", key), zap.Duration("ttl", ttl))
}

// Delete 删除单个键。
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.items[key]; ok {
		c.removeNode(node)
		delete(c.items, key)
	}
}

// DeleteByPrompt 删除指定 Prompt 名的全部键（所有版本与标签），
// 并清除这些键上进行中的刷新标记。
func (c *Cache[T]) DeleteByPrompt(name string) {
	prefix := keyPrefix(name)

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, node := range c.items {
		if strings.HasPrefix(key, prefix) {
			c.removeNode(node)
			delete(c.items, key)
		}
	}
	for key := range c.refreshing {
		if strings.HasPrefix(key, prefix) {
			delete(c.refreshing, key)
		}
	}
	c.logger.Debug("cache invalidated by prompt", zap.String("prompt", name))
}

// Clear 清空全部条目与刷新标记。
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*lruNode[T])
	c.refreshing = make(map[string]struct{})
	c.head = nil
	c.tail = nil
}

// Stats 返回当前条目数与容量。
func (c *Cache[T]) Stats() (size int, capacity int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items), c.config.Capacity
}

// ============================================================
// single-flight 刷新标记
// ============================================================
// 缓存本身从不触发刷新。约定：决定回源的调用方先查 IsRefreshing，
// 再用 StartRefresh/EndRefresh 包住自己的拉取。缓存不强制这一约定。

// IsRefreshing 判定指定键是否已有进行中的刷新。
func (c *Cache[T]) IsRefreshing(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.refreshing[key]
	return ok
}

// StartRefresh 标记指定键开始刷新。
func (c *Cache[T]) StartRefresh(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshing[key] = struct{}{}
}

// EndRefresh 清除指定键的刷新标记。
func (c *Cache[T]) EndRefresh(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.refreshing, key)
}

// ============================================================
// LRU 链表操作（O(1)）
// ============================================================

func (c *Cache[T]) addToHead(node *lruNode[T]) {
	node.prev = nil
	node.next = c.head
	if c.head != nil {
		c.head.prev = node
	}
	c.head = node
	if c.tail == nil {
		c.tail = node
	}
}

func (c *Cache[T]) removeNode(node *lruNode[T]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		c.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		c.tail = node.prev
	}
}

func (c *Cache[T]) moveToHead(node *lruNode[T]) {
	if node == c.head {
		return
	}
	c.removeNode(node)
	c.addToHead(node)
}

func (c *Cache[T]) evictTail() {
	if c.tail == nil {
		return
	}
	evicted := c.tail.key
	delete(c.items, evicted)
	c.removeNode(c.tail)
	c.metrics.eviction()
	c.logger.Debug("cache evicted", zap.String("key", evicted))
}
