// Package report 报表缓存。
package report

import (
	"sync"
	"time"
)

// DefaultTTL 缓存有效期
const DefaultTTL = 60 * time.Second

// Cache 单槽报表缓存：每种报表只保留最近一次计算结果，
// 记录数不变且未超过 TTL 时直接复用。
//
// 已知局限：TTL 窗口内"删除再导入"恰好保持记录数不变时会命中过期
// 数据，适用于低写入频率的内部看板场景。
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*entry
	now     func() time.Time
}

type entry struct {
	value       interface{}
	recordCount int
	storedAt    time.Time
}

// NewCache 创建缓存，ttl <= 0 时使用 DefaultTTL
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// GetOrCompute 命中时返回缓存值与 cached=true；否则执行 compute，
// 覆盖写入后返回新值。命中条件：该报表已有缓存、记录数相同、未超 TTL。
func (c *Cache) GetOrCompute(key string, recordCount int, compute func() interface{}) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		if e.recordCount == recordCount && c.now().Sub(e.storedAt) < c.ttl {
			return e.value, true
		}
	}

	value := compute()
	c.entries[key] = &entry{
		value:       value,
		recordCount: recordCount,
		storedAt:    c.now(),
	}
	return value, false
}

// Invalidate 主动失效某种报表的缓存（清空数据后调用）
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
