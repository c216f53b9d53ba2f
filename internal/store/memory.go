package store

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/tom88115/freight-weight-analyzer/internal/model"
)

// MemoryStore 内存存储。读写锁保护，插入期间持写锁完成去重检查，
// 查询拷贝快照返回，聚合计算不阻塞后续写入。
type MemoryStore struct {
	mu      sync.RWMutex
	records []model.ShippingRecord
	keys    map[string]bool // 去重键集合，与 records 同步维护
}

// NewMemoryStore 创建空的内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		keys: make(map[string]bool),
	}
}

// Insert 批量插入，缺少 ID 的记录自动分配
func (s *MemoryStore) Insert(records []model.ShippingRecord, skipDuplicates bool) (*InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := &InsertResult{}
	for _, r := range records {
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		key := r.DedupeKey()
		if skipDuplicates && s.keys[key] {
			result.Duplicates = append(result.Duplicates, r)
			continue
		}
		s.keys[key] = true
		s.records = append(s.records, r)
		result.Inserted = append(result.Inserted, r)
	}
	return result, nil
}

// Query 返回满足条件的记录快照
func (s *MemoryStore) Query(f Filter) ([]model.ShippingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]model.ShippingRecord, 0, len(s.records))
	for i := range s.records {
		if f.Match(&s.records[i]) {
			matched = append(matched, s.records[i])
		}
	}
	return matched, nil
}

// Count 返回满足条件的记录数
func (s *MemoryStore) Count(f Filter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for i := range s.records {
		if f.Match(&s.records[i]) {
			n++
		}
	}
	return n, nil
}

// Clear 清空全部记录
func (s *MemoryStore) Clear() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.records)
	s.records = nil
	s.keys = make(map[string]bool)
	return n, nil
}

// Stats 返回总数、日期范围与平台列表
func (s *MemoryStore) Stats() (*model.StoreStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &model.StoreStats{
		TotalRecords: len(s.records),
		Platforms:    []string{},
	}
	if len(s.records) == 0 {
		return stats, nil
	}

	minDate := s.records[0].DateKey()
	maxDate := minDate
	platformSet := make(map[string]bool)
	for i := range s.records {
		d := s.records[i].DateKey()
		if d < minDate {
			minDate = d
		}
		if d > maxDate {
			maxDate = d
		}
		if p := s.records[i].Platform; p != "" {
			platformSet[p] = true
		}
	}

	stats.DateRange = &model.MinMaxRange{Min: minDate, Max: maxDate}
	for p := range platformSet {
		stats.Platforms = append(stats.Platforms, p)
	}
	sort.Strings(stats.Platforms)
	return stats, nil
}

// Close 内存存储无需释放资源
func (s *MemoryStore) Close() error {
	return nil
}
