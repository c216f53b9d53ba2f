package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/tom88115/freight-weight-analyzer/internal/model"
)

var (
	_ RecordStore = (*MemoryStore)(nil)
	_ RecordStore = (*SQLiteStore)(nil)
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func rec(orderNumber, dateStr, carrier, platform string, weight, cost, amount float64) model.ShippingRecord {
	return model.ShippingRecord{
		OrderNumber: orderNumber,
		Weight:      weight,
		Cost:        cost,
		OrderAmount: amount,
		Carrier:     carrier,
		Platform:    platform,
		Date:        day(dateStr),
		WeightRange: "2-3kg",
	}
}

// 两种实现跑同一组契约用例
func withStores(t *testing.T, fn func(t *testing.T, s RecordStore)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemoryStore())
	})
	t.Run("sqlite", func(t *testing.T) {
		s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "freight.db"))
		if err != nil {
			t.Fatalf("init sqlite store: %v", err)
		}
		t.Cleanup(func() { _ = s.Close() })
		fn(t, s)
	})
}

func TestInsert_AssignsIDs(t *testing.T) {
	withStores(t, func(t *testing.T, s RecordStore) {
		res, err := s.Insert([]model.ShippingRecord{
			rec("SF001", "2024-01-01", "顺丰", "天猫", 2.5, 8, 100),
		}, true)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if len(res.Inserted) != 1 || res.Inserted[0].ID == "" {
			t.Fatalf("expected inserted record with generated id, got %+v", res.Inserted)
		}
	})
}

func TestInsert_SkipDuplicates(t *testing.T) {
	withStores(t, func(t *testing.T, s RecordStore) {
		first, err := s.Insert([]model.ShippingRecord{
			rec("SF001", "2024-01-01", "顺丰", "天猫", 2.5, 8, 100),
		}, true)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if len(first.Inserted) != 1 || len(first.Duplicates) != 0 {
			t.Fatalf("first insert: %d inserted, %d duplicates", len(first.Inserted), len(first.Duplicates))
		}

		// 同键再插：应整体落入 duplicates
		second, err := s.Insert([]model.ShippingRecord{
			rec("SF001", "2024-01-01", "圆通", "京东", 5, 12, 200),
		}, true)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if len(second.Inserted) != 0 || len(second.Duplicates) != 1 {
			t.Fatalf("second insert: %d inserted, %d duplicates", len(second.Inserted), len(second.Duplicates))
		}

		n, err := s.Count(Filter{})
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if n != 1 {
			t.Fatalf("expected 1 stored record, got %d", n)
		}
	})
}

func TestInsert_DedupeWithinBatch(t *testing.T) {
	withStores(t, func(t *testing.T, s RecordStore) {
		res, err := s.Insert([]model.ShippingRecord{
			rec("SF001", "2024-01-01", "顺丰", "天猫", 2.5, 8, 100),
			rec("SF001", "2024-01-01", "顺丰", "天猫", 2.5, 8, 100),
			rec("SF001", "2024-01-02", "顺丰", "天猫", 2.5, 8, 100), // 日期不同，不算重复
		}, true)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if len(res.Inserted) != 2 || len(res.Duplicates) != 1 {
			t.Fatalf("got %d inserted, %d duplicates", len(res.Inserted), len(res.Duplicates))
		}
	})
}

func TestInsert_NoDedupe(t *testing.T) {
	withStores(t, func(t *testing.T, s RecordStore) {
		res, err := s.Insert([]model.ShippingRecord{
			rec("SF001", "2024-01-01", "顺丰", "天猫", 2.5, 8, 100),
			rec("SF001", "2024-01-01", "顺丰", "天猫", 2.5, 8, 100),
		}, false)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if len(res.Inserted) != 2 || len(res.Duplicates) != 0 {
			t.Fatalf("got %d inserted, %d duplicates", len(res.Inserted), len(res.Duplicates))
		}
	})
}

func TestQuery_Filters(t *testing.T) {
	withStores(t, func(t *testing.T, s RecordStore) {
		_, err := s.Insert([]model.ShippingRecord{
			rec("A1", "2024-01-01", "顺丰", "天猫", 2.5, 8, 100),
			rec("A2", "2024-01-05", "圆通", "京东", 5, 12, 200),
			rec("A3", "2024-01-10", "顺丰", "抖音", 10, 20, 300),
		}, true)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}

		all, err := s.Query(Filter{})
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 records, got %d", len(all))
		}

		byCarrier, err := s.Query(Filter{Carrier: "顺丰"})
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if len(byCarrier) != 2 {
			t.Fatalf("expected 2 顺丰 records, got %d", len(byCarrier))
		}

		from := day("2024-01-02")
		to := day("2024-01-10")
		byDate, err := s.Query(Filter{DateFrom: &from, DateTo: &to})
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if len(byDate) != 2 {
			t.Fatalf("expected 2 records in range, got %d", len(byDate))
		}

		// 闭区间：边界日期应包含
		from2 := day("2024-01-01")
		lower, err := s.Query(Filter{DateFrom: &from2})
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if len(lower) != 3 {
			t.Fatalf("inclusive lower bound: expected 3, got %d", len(lower))
		}

		combined, err := s.Query(Filter{Carrier: "顺丰", DateFrom: &from})
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if len(combined) != 1 || combined[0].OrderNumber != "A3" {
			t.Fatalf("combined filter: %+v", combined)
		}
	})
}

func TestClearAndStats(t *testing.T) {
	withStores(t, func(t *testing.T, s RecordStore) {
		empty, err := s.Stats()
		if err != nil {
			t.Fatalf("stats: %v", err)
		}
		if empty.TotalRecords != 0 || empty.DateRange != nil || len(empty.Platforms) != 0 {
			t.Fatalf("empty stats: %+v", empty)
		}

		_, err = s.Insert([]model.ShippingRecord{
			rec("A1", "2024-01-03", "顺丰", "天猫", 2.5, 8, 100),
			rec("A2", "2024-01-01", "圆通", "京东", 5, 12, 200),
			rec("A3", "2024-01-10", "顺丰", "天猫", 10, 20, 300),
		}, true)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}

		stats, err := s.Stats()
		if err != nil {
			t.Fatalf("stats: %v", err)
		}
		if stats.TotalRecords != 3 {
			t.Fatalf("expected 3 records, got %d", stats.TotalRecords)
		}
		if stats.DateRange == nil || stats.DateRange.Min != "2024-01-01" || stats.DateRange.Max != "2024-01-10" {
			t.Fatalf("date range: %+v", stats.DateRange)
		}
		if len(stats.Platforms) != 2 {
			t.Fatalf("platforms: %v", stats.Platforms)
		}

		removed, err := s.Clear()
		if err != nil {
			t.Fatalf("clear: %v", err)
		}
		if removed != 3 {
			t.Fatalf("expected 3 removed, got %d", removed)
		}
		n, err := s.Count(Filter{})
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if n != 0 {
			t.Fatalf("expected empty store after clear, got %d", n)
		}

		// 清空后同键可重新插入
		res, err := s.Insert([]model.ShippingRecord{
			rec("A1", "2024-01-03", "顺丰", "天猫", 2.5, 8, 100),
		}, true)
		if err != nil {
			t.Fatalf("insert after clear: %v", err)
		}
		if len(res.Inserted) != 1 {
			t.Fatalf("expected reinsert after clear, got %+v", res)
		}
	})
}

func TestMemoryStore_ConcurrentInsertQuery(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			_, _ = s.Insert([]model.ShippingRecord{
				rec("", "2024-01-01", "顺丰", "天猫", 2.5, 8, 100),
			}, false)
		}
	}()
	for i := 0; i < 100; i++ {
		if _, err := s.Query(Filter{}); err != nil {
			t.Fatalf("query: %v", err)
		}
	}
	<-done

	n, err := s.Count(Filter{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 100 {
		t.Fatalf("expected 100 records, got %d", n)
	}
}
