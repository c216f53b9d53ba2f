// Package store 运费记录存储层。
//
// 提供内存与 SQLite 两种实现，聚合层只依赖 RecordStore 查询契约。
package store

import (
	"time"

	"github.com/tom88115/freight-weight-analyzer/internal/model"
)

// Filter 查询条件：承运商精确匹配 + 日期闭区间（两端均可省略）
type Filter struct {
	Carrier  string
	DateFrom *time.Time
	DateTo   *time.Time
}

// Match 判断记录是否满足条件
func (f Filter) Match(r *model.ShippingRecord) bool {
	if f.Carrier != "" && r.Carrier != f.Carrier {
		return false
	}
	if f.DateFrom != nil && r.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && r.Date.After(*f.DateTo) {
		return false
	}
	return true
}

// InsertResult 批量插入结果：实际入库的记录与因重复被跳过的记录
type InsertResult struct {
	Inserted   []model.ShippingRecord
	Duplicates []model.ShippingRecord
}

// RecordStore 记录存储契约
type RecordStore interface {
	// Insert 批量插入。skipDuplicates 为真时按去重键（物流单号+日期）跳过
	// 已存在的记录，同批次内的重复同样被跳过。
	Insert(records []model.ShippingRecord, skipDuplicates bool) (*InsertResult, error)
	// Query 返回满足条件的全部记录
	Query(f Filter) ([]model.ShippingRecord, error)
	// Count 返回满足条件的记录数
	Count(f Filter) (int, error)
	// Clear 清空全部记录，返回删除条数
	Clear() (int, error)
	// Stats 返回总数、日期范围与平台列表；空库时 DateRange 为 nil
	Stats() (*model.StoreStats, error)
	Close() error
}
