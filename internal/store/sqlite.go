package store

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/tom88115/freight-weight-analyzer/internal/model"
)

//go:embed schema.sql
var schemaFS embed.FS

// SQLiteStore SQLite 持久化存储
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore 打开（必要时创建）数据库文件并初始化表结构
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite 建议单连接，写入天然串行化
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := s.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Insert 批量插入，单事务内完成去重检查与写入
func (s *SQLiteStore) Insert(records []model.ShippingRecord, skipDuplicates bool) (*InsertResult, error) {
	result := &InsertResult{}
	if len(records) == 0 {
		return result, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing := make(map[string]bool)
	if skipDuplicates {
		rows, err := tx.Query(`SELECT order_number, date_key FROM shipping_records`)
		if err != nil {
			return nil, fmt.Errorf("failed to load existing keys: %w", err)
		}
		for rows.Next() {
			var orderNumber, dateKey string
			if err := rows.Scan(&orderNumber, &dateKey); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan key: %w", err)
			}
			existing[orderNumber+"_"+dateKey] = true
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to iterate keys: %w", err)
		}
		rows.Close()
	}

	stmt, err := tx.Prepare(`
		INSERT INTO shipping_records (
			id, order_number, weight, cost, order_amount,
			destination, carrier, platform, remarks,
			date, date_key, weight_range
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		key := r.DedupeKey()
		if skipDuplicates && existing[key] {
			result.Duplicates = append(result.Duplicates, r)
			continue
		}
		_, err := stmt.Exec(
			r.ID, r.OrderNumber, r.Weight, r.Cost, r.OrderAmount,
			r.Destination, r.Carrier, r.Platform, r.Remarks,
			r.Date.Format(time.RFC3339), r.DateKey(), r.WeightRange,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert record: %w", err)
		}
		existing[key] = true
		result.Inserted = append(result.Inserted, r)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}

func buildWhere(f Filter) (string, []interface{}) {
	where := " WHERE 1=1"
	args := []interface{}{}
	if f.Carrier != "" {
		where += " AND carrier = ?"
		args = append(args, f.Carrier)
	}
	if f.DateFrom != nil {
		where += " AND date >= ?"
		args = append(args, f.DateFrom.Format(time.RFC3339))
	}
	if f.DateTo != nil {
		where += " AND date <= ?"
		args = append(args, f.DateTo.Format(time.RFC3339))
	}
	return where, args
}

// Query 返回满足条件的全部记录
func (s *SQLiteStore) Query(f Filter) ([]model.ShippingRecord, error) {
	where, args := buildWhere(f)
	query := `
		SELECT id, order_number, weight, cost, order_amount,
		       destination, carrier, platform, remarks, date, weight_range
		FROM shipping_records` + where

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records := []model.ShippingRecord{}
	for rows.Next() {
		var r model.ShippingRecord
		var dateStr string
		err := rows.Scan(
			&r.ID, &r.OrderNumber, &r.Weight, &r.Cost, &r.OrderAmount,
			&r.Destination, &r.Carrier, &r.Platform, &r.Remarks,
			&dateStr, &r.WeightRange,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		r.Date, err = time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse record date: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return records, nil
}

// Count 返回满足条件的记录数
func (s *SQLiteStore) Count(f Filter) (int, error) {
	where, args := buildWhere(f)
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM shipping_records`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

// Clear 清空全部记录
func (s *SQLiteStore) Clear() (int, error) {
	res, err := s.db.Exec(`DELETE FROM shipping_records`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear records: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return int(n), nil
}

// Stats 返回总数、日期范围与平台列表
func (s *SQLiteStore) Stats() (*model.StoreStats, error) {
	stats := &model.StoreStats{Platforms: []string{}}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM shipping_records`).Scan(&stats.TotalRecords); err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	if stats.TotalRecords == 0 {
		return stats, nil
	}

	var minDate, maxDate string
	err := s.db.QueryRow(`SELECT MIN(date_key), MAX(date_key) FROM shipping_records`).Scan(&minDate, &maxDate)
	if err != nil {
		return nil, fmt.Errorf("failed to read date range: %w", err)
	}
	stats.DateRange = &model.MinMaxRange{Min: minDate, Max: maxDate}

	rows, err := s.db.Query(`SELECT DISTINCT platform FROM shipping_records WHERE platform != '' ORDER BY platform`)
	if err != nil {
		return nil, fmt.Errorf("failed to list platforms: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan platform: %w", err)
		}
		stats.Platforms = append(stats.Platforms, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate platforms: %w", err)
	}
	return stats, nil
}

// Close 关闭数据库连接
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
