package testutil

import (
	migration "Recipe-Catalog/cmd/database/migrate"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewTestDB opens a private in-memory SQLite database with the full schema. LIKE is
// case-sensitive there, as it is on postgres.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on&_cslike=true", name, dbSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.Migrate(db))
	return db
}

// QueryCounter counts SELECT statements issued through GORM's query callbacks.
type QueryCounter struct {
	n atomic.Int64
}

func CountQueries(t *testing.T, db *gorm.DB) *QueryCounter {
	t.Helper()
	counter := &QueryCounter{}
	err := db.Callback().Query().After("gorm:query").Register("testutil:count_queries", func(*gorm.DB) {
		counter.n.Add(1)
	})
	require.NoError(t, err)
	return counter
}

func (c *QueryCounter) Reset()       { c.n.Store(0) }
func (c *QueryCounter) Count() int64 { return c.n.Load() }
