package repository

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newDryRunDB opens a gorm session that builds SQL without executing
// it, capturing each generated query for assertions.
func newDryRunDB(t *testing.T) (*gorm.DB, *[]string) {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "host=localhost user=pos dbname=pos",
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open dry-run session: %v", err)
	}

	var queries []string
	err = db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		queries = append(queries, tx.Statement.SQL.String())
	})
	if err != nil {
		t.Fatalf("register capture callback: %v", err)
	}
	return db, &queries
}

func lastQuery(t *testing.T, queries *[]string) string {
	t.Helper()
	if len(*queries) == 0 {
		t.Fatalf("no SQL captured")
	}
	return (*queries)[len(*queries)-1]
}

func TestMenuFindForUpdateEmitsRowLock(t *testing.T) {
	db, queries := newDryRunDB(t)
	repo := NewMenuRepo(db)

	repo.FindForUpdate(db, uuid.New())

	sql := lastQuery(t, queries)
	if !strings.Contains(sql, "FOR UPDATE") {
		t.Fatalf("expected FOR UPDATE clause, got: %s", sql)
	}
}

func TestSummaryForUpdateFindersEmitRowLock(t *testing.T) {
	db, queries := newDryRunDB(t)
	repo := NewSummaryRepo(db)

	cases := []struct {
		name string
		run  func()
	}{
		{"daily", func() { repo.FindDailyForUpdate(db, "2025-03-12") }},
		{"weekly", func() { repo.FindWeeklyForUpdate(db, "2025-03-10") }},
		{"monthly", func() { repo.FindMonthlyForUpdate(db, "2025-03") }},
	}
	for _, c := range cases {
		c.run()
		sql := lastQuery(t, queries)
		if !strings.Contains(sql, "FOR UPDATE") {
			t.Fatalf("%s: expected FOR UPDATE clause, got: %s", c.name, sql)
		}
	}
}

func TestLockFreeFindDailyDoesNotLock(t *testing.T) {
	db, queries := newDryRunDB(t)
	repo := NewSummaryRepo(db)

	repo.FindDaily("2025-03-12")

	sql := lastQuery(t, queries)
	if strings.Contains(sql, "FOR UPDATE") {
		t.Fatalf("plain read must not lock, got: %s", sql)
	}
}
