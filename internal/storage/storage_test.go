package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestKVGetSetDelete(t *testing.T) {
	ctx := context.Background()
	kv := NewKVRepo(openTestDB(t))

	_, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, kv.Set(ctx, "k", "one"))
	require.NoError(t, kv.Set(ctx, "k", "two"))
	v, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "two", v)

	require.NoError(t, kv.Delete(ctx, "k"))
	_, ok, err = kv.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(context.Background(), db))
}

func TestDocumentLoadDefaultsOnFirstRun(t *testing.T) {
	repo := NewDocumentRepo(openTestDB(t), "", 0)
	require.Equal(t, DefaultStorageKey, repo.Key())

	d, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, d.Child)
	require.Empty(t, d.Tasks)
	require.NotNil(t, d.GradeDataMap)
	require.Equal(t, DefaultWeekStart, d.Settings.WeekStart)
}

func TestDecodeFillsMissingCollections(t *testing.T) {
	// A document saved before memos, irregular tasks, orders and grades existed.
	raw := `{"child":{"name":"Hana","grade":"G1","startDate":"2025-04-01"},
		"tasks":[{"id":"t1","title":"Kanji","weekDays":[1,3]}],
		"records":[],"goals":{"oneYear":"read","threeYears":"","fiveYears":""},
		"settings":{"weekStart":1,"currentGrade":"G1"}}`

	d, err := DecodeAppData(raw)
	require.NoError(t, err)
	require.NotNil(t, d.DailyMemos)
	require.NotNil(t, d.IrregularTasks)
	require.NotNil(t, d.TaskOrders)
	require.NotNil(t, d.GradeDataMap)
	require.Equal(t, "Hana", d.Child.Name)
	require.True(t, d.Tasks[0].HasWeekDay(3))
	require.False(t, d.Tasks[0].HasWeekDay(2))
}

func TestDocumentSaveLoadAndSnapshots(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentRepo(openTestDB(t), "doc", 2)

	amount := 3.5
	d := DefaultAppData()
	d.Child = &Child{Name: "Hana", Grade: "G1", StartDate: "2025-04-01"}
	d.Records = append(d.Records, Record{ID: "r1", Date: "2025-04-02", TaskID: "t1", Amount: &amount})
	require.NoError(t, repo.Save(ctx, d))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, d, got)

	d.Goals.OneYear = "finish workbook"
	require.NoError(t, repo.Save(ctx, d))
	d.Goals.OneYear = "two workbooks"
	require.NoError(t, repo.Save(ctx, d))

	snaps, err := repo.Snapshots(ctx, 0)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	require.Greater(t, snaps[0].ID, snaps[1].ID)

	old, ok, err := repo.LoadSnapshot(ctx, snaps[1].ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "finish workbook", old.Goals.OneYear)

	_, ok, err = repo.LoadSnapshot(ctx, 9999)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDocumentClear(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentRepo(openTestDB(t), "doc", 0)

	d := DefaultAppData()
	d.Settings.AgreedToTerms = true
	require.NoError(t, repo.Save(ctx, d))
	require.NoError(t, repo.Clear(ctx))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.False(t, got.Settings.AgreedToTerms)

	snaps, err := repo.Snapshots(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, snaps)
}

func TestResolveDBPath(t *testing.T) {
	t.Setenv(EnvDBPath, "/tmp/from-env.db")

	p, err := ResolveDBPath("/tmp/explicit.db")
	require.NoError(t, err)
	require.Equal(t, "/tmp/explicit.db", p)

	p, err = ResolveDBPath("")
	require.NoError(t, err)
	require.Equal(t, "/tmp/from-env.db", p)
}
