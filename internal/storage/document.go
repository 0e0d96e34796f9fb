package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultStorageKey is the key the whole document is stored under.
const DefaultStorageKey = "weekly_task_app_data"

// DefaultWeekStart is Monday.
const DefaultWeekStart = 1

func DefaultSettings() Settings {
	return Settings{WeekStart: DefaultWeekStart}
}

// DefaultAppData is the first-run document: no child, empty active bundle.
func DefaultAppData() AppData {
	return AppData{
		Child:          nil,
		Tasks:          []Task{},
		Records:        []Record{},
		Goals:          Goal{},
		Settings:       DefaultSettings(),
		DailyMemos:     []DailyMemo{},
		IrregularTasks: []IrregularTask{},
		TaskOrders:     []TaskOrder{},
		GradeDataMap:   map[string]GradeData{},
	}
}

// EncodeAppData serializes the whole document.
func EncodeAppData(d AppData) (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	return string(data), nil
}

// DecodeAppData parses a stored document. Collections missing from older
// documents come back empty rather than nil.
func DecodeAppData(raw string) (AppData, error) {
	var d AppData
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return AppData{}, fmt.Errorf("decode document: %w", err)
	}
	normalize(&d)
	return d, nil
}

func normalize(d *AppData) {
	if d.Tasks == nil {
		d.Tasks = []Task{}
	}
	if d.Records == nil {
		d.Records = []Record{}
	}
	if d.DailyMemos == nil {
		d.DailyMemos = []DailyMemo{}
	}
	if d.IrregularTasks == nil {
		d.IrregularTasks = []IrregularTask{}
	}
	if d.TaskOrders == nil {
		d.TaskOrders = []TaskOrder{}
	}
	if d.GradeDataMap == nil {
		d.GradeDataMap = map[string]GradeData{}
	}
	for grade, g := range d.GradeDataMap {
		if g.Tasks == nil {
			g.Tasks = []Task{}
		}
		if g.Records == nil {
			g.Records = []Record{}
		}
		if g.DailyMemos == nil {
			g.DailyMemos = []DailyMemo{}
		}
		if g.IrregularTasks == nil {
			g.IrregularTasks = []IrregularTask{}
		}
		if g.TaskOrders == nil {
			g.TaskOrders = []TaskOrder{}
		}
		d.GradeDataMap[grade] = g
	}
}

// DocumentRepo persists one AppData document under a fixed key, keeping a
// bounded history of previous saves.
type DocumentRepo struct {
	db        *sql.DB
	kv        *KVRepo
	snapshots *SnapshotRepo
	key       string
	keep      int
	now       func() time.Time
}

// NewDocumentRepo binds the repo to key. keep bounds the snapshot history;
// zero or less keeps every save.
func NewDocumentRepo(db *sql.DB, key string, keep int) *DocumentRepo {
	if key == "" {
		key = DefaultStorageKey
	}
	return &DocumentRepo{
		db:        db,
		kv:        NewKVRepo(db),
		snapshots: NewSnapshotRepo(db),
		key:       key,
		keep:      keep,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (r *DocumentRepo) Key() string { return r.key }

// Load reads the document, falling back to DefaultAppData on first run.
func (r *DocumentRepo) Load(ctx context.Context) (AppData, error) {
	raw, ok, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return AppData{}, err
	}
	if !ok {
		return DefaultAppData(), nil
	}
	return DecodeAppData(raw)
}

// Save overwrites the stored document and records a snapshot of it.
func (r *DocumentRepo) Save(ctx context.Context, d AppData) error {
	raw, err := EncodeAppData(d)
	if err != nil {
		return err
	}
	at := r.now()
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := setKV(ctx, tx, r.key, raw, at); err != nil {
			return err
		}
		if _, err := insertSnapshot(ctx, tx, r.key, raw, at); err != nil {
			return err
		}
		return trimSnapshots(ctx, tx, r.key, r.keep)
	})
}

// Clear removes the document and its history.
func (r *DocumentRepo) Clear(ctx context.Context) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := deleteKV(ctx, tx, r.key); err != nil {
			return err
		}
		return deleteSnapshots(ctx, tx, r.key)
	})
}

// Snapshots lists saved versions, newest first.
func (r *DocumentRepo) Snapshots(ctx context.Context, limit int) ([]Snapshot, error) {
	return r.snapshots.List(ctx, r.key, limit)
}

// LoadSnapshot decodes snapshot id. ok is false when it does not exist or
// belongs to another key.
func (r *DocumentRepo) LoadSnapshot(ctx context.Context, id int64) (d AppData, ok bool, err error) {
	s, err := r.snapshots.Get(ctx, id)
	if err != nil {
		return AppData{}, false, err
	}
	if s == nil || s.Key != r.key {
		return AppData{}, false, nil
	}
	d, err = DecodeAppData(s.Value)
	if err != nil {
		return AppData{}, false, err
	}
	return d, true, nil
}
