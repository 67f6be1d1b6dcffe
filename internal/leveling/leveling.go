package leveling

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/robalyx/turbo/internal/storage"
)

// LevelFor maps accumulated points to a level: floor(sqrt(points)).
// Non-positive points map to level 0.
func LevelFor(points int) int {
	if points <= 0 {
		return 0
	}

	level := int(math.Sqrt(float64(points)))

	// Correct float rounding around perfect squares.
	for level*level > points {
		level--
	}

	for (level+1)*(level+1) <= points {
		level++
	}

	return level
}

// Progress describes the result of recording one qualifying message.
type Progress struct {
	Points   int
	OldLevel int
	NewLevel int
}

// LeveledUp reports whether the recorded message crossed into a new level.
func (p Progress) LeveledUp() bool {
	return p.NewLevel > p.OldLevel
}

// Entry is a ranked row of the points table.
type Entry struct {
	UserID string
	storage.PointRecord
}

// Tracker owns the in-memory points table and writes it through to a store
// after every update.
type Tracker struct {
	store storage.Store
	table storage.Table
	mu    sync.Mutex
}

// NewTracker loads the table from the store.
func NewTracker(ctx context.Context, store storage.Store) (*Tracker, error) {
	table, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load points: %w", err)
	}

	if table == nil {
		table = make(storage.Table)
	}

	return &Tracker{
		store: store,
		table: table,
	}, nil
}

// RecordActivity awards one point to the user, recomputes the level and
// saves the table. The in-memory update is kept even when saving fails.
func (t *Tracker) RecordActivity(ctx context.Context, userID string) (Progress, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	record := t.table[userID]
	oldLevel := record.Level

	record.Points++
	record.Level = LevelFor(record.Points)
	t.table[userID] = record

	progress := Progress{
		Points:   record.Points,
		OldLevel: oldLevel,
		NewLevel: record.Level,
	}

	if err := t.store.Save(ctx, t.table); err != nil {
		return progress, fmt.Errorf("failed to save points: %w", err)
	}

	return progress, nil
}

// Get returns the user's record and whether the user has any tracked activity.
func (t *Tracker) Get(userID string) (storage.PointRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	record, ok := t.table[userID]

	return record, ok
}

// Len returns the number of tracked users.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.table)
}

// Top returns up to limit entries sorted by points, highest first.
// Ties are ordered by user ID so the ranking is stable.
func (t *Tracker) Top(limit int) []Entry {
	t.mu.Lock()
	entries := make([]Entry, 0, len(t.table))
	for userID, record := range t.table {
		entries = append(entries, Entry{UserID: userID, PointRecord: record})
	}
	t.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].UserID < entries[j].UserID
	})

	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries
}
