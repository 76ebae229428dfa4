package player

import (
	"context"
	"sort"
	"sync"

	"github.com/monarchbot/arise/internal/repository"
)

// FakeRepository is an in-memory repository.Player for tests. Records are
// deep-copied on the way in and out so a test sees exactly what a real
// round-trip through the store would produce.
type FakeRepository struct {
	mu      sync.Mutex
	rows    map[int64]*repository.PlayerRecord
	Vacuums int

	// Error injection
	GetErr    error
	UpsertErr error
	DeleteErr error
}

// NewFakeRepository creates an empty fake repository.
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{rows: make(map[int64]*repository.PlayerRecord)}
}

func (f *FakeRepository) Get(_ context.Context, id int64) (*repository.PlayerRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	rec, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return copyRecord(rec), nil
}

func (f *FakeRepository) Upsert(_ context.Context, rec *repository.PlayerRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UpsertErr != nil {
		return f.UpsertErr
	}
	f.rows[rec.ID] = copyRecord(rec)
	return nil
}

func (f *FakeRepository) All(_ context.Context) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.rows))
	for id := range f.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *FakeRepository) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	delete(f.rows, id)
	return nil
}

func (f *FakeRepository) Vacuum(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Vacuums++
	return nil
}

func (f *FakeRepository) Size(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var size int64
	for _, rec := range f.rows {
		for _, doc := range rec.Documents {
			size += int64(len(doc))
		}
	}
	return size, nil
}

// SetRow installs a raw record, bypassing the service save path. Tests use
// it to stage legacy or corrupted rows.
func (f *FakeRepository) SetRow(rec *repository.PlayerRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[rec.ID] = copyRecord(rec)
}

// Row returns a copy of the stored record, nil if absent.
func (f *FakeRepository) Row(id int64) *repository.PlayerRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.rows[id]
	if !ok {
		return nil
	}
	return copyRecord(rec)
}

func copyRecord(rec *repository.PlayerRecord) *repository.PlayerRecord {
	out := *rec
	out.Documents = make(map[string][]byte, len(rec.Documents))
	for col, doc := range rec.Documents {
		b := make([]byte, len(doc))
		copy(b, doc)
		out.Documents[col] = b
	}
	if rec.LastStatReset != nil {
		v := *rec.LastStatReset
		out.LastStatReset = &v
	}
	if rec.LastSkillReset != nil {
		v := *rec.LastSkillReset
		out.LastSkillReset = &v
	}
	return &out
}
