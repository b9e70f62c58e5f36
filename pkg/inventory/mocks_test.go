package inventory

import (
	"context"
	"mime/multipart"
	"sync"
	"time"

	"foodflow/domain"
)

type mockRepository struct {
	ListItemsFunc          func(ctx context.Context, userID string, location domain.Location) ([]domain.InventoryItem, error)
	InsertItemFunc         func(ctx context.Context, userID string, item domain.InventoryItem) (string, error)
	UpdateItemLocationFunc func(ctx context.Context, userID string, itemID string, location domain.Location) error
	DeleteItemFunc         func(ctx context.Context, userID string, itemID string) (domain.InventoryItem, error)
	DeleteAllItemsFunc     func(ctx context.Context, userID string) (int64, error)
	CountItemsFunc         func(ctx context.Context, userID string) (int64, error)
}

func (m *mockRepository) ListItems(ctx context.Context, userID string, location domain.Location) ([]domain.InventoryItem, error) {
	if m.ListItemsFunc != nil {
		return m.ListItemsFunc(ctx, userID, location)
	}
	return nil, nil
}

func (m *mockRepository) InsertItem(ctx context.Context, userID string, item domain.InventoryItem) (string, error) {
	if m.InsertItemFunc != nil {
		return m.InsertItemFunc(ctx, userID, item)
	}
	return "new-id", nil
}

func (m *mockRepository) UpdateItemLocation(ctx context.Context, userID string, itemID string, location domain.Location) error {
	if m.UpdateItemLocationFunc != nil {
		return m.UpdateItemLocationFunc(ctx, userID, itemID, location)
	}
	return nil
}

func (m *mockRepository) DeleteItem(ctx context.Context, userID string, itemID string) (domain.InventoryItem, error) {
	if m.DeleteItemFunc != nil {
		return m.DeleteItemFunc(ctx, userID, itemID)
	}
	return domain.InventoryItem{ID: itemID}, nil
}

func (m *mockRepository) DeleteAllItems(ctx context.Context, userID string) (int64, error) {
	if m.DeleteAllItemsFunc != nil {
		return m.DeleteAllItemsFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockRepository) CountItems(ctx context.Context, userID string) (int64, error) {
	if m.CountItemsFunc != nil {
		return m.CountItemsFunc(ctx, userID)
	}
	return 0, nil
}

type mockImages struct {
	UploadImageFunc func(ctx context.Context, userID string, image *multipart.FileHeader) (string, error)
	DeleteImageFunc func(ctx context.Context, link string) error
}

func (m *mockImages) UploadImage(ctx context.Context, userID string, image *multipart.FileHeader) (string, error) {
	if m.UploadImageFunc != nil {
		return m.UploadImageFunc(ctx, userID, image)
	}
	return "https://images.test/" + image.Filename, nil
}

func (m *mockImages) DeleteImage(ctx context.Context, link string) error {
	if m.DeleteImageFunc != nil {
		return m.DeleteImageFunc(ctx, link)
	}
	return nil
}

// callLog records call names in order across goroutines.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(name string) {
	l.mu.Lock()
	l.calls = append(l.calls, name)
	l.mu.Unlock()
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type countingRecorder struct {
	mu         sync.Mutex
	insertions map[string]int
	bulk       map[string][2]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{insertions: map[string]int{}, bulk: map[string][2]int{}}
}

func (r *countingRecorder) RecordInsertion(outcome string) {
	r.mu.Lock()
	r.insertions[outcome]++
	r.mu.Unlock()
}

func (r *countingRecorder) RecordBulkMutation(op string, succeeded, failed int) {
	r.mu.Lock()
	c := r.bulk[op]
	r.bulk[op] = [2]int{c[0] + succeeded, c[1] + failed}
	r.mu.Unlock()
}

func (r *countingRecorder) RecordQueryLatency(time.Duration) {}
