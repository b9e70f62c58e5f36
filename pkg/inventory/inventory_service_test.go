package inventory

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"foodflow/domain"
)

func fixedClock() time.Time {
	return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.Local)
}

func newTestService(repo *mockRepository, images *mockImages, rec *countingRecorder) InventoryService {
	return NewInventoryService(repo, images, rec, WithClock(fixedClock), WithBulkConcurrency(2))
}

func TestServiceListItems(t *testing.T) {
	var gotLocation domain.Location
	repo := &mockRepository{
		ListItemsFunc: func(ctx context.Context, userID string, location domain.Location) ([]domain.InventoryItem, error) {
			gotLocation = location
			return FilterByLocation(sampleItems(), location), nil
		},
	}
	svc := newTestService(repo, &mockImages{}, newCountingRecorder())

	res, err := svc.ListItems(context.Background(), testUserID, domain.InventoryQueryRequest{
		Location: "Fridge",
		Sort:     "DAYS_REMAINING",
		Query:    "",
	})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if gotLocation != domain.LocationFridge {
		t.Errorf("store queried for %s, want Fridge", gotLocation)
	}

	got := make([]string, 0, len(res))
	for _, r := range res {
		got = append(got, r.ID)
	}
	if !slices.Equal(got, []string{"1", "5", "4"}) {
		t.Errorf("ids = %v", got)
	}
	if res[0].DaysRemaining != 2 || res[0].ExpirationTier != TierCritical.Name {
		t.Errorf("first item = %+v", res[0])
	}
}

func TestServiceListItemsDefaultsAndValidation(t *testing.T) {
	repo := &mockRepository{
		ListItemsFunc: func(ctx context.Context, userID string, location domain.Location) ([]domain.InventoryItem, error) {
			if location != domain.LocationAll {
				t.Errorf("location = %s, want All", location)
			}
			return sampleItems(), nil
		},
	}
	svc := newTestService(repo, &mockImages{}, newCountingRecorder())

	res, err := svc.ListItems(context.Background(), testUserID, domain.InventoryQueryRequest{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(res) != 5 || res[0].Name != "Almond milk" {
		t.Errorf("default query = %+v", res)
	}

	if _, err := svc.ListItems(context.Background(), testUserID, domain.InventoryQueryRequest{Location: "Garage"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("bad location err = %v", err)
	}
	if _, err := svc.ListItems(context.Background(), testUserID, domain.InventoryQueryRequest{Sort: "random"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("bad sort err = %v", err)
	}
}

func TestServiceRequiresUser(t *testing.T) {
	svc := newTestService(&mockRepository{}, &mockImages{}, newCountingRecorder())
	ctx := context.Background()

	if _, err := svc.SubmitItem(ctx, "", domain.AddInventoryItemRequest{}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("SubmitItem err = %v", err)
	}
	if _, err := svc.GetSelection(ctx, ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("GetSelection err = %v", err)
	}
	if _, err := svc.ClearAll(ctx, ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("ClearAll err = %v", err)
	}
}

func TestServiceSubmitAndConfirm(t *testing.T) {
	repo := &mockRepository{
		ListItemsFunc: func(ctx context.Context, userID string, location domain.Location) ([]domain.InventoryItem, error) {
			return []domain.InventoryItem{{ID: "1", Name: "Milk"}}, nil
		},
	}
	svc := newTestService(repo, &mockImages{}, newCountingRecorder())
	ctx := context.Background()

	res, err := svc.SubmitItem(ctx, testUserID, domain.AddInventoryItemRequest{
		Name:           " Milk ",
		Location:       "Fridge",
		Quantity:       1,
		ExpirationDate: "2024-03-15",
	})
	if err != nil {
		t.Fatalf("SubmitItem: %v", err)
	}
	if res.State != string(StateAwaitingConfirmation) || res.Pending == nil || res.Pending.DaysRemaining != 5 {
		t.Fatalf("submit response = %+v", res)
	}

	wf, err := svc.GetWorkflow(ctx, testUserID)
	if err != nil || wf.State != string(StateAwaitingConfirmation) || wf.DuplicateOf != "Milk" {
		t.Errorf("workflow = %+v, %v", wf, err)
	}

	res, err = svc.ConfirmDuplicate(ctx, testUserID)
	if err != nil {
		t.Fatalf("ConfirmDuplicate: %v", err)
	}
	if res.State != string(StateDone) || res.Item == nil || res.Item.ID != "new-id" {
		t.Errorf("confirm response = %+v", res)
	}
}

func TestServiceWorkflowIsPerUser(t *testing.T) {
	repo := &mockRepository{
		ListItemsFunc: func(ctx context.Context, userID string, location domain.Location) ([]domain.InventoryItem, error) {
			return []domain.InventoryItem{{ID: "1", Name: "Milk"}}, nil
		},
	}
	svc := newTestService(repo, &mockImages{}, newCountingRecorder())
	ctx := context.Background()
	req := domain.AddInventoryItemRequest{Name: "Milk", Location: "Fridge", ExpirationDate: "2024-03-15"}

	if _, err := svc.SubmitItem(ctx, "user-a", req); err != nil {
		t.Fatalf("SubmitItem a: %v", err)
	}
	if _, err := svc.SubmitItem(ctx, "user-b", req); err != nil {
		t.Errorf("user b blocked by user a: %v", err)
	}
	if _, err := svc.CancelDuplicate(ctx, "user-c"); !errors.Is(err, domain.ErrNoPendingDuplicate) {
		t.Errorf("user c cancel err = %v", err)
	}
}

func TestServiceTransferSelected(t *testing.T) {
	var mu sync.Mutex
	moved := map[string]domain.Location{}
	lists := 0
	repo := &mockRepository{
		UpdateItemLocationFunc: func(ctx context.Context, userID string, itemID string, location domain.Location) error {
			if itemID == "missing" {
				return domain.ErrInventoryItemNotFound
			}
			mu.Lock()
			moved[itemID] = location
			mu.Unlock()
			return nil
		},
		ListItemsFunc: func(ctx context.Context, userID string, location domain.Location) ([]domain.InventoryItem, error) {
			lists++
			return sampleItems(), nil
		},
	}
	rec := newCountingRecorder()
	svc := newTestService(repo, &mockImages{}, rec)
	ctx := context.Background()

	for _, id := range []string{"1", "missing", "4"} {
		if _, err := svc.ToggleSelection(ctx, testUserID, id); err != nil {
			t.Fatalf("ToggleSelection(%s): %v", id, err)
		}
	}

	res, err := svc.TransferSelected(ctx, testUserID, domain.TransferSelectionRequest{Location: "Freezer"})
	if err != nil {
		t.Fatalf("TransferSelected: %v", err)
	}
	if !slices.Equal(res.Succeeded, []string{"1", "4"}) {
		t.Errorf("Succeeded = %v", res.Succeeded)
	}
	if len(res.Failed) != 1 || res.Failed[0].ID != "missing" {
		t.Errorf("Failed = %+v", res.Failed)
	}
	if moved["1"] != domain.LocationFreezer || moved["4"] != domain.LocationFreezer {
		t.Errorf("moved = %v", moved)
	}
	if lists != 1 || len(res.Items) != 5 {
		t.Errorf("refresh: lists = %d, items = %d", lists, len(res.Items))
	}

	sel, _ := svc.GetSelection(ctx, testUserID)
	if len(sel.IDs) != 0 {
		t.Errorf("selection not cleared: %v", sel.IDs)
	}
	if rec.bulk["transfer"] != [2]int{2, 1} {
		t.Errorf("bulk metrics = %v", rec.bulk)
	}

	if _, err := svc.TransferSelected(ctx, testUserID, domain.TransferSelectionRequest{Location: "All"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("transfer to All err = %v", err)
	}
}

func TestServiceDeleteSelectedRemovesImages(t *testing.T) {
	url := "https://images.test/milk.png"
	var mu sync.Mutex
	var deletedImages []string
	repo := &mockRepository{
		DeleteItemFunc: func(ctx context.Context, userID string, itemID string) (domain.InventoryItem, error) {
			if itemID == "1" {
				return domain.InventoryItem{ID: "1", ImageURL: &url}, nil
			}
			return domain.InventoryItem{ID: itemID}, nil
		},
	}
	images := &mockImages{
		DeleteImageFunc: func(ctx context.Context, link string) error {
			mu.Lock()
			deletedImages = append(deletedImages, link)
			mu.Unlock()
			return errors.New("storage down")
		},
	}
	svc := newTestService(repo, images, newCountingRecorder())
	ctx := context.Background()

	_, _ = svc.ToggleSelection(ctx, testUserID, "1")
	_, _ = svc.ToggleSelection(ctx, testUserID, "2")

	res, err := svc.DeleteSelected(ctx, testUserID)
	if err != nil {
		t.Fatalf("DeleteSelected: %v", err)
	}
	if !slices.Equal(res.Succeeded, []string{"1", "2"}) || len(res.Failed) != 0 {
		t.Errorf("result = %+v", res)
	}
	if !slices.Equal(deletedImages, []string{url}) {
		t.Errorf("deleted images = %v", deletedImages)
	}
}

func TestServiceBulkOnEmptySelection(t *testing.T) {
	repo := &mockRepository{
		DeleteItemFunc: func(ctx context.Context, userID string, itemID string) (domain.InventoryItem, error) {
			t.Error("DeleteItem called with nothing selected")
			return domain.InventoryItem{}, nil
		},
	}
	svc := newTestService(repo, &mockImages{}, newCountingRecorder())

	res, err := svc.DeleteSelected(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("DeleteSelected: %v", err)
	}
	if len(res.Succeeded) != 0 || len(res.Failed) != 0 {
		t.Errorf("result = %+v", res)
	}
}

func TestServiceClearAll(t *testing.T) {
	repo := &mockRepository{
		DeleteAllItemsFunc: func(ctx context.Context, userID string) (int64, error) {
			return 3, nil
		},
	}
	svc := newTestService(repo, &mockImages{}, newCountingRecorder())
	ctx := context.Background()
	_, _ = svc.ToggleSelection(ctx, testUserID, "1")

	res, err := svc.ClearAll(ctx, testUserID)
	if err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if res.Deleted != 3 || res.Remaining != 0 {
		t.Errorf("res = %+v", res)
	}
	if sel, _ := svc.GetSelection(ctx, testUserID); len(sel.IDs) != 0 {
		t.Errorf("selection survived clear: %v", sel.IDs)
	}
}

func TestServiceClearAllEmpty(t *testing.T) {
	var deleteCalls, countCalls int
	repo := &mockRepository{
		DeleteAllItemsFunc: func(ctx context.Context, userID string) (int64, error) {
			deleteCalls++
			return 0, nil
		},
		CountItemsFunc: func(ctx context.Context, userID string) (int64, error) {
			countCalls++
			return 0, nil
		},
	}
	svc := newTestService(repo, &mockImages{}, newCountingRecorder())

	res, err := svc.ClearAll(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("ClearAll on empty inventory: %v", err)
	}
	if res.Deleted != 0 || res.Remaining != 0 {
		t.Errorf("res = %+v, want nothing deleted and nothing left", res)
	}
	if deleteCalls != 1 || countCalls != 1 {
		t.Errorf("delete calls = %d, count calls = %d", deleteCalls, countCalls)
	}
}

func TestServiceClearAllFailure(t *testing.T) {
	boom := errors.New("connection reset")
	repo := &mockRepository{
		DeleteAllItemsFunc: func(ctx context.Context, userID string) (int64, error) {
			return 0, domain.NewRemoteFailure("clear inventory", boom)
		},
	}
	svc := newTestService(repo, &mockImages{}, newCountingRecorder())

	if _, err := svc.ClearAll(context.Background(), testUserID); !domain.IsRemoteFailure(err) || !errors.Is(err, boom) {
		t.Errorf("err = %v", err)
	}
}

func TestServiceToggleSelectionReportsState(t *testing.T) {
	svc := newTestService(&mockRepository{}, &mockImages{}, newCountingRecorder())
	ctx := context.Background()

	res, err := svc.ToggleSelection(ctx, testUserID, "1")
	if err != nil {
		t.Fatalf("ToggleSelection: %v", err)
	}
	if res.Selected == nil || !*res.Selected || res.Count != 1 {
		t.Errorf("select = %+v", res)
	}
	_, _ = svc.ToggleSelection(ctx, testUserID, "2")

	res, _ = svc.ToggleSelection(ctx, testUserID, "1")
	if res.Selected == nil || *res.Selected || res.Count != 1 || !slices.Equal(res.IDs, []string{"2"}) {
		t.Errorf("deselect = %+v", res)
	}

	sel, _ := svc.GetSelection(ctx, testUserID)
	if sel.Selected != nil || sel.Count != 1 {
		t.Errorf("GetSelection = %+v", sel)
	}
}

func TestWorkflowResponseBusy(t *testing.T) {
	svc := newTestService(&mockRepository{}, &mockImages{}, newCountingRecorder()).(*inventoryService)

	tests := []struct {
		state WorkflowState
		want  bool
	}{
		{StateIdle, false},
		{StateChecking, true},
		{StateInserting, true},
		{StateAwaitingConfirmation, false},
		{StateDone, false},
	}
	for _, tt := range tests {
		if got := svc.workflowResponse(Outcome{State: tt.state}).Busy; got != tt.want {
			t.Errorf("busy(%s) = %v, want %v", tt.state, got, tt.want)
		}
	}
}
