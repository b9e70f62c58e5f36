package inventory

import (
	"context"
	"strings"
	"time"

	"foodflow/domain"
	"foodflow/pkg/logger"
	"foodflow/pkg/metrics"
)

type (
	InventoryService interface {
		ListItems(ctx context.Context, userID string, req domain.InventoryQueryRequest) ([]domain.InventoryItemResponse, error)
		SubmitItem(ctx context.Context, userID string, req domain.AddInventoryItemRequest) (domain.WorkflowResponse, error)
		ConfirmDuplicate(ctx context.Context, userID string) (domain.WorkflowResponse, error)
		CancelDuplicate(ctx context.Context, userID string) (domain.WorkflowResponse, error)
		GetWorkflow(ctx context.Context, userID string) (domain.WorkflowResponse, error)
		ClearAll(ctx context.Context, userID string) (domain.ClearInventoryResponse, error)

		GetSelection(ctx context.Context, userID string) (domain.SelectionResponse, error)
		ToggleSelection(ctx context.Context, userID string, itemID string) (domain.SelectionResponse, error)
		TransferSelected(ctx context.Context, userID string, req domain.TransferSelectionRequest) (domain.BulkOperationResponse, error)
		DeleteSelected(ctx context.Context, userID string) (domain.BulkOperationResponse, error)
	}

	inventoryService struct {
		items       InventoryRepository
		images      ImageStore
		sessions    *SessionManager
		metrics     metrics.Recorder
		concurrency int
		now         func() time.Time
	}
)

type Option func(*inventoryService)

func WithClock(now func() time.Time) Option {
	return func(s *inventoryService) { s.now = now }
}

func WithBulkConcurrency(n int) Option {
	return func(s *inventoryService) { s.concurrency = n }
}

func NewInventoryService(items InventoryRepository, images ImageStore, recorder metrics.Recorder, opts ...Option) InventoryService {
	if recorder == nil {
		recorder = metrics.NopRecorder{}
	}
	s := &inventoryService{
		items:       items,
		images:      images,
		metrics:     recorder,
		concurrency: defaultBulkConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sessions = NewSessionManager(func(userID string) *Insertion {
		w := NewInsertion(userID, items, images, recorder)
		w.Subscribe(func(state WorkflowState) {
			logger.Debug(context.Background()).
				Str("user_id", userID).
				Str("state", string(state)).
				Msg("insertion state changed")
		})
		return w
	})
	return s
}

func (s *inventoryService) session(userID string) (*Session, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.sessions.Get(userID), nil
}

func (s *inventoryService) ListItems(ctx context.Context, userID string, req domain.InventoryQueryRequest) ([]domain.InventoryItemResponse, error) {
	location := domain.LocationAll
	if req.Location != "" {
		location = domain.Location(req.Location)
	}
	if !location.IsFilter() {
		return nil, domain.NewValidationError("%v: %q", domain.ErrInvalidLocation, req.Location)
	}
	order, err := domain.ParseSortOrder(req.Sort)
	if err != nil {
		return nil, domain.NewValidationError("%v: %q", err, req.Sort)
	}

	start := time.Now()
	defer func() { s.metrics.RecordQueryLatency(time.Since(start)) }()

	items, err := s.items.ListItems(ctx, userID, location)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return ToResponses(QueryItems(items, location, order, req.Query, now), now), nil
}

func (s *inventoryService) workflowResponse(out Outcome) domain.WorkflowResponse {
	now := s.now()
	res := domain.WorkflowResponse{
		State:       string(out.State),
		Busy:        out.State.Busy(),
		DuplicateOf: out.DuplicateOf,
	}
	if out.Item != nil {
		item := ToResponse(*out.Item, now)
		res.Item = &item
	}
	if out.Pending != nil {
		pending := ToResponse(*out.Pending, now)
		res.Pending = &pending
	}
	return res
}

func (s *inventoryService) SubmitItem(ctx context.Context, userID string, req domain.AddInventoryItemRequest) (domain.WorkflowResponse, error) {
	sess, err := s.session(userID)
	if err != nil {
		return domain.WorkflowResponse{}, err
	}

	candidate := domain.InventoryItem{
		Name:           strings.TrimSpace(req.Name),
		Location:       domain.Location(req.Location),
		Quantity:       req.Quantity,
		ExpirationDate: req.ExpirationDate,
	}

	out, err := sess.Insertion.Submit(ctx, candidate, req.Image)
	return s.workflowResponse(out), err
}

func (s *inventoryService) ConfirmDuplicate(ctx context.Context, userID string) (domain.WorkflowResponse, error) {
	sess, err := s.session(userID)
	if err != nil {
		return domain.WorkflowResponse{}, err
	}

	out, err := sess.Insertion.Confirm(ctx)
	return s.workflowResponse(out), err
}

func (s *inventoryService) CancelDuplicate(ctx context.Context, userID string) (domain.WorkflowResponse, error) {
	sess, err := s.session(userID)
	if err != nil {
		return domain.WorkflowResponse{}, err
	}

	out, err := sess.Insertion.Cancel(ctx)
	return s.workflowResponse(out), err
}

func (s *inventoryService) GetWorkflow(ctx context.Context, userID string) (domain.WorkflowResponse, error) {
	sess, err := s.session(userID)
	if err != nil {
		return domain.WorkflowResponse{}, err
	}
	return s.workflowResponse(sess.Insertion.Snapshot()), nil
}

// ClearAll removes every item of the user at once. Selected ids no longer
// point anywhere afterwards, so the selection is dropped too.
func (s *inventoryService) ClearAll(ctx context.Context, userID string) (domain.ClearInventoryResponse, error) {
	sess, err := s.session(userID)
	if err != nil {
		return domain.ClearInventoryResponse{}, err
	}

	deleted, err := s.items.DeleteAllItems(ctx, userID)
	if err != nil {
		return domain.ClearInventoryResponse{}, err
	}
	sess.Selection.Clear()
	s.metrics.RecordBulkMutation("clear", int(deleted), 0)

	remaining, err := s.items.CountItems(ctx, userID)
	if err != nil {
		return domain.ClearInventoryResponse{Deleted: deleted}, err
	}

	logger.Info(ctx).Str("user_id", userID).Int64("deleted", deleted).Msg("inventory cleared")
	return domain.ClearInventoryResponse{Deleted: deleted, Remaining: remaining}, nil
}

func (s *inventoryService) GetSelection(ctx context.Context, userID string) (domain.SelectionResponse, error) {
	sess, err := s.session(userID)
	if err != nil {
		return domain.SelectionResponse{}, err
	}
	return selectionResponse(sess.Selection), nil
}

func selectionResponse(sel *Selection) domain.SelectionResponse {
	return domain.SelectionResponse{IDs: sel.IDs(), Count: sel.Len()}
}

func (s *inventoryService) ToggleSelection(ctx context.Context, userID string, itemID string) (domain.SelectionResponse, error) {
	sess, err := s.session(userID)
	if err != nil {
		return domain.SelectionResponse{}, err
	}
	if strings.TrimSpace(itemID) == "" {
		return domain.SelectionResponse{}, domain.NewValidationError("item id must not be blank")
	}

	selected := sess.Selection.Toggle(itemID)
	res := selectionResponse(sess.Selection)
	res.Selected = &selected
	return res, nil
}

func (s *inventoryService) TransferSelected(ctx context.Context, userID string, req domain.TransferSelectionRequest) (domain.BulkOperationResponse, error) {
	sess, err := s.session(userID)
	if err != nil {
		return domain.BulkOperationResponse{}, err
	}
	target := domain.Location(req.Location)
	if !target.IsStorage() {
		return domain.BulkOperationResponse{}, domain.NewValidationError("%v: %q", domain.ErrInvalidLocation, req.Location)
	}

	res := runBulk(ctx, sess.Selection.IDs(), s.concurrency, func(ctx context.Context, id string) error {
		return s.items.UpdateItemLocation(ctx, userID, id, target)
	})
	return s.finishBulk(ctx, userID, sess, "transfer", res)
}

// DeleteSelected removes each selected item and then, best effort, the
// image it referenced.
func (s *inventoryService) DeleteSelected(ctx context.Context, userID string) (domain.BulkOperationResponse, error) {
	sess, err := s.session(userID)
	if err != nil {
		return domain.BulkOperationResponse{}, err
	}

	res := runBulk(ctx, sess.Selection.IDs(), s.concurrency, func(ctx context.Context, id string) error {
		item, err := s.items.DeleteItem(ctx, userID, id)
		if err != nil {
			return err
		}
		if item.ImageURL != nil && s.images != nil {
			if err := s.images.DeleteImage(ctx, *item.ImageURL); err != nil {
				logger.Warn(ctx).Err(err).Str("item_id", id).Msg("failed to delete item image")
			}
		}
		return nil
	})
	return s.finishBulk(ctx, userID, sess, "delete", res)
}

// finishBulk clears the selection whatever the outcome and returns the
// refreshed list alongside the per-item results.
func (s *inventoryService) finishBulk(ctx context.Context, userID string, sess *Session, op string, res BulkResult) (domain.BulkOperationResponse, error) {
	sess.Selection.Clear()
	s.metrics.RecordBulkMutation(op, len(res.Succeeded), len(res.Failed))
	if len(res.Failed) > 0 {
		logger.Warn(ctx).Str("user_id", userID).Str("op", op).Int("failed", len(res.Failed)).Msg("bulk inventory operation partially failed")
	}

	out := domain.BulkOperationResponse{
		Succeeded: res.Succeeded,
		Failed:    res.Failed,
		Items:     []domain.InventoryItemResponse{},
	}

	items, err := s.items.ListItems(ctx, userID, domain.LocationAll)
	if err != nil {
		return out, err
	}
	now := s.now()
	out.Items = ToResponses(SortItems(items, domain.SortByName, now), now)
	return out, nil
}
