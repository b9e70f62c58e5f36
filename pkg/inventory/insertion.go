package inventory

import (
	"context"
	"mime/multipart"
	"strings"
	"sync"
	"time"

	"foodflow/domain"
	"foodflow/pkg/logger"
	"foodflow/pkg/metrics"
)

type WorkflowState string

const (
	StateIdle                 WorkflowState = "idle"
	StateChecking             WorkflowState = "checking"
	StateInserting            WorkflowState = "inserting"
	StateAwaitingConfirmation WorkflowState = "awaiting_confirmation"
	StateDone                 WorkflowState = "done"
)

// Busy reports whether a duplicate check or a write is in flight.
func (s WorkflowState) Busy() bool {
	return s == StateChecking || s == StateInserting
}

type (
	// ImageStore keeps item images and hands back public URLs.
	ImageStore interface {
		UploadImage(ctx context.Context, userID string, image *multipart.FileHeader) (string, error)
		DeleteImage(ctx context.Context, link string) error
	}

	// Outcome is what a workflow step left behind. Item is set once a record
	// was written; Pending and DuplicateOf while a duplicate waits to be
	// confirmed.
	Outcome struct {
		State       WorkflowState
		Item        *domain.InventoryItem
		Pending     *domain.InventoryItem
		DuplicateOf string
	}

	// Insertion adds items for one user after checking the name against the
	// existing ones. A duplicate is held until Confirm or Cancel. Only one
	// submission runs at a time; the lock is never held across store calls.
	Insertion struct {
		userID  string
		items   InventoryRepository
		images  ImageStore
		metrics metrics.Recorder

		mu          sync.Mutex
		state       WorkflowState
		held        *domain.InventoryItem
		duplicateOf string
		listeners   map[int]func(WorkflowState)
		nextID      int
	}
)

func NewInsertion(userID string, items InventoryRepository, images ImageStore, recorder metrics.Recorder) *Insertion {
	if recorder == nil {
		recorder = metrics.NopRecorder{}
	}
	return &Insertion{
		userID:    userID,
		items:     items,
		images:    images,
		metrics:   recorder,
		state:     StateIdle,
		listeners: make(map[int]func(WorkflowState)),
	}
}

// ValidateCandidate checks the fields a new item must carry.
func ValidateCandidate(item domain.InventoryItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return domain.NewValidationError("name must not be blank")
	}
	if !item.Location.IsStorage() {
		return domain.NewValidationError("%v: %q", domain.ErrInvalidLocation, item.Location)
	}
	if item.Quantity < 0 {
		return domain.NewValidationError("%v", domain.ErrInvalidQuantity)
	}
	if _, err := time.Parse(domain.DateLayout, item.ExpirationDate); err != nil {
		return domain.NewValidationError("%v: %q", domain.ErrInvalidExpiryDate, item.ExpirationDate)
	}
	return nil
}

func (w *Insertion) State() WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Insertion) Snapshot() Outcome {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := Outcome{State: w.state, DuplicateOf: w.duplicateOf}
	if w.held != nil {
		held := *w.held
		out.Pending = &held
	}
	return out
}

// Subscribe registers fn for every state change. The returned func removes
// it again. fn runs on the goroutine that made the change.
func (w *Insertion) Subscribe(fn func(WorkflowState)) func() {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.listeners[id] = fn
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		delete(w.listeners, id)
		w.mu.Unlock()
	}
}

// setLocked changes the state and returns the listeners to notify once the
// lock is released.
func (w *Insertion) setLocked(state WorkflowState) []func(WorkflowState) {
	w.state = state
	fns := make([]func(WorkflowState), 0, len(w.listeners))
	for _, fn := range w.listeners {
		fns = append(fns, fn)
	}
	return fns
}

func (w *Insertion) set(state WorkflowState) {
	w.mu.Lock()
	fns := w.setLocked(state)
	w.mu.Unlock()
	notify(fns, state)
}

func notify(fns []func(WorkflowState), state WorkflowState) {
	for _, fn := range fns {
		fn(state)
	}
}

func (w *Insertion) fail(ctx context.Context, err error) (Outcome, error) {
	w.mu.Lock()
	w.held = nil
	w.duplicateOf = ""
	fns := w.setLocked(StateIdle)
	w.mu.Unlock()
	notify(fns, StateIdle)

	w.metrics.RecordInsertion("failed")
	logger.Error(ctx).Err(err).Str("user_id", w.userID).Msg("inventory insertion failed")
	return Outcome{State: StateIdle}, err
}

// Submit checks candidate against the user's items and writes it when the
// name is new. A name match moves the workflow to awaiting confirmation and
// holds the candidate without its image.
func (w *Insertion) Submit(ctx context.Context, candidate domain.InventoryItem, image *multipart.FileHeader) (Outcome, error) {
	if err := ValidateCandidate(candidate); err != nil {
		w.metrics.RecordInsertion("rejected")
		return w.Snapshot(), err
	}

	w.mu.Lock()
	switch w.state {
	case StateChecking, StateInserting:
		w.mu.Unlock()
		w.metrics.RecordInsertion("rejected")
		return w.Snapshot(), domain.ErrWorkflowBusy
	case StateAwaitingConfirmation:
		w.mu.Unlock()
		w.metrics.RecordInsertion("rejected")
		return w.Snapshot(), domain.ErrConfirmationPending
	}
	fns := w.setLocked(StateChecking)
	w.mu.Unlock()
	notify(fns, StateChecking)

	candidate.ID = ""
	candidate.ImageURL = nil

	existing, err := w.items.ListItems(ctx, w.userID, domain.LocationAll)
	if err != nil {
		return w.fail(ctx, err)
	}

	if dup, ok := FindDuplicate(existing, candidate.Name); ok {
		held := candidate
		w.mu.Lock()
		w.held = &held
		w.duplicateOf = dup.Name
		fns := w.setLocked(StateAwaitingConfirmation)
		w.mu.Unlock()
		notify(fns, StateAwaitingConfirmation)

		w.metrics.RecordInsertion("duplicate")
		logger.Info(ctx).Str("user_id", w.userID).Str("name", candidate.Name).Msg("duplicate inventory item held for confirmation")
		pending := held
		return Outcome{State: StateAwaitingConfirmation, Pending: &pending, DuplicateOf: dup.Name}, nil
	}

	w.set(StateInserting)
	return w.write(ctx, candidate, image, "inserted")
}

// Confirm writes the held duplicate without checking names again. The held
// item never carries an image.
func (w *Insertion) Confirm(ctx context.Context) (Outcome, error) {
	w.mu.Lock()
	if w.state != StateAwaitingConfirmation || w.held == nil {
		w.mu.Unlock()
		return w.Snapshot(), domain.ErrNoPendingDuplicate
	}
	held := *w.held
	w.held = nil
	w.duplicateOf = ""
	fns := w.setLocked(StateInserting)
	w.mu.Unlock()
	notify(fns, StateInserting)

	return w.write(ctx, held, nil, "confirmed")
}

// Cancel drops the held duplicate and returns to idle.
func (w *Insertion) Cancel(ctx context.Context) (Outcome, error) {
	w.mu.Lock()
	if w.state != StateAwaitingConfirmation {
		w.mu.Unlock()
		return w.Snapshot(), domain.ErrNoPendingDuplicate
	}
	w.held = nil
	w.duplicateOf = ""
	fns := w.setLocked(StateIdle)
	w.mu.Unlock()
	notify(fns, StateIdle)

	w.metrics.RecordInsertion("cancelled")
	logger.Debug(ctx).Str("user_id", w.userID).Msg("duplicate inventory item discarded")
	return Outcome{State: StateIdle}, nil
}

// write uploads the image first, then the record. An image whose record
// could not be written is left in storage and logged.
func (w *Insertion) write(ctx context.Context, item domain.InventoryItem, image *multipart.FileHeader, outcome string) (Outcome, error) {
	if image != nil {
		url, err := w.images.UploadImage(ctx, w.userID, image)
		if err != nil {
			return w.fail(ctx, domain.NewRemoteFailure("upload item image", err))
		}
		item.ImageURL = &url
	}

	id, err := w.items.InsertItem(ctx, w.userID, item)
	if err != nil {
		if item.ImageURL != nil {
			logger.Warn(ctx).Str("user_id", w.userID).Str("image_url", *item.ImageURL).Msg("image uploaded but item record was not written")
		}
		return w.fail(ctx, err)
	}
	item.ID = id

	w.set(StateDone)
	w.metrics.RecordInsertion(outcome)
	logger.Info(ctx).Str("user_id", w.userID).Str("item_id", id).Msg("inventory item added")
	return Outcome{State: StateDone, Item: &item}, nil
}
