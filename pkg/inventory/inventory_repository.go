package inventory

import (
	"context"
	"errors"

	"foodflow/domain"
	"foodflow/entities"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("foodflow/inventory")

type (
	// InventoryRepository is the per-user item store. Every call is scoped to
	// userID; an empty or malformed userID fails with ErrUnauthenticated.
	InventoryRepository interface {
		ListItems(ctx context.Context, userID string, location domain.Location) ([]domain.InventoryItem, error)
		InsertItem(ctx context.Context, userID string, item domain.InventoryItem) (string, error)
		UpdateItemLocation(ctx context.Context, userID string, itemID string, location domain.Location) error
		DeleteItem(ctx context.Context, userID string, itemID string) (domain.InventoryItem, error)
		DeleteAllItems(ctx context.Context, userID string) (int64, error)
		CountItems(ctx context.Context, userID string) (int64, error)
	}

	inventoryRepository struct {
		db *gorm.DB
	}
)

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func userScope(userID string) (uuid.UUID, error) {
	if userID == "" {
		return uuid.Nil, domain.ErrUnauthenticated
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthenticated
	}
	return id, nil
}

func startSpan(ctx context.Context, name string, userID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attribute.String("user.id", userID)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func toDomain(e entities.InventoryItem) domain.InventoryItem {
	return domain.InventoryItem{
		ID:             e.ID.String(),
		Name:           e.Name,
		Location:       domain.Location(e.Location),
		Quantity:       e.Quantity,
		ExpirationDate: e.ExpirationDate,
		ImageURL:       e.ImageURL,
	}
}

func (r *inventoryRepository) ListItems(ctx context.Context, userID string, location domain.Location) (items []domain.InventoryItem, err error) {
	ctx, span := startSpan(ctx, "inventory.ListItems", userID)
	span.SetAttributes(attribute.String("inventory.location", string(location)))
	defer func() { endSpan(span, err) }()

	uid, err := userScope(userID)
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Where("user_id = ?", uid)
	if location != domain.LocationAll && location != "" {
		query = query.Where("location = ?", string(location))
	}

	var rows []entities.InventoryItem
	if err := query.Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, domain.NewRemoteFailure("list inventory items", err)
	}

	items = make([]domain.InventoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, toDomain(row))
	}
	return items, nil
}

func (r *inventoryRepository) InsertItem(ctx context.Context, userID string, item domain.InventoryItem) (id string, err error) {
	ctx, span := startSpan(ctx, "inventory.InsertItem", userID)
	defer func() { endSpan(span, err) }()

	uid, err := userScope(userID)
	if err != nil {
		return "", err
	}

	row := entities.InventoryItem{
		ID:             uuid.New(),
		UserID:         uid,
		Name:           item.Name,
		Location:       string(item.Location),
		Quantity:       item.Quantity,
		ExpirationDate: item.ExpirationDate,
		ImageURL:       item.ImageURL,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", domain.NewRemoteFailure("insert inventory item", err)
	}
	return row.ID.String(), nil
}

func (r *inventoryRepository) UpdateItemLocation(ctx context.Context, userID string, itemID string, location domain.Location) (err error) {
	ctx, span := startSpan(ctx, "inventory.UpdateItemLocation", userID)
	span.SetAttributes(attribute.String("inventory.item_id", itemID))
	defer func() { endSpan(span, err) }()

	uid, err := userScope(userID)
	if err != nil {
		return err
	}
	iid, err := uuid.Parse(itemID)
	if err != nil {
		return domain.ErrInventoryItemNotFound
	}

	res := r.db.WithContext(ctx).
		Model(&entities.InventoryItem{}).
		Where("id = ? AND user_id = ?", iid, uid).
		Update("location", string(location))
	if res.Error != nil {
		return domain.NewRemoteFailure("update inventory item location", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrInventoryItemNotFound
	}
	return nil
}

// DeleteItem removes one item and returns it, so callers can clean up the
// image it referenced.
func (r *inventoryRepository) DeleteItem(ctx context.Context, userID string, itemID string) (item domain.InventoryItem, err error) {
	ctx, span := startSpan(ctx, "inventory.DeleteItem", userID)
	span.SetAttributes(attribute.String("inventory.item_id", itemID))
	defer func() { endSpan(span, err) }()

	uid, err := userScope(userID)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	iid, err := uuid.Parse(itemID)
	if err != nil {
		return domain.InventoryItem{}, domain.ErrInventoryItemNotFound
	}

	var row entities.InventoryItem
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", iid, uid).First(&row).Error; err != nil {
			return err
		}
		return tx.Delete(&row).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.InventoryItem{}, domain.ErrInventoryItemNotFound
		}
		return domain.InventoryItem{}, domain.NewRemoteFailure("delete inventory item", err)
	}
	return toDomain(row), nil
}

// DeleteAllItems removes every item of the user in one transaction and
// returns how many were removed.
func (r *inventoryRepository) DeleteAllItems(ctx context.Context, userID string) (deleted int64, err error) {
	ctx, span := startSpan(ctx, "inventory.DeleteAllItems", userID)
	defer func() {
		span.SetAttributes(attribute.Int64("inventory.deleted", deleted))
		endSpan(span, err)
	}()

	uid, err := userScope(userID)
	if err != nil {
		return 0, err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ?", uid).Delete(&entities.InventoryItem{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, domain.NewRemoteFailure("clear inventory", err)
	}
	return deleted, nil
}

func (r *inventoryRepository) CountItems(ctx context.Context, userID string) (count int64, err error) {
	ctx, span := startSpan(ctx, "inventory.CountItems", userID)
	defer func() { endSpan(span, err) }()

	uid, err := userScope(userID)
	if err != nil {
		return 0, err
	}

	if err := r.db.WithContext(ctx).Model(&entities.InventoryItem{}).Where("user_id = ?", uid).Count(&count).Error; err != nil {
		return 0, domain.NewRemoteFailure("count inventory items", err)
	}
	return count, nil
}
