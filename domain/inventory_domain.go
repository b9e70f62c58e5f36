package domain

import (
	"errors"
	"mime/multipart"
	"strings"
)

var (
	MessageSuccessAddInventoryItem     = "inventory item added successfully"
	MessageSuccessGetInventoryItems    = "inventory items retrieved successfully"
	MessageSuccessConfirmDuplicate     = "duplicate item added successfully"
	MessageSuccessCancelDuplicate      = "duplicate item discarded"
	MessageSuccessGetWorkflow          = "insertion workflow retrieved successfully"
	MessageSuccessClearInventory       = "inventory cleared successfully"
	MessageSuccessGetSelection         = "selection retrieved successfully"
	MessageSuccessToggleSelection      = "selection updated successfully"
	MessageSuccessTransferSelection    = "selected items transferred successfully"
	MessageSuccessDeleteSelection      = "selected items deleted successfully"
	MessageDuplicateInventoryItem      = "an item with the same name already exists"
	MessagePartialBulkOperation        = "some selected items could not be processed"
	MessageFailedAddInventoryItem      = "failed to add inventory item"
	MessageFailedGetInventoryItems     = "failed to retrieve inventory items"
	MessageFailedConfirmDuplicate      = "failed to add duplicate item"
	MessageFailedClearInventory        = "failed to clear inventory"
	MessageFailedToggleSelection       = "failed to update selection"
	MessageFailedTransferSelection     = "failed to transfer selected items"
	MessageFailedDeleteSelection       = "failed to delete selected items"
	MessageFailedInvalidInventoryQuery = "invalid inventory query"

	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrInvalidLocation       = errors.New("invalid location")
	ErrInvalidSortOrder      = errors.New("invalid sort order")
	ErrInvalidExpiryDate     = errors.New("invalid expiration date")
	ErrInvalidQuantity       = errors.New("quantity must not be negative")
	ErrWorkflowBusy          = errors.New("an insertion is already in progress")
	ErrConfirmationPending   = errors.New("a duplicate item is awaiting confirmation")
	ErrNoPendingDuplicate    = errors.New("no duplicate item is awaiting confirmation")
)

type Location string

const (
	LocationAll     Location = "All"
	LocationFridge  Location = "Fridge"
	LocationFreezer Location = "Freezer"
	LocationPantry  Location = "Pantry"
)

// StorageLocations are the locations an item can be stored in. LocationAll
// is only a filter value.
var StorageLocations = []Location{LocationFridge, LocationFreezer, LocationPantry}

func (l Location) IsStorage() bool {
	for _, s := range StorageLocations {
		if l == s {
			return true
		}
	}
	return false
}

func (l Location) IsFilter() bool {
	return l == LocationAll || l.IsStorage()
}

type SortOrder string

const (
	SortByName       SortOrder = "by_name"
	SortByExpiration SortOrder = "by_expiration"
	SortByQuantity   SortOrder = "by_quantity"
	SortDaysLeft     SortOrder = "days_remaining"

	// SortAlphabetical sorts exactly like SortByName and is folded into it
	// by ParseSortOrder.
	SortAlphabetical SortOrder = "alphabetical"
)

// ParseSortOrder accepts the wire names case-insensitively. An empty
// string means SortByName.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByName, SortAlphabetical:
		return SortByName, nil
	case SortByExpiration:
		return SortByExpiration, nil
	case SortByQuantity:
		return SortByQuantity, nil
	case SortDaysLeft:
		return SortDaysLeft, nil
	default:
		return "", ErrInvalidSortOrder
	}
}

type (
	// InventoryItem is the item as the inventory core sees it. ID is empty
	// until the item store assigns one.
	InventoryItem struct {
		ID             string   `json:"id"`
		Name           string   `json:"name"`
		Location       Location `json:"location"`
		Quantity       int      `json:"quantity"`
		ExpirationDate string   `json:"expiration_date"`
		ImageURL       *string  `json:"image_url,omitempty"`
	}

	AddInventoryItemRequest struct {
		Name           string                `form:"name" json:"name" validate:"required"`
		Location       string                `form:"location" json:"location" validate:"required,oneof=Fridge Freezer Pantry"`
		Quantity       int                   `form:"quantity" json:"quantity" validate:"min=0"`
		ExpirationDate string                `form:"expiration_date" json:"expiration_date" validate:"required,datetime=2006-01-02"`
		Image          *multipart.FileHeader `form:"-" json:"-"`
	}

	InventoryQueryRequest struct {
		Location string `query:"location"`
		Sort     string `query:"sort"`
		Query    string `query:"q"`
	}

	TransferSelectionRequest struct {
		Location string `json:"location" validate:"required,oneof=Fridge Freezer Pantry"`
	}

	InventoryItemResponse struct {
		ID                 string   `json:"id"`
		Name               string   `json:"name"`
		Location           Location `json:"location"`
		Quantity           int      `json:"quantity"`
		ExpirationDate     string   `json:"expiration_date"`
		ImageURL           *string  `json:"image_url,omitempty"`
		DaysRemaining      int64    `json:"days_remaining"`
		ExpirationProgress float64  `json:"expiration_progress"`
		ExpirationTier     string   `json:"expiration_tier"`
		ExpirationColor    string   `json:"expiration_color"`
	}

	WorkflowResponse struct {
		State       string                 `json:"state"`
		Busy        bool                   `json:"busy"`
		DuplicateOf string                 `json:"duplicate_of,omitempty"`
		Pending     *InventoryItemResponse `json:"pending,omitempty"`
		Item        *InventoryItemResponse `json:"item,omitempty"`
	}

	BulkFailure struct {
		ID    string `json:"id"`
		Error string `json:"error"`
	}

	BulkOperationResponse struct {
		Succeeded []string                `json:"succeeded"`
		Failed    []BulkFailure           `json:"failed"`
		Items     []InventoryItemResponse `json:"items"`
	}

	SelectionResponse struct {
		IDs      []string `json:"ids"`
		Count    int      `json:"count"`
		Selected *bool    `json:"selected,omitempty"`
	}

	ClearInventoryResponse struct {
		Deleted   int64 `json:"deleted"`
		Remaining int64 `json:"remaining"`
	}
)
