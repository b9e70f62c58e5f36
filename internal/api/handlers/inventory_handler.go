package handlers

import (
	"foodflow/domain"
	"foodflow/internal/api/presenters"
	"foodflow/pkg/inventory"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	InventoryHandler interface {
		GetItems(c *fiber.Ctx) error
		AddItem(c *fiber.Ctx) error
		ConfirmDuplicate(c *fiber.Ctx) error
		CancelDuplicate(c *fiber.Ctx) error
		GetWorkflow(c *fiber.Ctx) error
		ClearAll(c *fiber.Ctx) error

		GetSelection(c *fiber.Ctx) error
		ToggleSelection(c *fiber.Ctx) error
		TransferSelected(c *fiber.Ctx) error
		DeleteSelected(c *fiber.Ctx) error
	}

	inventoryHandler struct {
		inventoryService inventory.InventoryService
		validator        *validator.Validate
	}
)

func NewInventoryHandler(inventoryService inventory.InventoryService, validator *validator.Validate) InventoryHandler {
	return &inventoryHandler{
		inventoryService: inventoryService,
		validator:        validator,
	}
}

func (h *inventoryHandler) GetItems(c *fiber.Ctx) error {
	req := new(domain.InventoryQueryRequest)
	if err := c.QueryParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInvalidInventoryQuery, err)
	}

	items, err := h.inventoryService.ListItems(c.UserContext(), currentUserID(c), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetInventoryItems, err)
	}

	return presenters.SuccessResponse(c, items, fiber.StatusOK, domain.MessageSuccessGetInventoryItems)
}

func (h *inventoryHandler) AddItem(c *fiber.Ctx) error {
	req := new(domain.AddInventoryItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if image, err := c.FormFile("image"); err == nil {
		req.Image = image
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddInventoryItem, err)
	}

	res, err := h.inventoryService.SubmitItem(c.UserContext(), currentUserID(c), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddInventoryItem, err)
	}

	if res.State == string(inventory.StateAwaitingConfirmation) {
		return presenters.SuccessResponse(c, res, fiber.StatusAccepted, domain.MessageDuplicateInventoryItem)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddInventoryItem)
}

func (h *inventoryHandler) ConfirmDuplicate(c *fiber.Ctx) error {
	res, err := h.inventoryService.ConfirmDuplicate(c.UserContext(), currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedConfirmDuplicate, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessConfirmDuplicate)
}

func (h *inventoryHandler) CancelDuplicate(c *fiber.Ctx) error {
	res, err := h.inventoryService.CancelDuplicate(c.UserContext(), currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedProcessRequest, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCancelDuplicate)
}

func (h *inventoryHandler) GetWorkflow(c *fiber.Ctx) error {
	res, err := h.inventoryService.GetWorkflow(c.UserContext(), currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedProcessRequest, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetWorkflow)
}

func (h *inventoryHandler) ClearAll(c *fiber.Ctx) error {
	res, err := h.inventoryService.ClearAll(c.UserContext(), currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedClearInventory, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessClearInventory)
}

func (h *inventoryHandler) GetSelection(c *fiber.Ctx) error {
	res, err := h.inventoryService.GetSelection(c.UserContext(), currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedProcessRequest, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSelection)
}

func (h *inventoryHandler) ToggleSelection(c *fiber.Ctx) error {
	res, err := h.inventoryService.ToggleSelection(c.UserContext(), currentUserID(c), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedToggleSelection, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleSelection)
}

func (h *inventoryHandler) TransferSelected(c *fiber.Ctx) error {
	req := new(domain.TransferSelectionRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedTransferSelection, err)
	}

	res, err := h.inventoryService.TransferSelected(c.UserContext(), currentUserID(c), *req)
	return bulkResponse(c, res, err, domain.MessageSuccessTransferSelection, domain.MessageFailedTransferSelection)
}

func (h *inventoryHandler) DeleteSelected(c *fiber.Ctx) error {
	res, err := h.inventoryService.DeleteSelected(c.UserContext(), currentUserID(c))
	return bulkResponse(c, res, err, domain.MessageSuccessDeleteSelection, domain.MessageFailedDeleteSelection)
}

// bulkResponse reports per-item failures with 207 and keeps the result when
// only the refresh afterwards failed.
func bulkResponse(c *fiber.Ctx, res domain.BulkOperationResponse, err error, success, failure string) error {
	if err != nil {
		if res.Succeeded == nil && res.Failed == nil {
			return presenters.ErrorResponse(c, statusFor(err), failure, err)
		}
		return presenters.ErrorResponseWithData(c, statusFor(err), failure, err, res)
	}
	if len(res.Failed) > 0 {
		return presenters.SuccessResponse(c, res, fiber.StatusMultiStatus, domain.MessagePartialBulkOperation)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, success)
}
