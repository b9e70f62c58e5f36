package handlers

import (
	"foodflow/domain"
	"foodflow/internal/api/presenters"
	"foodflow/pkg/flag"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FlagHandler interface {
		GetFlag(c *fiber.Ctx) error
		SetFlag(c *fiber.Ctx) error
	}

	flagHandler struct {
		flagService flag.FlagService
		validator   *validator.Validate
	}
)

func NewFlagHandler(flagService flag.FlagService, validator *validator.Validate) FlagHandler {
	return &flagHandler{
		flagService: flagService,
		validator:   validator,
	}
}

func (h *flagHandler) GetFlag(c *fiber.Ctx) error {
	res, err := h.flagService.GetFlag(c.UserContext(), currentUserID(c), c.Params("name"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetFlag, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFlag)
}

func (h *flagHandler) SetFlag(c *fiber.Ctx) error {
	req := new(domain.SetFlagRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetFlag, err)
	}

	res, err := h.flagService.SetFlag(c.UserContext(), currentUserID(c), c.Params("name"), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSetFlag, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSetFlag)
}
