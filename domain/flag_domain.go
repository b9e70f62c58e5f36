package domain

import "errors"

const (
	FlagTutorial = "tutorial"
)

var (
	MessageSuccessGetFlag = "flag retrieved successfully"
	MessageSuccessSetFlag = "flag updated successfully"
	MessageFailedGetFlag  = "failed to retrieve flag"
	MessageFailedSetFlag  = "failed to update flag"

	ErrUnknownFlag = errors.New("unknown flag")

	KnownFlags = map[string]bool{
		FlagTutorial: true,
	}
)

type (
	SetFlagRequest struct {
		Value *bool `json:"value" validate:"required"`
	}

	FlagResponse struct {
		Name  string `json:"name"`
		Value bool   `json:"value"`
	}
)
