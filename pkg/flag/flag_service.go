package flag

import (
	"context"

	"foodflow/domain"
	"foodflow/pkg/logger"
)

type (
	FlagService interface {
		GetFlag(ctx context.Context, userID string, name string) (domain.FlagResponse, error)
		SetFlag(ctx context.Context, userID string, name string, req domain.SetFlagRequest) (domain.FlagResponse, error)
	}

	flagService struct {
		flagRepository FlagRepository
	}
)

func NewFlagService(flagRepository FlagRepository) FlagService {
	return &flagService{flagRepository: flagRepository}
}

func checkFlag(userID, name string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	if !domain.KnownFlags[name] {
		return domain.ErrUnknownFlag
	}
	return nil
}

func (s *flagService) GetFlag(ctx context.Context, userID string, name string) (domain.FlagResponse, error) {
	if err := checkFlag(userID, name); err != nil {
		return domain.FlagResponse{}, err
	}

	value, err := s.flagRepository.GetFlag(userID, name)
	if err != nil {
		return domain.FlagResponse{}, err
	}
	return domain.FlagResponse{Name: name, Value: value}, nil
}

func (s *flagService) SetFlag(ctx context.Context, userID string, name string, req domain.SetFlagRequest) (domain.FlagResponse, error) {
	if err := checkFlag(userID, name); err != nil {
		return domain.FlagResponse{}, err
	}
	if req.Value == nil {
		return domain.FlagResponse{}, domain.NewValidationError("value is required")
	}

	if err := s.flagRepository.SetFlag(userID, name, *req.Value); err != nil {
		return domain.FlagResponse{}, err
	}

	logger.Debug(ctx).Str("user_id", userID).Str("flag", name).Bool("value", *req.Value).Msg("flag updated")
	return domain.FlagResponse{Name: name, Value: *req.Value}, nil
}
