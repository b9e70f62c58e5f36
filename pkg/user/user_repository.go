package user

import (
	"context"
	"errors"

	"foodflow/domain"
	"foodflow/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		UpdatePassword(ctx context.Context, id string, hashed string) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailAlreadyRegistered
		}
		return domain.NewRemoteFailure("create user", err)
	}
	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", uid).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.NewRemoteFailure("get user", err)
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.NewRemoteFailure("get user by email", err)
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id string, hashed string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrParseUUID
	}

	res := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", uid).Update("password", hashed)
	if res.Error != nil {
		return domain.NewRemoteFailure("update password", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
