package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/muqabla/sportshub/models"
	"github.com/muqabla/sportshub/repositories"
	"github.com/muqabla/sportshub/storage"
)

var (
	ErrUserCreationFailed     = errors.New("failed to create user")
	ErrUserUpdateFailed       = errors.New("failed to update user")
	ErrUserDeleteFailed       = errors.New("failed to delete user")
	ErrUserAvatarUploadFailed = errors.New("failed to upload user avatar")
)

const bcryptCost = 12

type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	ListUsers(ctx context.Context, filter repositories.ListUsersFilter) ([]models.User, error)
	UpdateUser(ctx context.Context, id int, input UpdateUserInput) (*models.User, error)
	DeleteUser(ctx context.Context, id int) error
	UploadAvatar(ctx context.Context, userID int, file io.Reader, contentType string) (*models.User, error)
}

type CreateUserInput struct {
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role"`
}

type UpdateUserInput struct {
	Email     *string `json:"email"`
	Username  *string `json:"username"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role"`
	IsActive  *bool   `json:"isActive"`
}

type userService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

func NewUserService(userRepo repositories.UserRepository, uploader storage.FileUploader) UserService {
	return &userService{
		userRepo: userRepo,
		uploader: uploader,
	}
}

func (s *userService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if strings.TrimSpace(input.Email) == "" ||
		strings.TrimSpace(input.Username) == "" ||
		input.Password == "" ||
		strings.TrimSpace(input.FirstName) == "" ||
		strings.TrimSpace(input.LastName) == "" {
		return nil, ErrUserMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUserCreationFailed, err)
	}

	role := models.RoleUser
	if input.Role != nil {
		role = models.UserRole(*input.Role)
		if !isValidUserRole(role) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidationFailed, *input.Role)
		}
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        input.Phone,
		Role:         role,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserEmailConflict):
			return nil, ErrUserEmailConflict
		case errors.Is(err, repositories.ErrUserUsernameConflict):
			return nil, ErrUserUsernameConflict
		default:
			return nil, fmt.Errorf("%w: %w", ErrUserCreationFailed, err)
		}
	}

	s.resolveAvatarURL(user)
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id %d: %w", id, err)
	}
	s.resolveAvatarURL(user)
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, filter repositories.ListUsersFilter) ([]models.User, error) {
	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		s.resolveAvatarURL(&users[i])
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, id int, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrUserUpdateFailed, id, err)
	}

	if input.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Username != nil {
		user.Username = strings.TrimSpace(*input.Username)
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Role != nil {
		role := models.UserRole(*input.Role)
		if !isValidUserRole(role) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidationFailed, *input.Role)
		}
		user.Role = role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrUserEmailConflict):
			return nil, ErrUserEmailConflict
		case errors.Is(err, repositories.ErrUserUsernameConflict):
			return nil, ErrUserUsernameConflict
		default:
			return nil, fmt.Errorf("%w (id: %d): %w", ErrUserUpdateFailed, id, err)
		}
	}

	s.resolveAvatarURL(user)
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id int) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w (id: %d): %w", ErrUserDeleteFailed, id, err)
	}
	return nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID int, file io.Reader, contentType string) (*models.User, error) {
	if s.uploader == nil {
		return nil, ErrMediaStorageUnavailable
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrUserAvatarUploadFailed, err)
	}

	key := fmt.Sprintf("avatars/user_%d_%d", userID, time.Now().Unix())
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUserAvatarUploadFailed, err)
	}

	oldKey := user.AvatarKey
	if err := s.userRepo.UpdateAvatarKey(ctx, userID, &result.Key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUserAvatarUploadFailed, err)
	}
	if oldKey != nil && *oldKey != result.Key {
		// Old object is orphaned otherwise. Deletion failure is not fatal.
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	user.AvatarKey = &result.Key
	s.resolveAvatarURL(user)
	return user, nil
}

func (s *userService) resolveAvatarURL(user *models.User) {
	if user.AvatarKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*user.AvatarKey)
		user.AvatarURL = &url
	}
}

func isValidUserRole(role models.UserRole) bool {
	switch role {
	case models.RoleUser, models.RoleOrganizer, models.RoleAdmin:
		return true
	}
	return false
}
