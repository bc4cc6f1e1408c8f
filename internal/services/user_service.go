package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/lynxview-api/internal/constants"
	"github.com/yukikurage/lynxview-api/internal/dto"
	"github.com/yukikurage/lynxview-api/internal/models"
	"github.com/yukikurage/lynxview-api/internal/repository"
	"github.com/yukikurage/lynxview-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailRequired        = validationError("email is required")
	ErrEmailTaken           = validationError("a user with this email already exists")
	ErrUsernameTaken        = validationError("a user with this username already exists")
	ErrUsernameLength       = validationError("username must be between 3 and 100 characters")
	ErrPasswordTooShort     = validationErrorf("password must be at least %d characters", constants.MinPasswordLength)
	ErrPasswordTooLong      = validationErrorf("password must be at most %d bytes", constants.MaxPasswordBytes)
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// UserService handles user business logic
type UserService struct {
	userRepo   repository.UserRepository
	bcryptCost int
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	Email       string
	Username    string
	Password    string
	FullName    *string
	Role        *string
	Seniority   *string
	Department  *string
	HourlyRate  *float64
	Skills      *string
	IsActive    *bool
	IsSuperuser *bool
}

// UpdateUserInput represents a partial update of a user
type UpdateUserInput struct {
	Email       utils.Optional[string]
	Username    utils.Optional[string]
	Password    utils.Optional[string]
	FullName    utils.Optional[string]
	Role        utils.Optional[string]
	Seniority   utils.Optional[string]
	Department  utils.Optional[string]
	HourlyRate  utils.Optional[float64]
	Skills      utils.Optional[string]
	IsActive    utils.Optional[bool]
	IsSuperuser utils.Optional[bool]
}

func (in CreateUserInput) validate() error {
	if strings.TrimSpace(in.Email) == "" {
		return ErrEmailRequired
	}
	if checkLength("username", in.Username, 3, 100) != nil {
		return ErrUsernameLength
	}
	if err := checkPassword(in.Password); err != nil {
		return err
	}
	return checkNonNegative("hourly_rate", in.HourlyRate)
}

func (in UpdateUserInput) validate() error {
	if err := errors.Join(
		notNull(in.Email, "email"),
		notNull(in.Username, "username"),
		notNull(in.Password, "password"),
		notNull(in.IsActive, "is_active"),
		notNull(in.IsSuperuser, "is_superuser"),
	); err != nil {
		return err
	}

	if in.Email.Set && strings.TrimSpace(*in.Email.Value) == "" {
		return ErrEmailRequired
	}
	if in.Username.Set && checkLength("username", *in.Username.Value, 3, 100) != nil {
		return ErrUsernameLength
	}
	if in.Password.Set {
		if err := checkPassword(*in.Password.Value); err != nil {
			return err
		}
	}
	return checkNonNegative("hourly_rate", in.HourlyRate.Value)
}

// checkPassword counts characters for the minimum and bytes for the bcrypt limit
func checkPassword(password string) error {
	if utf8.RuneCountInString(password) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > constants.MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// Search returns a page of users matching filter
func (s *UserService) Search(ctx context.Context, filter repository.UserFilter, skip, limit int) (*dto.UserListResponse, error) {
	users, total, err := s.userRepo.Search(ctx, filter, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return &dto.UserListResponse{
		Total: total,
		Users: dto.ToUserResponses(users),
	}, nil
}

// GetByID returns a user
func (s *UserService) GetByID(ctx context.Context, id uint64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrUserNotFound, "user")
	}

	resp := dto.ToUserResponse(*user)
	return &resp, nil
}

// Create creates a user after checking email and username are free
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (resp *dto.UserResponse, err error) {
	defer func() { observe("user", "create", err) }()

	if err := input.validate(); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(input.Email)
	username := strings.TrimSpace(input.Username)

	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}
	if err := s.ensureUsernameFree(ctx, username, 0); err != nil {
		return nil, err
	}

	hashed, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:          email,
		Username:       username,
		HashedPassword: hashed,
		FullName:       input.FullName,
		Role:           input.Role,
		Seniority:      input.Seniority,
		Department:     input.Department,
		HourlyRate:     input.HourlyRate,
		Skills:         input.Skills,
		IsActive:       true,
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.IsSuperuser != nil {
		user.IsSuperuser = *input.IsSuperuser
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	out := dto.ToUserResponse(*created)
	return &out, nil
}

// Update applies a partial update to a user
func (s *UserService) Update(ctx context.Context, id uint64, input UpdateUserInput) (resp *dto.UserResponse, err error) {
	defer func() { observe("user", "update", err) }()

	current, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrUserNotFound, "user")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	patch := repository.Patch{}

	if input.Email.Set {
		email := strings.TrimSpace(*input.Email.Value)
		if email != current.Email {
			if err := s.ensureEmailFree(ctx, email, id); err != nil {
				return nil, err
			}
		}
		patch["email"] = email
	}
	if input.Username.Set {
		username := strings.TrimSpace(*input.Username.Value)
		if username != current.Username {
			if err := s.ensureUsernameFree(ctx, username, id); err != nil {
				return nil, err
			}
		}
		patch["username"] = username
	}
	if input.Password.Set {
		hashed, err := s.hashPassword(*input.Password.Value)
		if err != nil {
			return nil, err
		}
		patch["hashed_password"] = hashed
	}

	putOptional(patch, "full_name", input.FullName)
	putOptional(patch, "role", input.Role)
	putOptional(patch, "seniority", input.Seniority)
	putOptional(patch, "department", input.Department)
	putOptional(patch, "hourly_rate", input.HourlyRate)
	putOptional(patch, "skills", input.Skills)
	putOptional(patch, "is_active", input.IsActive)
	putOptional(patch, "is_superuser", input.IsSuperuser)

	updated, err := s.userRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, lookupError(err, ErrUserNotFound, "user")
	}

	out := dto.ToUserResponse(*updated)
	return &out, nil
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, id uint64) (err error) {
	defer func() { observe("user", "delete", err) }()
	ok, err := s.userRepo.Delete(ctx, id)
	return deleted(ok, err, ErrUserNotFound, "user")
}

// ListActiveByRole lists active users holding role
func (s *UserService) ListActiveByRole(ctx context.Context, role string) ([]dto.UserResponse, error) {
	users, err := s.userRepo.ListActiveByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	return dto.ToUserResponses(users), nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string, selfID uint64) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing.ID != selfID {
		return ErrEmailTaken
	}
	return nil
}

func (s *UserService) ensureUsernameFree(ctx context.Context, username string, selfID uint64) error {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if existing.ID != selfID {
		return ErrUsernameTaken
	}
	return nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToHashPassword, err)
	}
	return string(hashed), nil
}
