package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/attendly/leave-backend-go/internal/domain/user"
	"github.com/attendly/leave-backend-go/internal/pkg/email"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
	emailService email.Service
}

func NewUserService(userRepo user.UserRepository, emailService email.Service) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepo,
		emailService:   emailService,
	}
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context, caller user.CallerContext) ([]user.UserResponse, error) {
	if !caller.IsApprover() {
		return nil, user.ErrApproverAccessRequired
	}

	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toResponse(u))
	}
	return responses, nil
}

// CreateUser implements user.UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, caller user.CallerContext, req user.CreateUserRequest) (user.UserResponse, error) {
	if !caller.IsApprover() {
		return user.UserResponse{}, user.ErrApproverAccessRequired
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	role := user.Role(req.Role)
	if role == user.RoleSysadmin && !caller.IsSysadmin() {
		return user.UserResponse{}, user.ErrCannotCreateSysadmin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	createdBy := caller.ID
	created, err := s.UserRepository.Create(ctx, user.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Designation:  req.Designation,
		Role:         role,
		IsActive:     true,
		CreatedBy:    &createdBy,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	// Credentials mail is best-effort; the account exists either way.
	if err := s.emailService.SendWelcome(created.Email, created.FullName, created.Username, req.Password); err != nil {
		slog.Error("Failed to send welcome email", "user_id", created.ID, "error", err)
	}

	return toResponse(created), nil
}

// UpdateUser implements user.UserService.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, caller user.CallerContext, req user.UpdateUserRequest) (user.UserResponse, error) {
	if !caller.IsApprover() {
		return user.UserResponse{}, user.ErrApproverAccessRequired
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	params := user.UpdateUserParams{
		ID:          req.ID,
		Username:    req.Username,
		Email:       req.Email,
		FullName:    req.FullName,
		Designation: req.Designation,
		IsActive:    req.IsActive,
	}

	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		hashStr := string(hash)
		params.PasswordHash = &hashStr
	}

	updated, err := s.UserRepository.Update(ctx, params)
	if err != nil {
		return user.UserResponse{}, err
	}
	return toResponse(updated), nil
}

// DeleteUser implements user.UserService.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, caller user.CallerContext, id string) error {
	if !caller.IsSysadmin() {
		return user.ErrSysadminAccessRequired
	}
	return s.UserRepository.Delete(ctx, id)
}

func toResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		Designation: u.Designation,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}
