package user

import "context"

// UserService defines user management operations (approver roles only)
type UserService interface {
	ListUsers(ctx context.Context, caller CallerContext) ([]UserResponse, error)
	CreateUser(ctx context.Context, caller CallerContext, req CreateUserRequest) (UserResponse, error)
	UpdateUser(ctx context.Context, caller CallerContext, req UpdateUserRequest) (UserResponse, error)
	DeleteUser(ctx context.Context, caller CallerContext, id string) error
}
