package user

import "context"

// UserRepository - interface for users table
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// GetFirstByRole returns the earliest-created active user holding the role.
	// Used to resolve the default approver on the quick-action path.
	GetFirstByRole(ctx context.Context, role Role) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u UpdateUserParams) (User, error)
	Delete(ctx context.Context, id string) error
}

// UpdateUserParams carries the mutable user fields; nil means keep current value.
type UpdateUserParams struct {
	ID           string
	Username     *string
	Email        *string
	FullName     *string
	Designation  *string
	PasswordHash *string
	IsActive     *bool
}
