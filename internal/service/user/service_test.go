package user

import (
	"context"
	"testing"

	"github.com/attendly/leave-backend-go/internal/domain/user"
	"github.com/attendly/leave-backend-go/internal/pkg/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	for _, existing := range f.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return user.User{}, user.ErrUserEmailExists
		}
	}
	u.ID = "usr-new"
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetFirstByRole(ctx context.Context, role user.Role) (user.User, error) {
	for _, u := range f.users {
		if u.Role == role {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) { return f.users, nil }

func (f *fakeUserRepo) Update(ctx context.Context, params user.UpdateUserParams) (user.User, error) {
	for i, u := range f.users {
		if u.ID == params.ID {
			if params.IsActive != nil {
				u.IsActive = *params.IsActive
			}
			if params.PasswordHash != nil {
				u.PasswordHash = *params.PasswordHash
			}
			f.users[i] = u
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return user.ErrUserNotFound
}

type fakeEmailService struct {
	welcomes []string
}

func (f *fakeEmailService) SendWelcome(to, fullName, username, password string) error {
	f.welcomes = append(f.welcomes, to)
	return nil
}

func (f *fakeEmailService) SendLeaveRequestNotification(to string, data email.LeaveRequestData) error {
	return nil
}

func (f *fakeEmailService) SendLeaveStatusUpdate(to string, data email.LeaveStatusData) error {
	return nil
}

var (
	adminCaller    = user.CallerContext{ID: "adm-1", Role: user.RoleAdmin}
	sysadminCaller = user.CallerContext{ID: "sys-1", Role: user.RoleSysadmin}
	regularCaller  = user.CallerContext{ID: "usr-1", Role: user.RoleUser}
)

func validCreateRequest(role string) user.CreateUserRequest {
	return user.CreateUserRequest{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "initial-password",
		FullName: "John Doe",
		Role:     role,
	}
}

func TestCreateUserSendsWelcomeEmail(t *testing.T) {
	repo := &fakeUserRepo{}
	emails := &fakeEmailService{}
	svc := NewUserService(repo, emails)

	resp, err := svc.CreateUser(context.Background(), adminCaller, validCreateRequest("user"))
	require.NoError(t, err)

	assert.Equal(t, "jdoe", resp.Username)
	assert.True(t, resp.IsActive)
	require.Len(t, emails.welcomes, 1)
	assert.Equal(t, "jdoe@example.com", emails.welcomes[0])

	// Stored hash verifies against the plaintext that was mailed out.
	stored, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("initial-password")))
}

func TestCreateUserRoleGates(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo, &fakeEmailService{})

	_, err := svc.CreateUser(context.Background(), regularCaller, validCreateRequest("user"))
	assert.ErrorIs(t, err, user.ErrApproverAccessRequired)

	_, err = svc.CreateUser(context.Background(), adminCaller, validCreateRequest("sysadmin"))
	assert.ErrorIs(t, err, user.ErrCannotCreateSysadmin)

	_, err = svc.CreateUser(context.Background(), sysadminCaller, validCreateRequest("sysadmin"))
	require.NoError(t, err)
}

func TestDeleteUserRequiresSysadmin(t *testing.T) {
	repo := &fakeUserRepo{users: []user.User{{ID: "usr-9", Email: "x@example.com"}}}
	svc := NewUserService(repo, &fakeEmailService{})

	err := svc.DeleteUser(context.Background(), adminCaller, "usr-9")
	assert.ErrorIs(t, err, user.ErrSysadminAccessRequired)

	err = svc.DeleteUser(context.Background(), sysadminCaller, "usr-9")
	require.NoError(t, err)
}
