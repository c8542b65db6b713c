package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("username or email already registered")
	ErrApproverAccessRequired  = errors.New("approver access required")
	ErrSysadminAccessRequired  = errors.New("sysadmin access required")
	ErrCannotCreateSysadmin    = errors.New("admins cannot create sysadmin users")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
