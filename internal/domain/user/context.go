package user

// CallerContext identifies the authenticated caller of a core operation.
// It is resolved once at the HTTP boundary from the access token and passed
// explicitly into services instead of being read from ambient state.
type CallerContext struct {
	ID   string
	Role Role
}

// IsApprover reports whether the caller may decide on other users' requests.
func (c CallerContext) IsApprover() bool {
	return c.Role == RoleAdmin || c.Role == RoleSysadmin
}

// IsSysadmin reports whether the caller has full administrative access.
func (c CallerContext) IsSysadmin() bool {
	return c.Role == RoleSysadmin
}
