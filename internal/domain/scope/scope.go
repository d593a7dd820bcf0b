package scope

// Caller is the verified identity handed to the core by the auth layer.
// TenantID is nil for holding-level users that are not attached to a single
// tenant.
type Caller struct {
	UserID   string
	TenantID *string
	Holding  bool
}

// Scope is the effective tenant filter for one request. A nil tenant means
// the caller sees every tenant (holding-wide access).
type Scope struct {
	tenantID *string
}

// Unscoped reports whether the scope spans all tenants.
func (s Scope) Unscoped() bool {
	return s.tenantID == nil
}

// TenantID returns the single tenant the scope is narrowed to, or nil when
// unscoped. Repositories use it directly as an optional filter.
func (s Scope) TenantID() *string {
	return s.tenantID
}

// Allows reports whether a resource owned by tenantID is visible in this
// scope.
func (s Scope) Allows(tenantID string) bool {
	if s.tenantID == nil {
		return true
	}
	return *s.tenantID == tenantID
}

// Resolve maps a caller plus an optional requested tenant to the effective
// tenant filter. Every query and mutation in the engine goes through this
// single chokepoint:
//
//   - holding callers get the requested tenant, or an unscoped view when no
//     tenant is requested;
//   - regular callers always get their own tenant; a requested tenant is
//     overridden, never honored;
//   - a caller with neither holding privilege nor a tenant assignment is
//     rejected.
func Resolve(caller Caller, requestedTenant *string) (Scope, error) {
	if caller.Holding {
		if requestedTenant != nil && *requestedTenant != "" {
			t := *requestedTenant
			return Scope{tenantID: &t}, nil
		}
		return Scope{}, nil
	}

	if caller.TenantID == nil || *caller.TenantID == "" {
		return Scope{}, ErrAccessDenied
	}

	t := *caller.TenantID
	return Scope{tenantID: &t}, nil
}
