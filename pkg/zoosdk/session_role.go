package zoosdk

// Role predicates are pure string-equality checks against the principal's
// role and all return false while the session is anonymous.

// IsAdmin reports whether the current principal has the ADMIN role.
func (s *Session) IsAdmin() bool { return s.hasRole(RoleAdmin) }

// IsManager reports whether the current principal has the MANAGER role.
func (s *Session) IsManager() bool { return s.hasRole(RoleManager) }

// IsOperator reports whether the current principal has the OPERATOR role.
func (s *Session) IsOperator() bool { return s.hasRole(RoleOperator) }

func (s *Session) hasRole(role Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal != nil && s.principal.Role == role
}

// Derived permission predicates. These encode the dashboard's
// authorization table; the backend enforces the same rules server-side
// and remains the source of truth.

// CanEdit reports whether the principal may edit animals and enclosures
// (admins and managers).
func (s *Session) CanEdit() bool { return s.IsAdmin() || s.IsManager() }

// CanDelete reports whether the principal may delete animals, enclosures
// and users (admins only).
func (s *Session) CanDelete() bool { return s.IsAdmin() }

// CanAdd reports whether the principal may create animals, enclosures and
// users (admins only).
func (s *Session) CanAdd() bool { return s.IsAdmin() }

// CanManageUsers reports whether the principal may view the user list
// (admins and managers).
func (s *Session) CanManageUsers() bool { return s.IsAdmin() || s.IsManager() }

// CanCreateTickets reports whether the principal may create and edit
// maintenance tickets (admins and managers).
func (s *Session) CanCreateTickets() bool { return s.IsAdmin() || s.IsManager() }

// CanAcceptTickets reports whether the principal may accept and complete
// tickets (operators only, and only on their own tickets for completion).
func (s *Session) CanAcceptTickets() bool { return s.IsOperator() }
