package domain

// CanAccess is the single ownership decision for the whole API: admins may
// touch any resource, everyone else only resources they own. Callers must
// pass the resource's owner id, never the resource's own id.
func CanAccess(actor *User, ownerID int64) bool {
	if actor == nil {
		return false
	}
	if actor.Role == RoleAdmin {
		return true
	}
	return actor.ID == ownerID
}

// RequireAccess converts a denied CanAccess into ErrForbidden.
func RequireAccess(actor *User, ownerID int64) error {
	if !CanAccess(actor, ownerID) {
		return ErrForbidden
	}
	return nil
}
