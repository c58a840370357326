package domain

// Role is the role tag resolved by the user service
type Role string

const (
	RoleClient  Role = "client"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// User is a resolved user reference. Authentication happens outside this
// service; here the user is only an identity plus a capability set.
type User struct {
	ID   int64
	Role Role
}

// IsAdmin returns true for platform administrators
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManageSite reports whether the user may configure the site
// (opening hours, blocked periods) and view its reservations
func (u User) CanManageSite(site *Site) bool {
	if u.IsAdmin() {
		return true
	}
	return u.Role == RoleManager && site.ManagerID == u.ID
}

// CanViewReservation reports whether the user may read the reservation:
// the owner, the manager of the court's site, or an admin
func (u User) CanViewReservation(r *Reservation, site *Site) bool {
	if r.UserID == u.ID {
		return true
	}
	return u.CanManageSite(site)
}
