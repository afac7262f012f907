package services

// Actor is the authenticated caller identity as resolved by the auth
// middleware. Services only authorize with it; authentication happened
// upstream.
type Actor struct {
	ID          uint
	Username    string
	Role        string // admin, user
	DisplayName string
	Email       string
}

func (a Actor) IsAdmin() bool {
	return a.Role == "admin"
}

// StampName is the identity recorded on evaluations: display name first,
// email as fallback, username as a last resort.
func (a Actor) StampName() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	if a.Email != "" {
		return a.Email
	}
	return a.Username
}
