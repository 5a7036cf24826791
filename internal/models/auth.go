package models

// Identity is the verified caller extracted from a bearer token.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
