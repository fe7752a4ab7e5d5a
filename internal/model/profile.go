package model

type Role string

const (
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

// Profile carries the role the identity provider assigned to a user.
// UserID is the identity provider's subject, not the document id.
type Profile struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	FullName  string `json:"full_name"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"created_at"`
}
