package models

import "time"

type UserType string

const (
	UserTypeProvider UserType = "PROVIDER"
	UserTypeReceiver UserType = "RECEIVER"
)

type AdminRole string

const (
	RoleAdmin     AdminRole = "ADMIN"
	RoleModerator AdminRole = "MODERATOR"
)

type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	PhoneNumber  string     `json:"phoneNumber"`
	Email        string     `json:"email"`
	UserType     UserType   `json:"userType"`
	ProfileImage *string    `json:"profileImage,omitempty"`
	IsActive     bool       `json:"isActive"`
	IsAdmin      bool       `json:"isAdmin"`
	Role         AdminRole  `json:"role,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}

// UserFilter narrows GET /admin/users. Zero values are omitted from the query.
type UserFilter struct {
	IsAdmin  *bool
	IsActive *bool
	UserType UserType
}
