package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash, never plaintext.
type User struct {
	ID             string
	Email          string
	Username       string
	FirstName      string
	LastName       string
	PhoneNumber    string
	Password       string
	Age            int
	Bio            string
	ProfilePicture string
	Role           Role
	IsVerified     bool

	// VerificationToken is a single-use random value proving control of the
	// email address. Cleared on successful verification.
	VerificationToken string

	PasswordResetToken   string
	PasswordResetExpires time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the user holds at least the admin role.
func (u *User) IsAdmin() bool {
	return u.Role.AtLeast(RoleAdmin)
}

// Public returns the profile fields safe to expose over the API.
// The password hash and the outstanding tokens never leave the store boundary.
func (u *User) Public() map[string]any {
	return map[string]any{
		"id":             u.ID,
		"email":          u.Email,
		"username":       u.Username,
		"firstName":      u.FirstName,
		"lastName":       u.LastName,
		"phoneNumber":    u.PhoneNumber,
		"age":            u.Age,
		"bio":            u.Bio,
		"profilePicture": u.ProfilePicture,
		"role":           u.Role,
		"isVerified":     u.IsVerified,
		"createdAt":      u.CreatedAt,
		"updatedAt":      u.UpdatedAt,
	}
}
