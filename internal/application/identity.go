package application

import "github.com/NTElissa/Tech-Enthusiast/internal/domain/entity"

// Identity is the authenticated caller as resolved from an access token.
type Identity struct {
	UserID   string
	Email    string
	Username string
	Role     entity.Role
}
