package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound = errors.New("user not found")
)

// Role codes assigned to users.
const (
	RolePlatformAdmin = "platform_admin"
	RoleOrganizer     = "organizer"
	RoleAttendee      = "attendee"
)

// User represents a registered user. OrganizationID is empty for
// unaffiliated users.
// swagger:model User
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	OrganizationID string    `json:"organization_id"`
	Role           string    `json:"role"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Viewer is the already-authenticated identity a request acts as.
// The engine never authenticates; the delivery layer resolves a Viewer from
// the session token and passes it down.
type Viewer struct {
	UserID          string
	OrganizationID  string
	IsPlatformAdmin bool
	IsOrganizer     bool
}

// ViewerFromUser builds a Viewer from a stored user record.
func ViewerFromUser(u *User) Viewer {
	return Viewer{
		UserID:          u.ID,
		OrganizationID:  u.OrganizationID,
		IsPlatformAdmin: u.Role == RolePlatformAdmin,
		IsOrganizer:     u.Role == RoleOrganizer,
	}
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, organizationID string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the viewer identity it encodes.
type TokenVerifier interface {
	Verify(token string) (Viewer, error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListByIDs(ctx context.Context, ids []string) ([]*User, error)
}
