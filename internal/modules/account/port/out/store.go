package out

import (
	"context"

	"taskdeck/internal/modules/account/domain"
)

// AccountStore persists users, per-user settings and profiles, and
// the auto-resume marker.
type AccountStore interface {
	LoadUsers(ctx context.Context) ([]domain.User, error)
	SaveUsers(ctx context.Context, users []domain.User) error

	LoadSettings(ctx context.Context, username string) (domain.Settings, error)
	SaveSettings(ctx context.Context, username string, settings domain.Settings) error

	LoadProfile(ctx context.Context, username string) (domain.Profile, error)
	SaveProfile(ctx context.Context, username string, profile domain.Profile) error

	// CurrentUser returns ErrNotLoggedIn when no session is resumable.
	CurrentUser(ctx context.Context) (string, error)
	SetCurrentUser(ctx context.Context, username string) error
	ClearCurrentUser(ctx context.Context) error

	// RemoveUserData wipes everything stored for one account.
	RemoveUserData(ctx context.Context, username string) error
}
