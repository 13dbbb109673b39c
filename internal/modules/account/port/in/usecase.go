package in

import (
	"context"

	"taskdeck/internal/modules/account/dto"
)

type Usecase interface {
	Register(ctx context.Context, input dto.RegisterInput) error
	Login(ctx context.Context, input dto.LoginInput) error
	Logout(ctx context.Context) error
	Current(ctx context.Context) (string, error)
	DeleteAccount(ctx context.Context, username string) error

	Settings(ctx context.Context, username string) (dto.SettingsOutput, error)
	UpdateSettings(ctx context.Context, input dto.SettingsInput) (dto.SettingsOutput, error)

	Profile(ctx context.Context, username string) (dto.ProfileOutput, error)
	UpdateProfile(ctx context.Context, input dto.ProfileInput) (dto.ProfileOutput, error)
	AddPhoto(ctx context.Context, input dto.PhotoInput) (dto.PhotoOutput, error)
	RemovePhoto(ctx context.Context, username, photoID string) error
}
