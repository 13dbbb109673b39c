package in

import (
	"context"

	accountdto "taskdeck/internal/modules/account/dto"
	accountin "taskdeck/internal/modules/account/port/in"
)

type CLIHandler struct {
	usecase accountin.Usecase
}

func NewCLIHandler(usecase accountin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Register(ctx context.Context, username, password, confirm string) error {
	return h.usecase.Register(ctx, accountdto.RegisterInput{Username: username, Password: password, Confirm: confirm})
}

func (h CLIHandler) Login(ctx context.Context, username, password string) error {
	return h.usecase.Login(ctx, accountdto.LoginInput{Username: username, Password: password})
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) Current(ctx context.Context) (string, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) DeleteAccount(ctx context.Context, username string) error {
	return h.usecase.DeleteAccount(ctx, username)
}

func (h CLIHandler) Settings(ctx context.Context, username string) (accountdto.SettingsOutput, error) {
	return h.usecase.Settings(ctx, username)
}

func (h CLIHandler) UpdateSettings(ctx context.Context, input accountdto.SettingsInput) (accountdto.SettingsOutput, error) {
	return h.usecase.UpdateSettings(ctx, input)
}

func (h CLIHandler) Profile(ctx context.Context, username string) (accountdto.ProfileOutput, error) {
	return h.usecase.Profile(ctx, username)
}

func (h CLIHandler) UpdateProfile(ctx context.Context, input accountdto.ProfileInput) (accountdto.ProfileOutput, error) {
	return h.usecase.UpdateProfile(ctx, input)
}

func (h CLIHandler) AddPhoto(ctx context.Context, username, dataURL, desc string) (accountdto.PhotoOutput, error) {
	return h.usecase.AddPhoto(ctx, accountdto.PhotoInput{Username: username, DataURL: dataURL, Desc: desc})
}

func (h CLIHandler) RemovePhoto(ctx context.Context, username, photoID string) error {
	return h.usecase.RemovePhoto(ctx, username, photoID)
}
