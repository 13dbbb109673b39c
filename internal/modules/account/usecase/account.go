package usecase

import (
	"context"

	"taskdeck/internal/modules/account/domain"
	"taskdeck/internal/modules/account/dto"
	accountin "taskdeck/internal/modules/account/port/in"
	accountout "taskdeck/internal/modules/account/port/out"
	"taskdeck/internal/modules/account/service"
	apperrors "taskdeck/internal/platform/errors"
	"taskdeck/internal/platform/id"
)

type Interactor struct {
	svc   *service.AccountService
	store accountout.AccountStore
	idGen id.Generator
}

func NewInteractor(svc *service.AccountService, store accountout.AccountStore, idGen id.Generator) accountin.Usecase {
	return &Interactor{svc: svc, store: store, idGen: idGen}
}

// Register creates the account and logs it in.
func (i *Interactor) Register(ctx context.Context, input dto.RegisterInput) error {
	users, err := i.store.LoadUsers(ctx)
	if err != nil {
		return err
	}
	users, err = i.svc.Register(users, input.Username, input.Password, input.Confirm)
	if err != nil {
		return err
	}
	if err := i.store.SaveUsers(ctx, users); err != nil {
		return err
	}
	return i.store.SetCurrentUser(ctx, users[len(users)-1].Username)
}

func (i *Interactor) Login(ctx context.Context, input dto.LoginInput) error {
	users, err := i.store.LoadUsers(ctx)
	if err != nil {
		return err
	}
	if err := i.svc.Authenticate(users, input.Username, input.Password); err != nil {
		return err
	}
	return i.store.SetCurrentUser(ctx, input.Username)
}

func (i *Interactor) Logout(ctx context.Context) error {
	return i.store.ClearCurrentUser(ctx)
}

func (i *Interactor) Current(ctx context.Context) (string, error) {
	return i.store.CurrentUser(ctx)
}

// DeleteAccount removes the user entry and every file stored for it.
func (i *Interactor) DeleteAccount(ctx context.Context, username string) error {
	users, err := i.store.LoadUsers(ctx)
	if err != nil {
		return err
	}
	users, removed := i.svc.Remove(users, username)
	if !removed {
		return apperrors.ErrNotFound
	}
	if err := i.store.SaveUsers(ctx, users); err != nil {
		return err
	}
	if current, err := i.store.CurrentUser(ctx); err == nil && current == username {
		if err := i.store.ClearCurrentUser(ctx); err != nil {
			return err
		}
	}
	return i.store.RemoveUserData(ctx, username)
}

func (i *Interactor) Settings(ctx context.Context, username string) (dto.SettingsOutput, error) {
	settings, err := i.store.LoadSettings(ctx, username)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return dto.SettingsOutput(settings), nil
}

func (i *Interactor) UpdateSettings(ctx context.Context, input dto.SettingsInput) (dto.SettingsOutput, error) {
	settings, err := i.store.LoadSettings(ctx, input.Username)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	if input.Theme != "" {
		settings.Theme = input.Theme
	}
	if input.HomepageBg != "" {
		if err := domain.ValidatePhotoDataURL(input.HomepageBg); err != nil {
			return dto.SettingsOutput{}, err
		}
		settings.HomepageBg = input.HomepageBg
	}
	if input.TodoBg != "" {
		if err := domain.ValidatePhotoDataURL(input.TodoBg); err != nil {
			return dto.SettingsOutput{}, err
		}
		settings.TodoBg = input.TodoBg
	}
	if err := i.store.SaveSettings(ctx, input.Username, settings); err != nil {
		return dto.SettingsOutput{}, err
	}
	return dto.SettingsOutput(settings), nil
}

func (i *Interactor) Profile(ctx context.Context, username string) (dto.ProfileOutput, error) {
	profile, err := i.store.LoadProfile(ctx, username)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toProfileOutput(profile), nil
}

func (i *Interactor) UpdateProfile(ctx context.Context, input dto.ProfileInput) (dto.ProfileOutput, error) {
	profile, err := i.store.LoadProfile(ctx, input.Username)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	profile.Nickname = input.Nickname
	profile.Signature = input.Signature
	profile.Age = input.Age
	profile.Gender = input.Gender
	profile.Birthday = input.Birthday
	profile.Zodiac = input.Zodiac
	profile.Location = input.Location
	profile.School = input.School
	profile.Phone = input.Phone
	profile.Email = input.Email
	if err := i.store.SaveProfile(ctx, input.Username, profile); err != nil {
		return dto.ProfileOutput{}, err
	}
	return toProfileOutput(profile), nil
}

func (i *Interactor) AddPhoto(ctx context.Context, input dto.PhotoInput) (dto.PhotoOutput, error) {
	if err := domain.ValidatePhotoDataURL(input.DataURL); err != nil {
		return dto.PhotoOutput{}, err
	}
	profile, err := i.store.LoadProfile(ctx, input.Username)
	if err != nil {
		return dto.PhotoOutput{}, err
	}
	photo := domain.Photo{ID: i.idGen.New(), URL: input.DataURL, Desc: input.Desc}
	profile.Photos = append(profile.Photos, photo)
	if err := i.store.SaveProfile(ctx, input.Username, profile); err != nil {
		return dto.PhotoOutput{}, err
	}
	return dto.PhotoOutput{ID: photo.ID, Desc: photo.Desc}, nil
}

func (i *Interactor) RemovePhoto(ctx context.Context, username, photoID string) error {
	profile, err := i.store.LoadProfile(ctx, username)
	if err != nil {
		return err
	}
	kept := profile.Photos[:0:0]
	found := false
	for _, p := range profile.Photos {
		if p.ID == photoID {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return apperrors.ErrNotFound
	}
	profile.Photos = kept
	return i.store.SaveProfile(ctx, username, profile)
}

func toProfileOutput(p domain.Profile) dto.ProfileOutput {
	out := dto.ProfileOutput{
		Nickname:  p.Nickname,
		Signature: p.Signature,
		Age:       p.Age,
		Gender:    p.Gender,
		Birthday:  p.Birthday,
		Zodiac:    p.Zodiac,
		Location:  p.Location,
		School:    p.School,
		Phone:     p.Phone,
		Email:     p.Email,
	}
	for _, photo := range p.Photos {
		out.Photos = append(out.Photos, dto.PhotoOutput{ID: photo.ID, Desc: photo.Desc, ShowDesc: photo.ShowDesc})
	}
	return out
}
