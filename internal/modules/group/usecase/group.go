package usecase

import (
	"context"

	"taskdeck/internal/modules/group/domain"
	"taskdeck/internal/modules/group/dto"
	groupin "taskdeck/internal/modules/group/port/in"
	"taskdeck/internal/modules/group/service"
	workspaceout "taskdeck/internal/modules/workspace/port/out"
)

// Interactor wraps the group service with snapshot load/save so every
// operation persists exactly one consistent workspace.
type Interactor struct {
	svc   *service.GroupService
	store workspaceout.SnapshotStore
}

func NewInteractor(svc *service.GroupService, store workspaceout.SnapshotStore) groupin.Usecase {
	return &Interactor{svc: svc, store: store}
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.GroupOutput, error) {
	snapshot, err := i.store.Load(ctx, input.Username)
	if err != nil {
		return dto.GroupOutput{}, err
	}
	snapshot, group, err := i.svc.Create(ctx, snapshot, input.Name, input.Color, input.ParentID)
	if err != nil {
		return dto.GroupOutput{}, err
	}
	if err := i.store.Save(ctx, input.Username, snapshot); err != nil {
		return dto.GroupOutput{}, err
	}
	return toOutput(group, domain.NewTree(snapshot.Groups)), nil
}

func (i *Interactor) Rename(ctx context.Context, input dto.RenameInput) (dto.GroupOutput, error) {
	snapshot, err := i.store.Load(ctx, input.Username)
	if err != nil {
		return dto.GroupOutput{}, err
	}
	snapshot, group, err := i.svc.Rename(ctx, snapshot, input.GroupID, input.Name, input.Color)
	if err != nil {
		return dto.GroupOutput{}, err
	}
	if err := i.store.Save(ctx, input.Username, snapshot); err != nil {
		return dto.GroupOutput{}, err
	}
	return toOutput(group, domain.NewTree(snapshot.Groups)), nil
}

func (i *Interactor) Pin(ctx context.Context, input dto.PinInput) (dto.GroupOutput, error) {
	snapshot, err := i.store.Load(ctx, input.Username)
	if err != nil {
		return dto.GroupOutput{}, err
	}
	snapshot, group, err := i.svc.Pin(ctx, snapshot, input.GroupID, input.Pinned)
	if err != nil {
		return dto.GroupOutput{}, err
	}
	if err := i.store.Save(ctx, input.Username, snapshot); err != nil {
		return dto.GroupOutput{}, err
	}
	return toOutput(group, domain.NewTree(snapshot.Groups)), nil
}

func (i *Interactor) Drop(ctx context.Context, input dto.DropInput) error {
	snapshot, err := i.store.Load(ctx, input.Username)
	if err != nil {
		return err
	}
	pos := domain.DropAbove
	if input.Below {
		pos = domain.DropBelow
	}
	snapshot, err = i.svc.Drop(ctx, snapshot, input.DraggedID, input.TargetID, pos)
	if err != nil {
		return err
	}
	return i.store.Save(ctx, input.Username, snapshot)
}

func (i *Interactor) Promote(ctx context.Context, input dto.PromoteInput) error {
	snapshot, err := i.store.Load(ctx, input.Username)
	if err != nil {
		return err
	}
	snapshot, err = i.svc.Promote(ctx, snapshot, input.GroupID)
	if err != nil {
		return err
	}
	return i.store.Save(ctx, input.Username, snapshot)
}

func (i *Interactor) Delete(ctx context.Context, input dto.DeleteInput) (dto.DeleteOutput, error) {
	snapshot, err := i.store.Load(ctx, input.Username)
	if err != nil {
		return dto.DeleteOutput{}, err
	}
	snapshot, result, err := i.svc.Delete(ctx, snapshot, input.GroupID, domain.DeletePolicy(input.Policy))
	if err != nil {
		return dto.DeleteOutput{}, err
	}
	if err := i.store.Save(ctx, input.Username, snapshot); err != nil {
		return dto.DeleteOutput{}, err
	}
	return dto.DeleteOutput{
		RemovedGroupIDs: result.RemovedGroupIDs,
		MovedTasks:      result.MovedTasks,
		TrashedTasks:    result.TrashedTasks,
	}, nil
}

func (i *Interactor) List(ctx context.Context, username string) ([]dto.GroupOutput, error) {
	snapshot, err := i.store.Load(ctx, username)
	if err != nil {
		return nil, err
	}
	tree := domain.NewTree(snapshot.Groups)
	sorted := tree.Sorted()
	out := make([]dto.GroupOutput, 0, len(sorted))
	for _, g := range sorted {
		out = append(out, toOutput(g, tree))
	}
	return out, nil
}

func toOutput(g domain.Group, tree domain.Tree) dto.GroupOutput {
	return dto.GroupOutput{
		ID:       g.ID,
		Name:     g.Name,
		Color:    g.Color,
		ParentID: g.ParentID,
		Pinned:   g.Pinned,
		Order:    g.Order,
		Depth:    tree.Depth(g.ID),
	}
}
