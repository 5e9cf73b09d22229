package bootstrap

import (
	"context"
	"errors"

	addoninadapter "github.com/addielponce/anki-progress-circle/internal/modules/addon/adapter/in"
	addondto "github.com/addielponce/anki-progress-circle/internal/modules/addon/dto"
	hookinadapter "github.com/addielponce/anki-progress-circle/internal/modules/hook/adapter/in"
	hookdto "github.com/addielponce/anki-progress-circle/internal/modules/hook/dto"
	apperrors "github.com/addielponce/anki-progress-circle/internal/platform/errors"
	uiapp "github.com/addielponce/anki-progress-circle/internal/ui/app"
)

// inProcessDriver hands events to the hook handler running in this process;
// the hook reads the queue from the collection itself.
type inProcessDriver struct {
	hook hookinadapter.CLIHandler
}

func (d inProcessDriver) Dispatch(ctx context.Context, kind, state, oldState string) (uiapp.Frame, error) {
	out, err := d.hook.Dispatch(ctx, kind, state, oldState)
	if err != nil {
		return uiapp.Frame{}, err
	}
	return fromHookFrame(out), nil
}

func (d inProcessDriver) Toggle(ctx context.Context) (uiapp.Frame, error) {
	out, err := d.hook.Toggle(ctx)
	if err != nil {
		return uiapp.Frame{}, err
	}
	return fromHookFrame(out), nil
}

// addonDriver sends events to an add-on process. The add-on has no
// collection of its own, so every event carries the current queue.
type addonDriver struct {
	addon addoninadapter.CLIHandler
	queue func(ctx context.Context) (*addondto.QueueInput, error)
	name  string
}

func (d addonDriver) Dispatch(ctx context.Context, kind, state, oldState string) (uiapp.Frame, error) {
	queue, err := d.queue(ctx)
	if err != nil {
		return uiapp.Frame{}, err
	}
	out, err := d.addon.Dispatch(ctx, addondto.DispatchInput{
		AddonName: d.name,
		Kind:      kind,
		State:     state,
		OldState:  oldState,
		Queue:     queue,
	})
	if err != nil {
		return uiapp.Frame{}, err
	}
	return fromAddonFrame(out), nil
}

func (d addonDriver) Toggle(ctx context.Context) (uiapp.Frame, error) {
	queue, err := d.queue(ctx)
	if err != nil {
		return uiapp.Frame{}, err
	}
	out, err := d.addon.Toggle(ctx, addondto.ToggleInput{AddonName: d.name, Queue: queue})
	if err != nil {
		return uiapp.Frame{}, err
	}
	return fromAddonFrame(out), nil
}

// AddonQueue reads the current deck as the queue payload for an add-on
// event. An empty collection yields a queue without a collection.
func (a *App) AddonQueue(ctx context.Context) (*addondto.QueueInput, error) {
	deck, err := a.CollectionCLI.Current(ctx)
	if errors.Is(err, apperrors.ErrNoCollection) {
		return &addondto.QueueInput{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &addondto.QueueInput{
		DeckID:        deck.ID,
		New:           deck.New,
		Learning:      deck.Learning,
		Review:        deck.Review,
		HasCollection: true,
	}, nil
}

func fromHookFrame(out hookdto.FrameOutput) uiapp.Frame {
	frame := uiapp.Frame{
		Visible:   out.Visible,
		Refreshed: out.Refreshed,
		Done:      out.Done,
		Total:     out.Total,
		Percent:   out.Percent,
	}
	if out.Menu != nil {
		menu := uiapp.Menu{Title: out.Menu.Title}
		for _, action := range out.Menu.Actions {
			menu.Actions = append(menu.Actions, uiapp.MenuAction{ID: action.ID, Label: action.Label})
		}
		frame.Menu = &menu
	}
	return frame
}

func fromAddonFrame(out addondto.FrameOutput) uiapp.Frame {
	frame := uiapp.Frame{
		Visible:   out.Visible,
		Refreshed: out.Refreshed,
		Done:      out.Done,
		Total:     out.Total,
		Percent:   out.Percent,
	}
	if out.Menu != nil {
		menu := uiapp.Menu{Title: out.Menu.Title}
		for _, action := range out.Menu.Actions {
			menu.Actions = append(menu.Actions, uiapp.MenuAction{ID: action.ID, Label: action.Label})
		}
		frame.Menu = &menu
	}
	return frame
}
