package in

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/hook/dto"
	hookin "github.com/addielponce/anki-progress-circle/internal/modules/hook/port/in"
	"github.com/addielponce/anki-progress-circle/internal/platform/addonrpc"
)

// GRPCServer exposes the hook usecase to the host over the add-on contract.
type GRPCServer struct {
	usecase hookin.Usecase
}

func NewGRPCServer(usecase hookin.Usecase) addonrpc.AddonServer {
	return &GRPCServer{usecase: usecase}
}

func (s *GRPCServer) GetMetadata(ctx context.Context, _ *addonrpc.Empty) (*addonrpc.Metadata, error) {
	meta := s.usecase.Metadata(ctx)
	return &addonrpc.Metadata{Name: meta.Name, Version: meta.Version, Hooks: meta.Hooks}, nil
}

func (s *GRPCServer) Menu(ctx context.Context, _ *addonrpc.Empty) (*addonrpc.MenuResponse, error) {
	return toMenu(s.usecase.Menu(ctx)), nil
}

func (s *GRPCServer) Dispatch(ctx context.Context, in *addonrpc.EventRequest) (*addonrpc.FrameResponse, error) {
	frame, err := s.usecase.Dispatch(ctx, dto.EventInput{
		Kind:     in.Kind,
		State:    in.State,
		OldState: in.OldState,
		Queue:    fromQueue(in.Queue),
	})
	if err != nil {
		return nil, err
	}
	return toFrame(frame), nil
}

func (s *GRPCServer) Toggle(ctx context.Context, in *addonrpc.ToggleRequest) (*addonrpc.FrameResponse, error) {
	frame, err := s.usecase.Toggle(ctx, fromQueue(in.Queue))
	if err != nil {
		return nil, err
	}
	return toFrame(frame), nil
}

func (s *GRPCServer) SaveSettings(ctx context.Context, in *addonrpc.SettingsRequest) (*addonrpc.FrameResponse, error) {
	frame, err := s.usecase.SaveSettings(ctx, dto.SettingsInput{
		MainColor:      in.MainColor,
		MainOpacity:    in.MainOpacity,
		BackColor:      in.BackColor,
		BackOpacity:    in.BackOpacity,
		MaskCircles:    in.MaskCircles,
		HideMainAtZero: in.HideMainAtZero,
		StrokeLinecap:  in.StrokeLinecap,
		Queue:          fromQueue(in.Queue),
	})
	if err != nil {
		return nil, err
	}
	return toFrame(frame), nil
}

func fromQueue(queue *addonrpc.Queue) *dto.QueueInput {
	if queue == nil {
		return nil
	}
	return &dto.QueueInput{
		DeckID:        queue.DeckID,
		New:           queue.New,
		Learning:      queue.Learning,
		Review:        queue.Review,
		HasCollection: queue.HasCollection,
	}
}

func toMenu(menu dto.MenuOutput) *addonrpc.MenuResponse {
	out := &addonrpc.MenuResponse{Title: menu.Title, Actions: make([]addonrpc.MenuAction, 0, len(menu.Actions))}
	for _, action := range menu.Actions {
		out.Actions = append(out.Actions, addonrpc.MenuAction{ID: action.ID, Label: action.Label})
	}
	return out
}

func toFrame(frame dto.FrameOutput) *addonrpc.FrameResponse {
	out := &addonrpc.FrameResponse{
		Visible:   frame.Visible,
		Refreshed: frame.Refreshed,
		Markup:    frame.Markup,
		Done:      frame.Done,
		Total:     frame.Total,
		Percent:   frame.Percent,
	}
	if frame.Menu != nil {
		out.Menu = toMenu(*frame.Menu)
	}
	return out
}
