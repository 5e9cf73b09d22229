package usecase

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/hook/domain"
	"github.com/addielponce/anki-progress-circle/internal/modules/hook/dto"
	hookin "github.com/addielponce/anki-progress-circle/internal/modules/hook/port/in"
	"github.com/addielponce/anki-progress-circle/internal/modules/hook/service"
	overlaydto "github.com/addielponce/anki-progress-circle/internal/modules/overlay/dto"
	overlayin "github.com/addielponce/anki-progress-circle/internal/modules/overlay/port/in"
	progressdto "github.com/addielponce/anki-progress-circle/internal/modules/progress/dto"
	progressin "github.com/addielponce/anki-progress-circle/internal/modules/progress/port/in"
	settingsdto "github.com/addielponce/anki-progress-circle/internal/modules/settings/dto"
	settingsin "github.com/addielponce/anki-progress-circle/internal/modules/settings/port/in"
)

const (
	AddonName    = "progress-circle"
	AddonVersion = "1.2.0"
)

type Interactor struct {
	svc      *service.HookService
	progress progressin.Usecase
	overlay  overlayin.Usecase
	settings settingsin.Usecase
	pkg      string
}

// NewInteractor wires the add-on's event handling. pkg is the host package id
// the settings are stored under.
func NewInteractor(svc *service.HookService, progress progressin.Usecase, overlay overlayin.Usecase, settings settingsin.Usecase, pkg string) hookin.Usecase {
	return &Interactor{svc: svc, progress: progress, overlay: overlay, settings: settings, pkg: pkg}
}

func (i *Interactor) Metadata(_ context.Context) dto.MetadataOutput {
	hooks := make([]string, 0, len(domain.Kinds))
	for _, kind := range domain.Kinds {
		hooks = append(hooks, string(kind))
	}
	return dto.MetadataOutput{Name: AddonName, Version: AddonVersion, Hooks: hooks}
}

func (i *Interactor) Menu(_ context.Context) dto.MenuOutput {
	menu := domain.MainMenu()
	out := dto.MenuOutput{Title: menu.Title, Actions: make([]dto.ActionOutput, 0, len(menu.Actions))}
	for _, action := range menu.Actions {
		out.Actions = append(out.Actions, dto.ActionOutput{ID: action.ID, Label: action.Label})
	}
	return out
}

func (i *Interactor) Dispatch(ctx context.Context, input dto.EventInput) (dto.FrameOutput, error) {
	event, err := i.svc.Event(input.Kind, input.State, input.OldState)
	if err != nil {
		return dto.FrameOutput{}, err
	}
	if event.Kind == domain.KindMainWindowDidInit {
		menu := i.Menu(ctx)
		return dto.FrameOutput{Visible: i.overlay.Visible(ctx), Menu: &menu}, nil
	}
	if !event.Refreshes() {
		return dto.FrameOutput{Visible: i.overlay.Visible(ctx)}, nil
	}
	return i.refresh(ctx, input.Queue)
}

// Toggle recomputes progress, repaints and flips the overlay.
func (i *Interactor) Toggle(ctx context.Context, queue *dto.QueueInput) (dto.FrameOutput, error) {
	progress, style, err := i.current(ctx, queue)
	if err != nil {
		return dto.FrameOutput{}, err
	}
	frame, err := i.overlay.Toggle(ctx, frameInput(progress, style))
	if err != nil {
		return dto.FrameOutput{}, err
	}
	return toOutput(frame, progress), nil
}

func (i *Interactor) SaveSettings(ctx context.Context, input dto.SettingsInput) (dto.FrameOutput, error) {
	if _, err := i.settings.Save(ctx, settingsdto.SaveInput{
		Package:        i.pkg,
		MainColor:      input.MainColor,
		MainOpacity:    input.MainOpacity,
		BackColor:      input.BackColor,
		BackOpacity:    input.BackOpacity,
		MaskCircles:    input.MaskCircles,
		HideMainAtZero: input.HideMainAtZero,
		StrokeLinecap:  input.StrokeLinecap,
	}); err != nil {
		return dto.FrameOutput{}, err
	}
	return i.refresh(ctx, input.Queue)
}

// refresh repaints a visible overlay. A hidden overlay is left alone and
// progress is not recomputed.
func (i *Interactor) refresh(ctx context.Context, queue *dto.QueueInput) (dto.FrameOutput, error) {
	if !i.overlay.Visible(ctx) {
		return dto.FrameOutput{}, nil
	}
	progress, style, err := i.current(ctx, queue)
	if err != nil {
		return dto.FrameOutput{}, err
	}
	frame, err := i.overlay.Redraw(ctx, frameInput(progress, style))
	if err != nil {
		return dto.FrameOutput{}, err
	}
	return toOutput(frame, progress), nil
}

func (i *Interactor) current(ctx context.Context, sent *dto.QueueInput) (progressdto.ProgressOutput, settingsdto.ConfigOutput, error) {
	queue, err := i.svc.Queue(ctx, toDomainQueue(sent))
	if err != nil {
		return progressdto.ProgressOutput{}, settingsdto.ConfigOutput{}, err
	}
	progress, err := i.progress.Observe(ctx, progressdto.ObserveInput{
		GroupID:       queue.DeckID,
		New:           queue.New,
		Learning:      queue.Learning,
		Review:        queue.Review,
		HasCollection: queue.HasCollection,
	})
	if err != nil {
		return progressdto.ProgressOutput{}, settingsdto.ConfigOutput{}, err
	}
	style, err := i.settings.Get(ctx, i.pkg)
	if err != nil {
		return progressdto.ProgressOutput{}, settingsdto.ConfigOutput{}, err
	}
	return progress, style, nil
}

func toDomainQueue(sent *dto.QueueInput) *domain.Queue {
	if sent == nil {
		return nil
	}
	return &domain.Queue{
		DeckID:        sent.DeckID,
		New:           sent.New,
		Learning:      sent.Learning,
		Review:        sent.Review,
		HasCollection: sent.HasCollection,
	}
}

func frameInput(progress progressdto.ProgressOutput, style settingsdto.ConfigOutput) overlaydto.FrameInput {
	return overlaydto.FrameInput{
		Done:    progress.Done,
		Total:   progress.Total,
		Percent: progress.Percent,
		Style: overlaydto.StyleInput{
			MainColor:      style.MainColor,
			MainOpacity:    style.MainOpacity,
			BackColor:      style.BackColor,
			BackOpacity:    style.BackOpacity,
			MaskCircles:    style.MaskCircles,
			HideMainAtZero: style.HideMainAtZero,
			StrokeLinecap:  style.StrokeLinecap,
		},
	}
}

func toOutput(frame overlaydto.FrameOutput, progress progressdto.ProgressOutput) dto.FrameOutput {
	return dto.FrameOutput{
		Visible:   frame.Visible,
		Refreshed: frame.Redrawn,
		Markup:    frame.Markup,
		Done:      progress.Done,
		Total:     progress.Total,
		Percent:   progress.Percent,
	}
}
