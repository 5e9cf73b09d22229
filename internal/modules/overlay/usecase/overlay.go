package usecase

import (
	"context"

	"github.com/addielponce/anki-progress-circle/internal/modules/overlay/domain"
	"github.com/addielponce/anki-progress-circle/internal/modules/overlay/dto"
	overlayin "github.com/addielponce/anki-progress-circle/internal/modules/overlay/port/in"
	"github.com/addielponce/anki-progress-circle/internal/modules/overlay/service"
)

type Interactor struct {
	svc *service.OverlayService
}

func NewInteractor(svc *service.OverlayService) overlayin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Render(_ context.Context, input dto.FrameInput) (string, error) {
	frame, style := toDomain(input)
	return i.svc.Render(frame, style)
}

// Page renders the frame inside the transparent overlay document.
func (i *Interactor) Page(ctx context.Context, input dto.FrameInput) (string, error) {
	svg, err := i.Render(ctx, input)
	if err != nil {
		return "", err
	}
	return domain.Document(svg), nil
}

func (i *Interactor) Toggle(ctx context.Context, input dto.FrameInput) (dto.FrameOutput, error) {
	frame, style := toDomain(input)
	visible, svg, err := i.svc.Toggle(ctx, frame, style)
	if err != nil {
		return dto.FrameOutput{}, err
	}
	return dto.FrameOutput{Visible: visible, Markup: svg, Redrawn: visible}, nil
}

func (i *Interactor) Redraw(ctx context.Context, input dto.FrameInput) (dto.FrameOutput, error) {
	frame, style := toDomain(input)
	redrawn, svg, err := i.svc.Redraw(ctx, frame, style)
	if err != nil {
		return dto.FrameOutput{}, err
	}
	return dto.FrameOutput{Visible: i.svc.Visible(), Markup: svg, Redrawn: redrawn}, nil
}

func (i *Interactor) Show(ctx context.Context, input dto.FrameInput) (dto.FrameOutput, error) {
	frame, style := toDomain(input)
	svg, err := i.svc.Show(ctx, frame, style)
	if err != nil {
		return dto.FrameOutput{}, err
	}
	return dto.FrameOutput{Visible: true, Markup: svg, Redrawn: true}, nil
}

func (i *Interactor) Hide(ctx context.Context) error {
	return i.svc.Hide(ctx)
}

func (i *Interactor) Visible(_ context.Context) bool {
	return i.svc.Visible()
}

func toDomain(input dto.FrameInput) (domain.Frame, domain.Style) {
	frame := domain.Frame{
		Done:    input.Done,
		Total:   input.Total,
		Percent: input.Percent,
	}
	style := domain.Style{
		MainColor:      input.Style.MainColor,
		MainOpacity:    input.Style.MainOpacity,
		BackColor:      input.Style.BackColor,
		BackOpacity:    input.Style.BackOpacity,
		MaskCircles:    input.Style.MaskCircles,
		HideMainAtZero: input.Style.HideMainAtZero,
		StrokeLinecap:  input.Style.StrokeLinecap,
	}
	return frame, style
}
