package out

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/addielponce/anki-progress-circle/internal/modules/addon/domain"
	addonout "github.com/addielponce/anki-progress-circle/internal/modules/addon/port/out"
	"github.com/addielponce/anki-progress-circle/internal/platform/addonrpc"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

type session struct {
	client *plugin.Client
	rpc    addonrpc.AddonClient
}

// GRPCHost keeps one add-on process per manifest name until Close, so the
// add-on's progress tracker lives as long as the host.
type GRPCHost struct {
	log hclog.Logger

	mu       sync.Mutex
	sessions map[string]session
}

func NewGRPCHost(log hclog.Logger) addonout.Host {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &GRPCHost{log: log.Named("addon-host"), sessions: map[string]session{}}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	client, err := h.connect(manifest)
	if err != nil {
		return err
	}
	callCtx, cancel := h.callContext(ctx)
	defer cancel()
	if _, err := client.GetMetadata(callCtx); err != nil {
		h.drop(manifest.Name)
		return fmt.Errorf("get metadata: %w", err)
	}
	return nil
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, err := h.connect(manifest)
	if err != nil {
		return domain.Metadata{}, err
	}
	callCtx, cancel := h.callContext(ctx)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Hooks: meta.Hooks}, nil
}

func (h *GRPCHost) Menu(ctx context.Context, manifest domain.Manifest) (domain.Menu, error) {
	client, err := h.connect(manifest)
	if err != nil {
		return domain.Menu{}, err
	}
	callCtx, cancel := h.callContext(ctx)
	defer cancel()

	menu, err := client.Menu(callCtx)
	if err != nil {
		return domain.Menu{}, fmt.Errorf("menu: %w", err)
	}
	return fromMenu(menu), nil
}

func (h *GRPCHost) Dispatch(ctx context.Context, manifest domain.Manifest, event domain.Event) (domain.Frame, error) {
	client, err := h.connect(manifest)
	if err != nil {
		return domain.Frame{}, err
	}
	callCtx, cancel := h.callContext(ctx)
	defer cancel()

	response, err := client.Dispatch(callCtx, &addonrpc.EventRequest{
		Kind:     event.Kind,
		State:    event.State,
		OldState: event.OldState,
		Queue:    toQueue(event.Queue),
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return domain.Frame{}, fmt.Errorf("%w: event %s", domain.ErrAddonTimeout, event.Kind)
		}
		return domain.Frame{}, fmt.Errorf("dispatch %s: %w", event.Kind, err)
	}
	return fromFrame(response), nil
}

func (h *GRPCHost) Toggle(ctx context.Context, manifest domain.Manifest, queue *domain.Queue) (domain.Frame, error) {
	client, err := h.connect(manifest)
	if err != nil {
		return domain.Frame{}, err
	}
	callCtx, cancel := h.callContext(ctx)
	defer cancel()

	response, err := client.Toggle(callCtx, &addonrpc.ToggleRequest{Queue: toQueue(queue)})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return domain.Frame{}, fmt.Errorf("%w: toggle", domain.ErrAddonTimeout)
		}
		return domain.Frame{}, fmt.Errorf("toggle: %w", err)
	}
	return fromFrame(response), nil
}

func (h *GRPCHost) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for name, s := range h.sessions {
		s.client.Kill()
		delete(h.sessions, name)
	}
}

func (h *GRPCHost) connect(manifest domain.Manifest) (addonrpc.AddonClient, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.sessions[manifest.Name]; ok && !s.client.Exited() {
		return s.rpc, nil
	}

	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  addonrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          addonrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           h.log.Named(manifest.Name),
	})
	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("start add-on client: %w", err)
	}
	raw, err := rpcClient.Dispense(addonrpc.PluginMapKey)
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("dispense add-on: %w", err)
	}
	typed, ok := raw.(addonrpc.AddonClient)
	if !ok {
		client.Kill()
		return nil, fmt.Errorf("add-on rpc client type mismatch")
	}
	h.sessions[manifest.Name] = session{client: client, rpc: typed}
	h.log.Debug("add-on started", "name", manifest.Name, "binary", manifest.Binary)
	return typed, nil
}

func (h *GRPCHost) drop(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.sessions[name]; ok {
		s.client.Kill()
		delete(h.sessions, name)
	}
}

func (h *GRPCHost) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, defaultCallTimeout)
}

func toQueue(queue *domain.Queue) *addonrpc.Queue {
	if queue == nil {
		return nil
	}
	return &addonrpc.Queue{
		DeckID:        queue.DeckID,
		New:           queue.New,
		Learning:      queue.Learning,
		Review:        queue.Review,
		HasCollection: queue.HasCollection,
	}
}

func fromMenu(menu *addonrpc.MenuResponse) domain.Menu {
	out := domain.Menu{Title: menu.Title, Actions: make([]domain.MenuAction, 0, len(menu.Actions))}
	for _, action := range menu.Actions {
		out.Actions = append(out.Actions, domain.MenuAction{ID: action.ID, Label: action.Label})
	}
	return out
}

func fromFrame(response *addonrpc.FrameResponse) domain.Frame {
	frame := domain.Frame{
		Visible:   response.Visible,
		Refreshed: response.Refreshed,
		Markup:    response.Markup,
		Done:      response.Done,
		Total:     response.Total,
		Percent:   response.Percent,
	}
	if response.Menu != nil {
		menu := fromMenu(response.Menu)
		frame.Menu = &menu
	}
	return frame
}
