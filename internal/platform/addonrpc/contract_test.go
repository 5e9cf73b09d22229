package addonrpc_test

import (
	"context"
	"net"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/addielponce/anki-progress-circle/internal/platform/addonrpc"
)

type echoServer struct{}

func (echoServer) GetMetadata(context.Context, *addonrpc.Empty) (*addonrpc.Metadata, error) {
	return &addonrpc.Metadata{Name: "echo", Version: "0.0.1", Hooks: []string{"state_did_change"}}, nil
}

func (echoServer) Menu(context.Context, *addonrpc.Empty) (*addonrpc.MenuResponse, error) {
	return &addonrpc.MenuResponse{Title: "Echo", Actions: []addonrpc.MenuAction{{ID: "toggle", Label: "Toggle"}}}, nil
}

func (echoServer) Dispatch(_ context.Context, in *addonrpc.EventRequest) (*addonrpc.FrameResponse, error) {
	out := &addonrpc.FrameResponse{Refreshed: in.State == "review", Markup: in.Kind}
	if in.Queue != nil {
		out.Total = in.Queue.New + in.Queue.Learning + in.Queue.Review
	}
	return out, nil
}

func (echoServer) Toggle(_ context.Context, in *addonrpc.ToggleRequest) (*addonrpc.FrameResponse, error) {
	return &addonrpc.FrameResponse{Visible: true, Done: in.Queue.Review}, nil
}

func (echoServer) SaveSettings(_ context.Context, in *addonrpc.SettingsRequest) (*addonrpc.FrameResponse, error) {
	return &addonrpc.FrameResponse{Markup: in.MainColor + "/" + in.StrokeLinecap}, nil
}

func dial(t *testing.T) addonrpc.AddonClient {
	t.Helper()
	listener := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	addonrpc.RegisterAddonServer(server, echoServer{})
	go func() { _ = server.Serve(listener) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return listener.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return addonrpc.NewAddonClient(conn)
}

func TestJSONCodecRoundTripsOverGRPC(t *testing.T) {
	t.Parallel()
	client := dial(t)
	ctx := context.Background()

	meta, err := client.GetMetadata(ctx)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if diff := cmp.Diff(&addonrpc.Metadata{Name: "echo", Version: "0.0.1", Hooks: []string{"state_did_change"}}, meta); diff != "" {
		t.Fatalf("metadata mismatch (-want +got):\n%s", diff)
	}

	menu, err := client.Menu(ctx)
	if err != nil {
		t.Fatalf("menu: %v", err)
	}
	if menu.Title != "Echo" || len(menu.Actions) != 1 {
		t.Fatalf("unexpected menu: %+v", menu)
	}

	frame, err := client.Dispatch(ctx, &addonrpc.EventRequest{
		Kind:  "state_did_change",
		State: "review",
		Queue: &addonrpc.Queue{New: 1, Learning: 2, Review: 3, HasCollection: true},
	})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !frame.Refreshed || frame.Total != 6 || frame.Markup != "state_did_change" {
		t.Fatalf("unexpected frame: %+v", frame)
	}

	frame, err = client.Toggle(ctx, &addonrpc.ToggleRequest{Queue: &addonrpc.Queue{Review: 4}})
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !frame.Visible || frame.Done != 4 {
		t.Fatalf("unexpected toggle frame: %+v", frame)
	}

	frame, err = client.SaveSettings(ctx, &addonrpc.SettingsRequest{MainColor: "#ff0000", StrokeLinecap: "butt"})
	if err != nil {
		t.Fatalf("save settings: %v", err)
	}
	if frame.Markup != "#ff0000/butt" {
		t.Fatalf("unexpected settings frame: %+v", frame)
	}
}
