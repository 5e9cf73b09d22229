package addonrpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey       = "progress_circle"
	serviceName        = "progresscircle.addon.v1.Addon"
	jsonCodecName      = "json"
	methodGetMetadata  = "/" + serviceName + "/GetMetadata"
	methodMenu         = "/" + serviceName + "/Menu"
	methodDispatch     = "/" + serviceName + "/Dispatch"
	methodToggle       = "/" + serviceName + "/Toggle"
	methodSaveSettings = "/" + serviceName + "/SaveSettings"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "PROGRESS_CIRCLE_ADDON",
	MagicCookieValue: "progress-circle",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Hooks   []string `json:"hooks"`
}

type MenuAction struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type MenuResponse struct {
	Title   string       `json:"title"`
	Actions []MenuAction `json:"actions"`
}

// Queue is the host scheduler's due counts for the current deck. A nil
// queue means the add-on should ask its own scheduler.
type Queue struct {
	DeckID        string `json:"deck_id"`
	New           int    `json:"new"`
	Learning      int    `json:"learning"`
	Review        int    `json:"review"`
	HasCollection bool   `json:"has_collection"`
}

type EventRequest struct {
	Kind     string `json:"kind"`
	State    string `json:"state"`
	OldState string `json:"old_state"`
	Queue    *Queue `json:"queue,omitempty"`
}

type ToggleRequest struct {
	Queue *Queue `json:"queue,omitempty"`
}

type SettingsRequest struct {
	Package        string `json:"package"`
	MainColor      string `json:"main_color"`
	MainOpacity    int    `json:"main_color_opacity"`
	BackColor      string `json:"back_color"`
	BackOpacity    int    `json:"back_color_opacity"`
	MaskCircles    bool   `json:"mask_circles"`
	HideMainAtZero bool   `json:"hide_main_circle_at_zero"`
	StrokeLinecap  string `json:"stroke_linecap"`
	Queue          *Queue `json:"queue,omitempty"`
}

type FrameResponse struct {
	Visible   bool          `json:"visible"`
	Refreshed bool          `json:"refreshed"`
	Markup    string        `json:"markup"`
	Done      int           `json:"done"`
	Total     int           `json:"total"`
	Percent   float64       `json:"percent"`
	Menu      *MenuResponse `json:"menu,omitempty"`
}

type AddonServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Menu(ctx context.Context, in *Empty) (*MenuResponse, error)
	Dispatch(ctx context.Context, in *EventRequest) (*FrameResponse, error)
	Toggle(ctx context.Context, in *ToggleRequest) (*FrameResponse, error)
	SaveSettings(ctx context.Context, in *SettingsRequest) (*FrameResponse, error)
}

type AddonClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Menu(ctx context.Context) (*MenuResponse, error)
	Dispatch(ctx context.Context, in *EventRequest) (*FrameResponse, error)
	Toggle(ctx context.Context, in *ToggleRequest) (*FrameResponse, error)
	SaveSettings(ctx context.Context, in *SettingsRequest) (*FrameResponse, error)
}

type addonClient struct {
	conn *grpc.ClientConn
}

func NewAddonClient(conn *grpc.ClientConn) AddonClient {
	return &addonClient{conn: conn}
}

func (c *addonClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *addonClient) Menu(ctx context.Context) (*MenuResponse, error) {
	out := &MenuResponse{}
	if err := c.conn.Invoke(ctx, methodMenu, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *addonClient) Dispatch(ctx context.Context, in *EventRequest) (*FrameResponse, error) {
	out := &FrameResponse{}
	if err := c.conn.Invoke(ctx, methodDispatch, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *addonClient) Toggle(ctx context.Context, in *ToggleRequest) (*FrameResponse, error) {
	out := &FrameResponse{}
	if err := c.conn.Invoke(ctx, methodToggle, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *addonClient) SaveSettings(ctx context.Context, in *SettingsRequest) (*FrameResponse, error) {
	out := &FrameResponse{}
	if err := c.conn.Invoke(ctx, methodSaveSettings, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

// unary adapts a typed server method to a grpc method handler.
func unary[Req any, Resp any](name, fullMethod string, call func(context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				typed, ok := req.(*Req)
				if !ok {
					return nil, fmt.Errorf("invalid request type %T", req)
				}
				return call(ctx, typed)
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func RegisterAddonServer(server grpc.ServiceRegistrar, impl AddonServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*AddonServer)(nil),
		Methods: []grpc.MethodDesc{
			unary("GetMetadata", methodGetMetadata, impl.GetMetadata),
			unary("Menu", methodMenu, impl.Menu),
			unary("Dispatch", methodDispatch, impl.Dispatch),
			unary("Toggle", methodToggle, impl.Toggle),
			unary("SaveSettings", methodSaveSettings, impl.SaveSettings),
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "addon-rpc-v1",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl AddonServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterAddonServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewAddonClient(conn), nil
}

func PluginMap(impl AddonServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
