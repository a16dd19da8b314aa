package wire

import (
	"context"

	"google.golang.org/grpc"
)

// Manager RPC messages, per spec.md §6.

type OnlineRequest struct {
	Host string
	Port string
}

type OnlineResponse struct {
	Status
	ServerID int32
}

type OfflineRequest struct {
	ServerID int32
}

type OfflineResponse struct {
	Status
}

type ConnectRequest struct{}

type ConnectResponse struct {
	Status
	ClientID int32
	Host     string
	Port     string
}

type DisconnectRequest struct {
	ClientID int32
}

type DisconnectResponse struct {
	Status
}

type ChangeServerRequest struct {
	ClientID int32
	Host     string
	Port     string
}

type ChangeServerResponse struct {
	Status
}

type ChangeServerRandomRequest struct {
	ClientID int32
}

type ChangeServerRandomResponse struct {
	Status
	Host string
	Port string
}

type GetRequest struct {
	ServerID int32
	Key      string
}

type GetResponse struct {
	Status
	Value []byte
}

type PutRequest struct {
	ServerID int32
	Key      string
	Value    []byte
}

type PutResponse struct {
	Status
}

type DelRequest struct {
	ServerID int32
	Key      string
}

type DelResponse struct {
	Status
}

const managerServiceName = "kvstore.Manager"

// ManagerServer is implemented by internal/manager and served over
// gRPC via RegisterManagerServer. The method set mirrors what
// protoc-gen-go-grpc would generate from a manager.proto service
// definition listing these nine RPCs.
type ManagerServer interface {
	Online(context.Context, *OnlineRequest) (*OnlineResponse, error)
	Offline(context.Context, *OfflineRequest) (*OfflineResponse, error)
	Connect(context.Context, *ConnectRequest) (*ConnectResponse, error)
	Disconnect(context.Context, *DisconnectRequest) (*DisconnectResponse, error)
	ChangeServer(context.Context, *ChangeServerRequest) (*ChangeServerResponse, error)
	ChangeServerRandom(context.Context, *ChangeServerRandomRequest) (*ChangeServerRandomResponse, error)
	Get(context.Context, *GetRequest) (*GetResponse, error)
	Put(context.Context, *PutRequest) (*PutResponse, error)
	Del(context.Context, *DelRequest) (*DelResponse, error)
}

// RegisterManagerServer registers srv with s under the Manager
// service descriptor.
func RegisterManagerServer(s *grpc.Server, srv ManagerServer) {
	s.RegisterService(&managerServiceDesc, srv)
}

func managerOnlineHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(OnlineRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagerServer).Online(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + managerServiceName + "/Online"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagerServer).Online(ctx, req.(*OnlineRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func managerOfflineHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(OfflineRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagerServer).Offline(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + managerServiceName + "/Offline"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagerServer).Offline(ctx, req.(*OfflineRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func managerConnectHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ConnectRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagerServer).Connect(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + managerServiceName + "/Connect"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagerServer).Connect(ctx, req.(*ConnectRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func managerDisconnectHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DisconnectRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagerServer).Disconnect(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + managerServiceName + "/Disconnect"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagerServer).Disconnect(ctx, req.(*DisconnectRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func managerChangeServerHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ChangeServerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagerServer).ChangeServer(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + managerServiceName + "/ChangeServer"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagerServer).ChangeServer(ctx, req.(*ChangeServerRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func managerChangeServerRandomHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ChangeServerRandomRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagerServer).ChangeServerRandom(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + managerServiceName + "/ChangeServerRandom"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagerServer).ChangeServerRandom(ctx, req.(*ChangeServerRandomRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func managerGetHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagerServer).Get(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + managerServiceName + "/Get"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagerServer).Get(ctx, req.(*GetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func managerPutHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PutRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagerServer).Put(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + managerServiceName + "/Put"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagerServer).Put(ctx, req.(*PutRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func managerDelHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DelRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagerServer).Del(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + managerServiceName + "/Del"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagerServer).Del(ctx, req.(*DelRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var managerServiceDesc = grpc.ServiceDesc{
	ServiceName: managerServiceName,
	HandlerType: (*ManagerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Online", Handler: managerOnlineHandler},
		{MethodName: "Offline", Handler: managerOfflineHandler},
		{MethodName: "Connect", Handler: managerConnectHandler},
		{MethodName: "Disconnect", Handler: managerDisconnectHandler},
		{MethodName: "ChangeServer", Handler: managerChangeServerHandler},
		{MethodName: "ChangeServerRandom", Handler: managerChangeServerRandomHandler},
		{MethodName: "Get", Handler: managerGetHandler},
		{MethodName: "Put", Handler: managerPutHandler},
		{MethodName: "Del", Handler: managerDelHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "manager.proto",
}

// ManagerClient is the client-side stub for ManagerServer.
type ManagerClient interface {
	Online(ctx context.Context, in *OnlineRequest, opts ...grpc.CallOption) (*OnlineResponse, error)
	Offline(ctx context.Context, in *OfflineRequest, opts ...grpc.CallOption) (*OfflineResponse, error)
	Connect(ctx context.Context, in *ConnectRequest, opts ...grpc.CallOption) (*ConnectResponse, error)
	Disconnect(ctx context.Context, in *DisconnectRequest, opts ...grpc.CallOption) (*DisconnectResponse, error)
	ChangeServer(ctx context.Context, in *ChangeServerRequest, opts ...grpc.CallOption) (*ChangeServerResponse, error)
	ChangeServerRandom(ctx context.Context, in *ChangeServerRandomRequest, opts ...grpc.CallOption) (*ChangeServerRandomResponse, error)
	Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*GetResponse, error)
	Put(ctx context.Context, in *PutRequest, opts ...grpc.CallOption) (*PutResponse, error)
	Del(ctx context.Context, in *DelRequest, opts ...grpc.CallOption) (*DelResponse, error)
}

type managerClient struct {
	cc *grpc.ClientConn
}

// NewManagerClient wraps cc with the Manager service's client stub.
func NewManagerClient(cc *grpc.ClientConn) ManagerClient {
	return &managerClient{cc: cc}
}

func (c *managerClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+managerServiceName+"/"+method, in, out, opts...)
}

func (c *managerClient) Online(ctx context.Context, in *OnlineRequest, opts ...grpc.CallOption) (*OnlineResponse, error) {
	out := new(OnlineResponse)
	if err := c.invoke(ctx, "Online", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managerClient) Offline(ctx context.Context, in *OfflineRequest, opts ...grpc.CallOption) (*OfflineResponse, error) {
	out := new(OfflineResponse)
	if err := c.invoke(ctx, "Offline", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managerClient) Connect(ctx context.Context, in *ConnectRequest, opts ...grpc.CallOption) (*ConnectResponse, error) {
	out := new(ConnectResponse)
	if err := c.invoke(ctx, "Connect", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managerClient) Disconnect(ctx context.Context, in *DisconnectRequest, opts ...grpc.CallOption) (*DisconnectResponse, error) {
	out := new(DisconnectResponse)
	if err := c.invoke(ctx, "Disconnect", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managerClient) ChangeServer(ctx context.Context, in *ChangeServerRequest, opts ...grpc.CallOption) (*ChangeServerResponse, error) {
	out := new(ChangeServerResponse)
	if err := c.invoke(ctx, "ChangeServer", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managerClient) ChangeServerRandom(ctx context.Context, in *ChangeServerRandomRequest, opts ...grpc.CallOption) (*ChangeServerRandomResponse, error) {
	out := new(ChangeServerRandomResponse)
	if err := c.invoke(ctx, "ChangeServerRandom", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managerClient) Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*GetResponse, error) {
	out := new(GetResponse)
	if err := c.invoke(ctx, "Get", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managerClient) Put(ctx context.Context, in *PutRequest, opts ...grpc.CallOption) (*PutResponse, error) {
	out := new(PutResponse)
	if err := c.invoke(ctx, "Put", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managerClient) Del(ctx context.Context, in *DelRequest, opts ...grpc.CallOption) (*DelResponse, error) {
	out := new(DelResponse)
	if err := c.invoke(ctx, "Del", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
