package wire

import (
	"context"

	"google.golang.org/grpc"
)

// Storage RPC messages, per spec.md §6. GetData/PutData/DelData are
// client-facing; MaGet/MaPut/MaDel/Commit/Abort/Live are issued by the
// Manager during quorum reads, two-phase writes, and heartbeats.

type GetDataRequest struct {
	ClientID int32
	Key      string
}

type GetDataResponse struct {
	Status
	Value []byte
}

type PutDataRequest struct {
	ClientID int32
	Key      string
	Value    []byte
}

type PutDataResponse struct {
	Status
}

type DelDataRequest struct {
	ClientID int32
	Key      string
}

type DelDataResponse struct {
	Status
}

type MaGetRequest struct {
	Key string
}

type MaGetResponse struct {
	Status
	Value []byte
}

type MaPutRequest struct {
	Key   string
	Value []byte
}

type MaPutResponse struct {
	Status
}

type MaDelRequest struct {
	Key string
}

type MaDelResponse struct {
	Status
}

// CommitRequest asks a node to make a prepared mutation permanent.
// Delete distinguishes a prepared MaDel from a prepared MaPut, since
// both leave the same tentativePrev trail behind.
type CommitRequest struct {
	Key    string
	Delete bool
}

type CommitResponse struct {
	Status
}

type AbortRequest struct {
	Key string
}

type AbortResponse struct {
	Status
}

type LiveRequest struct{}

type LiveResponse struct {
	Status
}

const storageServiceName = "kvstore.Storage"

// StorageServer is implemented by internal/storage and served over
// gRPC via RegisterStorageServer.
type StorageServer interface {
	GetData(context.Context, *GetDataRequest) (*GetDataResponse, error)
	PutData(context.Context, *PutDataRequest) (*PutDataResponse, error)
	DelData(context.Context, *DelDataRequest) (*DelDataResponse, error)
	MaGet(context.Context, *MaGetRequest) (*MaGetResponse, error)
	MaPut(context.Context, *MaPutRequest) (*MaPutResponse, error)
	MaDel(context.Context, *MaDelRequest) (*MaDelResponse, error)
	Commit(context.Context, *CommitRequest) (*CommitResponse, error)
	Abort(context.Context, *AbortRequest) (*AbortResponse, error)
	Live(context.Context, *LiveRequest) (*LiveResponse, error)
}

// RegisterStorageServer registers srv with s under the Storage
// service descriptor.
func RegisterStorageServer(s *grpc.Server, srv StorageServer) {
	s.RegisterService(&storageServiceDesc, srv)
}

func storageGetDataHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetDataRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorageServer).GetData(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + storageServiceName + "/GetData"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorageServer).GetData(ctx, req.(*GetDataRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func storagePutDataHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PutDataRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorageServer).PutData(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + storageServiceName + "/PutData"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorageServer).PutData(ctx, req.(*PutDataRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func storageDelDataHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DelDataRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorageServer).DelData(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + storageServiceName + "/DelData"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorageServer).DelData(ctx, req.(*DelDataRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func storageMaGetHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MaGetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorageServer).MaGet(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + storageServiceName + "/MaGet"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorageServer).MaGet(ctx, req.(*MaGetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func storageMaPutHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MaPutRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorageServer).MaPut(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + storageServiceName + "/MaPut"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorageServer).MaPut(ctx, req.(*MaPutRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func storageMaDelHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MaDelRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorageServer).MaDel(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + storageServiceName + "/MaDel"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorageServer).MaDel(ctx, req.(*MaDelRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func storageCommitHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CommitRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorageServer).Commit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + storageServiceName + "/Commit"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorageServer).Commit(ctx, req.(*CommitRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func storageAbortHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(AbortRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorageServer).Abort(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + storageServiceName + "/Abort"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorageServer).Abort(ctx, req.(*AbortRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func storageLiveHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(LiveRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorageServer).Live(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + storageServiceName + "/Live"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorageServer).Live(ctx, req.(*LiveRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var storageServiceDesc = grpc.ServiceDesc{
	ServiceName: storageServiceName,
	HandlerType: (*StorageServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetData", Handler: storageGetDataHandler},
		{MethodName: "PutData", Handler: storagePutDataHandler},
		{MethodName: "DelData", Handler: storageDelDataHandler},
		{MethodName: "MaGet", Handler: storageMaGetHandler},
		{MethodName: "MaPut", Handler: storageMaPutHandler},
		{MethodName: "MaDel", Handler: storageMaDelHandler},
		{MethodName: "Commit", Handler: storageCommitHandler},
		{MethodName: "Abort", Handler: storageAbortHandler},
		{MethodName: "Live", Handler: storageLiveHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storage.proto",
}

// StorageClient is the client-side stub for StorageServer.
type StorageClient interface {
	GetData(ctx context.Context, in *GetDataRequest, opts ...grpc.CallOption) (*GetDataResponse, error)
	PutData(ctx context.Context, in *PutDataRequest, opts ...grpc.CallOption) (*PutDataResponse, error)
	DelData(ctx context.Context, in *DelDataRequest, opts ...grpc.CallOption) (*DelDataResponse, error)
	MaGet(ctx context.Context, in *MaGetRequest, opts ...grpc.CallOption) (*MaGetResponse, error)
	MaPut(ctx context.Context, in *MaPutRequest, opts ...grpc.CallOption) (*MaPutResponse, error)
	MaDel(ctx context.Context, in *MaDelRequest, opts ...grpc.CallOption) (*MaDelResponse, error)
	Commit(ctx context.Context, in *CommitRequest, opts ...grpc.CallOption) (*CommitResponse, error)
	Abort(ctx context.Context, in *AbortRequest, opts ...grpc.CallOption) (*AbortResponse, error)
	Live(ctx context.Context, in *LiveRequest, opts ...grpc.CallOption) (*LiveResponse, error)
}

type storageClient struct {
	cc *grpc.ClientConn
}

// NewStorageClient wraps cc with the Storage service's client stub.
func NewStorageClient(cc *grpc.ClientConn) StorageClient {
	return &storageClient{cc: cc}
}

func (c *storageClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+storageServiceName+"/"+method, in, out, opts...)
}

func (c *storageClient) GetData(ctx context.Context, in *GetDataRequest, opts ...grpc.CallOption) (*GetDataResponse, error) {
	out := new(GetDataResponse)
	if err := c.invoke(ctx, "GetData", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storageClient) PutData(ctx context.Context, in *PutDataRequest, opts ...grpc.CallOption) (*PutDataResponse, error) {
	out := new(PutDataResponse)
	if err := c.invoke(ctx, "PutData", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storageClient) DelData(ctx context.Context, in *DelDataRequest, opts ...grpc.CallOption) (*DelDataResponse, error) {
	out := new(DelDataResponse)
	if err := c.invoke(ctx, "DelData", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storageClient) MaGet(ctx context.Context, in *MaGetRequest, opts ...grpc.CallOption) (*MaGetResponse, error) {
	out := new(MaGetResponse)
	if err := c.invoke(ctx, "MaGet", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storageClient) MaPut(ctx context.Context, in *MaPutRequest, opts ...grpc.CallOption) (*MaPutResponse, error) {
	out := new(MaPutResponse)
	if err := c.invoke(ctx, "MaPut", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storageClient) MaDel(ctx context.Context, in *MaDelRequest, opts ...grpc.CallOption) (*MaDelResponse, error) {
	out := new(MaDelResponse)
	if err := c.invoke(ctx, "MaDel", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storageClient) Commit(ctx context.Context, in *CommitRequest, opts ...grpc.CallOption) (*CommitResponse, error) {
	out := new(CommitResponse)
	if err := c.invoke(ctx, "Commit", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storageClient) Abort(ctx context.Context, in *AbortRequest, opts ...grpc.CallOption) (*AbortResponse, error) {
	out := new(AbortResponse)
	if err := c.invoke(ctx, "Abort", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storageClient) Live(ctx context.Context, in *LiveRequest, opts ...grpc.CallOption) (*LiveResponse, error) {
	out := new(LiveResponse)
	if err := c.invoke(ctx, "Live", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
