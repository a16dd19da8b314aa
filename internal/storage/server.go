package storage

import (
	"context"

	"github.com/dreamware/kvstore/internal/wire"
)

// Server adapts a Node to wire.StorageServer, translating the Node's
// Go-idiomatic errors into the {errno, errmes} contract every RPC
// response carries.
type Server struct {
	node *Node
}

// NewServer wraps node for gRPC registration via wire.RegisterStorageServer.
func NewServer(node *Node) *Server { return &Server{node: node} }

func statusFor(err error) wire.Status {
	if err == nil {
		return wire.Ok()
	}
	return wire.Fail(err.Error())
}

func (s *Server) GetData(ctx context.Context, req *wire.GetDataRequest) (*wire.GetDataResponse, error) {
	v, err := s.node.GetData(ctx, req.Key)
	if err != nil {
		return &wire.GetDataResponse{Status: statusFor(err)}, nil
	}
	return &wire.GetDataResponse{Status: wire.Ok(), Value: v}, nil
}

func (s *Server) PutData(ctx context.Context, req *wire.PutDataRequest) (*wire.PutDataResponse, error) {
	err := s.node.PutData(ctx, req.Key, req.Value)
	return &wire.PutDataResponse{Status: statusFor(err)}, nil
}

func (s *Server) DelData(ctx context.Context, req *wire.DelDataRequest) (*wire.DelDataResponse, error) {
	err := s.node.DelData(ctx, req.Key)
	return &wire.DelDataResponse{Status: statusFor(err)}, nil
}

func (s *Server) MaGet(ctx context.Context, req *wire.MaGetRequest) (*wire.MaGetResponse, error) {
	v, err := s.node.MaGet(req.Key)
	if err != nil {
		return &wire.MaGetResponse{Status: statusFor(err)}, nil
	}
	return &wire.MaGetResponse{Status: wire.Ok(), Value: v}, nil
}

func (s *Server) MaPut(ctx context.Context, req *wire.MaPutRequest) (*wire.MaPutResponse, error) {
	err := s.node.MaPut(req.Key, req.Value)
	return &wire.MaPutResponse{Status: statusFor(err)}, nil
}

func (s *Server) MaDel(ctx context.Context, req *wire.MaDelRequest) (*wire.MaDelResponse, error) {
	err := s.node.MaDel(req.Key)
	return &wire.MaDelResponse{Status: statusFor(err)}, nil
}

func (s *Server) Commit(ctx context.Context, req *wire.CommitRequest) (*wire.CommitResponse, error) {
	err := s.node.Commit(req.Key, req.Delete)
	return &wire.CommitResponse{Status: statusFor(err)}, nil
}

func (s *Server) Abort(ctx context.Context, req *wire.AbortRequest) (*wire.AbortResponse, error) {
	err := s.node.Abort(req.Key)
	return &wire.AbortResponse{Status: statusFor(err)}, nil
}

func (s *Server) Live(ctx context.Context, req *wire.LiveRequest) (*wire.LiveResponse, error) {
	err := s.node.Live()
	return &wire.LiveResponse{Status: statusFor(err)}, nil
}

var _ wire.StorageServer = (*Server)(nil)
