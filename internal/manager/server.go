package manager

import (
	"context"

	"github.com/dreamware/kvstore/internal/wire"
)

// Server adapts a Manager to wire.ManagerServer.
type Server struct {
	m *Manager
}

// NewServer wraps m for gRPC registration via wire.RegisterManagerServer.
func NewServer(m *Manager) *Server { return &Server{m: m} }

func (s *Server) Online(ctx context.Context, req *wire.OnlineRequest) (*wire.OnlineResponse, error) {
	id := s.m.Online(req.Host, req.Port)
	return &wire.OnlineResponse{Status: wire.Ok(), ServerID: id}, nil
}

func (s *Server) Offline(ctx context.Context, req *wire.OfflineRequest) (*wire.OfflineResponse, error) {
	s.m.Offline(req.ServerID)
	return &wire.OfflineResponse{Status: wire.Ok()}, nil
}

func (s *Server) Connect(ctx context.Context, req *wire.ConnectRequest) (*wire.ConnectResponse, error) {
	clientID, host, port, err := s.m.Connect()
	if err != nil {
		return &wire.ConnectResponse{Status: statusFor(err)}, nil
	}
	return &wire.ConnectResponse{Status: wire.Ok(), ClientID: clientID, Host: host, Port: port}, nil
}

func (s *Server) Disconnect(ctx context.Context, req *wire.DisconnectRequest) (*wire.DisconnectResponse, error) {
	s.m.Disconnect(req.ClientID)
	return &wire.DisconnectResponse{Status: wire.Ok()}, nil
}

func (s *Server) ChangeServer(ctx context.Context, req *wire.ChangeServerRequest) (*wire.ChangeServerResponse, error) {
	err := s.m.ChangeServer(req.ClientID, req.Host, req.Port)
	return &wire.ChangeServerResponse{Status: statusFor(err)}, nil
}

func (s *Server) ChangeServerRandom(ctx context.Context, req *wire.ChangeServerRandomRequest) (*wire.ChangeServerRandomResponse, error) {
	host, port, err := s.m.ChangeServerRandom(req.ClientID)
	if err != nil {
		return &wire.ChangeServerRandomResponse{Status: statusFor(err)}, nil
	}
	return &wire.ChangeServerRandomResponse{Status: wire.Ok(), Host: host, Port: port}, nil
}

func (s *Server) Get(ctx context.Context, req *wire.GetRequest) (*wire.GetResponse, error) {
	v, err := s.m.Get(ctx, req.Key, req.ServerID)
	if err != nil {
		return &wire.GetResponse{Status: statusFor(err)}, nil
	}
	return &wire.GetResponse{Status: wire.Ok(), Value: v}, nil
}

func (s *Server) Put(ctx context.Context, req *wire.PutRequest) (*wire.PutResponse, error) {
	err := s.m.Put(ctx, req.Key, req.Value, req.ServerID)
	return &wire.PutResponse{Status: statusFor(err)}, nil
}

func (s *Server) Del(ctx context.Context, req *wire.DelRequest) (*wire.DelResponse, error) {
	err := s.m.Del(ctx, req.Key, req.ServerID)
	return &wire.DelResponse{Status: statusFor(err)}, nil
}

func statusFor(err error) wire.Status {
	if err == nil {
		return wire.Ok()
	}
	return wire.Fail(err.Error())
}

var _ wire.ManagerServer = (*Server)(nil)
