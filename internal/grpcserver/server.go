// Package grpcserver exposes the catalog read paths and the two attach
// operations over gRPC. Messages are plain Go structs carried by a JSON codec.
package grpcserver

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cataloghub/internal/catalog"
)

const serviceName = "cataloghub.v1.Catalog"

type Server struct {
	Engine *catalog.Engine
	Log    *zap.Logger
}

func NewServer(engine *catalog.Engine, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{Engine: engine, Log: log}
}

// Register attaches the catalog service to gs.
func Register(gs *grpc.Server, s *Server) {
	gs.RegisterService(&serviceDesc, s)
}

func (s *Server) ListWorks(ctx context.Context, req *ListWorksRequest) (*catalog.WorkListing, error) {
	q, err := catalog.ResolveWorkQuery(catalog.WorkParams{
		Name:    req.Name,
		GenreID: req.GenreID,
		Order:   req.Order,
	})
	if err != nil {
		return nil, s.toStatus(err)
	}
	listing, err := s.Engine.ListWorks(ctx, q)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &listing, nil
}

func (s *Server) GetWork(ctx context.Context, req *GetRequest) (*catalog.WorkDetail, error) {
	w, err := s.Engine.GetWork(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &w, nil
}

func (s *Server) ListCharacters(ctx context.Context, req *ListCharactersRequest) (*catalog.CharacterListing, error) {
	q, err := catalog.ResolveCharacterQuery(catalog.CharacterParams{
		Name:   req.Name,
		Age:    req.Age,
		WorkID: req.WorkID,
	})
	if err != nil {
		return nil, s.toStatus(err)
	}
	listing, err := s.Engine.ListCharacters(ctx, q)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &listing, nil
}

func (s *Server) GetCharacter(ctx context.Context, req *GetRequest) (*catalog.CharacterDetail, error) {
	c, err := s.Engine.GetCharacter(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &c, nil
}

func (s *Server) ListGenres(ctx context.Context, _ *ListGenresRequest) (*ListGenresResponse, error) {
	genres, err := s.Engine.ListGenres(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &ListGenresResponse{Genres: genres}, nil
}

func (s *Server) GetGenre(ctx context.Context, req *GetRequest) (*catalog.GenreDetail, error) {
	g, err := s.Engine.GetGenre(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &g, nil
}

// AttachGenreToWork takes the work as owner and the genre as related id.
func (s *Server) AttachGenreToWork(ctx context.Context, req *AttachRequest) (*catalog.Outcome, error) {
	out, err := s.Engine.AttachGenreToWork(ctx, req.OwnerID, req.RelatedID)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &out, nil
}

// AttachWorkToCharacter takes the character as owner and the work as related id.
func (s *Server) AttachWorkToCharacter(ctx context.Context, req *AttachRequest) (*catalog.Outcome, error) {
	out, err := s.Engine.AttachWorkToCharacter(ctx, req.OwnerID, req.RelatedID)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &out, nil
}

func (s *Server) toStatus(err error) error {
	switch catalog.KindOf(err) {
	case catalog.KindNotFound, catalog.KindNoMatch:
		return status.Error(codes.NotFound, err.Error())
	case catalog.KindValidation, catalog.KindIdentifierMismatch:
		return status.Error(codes.InvalidArgument, err.Error())
	case catalog.KindConflict:
		return status.Error(codes.AlreadyExists, err.Error())
	}
	s.Log.Error("grpc call failed", zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}
