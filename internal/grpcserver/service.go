package grpcserver

import (
	"context"

	"google.golang.org/grpc"

	"cataloghub/internal/catalog"
)

// CatalogService is the method set behind serviceDesc.
type CatalogService interface {
	ListWorks(context.Context, *ListWorksRequest) (*catalog.WorkListing, error)
	GetWork(context.Context, *GetRequest) (*catalog.WorkDetail, error)
	ListCharacters(context.Context, *ListCharactersRequest) (*catalog.CharacterListing, error)
	GetCharacter(context.Context, *GetRequest) (*catalog.CharacterDetail, error)
	ListGenres(context.Context, *ListGenresRequest) (*ListGenresResponse, error)
	GetGenre(context.Context, *GetRequest) (*catalog.GenreDetail, error)
	AttachGenreToWork(context.Context, *AttachRequest) (*catalog.Outcome, error)
	AttachWorkToCharacter(context.Context, *AttachRequest) (*catalog.Outcome, error)
}

var _ CatalogService = (*Server)(nil)

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*CatalogService)(nil),
	Methods: []grpc.MethodDesc{
		unary("ListWorks", CatalogService.ListWorks),
		unary("GetWork", CatalogService.GetWork),
		unary("ListCharacters", CatalogService.ListCharacters),
		unary("GetCharacter", CatalogService.GetCharacter),
		unary("ListGenres", CatalogService.ListGenres),
		unary("GetGenre", CatalogService.GetGenre),
		unary("AttachGenreToWork", CatalogService.AttachGenreToWork),
		unary("AttachWorkToCharacter", CatalogService.AttachWorkToCharacter),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cataloghub/catalog",
}

func fullMethod(name string) string {
	return "/" + serviceName + "/" + name
}

func unary[Req, Resp any](name string, call func(CatalogService, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			svc := srv.(CatalogService)
			if interceptor == nil {
				return call(svc, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(svc, ctx, req.(*Req))
			})
		},
	}
}
