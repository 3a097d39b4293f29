package grpcserver

import (
	"context"

	"google.golang.org/grpc"

	"cataloghub/internal/catalog"
)

// Client calls the catalog service over an existing connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *Client, method string, req any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, fullMethod(method), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListWorks(ctx context.Context, req *ListWorksRequest, opts ...grpc.CallOption) (*catalog.WorkListing, error) {
	return invoke[catalog.WorkListing](ctx, c, "ListWorks", req, opts)
}

func (c *Client) GetWork(ctx context.Context, req *GetRequest, opts ...grpc.CallOption) (*catalog.WorkDetail, error) {
	return invoke[catalog.WorkDetail](ctx, c, "GetWork", req, opts)
}

func (c *Client) ListCharacters(ctx context.Context, req *ListCharactersRequest, opts ...grpc.CallOption) (*catalog.CharacterListing, error) {
	return invoke[catalog.CharacterListing](ctx, c, "ListCharacters", req, opts)
}

func (c *Client) GetCharacter(ctx context.Context, req *GetRequest, opts ...grpc.CallOption) (*catalog.CharacterDetail, error) {
	return invoke[catalog.CharacterDetail](ctx, c, "GetCharacter", req, opts)
}

func (c *Client) ListGenres(ctx context.Context, req *ListGenresRequest, opts ...grpc.CallOption) (*ListGenresResponse, error) {
	return invoke[ListGenresResponse](ctx, c, "ListGenres", req, opts)
}

func (c *Client) GetGenre(ctx context.Context, req *GetRequest, opts ...grpc.CallOption) (*catalog.GenreDetail, error) {
	return invoke[catalog.GenreDetail](ctx, c, "GetGenre", req, opts)
}

func (c *Client) AttachGenreToWork(ctx context.Context, req *AttachRequest, opts ...grpc.CallOption) (*catalog.Outcome, error) {
	return invoke[catalog.Outcome](ctx, c, "AttachGenreToWork", req, opts)
}

func (c *Client) AttachWorkToCharacter(ctx context.Context, req *AttachRequest, opts ...grpc.CallOption) (*catalog.Outcome, error) {
	return invoke[catalog.Outcome](ctx, c, "AttachWorkToCharacter", req, opts)
}
