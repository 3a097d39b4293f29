package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"cataloghub/internal/catalog"
	"cataloghub/internal/csvio"
	"cataloghub/internal/grpcserver"
	"cataloghub/internal/store"
	"cataloghub/pkg/database"
	"cataloghub/pkg/utils"
)

// openLocal opens the configured database directly, bypassing the API.
func openLocal(ctx context.Context) (*store.SQLiteStore, func(), error) {
	cfg, _, err := utils.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return store.NewSQLiteStore(db), func() { _ = db.Close() }, nil
}

func dbCommand() *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "Work on the local database directly",
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Load a CSV directory into the catalog",
				ArgsUsage: "DIR",
				Action: func(ctx context.Context, c *cli.Command) error {
					dir := c.Args().First()
					if dir == "" {
						return errors.New("missing DIR")
					}
					st, closeDB, err := openLocal(ctx)
					if err != nil {
						return err
					}
					defer closeDB()

					n, err := csvio.Import(ctx, catalog.NewEngine(st, nil, nil), dir)
					if err != nil {
						return err
					}
					return printJSON(n)
				},
			},
			{
				Name:      "export",
				Usage:     "Write the catalog to a CSV directory",
				ArgsUsage: "DIR",
				Action: func(ctx context.Context, c *cli.Command) error {
					dir := c.Args().First()
					if dir == "" {
						return errors.New("missing DIR")
					}
					st, closeDB, err := openLocal(ctx)
					if err != nil {
						return err
					}
					defer closeDB()

					n, err := csvio.Export(ctx, st, dir)
					if err != nil {
						return err
					}
					return printJSON(n)
				},
			},
		},
	}
}

func feedCommand() *cli.Command {
	return &cli.Command{
		Name:  "feed",
		Usage: "Catalog change feed",
		Commands: []*cli.Command{
			{
				Name:  "tail",
				Usage: "Print catalog events as they happen, reconnecting on loss",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Value: "127.0.0.1:7070", Usage: "feed TCP address"},
					&cli.BoolFlag{Name: "raw", Usage: "print lines as received"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
					defer stop()

					for {
						err := tail(ctx, c.String("addr"), c.Bool("raw"))
						if ctx.Err() != nil {
							return nil
						}
						fmt.Fprintf(stdout, "feed disconnected: %v\n", err)
						select {
						case <-ctx.Done():
							return nil
						case <-time.After(time.Second):
						}
					}
				},
			},
		},
	}
}

func tail(ctx context.Context, addr string, raw bool) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		line := sc.Bytes()
		if raw {
			fmt.Fprintln(stdout, string(line))
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(line, &obj); err != nil {
			fmt.Fprintln(stdout, string(line))
			continue
		}
		if err := printJSON(obj); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return errors.New("connection closed")
}

func rpcAddrFlag() cli.Flag {
	return &cli.StringFlag{Name: "addr", Value: "127.0.0.1:9090", Usage: "gRPC address"}
}

func rpcCommand() *cli.Command {
	return &cli.Command{
		Name:  "rpc",
		Usage: "Read the catalog over gRPC",
		Commands: []*cli.Command{
			{
				Name: "movies",
				Flags: []cli.Flag{
					rpcAddrFlag(),
					&cli.StringFlag{Name: "name"},
					&cli.Int64Flag{Name: "genre"},
					&cli.StringFlag{Name: "order"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return withRPC(c, func(client *grpcserver.Client) error {
						req := &grpcserver.ListWorksRequest{}
						if c.IsSet("name") {
							name := c.String("name")
							req.Name = &name
						}
						if c.IsSet("genre") {
							genre := c.Int64("genre")
							req.GenreID = &genre
						}
						if c.IsSet("order") {
							order := c.String("order")
							req.Order = &order
						}
						listing, err := client.ListWorks(ctx, req)
						if err != nil {
							return err
						}
						return printJSON(listing.Payload())
					})
				},
			},
			{
				Name:  "genres",
				Flags: []cli.Flag{rpcAddrFlag()},
				Action: func(ctx context.Context, c *cli.Command) error {
					return withRPC(c, func(client *grpcserver.Client) error {
						resp, err := client.ListGenres(ctx, &grpcserver.ListGenresRequest{})
						if err != nil {
							return err
						}
						return printJSON(resp.Genres)
					})
				},
			},
		},
	}
}

func withRPC(c *cli.Command, fn func(*grpcserver.Client) error) error {
	conn, err := grpc.NewClient(c.String("addr"), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("grpc client: %w", err)
	}
	defer conn.Close()
	return fn(grpcserver.NewClient(conn))
}
