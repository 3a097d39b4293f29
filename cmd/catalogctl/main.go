package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/urfave/cli/v3"

	"cataloghub/internal/catalog"
)

const defaultBaseURL = "http://localhost:8080"

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}
	if err := newApp().Run(context.Background(), args); err != nil {
		fmt.Fprintln(os.Stderr, "catalogctl:", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "catalogctl",
		Usage: "Query and edit the cataloghub catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api", Value: defaultBaseURL, Usage: "API base URL", Sources: cli.EnvVars("CATALOGHUB_API")},
			&cli.StringFlag{Name: "token-file", Value: defaultTokenPath(), Usage: "where the login token is kept"},
		},
		Commands: []*cli.Command{
			authCommand(),
			moviesCommand(),
			charactersCommand(),
			genresCommand(),
			dbCommand(),
			feedCommand(),
			rpcCommand(),
		},
	}
}

func clientFor(c *cli.Command) (*apiClient, error) {
	token, err := loadToken(c.String("token-file"))
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	return newAPIClient(c.String("api"), token), nil
}

// call runs one request and prints the decoded response.
func call(ctx context.Context, c *cli.Command, method, path string, in any) error {
	client, err := clientFor(c)
	if err != nil {
		return err
	}
	var out any
	if err := client.request(ctx, method, path, in, &out); err != nil {
		return err
	}
	return printJSON(out)
}

func argID(c *cli.Command, pos int, name string) (int64, error) {
	raw := c.Args().Get(pos)
	if raw == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, raw)
	}
	return id, nil
}

// queryFrom copies the set string flags into a query string.
func queryFrom(c *cli.Command, params map[string]string) string {
	q := url.Values{}
	for flag, key := range params {
		if c.IsSet(flag) {
			q.Set(key, c.String(flag))
		}
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func authCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Account commands",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create an account and keep its token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return authenticate(ctx, c, "/api/auth/register", map[string]string{
						"username": c.String("username"),
						"email":    c.String("email"),
						"password": c.String("password"),
					})
				},
			},
			{
				Name:  "login",
				Usage: "Log in and keep the token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return authenticate(ctx, c, "/api/auth/login", map[string]string{
						"email":    c.String("email"),
						"password": c.String("password"),
					})
				},
			},
			{
				Name:  "logout",
				Usage: "Invalidate every token of the current account",
				Action: func(ctx context.Context, c *cli.Command) error {
					client, err := clientFor(c)
					if err != nil {
						return err
					}
					if err := client.request(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
						return err
					}
					return os.Remove(c.String("token-file"))
				},
			},
			{
				Name:  "whoami",
				Usage: "Show the current account",
				Action: func(ctx context.Context, c *cli.Command) error {
					return call(ctx, c, http.MethodGet, "/api/auth/me", nil)
				},
			},
		},
	}
}

func authenticate(ctx context.Context, c *cli.Command, path string, body any) error {
	client, err := clientFor(c)
	if err != nil {
		return err
	}
	var out struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := client.request(ctx, http.MethodPost, path, body, &out); err != nil {
		return err
	}
	if err := saveToken(c.String("token-file"), out.Token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	_, err = fmt.Fprintf(stdout, "logged in as %s\n", out.User.Username)
	return err
}

func workFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Required: true},
		&cli.FloatFlag{Name: "rating", Required: true, Usage: "1 to 5"},
		&cli.StringFlag{Name: "release", Usage: "release date, YYYY-MM-DD"},
		&cli.StringFlag{Name: "image"},
	}
}

func workInput(c *cli.Command, id int64) catalog.WorkInput {
	return catalog.WorkInput{
		ID:          id,
		Image:       c.String("image"),
		Title:       c.String("title"),
		ReleaseDate: c.String("release"),
		Rating:      c.Float("rating"),
	}
}

func moviesCommand() *cli.Command {
	return &cli.Command{
		Name:  "movies",
		Usage: "Work commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List works; --genre pivots to the genre",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "genre"},
					&cli.StringFlag{Name: "order", Usage: "asc or desc"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					q := queryFrom(c, map[string]string{"name": "name", "genre": "genre", "order": "order"})
					return call(ctx, c, http.MethodGet, "/api/movies"+q, nil)
				},
			},
			{
				Name:      "get",
				ArgsUsage: "ID",
				Action: func(ctx context.Context, c *cli.Command) error {
					id, err := argID(c, 0, "id")
					if err != nil {
						return err
					}
					return call(ctx, c, http.MethodGet, fmt.Sprintf("/api/movies/%d", id), nil)
				},
			},
			{
				Name:  "create",
				Flags: workFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					return call(ctx, c, http.MethodPost, "/api/movies", workInput(c, 0))
				},
			},
			{
				Name:      "update",
				ArgsUsage: "ID",
				Flags:     workFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					id, err := argID(c, 0, "id")
					if err != nil {
						return err
					}
					return call(ctx, c, http.MethodPut, fmt.Sprintf("/api/movies/%d", id), workInput(c, id))
				},
			},
			{
				Name:      "delete",
				ArgsUsage: "ID",
				Action: func(ctx context.Context, c *cli.Command) error {
					id, err := argID(c, 0, "id")
					if err != nil {
						return err
					}
					return call(ctx, c, http.MethodDelete, fmt.Sprintf("/api/movies/%d", id), nil)
				},
			},
			{
				Name:      "attach-genre",
				ArgsUsage: "MOVIE_ID GENRE_ID",
				Action: func(ctx context.Context, c *cli.Command) error {
					work, err := argID(c, 0, "movie id")
					if err != nil {
						return err
					}
					genre, err := argID(c, 1, "genre id")
					if err != nil {
						return err
					}
					return call(ctx, c, http.MethodPut, fmt.Sprintf("/api/movies/%d/genres/%d", work, genre), nil)
				},
			},
		},
	}
}

func characterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Required: true},
		&cli.IntFlag{Name: "age"},
		&cli.FloatFlag{Name: "weight"},
		&cli.StringFlag{Name: "history"},
		&cli.StringFlag{Name: "image"},
	}
}

func characterInput(c *cli.Command, id int64) catalog.CharacterInput {
	return catalog.CharacterInput{
		ID:      id,
		Image:   c.String("image"),
		Name:    c.String("name"),
		Age:     c.Int("age"),
		Weight:  c.Float("weight"),
		History: c.String("history"),
	}
}

func charactersCommand() *cli.Command {
	return &cli.Command{
		Name:  "characters",
		Usage: "Character commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List characters; --movie pivots to the work",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "age"},
					&cli.StringFlag{Name: "movie"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					q := queryFrom(c, map[string]string{"name": "name", "age": "age", "movie": "movie"})
					return call(ctx, c, http.MethodGet, "/api/characters"+q, nil)
				},
			},
			{
				Name:      "get",
				ArgsUsage: "ID",
				Action: func(ctx context.Context, c *cli.Command) error {
					id, err := argID(c, 0, "id")
					if err != nil {
						return err
					}
					return call(ctx, c, http.MethodGet, fmt.Sprintf("/api/characters/%d", id), nil)
				},
			},
			{
				Name:  "create",
				Flags: characterFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					return call(ctx, c, http.MethodPost, "/api/characters", characterInput(c, 0))
				},
			},
			{
				Name:      "update",
				ArgsUsage: "ID",
				Flags:     characterFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					id, err := argID(c, 0, "id")
					if err != nil {
						return err
					}
					return call(ctx, c, http.MethodPut, fmt.Sprintf("/api/characters/%d", id), characterInput(c, id))
				},
			},
			{
				Name:      "delete",
				ArgsUsage: "ID",
				Action: func(ctx context.Context, c *cli.Command) error {
					id, err := argID(c, 0, "id")
					if err != nil {
						return err
					}
					return call(ctx, c, http.MethodDelete, fmt.Sprintf("/api/characters/%d", id), nil)
				},
			},
			{
				Name:      "attach-movie",
				ArgsUsage: "CHARACTER_ID MOVIE_ID",
				Action: func(ctx context.Context, c *cli.Command) error {
					character, err := argID(c, 0, "character id")
					if err != nil {
						return err
					}
					work, err := argID(c, 1, "movie id")
					if err != nil {
						return err
					}
					return call(ctx, c, http.MethodPut, fmt.Sprintf("/api/characters/%d/movies/%d", character, work), nil)
				},
			},
		},
	}
}

func genreFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Required: true},
		&cli.StringFlag{Name: "image"},
	}
}

func genresCommand() *cli.Command {
	return &cli.Command{
		Name:  "genres",
		Usage: "Genre commands",
		Commands: []*cli.Command{
			{
				Name: "list",
				Action: func(ctx context.Context, c *cli.Command) error {
					return call(ctx, c, http.MethodGet, "/api/genres", nil)
				},
			},
			{
				Name:      "get",
				ArgsUsage: "ID",
				Action: func(ctx context.Context, c *cli.Command) error {
					id, err := argID(c, 0, "id")
					if err != nil {
						return err
					}
					return call(ctx, c, http.MethodGet, fmt.Sprintf("/api/genres/%d", id), nil)
				},
			},
			{
				Name:  "create",
				Flags: genreFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					in := catalog.GenreInput{Name: c.String("name"), Image: c.String("image")}
					return call(ctx, c, http.MethodPost, "/api/genres", in)
				},
			},
			{
				Name:      "update",
				ArgsUsage: "ID",
				Flags:     genreFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					id, err := argID(c, 0, "id")
					if err != nil {
						return err
					}
					in := catalog.GenreInput{ID: id, Name: c.String("name"), Image: c.String("image")}
					return call(ctx, c, http.MethodPut, fmt.Sprintf("/api/genres/%d", id), in)
				},
			},
			{
				Name:      "delete",
				ArgsUsage: "ID",
				Action: func(ctx context.Context, c *cli.Command) error {
					id, err := argID(c, 0, "id")
					if err != nil {
						return err
					}
					return call(ctx, c, http.MethodDelete, fmt.Sprintf("/api/genres/%d", id), nil)
				},
			},
		},
	}
}
