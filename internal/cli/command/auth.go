package command

import (
	"encoding/json"
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/okian/antekhub/pkg/client"
	"github.com/okian/antekhub/pkg/session"
)

// LoginCommand stores a token obtained from the ANTEKHUB web login.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Save an auth token for later commands",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "token",
				Aliases:  []string{"t"},
				Usage:    "Bearer token",
				Required: true,
				EnvVars:  []string{"ANTEKHUB_TOKEN"},
			},
			&cli.StringFlag{
				Name:  "user",
				Usage: "Profile of the logged-in user as JSON",
			},
		},
		Action: login,
	}
}

func login(c *cli.Context) error {
	api, err := apiClient(c)
	if err != nil {
		return err
	}
	var user any
	if raw := c.String("user"); raw != "" {
		if !json.Valid([]byte(raw)) {
			return errors.New("--user is not valid JSON")
		}
		user = json.RawMessage(raw)
	}
	if err := api.Auth.SaveSession(c.Context, c.String("token"), user); err != nil {
		return err
	}
	return render(c, map[string]any{"logged_in": true})
}

// LogoutCommand clears the saved session.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Remove the saved token and profile",
		Action: func(c *cli.Context) error {
			api, err := apiClient(c)
			if err != nil {
				return err
			}
			if err := api.Auth.Logout(c.Context); err != nil {
				return err
			}
			return render(c, map[string]any{"logged_in": false})
		},
	}
}

// WhoamiCommand shows the cached profile of the logged-in user.
func WhoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the logged-in user",
		Action: func(c *cli.Context) error {
			api, err := apiClient(c)
			if err != nil {
				return err
			}
			ok, err := api.Auth.LoggedIn(c.Context)
			if err != nil {
				return err
			}
			if !ok {
				return client.ErrUnauthenticated
			}
			var user any
			err = api.Auth.CurrentUser(c.Context, &user)
			if errors.Is(err, session.ErrNotFound) {
				return render(c, map[string]any{"logged_in": true})
			}
			if err != nil {
				return err
			}
			return render(c, user)
		},
	}
}
