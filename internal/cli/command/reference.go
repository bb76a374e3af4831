package command

import (
	"context"
	"net/url"

	"github.com/urfave/cli/v2"

	"github.com/okian/antekhub/pkg/client"
)

// CountriesCommand lists countries.
func CountriesCommand() *cli.Command {
	return listCommand("countries", "negara", "List countries",
		func(ctx context.Context, api *client.Client) (client.Result, error) { return api.Countries.List(ctx) })
}

// EthnicitiesCommand lists ethnic groups.
func EthnicitiesCommand() *cli.Command {
	return listCommand("ethnicities", "suku", "List ethnic groups",
		func(ctx context.Context, api *client.Client) (client.Result, error) { return api.Ethnicities.List(ctx) })
}

// ProgramsCommand lists study programs, optionally filtered.
func ProgramsCommand() *cli.Command {
	cmd := listCommand("programs", "program-studi", "List study programs", nil)
	cmd.Flags = []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "param",
			Aliases: []string{"p"},
			Usage:   "Query parameter as KEY=VALUE (repeatable)",
		},
	}
	cmd.Action = func(c *cli.Context) error {
		api, err := apiClient(c)
		if err != nil {
			return err
		}
		kv, err := keyValues(c.StringSlice("param"))
		if err != nil {
			return err
		}
		params := url.Values{}
		for k, v := range kv {
			params.Set(k, v)
		}
		res, err := api.StudyPrograms.List(c.Context, params)
		if err != nil {
			return err
		}
		return renderResult(c, res)
	}
	return cmd
}

func listCommand(name, alias, usage string, list func(context.Context, *client.Client) (client.Result, error)) *cli.Command {
	return &cli.Command{
		Name:    name,
		Aliases: []string{alias},
		Usage:   usage,
		Action: func(c *cli.Context) error {
			api, err := apiClient(c)
			if err != nil {
				return err
			}
			res, err := list(c.Context, api)
			if err != nil {
				return err
			}
			return renderResult(c, res)
		},
	}
}
