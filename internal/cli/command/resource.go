package command

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/okian/antekhub/pkg/client"
)

// crudService is the operation set shared by /alumni and /user-admin.
type crudService interface {
	List(ctx context.Context) (client.Result, error)
	Get(ctx context.Context, id string) (client.Result, error)
	Create(ctx context.Context, data any) (client.Result, error)
	Update(ctx context.Context, id string, data any) (client.Result, error)
	Delete(ctx context.Context, id string) (client.Result, error)
}

// AlumniCommand returns the alumni subcommand group.
func AlumniCommand() *cli.Command {
	return crudCommand("alumni", []string{"al"}, "Manage alumni records",
		func(api *client.Client) crudService { return api.Alumni })
}

// AdminsCommand returns the admin-user subcommand group.
func AdminsCommand() *cli.Command {
	return crudCommand("admins", []string{"admin"}, "Manage admin users",
		func(api *client.Client) crudService { return api.Admins })
}

func crudCommand(name string, aliases []string, usage string, pick func(*client.Client) crudService) *cli.Command {
	withService := func(fn func(c *cli.Context, svc crudService) (client.Result, error)) cli.ActionFunc {
		return func(c *cli.Context) error {
			api, err := apiClient(c)
			if err != nil {
				return err
			}
			res, err := fn(c, pick(api))
			if err != nil {
				return err
			}
			return renderResult(c, res)
		}
	}

	return &cli.Command{
		Name:    name,
		Aliases: aliases,
		Usage:   usage,
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List all",
				Action: withService(func(c *cli.Context, svc crudService) (client.Result, error) {
					return svc.List(c.Context)
				}),
			},
			{
				Name:      "get",
				Usage:     "Show one by UUID",
				ArgsUsage: "UUID",
				Action: withService(func(c *cli.Context, svc crudService) (client.Result, error) {
					return svc.Get(c.Context, c.Args().First())
				}),
			},
			{
				Name:  "create",
				Usage: "Create from a JSON payload",
				Flags: payloadFlags(),
				Action: withService(func(c *cli.Context, svc crudService) (client.Result, error) {
					payload, err := readPayload(c)
					if err != nil {
						return client.Result{}, err
					}
					return svc.Create(c.Context, payload)
				}),
			},
			{
				Name:      "update",
				Usage:     "Patch with a JSON payload",
				ArgsUsage: "UUID",
				Flags:     payloadFlags(),
				Action: withService(func(c *cli.Context, svc crudService) (client.Result, error) {
					payload, err := readPayload(c)
					if err != nil {
						return client.Result{}, err
					}
					return svc.Update(c.Context, c.Args().First(), payload)
				}),
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete by UUID",
				ArgsUsage: "UUID",
				Action: withService(func(c *cli.Context, svc crudService) (client.Result, error) {
					return svc.Delete(c.Context, c.Args().First())
				}),
			},
		},
	}
}
