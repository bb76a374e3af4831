package command

import (
	"github.com/urfave/cli/v2"

	"github.com/okian/antekhub/pkg/client"
)

// ClaimsCommand returns the alumni-claim subcommand group.
func ClaimsCommand() *cli.Command {
	byID := func(op func(svc *client.ClaimService, c *cli.Context, id string) (client.Result, error)) cli.ActionFunc {
		return func(c *cli.Context) error {
			api, err := apiClient(c)
			if err != nil {
				return err
			}
			res, err := op(api.Claims, c, c.Args().First())
			if err != nil {
				return err
			}
			return renderResult(c, res)
		}
	}

	return &cli.Command{
		Name:    "claims",
		Aliases: []string{"klaim"},
		Usage:   "Review alumni claim requests",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List claims",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "status",
						Aliases: []string{"s"},
						Usage:   "Filter by status: pending, approved, rejected, all",
					},
					&cli.StringFlag{
						Name:  "q",
						Usage: "Free-text search",
					},
				},
				Action: claimsList,
			},
			{
				Name:      "get",
				Usage:     "Show one claim",
				ArgsUsage: "UUID",
				Action: byID(func(svc *client.ClaimService, c *cli.Context, id string) (client.Result, error) {
					return svc.Get(c.Context, id)
				}),
			},
			{
				Name:      "approve",
				Usage:     "Approve a claim",
				ArgsUsage: "UUID",
				Action: byID(func(svc *client.ClaimService, c *cli.Context, id string) (client.Result, error) {
					return svc.Approve(c.Context, id)
				}),
			},
			{
				Name:      "reject",
				Usage:     "Reject a claim",
				ArgsUsage: "UUID",
				Action: byID(func(svc *client.ClaimService, c *cli.Context, id string) (client.Result, error) {
					return svc.Reject(c.Context, id)
				}),
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a claim",
				ArgsUsage: "UUID",
				Action: byID(func(svc *client.ClaimService, c *cli.Context, id string) (client.Result, error) {
					return svc.Delete(c.Context, id)
				}),
			},
		},
	}
}

func claimsList(c *cli.Context) error {
	api, err := apiClient(c)
	if err != nil {
		return err
	}
	res, err := api.Claims.List(c.Context, client.ClaimFilter{
		Status: client.ClaimStatus(c.String("status")),
		Query:  c.String("q"),
	})
	if err != nil {
		return err
	}
	return renderResult(c, res)
}
