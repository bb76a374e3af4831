package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/okian/antekhub/pkg/client"
)

// InfoCommand returns the news/info subcommand group.
func InfoCommand() *cli.Command {
	formFlags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "field",
			Aliases: []string{"F"},
			Usage:   "Form field as KEY=VALUE (repeatable)",
		},
		&cli.PathFlag{
			Name:    "image",
			Aliases: []string{"i"},
			Usage:   "Attach the image at `PATH`",
		},
	}

	return &cli.Command{
		Name:  "info",
		Usage: "Manage news and announcements",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List info items",
				Action: func(c *cli.Context) error {
					api, err := apiClient(c)
					if err != nil {
						return err
					}
					res, err := api.Info.List(c.Context)
					if err != nil {
						return err
					}
					return renderResult(c, res)
				},
			},
			{
				Name:      "get",
				Usage:     "Show one info item",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					api, err := apiClient(c)
					if err != nil {
						return err
					}
					res, err := api.Info.Get(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					return renderResult(c, res)
				},
			},
			{
				Name:   "create",
				Usage:  "Create an info item (multipart upload)",
				Flags:  formFlags,
				Action: infoUpload(false),
			},
			{
				Name:      "update",
				Usage:     "Update an info item (multipart upload)",
				ArgsUsage: "ID",
				Flags:     formFlags,
				Action:    infoUpload(true),
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete an info item",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					api, err := apiClient(c)
					if err != nil {
						return err
					}
					res, err := api.Info.Delete(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					return renderResult(c, res)
				},
			},
		},
	}
}

func infoUpload(update bool) cli.ActionFunc {
	return func(c *cli.Context) error {
		api, err := apiClient(c)
		if err != nil {
			return err
		}
		fields, err := keyValues(c.StringSlice("field"))
		if err != nil {
			return err
		}
		in := client.InfoInput{Fields: fields}

		if path := c.Path("image"); path != "" {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open image: %w", err)
			}
			defer f.Close()
			in.Image = &client.File{Name: filepath.Base(path), Reader: f}
		}

		var res client.Result
		if update {
			res, err = api.Info.Update(c.Context, c.Args().First(), in)
		} else {
			res, err = api.Info.Create(c.Context, in)
		}
		if err != nil {
			return err
		}
		return renderResult(c, res)
	}
}
