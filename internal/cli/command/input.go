package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

// payloadFlags are shared by create and update commands that send JSON.
func payloadFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "JSON payload",
		},
		&cli.PathFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "Read the JSON payload from `PATH`",
		},
	}
}

// readPayload returns the JSON given by exactly one of --data or --file.
func readPayload(c *cli.Context) (json.RawMessage, error) {
	data, path := c.String("data"), c.Path("file")
	var raw []byte
	switch {
	case data != "" && path != "":
		return nil, errors.New("use either --data or --file, not both")
	case data != "":
		raw = []byte(data)
	case path != "":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read payload: %w", err)
		}
		raw = b
	default:
		return nil, errors.New("a JSON payload is required (--data or --file)")
	}
	if !json.Valid(raw) {
		return nil, errors.New("payload is not valid JSON")
	}
	return json.RawMessage(raw), nil
}

// keyValues parses KEY=VALUE pairs. Later pairs override earlier ones.
func keyValues(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid KEY=VALUE pair: %q", p)
		}
		out[k] = v
	}
	return out, nil
}
