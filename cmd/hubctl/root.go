package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/d9705996/hubclient/internal/app"
	"github.com/d9705996/hubclient/internal/version"
)

// openFunc builds the application state for one command invocation.
type openFunc func(ctx context.Context) (*app.App, func(), error)

// cli carries what every command shares: the lazily opened App and the
// output settings.
type cli struct {
	open   openFunc
	out    io.Writer
	output string

	app   *app.App
	close func()
}

func newCLI(open openFunc, out io.Writer) *cli {
	return &cli{open: open, out: out, output: "json"}
}

// rootCmd assembles the command tree. Call shutdown once it has executed.
func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hubctl",
		Short:         "Command-line client for the resource hub",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch c.output {
			case "json", "yaml":
				return nil
			default:
				return fmt.Errorf("--output: unsupported format %q (want json or yaml)", c.output)
			}
		},
	}
	root.SetOut(c.out)
	root.PersistentFlags().StringVarP(&c.output, "output", "o", "json", "Output format (json, yaml)")

	root.AddCommand(
		c.signupCmd(),
		c.activateCmd(),
		c.signinCmd(),
		c.signoutCmd(),
		c.whoamiCmd(),
		c.resourcesCmd(),
		c.reviewsCmd(),
		c.adminCmd(),
		c.fellowsCmd(),
		c.routeCmd(),
		c.healthCmd(),
		c.serveCmd(),
		versionCmd(c.out),
	)
	return root
}

// setup opens the App on first use.
func (c *cli) setup(cmd *cobra.Command) (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	a, closeFn, err := c.open(cmd.Context())
	if err != nil {
		return nil, err
	}
	c.app, c.close = a, closeFn
	return a, nil
}

func (c *cli) shutdown() {
	if c.close != nil {
		c.close()
	}
	c.app, c.close = nil, nil
}

// render writes v to stdout in the selected format.
func (c *cli) render(v any) error {
	switch c.output {
	case "yaml":
		enc := yaml.NewEncoder(c.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

// readBody returns a request body from inline JSON (--data) or a file
// (--file, "-" for stdin). It returns nil when neither is set.
func readBody(cmd *cobra.Command, data, file string) (json.RawMessage, error) {
	var raw []byte
	switch {
	case data != "" && file != "":
		return nil, errors.New("--data and --file are mutually exclusive")
	case data != "":
		raw = []byte(data)
	case file == "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		raw = b
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		raw = b
	default:
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid JSON")
	}
	return json.RawMessage(raw), nil
}

func versionCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(out, "hubctl %s\n", version.String())
		},
	}
}
