package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func (c *cli) fellowsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fellows",
		Short: "Apply for the fellow role",
	}
	cmd.AddCommand(c.fellowsApplyCmd(), c.fellowsStatusCmd())
	return cmd
}

func (c *cli) fellowsApplyCmd() *cobra.Command {
	var body bodyFlags
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Submit a fellow application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := readBody(cmd, body.data, body.file)
			if err != nil {
				return err
			}
			if raw == nil {
				return errors.New("an application body is required (--data or --file)")
			}
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			env, err := a.API.Fellows.Apply(cmd.Context(), raw, a.Token())
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
	body.register(cmd)
	return cmd
}

func (c *cli) fellowsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show your own application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			env, err := a.API.Fellows.Mine(cmd.Context(), a.Token())
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
}
