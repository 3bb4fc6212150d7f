package main

import "github.com/spf13/cobra"

func (c *cli) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Call the API healthcheck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			env, err := a.API.Healthcheck(cmd.Context())
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
}
