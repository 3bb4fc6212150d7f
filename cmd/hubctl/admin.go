package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/d9705996/hubclient/internal/apiclient"
)

func (c *cli) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator operations",
	}
	cmd.AddCommand(
		c.adminMetricsCmd(),
		c.adminUsersCmd(),
		c.adminUserWriteCmd("create-user"),
		c.adminUserWriteCmd("update-user"),
		c.adminSetRoleCmd(),
		c.adminSetActiveCmd(),
		c.adminOverrideStatusCmd(),
		c.adminApplicationsCmd(),
		c.adminDecideCmd("approve"),
		c.adminDecideCmd("reject"),
	)
	return cmd
}

func (c *cli) adminMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show user and resource counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			env, err := a.API.Admin.Metrics(cmd.Context(), a.Token())
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
}

func (c *cli) adminUsersCmd() *cobra.Command {
	var params []string
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users",
		Long: `List users. Every --param is sent as given, including empty
values, in the order given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filters, err := parseParams(params)
			if err != nil {
				return err
			}
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			env, err := a.API.Admin.Users(cmd.Context(), a.Token(), filters)
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Query parameter as key=value (repeatable)")
	return cmd
}

func parseParams(params []string) (apiclient.Filters, error) {
	var filters apiclient.Filters
	for _, p := range params {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("--param %q: want key=value", p)
		}
		filters = filters.Add(k, v)
	}
	return filters, nil
}

func (c *cli) adminUserWriteCmd(verb string) *cobra.Command {
	var (
		body   bodyFlags
		input  apiclient.UserInput
		active bool
	)
	use, short, args := "create-user", "Create a user", cobra.NoArgs
	if verb == "update-user" {
		use, short, args = "update-user <id>", "Update a user", cobra.ExactArgs(1)
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			raw, err := readBody(cmd, body.data, body.file)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("active") {
				input.IsActive = &active
			}
			var payload any = input
			if raw != nil {
				payload = raw
			}

			var env apiclient.Envelope
			if verb == "update-user" {
				env, err = a.API.Admin.UpdateUser(cmd.Context(), args[0], payload, a.Token())
			} else {
				env, err = a.API.Admin.CreateUser(cmd.Context(), payload, a.Token())
			}
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
	body.register(cmd)
	f := cmd.Flags()
	f.StringVar(&input.Username, "username", "", "Username")
	f.StringVar(&input.Email, "email", "", "Email address")
	f.StringVar(&input.Password, "password", "", "Initial password")
	f.Int64Var(&input.RoleID, "role-id", 0, "Role id")
	f.BoolVar(&active, "active", false, "Whether the account is active")
	return cmd
}

func (c *cli) adminSetRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <user-id> <role-id>",
		Short: "Change a user's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			roleID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("role id %q: %w", args[1], err)
			}
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			env, err := a.API.Admin.UpdateUserRole(cmd.Context(), args[0], roleID, a.Token())
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
}

func (c *cli) adminSetActiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-active <user-id> <true|false>",
		Short: "Activate or deactivate a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("active %q: %w", args[1], err)
			}
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			env, err := a.API.Admin.SetUserActive(cmd.Context(), args[0], active, a.Token())
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
}

func (c *cli) adminOverrideStatusCmd() *cobra.Command {
	var status, reason string
	cmd := &cobra.Command{
		Use:   "override-status <resource-id>",
		Short: "Force a resource into a status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			env, err := a.API.Admin.OverrideResourceStatus(cmd.Context(), args[0], status, reason, a.Token())
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "New status")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded with the override")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

func (c *cli) adminApplicationsCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "applications",
		Short: "List fellow applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			env, err := a.API.Admin.FellowApplications(cmd.Context(), a.Token(), status)
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Filter by application status")
	return cmd
}

// adminDecideCmd builds approve and reject for fellow applications.
func (c *cli) adminDecideCmd(verb string) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <application-id>",
		Short: strings.ToUpper(verb[:1]) + verb[1:] + " a fellow application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			decide := a.API.Admin.RejectFellowApplication
			if verb == "approve" {
				decide = a.API.Admin.ApproveFellowApplication
			}
			env, err := decide(cmd.Context(), args[0], a.Token())
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
}
