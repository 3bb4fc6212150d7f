package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/d9705996/hubclient/internal/apiclient"
	"github.com/d9705996/hubclient/internal/app"
)

// bodyFlags are the --data/--file pair shared by commands that send JSON.
type bodyFlags struct {
	data string
	file string
}

func (b *bodyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&b.data, "data", "", "Request body as inline JSON")
	cmd.Flags().StringVarP(&b.file, "file", "f", "", `Request body from a JSON file ("-" for stdin)`)
}

func (c *cli) resourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resources",
		Aliases: []string{"resource", "res"},
		Short:   "List, view and manage resources",
	}
	cmd.AddCommand(
		c.resourcesListCmd(),
		c.resourcesGetCmd(),
		c.resourcesSlugCmd(),
		c.resourcesWriteCmd("create"),
		c.resourcesWriteCmd("update"),
		c.resourcesDeleteCmd(),
		c.resourcesMetricsCmd(),
	)
	return cmd
}

func (c *cli) resourcesListCmd() *cobra.Command {
	var q apiclient.ResourceQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resources; unset filters are not sent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			env, err := a.API.Resources.List(cmd.Context(), q.Filters())
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
	f := cmd.Flags()
	f.StringVar(&q.Status, "status", "", "Filter by status")
	f.StringVar(&q.Subject, "subject", "", "Filter by subject")
	f.StringVar(&q.GradeLevel, "grade-level", "", "Filter by grade level")
	f.IntVar(&q.Page, "page", 0, "Page number")
	f.IntVar(&q.PageSize, "page-size", 0, "Page size")
	f.StringVar(&q.Sort, "sort", "", "Sort key, prefix with - for descending")
	return cmd
}

func (c *cli) resourcesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one resource by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			env, err := a.API.Resources.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
}

func (c *cli) resourcesSlugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slug <slug>",
		Short: "Show one resource by slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			env, err := a.API.Resources.GetBySlug(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
}

// resourcesWriteCmd builds create and update. The body comes from
// --data/--file when given, otherwise from the field flags.
func (c *cli) resourcesWriteCmd(verb string) *cobra.Command {
	var (
		body  bodyFlags
		input apiclient.ResourceInput
	)
	use, short, args := "create", "Submit a new resource", cobra.NoArgs
	if verb == "update" {
		use, short, args = "update <id>", "Update a resource", cobra.ExactArgs(1)
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
			var payload any = input
			if raw != nil {
				payload = raw
			}

			var env apiclient.Envelope
			if verb == "update" {
				env, err = a.API.Resources.Update(cmd.Context(), args[0], payload, a.Token())
			} else {
				env, err = a.API.Resources.Create(cmd.Context(), payload, a.Token())
			}
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
	body.register(cmd)
	f := cmd.Flags()
	f.StringVar(&input.Title, "title", "", "Title")
	f.StringVar(&input.Category, "category", "", "Category")
	f.StringVar(&input.Summary, "summary", "", "Summary")
	f.StringVar(&input.DriveLink, "drive-link", "", "Drive link")
	f.StringVar(&input.PublishedURL, "published-url", "", "Published URL")
	f.StringVar(&input.Status, "status", "", "Status")
	f.StringSliceVar(&input.Subjects, "subject", nil, "Subject (repeatable)")
	f.StringSliceVar(&input.GradeLevels, "grade-level", nil, "Grade level (repeatable)")
	return cmd
}

func (c *cli) resourcesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			env, err := a.API.Resources.Delete(cmd.Context(), args[0], a.Token())
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
}

func (c *cli) resourcesMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show resource counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			env, err := a.API.Resources.Metrics(cmd.Context(), a.Token())
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
}

func (c *cli) reviewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Review submitted resources",
	}
	cmd.AddCommand(c.reviewsCreateCmd())
	return cmd
}

func (c *cli) reviewsCreateCmd() *cobra.Command {
	var in apiclient.ReviewInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a review decision",
		Long: `Record a review decision. The reviewer and role default to the
id and role_id of the signed-in user.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			if in.ReviewerID == 0 {
				if in.ReviewerID, err = storedUserInt(a, "id"); err != nil {
					return err
				}
			}
			if in.ReviewerRoleID == 0 {
				if in.ReviewerRoleID, err = storedUserInt(a, "role_id"); err != nil {
					return err
				}
			}
			env, err := a.API.Reviews.Create(cmd.Context(), in, a.Token())
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
	f := cmd.Flags()
	f.Int64Var(&in.ResourceID, "resource-id", 0, "Resource under review")
	f.Int64Var(&in.ReviewerID, "reviewer-id", 0, "Reviewer user id")
	f.Int64Var(&in.ReviewerRoleID, "reviewer-role-id", 0, "Reviewer role id")
	f.StringVar(&in.Decision, "decision", "", "Decision, e.g. approved or rejected")
	f.StringVar(&in.CommentSummary, "comment", "", "Comment summary")
	_ = cmd.MarkFlagRequired("resource-id")
	_ = cmd.MarkFlagRequired("decision")
	return cmd
}

func storedUserInt(a *app.App, name string) (int64, error) {
	v, err := storedUserField(a, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("stored user %s %q is not an integer", name, v)
	}
	return n, nil
}
