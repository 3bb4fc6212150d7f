package main

import (
	"github.com/spf13/cobra"

	"github.com/d9705996/hubclient/internal/route"
)

type routeView struct {
	Input  string            `json:"input" yaml:"input"`
	Page   route.Page        `json:"page" yaml:"page"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Path   string            `json:"path" yaml:"path"`
}

func newRouteView(input string, r route.Route) routeView {
	return routeView{Input: input, Page: r.Page, Params: r.Params, Path: route.Path(r)}
}

// walkStep is one navigation in a walk.
type walkStep struct {
	routeView `yaml:",inline"`
	Handled   bool   `json:"handled" yaml:"handled"`
	Location  string `json:"location" yaml:"location"`
	History   int    `json:"history" yaml:"history"`
}

type walkResult struct {
	Steps     []walkStep   `json:"steps" yaml:"steps"`
	Published []route.Page `json:"published" yaml:"published"`
}

func (c *cli) routeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Inspect client-side routing",
	}
	cmd.AddCommand(c.routeResolveCmd(), c.routeWalkCmd())
	return cmd
}

func (c *cli) routeResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <path>...",
		Short: "Show the page each pathname maps to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			views := make([]routeView, 0, len(args))
			for _, p := range args {
				views = append(views, newRouteView(p, route.Parse(p)))
			}
			return c.render(views)
		},
	}
}

func (c *cli) routeWalkCmd() *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "walk <href|:back|:forward>...",
		Short: "Feed link clicks through the navigator",
		Long: `Feed each href through the navigation-intent handler as if it were
a clicked link, starting from the navigator's initial location. The
pseudo-hrefs :back and :forward move through history instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			nav := a.Nav

			var res walkResult
			unsubscribe := nav.Subscribe(func(r route.Route) {
				res.Published = append(res.Published, r.Page)
			})
			defer unsubscribe()

			for _, href := range args {
				var handled bool
				switch href {
				case ":back":
					handled = nav.Back()
				case ":forward":
					handled = nav.Forward()
				default:
					handled = nav.HandleIntent(route.Link{Href: href, Target: target})
				}
				res.Steps = append(res.Steps, walkStep{
					routeView: newRouteView(href, nav.Current()),
					Handled:   handled,
					Location:  nav.Location(),
					History:   nav.Len(),
				})
			}
			return c.render(res)
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "Link target attribute applied to every href")
	return cmd
}
