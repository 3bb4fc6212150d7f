package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/d9705996/hubclient/internal/app"
)

// sessionView is what whoami and signin print.
type sessionView struct {
	Authenticated bool   `json:"authenticated" yaml:"authenticated"`
	Expiry        string `json:"expiry,omitempty" yaml:"expiry,omitempty"`
	User          any    `json:"user,omitempty" yaml:"user,omitempty"`
}

func (c *cli) signupCmd() *cobra.Command {
	var username, email, password string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account; an activation token is emailed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			env, err := a.API.Users.Register(cmd.Context(), username, email, password)
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	for _, f := range []string{"username", "email", "password"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func (c *cli) activateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate <token>",
		Short: "Activate an account with the emailed token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			env, err := a.API.Users.Activate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
}

func (c *cli) signinCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Authenticate and store the session locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			env, err := a.SignIn(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			view := sessionView{
				Authenticated: a.Session.IsAuthenticated(),
				Expiry:        env.String("authentication_token", "expiry"),
			}
			if _, err := a.Session.DecodeUser(&view.User); err != nil {
				return err
			}
			return c.render(view)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) signoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			if err := a.SignOut(); err != nil {
				return err
			}
			return c.render(sessionView{})
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			view := sessionView{Authenticated: a.Session.IsAuthenticated()}
			if _, err := a.Session.DecodeUser(&view.User); err != nil {
				return err
			}
			if !remote {
				return c.render(view)
			}

			id, err := storedUserField(a, "id")
			if err != nil {
				return err
			}
			env, err := a.API.Users.Get(cmd.Context(), id, a.Token())
			if err != nil {
				return err
			}
			return c.render(env)
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "Fetch the stored user from the API")
	return cmd
}

// storedUserField returns one member of the stored user as text. Strings
// are returned decoded and numbers in their JSON spelling; any other kind
// of value is an error.
func storedUserField(a *app.App, name string) (string, error) {
	var user map[string]json.RawMessage
	ok, err := a.Session.DecodeUser(&user)
	if err != nil {
		return "", err
	}
	raw, found := user[name]
	if !ok || !found {
		return "", fmt.Errorf("stored user has no %s; sign in again", name)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", fmt.Errorf("decode stored user %s: %w", name, err)
	}
	switch v := v.(type) {
	case string:
		if v != "" {
			return v, nil
		}
	case json.Number:
		return v.String(), nil
	case nil:
	default:
		return "", fmt.Errorf("stored user %s is a %T, want a string or number", name, v)
	}
	return "", fmt.Errorf("stored user has no %s; sign in again", name)
}
