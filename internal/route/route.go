// Package route maps URL pathnames onto the pages of the single-page UI and
// tracks in-app navigation history.
package route

import (
	"net/url"
	"strings"
)

// Page identifies which view a Route selects.
type Page string

const (
	Home              Page = "home"
	SignUp            Page = "signup"
	SignIn            Page = "signin"
	Activate          Page = "activate"
	Submit            Page = "submit"
	Resource          Page = "resource"
	ReviewerDashboard Page = "reviewer-dashboard"
)

const (
	resourcesPrefix   = "/resources/"
	reviewerDashboard = "/dashboard/reviewer"
)

// simplePages are the literal single-segment page names.
var simplePages = map[string]Page{
	"signup":   SignUp,
	"signin":   SignIn,
	"activate": Activate,
	"submit":   Submit,
	"home":     Home,
}

// Route is the parsed form of the current location. Values are replaced on
// each navigation, never mutated. Params hold path segments as they appear
// in the escaped pathname.
type Route struct {
	Page   Page              `json:"page"`
	Params map[string]string `json:"params"`
}

// Param returns the named parameter, or "".
func (r Route) Param(name string) string {
	return r.Params[name]
}

// Equal reports whether two routes select the same page with the same params.
func (r Route) Equal(o Route) bool {
	if r.Page != o.Page || len(r.Params) != len(o.Params) {
		return false
	}
	for k, v := range r.Params {
		if ov, ok := o.Params[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

func newRoute(p Page) Route {
	return Route{Page: p, Params: map[string]string{}}
}

// Parse derives the Route for a pathname. Unknown paths resolve to Home.
func Parse(pathname string) Route {
	if strings.HasPrefix(pathname, resourcesPrefix) {
		if slug := pathname[len(resourcesPrefix):]; slug != "" {
			return Route{Page: Resource, Params: map[string]string{"slug": slug}}
		}
	}

	if pathname == reviewerDashboard || pathname == reviewerDashboard+"/" {
		return newRoute(ReviewerDashboard)
	}

	name := strings.TrimPrefix(pathname, "/")
	if name == "" {
		return newRoute(Home)
	}
	if p, ok := simplePages[name]; ok {
		return newRoute(p)
	}
	return newRoute(Home)
}

// Path builds the canonical pathname for r. It is the inverse of Parse:
// params are already escaped and are inserted verbatim.
func Path(r Route) string {
	switch r.Page {
	case Home, "":
		return "/"
	case Resource:
		return resourcesPrefix + r.Param("slug")
	case ReviewerDashboard:
		return reviewerDashboard
	default:
		return "/" + string(r.Page)
	}
}

// pathname extracts the still-escaped path component of a location,
// ignoring query and fragment.
func pathname(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		if i := strings.IndexAny(location, "?#"); i >= 0 {
			return location[:i]
		}
		return location
	}
	return u.EscapedPath()
}
