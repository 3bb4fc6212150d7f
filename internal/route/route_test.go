package route_test

import (
	"testing"

	"github.com/d9705996/hubclient/internal/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		path   string
		page   route.Page
		params map[string]string
	}{
		{"/", route.Home, map[string]string{}},
		{"", route.Home, map[string]string{}},
		{"/home", route.Home, map[string]string{}},
		{"/signup", route.SignUp, map[string]string{}},
		{"/signin", route.SignIn, map[string]string{}},
		{"/activate", route.Activate, map[string]string{}},
		{"/submit", route.Submit, map[string]string{}},
		{"/resources/intro-to-x", route.Resource, map[string]string{"slug": "intro-to-x"}},
		{"/resources/a/b", route.Resource, map[string]string{"slug": "a/b"}},
		{"/resources/", route.Home, map[string]string{}},
		{"/resources", route.Home, map[string]string{}},
		{"/dashboard/reviewer", route.ReviewerDashboard, map[string]string{}},
		{"/dashboard/reviewer/", route.ReviewerDashboard, map[string]string{}},
		{"/dashboard", route.Home, map[string]string{}},
		{"/unknown/path", route.Home, map[string]string{}},
		{"/signup/", route.Home, map[string]string{}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := route.Parse(tt.path)
			assert.Equal(t, tt.page, got.Page)
			assert.Equal(t, tt.params, got.Params)
		})
	}
}

func TestPath_RoundTrip(t *testing.T) {
	for _, p := range []string{
		"/", "/signup", "/signin", "/activate", "/submit", "/dashboard/reviewer",
		"/resources/intro-to-x", "/resources/a%20b", "/resources/a/b", "/resources/caf%C3%A9",
	} {
		r := route.Parse(p)
		assert.Equal(t, p, route.Path(r), "path %s", p)
		assert.True(t, r.Equal(route.Parse(route.Path(r))))
	}
}

func TestNavigator_NavigateTo(t *testing.T) {
	n := route.NewNavigator("/", nil)
	var seen []route.Page
	unsub := n.Subscribe(func(r route.Route) { seen = append(seen, r.Page) })
	defer unsub()

	got := n.NavigateTo("signup")
	assert.Equal(t, route.SignUp, got.Page)
	assert.Equal(t, "/signup", n.Location())
	assert.Equal(t, 2, n.Len())

	n.NavigateTo("/resources/go-basics?tab=lessons#top")
	assert.Equal(t, route.Resource, n.Current().Page)
	assert.Equal(t, "go-basics", n.Current().Param("slug"))

	assert.Equal(t, []route.Page{route.Home, route.SignUp, route.Resource}, seen)
}

func TestNavigator_HandleIntent(t *testing.T) {
	n := route.NewNavigator("/", nil)

	handled := n.HandleIntent(route.Link{Href: "/submit"})
	require.True(t, handled)
	assert.Equal(t, route.Submit, n.Current().Page)
	assert.Equal(t, 2, n.Len())

	passthrough := []route.Link{
		{Href: ""},
		{Href: "https://example.com/submit"},
		{Href: "http://example.com"},
		{Href: "//cdn.example.com/x"},
		{Href: "/signin", Target: "_blank"},
		{Href: "signin"},
		{Href: "#section"},
	}
	for _, l := range passthrough {
		assert.False(t, n.HandleIntent(l), "href %q target %q", l.Href, l.Target)
	}
	assert.Equal(t, 2, n.Len())
	assert.Equal(t, route.Submit, n.Current().Page)
}

func TestNavigator_BackForward(t *testing.T) {
	n := route.NewNavigator("/signin", nil)
	n.NavigateTo("/dashboard/reviewer")
	n.NavigateTo("/resources/abc")

	require.True(t, n.Back())
	assert.Equal(t, route.ReviewerDashboard, n.Current().Page)
	require.True(t, n.Back())
	assert.Equal(t, route.SignIn, n.Current().Page)
	assert.False(t, n.Back())

	require.True(t, n.Forward())
	assert.Equal(t, route.ReviewerDashboard, n.Current().Page)

	// Pushing after going back appends; nothing is discarded.
	n.NavigateTo("/activate")
	assert.Equal(t, 4, n.Len())
	assert.False(t, n.Forward())
	require.True(t, n.Back())
	assert.Equal(t, route.Resource, n.Current().Page)
}

func TestNewNavigator_InitialRoute(t *testing.T) {
	n := route.NewNavigator("/resources/x", nil)
	assert.Equal(t, route.Resource, n.Current().Page)
	assert.Equal(t, 1, n.Len())

	n = route.NewNavigator("", nil)
	assert.Equal(t, route.Home, n.Current().Page)
	assert.Equal(t, "/", n.Location())
}

func TestNavigator_SlugStaysEscaped(t *testing.T) {
	n := route.NewNavigator("/", nil)
	r := n.NavigateTo("/resources/a b")
	assert.Equal(t, "a%20b", r.Param("slug"))
	assert.Equal(t, "/resources/a%20b", route.Path(r))
	assert.True(t, r.Equal(route.Parse(route.Path(r))))
}
