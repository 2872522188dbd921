// Package shell holds the navigation rules of the mobile app shell: which web
// app it loads, which links leave the embedded browser and which bottom tab a
// path selects.
package shell

import (
	"net/url"
	"strings"
)

const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"

	// AndroidDevURL reaches the host machine's dev server from the emulator.
	AndroidDevURL = "http://10.0.2.2:5173"
)

// Action tells the shell what to do with a link.
type Action string

const (
	ActionLoad     Action = "load"
	ActionExternal Action = "external"
)

// Tab is a bottom navigation tab.
type Tab struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

var Tabs = []Tab{
	{Key: "lines", Label: "Lines", Path: "/lines"},
	{Key: "customers", Label: "Customers", Path: "/customers"},
	{Key: "settings", Label: "Settings", Path: "/settings"},
}

var redirects = map[string]string{
	"/":          "/lines",
	"/dashboard": "/lines",
}

var tabless = map[string]bool{
	"/login":          true,
	"/create-company": true,
	"/create-admin":   true,
}

var externalSchemes = map[string]bool{
	"tel":    true,
	"mailto": true,
	"geo":    true,
}

// BaseURL picks the web app the shell loads. An explicit override wins;
// otherwise android uses the emulator dev server and anything else the public URL.
func BaseURL(override, platform, publicURL string) string {
	if override != "" {
		return override
	}
	if strings.EqualFold(platform, PlatformAndroid) {
		return AndroidDevURL
	}
	return publicURL
}

// Shell applies the link and tab rules against a fixed base URL.
type Shell struct {
	base     *url.URL
	platform string
}

func New(baseURL, platform string) (*Shell, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Shell{base: u, platform: strings.ToLower(platform)}, nil
}

func (s *Shell) BaseURL() string  { return s.base.String() }
func (s *Shell) Platform() string { return s.platform }

// Intercept decides whether raw stays in the embedded browser. Relative
// links and links to the base host load in place.
func (s *Shell) Intercept(raw string) Action {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ActionLoad
	}

	scheme := strings.ToLower(u.Scheme)
	if externalSchemes[scheme] {
		return ActionExternal
	}
	if (scheme == "http" || scheme == "https") && !strings.EqualFold(u.Hostname(), s.base.Hostname()) {
		return ActionExternal
	}
	return ActionLoad
}

// Decision is the shell's view of a path.
type Decision struct {
	Path       string `json:"path"`
	RedirectTo string `json:"redirectTo,omitempty"`
	ActiveTab  string `json:"activeTab,omitempty"`
	ShowTabs   bool   `json:"showTabs"`
}

// Route resolves redirects first, then the active tab of the final path.
func (s *Shell) Route(path string) Decision {
	if path == "" {
		path = "/"
	}
	d := Decision{Path: path}

	if to, ok := redirects[path]; ok {
		d.RedirectTo = to
		path = to
	}

	d.ShowTabs = !tabless[path]
	if !d.ShowTabs {
		return d
	}
	for _, tab := range Tabs {
		if path == tab.Path || strings.HasPrefix(path, tab.Path+"/") {
			d.ActiveTab = tab.Key
			break
		}
	}
	return d
}
