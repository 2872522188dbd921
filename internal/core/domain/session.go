package domain

// Session is the authenticated state held for a single device.
type Session struct {
	AccessToken     string `json:"-"`
	RefreshToken    string `json:"-"`
	UserName        string `json:"user"`
	Role            Role   `json:"role"`
	IsAuthenticated bool   `json:"authenticated"`
}

// Credentials is what a successful login or refresh hands back.
// RefreshToken is empty for refresh responses. RoleName is the upstream's
// role name as sent, empty when the answer carried none.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	UserName     string
	Role         Role
	RoleName     string
}

// BootState is the state of the per-device session bootstrap.
type BootState string

const (
	BootBootstrapping   BootState = "bootstrapping"
	BootAuthenticated   BootState = "authenticated"
	BootUnauthenticated BootState = "unauthenticated"
)

// Terminal reports whether the bootstrap has finished.
func (s BootState) Terminal() bool {
	return s == BootAuthenticated || s == BootUnauthenticated
}
