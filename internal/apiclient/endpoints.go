package apiclient

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config locates the catalog API. Every request the web server makes is
// resolved from one Config.
type Config struct {
	BaseURL string        // e.g. http://localhost:8000
	APIPath string        // e.g. /api
	Timeout time.Duration // 0 means no client-side timeout
}

// Endpoints builds absolute URLs for the catalog API.
type Endpoints struct {
	base string
	api  string
}

// NewEndpoints normalises cfg into an endpoint resolver.
func NewEndpoints(cfg Config) Endpoints {
	base := strings.TrimRight(cfg.BaseURL, "/")
	path := "/" + strings.Trim(cfg.APIPath, "/")
	if path == "/" {
		path = ""
	}
	return Endpoints{base: base, api: base + path}
}

// Root is the reachability probe target.
func (e Endpoints) Root() string { return e.base + "/" }

func (e Endpoints) Accounts() string { return e.api + "/accounts/" }

func (e Endpoints) Account(id int64) string {
	return fmt.Sprintf("%s/accounts/%d/", e.api, id)
}

func (e Endpoints) ContactLink() string { return e.api + "/whatsapp-link/" }

func (e Endpoints) VerifyAdmin(token string) string {
	return e.api + "/verify-admin/" + url.PathEscape(token) + "/"
}
