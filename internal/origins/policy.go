package origins

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

// Policy is the set of browser origins allowed to call the API with credentials. It is built
// once at startup and never modified, so it is safe to share between requests.
type Policy struct {
	exact    map[string]struct{}
	patterns []*regexp.Regexp
}

// NewPolicy compiles patterns; each must match the whole Origin header value.
func NewPolicy(allowed []string, patterns []string) (*Policy, error) {
	p := &Policy{exact: make(map[string]struct{}, len(allowed))}

	for _, origin := range allowed {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "" {
			continue
		}
		p.exact[origin] = struct{}{}
	}

	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		re, err := regexp.Compile(anchor(pattern))
		if err != nil {
			return nil, fmt.Errorf("origins: invalid pattern %q: %w", pattern, err)
		}
		p.patterns = append(p.patterns, re)
	}

	return p, nil
}

func anchor(pattern string) string {
	if !strings.HasPrefix(pattern, "^") {
		pattern = "^" + pattern
	}
	if !strings.HasSuffix(pattern, "$") {
		pattern += "$"
	}
	return pattern
}

func (p *Policy) Allowed(origin string) bool {
	if origin == "" {
		return false
	}
	if _, ok := p.exact[origin]; ok {
		return true
	}
	for _, re := range p.patterns {
		if re.MatchString(origin) {
			return true
		}
	}
	return false
}

// Handler returns the CORS middleware for the policy. Preflight requests are answered with
// 204 and never reach the wrapped handler.
func (p *Policy) Handler(log *logrus.Logger) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			if p.Allowed(origin) {
				return true
			}
			log.WithFields(logrus.Fields{
				"origin": origin,
				"path":   r.URL.Path,
			}).Debug("Origins.Handler.blocked")
			return false
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials:   true,
		MaxAge:             300,
		OptionsPassthrough: true,
	})

	return func(next http.Handler) http.Handler {
		return c.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPreflight(r) {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
}
