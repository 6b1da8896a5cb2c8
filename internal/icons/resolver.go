package icons

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/five82/craftbook/internal/logging"
)

// ErrNotFound reports a texture ID the icon site could not name.
var ErrNotFound = errors.New("icon not found")

const (
	defaultResolverBase = "https://www.wowhead.com"
	defaultInterval     = 200 * time.Millisecond
)

// Resolver discovers icon names by following the icon site's
// /icon=<id> redirect to its canonical /icon=<id>/<name> page.
type Resolver struct {
	base     string
	http     *http.Client
	interval time.Duration
	log      *zap.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithBaseURL points the resolver at another host.
func WithBaseURL(base string) ResolverOption {
	return func(r *Resolver) { r.base = strings.TrimRight(base, "/") }
}

// WithInterval sets the pause between consecutive lookups.
func WithInterval(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.interval = d }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) ResolverOption {
	return func(r *Resolver) { r.http = c }
}

// NewResolver builds a Resolver.
func NewResolver(log *zap.Logger, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		base:     defaultResolverBase,
		http:     &http.Client{Timeout: 15 * time.Second},
		interval: defaultInterval,
		log:      logging.OrNop(log),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the icon name for one texture ID.
func (r *Resolver) Resolve(ctx context.Context, id int) (string, error) {
	endpoint := r.base + "/icon=" + strconv.Itoa(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "craftbook/0.1")

	resp, err := r.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("texture %d: status %d: %w", id, resp.StatusCode, ErrNotFound)
	}
	name := nameFromPath(resp.Request.URL.Path)
	if name == "" {
		return "", fmt.Errorf("texture %d: %w", id, ErrNotFound)
	}
	return name, nil
}

// Result is the outcome of one lookup in ResolveAll.
type Result struct {
	ID   int
	Name string
	Err  error
}

// ResolveAll resolves ids in order, pausing between requests. Each outcome
// is passed to report when it is non-nil. The returned map holds the
// successful lookups. Cancelling ctx stops the run and returns ctx.Err().
func (r *Resolver) ResolveAll(ctx context.Context, ids []int, report func(Result)) (map[int]string, error) {
	found := make(map[int]string)
	for i, id := range ids {
		if i > 0 && r.interval > 0 {
			timer := time.NewTimer(r.interval)
			select {
			case <-ctx.Done():
				timer.Stop()
				return found, ctx.Err()
			case <-timer.C:
			}
		}

		name, err := r.Resolve(ctx, id)
		if ctx.Err() != nil {
			return found, ctx.Err()
		}
		if err != nil {
			r.log.Warn("icon lookup failed", zap.Int("texture_id", id), zap.Error(err))
		} else {
			found[id] = name
			r.log.Debug("icon resolved", zap.Int("texture_id", id), zap.String("icon", name))
		}
		if report != nil {
			report(Result{ID: id, Name: name, Err: err})
		}
	}
	return found, nil
}

// nameFromPath extracts the icon name from /icon=<id>/<slug>. The slug's
// dashes become underscores.
func nameFromPath(p string) string {
	dir, slug := path.Split(strings.TrimRight(p, "/"))
	if slug == "" || strings.HasPrefix(slug, "icon=") || !strings.Contains(dir, "/icon=") {
		return ""
	}
	return strings.ReplaceAll(slug, "-", "_")
}
