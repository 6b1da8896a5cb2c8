package sheet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/five82/craftbook/internal/logging"
)

// ErrStatus reports a non-success HTTP status from the sheet host.
var ErrStatus = errors.New("unexpected status")

// Loader fetches the sheet rows.
type Loader interface {
	Fetch(ctx context.Context) ([]Row, error)
}

// Ensure Client implements Loader at compile time.
var _ Loader = (*Client)(nil)

// Client loads the sheet from an HTTP(S) URL or a local file path.
type Client struct {
	source    string
	http      *http.Client
	userAgent string
	log       *zap.Logger
}

const (
	defaultUserAgent = "craftbook/0.1"
	defaultTimeout   = 15 * time.Second
)

// NewClient builds a Client for source. A non-positive timeout uses the default.
func NewClient(source string, timeout time.Duration, log *zap.Logger) (*Client, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("sheet source is empty")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		source:    source,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
		log:       logging.OrNop(log),
	}, nil
}

// Source returns the URL or path the client reads.
func (c *Client) Source() string {
	return c.source
}

// Fetch downloads and parses the sheet.
func (c *Client) Fetch(ctx context.Context) ([]Row, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	start := time.Now()
	c.log.Info("fetching sheet", zap.String("source", c.source))

	var (
		rows []Row
		err  error
	)
	if isRemote(c.source) {
		rows, err = c.fetchHTTP(ctx)
	} else {
		rows, err = c.fetchFile()
	}
	if err != nil {
		c.log.Error("sheet fetch failed", zap.String("source", c.source), zap.Error(err))
		return nil, err
	}

	c.log.Info("sheet loaded",
		zap.Int("rows", len(rows)),
		zap.Duration("elapsed", time.Since(start)))
	return rows, nil
}

func (c *Client) fetchHTTP(ctx context.Context) ([]Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.source, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("sheet returned status %d: %w", resp.StatusCode, ErrStatus)
	}
	rows, err := Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse sheet: %w", err)
	}
	return rows, nil
}

func (c *Client) fetchFile() ([]Row, error) {
	path := strings.TrimPrefix(c.source, "file://")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	defer file.Close()

	rows, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse sheet: %w", err)
	}
	return rows, nil
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
