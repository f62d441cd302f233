// Package feed downloads draw histories from the public lottery results
// API, one request per product, and assembles the raw multi-lottery
// document the partitioner consumes.
//
// The client keeps a tiny, explicit API with retry and exponential backoff,
// and respects context cancellation during both requests and backoff waits.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

// Config configures the feed client. Zero values get sensible defaults.
type Config struct {
	// BaseURL is the API root; each product is fetched from
	// <BaseURL>/<loteria>.
	BaseURL string

	// Timeout is the per-request timeout. Default 30s.
	Timeout time.Duration

	// MaxRetries is the number of retries after the initial attempt.
	// Default 3.
	MaxRetries int

	// InitialBackoff is the first retry's backoff; it doubles per retry up
	// to MaxBackoff. Defaults 500ms / 8s.
	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// Concurrency bounds the number of products fetched in parallel.
	// Default 3.
	Concurrency int
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = 500 * time.Millisecond
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = 8 * time.Second
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 3
	}
	return c
}

// Client fetches draw histories with retry/backoff.
type Client struct {
	cfg  Config
	http *http.Client

	// sleep is a test seam for backoff waits.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient builds a Client for the given config.
func NewClient(cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("feed: base URL must not be empty")
	}
	return &Client{
		cfg:   cfg,
		http:  &http.Client{Timeout: cfg.Timeout},
		sleep: sleepCtx,
	}, nil
}

// Fetch downloads the full draw history of one product. The API returns a
// JSON array of draw objects; numbers are kept as json.Number. Every record
// gets its loteria field set to the requested product when the API omits
// it.
func (c *Client) Fetch(ctx context.Context, loteria string) ([]records.Record, error) {
	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + loteria

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("feed: fetch %s: %w", loteria, err)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("feed: decode %s: %w", loteria, err)
	}

	out := make([]records.Record, 0, len(raw))
	for _, m := range raw {
		r := records.Record(m)
		if _, ok := r["loteria"]; !ok {
			r["loteria"] = loteria
		}
		out = append(out, r)
	}
	return out, nil
}

// FetchAll downloads every requested product with bounded concurrency and
// returns the combined document, ordered by product name then feed order.
func (c *Client) FetchAll(ctx context.Context, lotteries []string) ([]records.Record, error) {
	var (
		mu      sync.Mutex
		perName = make(map[string][]records.Record, len(lotteries))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)
	for _, name := range lotteries {
		name := name
		g.Go(func() error {
			recs, err := c.Fetch(gctx, name)
			if err != nil {
				return err
			}
			mu.Lock()
			perName[name] = recs
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(perName))
	for n := range perName {
		names = append(names, n)
	}
	sort.Strings(names)

	var out []records.Record
	for _, n := range names {
		out = append(out, perName[n]...)
	}
	return out, nil
}

// get performs one GET with retries. Responses with status >= 500 and
// transport errors are retried; 4xx is terminal.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	backoff := c.cfg.InitialBackoff
	var lastErr error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, backoff); err != nil {
				return nil, err
			}
			backoff *= 2
			if backoff > c.cfg.MaxBackoff {
				backoff = c.cfg.MaxBackoff
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			continue
		default:
			return nil, fmt.Errorf("status %d", resp.StatusCode)
		}
	}
	return nil, fmt.Errorf("retries exhausted: %w", lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
