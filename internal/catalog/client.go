package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/abelbrown/marquee/internal/config"
	"github.com/abelbrown/marquee/internal/logging"
)

// Cache stores raw response bodies keyed by request. Implementations decide
// expiry; a miss is reported with ok == false.
type Cache interface {
	Get(key string) (body []byte, ok bool)
	Put(key string, body []byte) error
}

// Client is a Source backed by the TMDB v3 REST API.
type Client struct {
	apiKey   string
	endpoint string
	language string
	client   *http.Client
	limiter  *rate.Limiter
	cb       *gobreaker.CircuitBreaker[[]byte]
	cache    Cache
	log      *log.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithCache enables the response cache.
func WithCache(c Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(cl *Client) { cl.client = hc }
}

// NewClient builds a Client from explicit configuration. The API key is
// never read from the environment here.
func NewClient(cfg config.CatalogConfig, opts ...Option) *Client {
	c := &Client{
		apiKey:   cfg.APIKey,
		endpoint: strings.TrimRight(cfg.BaseURL, "/"),
		language: cfg.Language,
		client:   &http.Client{Timeout: cfg.Timeout},
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		log:      logging.WithPrefix("catalog"),
	}
	c.cb = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "tmdb",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A missing movie is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn("circuit breaker", "name", name, "from", from.String(), "to", to.String())
		},
	})
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListByCategory fetches one page of a fixed listing.
func (c *Client) ListByCategory(ctx context.Context, category Category, page int) (*Page, error) {
	var out Page
	if err := c.get(ctx, category.endpoint(), pageParams(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByGenre fetches one page of movies in a genre, most popular first.
func (c *Client) ListByGenre(ctx context.Context, genreID int, page int) (*Page, error) {
	params := pageParams(page)
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("sort_by", "popularity.desc")

	var out Page
	if err := c.get(ctx, "/discover/movie", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search fetches one page of title matches.
func (c *Client) Search(ctx context.Context, query string, page int) (*Page, error) {
	params := pageParams(page)
	params.Set("query", query)
	params.Set("include_adult", "false")

	var out Page
	if err := c.get(ctx, "/search/movie", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Detail fetches a movie with its videos, credits and similar titles in one
// round trip.
func (c *Client) Detail(ctx context.Context, id int) (*Detail, error) {
	params := url.Values{}
	params.Set("append_to_response", "videos,credits,similar")

	var out Detail
	if err := c.get(ctx, "/movie/"+strconv.Itoa(id), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Genres lists every movie genre.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var out genreList
	if err := c.get(ctx, "/genre/movie/list", url.Values{}, &out); err != nil {
		return nil, err
	}
	return out.Genres, nil
}

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	return v
}

// get performs a cached, rate-limited, breaker-guarded GET and decodes the
// JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if c.language != "" {
		params.Set("language", c.language)
	}
	// Cache key excludes the credential.
	key := path + "?" + params.Encode()

	if c.cache != nil {
		if body, ok := c.cache.Get(key); ok {
			if err := json.Unmarshal(body, out); err == nil {
				c.log.Debug("cache hit", "key", key)
				return nil
			}
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %s: rate limiter: %w", ErrFetch, path, err)
	}

	params.Set("api_key", c.apiKey)
	reqURL := c.endpoint + path + "?" + params.Encode()

	start := time.Now()
	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.do(ctx, path, reqURL)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.log.Warn("request rejected", "path", path, "err", err)
			return fmt.Errorf("%w: %s: %w", ErrFetch, path, ErrCircuitOpen)
		}
		c.log.Warn("request failed", "path", path, "err", err)
		return err
	}
	c.log.Debug("fetched", "path", path, "bytes", len(body), "took", time.Since(start))

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: decode: %w", ErrFetch, path, err)
	}

	if c.cache != nil {
		if err := c.cache.Put(key, body); err != nil {
			c.log.Warn("cache write failed", "key", key, "err", err)
		}
	}
	return nil
}

func (c *Client) do(ctx context.Context, path, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %s: cancelled: %w", ErrFetch, path, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read: %w", ErrFetch, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, path, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %s: HTTP %d", ErrFetch, path, resp.StatusCode)
	}
	return body, nil
}
