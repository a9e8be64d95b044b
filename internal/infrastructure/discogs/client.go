// Package discogs implements lookup.Searcher on top of the Discogs REST API.
package discogs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/exp/slog"

	"vinylscan/internal/domain/lookup"
)

const (
	DefaultBaseURL = "https://api.discogs.com"
	webBaseURL     = "https://www.discogs.com"
	maxErrorBody   = 512
)

// disambiguation matches the " (2)" suffix Discogs appends to duplicate artist names.
var disambiguation = regexp.MustCompile(`\s+\(\d+\)$`)

type Config struct {
	BaseURL   string
	Token     string
	UserAgent string
	Timeout   time.Duration
}

type Client struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

func NewClient(cfg Config, log *slog.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		log:       log.With(slog.String("component", "discogs_client")),
		baseURL:   baseURL,
		token:     cfg.Token,
		userAgent: cfg.UserAgent,
	}
}

// Close releases idle connections.
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}

// Search finds the first release for the barcode and enriches it with the
// release and, when present, master details.
func (c *Client) Search(ctx context.Context, barcode string) (*lookup.RawMatch, error) {
	q := url.Values{}
	q.Set("barcode", barcode)
	q.Set("type", "release")

	var found searchResponse
	if err := c.get(ctx, "/database/search?"+q.Encode(), &found); err != nil {
		return nil, fmt.Errorf("search barcode %s: %w", barcode, err)
	}

	if len(found.Results) == 0 {
		return nil, nil
	}
	hit := found.Results[0]

	var rel release
	if err := c.get(ctx, "/releases/"+strconv.Itoa(hit.ID), &rel); err != nil {
		return nil, fmt.Errorf("get release %d: %w", hit.ID, err)
	}

	var mst *master
	if rel.MasterID != 0 {
		mst = &master{}
		if err := c.get(ctx, "/masters/"+strconv.Itoa(rel.MasterID), mst); err != nil {
			return nil, fmt.Errorf("get master %d: %w", rel.MasterID, err)
		}
	}

	c.log.Debug("barcode resolved",
		slog.String("barcode", barcode),
		slog.Int("release_id", hit.ID),
		slog.Int("master_id", rel.MasterID),
	)

	return toMatch(hit, rel, mst), nil
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.discogs.v2.discogs+json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Discogs token="+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func toMatch(hit searchResult, rel release, mst *master) *lookup.RawMatch {
	match := &lookup.RawMatch{
		Title:     hit.Title,
		Album:     rel.Title,
		Format:    hit.Format,
		Genres:    firstNonEmpty(rel.Genres, hit.Genre),
		Styles:    firstNonEmpty(rel.Styles, hit.Style),
		Musicians: musicians(rel.ExtraArtists),
	}

	names := make([]string, 0, len(rel.Artists))
	for _, a := range rel.Artists {
		names = append(names, cleanName(a.Name))
	}
	match.Artist = strings.Join(names, ", ")

	switch {
	case len(rel.Labels) > 0:
		match.Label = &rel.Labels[0].Name
	case len(hit.Label) > 0:
		match.Label = &hit.Label[0]
	}

	releaseURL := rel.URI
	if releaseURL == "" && hit.URI != "" {
		releaseURL = webBaseURL + hit.URI
	}
	if releaseURL != "" {
		match.URI = &releaseURL
		match.ReleaseURL = &releaseURL
	}

	if rel.Year > 0 {
		year := rel.Year
		match.Year = &year
		match.ReleaseYear = &year
	}

	isMaster := mst != nil
	match.IsMaster = &isMaster

	if mst != nil {
		if mst.URI != "" {
			match.MasterURL = &mst.URI
		}
		if mst.Year > 0 {
			year := mst.Year
			match.Year = &year
		}
	}

	return match
}

func musicians(credits []artist) []string {
	out := make([]string, 0, len(credits))
	for _, c := range credits {
		name := cleanName(c.Name)
		if name == "" {
			continue
		}
		if c.Role != "" {
			name += " (" + c.Role + ")"
		}
		out = append(out, name)
	}
	return out
}

func cleanName(name string) string {
	return disambiguation.ReplaceAllString(strings.TrimSpace(name), "")
}

func firstNonEmpty(a, b []string) []string {
	if len(a) > 0 {
		return a
	}
	return b
}
