package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/exp/slog"

	"blogcanvas/internal/domain/geocode"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "blogcanvas-geocoder/1.0"
	DefaultTimeout   = 10 * time.Second

	maxResponseBytes = 1 << 20
)

// Options configures the Nominatim client. Zero fields take the defaults.
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Nominatim resolves queries against an OpenStreetMap Nominatim instance.
type Nominatim struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
}

var _ geocode.Provider = (*Nominatim)(nil)

func NewNominatim(opts Options, log *slog.Logger) *Nominatim {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Nominatim{
		baseURL:    opts.BaseURL,
		userAgent:  opts.UserAgent,
		httpClient: &http.Client{Timeout: opts.Timeout},
		log:        log.With("adapter", "nominatim"),
	}
}

type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Search calls /search with format=jsonv2.
func (n *Nominatim) Search(ctx context.Context, query string, limit int) ([]geocode.Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", strconv.Itoa(limit))
	reqURL := n.baseURL + "/search?" + params.Encode()

	n.log.Debug("nominatim request", "query", query, "limit", limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("nominatim: create request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: nominatim: %v", geocode.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: nominatim: unexpected status %d", geocode.ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: nominatim: read body: %v", geocode.ErrUpstream, err)
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("%w: nominatim: decode json: %v", geocode.ErrUpstream, err)
	}

	places := make([]geocode.Place, 0, len(results))
	for _, r := range results {
		lat, errLat := strconv.ParseFloat(r.Lat, 64)
		lon, errLon := strconv.ParseFloat(r.Lon, 64)
		if errLat != nil || errLon != nil {
			n.log.Warn("nominatim: skipping result with bad coordinates", "name", r.DisplayName)
			continue
		}
		places = append(places, geocode.Place{Name: r.DisplayName, Lat: lat, Lon: lon})
	}

	n.log.Debug("nominatim response", "query", query, "results", len(places))
	return places, nil
}
