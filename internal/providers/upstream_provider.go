package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	ProviderLocationIQ    = "locationiq"
	ProviderGeoNames      = "geonames"
	ProviderSunriseSunset = "sunrise-sunset"

	maxBodySize = 10 << 20
)

var (
	ErrTimeout       = errors.New("upstream request timed out")
	ErrMalformedJSON = errors.New("upstream returned malformed JSON")
)

// StatusError reports a non-2xx answer from a provider.
type StatusError struct {
	Provider   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status code: %d", e.Provider, e.StatusCode)
}

// UpstreamService issues one GET per call against a third-party provider and
// returns the raw JSON body. Bodies are validated but never reshaped here.
type UpstreamService interface {
	Geocode(ctx context.Context, address string) ([]byte, error)
	Timezone(ctx context.Context, lat, lng string) ([]byte, error)
	SunriseSunset(ctx context.Context, lat, lng, date string) ([]byte, error)
	GetHTTPClient() *http.Client
}

type Options struct {
	LocationIQURL    string
	LocationIQAPIKey string
	GeoNamesURL      string
	GeoNamesUsername string
	SunriseSunsetURL string
	Timeout          time.Duration
	// Transport defaults to an otelhttp-instrumented http.DefaultTransport.
	Transport http.RoundTripper
}

type upstreamService struct {
	locationIQURL    string
	locationIQAPIKey string
	geoNamesURL      string
	geoNamesUsername string
	sunriseSunsetURL string
	client           *http.Client
}

func NewUpstreamService(opts Options) UpstreamService {
	transport := opts.Transport
	if transport == nil {
		transport = otelhttp.NewTransport(http.DefaultTransport)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &upstreamService{
		locationIQURL:    opts.LocationIQURL,
		locationIQAPIKey: opts.LocationIQAPIKey,
		geoNamesURL:      opts.GeoNamesURL,
		geoNamesUsername: opts.GeoNamesUsername,
		sunriseSunsetURL: opts.SunriseSunsetURL,
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (s *upstreamService) Geocode(ctx context.Context, address string) ([]byte, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("key", s.locationIQAPIKey)
	params.Set("format", "json")

	return s.get(ctx, ProviderLocationIQ, s.locationIQURL, params)
}

func (s *upstreamService) Timezone(ctx context.Context, lat, lng string) ([]byte, error) {
	params := url.Values{}
	params.Set("lat", lat)
	params.Set("lng", lng)
	params.Set("username", s.geoNamesUsername)

	return s.get(ctx, ProviderGeoNames, s.geoNamesURL, params)
}

func (s *upstreamService) SunriseSunset(ctx context.Context, lat, lng, date string) ([]byte, error) {
	params := url.Values{}
	params.Set("lat", lat)
	params.Set("lng", lng)
	params.Set("formatted", "0")
	if date != "" {
		params.Set("date", date)
	}

	return s.get(ctx, ProviderSunriseSunset, s.sunriseSunsetURL, params)
}

func (s *upstreamService) GetHTTPClient() *http.Client {
	return s.client
}

func (s *upstreamService) get(ctx context.Context, provider, baseURL string, params url.Values) ([]byte, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s has invalid base url: %w", provider, err)
	}

	query := u.Query()
	for key, values := range params {
		query[key] = values
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s request could not be built: %w", provider, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, wrapTransportError(provider, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, &StatusError{Provider: provider, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, wrapTransportError(provider, "response could not be read", err)
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%s: %w", provider, ErrMalformedJSON)
	}

	return body, nil
}

func wrapTransportError(provider, what string, err error) error {
	if isTimeout(err) {
		return fmt.Errorf("%s %s: %w: %w", provider, what, ErrTimeout, err)
	}
	return fmt.Errorf("%s %s: %w", provider, what, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
