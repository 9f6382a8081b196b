package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"nmai/sunrise-service/internal/providers"
)

const (
	statusOK   = "OK"
	dateLayout = "2006-01-02"
)

var ErrInvalidDate = errors.New("date is invalid")

type GeocodeResponse struct {
	Results json.RawMessage `json:"results"`
	Status  string          `json:"status"`
}

type TimezoneResponse struct {
	Status  string          `json:"status"`
	Results json.RawMessage `json:"results"`
}

type GatewayService interface {
	Geocode(ctx context.Context, address string) (GeocodeResponse, error)
	Timezone(ctx context.Context, lat, lng string) (TimezoneResponse, error)
	SunriseSunset(ctx context.Context, lat, lng, date string) (json.RawMessage, error)
}

type gatewayService struct {
	upstream providers.UpstreamService
}

func NewGatewayService(upstream providers.UpstreamService) GatewayService {
	return &gatewayService{
		upstream: upstream,
	}
}

// Geocode looks the address up and renames every lon key to lng. An upstream
// 404 is how the provider says "no match", so it maps to an empty result set.
func (s *gatewayService) Geocode(ctx context.Context, address string) (GeocodeResponse, error) {
	body, err := s.upstream.Geocode(ctx, address)
	if err != nil {
		var statusErr *providers.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return emptyGeocodeResponse(), nil
		}
		return GeocodeResponse{}, fmt.Errorf("geocode lookup failed: %w", err)
	}

	if isEmptyResult(body) {
		return emptyGeocodeResponse(), nil
	}

	return GeocodeResponse{
		Results: renameLonToLng(body),
		Status:  statusOK,
	}, nil
}

func (s *gatewayService) Timezone(ctx context.Context, lat, lng string) (TimezoneResponse, error) {
	body, err := s.upstream.Timezone(ctx, lat, lng)
	if err != nil {
		return TimezoneResponse{}, fmt.Errorf("timezone lookup failed: %w", err)
	}

	return TimezoneResponse{
		Status:  statusOK,
		Results: body,
	}, nil
}

func (s *gatewayService) SunriseSunset(ctx context.Context, lat, lng, date string) (json.RawMessage, error) {
	if date != "" && !ValidDate(date) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	body, err := s.upstream.SunriseSunset(ctx, lat, lng, date)
	if err != nil {
		return nil, fmt.Errorf("sunrise-sunset lookup failed: %w", err)
	}

	return body, nil
}

// ValidDate reports whether date is a zero-padded YYYY-MM-DD calendar date.
func ValidDate(date string) bool {
	_, err := time.Parse(dateLayout, date)
	return err == nil
}

func emptyGeocodeResponse() GeocodeResponse {
	return GeocodeResponse{
		Results: json.RawMessage(`[]`),
		Status:  statusOK,
	}
}
