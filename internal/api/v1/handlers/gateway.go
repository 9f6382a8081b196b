package handlers

import (
	"context"
	"errors"
	"net/http"

	"nmai/sunrise-service/internal/service"
)

func (h *Router) GetGeocode(w http.ResponseWriter, r *http.Request) {
	address := queryParam(r, "address")
	if address == "" {
		respondWithError(w, http.StatusBadRequest, msgAddressRequired)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	response, err := h.gatewayService.Geocode(ctx, address)
	if err != nil {
		respondWithUpstreamError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, response)
}

func (h *Router) GetTimezone(w http.ResponseWriter, r *http.Request) {
	lat, lng, ok := requireCoordinates(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	response, err := h.gatewayService.Timezone(ctx, lat, lng)
	if err != nil {
		respondWithUpstreamError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, response)
}

func (h *Router) GetSunriseSunset(w http.ResponseWriter, r *http.Request) {
	lat, lng, ok := requireCoordinates(w, r)
	if !ok {
		return
	}

	date := queryParam(r, "date")
	if date != "" && !service.ValidDate(date) {
		respondWithError(w, http.StatusBadRequest, msgDateInvalid)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	response, err := h.gatewayService.SunriseSunset(ctx, lat, lng, date)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			respondWithError(w, http.StatusBadRequest, msgDateInvalid)
			return
		}
		respondWithUpstreamError(w, r, err)
		return
	}

	respondWithRawJSON(w, http.StatusOK, response)
}

func requireCoordinates(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	lat := queryParam(r, "lat")
	if lat == "" {
		respondWithError(w, http.StatusBadRequest, msgLatitudeRequired)
		return "", "", false
	}

	lng := queryParam(r, "lng")
	if lng == "" {
		respondWithError(w, http.StatusBadRequest, msgLongitudeRequired)
		return "", "", false
	}

	return lat, lng, true
}
