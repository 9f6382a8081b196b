package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"nmai/sunrise-service/internal/api/v1/handlers"
	"nmai/sunrise-service/internal/i18n"
	"nmai/sunrise-service/internal/mocks"
	"nmai/sunrise-service/internal/providers"
	"nmai/sunrise-service/internal/service"
	"nmai/sunrise-service/internal/static"
)

const (
	indexHTML     = "<!doctype html><title>Sunrise</title>"
	jsonMediaType = "application/json; charset=UTF-8"
)

var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type",
}

type RouterTestSuite struct {
	suite.Suite
	mockService *mocks.MockGatewayService
	i18nDir     string
	publicDir   string
	router      *handlers.Router
}

func (s *RouterTestSuite) SetupTest() {
	root := s.T().TempDir()
	s.i18nDir = filepath.Join(root, "i18n")
	s.publicDir = filepath.Join(root, "frontend")
	s.Require().NoError(os.Mkdir(s.i18nDir, 0o755))
	s.Require().NoError(os.Mkdir(s.publicDir, 0o755))

	writeFile(s.T(), filepath.Join(s.i18nDir, "en.json"), "{\n  \"title\": \"Sunrise\",\n  \"go\": \"Go\"\n}\n")
	writeFile(s.T(), filepath.Join(s.i18nDir, "language.json"), "[ {\"code\": \"en\"}, {\"code\": \"fr\"} ]")
	writeFile(s.T(), filepath.Join(s.i18nDir, "broken.json"), "{")
	writeFile(s.T(), filepath.Join(s.publicDir, "index.html"), indexHTML)

	s.mockService = mocks.NewMockGatewayService(s.T())
	s.router = s.newRouter(s.i18nDir, 5*time.Second)
}

func (s *RouterTestSuite) newRouter(i18nDir string, timeout time.Duration) *handlers.Router {
	return handlers.NewRouter(
		s.mockService,
		i18n.NewFileStore(i18nDir),
		static.NewServer(s.publicDir),
		timeout,
	)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func (s *RouterTestSuite) do(method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)
	return recorder
}

func (s *RouterTestSuite) assertCORS(recorder *httptest.ResponseRecorder) {
	for name, value := range corsHeaders {
		s.Equal([]string{value}, recorder.Header().Values(name), name)
	}
}

func (s *RouterTestSuite) assertError(recorder *httptest.ResponseRecorder, code int, message string) {
	s.Equal(code, recorder.Code)
	s.Equal(jsonMediaType, recorder.Header().Get("Content-Type"))

	var response handlers.ErrorResponse
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	s.Equal(message, response.Message)
	s.assertCORS(recorder)
}

func (s *RouterTestSuite) TestGeocodeSuccess() {
	s.mockService.On("Geocode", mock.Anything, "Paris").Return(
		service.GeocodeResponse{
			Results: json.RawMessage(`[{"lat":"48.85","lng":"2.35","display_name":"Paris"}]`),
			Status:  "OK",
		},
		nil,
	)

	recorder := s.do(http.MethodGet, "/api/geocode?address=Paris")

	s.Equal(http.StatusOK, recorder.Code)
	s.Equal(jsonMediaType, recorder.Header().Get("Content-Type"))
	s.Equal(`{"results":[{"lat":"48.85","lng":"2.35","display_name":"Paris"}],"status":"OK"}`, recorder.Body.String())
	s.assertCORS(recorder)
}

func (s *RouterTestSuite) TestGeocodeUsesFirstNonBlankValue() {
	s.mockService.On("Geocode", mock.Anything, "Paris").Return(
		service.GeocodeResponse{Results: json.RawMessage(`[]`), Status: "OK"},
		nil,
	)

	recorder := s.do(http.MethodGet, "/api/geocode?address=&address=Paris&address=Rome")

	s.Equal(http.StatusOK, recorder.Code)
	s.Equal(`{"results":[],"status":"OK"}`, recorder.Body.String())
}

func (s *RouterTestSuite) TestGeocodeMissingAddress() {
	for _, target := range []string{"/api/geocode", "/api/geocode?address=", "/api/geocode?q=Paris"} {
		s.assertError(s.do(http.MethodGet, target), http.StatusBadRequest, "address is required field.")
	}

	s.mockService.AssertNotCalled(s.T(), "Geocode")
}

func (s *RouterTestSuite) TestTimezoneSuccess() {
	s.mockService.On("Timezone", mock.Anything, "40.7", "-74.0").Return(
		service.TimezoneResponse{Status: "OK", Results: json.RawMessage(`{"timezoneId":"America/New_York"}`)},
		nil,
	)

	recorder := s.do(http.MethodGet, "/api/timezone?lat=40.7&lng=-74.0")

	s.Equal(http.StatusOK, recorder.Code)
	s.Equal(`{"status":"OK","results":{"timezoneId":"America/New_York"}}`, recorder.Body.String())
	s.assertCORS(recorder)
}

func (s *RouterTestSuite) TestCoordinatesRequired() {
	for _, prefix := range []string{"/api/timezone", "/api/sunrise-sunset"} {
		s.assertError(s.do(http.MethodGet, prefix), http.StatusBadRequest, "latitude is required field.")
		s.assertError(s.do(http.MethodGet, prefix+"?lng=2.35"), http.StatusBadRequest, "latitude is required field.")
		s.assertError(s.do(http.MethodGet, prefix+"?lat=48.85"), http.StatusBadRequest, "longitude is required field.")
		s.assertError(s.do(http.MethodGet, prefix+"?lat=48.85&lng="), http.StatusBadRequest, "longitude is required field.")
	}

	s.mockService.AssertNotCalled(s.T(), "Timezone")
	s.mockService.AssertNotCalled(s.T(), "SunriseSunset")
}

func (s *RouterTestSuite) TestSunriseSunsetSuccess() {
	body := json.RawMessage(`{"results":{"sunrise":"2024-06-21T03:47:00+00:00","day_length":58000},"status":"OK"}`)
	s.mockService.On("SunriseSunset", mock.Anything, "48.85", "2.35", "2024-06-21").Return(body, nil)

	recorder := s.do(http.MethodGet, "/api/sunrise-sunset?lat=48.85&lng=2.35&date=2024-06-21")

	s.Equal(http.StatusOK, recorder.Code)
	s.Equal(jsonMediaType, recorder.Header().Get("Content-Type"))
	s.Equal(string(body), recorder.Body.String())
	s.assertCORS(recorder)
}

func (s *RouterTestSuite) TestSunriseSunsetWithoutDate() {
	s.mockService.On("SunriseSunset", mock.Anything, "48.85", "2.35", "").Return(json.RawMessage(`{"status":"OK"}`), nil)

	recorder := s.do(http.MethodGet, "/api/sunrise-sunset?lat=48.85&lng=2.35&date=")

	s.Equal(http.StatusOK, recorder.Code)
}

func (s *RouterTestSuite) TestSunriseSunsetInvalidDate() {
	for _, date := range []string{"2024-02-30", "2024-6-21", "21-06-2024", "2024-06-21T00:00:00Z", "today", "2024-13-01"} {
		recorder := s.do(http.MethodGet, "/api/sunrise-sunset?lat=48.85&lng=2.35&date="+date)
		s.assertError(recorder, http.StatusBadRequest, "date is invalid.")
	}

	s.mockService.AssertNotCalled(s.T(), "SunriseSunset")
}

func (s *RouterTestSuite) TestUpstreamFailureStatuses() {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"status error", &providers.StatusError{Provider: providers.ProviderGeoNames, StatusCode: 503}, http.StatusBadGateway, "upstream service failed."},
		{"transport error", errors.New("connection refused"), http.StatusBadGateway, "upstream service failed."},
		{"malformed body", providers.ErrMalformedJSON, http.StatusBadGateway, "upstream service failed."},
		{"provider timeout", providers.ErrTimeout, http.StatusGatewayTimeout, "upstream service timed out."},
		{"context deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "upstream service timed out."},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.mockService = mocks.NewMockGatewayService(s.T())
			s.router = s.newRouter(s.i18nDir, 5*time.Second)

			s.mockService.On("Timezone", mock.Anything, "1", "2").Return(service.TimezoneResponse{}, tt.err)
			s.mockService.On("Geocode", mock.Anything, "x").Return(service.GeocodeResponse{}, tt.err)
			s.mockService.On("SunriseSunset", mock.Anything, "1", "2", "").Return(nil, tt.err)

			s.assertError(s.do(http.MethodGet, "/api/timezone?lat=1&lng=2"), tt.code, tt.message)
			s.assertError(s.do(http.MethodGet, "/api/geocode?address=x"), tt.code, tt.message)
			s.assertError(s.do(http.MethodGet, "/api/sunrise-sunset?lat=1&lng=2"), tt.code, tt.message)
		})
	}
}

func (s *RouterTestSuite) TestUpstreamCallIsBoundedByTimeout() {
	s.router = s.newRouter(s.i18nDir, 50*time.Millisecond)

	s.mockService.On("Timezone", mock.Anything, "1", "2").
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			<-ctx.Done()
		}).
		Return(service.TimezoneResponse{}, context.DeadlineExceeded)

	recorder := s.do(http.MethodGet, "/api/timezone?lat=1&lng=2")

	s.assertError(recorder, http.StatusGatewayTimeout, "upstream service timed out.")
}

func (s *RouterTestSuite) TestLanguage() {
	recorder := s.do(http.MethodGet, "/api/language?lang=en")

	s.Equal(http.StatusOK, recorder.Code)
	s.Equal(jsonMediaType, recorder.Header().Get("Content-Type"))
	s.Equal(`{"title":"Sunrise","go":"Go"}`, recorder.Body.String())
	s.assertCORS(recorder)
}

func (s *RouterTestSuite) TestLanguageErrors() {
	s.assertError(s.do(http.MethodGet, "/api/language"), http.StatusBadRequest, "Language is missing.")
	s.assertError(s.do(http.MethodGet, "/api/language?lang="), http.StatusBadRequest, "Language is missing.")
	s.assertError(s.do(http.MethodGet, "/api/language?lang=language"), http.StatusBadRequest, "Language is invalid.")
	s.assertError(s.do(http.MethodGet, "/api/language?lang=de"), http.StatusBadRequest, "Language is not supported.")
	s.assertError(s.do(http.MethodGet, "/api/language?lang=../frontend/index"), http.StatusBadRequest, "Language is not supported.")
	s.assertError(s.do(http.MethodGet, "/api/language?lang=broken"), http.StatusInternalServerError, "internal server error.")
}

func (s *RouterTestSuite) TestSupportedLanguages() {
	recorder := s.do(http.MethodGet, "/api/supportedlanguage")

	s.Equal(http.StatusOK, recorder.Code)
	s.Equal(jsonMediaType, recorder.Header().Get("Content-Type"))
	s.Equal(`[{"code":"en"},{"code":"fr"}]`, recorder.Body.String())
	s.assertCORS(recorder)
}

func (s *RouterTestSuite) TestSupportedLanguagesIsNotShadowed() {
	recorder := s.do(http.MethodGet, "/api/supportedlanguage?lang=en")

	s.Equal(http.StatusOK, recorder.Code)
	s.Equal(`[{"code":"en"},{"code":"fr"}]`, recorder.Body.String())
}

func (s *RouterTestSuite) TestSupportedLanguagesMissingFile() {
	s.router = s.newRouter(s.T().TempDir(), 5*time.Second)

	s.assertError(s.do(http.MethodGet, "/api/supportedlanguage"), http.StatusInternalServerError, "internal server error.")
}

func (s *RouterTestSuite) TestUnknownAPIRoute() {
	for _, target := range []string{"/api", "/api/", "/api/weather?q=Paris", "/apiary", "/api/../index.html"} {
		s.assertError(s.do(http.MethodGet, target), http.StatusNotFound, "not found")
	}
}

func (s *RouterTestSuite) TestStaticFiles() {
	root := s.do(http.MethodGet, "/")
	index := s.do(http.MethodGet, "/index.html")

	s.Equal(http.StatusOK, root.Code)
	s.Equal(indexHTML, root.Body.String())
	s.Equal(index.Body.Bytes(), root.Body.Bytes())
	s.assertCORS(root)
	s.assertCORS(index)
}

func (s *RouterTestSuite) TestStaticNotFound() {
	for _, target := range []string{"/missing.js", "/../i18n/en.json", "/%2e%2e/i18n/en.json"} {
		recorder := s.do(http.MethodGet, target)

		s.Equal(http.StatusNotFound, recorder.Code, target)
		s.Equal("404 Not Found", recorder.Body.String(), target)
		s.Equal("text/html", recorder.Header().Get("Content-Type"), target)
		s.assertCORS(recorder)
	}
}

func (s *RouterTestSuite) TestMethodNotAllowed() {
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodHead} {
		recorder := s.do(method, "/api/geocode?address=Paris")
		s.Equal(http.StatusMethodNotAllowed, recorder.Code, method)
		s.assertCORS(recorder)
	}

	s.mockService.AssertNotCalled(s.T(), "Geocode")
}

func (s *RouterTestSuite) TestPreflight() {
	recorder := s.do(http.MethodOptions, "/api/geocode")

	s.Equal(http.StatusNoContent, recorder.Code)
	s.Empty(recorder.Body.String())
	s.assertCORS(recorder)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
