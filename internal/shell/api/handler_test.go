package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bredele/available-slots/internal/core/slots"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

func newTestHandler(t *testing.T, defaults slots.Options) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(Config{Defaults: defaults, Logger: logger, Version: "test"}).Routes()
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeSlots(t *testing.T, rec *httptest.ResponseRecorder) SlotsResponse {
	t.Helper()
	var resp SlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// =============================================================================
// Health
// =============================================================================

func TestHealth(t *testing.T) {
	rec := doRequest(t, newTestHandler(t, slots.Options{}), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test", resp.Version)
}

// =============================================================================
// Find Slots
// =============================================================================

func TestFindSlots_Defaults(t *testing.T) {
	body := `{"busy":[{"start":"09:00","end":"10:30"},{"start":"14:00","end":"15:30"}]}`
	rec := doRequest(t, newTestHandler(t, slots.Options{}), http.MethodPost, "/api/v1/slots", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeSlots(t, rec)
	assert.Equal(t, 14, resp.Count)
	require.Len(t, resp.Data, 14)
	assert.Equal(t, slots.TimeSlot{Start: "08:00", End: "08:30"}, resp.Data[0])
	assert.Equal(t, slots.TimeSlot{Start: "10:30", End: "11:00"}, resp.Data[2])
	assert.Equal(t, slots.TimeSlot{Start: "17:30", End: "18:00"}, resp.Data[13])
}

func TestFindSlots_RequestOverridesDefaults(t *testing.T) {
	body := `{
		"busy": [{"start":"09:00","end":"10:30"},{"start":"14:00","end":"15:30"}],
		"slot_size": 45,
		"break_time": 15,
		"start_time": "08:00",
		"end_time": "18:00"
	}`
	h := newTestHandler(t, slots.Options{SlotSize: 20, StartTime: "06:00"})
	rec := doRequest(t, h, http.MethodPost, "/api/v1/slots", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeSlots(t, rec)
	assert.Equal(t, []slots.TimeSlot{
		{Start: "08:00", End: "08:45"},
		{Start: "10:30", End: "11:15"},
		{Start: "11:30", End: "12:15"},
		{Start: "12:30", End: "13:15"},
		{Start: "15:30", End: "16:15"},
		{Start: "16:30", End: "17:15"},
	}, resp.Data)
}

func TestFindSlots_ConfiguredDefaults(t *testing.T) {
	h := newTestHandler(t, slots.Options{SlotSize: 60, StartTime: "09:00", EndTime: "12:00"})
	rec := doRequest(t, h, http.MethodPost, "/api/v1/slots", `{"busy":[]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSlots(t, rec)
	assert.Equal(t, []slots.TimeSlot{
		{Start: "09:00", End: "10:00"},
		{Start: "10:00", End: "11:00"},
		{Start: "11:00", End: "12:00"},
	}, resp.Data)
}

func TestFindSlots_FullyBookedReturnsEmptyArray(t *testing.T) {
	body := `{"busy":[{"start":"08:00","end":"18:00"}]}`
	rec := doRequest(t, newTestHandler(t, slots.Options{}), http.MethodPost, "/api/v1/slots", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[],"count":0}`, rec.Body.String())
}

func TestFindSlots_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing busy", `{}`, "busy"},
		{"zero slot size", `{"busy":[],"slot_size":0}`, "slot_size"},
		{"negative break", `{"busy":[],"break_time":-10}`, "break_time"},
		{"huge break", `{"busy":[],"break_time":9223372036854775807}`, "break_time"},
		{"huge slot size", `{"busy":[],"slot_size":9223372036854775807}`, "slot_size"},
		{"bad start time", `{"busy":[],"start_time":"8am"}`, "start_time"},
		{"bad end time", `{"busy":[],"end_time":"18:60"}`, "end_time"},
		{"bad busy entry", `{"busy":[{"start":"09:00","end":"ten"}]}`, "busy[0].end"},
		{"inverted busy entry", `{"busy":[{"start":"11:00","end":"10:00"}]}`, "busy[0]"},
	}

	h := newTestHandler(t, slots.Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, http.MethodPost, "/api/v1/slots", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, "validation_error", resp.Code)
			assert.Equal(t, tt.field, resp.Field)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestFindSlots_BreakLongerThanDay(t *testing.T) {
	body := `{"busy":[],"break_time":6000}`
	rec := doRequest(t, newTestHandler(t, slots.Options{}), http.MethodPost, "/api/v1/slots", body)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSlots(t, rec)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, []slots.TimeSlot{{Start: "08:00", End: "08:30"}}, resp.Data)
}

func TestFindSlots_InvalidJSON(t *testing.T) {
	rec := doRequest(t, newTestHandler(t, slots.Options{}), http.MethodPost, "/api/v1/slots", `{"busy":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", decodeError(t, rec).Code)
}

func TestFindSlots_BodyTooLarge(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(Config{Logger: logger, MaxBodyBytes: 16}).Routes()

	body := `{"busy":[{"start":"09:00","end":"10:00"}]}`
	rec := doRequest(t, h, http.MethodPost, "/api/v1/slots", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "body_too_large", decodeError(t, rec).Code)
}

func TestFindSlots_MethodNotAllowed(t *testing.T) {
	rec := doRequest(t, newTestHandler(t, slots.Options{}), http.MethodGet, "/api/v1/slots", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// =============================================================================
// Merge
// =============================================================================

func TestMergeBusy(t *testing.T) {
	body := `{"busy":[{"start":"10:45","end":"12:00"},{"start":"09:00","end":"10:30"},{"start":"10:00","end":"11:00"},{"start":"14:00","end":"15:00"}]}`
	rec := doRequest(t, newTestHandler(t, slots.Options{}), http.MethodPost, "/api/v1/slots/merge", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeSlots(t, rec)
	assert.Equal(t, []slots.TimeSlot{
		{Start: "09:00", End: "12:00"},
		{Start: "14:00", End: "15:00"},
	}, resp.Data)
	assert.Equal(t, 2, resp.Count)
}

func TestMergeBusy_Validation(t *testing.T) {
	rec := doRequest(t, newTestHandler(t, slots.Options{}), http.MethodPost, "/api/v1/slots/merge", `{"busy":[{"start":"9","end":"10:00"}]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "busy[0].start", decodeError(t, rec).Field)
}

// =============================================================================
// Middleware
// =============================================================================

func TestRequestID_Generated(t *testing.T) {
	rec := doRequest(t, newTestHandler(t, slots.Options{}), http.MethodGet, "/health", "")

	id := rec.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
}

func TestRequestID_Propagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()

	newTestHandler(t, slots.Options{}).ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := NewHandler(Config{Logger: logger}).Routes()

	doRequest(t, h, http.MethodGet, "/health", "")

	line := buf.String()
	assert.True(t, strings.Contains(line, `"msg":"http request"`), line)
	assert.Contains(t, line, `"path":"/health"`)
	assert.Contains(t, line, `"status":200`)
}

// =============================================================================
// OpenAPI
// =============================================================================

func TestOpenAPI(t *testing.T) {
	rec := doRequest(t, newTestHandler(t, slots.Options{}), http.MethodGet, "/openapi.json", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Info struct {
			Version string `json:"version"`
		} `json:"info"`
		Paths map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "test", doc.Info.Version)
	assert.Contains(t, doc.Paths, "/api/v1/slots")
	assert.Contains(t, doc.Paths, "/api/v1/slots/merge")
	assert.Contains(t, doc.Paths, "/health")
}

func TestOpenAPI_SizeBounds(t *testing.T) {
	rec := doRequest(t, newTestHandler(t, slots.Options{}), http.MethodGet, "/openapi.json", "")
	require.Equal(t, http.StatusOK, rec.Code)

	type bounds struct {
		Format  string   `json:"format"`
		Minimum *float64 `json:"minimum"`
		Maximum *float64 `json:"maximum"`
	}
	var doc struct {
		Components struct {
			Schemas map[string]struct {
				Properties map[string]bounds `json:"properties"`
			} `json:"schemas"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))

	props := doc.Components.Schemas["FindSlotsRequest"].Properties
	for _, name := range []string{"slot_size", "break_time"} {
		p := props[name]
		assert.Equal(t, "int64", p.Format, name)
		require.NotNil(t, p.Maximum, name)
		assert.Equal(t, float64(slots.MaxDuration), *p.Maximum, name)
		require.NotNil(t, p.Minimum, name)
	}
	assert.Equal(t, 1.0, *props["slot_size"].Minimum)
	assert.Equal(t, 0.0, *props["break_time"].Minimum)
}

// =============================================================================
// Request Mapping
// =============================================================================

func TestFindSlotsRequest_Options(t *testing.T) {
	size := 45
	end := "12:00"
	req := FindSlotsRequest{
		Busy:     []slots.TimeSlot{{Start: "09:00", End: "10:00"}},
		SlotSize: &size,
		EndTime:  &end,
	}

	opts := req.Options(slots.Options{BreakTime: 5, StartTime: "07:00", EndTime: "17:00"})

	assert.Equal(t, req.Busy, opts.Busy)
	assert.Equal(t, 45, opts.SlotSize)
	assert.Equal(t, 5, opts.BreakTime)
	assert.Equal(t, "07:00", opts.StartTime)
	assert.Equal(t, "12:00", opts.EndTime)
}

func TestFindSlotsRequest_ExplicitZeroBreakOverridesDefault(t *testing.T) {
	zero := 0
	opts := FindSlotsRequest{Busy: []slots.TimeSlot{}, BreakTime: &zero}.Options(slots.Options{BreakTime: 10})
	assert.Equal(t, 0, opts.BreakTime)
}
