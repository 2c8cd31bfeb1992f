package api

import (
	"net/http"

	"github.com/bredele/available-slots/internal/shell/api/openapi"
)

// newSpec describes the routes registered in Routes.
func newSpec(version string) *openapi.Generator {
	opts := []openapi.Option{}
	if version != "" {
		opts = append(opts, openapi.WithVersion(version))
	}
	g := openapi.NewGenerator(opts...)

	badRequest := openapi.Response{Status: http.StatusBadRequest, Description: "Invalid request", Model: ErrorResponse{}}

	g.Register(openapi.Operation{
		Method:  http.MethodPost,
		Path:    "/api/v1/slots",
		ID:      "findSlots",
		Summary: "Compute available slots around busy periods",
		Tag:     "Slots",
		Request: FindSlotsRequest{},
		Responses: []openapi.Response{
			{Status: http.StatusOK, Description: "Available slots in ascending order", Model: SlotsResponse{}},
			badRequest,
		},
	})

	g.Register(openapi.Operation{
		Method:  http.MethodPost,
		Path:    "/api/v1/slots/merge",
		ID:      "mergeBusy",
		Summary: "Merge overlapping and touching busy periods",
		Tag:     "Slots",
		Request: MergeRequest{},
		Responses: []openapi.Response{
			{Status: http.StatusOK, Description: "Disjoint busy periods in ascending order", Model: SlotsResponse{}},
			badRequest,
		},
	})

	g.Register(openapi.Operation{
		Method:  http.MethodGet,
		Path:    "/health",
		ID:      "health",
		Summary: "Liveness check",
		Tag:     "System",
		Responses: []openapi.Response{
			{Status: http.StatusOK, Description: "Service is healthy", Model: HealthResponse{}},
		},
	})

	return g
}
