package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bredele/available-slots/internal/core/slots"
	"github.com/bredele/available-slots/internal/shell/api"
	"gopkg.in/yaml.v3"
)

// InputError reports a request file that could not be read or is invalid.
type InputError struct {
	Field   string
	Message string
	Err     error
}

func (e *InputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// OpenInput opens path for reading; "-" means stdin.
func OpenInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Message: "failed to open request file", Err: err}
	}
	return f, nil
}

// ReadRequest decodes a YAML or JSON slot request.
func ReadRequest(r io.Reader) (api.FindSlotsRequest, error) {
	var req api.FindSlotsRequest

	data, err := io.ReadAll(r)
	if err != nil {
		return req, &InputError{Message: "failed to read request", Err: err}
	}
	if err := yaml.Unmarshal(data, &req); err != nil {
		return req, &InputError{Message: "failed to parse request", Err: err}
	}

	return req, nil
}

// FindSlots validates req, overlays it on defaults and computes the slots.
func FindSlots(req api.FindSlotsRequest, defaults slots.Options) (api.SlotsResponse, error) {
	if field, msg := req.Validate(); field != "" {
		return api.SlotsResponse{}, &InputError{Field: field, Message: msg}
	}

	available, err := slots.Find(req.Options(defaults))
	if err != nil {
		return api.SlotsResponse{}, &InputError{Message: "invalid request", Err: err}
	}

	return api.NewSlotsResponse(available), nil
}
