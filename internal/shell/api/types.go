package api

import (
	"github.com/bredele/available-slots/internal/core/slots"
	"github.com/bredele/available-slots/internal/core/validation"
)

// =============================================================================
// Request Types
// =============================================================================

// FindSlotsRequest is the request body for a slot search.
// Pointer fields distinguish an omitted value from an explicit zero.
type FindSlotsRequest struct {
	Busy      []slots.TimeSlot `json:"busy" yaml:"busy"`
	SlotSize  *int             `json:"slot_size,omitempty" yaml:"slot_size,omitempty" minimum:"1" maximum:"6000"`
	BreakTime *int             `json:"break_time,omitempty" yaml:"break_time,omitempty" minimum:"0" maximum:"6000"`
	StartTime *string          `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	EndTime   *string          `json:"end_time,omitempty" yaml:"end_time,omitempty"`
}

// Validate returns the first invalid field and its message, or empty strings.
func (r FindSlotsRequest) Validate() (field, message string) {
	return validation.ValidateSlotsRequest(r.SlotSize, r.BreakTime, r.StartTime, r.EndTime, r.Busy)
}

// Options overlays the request on top of defaults.
func (r FindSlotsRequest) Options(defaults slots.Options) slots.Options {
	opts := defaults
	opts.Busy = r.Busy
	if r.SlotSize != nil {
		opts.SlotSize = *r.SlotSize
	}
	if r.BreakTime != nil {
		opts.BreakTime = *r.BreakTime
	}
	if r.StartTime != nil {
		opts.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		opts.EndTime = *r.EndTime
	}
	return opts.WithDefaults()
}

// MergeRequest is the request body for normalizing a busy list.
type MergeRequest struct {
	Busy []slots.TimeSlot `json:"busy" yaml:"busy"`
}

// Validate returns the first invalid field and its message, or empty strings.
func (r MergeRequest) Validate() (field, message string) {
	return validation.ValidateBusy(r.Busy)
}

// =============================================================================
// Response Types
// =============================================================================

// SlotsResponse lists time slots in ascending order.
type SlotsResponse struct {
	Data  []slots.TimeSlot `json:"data"`
	Count int              `json:"count"`
}

// NewSlotsResponse wraps a slot list.
func NewSlotsResponse(list []slots.TimeSlot) SlotsResponse {
	if list == nil {
		list = []slots.TimeSlot{}
	}
	return SlotsResponse{Data: list, Count: len(list)}
}

// ErrorResponse is the response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// HealthResponse is the response for health check.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
