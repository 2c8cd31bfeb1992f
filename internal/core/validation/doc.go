// Package validation provides pure validation functions for slot requests.
//
// The HTTP and CLI shells decode requests into optional fields, so they can
// tell an omitted value from an explicit zero. These functions check the
// decoded values before they reach the slots package and report the first
// offending field. All functions are pure (no I/O, no side effects).
//
// # Functions
//
//   - ValidateSlotsRequest: Validate sizing, window bounds and busy periods
//   - ValidateBusy: Validate a busy list on its own (merge requests)
//
// # Usage
//
//	if field, msg := validation.ValidateSlotsRequest(req.SlotSize, req.BreakTime, req.StartTime, req.EndTime, req.Busy); field != "" {
//	    // Return 400 Bad Request with msg
//	}
package validation
