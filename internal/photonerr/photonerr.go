// Package photonerr defines the error taxonomy from spec.md Section 7.
// The audio callback itself never returns or wraps one of these — by
// the time Process runs, degenerate inputs have already been clamped
// by the DSP parameter constructors. These types surface on the UI/main
// goroutine only: at startup (SetupError) or from the decoder
// (DecodeProgressError). CommandQueueFull describes a dropped command;
// the command queue itself reports a full queue by Push returning
// false, and main logs the drop without building this type.
package photonerr

import "fmt"

// SetupError reports an unrecoverable problem discovered before the
// engine starts: an unsupported decoded format, or no usable output
// device. It is fatal for the session.
type SetupError struct {
	Reason string
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("photon: setup failed: %s", e.Reason)
}

// NewSetupError wraps reason into a *SetupError.
func NewSetupError(reason string) *SetupError {
	return &SetupError{Reason: reason}
}

// CommandQueueFull reports that the UI thread's push into the engine's
// command queue failed because the queue was full. The caller logs and
// drops the command; it must never retry by blocking.
type CommandQueueFull struct {
	// Kind names which command was dropped, for logging.
	Kind string
}

func (e *CommandQueueFull) Error() string {
	return fmt.Sprintf("photon: command queue full, dropped %s", e.Kind)
}

// DecodeProgressError reports a failure while reading a WAV file's PCM
// data. decoder.DecodeFile returns it with no store and FramesDecoded
// set to 0: frames read before the failure are not kept, and main stops
// on it like any other startup error.
type DecodeProgressError struct {
	FramesDecoded int
	Cause         error
}

func (e *DecodeProgressError) Error() string {
	return fmt.Sprintf("photon: decode stopped after %d frames: %v", e.FramesDecoded, e.Cause)
}

func (e *DecodeProgressError) Unwrap() error {
	return e.Cause
}
