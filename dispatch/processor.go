// Package dispatch implements the event dispatcher and processor
// (spec.md §4.7/§4.8, components C9/C10): resolving a device id to a
// registry lookup, then driving the matched actions off the MIDI
// callback thread.
package dispatch

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/midiflux/core/registry"
)

// Processor drives action execution off the adapter's callback thread
// (spec.md §4.8). Each call to Submit is one independent task: its
// actions run strictly in order, but distinct Submit calls may run
// concurrently. Processor never drops a submission; back-pressure is
// absorbed by the Go scheduler's goroutines, not by rejecting work.
type Processor struct {
	log zerolog.Logger
}

// NewProcessor returns a Processor that logs action failures via log.
func NewProcessor(log zerolog.Logger) *Processor {
	return &Processor{log: log.With().Str("component", "dispatch.Processor").Logger()}
}

// Submit runs entries sequentially, in list order, as one task on a
// new goroutine, and returns immediately (spec.md §4.8: "Tasks from
// different events may run in parallel"). A failing entry is logged
// and does not prevent the remaining entries in the same list from
// running; a composite action's own error_handling governs whether
// its internal sub-tree continues.
func (p *Processor) Submit(ctx context.Context, entries []registry.Entry, value int, hasValue bool) {
	if len(entries) == 0 {
		return
	}
	go p.run(ctx, entries, value, hasValue)
}

func (p *Processor) run(ctx context.Context, entries []registry.Entry, value int, hasValue bool) {
	for _, entry := range entries {
		if err := entry.Action.Execute(ctx, value, hasValue); err != nil {
			p.log.Error().Err(err).Str("mapping_id", entry.MappingID).Msg("action execution failed")
		}
	}
}
