package dispatch

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/midiflux/core/midi"
	"github.com/midiflux/core/registry"
)

// DeviceResolver resolves a hardware device id to the configured
// device name(s) C6 indexes under (spec.md §4.7 step 1; backed by
// device.Manager.DeviceNamesForID).
type DeviceResolver interface {
	DeviceNamesForID(id string) []string
}

// Lookup is the method set of registry.Registry this package depends
// on.
type Lookup interface {
	Lookup(deviceName string, ev midi.Event) []registry.Entry
}

// Dispatcher implements spec.md §4.7: resolve device name, look up the
// registry snapshot, and hand the ordered action list to a Processor
// for asynchronous execution. This package documents (per spec.md §5)
// that it serializes per device and never across devices: each device
// id gets its own single-worker queue that runs one event's action list
// to completion before starting the next, so two events from the same
// device execute in the order the adapter produced them, while distinct
// devices proceed fully in parallel.
type Dispatcher struct {
	resolver  DeviceResolver
	lookup    Lookup
	processor *Processor
	log       zerolog.Logger

	mu     sync.Mutex
	queues map[string]*deviceQueue
}

// NewDispatcher wires a Dispatcher to its collaborators.
func NewDispatcher(resolver DeviceResolver, lookup Lookup, processor *Processor, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		resolver:  resolver,
		lookup:    lookup,
		processor: processor,
		log:       log.With().Str("component", "dispatch.Dispatcher").Logger(),
		queues:    make(map[string]*deviceQueue),
	}
}

// Dispatch is called on the adapter's callback thread for every
// incoming MidiEvent. Matched entries are handed to the per-device
// queue and this call returns as soon as they are queued; it waits on
// action execution only when that device already has 256 events
// pending (see deviceQueue).
func (d *Dispatcher) Dispatch(ctx context.Context, deviceID string, ev midi.Event) {
	names := d.resolver.DeviceNamesForID(deviceID)
	if len(names) == 0 {
		names = []string{midi.AnyDevice}
	}

	value, hasValue := resolveValue(ev)

	var entries []registry.Entry
	for _, name := range names {
		entries = append(entries, d.lookup.Lookup(name, ev)...)
	}
	if len(entries) == 0 {
		return
	}

	q := d.queueFor(deviceID)
	q.enqueue(func() { d.processor.run(ctx, entries, value, hasValue) })
}

// resolveValue derives the midi_value handed to Execute (spec.md
// §4.2): the raw scalar for most events, but for relative CC the
// dispatcher applies the decode table once so actions only ever see an
// already-signed delta.
func resolveValue(ev midi.Event) (int, bool) {
	if ev.IsRelative() {
		if raw, ok := ev.Value(); ok {
			return int(midi.DecodeRelativeDelta(raw, ev.RelativeEncoding())), true
		}
		return 0, false
	}
	return ev.Scalar()
}

func (d *Dispatcher) queueFor(deviceID string) *deviceQueue {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, ok := d.queues[deviceID]
	if !ok {
		q = newDeviceQueue()
		d.queues[deviceID] = q
	}
	return q
}

// deviceQueue runs submitted tasks one at a time, in arrival order, on
// a dedicated goroutine, so a single device's events execute in the
// order the adapter produced them. The channel
// buffers up to 256 pending handoffs; Dispatch blocks past that point
// rather than dropping an event, matching spec.md §4.8's
// no-silent-drop back-pressure requirement.
type deviceQueue struct {
	tasks chan func()
}

func newDeviceQueue() *deviceQueue {
	q := &deviceQueue{tasks: make(chan func(), 256)}
	go q.run()
	return q
}

func (q *deviceQueue) run() {
	for task := range q.tasks {
		task()
	}
}

func (q *deviceQueue) enqueue(task func()) {
	q.tasks <- task
}
