package midi

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// RTMIDIAdapter is the real Adapter implementation, backed by
// gitlab.com/gomidi/midi/v2's rtmidi driver. Grounded on
// 0h41-pulsekontrol's midiclient.go (driver.New/Ins/Outs,
// FindInPort/FindOutPort, midi.ListenTo with UseSysEx) and
// dg1psi-shuttlemidi's open/close device lifecycle.
type RTMIDIAdapter struct {
	log zerolog.Logger

	mu     sync.Mutex
	drv    *rtmididrv.Driver
	opened map[string]gomidi.In
	stops  map[string]func()
	cb     EventCallback
}

// NewRTMIDIAdapter opens the rtmidi driver. Callers must call Close
// when done to release opened ports.
func NewRTMIDIAdapter(log zerolog.Logger) (*RTMIDIAdapter, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("midi: open rtmidi driver: %w", err)
	}
	return &RTMIDIAdapter{
		log:    log.With().Str("component", "midi.RTMIDIAdapter").Logger(),
		drv:    drv,
		opened: make(map[string]gomidi.In),
		stops:  make(map[string]func()),
	}, nil
}

func (a *RTMIDIAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for id, stop := range a.stops {
		stop()
		delete(a.stops, id)
	}
	return a.drv.Close()
}

func (a *RTMIDIAdapter) ListDevices() ([]DeviceInfo, error) {
	ins, err := a.drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("midi: list inputs: %w", err)
	}
	outs, err := a.drv.Outs()
	if err != nil {
		return nil, fmt.Errorf("midi: list outputs: %w", err)
	}
	byName := map[string]*DeviceInfo{}
	order := make([]string, 0, len(ins)+len(outs))
	for _, in := range ins {
		name := in.String()
		if _, ok := byName[name]; !ok {
			order = append(order, name)
			byName[name] = &DeviceInfo{ID: name, Name: name}
		}
		byName[name].SupportsInput = true
	}
	for _, out := range outs {
		name := out.String()
		if _, ok := byName[name]; !ok {
			order = append(order, name)
			byName[name] = &DeviceInfo{ID: name, Name: name}
		}
		byName[name].SupportsOutput = true
	}
	result := make([]DeviceInfo, 0, len(order))
	for _, name := range order {
		result = append(result, *byName[name])
	}
	return result, nil
}

func (a *RTMIDIAdapter) OpenInput(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, already := a.opened[id]; already {
		return nil
	}
	in, err := gomidi.FindInPort(id)
	if err != nil {
		return fmt.Errorf("midi: find input %q: %w", id, err)
	}
	if err := in.Open(); err != nil {
		return fmt.Errorf("midi: open input %q: %w", id, err)
	}
	stop, err := gomidi.ListenTo(in, a.handleMessage(id), gomidi.UseSysEx())
	if err != nil {
		in.Close()
		return fmt.Errorf("midi: listen on %q: %w", id, err)
	}
	a.opened[id] = in
	a.stops[id] = stop
	a.log.Info().Str("device", id).Msg("opened midi input")
	return nil
}

func (a *RTMIDIAdapter) CloseInput(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stop, ok := a.stops[id]
	if !ok {
		return nil
	}
	stop()
	delete(a.stops, id)
	in := a.opened[id]
	delete(a.opened, id)
	if in != nil {
		return in.Close()
	}
	return nil
}

func (a *RTMIDIAdapter) Subscribe(cb EventCallback) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cb = cb
}

func (a *RTMIDIAdapter) Send(outputDeviceName string, data []byte) error {
	out, err := gomidi.FindOutPort(outputDeviceName)
	if err != nil {
		return fmt.Errorf("midi: find output %q: %w", outputDeviceName, err)
	}
	if err := out.Open(); err != nil {
		return fmt.Errorf("midi: open output %q: %w", outputDeviceName, err)
	}
	defer out.Close()
	if err := out.Send(data); err != nil {
		return fmt.Errorf("midi: send to %q: %w", outputDeviceName, err)
	}
	return nil
}

func (a *RTMIDIAdapter) handleMessage(id string) func(gomidi.Message, int32) {
	return func(msg gomidi.Message, _ int32) {
		a.mu.Lock()
		cb := a.cb
		a.mu.Unlock()
		if cb == nil {
			return
		}
		ev, ok := translateMessage(msg)
		if !ok {
			return
		}
		cb(id, ev)
	}
}

// translateMessage converts a gomidi.Message into our Event type,
// following the switch shape of 0h41-pulsekontrol's onMessage.
func translateMessage(msg gomidi.Message) (Event, bool) {
	switch msg.Type() {
	case gomidi.NoteOnMsg:
		var ch, note, vel uint8
		msg.GetNoteOn(&ch, &note, &vel)
		if vel == 0 {
			// Many controllers send NoteOn velocity=0 as NoteOff.
			return NewChannelEvent(NoteOff, ch+1, WithNote(note, 0)), true
		}
		return NewChannelEvent(NoteOn, ch+1, WithNote(note, vel)), true
	case gomidi.NoteOffMsg:
		var ch, note, vel uint8
		msg.GetNoteOff(&ch, &note, &vel)
		return NewChannelEvent(NoteOff, ch+1, WithNote(note, vel)), true
	case gomidi.ControlChangeMsg:
		var ch, cc, val uint8
		msg.GetControlChange(&ch, &cc, &val)
		return NewChannelEvent(ControlChange, ch+1, WithControl(cc, val)), true
	case gomidi.SysExMsg:
		var raw []byte
		msg.GetSysEx(&raw)
		return NewSysExEvent(0, raw), true
	default:
		return Event{}, false
	}
}
