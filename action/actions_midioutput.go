package action

import "context"

// midiOutputAction — spec.md §4.2 MidiOutput(device, commands): sends
// each command in order via the adapter.
type midiOutputAction struct {
	sender MidiOutputSender
	cfg    *MidiOutputConfig
}

func (a *midiOutputAction) Execute(ctx context.Context, value int, hasValue bool) error {
	if a.sender == nil {
		return &ServiceUnavailableError{ActionKind: TypeMidiOutput, Service: "MIDI output"}
	}
	for _, cmd := range a.cfg.Commands {
		data, err := cmd.bytes()
		if err != nil {
			return &MidiSendFailedError{Device: a.cfg.OutputDeviceName, Source: err}
		}
		if err := a.sender.Send(a.cfg.OutputDeviceName, data); err != nil {
			return &MidiSendFailedError{Device: a.cfg.OutputDeviceName, Source: err}
		}
	}
	return nil
}
