// Package mock provides fake implementations of the core's external
// facades (midi.Adapter, input.Simulator, gamepad.Backend) for use in
// tests and as a headless demo backend, mirroring the style of
// gdamore-tcell's SimulationScreen.
package mock

import (
	"context"
	"sync"

	"github.com/midiflux/core/input"
	"github.com/midiflux/core/midi"
)

// Adapter is an in-memory midi.Adapter: ListDevices/OpenInput/
// CloseInput/Subscribe/Send are recorded, and tests drive incoming
// events via Inject.
type Adapter struct {
	mu        sync.Mutex
	devices   []midi.DeviceInfo
	opened    map[string]bool
	callback  midi.EventCallback
	sent      []SentMessage
	sendError error
}

// SentMessage records one Adapter.Send call.
type SentMessage struct {
	Device string
	Data   []byte
}

// NewAdapter returns an Adapter pre-populated with devices.
func NewAdapter(devices ...midi.DeviceInfo) *Adapter {
	return &Adapter{devices: devices, opened: make(map[string]bool)}
}

func (a *Adapter) ListDevices() ([]midi.DeviceInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]midi.DeviceInfo, len(a.devices))
	copy(out, a.devices)
	return out, nil
}

func (a *Adapter) OpenInput(deviceID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.opened[deviceID] = true
	return nil
}

func (a *Adapter) CloseInput(deviceID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.opened, deviceID)
	return nil
}

func (a *Adapter) Subscribe(cb midi.EventCallback) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.callback = cb
}

// Inject simulates an incoming MIDI message as if produced by deviceID.
func (a *Adapter) Inject(deviceID string, ev midi.Event) {
	a.mu.Lock()
	cb := a.callback
	a.mu.Unlock()
	if cb != nil {
		cb(deviceID, ev)
	}
}

// SetSendError makes every subsequent Send call fail with err.
func (a *Adapter) SetSendError(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sendError = err
}

func (a *Adapter) Send(deviceName string, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.sendError != nil {
		return a.sendError
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	a.sent = append(a.sent, SentMessage{Device: deviceName, Data: cp})
	return nil
}

// Sent returns every message accepted by Send, in order.
func (a *Adapter) Sent() []SentMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]SentMessage, len(a.sent))
	copy(out, a.sent)
	return out
}

func (a *Adapter) Close() error { return nil }

// Simulator is an in-memory input.Simulator recording every call,
// usable both as a real test double and as a headless demo backend.
type Simulator struct {
	mu           sync.Mutex
	keysDown     map[uint16]bool
	clicks       []input.MouseButton
	scrolls      []scrollCall
	commandsRun  []commandCall
	failKeyDown  bool
	failKeyUp    bool
}

type scrollCall struct {
	Direction input.ScrollDirection
	Amount    uint32
}

type commandCall struct {
	Command     string
	Shell       input.Shell
	Hidden      bool
	WaitForExit bool
}

func NewSimulator() *Simulator {
	return &Simulator{keysDown: make(map[uint16]bool)}
}

func (s *Simulator) SendKeyDown(vk uint16) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failKeyDown {
		return errKeyEmitFailed
	}
	s.keysDown[vk] = true
	return nil
}

func (s *Simulator) SendKeyUp(vk uint16) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failKeyUp {
		return errKeyEmitFailed
	}
	delete(s.keysDown, vk)
	return nil
}

func (s *Simulator) SendMouseClick(button input.MouseButton) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clicks = append(s.clicks, button)
	return nil
}

func (s *Simulator) SendMouseScroll(direction input.ScrollDirection, amount uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrolls = append(s.scrolls, scrollCall{direction, amount})
	return nil
}

func (s *Simulator) RunCommand(ctx context.Context, command string, shell input.Shell, hidden bool, wait bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commandsRun = append(s.commandsRun, commandCall{command, shell, hidden, wait})
	return nil
}

// IsKeyDown reports whether vk is currently held, per this Simulator's
// bookkeeping.
func (s *Simulator) IsKeyDown(vk uint16) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keysDown[vk]
}

// KeysDown returns the set of currently-held virtual keys.
func (s *Simulator) KeysDown() map[uint16]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uint16]bool, len(s.keysDown))
	for k, v := range s.keysDown {
		out[k] = v
	}
	return out
}

// FailKeyDown/FailKeyUp make subsequent emit calls return an error, to
// exercise InputEmitFailed propagation.
func (s *Simulator) FailKeyDown(fail bool) { s.mu.Lock(); s.failKeyDown = fail; s.mu.Unlock() }
func (s *Simulator) FailKeyUp(fail bool)   { s.mu.Lock(); s.failKeyUp = fail; s.mu.Unlock() }

var errKeyEmitFailed = simError("mock: simulated emit failure")

type simError string

func (e simError) Error() string { return string(e) }

// GamepadBackend is an in-memory gamepad.Backend recording every call.
type GamepadBackend struct {
	mu      sync.Mutex
	buttons map[int]map[string]bool
	axes    map[int]map[string]float64
}

func NewGamepadBackend() *GamepadBackend {
	return &GamepadBackend{
		buttons: make(map[int]map[string]bool),
		axes:    make(map[int]map[string]float64),
	}
}

func (b *GamepadBackend) SetButton(controllerIndex int, name string, pressed bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.buttons[controllerIndex] == nil {
		b.buttons[controllerIndex] = make(map[string]bool)
	}
	b.buttons[controllerIndex][name] = pressed
	return nil
}

func (b *GamepadBackend) SetAxis(controllerIndex int, name string, value float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.axes[controllerIndex] == nil {
		b.axes[controllerIndex] = make(map[string]float64)
	}
	b.axes[controllerIndex][name] = value
	return nil
}

func (b *GamepadBackend) Button(controllerIndex int, name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buttons[controllerIndex][name]
}

func (b *GamepadBackend) Axis(controllerIndex int, name string) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.axes[controllerIndex][name]
}
