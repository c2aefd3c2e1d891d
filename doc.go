// Package core is the module root for the MIDI-to-input router: it
// observes incoming MIDI messages from hardware controllers and
// executes configured reactions (synthetic keyboard/mouse input, shell
// commands, outgoing MIDI, game-controller emulation) according to a
// loaded profile.
//
// The dispatch core lives in the subpackages: state (the shared
// integer state store), action (the polymorphic action configs,
// runtime actions, and factory), registry (the lock-free mapping
// index), profile (JSON loading, validation, and serialization),
// device (the active-profile and device-binding manager), dispatch
// (the event dispatcher and processor), and controller (the
// load/activate/reload loop). midi, input, and gamepad define the
// facades the core consumes plus one concrete implementation each;
// mock provides in-memory fakes of all three for tests. cmd/midiflux
// is the composition-root binary.
package core
