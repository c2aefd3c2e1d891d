package profile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/midiflux/core/action"
	"github.com/midiflux/core/registry"
)

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("profile.json", bytes.NewReader([]byte(profileSchema))); err != nil {
		panic(fmt.Sprintf("profile: invalid embedded schema: %v", err))
	}
	return compiler.MustCompile("profile.json")
}

// Load parses, structurally pre-validates, and semantically validates
// profile JSON (spec.md §4.5). On any error it returns nil plus the
// full list of failures; it never returns a partially-loaded Profile.
func Load(data []byte) (*Profile, []ValidationError) {
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, []ValidationError{{Path: "$", Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}
	if err := compiledSchema.Validate(generic); err != nil {
		return nil, schemaErrors(err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, []ValidationError{{Path: "$", Message: fmt.Sprintf("decode: %v", err)}}
	}

	if errs := p.Validate(); len(errs) > 0 {
		return nil, errs
	}
	assignMappingIDs(&p)
	return &p, nil
}

func schemaErrors(err error) []ValidationError {
	if verr, ok := err.(*jsonschema.ValidationError); ok {
		var out []ValidationError
		var walk func(e *jsonschema.ValidationError)
		walk = func(e *jsonschema.ValidationError) {
			if len(e.Causes) == 0 {
				out = append(out, ValidationError{Path: e.InstanceLocation, Message: e.Message})
				return
			}
			for _, cause := range e.Causes {
				walk(cause)
			}
		}
		walk(verr)
		return out
	}
	return []ValidationError{{Path: "$", Message: err.Error()}}
}

// Save serializes p verbatim; round-trip identity with Load is
// guaranteed for every field Load populated (spec.md §4.5, invariant
// 1).
func Save(p *Profile) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// BuildRegistry constructs runtime actions for every enabled mapping
// via factory and returns the Registrations for registry.Rebuild
// (spec.md §4.5 "Build registry (C6)"). Disabled mappings are skipped
// entirely: they never reach the factory.
func BuildRegistry(p *Profile, factory *action.Factory) ([]registry.Registration, error) {
	var regs []registry.Registration
	for _, dev := range p.MidiDevices {
		for _, m := range dev.Mappings {
			if !m.IsEnabled {
				continue
			}
			fp, err := fingerprintFor(dev, m)
			if err != nil {
				return nil, fmt.Errorf("profile: mapping %q: %w", m.Id, err)
			}
			walkActionConfigs(m.Action, dev.DeviceName, fp, m.Id)
			act, err := factory.Create(m.Action)
			if err != nil {
				return nil, fmt.Errorf("profile: mapping %q: build action: %w", m.Id, err)
			}
			regs = append(regs, registry.Registration{Fingerprint: fp, Action: act, MappingID: m.Id})
		}
	}
	return regs, nil
}
