package profile

import (
	"github.com/midiflux/core/action"
	"github.com/midiflux/core/midi"
)

// walkActionConfigs recurses through cfg's tree, assigning a
// deterministic auto-generated state key to every AlternatingConfig
// that left StateKey empty (spec.md §9), before the tree reaches the
// factory. Every composite variant forwards the walk to its children.
func walkActionConfigs(cfg action.Config, deviceName string, fp midi.Fingerprint, mappingID string) {
	switch c := cfg.(type) {
	case *action.SequenceConfig:
		for _, sub := range c.SubActions {
			walkActionConfigs(sub, deviceName, fp, mappingID)
		}
	case *action.ConditionalConfig:
		for _, branch := range c.Conditions {
			walkActionConfigs(branch.Action, deviceName, fp, mappingID)
		}
	case *action.RelativeCCConfig:
		walkActionConfigs(c.Increase, deviceName, fp, mappingID)
		walkActionConfigs(c.Decrease, deviceName, fp, mappingID)
	case *action.StateConditionalConfig:
		walkActionConfigs(c.Condition.Action, deviceName, fp, mappingID)
	case *action.AlternatingConfig:
		if c.StateKey == "" {
			c.StateKey = action.DeriveAlternatingKey(deviceName, fp, mappingID)
		}
		walkActionConfigs(c.Primary, deviceName, fp, mappingID)
		walkActionConfigs(c.Secondary, deviceName, fp, mappingID)
	}
}
