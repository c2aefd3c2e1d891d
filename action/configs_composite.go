package action

import (
	"encoding/json"
	"fmt"
)

// ErrorHandling is spec.md's Sequence.error_handling ∈
// {ContinueOnError, StopOnError}.
type ErrorHandling string

const (
	ContinueOnError ErrorHandling = "ContinueOnError"
	StopOnError     ErrorHandling = "StopOnError"
)

// SequenceConfig — spec.md §3 Sequence{sub_actions, error_handling},
// non-empty.
type SequenceConfig struct {
	SubActions    []Config
	ErrorHandling ErrorHandling
}

func (c *SequenceConfig) Type() string { return TypeSequence }

func (c *SequenceConfig) Validate(path string) []ValidationIssue {
	var issues []ValidationIssue
	if len(c.SubActions) == 0 {
		issues = append(issues, ValidationIssue{Path: path + ".sub_actions", Message: "must be non-empty"})
	}
	switch c.ErrorHandling {
	case ContinueOnError, StopOnError:
	default:
		issues = append(issues, ValidationIssue{Path: path + ".error_handling", Message: "must be ContinueOnError or StopOnError"})
	}
	for i, sub := range c.SubActions {
		issues = append(issues, sub.Validate(fmt.Sprintf("%s.sub_actions[%d]", path, i))...)
	}
	return issues
}

func (c *SequenceConfig) MarshalJSON() ([]byte, error) {
	subs := make([]json.RawMessage, len(c.SubActions))
	for i, sub := range c.SubActions {
		raw, err := EncodeConfig(sub)
		if err != nil {
			return nil, err
		}
		subs[i] = raw
	}
	return json.Marshal(struct {
		Type          string            `json:"$type"`
		SubActions    []json.RawMessage `json:"sub_actions"`
		ErrorHandling ErrorHandling     `json:"error_handling"`
	}{TypeSequence, subs, c.ErrorHandling})
}

func decodeSequence(data []byte) (Config, error) {
	var wire struct {
		SubActions    []json.RawMessage `json:"sub_actions"`
		ErrorHandling ErrorHandling     `json:"error_handling"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("action: decode Sequence: %w", err)
	}
	subs := make([]Config, len(wire.SubActions))
	for i, raw := range wire.SubActions {
		cfg, err := DecodeConfig(raw)
		if err != nil {
			return nil, fmt.Errorf("action: decode Sequence.sub_actions[%d]: %w", i, err)
		}
		subs[i] = cfg
	}
	return &SequenceConfig{SubActions: subs, ErrorHandling: wire.ErrorHandling}, nil
}

// ConditionalBranch is one entry of spec.md's Conditional.conditions.
type ConditionalBranch struct {
	MinValue uint8
	MaxValue uint8
	Action   Config
}

// ConditionalConfig — spec.md §3 Conditional{conditions}; ranges in
// [0,127], min<=max, no overlap.
type ConditionalConfig struct {
	Conditions []ConditionalBranch
}

func (c *ConditionalConfig) Type() string { return TypeConditional }

func (c *ConditionalConfig) Validate(path string) []ValidationIssue {
	var issues []ValidationIssue
	if len(c.Conditions) == 0 {
		issues = append(issues, ValidationIssue{Path: path + ".conditions", Message: "must be non-empty"})
	}
	for i, cond := range c.Conditions {
		p := fmt.Sprintf("%s.conditions[%d]", path, i)
		if cond.MinValue > cond.MaxValue {
			issues = append(issues, ValidationIssue{Path: p, Message: "min_value must be <= max_value"})
		}
		issues = append(issues, cond.Action.Validate(p+".action")...)
	}
	// Spec.md §8 invariant 7: no MIDI value maps to more than one branch.
	for i := 0; i < len(c.Conditions); i++ {
		for j := i + 1; j < len(c.Conditions); j++ {
			a, b := c.Conditions[i], c.Conditions[j]
			if a.MinValue <= b.MaxValue && b.MinValue <= a.MaxValue {
				issues = append(issues, ValidationIssue{
					Path:    fmt.Sprintf("%s.conditions", path),
					Message: fmt.Sprintf("ranges at index %d and %d overlap", i, j),
				})
			}
		}
	}
	return issues
}

func (c *ConditionalConfig) MarshalJSON() ([]byte, error) {
	type wireCond struct {
		MinValue uint8           `json:"min_value"`
		MaxValue uint8           `json:"max_value"`
		Action   json.RawMessage `json:"action"`
	}
	conds := make([]wireCond, len(c.Conditions))
	for i, cond := range c.Conditions {
		raw, err := EncodeConfig(cond.Action)
		if err != nil {
			return nil, err
		}
		conds[i] = wireCond{cond.MinValue, cond.MaxValue, raw}
	}
	return json.Marshal(struct {
		Type       string     `json:"$type"`
		Conditions []wireCond `json:"conditions"`
	}{TypeConditional, conds})
}

func decodeConditional(data []byte) (Config, error) {
	var wire struct {
		Conditions []struct {
			MinValue uint8           `json:"min_value"`
			MaxValue uint8           `json:"max_value"`
			Action   json.RawMessage `json:"action"`
		} `json:"conditions"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("action: decode Conditional: %w", err)
	}
	conds := make([]ConditionalBranch, len(wire.Conditions))
	for i, w := range wire.Conditions {
		action, err := DecodeConfig(w.Action)
		if err != nil {
			return nil, fmt.Errorf("action: decode Conditional.conditions[%d].action: %w", i, err)
		}
		conds[i] = ConditionalBranch{MinValue: w.MinValue, MaxValue: w.MaxValue, Action: action}
	}
	return &ConditionalConfig{Conditions: conds}, nil
}

// RelativeCCConfig — spec.md §3 RelativeCC{increase, decrease}.
type RelativeCCConfig struct {
	Increase Config
	Decrease Config
}

func (c *RelativeCCConfig) Type() string { return TypeRelativeCC }

func (c *RelativeCCConfig) Validate(path string) []ValidationIssue {
	var issues []ValidationIssue
	if c.Increase == nil {
		issues = append(issues, ValidationIssue{Path: path + ".increase", Message: "required"})
	} else {
		issues = append(issues, c.Increase.Validate(path+".increase")...)
	}
	if c.Decrease == nil {
		issues = append(issues, ValidationIssue{Path: path + ".decrease", Message: "required"})
	} else {
		issues = append(issues, c.Decrease.Validate(path+".decrease")...)
	}
	return issues
}

func (c *RelativeCCConfig) MarshalJSON() ([]byte, error) {
	inc, err := EncodeConfig(c.Increase)
	if err != nil {
		return nil, err
	}
	dec, err := EncodeConfig(c.Decrease)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type     string          `json:"$type"`
		Increase json.RawMessage `json:"increase"`
		Decrease json.RawMessage `json:"decrease"`
	}{TypeRelativeCC, inc, dec})
}

func decodeRelativeCC(data []byte) (Config, error) {
	var wire struct {
		Increase json.RawMessage `json:"increase"`
		Decrease json.RawMessage `json:"decrease"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("action: decode RelativeCC: %w", err)
	}
	inc, err := DecodeConfig(wire.Increase)
	if err != nil {
		return nil, fmt.Errorf("action: decode RelativeCC.increase: %w", err)
	}
	dec, err := DecodeConfig(wire.Decrease)
	if err != nil {
		return nil, fmt.Errorf("action: decode RelativeCC.decrease: %w", err)
	}
	return &RelativeCCConfig{Increase: inc, Decrease: dec}, nil
}

// Comparison is spec.md's StateConditional.condition.comparison ∈
// {Equals, GreaterThan, LessThan}.
type Comparison string

const (
	Equals      Comparison = "Equals"
	GreaterThan Comparison = "GreaterThan"
	LessThan    Comparison = "LessThan"
)

// StateConditionBranch is spec.md's StateConditional.condition.
type StateConditionBranch struct {
	StateValue    int32
	Comparison    Comparison
	Action        Config
	SetStateAfter int32 // -1 = unchanged
}

// StateConditionalConfig — spec.md §3 StateConditional{state_key, condition}.
type StateConditionalConfig struct {
	StateKey  string
	Condition StateConditionBranch
}

func (c *StateConditionalConfig) Type() string { return TypeStateConditional }

func (c *StateConditionalConfig) Validate(path string) []ValidationIssue {
	var issues []ValidationIssue
	if !isUserStateKey(c.StateKey) {
		issues = append(issues, ValidationIssue{Path: path + ".state_key", Message: "must be a user-defined state key"})
	}
	switch c.Condition.Comparison {
	case Equals, GreaterThan, LessThan:
	default:
		issues = append(issues, ValidationIssue{Path: path + ".condition.comparison", Message: "must be Equals, GreaterThan, or LessThan"})
	}
	if c.Condition.Action == nil {
		issues = append(issues, ValidationIssue{Path: path + ".condition.action", Message: "required"})
	} else {
		issues = append(issues, c.Condition.Action.Validate(path+".condition.action")...)
	}
	return issues
}

func (c *StateConditionalConfig) MarshalJSON() ([]byte, error) {
	raw, err := EncodeConfig(c.Condition.Action)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type     string `json:"$type"`
		StateKey string `json:"state_key"`
		Condition struct {
			StateValue    int32           `json:"state_value"`
			Comparison    Comparison      `json:"comparison"`
			Action        json.RawMessage `json:"action"`
			SetStateAfter int32           `json:"set_state_after"`
		} `json:"condition"`
	}{
		Type:     TypeStateConditional,
		StateKey: c.StateKey,
		Condition: struct {
			StateValue    int32           `json:"state_value"`
			Comparison    Comparison      `json:"comparison"`
			Action        json.RawMessage `json:"action"`
			SetStateAfter int32           `json:"set_state_after"`
		}{c.Condition.StateValue, c.Condition.Comparison, raw, c.Condition.SetStateAfter},
	})
}

func decodeStateConditional(data []byte) (Config, error) {
	var wire struct {
		StateKey  string `json:"state_key"`
		Condition struct {
			StateValue    int32           `json:"state_value"`
			Comparison    Comparison      `json:"comparison"`
			Action        json.RawMessage `json:"action"`
			SetStateAfter int32           `json:"set_state_after"`
		} `json:"condition"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("action: decode StateConditional: %w", err)
	}
	action, err := DecodeConfig(wire.Condition.Action)
	if err != nil {
		return nil, fmt.Errorf("action: decode StateConditional.condition.action: %w", err)
	}
	return &StateConditionalConfig{
		StateKey: wire.StateKey,
		Condition: StateConditionBranch{
			StateValue:    wire.Condition.StateValue,
			Comparison:    wire.Condition.Comparison,
			Action:        action,
			SetStateAfter: wire.Condition.SetStateAfter,
		},
	}, nil
}

// AlternatingConfig — spec.md §3 Alternating{primary, secondary,
// start_with_primary, state_key?}.
type AlternatingConfig struct {
	Primary          Config
	Secondary        Config
	StartWithPrimary bool
	StateKey         string // empty => auto-generated
}

func (c *AlternatingConfig) Type() string { return TypeAlternating }

func (c *AlternatingConfig) Validate(path string) []ValidationIssue {
	var issues []ValidationIssue
	if c.Primary == nil {
		issues = append(issues, ValidationIssue{Path: path + ".primary", Message: "required"})
	} else {
		issues = append(issues, c.Primary.Validate(path+".primary")...)
	}
	if c.Secondary == nil {
		issues = append(issues, ValidationIssue{Path: path + ".secondary", Message: "required"})
	} else {
		issues = append(issues, c.Secondary.Validate(path+".secondary")...)
	}
	if c.StateKey != "" && !isUserStateKey(c.StateKey) {
		issues = append(issues, ValidationIssue{Path: path + ".state_key", Message: "must be a user-defined state key when set"})
	}
	return issues
}

func (c *AlternatingConfig) MarshalJSON() ([]byte, error) {
	primary, err := EncodeConfig(c.Primary)
	if err != nil {
		return nil, err
	}
	secondary, err := EncodeConfig(c.Secondary)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type             string          `json:"$type"`
		Primary          json.RawMessage `json:"primary"`
		Secondary        json.RawMessage `json:"secondary"`
		StartWithPrimary bool            `json:"start_with_primary"`
		StateKey         string          `json:"state_key,omitempty"`
	}{TypeAlternating, primary, secondary, c.StartWithPrimary, c.StateKey})
}

func decodeAlternating(data []byte) (Config, error) {
	var wire struct {
		Primary          json.RawMessage `json:"primary"`
		Secondary        json.RawMessage `json:"secondary"`
		StartWithPrimary bool            `json:"start_with_primary"`
		StateKey         string          `json:"state_key"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("action: decode Alternating: %w", err)
	}
	primary, err := DecodeConfig(wire.Primary)
	if err != nil {
		return nil, fmt.Errorf("action: decode Alternating.primary: %w", err)
	}
	secondary, err := DecodeConfig(wire.Secondary)
	if err != nil {
		return nil, fmt.Errorf("action: decode Alternating.secondary: %w", err)
	}
	return &AlternatingConfig{
		Primary:          primary,
		Secondary:        secondary,
		StartWithPrimary: wire.StartWithPrimary,
		StateKey:         wire.StateKey,
	}, nil
}
