package profile

// profileSchema is the JSON Schema structural pre-pass spec.md §6
// requires ("Loader MUST tolerate unknown top-level fields by failing
// with a descriptive error (strict schema)"), run via
// santhosh-tekuri/jsonschema/v5 before semantic Validate.
const profileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "required": ["ProfileName", "MidiDevices"],
  "properties": {
    "ProfileName": {"type": "string"},
    "Description": {"type": "string"},
    "InitialStates": {"type": "object", "additionalProperties": {"type": "integer"}},
    "MidiDevices": {"type": "array", "items": {"$ref": "#/definitions/device"}}
  },
  "definitions": {
    "device": {
      "type": "object",
      "additionalProperties": false,
      "required": ["InputProfile", "Mappings"],
      "properties": {
        "InputProfile": {"type": "string"},
        "DeviceName": {"type": "string"},
        "MidiChannels": {"type": "array", "items": {"type": "integer"}},
        "Mappings": {"type": "array", "items": {"$ref": "#/definitions/mapping"}}
      }
    },
    "mapping": {
      "type": "object",
      "additionalProperties": false,
      "required": ["InputType", "Action"],
      "properties": {
        "Id": {"type": "string"},
        "Description": {"type": "string"},
        "IsEnabled": {"type": "boolean"},
        "InputType": {
          "type": "string",
          "enum": ["NoteOn", "NoteOff", "ControlChange", "ControlChangeAbsolute", "ControlChangeRelative", "SysEx"]
        },
        "Note": {"type": "integer"},
        "ControlNumber": {"type": "integer"},
        "Channel": {"type": "integer"},
        "SysExPattern": {"type": "string"},
        "Action": {"type": "object"}
      }
    }
  }
}`
