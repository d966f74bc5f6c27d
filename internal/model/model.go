package model

import "encoding/json"

// Template type tags as they appear on the wire.
const (
	TemplateUIDValidator = "uid_validator"
	TemplateSignalHold   = "signal_hold"
)

// NoSelection is the sentinel selection index when no device is selected.
const NoSelection = -1

// Profile is a named, independently stored device configuration set.
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Slot is one UID-matching rule inside a uid_validator template.
// LastValue is runtime-only: the backend fills it in, the editor shows it
// read-only, and it is stripped before save (see Document.ForSave).
type Slot struct {
	SourceID  string   `json:"source_id"`
	Label     string   `json:"label"`
	Values    []string `json:"values"`
	LastValue string   `json:"last_value,omitempty"`
}

// UIDTemplate holds the uid_validator field set.
type UIDTemplate struct {
	Slots             []Slot `json:"slots"`
	SuccessTopic      string `json:"success_topic"`
	SuccessPayload    string `json:"success_payload"`
	SuccessAudioTrack string `json:"success_audio_track"`
	FailTopic         string `json:"fail_topic"`
	FailPayload       string `json:"fail_payload"`
	FailAudioTrack    string `json:"fail_audio_track"`
}

// SignalTemplate holds the signal_hold field set. The timing fields are
// non-negative millisecond counts on the wire.
type SignalTemplate struct {
	SignalTopic        string `json:"signal_topic"`
	SignalPayloadOn    string `json:"signal_payload_on"`
	SignalPayloadOff   string `json:"signal_payload_off"`
	HeartbeatTopic     string `json:"heartbeat_topic"`
	RequiredHoldMS     uint32 `json:"required_hold_ms"`
	HeartbeatTimeoutMS uint32 `json:"heartbeat_timeout_ms"`
}

// Template is a tagged variant: Type selects which sub-object is populated.
// A nil *Template means the device is unconfigured.
type Template struct {
	Type   string          `json:"type"`
	UID    *UIDTemplate    `json:"uid,omitempty"`
	Signal *SignalTemplate `json:"signal,omitempty"`
}

// Device is one configurable unit inside a profile. Tabs, Topics and
// Scenarios are opaque to the editor and carried through load/save untouched.
type Device struct {
	ID          string            `json:"id"`
	DisplayName string            `json:"display_name"`
	Template    *Template         `json:"template"`
	Tabs        []json.RawMessage `json:"tabs"`
	Topics      []json.RawMessage `json:"topics"`
	Scenarios   []json.RawMessage `json:"scenarios"`
}

// Document is the full backend configuration document.
type Document struct {
	Schema        int       `json:"schema"`
	TabLimit      int       `json:"tab_limit,omitempty"`
	ActiveProfile string    `json:"active_profile"`
	Profiles      []Profile `json:"profiles"`
	Devices       []Device  `json:"devices"`
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	out.Profiles = append([]Profile(nil), d.Profiles...)
	out.Devices = make([]Device, len(d.Devices))
	for i, dev := range d.Devices {
		out.Devices[i] = dev.clone()
	}
	return out
}

func (dev Device) clone() Device {
	out := dev
	out.Tabs = cloneRaw(dev.Tabs)
	out.Topics = cloneRaw(dev.Topics)
	out.Scenarios = cloneRaw(dev.Scenarios)
	if dev.Template != nil {
		tpl := *dev.Template
		if dev.Template.UID != nil {
			uid := *dev.Template.UID
			uid.Slots = make([]Slot, len(dev.Template.UID.Slots))
			for i, slot := range dev.Template.UID.Slots {
				uid.Slots[i] = slot
				uid.Slots[i].Values = append([]string(nil), slot.Values...)
			}
			tpl.UID = &uid
		}
		if dev.Template.Signal != nil {
			sig := *dev.Template.Signal
			tpl.Signal = &sig
		}
		out.Template = &tpl
	}
	return out
}

func cloneRaw(in []json.RawMessage) []json.RawMessage {
	if in == nil {
		return nil
	}
	out := make([]json.RawMessage, len(in))
	for i, m := range in {
		out[i] = append(json.RawMessage(nil), m...)
	}
	return out
}

// ForSave returns the persistable form of the document: a deep copy with
// every runtime-only field removed. The receiver is never modified, and the
// transform is idempotent.
func (d Document) ForSave() Document {
	out := d.Clone()
	for i := range out.Devices {
		tpl := out.Devices[i].Template
		if tpl == nil || tpl.UID == nil {
			continue
		}
		for j := range tpl.UID.Slots {
			tpl.UID.Slots[j].LastValue = ""
		}
	}
	return out
}
