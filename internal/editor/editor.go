// Package editor implements the mutation operations of the editing session.
// Every operation works on an explicit *model.Session, marks it dirty on
// success, and treats invalid indices or a missing selection as a silent
// no-op (the edit surface renders no inputs when nothing is selected, so a
// stray edit event has nothing to apply to). Limit violations are the only
// advisory failures.
package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ruminaider/devprofile/internal/model"
	"github.com/ruminaider/devprofile/internal/templates"
)

// Structural limits, matching the controller firmware.
const (
	MaxDevices  = 12
	MaxUIDSlots = 8
)

var (
	// ErrDeviceLimit is returned when a profile already holds MaxDevices.
	ErrDeviceLimit = errors.New("device limit reached")
	// ErrSlotLimit is returned when a uid_validator already holds MaxUIDSlots.
	ErrSlotLimit = errors.New("slot limit reached")
	// ErrBadTiming is returned when a timing field receives non-numeric input.
	ErrBadTiming = errors.New("timing must be a non-negative integer")
)

// DeviceField identifies a directly editable device field.
type DeviceField int

const (
	DeviceDisplayName DeviceField = iota
	DeviceID
)

// SlotField identifies an editable string field of a UID slot.
type SlotField int

const (
	SlotSourceID SlotField = iota
	SlotLabel
)

// UIDActionField identifies one of the six uid_validator action fields.
type UIDActionField int

const (
	UIDSuccessTopic UIDActionField = iota
	UIDSuccessPayload
	UIDSuccessAudioTrack
	UIDFailTopic
	UIDFailPayload
	UIDFailAudioTrack
)

// SignalField identifies a string field of a signal_hold template.
type SignalField int

const (
	SignalTopic SignalField = iota
	SignalPayloadOn
	SignalPayloadOff
	SignalHeartbeatTopic
)

// SignalTiming identifies a millisecond field of a signal_hold template.
type SignalTiming int

const (
	SignalRequiredHoldMS SignalTiming = iota
	SignalHeartbeatTimeoutMS
)

// NewDeviceID generates a device id unique by construction, using the same
// millisecond-hex scheme the controller UI uses.
func NewDeviceID() string {
	return fmt.Sprintf("device_%x", time.Now().UnixMilli())
}

// AddDevice appends a fresh unconfigured device and selects it. Returns
// ErrDeviceLimit (model untouched) when the profile is full.
func AddDevice(s *model.Session) error {
	if len(s.Devices()) >= MaxDevices {
		return ErrDeviceLimit
	}
	s.AppendDevice(model.Device{
		ID:          NewDeviceID(),
		DisplayName: "Device",
		Tabs:        []json.RawMessage{},
		Topics:      []json.RawMessage{},
		Scenarios:   []json.RawMessage{},
	})
	s.MarkDirty()
	return nil
}

// RemoveDevice deletes the currently selected device. No-op when nothing is
// selected.
func RemoveDevice(s *model.Session) {
	if s.SelectedDevice() == nil {
		return
	}
	s.RemoveSelectedDevice()
	s.MarkDirty()
}

// SetDeviceField sets a direct device field verbatim. Device ids carry no
// uniqueness constraint; downstream uses them as correlation keys only.
func SetDeviceField(s *model.Session, index int, field DeviceField, value string) {
	dev := s.DeviceAt(index)
	if dev == nil {
		return
	}
	switch field {
	case DeviceDisplayName:
		dev.DisplayName = value
	case DeviceID:
		dev.ID = value
	default:
		return
	}
	s.MarkDirty()
}

// AssignTemplate replaces the device's template wholesale with registry
// defaults for the given kind, discarding any prior sub-object state. An
// empty or unknown id unconfigures the device.
func AssignTemplate(s *model.Session, index int, templateID string) {
	dev := s.DeviceAt(index)
	if dev == nil {
		return
	}
	if templateID == "" {
		dev.Template = nil
	} else {
		dev.Template = templates.DefaultsFor(templateID)
	}
	s.MarkDirty()
}

// uidTemplate returns the device's uid_validator sub-object, or nil when the
// device does not carry that template.
func uidTemplate(s *model.Session, index int) *model.UIDTemplate {
	dev := s.DeviceAt(index)
	if dev == nil || dev.Template == nil || dev.Template.Type != model.TemplateUIDValidator {
		return nil
	}
	return dev.Template.UID
}

func signalTemplate(s *model.Session, index int) *model.SignalTemplate {
	dev := s.DeviceAt(index)
	if dev == nil || dev.Template == nil || dev.Template.Type != model.TemplateSignalHold {
		return nil
	}
	return dev.Template.Signal
}

// AddSlot appends an empty slot to a uid_validator device. Returns
// ErrSlotLimit when the slot list is full; no-op for other template kinds.
func AddSlot(s *model.Session, index int) error {
	uid := uidTemplate(s, index)
	if uid == nil {
		return nil
	}
	if len(uid.Slots) >= MaxUIDSlots {
		return ErrSlotLimit
	}
	uid.Slots = append(uid.Slots, model.Slot{Values: []string{}})
	s.MarkDirty()
	return nil
}

// RemoveSlot deletes the slot at slotIndex. Out-of-range indices are no-ops.
func RemoveSlot(s *model.Session, index, slotIndex int) {
	uid := uidTemplate(s, index)
	if uid == nil || slotIndex < 0 || slotIndex >= len(uid.Slots) {
		return
	}
	uid.Slots = append(uid.Slots[:slotIndex], uid.Slots[slotIndex+1:]...)
	s.MarkDirty()
}

// SetSlotField sets source_id or label on one slot.
func SetSlotField(s *model.Session, index, slotIndex int, field SlotField, value string) {
	uid := uidTemplate(s, index)
	if uid == nil || slotIndex < 0 || slotIndex >= len(uid.Slots) {
		return
	}
	switch field {
	case SlotSourceID:
		uid.Slots[slotIndex].SourceID = value
	case SlotLabel:
		uid.Slots[slotIndex].Label = value
	default:
		return
	}
	s.MarkDirty()
}

// SetSlotValues parses a comma-separated value list and stores it on the
// slot. The parse is lossy on whitespace adjacent to commas; JoinValues is
// the only supported round trip.
func SetSlotValues(s *model.Session, index, slotIndex int, rawText string) {
	uid := uidTemplate(s, index)
	if uid == nil || slotIndex < 0 || slotIndex >= len(uid.Slots) {
		return
	}
	uid.Slots[slotIndex].Values = SplitValues(rawText)
	s.MarkDirty()
}

// SplitValues splits on commas, trims each part and drops empty parts.
func SplitValues(rawText string) []string {
	parts := strings.Split(rawText, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// JoinValues renders a value list back into editable text.
func JoinValues(values []string) string {
	return strings.Join(values, ", ")
}

// SetUIDAction sets one of the six uid_validator action fields.
func SetUIDAction(s *model.Session, index int, field UIDActionField, value string) {
	uid := uidTemplate(s, index)
	if uid == nil {
		return
	}
	switch field {
	case UIDSuccessTopic:
		uid.SuccessTopic = value
	case UIDSuccessPayload:
		uid.SuccessPayload = value
	case UIDSuccessAudioTrack:
		uid.SuccessAudioTrack = value
	case UIDFailTopic:
		uid.FailTopic = value
	case UIDFailPayload:
		uid.FailPayload = value
	case UIDFailAudioTrack:
		uid.FailAudioTrack = value
	default:
		return
	}
	s.MarkDirty()
}

// SetSignalField sets one of the signal_hold string fields.
func SetSignalField(s *model.Session, index int, field SignalField, value string) {
	sig := signalTemplate(s, index)
	if sig == nil {
		return
	}
	switch field {
	case SignalTopic:
		sig.SignalTopic = value
	case SignalPayloadOn:
		sig.SignalPayloadOn = value
	case SignalPayloadOff:
		sig.SignalPayloadOff = value
	case SignalHeartbeatTopic:
		sig.HeartbeatTopic = value
	default:
		return
	}
	s.MarkDirty()
}

// SetSignalTiming parses free-form operator input into a millisecond field.
// The wire carries these as non-negative integers, so non-numeric input is
// rejected with ErrBadTiming and the model is left unchanged.
func SetSignalTiming(s *model.Session, index int, field SignalTiming, rawText string) error {
	sig := signalTemplate(s, index)
	if sig == nil {
		return nil
	}
	rawText = strings.TrimSpace(rawText)
	var ms uint64
	if rawText != "" {
		var err error
		ms, err = strconv.ParseUint(rawText, 10, 32)
		if err != nil {
			return ErrBadTiming
		}
	}
	switch field {
	case SignalRequiredHoldMS:
		sig.RequiredHoldMS = uint32(ms)
	case SignalHeartbeatTimeoutMS:
		sig.HeartbeatTimeoutMS = uint32(ms)
	default:
		return nil
	}
	s.MarkDirty()
	return nil
}
