package model

// Session is the in-memory editing state for one loaded document: the
// document itself, the current device selection, and the dirty flag. There is
// exactly one writer at a time (the mutation operations and the sync
// controller), so no locking is involved.
type Session struct {
	doc      Document
	selected int
	dirty    bool
}

// NewSession returns an empty session with no selection.
func NewSession() *Session {
	return &Session{selected: NoSelection}
}

// Replace installs a freshly loaded document. This is the sole normalization
// boundary for backend input: missing arrays default to empty, the active
// profile id falls back to the first profile (or empty), template sub-objects
// are made structurally consistent, the dirty flag resets, and the selection
// moves to the first device if any exist.
func (s *Session) Replace(doc Document) {
	if doc.Profiles == nil {
		doc.Profiles = []Profile{}
	}
	if doc.Devices == nil {
		doc.Devices = []Device{}
	}
	if doc.ActiveProfile == "" && len(doc.Profiles) > 0 {
		doc.ActiveProfile = doc.Profiles[0].ID
	}
	for i := range doc.Devices {
		normalizeTemplate(&doc.Devices[i])
	}
	s.doc = doc
	s.dirty = false
	if len(doc.Devices) > 0 {
		s.selected = 0
	} else {
		s.selected = NoSelection
	}
}

// normalizeTemplate makes the tagged variant consistent: the type tag fully
// determines which sub-object exists. Unknown types collapse to nil
// (unconfigured), matching the editor's own assignment fallback.
func normalizeTemplate(dev *Device) {
	tpl := dev.Template
	if tpl == nil {
		return
	}
	switch tpl.Type {
	case TemplateUIDValidator:
		if tpl.UID == nil {
			tpl.UID = &UIDTemplate{}
		}
		if tpl.UID.Slots == nil {
			tpl.UID.Slots = []Slot{}
		}
		tpl.Signal = nil
	case TemplateSignalHold:
		if tpl.Signal == nil {
			tpl.Signal = &SignalTemplate{}
		}
		tpl.UID = nil
	default:
		dev.Template = nil
	}
}

// Document returns a copy-free view of the current document. Callers that
// need an independent value must Clone (or use ForSave).
func (s *Session) Document() Document { return s.doc }

// Devices returns the live device list.
func (s *Session) Devices() []Device { return s.doc.Devices }

// DeviceAt returns a pointer into the live device list, or nil when the
// index is out of range.
func (s *Session) DeviceAt(index int) *Device {
	if index < 0 || index >= len(s.doc.Devices) {
		return nil
	}
	return &s.doc.Devices[index]
}

// Profiles returns the loaded profile list.
func (s *Session) Profiles() []Profile { return s.doc.Profiles }

// ActiveProfileID returns the id of the active profile, or "".
func (s *Session) ActiveProfileID() string { return s.doc.ActiveProfile }

// SetActiveProfileID updates the local active profile id. Used for the
// optimistic update during profile activation; does not touch the dirty flag.
func (s *Session) SetActiveProfileID(id string) { s.doc.ActiveProfile = id }

// ActiveProfile returns the active profile, or nil when none matches.
func (s *Session) ActiveProfile() *Profile {
	for i := range s.doc.Profiles {
		if s.doc.Profiles[i].ID == s.doc.ActiveProfile {
			return &s.doc.Profiles[i]
		}
	}
	return nil
}

// Selected returns the selected device index, or NoSelection.
func (s *Session) Selected() int { return s.selected }

// Select moves the selection. Out-of-range indices are ignored.
func (s *Session) Select(index int) {
	if index < 0 || index >= len(s.doc.Devices) {
		return
	}
	s.selected = index
}

// SelectedDevice returns the selected device, or nil when nothing is selected.
func (s *Session) SelectedDevice() *Device { return s.DeviceAt(s.selected) }

// Dirty reports whether unsaved local mutations exist.
func (s *Session) Dirty() bool { return s.dirty }

// MarkDirty flags the session as having unsaved changes.
func (s *Session) MarkDirty() { s.dirty = true }

// ClearDirty resets the flag after a successful save.
func (s *Session) ClearDirty() { s.dirty = false }

// AppendDevice adds a device and selects it.
func (s *Session) AppendDevice(dev Device) {
	s.doc.Devices = append(s.doc.Devices, dev)
	s.selected = len(s.doc.Devices) - 1
}

// RemoveSelectedDevice deletes the selected device. The selection moves to
// min(previous index, new length-1), or NoSelection when the list empties.
func (s *Session) RemoveSelectedDevice() {
	if s.selected < 0 || s.selected >= len(s.doc.Devices) {
		return
	}
	s.doc.Devices = append(s.doc.Devices[:s.selected], s.doc.Devices[s.selected+1:]...)
	if s.selected > len(s.doc.Devices)-1 {
		s.selected = len(s.doc.Devices) - 1
	}
	if len(s.doc.Devices) == 0 {
		s.selected = NoSelection
	}
}
