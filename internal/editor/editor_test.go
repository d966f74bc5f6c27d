package editor_test

import (
	"testing"

	"github.com/ruminaider/devprofile/internal/editor"
	"github.com/ruminaider/devprofile/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(devices ...model.Device) *model.Session {
	s := model.NewSession()
	s.Replace(model.Document{Devices: devices})
	return s
}

func uidSession() *model.Session {
	s := newSession(model.Device{ID: "d1"})
	editor.AssignTemplate(s, 0, model.TemplateUIDValidator)
	return s
}

func TestAddDevice(t *testing.T) {
	t.Run("appends and selects", func(t *testing.T) {
		s := newSession()
		require.NoError(t, editor.AddDevice(s))
		require.Len(t, s.Devices(), 1)
		assert.Equal(t, 0, s.Selected())
		assert.True(t, s.Dirty())

		dev := s.SelectedDevice()
		assert.NotEmpty(t, dev.ID)
		assert.Equal(t, "Device", dev.DisplayName)
		assert.Nil(t, dev.Template)
		assert.NotNil(t, dev.Tabs)
		assert.NotNil(t, dev.Topics)
		assert.NotNil(t, dev.Scenarios)
	})

	t.Run("rejects the 13th device and leaves the list unchanged", func(t *testing.T) {
		s := newSession()
		for i := 0; i < editor.MaxDevices; i++ {
			require.NoError(t, editor.AddDevice(s))
		}
		err := editor.AddDevice(s)
		assert.ErrorIs(t, err, editor.ErrDeviceLimit)
		assert.Len(t, s.Devices(), editor.MaxDevices)
	})
}

func TestRemoveDevice(t *testing.T) {
	t.Run("no-op without selection", func(t *testing.T) {
		s := newSession()
		editor.RemoveDevice(s)
		assert.False(t, s.Dirty())
	})

	t.Run("selection clamps to the new last index", func(t *testing.T) {
		s := newSession(model.Device{ID: "a"}, model.Device{ID: "b"}, model.Device{ID: "c"})
		s.Select(2)
		editor.RemoveDevice(s)
		assert.Len(t, s.Devices(), 2)
		assert.Equal(t, 1, s.Selected())
	})

	t.Run("selection stays put when a middle device goes", func(t *testing.T) {
		s := newSession(model.Device{ID: "a"}, model.Device{ID: "b"}, model.Device{ID: "c"})
		s.Select(1)
		editor.RemoveDevice(s)
		assert.Equal(t, 1, s.Selected())
		assert.Equal(t, "c", s.SelectedDevice().ID)
	})

	t.Run("removing the last device empties selection, adding restores it", func(t *testing.T) {
		s := newSession(model.Device{ID: "only"})
		editor.RemoveDevice(s)
		assert.Empty(t, s.Devices())
		assert.Equal(t, model.NoSelection, s.Selected())

		require.NoError(t, editor.AddDevice(s))
		assert.Equal(t, 0, s.Selected())
	})
}

func TestSetDeviceField(t *testing.T) {
	s := newSession(model.Device{ID: "d1"})

	editor.SetDeviceField(s, 0, editor.DeviceDisplayName, "Front door")
	editor.SetDeviceField(s, 0, editor.DeviceID, "front_door")
	assert.Equal(t, "Front door", s.DeviceAt(0).DisplayName)
	assert.Equal(t, "front_door", s.DeviceAt(0).ID)
	assert.True(t, s.Dirty())

	t.Run("invalid index is a no-op", func(t *testing.T) {
		s := newSession(model.Device{ID: "d1"})
		editor.SetDeviceField(s, 4, editor.DeviceID, "x")
		assert.False(t, s.Dirty())
	})
}

func TestAssignTemplate(t *testing.T) {
	t.Run("defaults are structurally complete", func(t *testing.T) {
		s := newSession(model.Device{ID: "d1"})
		editor.AssignTemplate(s, 0, model.TemplateUIDValidator)
		tpl := s.DeviceAt(0).Template
		require.NotNil(t, tpl)
		require.NotNil(t, tpl.UID)
		assert.NotNil(t, tpl.UID.Slots)
		assert.Nil(t, tpl.Signal)
		assert.True(t, s.Dirty())
	})

	t.Run("switching kinds discards prior state", func(t *testing.T) {
		s := uidSession()
		require.NoError(t, editor.AddSlot(s, 0))
		editor.SetUIDAction(s, 0, editor.UIDSuccessTopic, "door/open")

		editor.AssignTemplate(s, 0, model.TemplateSignalHold)
		tpl := s.DeviceAt(0).Template
		require.NotNil(t, tpl)
		assert.Nil(t, tpl.UID)
		require.NotNil(t, tpl.Signal)
		assert.Equal(t, model.SignalTemplate{}, *tpl.Signal)

		// Back again: nothing of the old uid state survives.
		editor.AssignTemplate(s, 0, model.TemplateUIDValidator)
		assert.Empty(t, s.DeviceAt(0).Template.UID.Slots)
		assert.Empty(t, s.DeviceAt(0).Template.UID.SuccessTopic)
	})

	t.Run("empty id unconfigures", func(t *testing.T) {
		s := uidSession()
		editor.AssignTemplate(s, 0, "")
		assert.Nil(t, s.DeviceAt(0).Template)
	})

	t.Run("unknown id unconfigures", func(t *testing.T) {
		s := uidSession()
		editor.AssignTemplate(s, 0, "bogus")
		assert.Nil(t, s.DeviceAt(0).Template)
	})
}

func TestSlots(t *testing.T) {
	t.Run("add appends an empty slot", func(t *testing.T) {
		s := uidSession()
		require.NoError(t, editor.AddSlot(s, 0))
		slots := s.DeviceAt(0).Template.UID.Slots
		require.Len(t, slots, 1)
		assert.Empty(t, slots[0].SourceID)
		assert.Empty(t, slots[0].Label)
		assert.NotNil(t, slots[0].Values)
	})

	t.Run("rejects the 9th slot", func(t *testing.T) {
		s := uidSession()
		for i := 0; i < editor.MaxUIDSlots; i++ {
			require.NoError(t, editor.AddSlot(s, 0))
		}
		assert.ErrorIs(t, editor.AddSlot(s, 0), editor.ErrSlotLimit)
		assert.Len(t, s.DeviceAt(0).Template.UID.Slots, editor.MaxUIDSlots)
	})

	t.Run("add is a no-op on a signal device", func(t *testing.T) {
		s := newSession(model.Device{ID: "d1"})
		editor.AssignTemplate(s, 0, model.TemplateSignalHold)
		s.ClearDirty()
		require.NoError(t, editor.AddSlot(s, 0))
		assert.False(t, s.Dirty())
	})

	t.Run("remove with out-of-range index is a no-op", func(t *testing.T) {
		s := uidSession()
		require.NoError(t, editor.AddSlot(s, 0))
		editor.RemoveSlot(s, 0, 3)
		editor.RemoveSlot(s, 0, -1)
		assert.Len(t, s.DeviceAt(0).Template.UID.Slots, 1)
	})

	t.Run("remove deletes the addressed slot", func(t *testing.T) {
		s := uidSession()
		require.NoError(t, editor.AddSlot(s, 0))
		require.NoError(t, editor.AddSlot(s, 0))
		editor.SetSlotField(s, 0, 0, editor.SlotLabel, "first")
		editor.SetSlotField(s, 0, 1, editor.SlotLabel, "second")

		editor.RemoveSlot(s, 0, 0)
		slots := s.DeviceAt(0).Template.UID.Slots
		require.Len(t, slots, 1)
		assert.Equal(t, "second", slots[0].Label)
	})

	t.Run("SetSlotField sets source and label", func(t *testing.T) {
		s := uidSession()
		require.NoError(t, editor.AddSlot(s, 0))
		editor.SetSlotField(s, 0, 0, editor.SlotSourceID, "door/uid")
		editor.SetSlotField(s, 0, 0, editor.SlotLabel, "Door")
		slot := s.DeviceAt(0).Template.UID.Slots[0]
		assert.Equal(t, "door/uid", slot.SourceID)
		assert.Equal(t, "Door", slot.Label)
	})
}

func TestSetSlotValues(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"trims and keeps order", " A1 ,  B2 ", []string{"A1", "B2"}},
		{"drops empty parts", "A1,,B2,", []string{"A1", "B2"}},
		{"single value", "A1", []string{"A1"}},
		{"empty input", "", []string{}},
		{"only separators", " , ,", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := uidSession()
			require.NoError(t, editor.AddSlot(s, 0))
			editor.SetSlotValues(s, 0, 0, tc.in)
			assert.Equal(t, tc.want, s.DeviceAt(0).Template.UID.Slots[0].Values)
		})
	}

	t.Run("join is the supported round trip", func(t *testing.T) {
		s := uidSession()
		require.NoError(t, editor.AddSlot(s, 0))
		editor.SetSlotValues(s, 0, 0, " A1 ,  B2 ")
		assert.Equal(t, "A1, B2", editor.JoinValues(s.DeviceAt(0).Template.UID.Slots[0].Values))
	})
}

func TestSetUIDAction(t *testing.T) {
	s := uidSession()
	editor.SetUIDAction(s, 0, editor.UIDSuccessTopic, "door/open")
	editor.SetUIDAction(s, 0, editor.UIDSuccessPayload, "1")
	editor.SetUIDAction(s, 0, editor.UIDSuccessAudioTrack, "chime")
	editor.SetUIDAction(s, 0, editor.UIDFailTopic, "door/alarm")
	editor.SetUIDAction(s, 0, editor.UIDFailPayload, "0")
	editor.SetUIDAction(s, 0, editor.UIDFailAudioTrack, "buzz")

	uid := s.DeviceAt(0).Template.UID
	assert.Equal(t, "door/open", uid.SuccessTopic)
	assert.Equal(t, "1", uid.SuccessPayload)
	assert.Equal(t, "chime", uid.SuccessAudioTrack)
	assert.Equal(t, "door/alarm", uid.FailTopic)
	assert.Equal(t, "0", uid.FailPayload)
	assert.Equal(t, "buzz", uid.FailAudioTrack)

	t.Run("no-op on a signal device", func(t *testing.T) {
		s := newSession(model.Device{ID: "d1"})
		editor.AssignTemplate(s, 0, model.TemplateSignalHold)
		s.ClearDirty()
		editor.SetUIDAction(s, 0, editor.UIDSuccessTopic, "x")
		assert.False(t, s.Dirty())
	})
}

func TestSignalFields(t *testing.T) {
	signalSession := func() *model.Session {
		s := newSession(model.Device{ID: "d1"})
		editor.AssignTemplate(s, 0, model.TemplateSignalHold)
		return s
	}

	t.Run("string fields", func(t *testing.T) {
		s := signalSession()
		editor.SetSignalField(s, 0, editor.SignalTopic, "lock/set")
		editor.SetSignalField(s, 0, editor.SignalPayloadOn, "on")
		editor.SetSignalField(s, 0, editor.SignalPayloadOff, "off")
		editor.SetSignalField(s, 0, editor.SignalHeartbeatTopic, "lock/hb")

		sig := s.DeviceAt(0).Template.Signal
		assert.Equal(t, "lock/set", sig.SignalTopic)
		assert.Equal(t, "on", sig.SignalPayloadOn)
		assert.Equal(t, "off", sig.SignalPayloadOff)
		assert.Equal(t, "lock/hb", sig.HeartbeatTopic)
	})

	t.Run("timings parse free-form input", func(t *testing.T) {
		s := signalSession()
		require.NoError(t, editor.SetSignalTiming(s, 0, editor.SignalRequiredHoldMS, " 3000 "))
		require.NoError(t, editor.SetSignalTiming(s, 0, editor.SignalHeartbeatTimeoutMS, "1500"))
		sig := s.DeviceAt(0).Template.Signal
		assert.Equal(t, uint32(3000), sig.RequiredHoldMS)
		assert.Equal(t, uint32(1500), sig.HeartbeatTimeoutMS)
	})

	t.Run("empty timing input means zero", func(t *testing.T) {
		s := signalSession()
		require.NoError(t, editor.SetSignalTiming(s, 0, editor.SignalRequiredHoldMS, "3000"))
		require.NoError(t, editor.SetSignalTiming(s, 0, editor.SignalRequiredHoldMS, ""))
		assert.Equal(t, uint32(0), s.DeviceAt(0).Template.Signal.RequiredHoldMS)
	})

	t.Run("non-numeric timing input is rejected", func(t *testing.T) {
		s := signalSession()
		require.NoError(t, editor.SetSignalTiming(s, 0, editor.SignalRequiredHoldMS, "3000"))
		s.ClearDirty()
		assert.ErrorIs(t, editor.SetSignalTiming(s, 0, editor.SignalRequiredHoldMS, "soon"), editor.ErrBadTiming)
		assert.Equal(t, uint32(3000), s.DeviceAt(0).Template.Signal.RequiredHoldMS)
		assert.False(t, s.Dirty())
	})

	t.Run("no-op on a uid device", func(t *testing.T) {
		s := uidSession()
		s.ClearDirty()
		editor.SetSignalField(s, 0, editor.SignalTopic, "x")
		require.NoError(t, editor.SetSignalTiming(s, 0, editor.SignalRequiredHoldMS, "10"))
		assert.False(t, s.Dirty())
	})
}
