package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/devprofile/internal/editor"
	"github.com/ruminaider/devprofile/internal/model"
	"github.com/ruminaider/devprofile/internal/syncer"
	"github.com/ruminaider/devprofile/internal/templates"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit devices interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController()
		if err != nil {
			return err
		}
		st := ctrl.Load(cmd.Context())
		printStatus(st)
		if st.Level == syncer.Error {
			return nil
		}
		return runEditLoop(cmd.Context(), ctrl)
	},
}

// runEditLoop is the presentation glue: it renders the current session and
// forwards operator intents into the editor operations.
func runEditLoop(ctx context.Context, ctrl *syncer.Controller) error {
	sess := ctrl.Session()
	for {
		var options []huh.Option[string]
		for i, dev := range sess.Devices() {
			name := dev.DisplayName
			if name == "" {
				name = dev.ID
			}
			kind := "none"
			if dev.Template != nil {
				kind = templates.LabelFor(dev.Template.Type)
			}
			options = append(options, huh.NewOption(fmt.Sprintf("%s [%s]", name, kind), fmt.Sprintf("device:%d", i)))
		}
		options = append(options,
			huh.NewOption("+ Add device", "add"),
			huh.NewOption("Save changes", "save"),
			huh.NewOption("Reload", "reload"),
			huh.NewOption("Quit", "quit"),
		)

		title := fmt.Sprintf("Profile: %s", activeProfileLabel(sess))
		if sess.Dirty() {
			title += " (unsaved changes)"
		}
		var choice string
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().Title(title).Options(options...).Value(&choice),
			),
		).Run()
		if err != nil {
			return err
		}

		switch choice {
		case "add":
			if err := editor.AddDevice(sess); errors.Is(err, editor.ErrDeviceLimit) {
				printStatus(syncer.Status{Level: syncer.Warn, Text: "Device limit reached"})
			} else {
				editDevice(sess, sess.Selected())
			}
		case "save":
			printStatus(ctrl.Save(ctx))
		case "reload":
			if !confirmDiscard(sess) {
				continue
			}
			printStatus(ctrl.Load(ctx))
		case "quit":
			if !confirmDiscard(sess) {
				continue
			}
			return nil
		default:
			var idx int
			if _, err := fmt.Sscanf(choice, "device:%d", &idx); err == nil {
				sess.Select(idx)
				editDevice(sess, idx)
			}
		}
	}
}

func activeProfileLabel(sess *model.Session) string {
	if p := sess.ActiveProfile(); p != nil {
		return p.Name
	}
	if id := sess.ActiveProfileID(); id != "" {
		return id
	}
	return "(none)"
}

// confirmDiscard asks before throwing away unsaved edits.
func confirmDiscard(sess *model.Session) bool {
	if !sess.Dirty() {
		return true
	}
	confirmed := false
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title("Discard unsaved changes?").Value(&confirmed),
		),
	).Run()
	return err == nil && confirmed
}

// editDevice is the per-device menu.
func editDevice(sess *model.Session, index int) {
	for {
		dev := sess.DeviceAt(index)
		if dev == nil {
			return
		}

		options := []huh.Option[string]{
			huh.NewOption("Name / id", "fields"),
			huh.NewOption("Template", "template"),
		}
		if dev.Template != nil {
			switch dev.Template.Type {
			case model.TemplateUIDValidator:
				options = append(options,
					huh.NewOption("UID slots", "slots"),
					huh.NewOption("Success / fail actions", "actions"),
				)
			case model.TemplateSignalHold:
				options = append(options, huh.NewOption("Signal settings", "signal"))
			}
		}
		options = append(options,
			huh.NewOption("Delete device", "delete"),
			huh.NewOption("Back", "back"),
		)

		var choice string
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title(fmt.Sprintf("Device: %s", dev.DisplayName)).
					Options(options...).
					Value(&choice),
			),
		).Run()
		if err != nil {
			return
		}

		switch choice {
		case "fields":
			editDeviceFields(sess, index)
		case "template":
			chooseTemplate(sess, index)
		case "slots":
			editSlots(sess, index)
		case "actions":
			editUIDActions(sess, index)
		case "signal":
			editSignalSettings(sess, index)
		case "delete":
			editor.RemoveDevice(sess)
			return
		case "back":
			return
		}
	}
}

func editDeviceFields(sess *model.Session, index int) {
	dev := sess.DeviceAt(index)
	if dev == nil {
		return
	}
	name, id := dev.DisplayName, dev.ID
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&name),
			huh.NewInput().Title("ID").Value(&id),
		),
	).Run()
	if err != nil {
		return
	}
	editor.SetDeviceField(sess, index, editor.DeviceDisplayName, name)
	editor.SetDeviceField(sess, index, editor.DeviceID, id)
}

func chooseTemplate(sess *model.Session, index int) {
	dev := sess.DeviceAt(index)
	if dev == nil {
		return
	}
	current := ""
	if dev.Template != nil {
		current = dev.Template.Type
	}

	options := []huh.Option[string]{huh.NewOption("None", "")}
	for _, t := range templates.List() {
		options = append(options, huh.NewOption(t.Label, t.ID))
	}
	choice := current
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Template").Options(options...).Value(&choice),
		),
	).Run()
	if err != nil || choice == current {
		return
	}
	editor.AssignTemplate(sess, index, choice)
}

func editSlots(sess *model.Session, index int) {
	for {
		dev := sess.DeviceAt(index)
		if dev == nil || dev.Template == nil || dev.Template.UID == nil {
			return
		}
		uid := dev.Template.UID

		var options []huh.Option[string]
		for i, slot := range uid.Slots {
			label := slot.Label
			if label == "" {
				label = fmt.Sprintf("Slot %d", i+1)
			}
			last := slot.LastValue
			if last == "" {
				last = "—"
			}
			options = append(options, huh.NewOption(
				fmt.Sprintf("%s (%s) last read: %s", label, editor.JoinValues(slot.Values), last),
				fmt.Sprintf("slot:%d", i)))
		}
		options = append(options,
			huh.NewOption("+ Add slot", "add"),
			huh.NewOption("Back", "back"),
		)

		var choice string
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().Title("UID slots").Options(options...).Value(&choice),
			),
		).Run()
		if err != nil {
			return
		}

		switch choice {
		case "add":
			if err := editor.AddSlot(sess, index); errors.Is(err, editor.ErrSlotLimit) {
				printStatus(syncer.Status{Level: syncer.Warn, Text: "Slot limit reached"})
			}
		case "back":
			return
		default:
			var slotIdx int
			if _, err := fmt.Sscanf(choice, "slot:%d", &slotIdx); err == nil {
				editSlot(sess, index, slotIdx)
			}
		}
	}
}

func editSlot(sess *model.Session, index, slotIdx int) {
	dev := sess.DeviceAt(index)
	if dev == nil || dev.Template == nil || dev.Template.UID == nil {
		return
	}
	uid := dev.Template.UID
	if slotIdx < 0 || slotIdx >= len(uid.Slots) {
		return
	}
	slot := uid.Slots[slotIdx]

	source, label := slot.SourceID, slot.Label
	values := editor.JoinValues(slot.Values)
	remove := false
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Source topic").Value(&source),
			huh.NewInput().Title("Label").Value(&label),
			huh.NewInput().Title("Values").Placeholder("uid1, uid2").Value(&values),
			huh.NewConfirm().Title("Remove this slot?").Value(&remove),
		),
	).Run()
	if err != nil {
		return
	}
	if remove {
		editor.RemoveSlot(sess, index, slotIdx)
		return
	}
	editor.SetSlotField(sess, index, slotIdx, editor.SlotSourceID, source)
	editor.SetSlotField(sess, index, slotIdx, editor.SlotLabel, label)
	editor.SetSlotValues(sess, index, slotIdx, values)
}

func editUIDActions(sess *model.Session, index int) {
	dev := sess.DeviceAt(index)
	if dev == nil || dev.Template == nil || dev.Template.UID == nil {
		return
	}
	uid := dev.Template.UID

	fields := []struct {
		title string
		field editor.UIDActionField
		value string
	}{
		{"Success topic", editor.UIDSuccessTopic, uid.SuccessTopic},
		{"Success payload", editor.UIDSuccessPayload, uid.SuccessPayload},
		{"Success audio track", editor.UIDSuccessAudioTrack, uid.SuccessAudioTrack},
		{"Fail topic", editor.UIDFailTopic, uid.FailTopic},
		{"Fail payload", editor.UIDFailPayload, uid.FailPayload},
		{"Fail audio track", editor.UIDFailAudioTrack, uid.FailAudioTrack},
	}
	inputs := make([]huh.Field, len(fields))
	for i := range fields {
		inputs[i] = huh.NewInput().Title(fields[i].title).Value(&fields[i].value)
	}
	if err := huh.NewForm(huh.NewGroup(inputs...)).Run(); err != nil {
		return
	}
	for i := range fields {
		editor.SetUIDAction(sess, index, fields[i].field, fields[i].value)
	}
}

func editSignalSettings(sess *model.Session, index int) {
	dev := sess.DeviceAt(index)
	if dev == nil || dev.Template == nil || dev.Template.Signal == nil {
		return
	}
	sig := dev.Template.Signal

	topic := sig.SignalTopic
	on := sig.SignalPayloadOn
	off := sig.SignalPayloadOff
	heartbeat := sig.HeartbeatTopic
	hold := fmt.Sprintf("%d", sig.RequiredHoldMS)
	timeout := fmt.Sprintf("%d", sig.HeartbeatTimeoutMS)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Topic").Value(&topic),
			huh.NewInput().Title("Payload ON").Value(&on),
			huh.NewInput().Title("Payload OFF").Value(&off),
			huh.NewInput().Title("Heartbeat topic").Value(&heartbeat),
			huh.NewInput().Title("Hold ms").Value(&hold),
			huh.NewInput().Title("Timeout ms").Value(&timeout),
		),
	).Run()
	if err != nil {
		return
	}
	editor.SetSignalField(sess, index, editor.SignalTopic, topic)
	editor.SetSignalField(sess, index, editor.SignalPayloadOn, on)
	editor.SetSignalField(sess, index, editor.SignalPayloadOff, off)
	editor.SetSignalField(sess, index, editor.SignalHeartbeatTopic, heartbeat)
	if err := editor.SetSignalTiming(sess, index, editor.SignalRequiredHoldMS, hold); err != nil {
		printStatus(syncer.Status{Level: syncer.Warn, Text: "Hold ms: " + err.Error()})
	}
	if err := editor.SetSignalTiming(sess, index, editor.SignalHeartbeatTimeoutMS, timeout); err != nil {
		printStatus(syncer.Status{Level: syncer.Warn, Text: "Timeout ms: " + err.Error()})
	}
}
