package templates

import "github.com/ruminaider/devprofile/internal/model"

// Info describes one entry of the template catalog.
type Info struct {
	ID    string
	Label string
}

// List returns the fixed template catalog in display order.
func List() []Info {
	return []Info{
		{ID: model.TemplateUIDValidator, Label: "UID validator"},
		{ID: model.TemplateSignalHold, Label: "Signal hold"},
	}
}

// LabelFor returns the display label for a template id, or the id itself
// when it is not in the catalog.
func LabelFor(id string) string {
	for _, t := range List() {
		if t.ID == id {
			return t.Label
		}
	}
	return id
}

// DefaultsFor returns a fresh, structurally complete template of the given
// kind: empty slot list, empty strings, zero timings. Unknown ids yield nil
// (unconfigured device).
func DefaultsFor(id string) *model.Template {
	switch id {
	case model.TemplateUIDValidator:
		return &model.Template{
			Type: model.TemplateUIDValidator,
			UID:  &model.UIDTemplate{Slots: []model.Slot{}},
		}
	case model.TemplateSignalHold:
		return &model.Template{
			Type:   model.TemplateSignalHold,
			Signal: &model.SignalTemplate{},
		}
	default:
		return nil
	}
}
