package syncer_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ruminaider/devprofile/internal/api"
	"github.com/ruminaider/devprofile/internal/editor"
	"github.com/ruminaider/devprofile/internal/model"
	"github.com/ruminaider/devprofile/internal/syncer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRoundTrip drives the controller against a real HTTP server: load a
// document, edit slot values, save, and verify what went over the wire.
func TestRoundTrip(t *testing.T) {
	configJSON := `{
		"schema": 1,
		"active_profile": "p1",
		"profiles": [{"id": "p1", "name": "Default"}],
		"devices": [{
			"id": "reader", "display_name": "Reader",
			"template": {
				"type": "uid_validator",
				"uid": {
					"slots": [
						{"source_id": "door/uid", "label": "Door", "values": ["A1"], "last_value": "A1"},
						{"source_id": "gate/uid", "label": "Gate", "values": ["B2"], "last_value": "B2"}
					],
					"success_topic": "door/open", "success_payload": "1", "success_audio_track": "",
					"fail_topic": "", "fail_payload": "", "fail_audio_track": ""
				}
			},
			"tabs": [], "topics": [{"broker": "local"}], "scenarios": []
		}]
	}`

	var savedBody string
	var savedProfile string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/devices/config":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(configJSON))
		case "/api/devices/apply":
			savedProfile = r.URL.Query().Get("profile")
			body, _ := io.ReadAll(r.Body)
			savedBody = string(body)
			_, _ = w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctrl := syncer.New(api.New(srv.URL, time.Second), model.NewSession())
	require.Equal(t, syncer.Success, ctrl.Load(context.Background()).Level)

	sess := ctrl.Session()
	editor.SetSlotValues(sess, 0, 0, " A1 ,  B2 ")
	assert.Equal(t, []string{"A1", "B2"}, sess.DeviceAt(0).Template.UID.Slots[0].Values)

	require.Equal(t, syncer.Success, ctrl.Save(context.Background()).Level)
	assert.Equal(t, "p1", savedProfile)
	assert.NotContains(t, savedBody, "last_value")

	var saved model.Document
	require.NoError(t, json.Unmarshal([]byte(savedBody), &saved))
	assert.Equal(t, []string{"A1", "B2"}, saved.Devices[0].Template.UID.Slots[0].Values)
	assert.JSONEq(t, `{"broker": "local"}`, string(saved.Devices[0].Topics[0]))

	// The runtime values are still live in memory after the save.
	assert.Equal(t, "A1", sess.DeviceAt(0).Template.UID.Slots[0].LastValue)
	assert.False(t, sess.Dirty())
}
