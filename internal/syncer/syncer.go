// Package syncer orchestrates synchronization between the editing session
// and the controller backend: load, save, and the profile lifecycle calls.
// All backend failures are caught here and converted to advisory status
// text; nothing propagates to the presentation layer as an error.
package syncer

import (
	"context"
	"fmt"

	"github.com/ruminaider/devprofile/internal/model"
)

// Backend is the controller interface the syncer depends on. *api.Client
// implements it; tests substitute fakes.
type Backend interface {
	FetchConfig(ctx context.Context) (model.Document, error)
	ApplyConfig(ctx context.Context, profileID string, doc model.Document) error
	CreateProfile(ctx context.Context, id, name, cloneID string) error
	RenameProfile(ctx context.Context, id, name string) error
	DeleteProfile(ctx context.Context, id string) error
	ActivateProfile(ctx context.Context, id string) error
}

// State is the controller's single-flight flag. Only one load or save may be
// in flight at a time; a second request while busy is dropped, not queued.
type State int

const (
	Idle State = iota
	Loading
	Saving
)

// Level classifies a status line for presentation.
type Level string

const (
	Info    Level = "info"
	Success Level = "success"
	Warn    Level = "warn"
	Error   Level = "error"
)

// Status is the advisory outcome of an operation. It gates nothing; the
// operator decides what to do next.
type Status struct {
	Level Level
	Text  string
}

func (s Status) String() string { return s.Text }

// Controller owns the sync lifecycle for one session.
type Controller struct {
	backend Backend
	session *model.Session
	state   State
	seq     uint64 // last issued load sequence number
}

// New returns a controller bound to a backend and a session.
func New(backend Backend, session *model.Session) *Controller {
	return &Controller{backend: backend, session: session}
}

// Session returns the session the controller operates on.
func (c *Controller) Session() *model.Session { return c.session }

// State returns the current in-flight state.
func (c *Controller) State() State { return c.state }

// Load fetches the configuration document and replaces the session's model.
// On failure the model keeps its prior state. Each load is stamped with a
// monotonically increasing sequence number; a response that is no longer the
// latest issued request is discarded rather than applied.
func (c *Controller) Load(ctx context.Context) Status {
	if c.state != Idle {
		return Status{Warn, "operation already in flight"}
	}
	c.state = Loading
	c.seq++
	seq := c.seq

	doc, err := c.backend.FetchConfig(ctx)
	c.state = Idle
	if err != nil {
		return Status{Error, fmt.Sprintf("Load failed: %v", err)}
	}
	if seq != c.seq {
		return Status{Warn, "stale load response discarded"}
	}
	c.session.Replace(doc)
	return Status{Success, "Profile loaded"}
}

// Save submits the session's document for the active profile. It is a no-op
// when nothing is dirty or an operation is already in flight. The payload is
// the save-transform of the model (runtime-only fields stripped from a deep
// copy); the in-memory model is never touched, and on failure the dirty flag
// survives so the operator can retry.
func (c *Controller) Save(ctx context.Context) Status {
	if c.state != Idle {
		return Status{Warn, "operation already in flight"}
	}
	if !c.session.Dirty() {
		return Status{Info, "No changes to save"}
	}
	c.state = Saving
	payload := c.session.Document().ForSave()
	err := c.backend.ApplyConfig(ctx, c.session.ActiveProfileID(), payload)
	c.state = Idle
	if err != nil {
		return Status{Error, fmt.Sprintf("Save failed: %v", err)}
	}
	c.session.ClearDirty()
	return Status{Success, "Saved"}
}

// CreateProfile creates (or clones into) a new profile, then reloads so the
// model reflects backend-confirmed state. An empty id aborts with no call.
func (c *Controller) CreateProfile(ctx context.Context, id, name, cloneID string) Status {
	if id == "" {
		return Status{Warn, "profile id required"}
	}
	if name == "" {
		name = id
	}
	err := c.backend.CreateProfile(ctx, id, name, cloneID)
	load := c.Load(ctx)
	if err != nil {
		return Status{Error, fmt.Sprintf("Create failed: %v", err)}
	}
	if load.Level == Error {
		return load
	}
	return Status{Success, fmt.Sprintf("Profile %s created", id)}
}

// RenameProfile renames a profile by id, then reloads.
func (c *Controller) RenameProfile(ctx context.Context, id, name string) Status {
	if id == "" {
		return Status{Warn, "profile id required"}
	}
	err := c.backend.RenameProfile(ctx, id, name)
	load := c.Load(ctx)
	if err != nil {
		return Status{Error, fmt.Sprintf("Rename failed: %v", err)}
	}
	if load.Level == Error {
		return load
	}
	return Status{Success, fmt.Sprintf("Profile %s renamed", id)}
}

// DeleteProfile deletes a profile by id, then reloads.
func (c *Controller) DeleteProfile(ctx context.Context, id string) Status {
	if id == "" {
		return Status{Warn, "profile id required"}
	}
	err := c.backend.DeleteProfile(ctx, id)
	load := c.Load(ctx)
	if err != nil {
		return Status{Error, fmt.Sprintf("Delete failed: %v", err)}
	}
	if load.Level == Error {
		return load
	}
	return Status{Success, fmt.Sprintf("Profile %s deleted", id)}
}

// ActivateProfile switches the active profile. The local active id is
// updated optimistically before the call so the surface stays responsive;
// the reload afterwards settles on whatever the backend confirms.
func (c *Controller) ActivateProfile(ctx context.Context, id string) Status {
	if id == "" {
		return Status{Warn, "profile id required"}
	}
	if id == c.session.ActiveProfileID() {
		return Status{Info, "Profile already active"}
	}
	c.session.SetActiveProfileID(id)
	err := c.backend.ActivateProfile(ctx, id)
	load := c.Load(ctx)
	if err != nil {
		return Status{Error, fmt.Sprintf("Activate failed: %v", err)}
	}
	if load.Level == Error {
		return load
	}
	return Status{Success, fmt.Sprintf("Profile %s activated", id)}
}
