package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ruminaider/devprofile/internal/model"
)

// FetchConfig reads the full configuration document.
func (c *Client) FetchConfig(ctx context.Context) (model.Document, error) {
	var doc model.Document
	if err := c.request(ctx, http.MethodGet, "/api/devices/config", nil, &doc); err != nil {
		return model.Document{}, err
	}
	return doc, nil
}

// ApplyConfig submits the full document for the named active profile.
func (c *Client) ApplyConfig(ctx context.Context, profileID string, doc model.Document) error {
	path := "/api/devices/apply?profile=" + url.QueryEscape(profileID)
	return c.request(ctx, http.MethodPost, path, doc, nil)
}

// CreateProfile creates a profile, optionally cloning an existing one.
func (c *Client) CreateProfile(ctx context.Context, id, name, cloneID string) error {
	q := url.Values{}
	q.Set("id", id)
	q.Set("name", name)
	if cloneID != "" {
		q.Set("clone", cloneID)
	}
	return c.request(ctx, http.MethodPost, "/api/devices/profile/create?"+q.Encode(), nil, nil)
}

// RenameProfile renames a profile by id.
func (c *Client) RenameProfile(ctx context.Context, id, name string) error {
	q := url.Values{}
	q.Set("id", id)
	q.Set("name", name)
	return c.request(ctx, http.MethodPost, "/api/devices/profile/rename?"+q.Encode(), nil, nil)
}

// DeleteProfile deletes a profile by id.
func (c *Client) DeleteProfile(ctx context.Context, id string) error {
	path := "/api/devices/profile/delete?id=" + url.QueryEscape(id)
	return c.request(ctx, http.MethodPost, path, nil, nil)
}

// ActivateProfile makes the given profile the active one.
func (c *Client) ActivateProfile(ctx context.Context, id string) error {
	path := "/api/devices/profile/activate?id=" + url.QueryEscape(id)
	return c.request(ctx, http.MethodPost, path, nil, nil)
}
