package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const alumniPath = "/alumni"

// AlumniService covers /alumni.
type AlumniService service

// List returns every alumni record.
func (s *AlumniService) List(ctx context.Context) (Result, error) {
	return s.client.Do(ctx, Request{Path: alumniPath})
}

// Get returns one record by UUID.
func (s *AlumniService) Get(ctx context.Context, uuid string) (Result, error) {
	return (*service)(s).byID(ctx, http.MethodGet, alumniPath, uuid, nil)
}

// Create posts data as JSON.
func (s *AlumniService) Create(ctx context.Context, data any) (Result, error) {
	return s.client.Do(ctx, Request{Method: http.MethodPost, Path: alumniPath, Body: JSONBody(data)})
}

// Update patches the record with data.
func (s *AlumniService) Update(ctx context.Context, uuid string, data any) (Result, error) {
	return (*service)(s).byID(ctx, http.MethodPatch, alumniPath, uuid, JSONBody(data))
}

// Delete removes the record.
func (s *AlumniService) Delete(ctx context.Context, uuid string) (Result, error) {
	return (*service)(s).byID(ctx, http.MethodDelete, alumniPath, uuid, nil)
}

// byID validates id and calls collection/{id}.
func (s *service) byID(ctx context.Context, method, collection, id string, body Body) (Result, error) {
	return s.byIDAction(ctx, method, collection, id, "", body)
}

// byIDAction validates id and calls collection/{id}/action, or
// collection/{id} when action is empty.
func (s *service) byIDAction(ctx context.Context, method, collection, id, action string, body Body) (Result, error) {
	route := collection + "/{id}"
	if action != "" {
		route += "/" + action
	}
	if err := requireID(id); err != nil {
		return Result{}, s.client.fail(ctx, route, err)
	}
	path := collection + "/" + url.PathEscape(strings.TrimSpace(id))
	if action != "" {
		path += "/" + action
	}
	return s.client.Do(ctx, Request{Method: method, Path: path, Route: route, Body: body})
}

// requireID rejects empty or blank identifiers.
func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}
	return nil
}
