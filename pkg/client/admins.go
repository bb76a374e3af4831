package client

import (
	"context"
	"net/http"
)

const adminPath = "/user-admin"

// AdminService covers /user-admin.
type AdminService service

// List returns every admin user.
func (s *AdminService) List(ctx context.Context) (Result, error) {
	return s.client.Do(ctx, Request{Path: adminPath})
}

// Get returns one admin user by UUID.
func (s *AdminService) Get(ctx context.Context, uuid string) (Result, error) {
	return (*service)(s).byID(ctx, http.MethodGet, adminPath, uuid, nil)
}

// Create posts data as JSON.
func (s *AdminService) Create(ctx context.Context, data any) (Result, error) {
	return s.client.Do(ctx, Request{Method: http.MethodPost, Path: adminPath, Body: JSONBody(data)})
}

// Update patches the admin user with data.
func (s *AdminService) Update(ctx context.Context, uuid string, data any) (Result, error) {
	return (*service)(s).byID(ctx, http.MethodPatch, adminPath, uuid, JSONBody(data))
}

// Delete removes the admin user.
func (s *AdminService) Delete(ctx context.Context, uuid string) (Result, error) {
	return (*service)(s).byID(ctx, http.MethodDelete, adminPath, uuid, nil)
}
