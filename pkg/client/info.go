package client

import (
	"context"
	"net/http"
	"sort"
)

const (
	infoPath       = "/info"
	infoImageField = "image"
)

// InfoInput is the payload for creating or updating a news/info item.
// Fields are sent as text parts in key order; Image, when set, is sent as
// the "image" file part.
type InfoInput struct {
	Fields map[string]string
	Image  *File
}

func (in InfoInput) form() *Form {
	keys := make([]string, 0, len(in.Fields))
	for k := range in.Fields {
		if k == infoImageField && in.Image != nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f := NewForm()
	for _, k := range keys {
		f.Field(k, in.Fields[k])
	}
	if in.Image != nil {
		f.File(infoImageField, *in.Image)
	}
	return f
}

// InfoService covers /info. Create and Update upload multipart forms.
type InfoService service

// List returns every info item.
func (s *InfoService) List(ctx context.Context) (Result, error) {
	return s.client.Do(ctx, Request{Path: infoPath})
}

// Get returns one info item by id.
func (s *InfoService) Get(ctx context.Context, id string) (Result, error) {
	return (*service)(s).byID(ctx, http.MethodGet, infoPath, id, nil)
}

// Create posts in as multipart/form-data.
func (s *InfoService) Create(ctx context.Context, in InfoInput) (Result, error) {
	return s.client.Do(ctx, Request{Method: http.MethodPost, Path: infoPath, Body: in.form()})
}

// Update patches the item with a multipart/form-data body.
func (s *InfoService) Update(ctx context.Context, id string, in InfoInput) (Result, error) {
	return (*service)(s).byID(ctx, http.MethodPatch, infoPath, id, in.form())
}

// Delete removes the info item.
func (s *InfoService) Delete(ctx context.Context, id string) (Result, error) {
	return (*service)(s).byID(ctx, http.MethodDelete, infoPath, id, nil)
}
