package client

import (
	"context"
	"net/url"
)

// Reference data paths.
const (
	countryPath      = "/negara"
	ethnicityPath    = "/suku"
	studyProgramPath = "/program-studi"
)

// CountryService covers /negara.
type CountryService service

// List returns every country.
func (s *CountryService) List(ctx context.Context) (Result, error) {
	return s.client.Do(ctx, Request{Path: countryPath})
}

// EthnicityService covers /suku.
type EthnicityService service

// List returns every ethnic group.
func (s *EthnicityService) List(ctx context.Context) (Result, error) {
	return s.client.Do(ctx, Request{Path: ethnicityPath})
}

// StudyProgramService covers /program-studi.
type StudyProgramService service

// List passes params through as the query string.
func (s *StudyProgramService) List(ctx context.Context, params url.Values) (Result, error) {
	path := studyProgramPath
	if q := params.Encode(); q != "" {
		path += "?" + q
	}
	return s.client.Do(ctx, Request{Path: path, Route: studyProgramPath})
}
