package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const claimPath = "/klaim-alumni"

// ClaimStatus filters claim requests.
type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
	ClaimRejected ClaimStatus = "rejected"
	ClaimAll      ClaimStatus = "all"
)

// Valid reports whether s is one of the known statuses.
func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimPending, ClaimApproved, ClaimRejected, ClaimAll:
		return true
	}
	return false
}

// ClaimFilter narrows ClaimService.List. A Status outside the known set,
// and ClaimAll, add no status filter.
type ClaimFilter struct {
	Status ClaimStatus
	Query  string // free-text search, trimmed
}

// encode keeps status before q.
func (f ClaimFilter) encode() string {
	var parts []string
	if f.Status.Valid() && f.Status != ClaimAll {
		parts = append(parts, "status="+url.QueryEscape(string(f.Status)))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		parts = append(parts, "q="+url.QueryEscape(q))
	}
	return strings.Join(parts, "&")
}

// ClaimService covers /klaim-alumni, the requests from users to be linked
// to an existing alumni record.
type ClaimService service

// List returns claim requests matching filter.
func (s *ClaimService) List(ctx context.Context, filter ClaimFilter) (Result, error) {
	path := claimPath
	if q := filter.encode(); q != "" {
		path += "?" + q
	}
	return s.client.Do(ctx, Request{Path: path, Route: claimPath})
}

// Get returns one claim request by UUID.
func (s *ClaimService) Get(ctx context.Context, uuid string) (Result, error) {
	return (*service)(s).byID(ctx, http.MethodGet, claimPath, uuid, nil)
}

// Approve links the claimant to the alumni record.
func (s *ClaimService) Approve(ctx context.Context, uuid string) (Result, error) {
	return (*service)(s).byIDAction(ctx, http.MethodPost, claimPath, uuid, "approve", nil)
}

// Reject declines the claim.
func (s *ClaimService) Reject(ctx context.Context, uuid string) (Result, error) {
	return (*service)(s).byIDAction(ctx, http.MethodPost, claimPath, uuid, "reject", nil)
}

// Delete removes the claim request.
func (s *ClaimService) Delete(ctx context.Context, uuid string) (Result, error) {
	return (*service)(s).byID(ctx, http.MethodDelete, claimPath, uuid, nil)
}
