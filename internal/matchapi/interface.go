package matchapi

import "context"

// Client defines the interface for the upstream match API.
// This allows for mock implementations to be used in tests.
type Client interface {
	GetMatches(ctx context.Context, params ListParams) ([]RawMatch, error)
	GetMatchDetail(ctx context.Context, apiMatchID string, includeEvents bool) (RawDetail, error)
}
