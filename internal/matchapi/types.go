package matchapi

// DataType selects which logical slice of the fixture list an endpoint
// returns.
type DataType string

const (
	// DataTypeLiveUpcoming returns matches that are live or scheduled.
	DataTypeLiveUpcoming DataType = "liveUpcoming"
	// DataTypeLive returns only matches currently in play.
	DataTypeLive DataType = "live"
	// DataTypeOld returns completed, historical matches.
	DataTypeOld DataType = "old"
)

// RawMatch is one untrusted match record from a list endpoint. Key
// names vary between endpoints, so the payload stays dynamic until the
// normalizer resolves it.
type RawMatch map[string]any

// RawDetail is the untrusted per-match detail payload. Event lists may
// arrive under "events", "timeline" or "matchFeed"; clockState,
// penalties and playerStats are all optional.
type RawDetail map[string]any

// ListParams describes one list fetch.
type ListParams struct {
	DataType DataType
	Limit    int
}
