package matchapi

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the Client interface for
// testing. It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GetMatchesFunc     func(ctx context.Context, params ListParams) ([]RawMatch, error)
	GetMatchDetailFunc func(ctx context.Context, apiMatchID string, includeEvents bool) (RawDetail, error)

	// Call records
	GetMatchesCalls     []ListParams
	GetMatchDetailCalls []string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetMatchesCalls = nil
	m.GetMatchDetailCalls = nil
}

func (m *MockClient) GetMatches(ctx context.Context, params ListParams) ([]RawMatch, error) {
	m.mu.Lock()
	m.GetMatchesCalls = append(m.GetMatchesCalls, params)
	fn := m.GetMatchesFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, params)
	}
	return []RawMatch{}, nil
}

func (m *MockClient) GetMatchDetail(ctx context.Context, apiMatchID string, includeEvents bool) (RawDetail, error) {
	m.mu.Lock()
	m.GetMatchDetailCalls = append(m.GetMatchDetailCalls, apiMatchID)
	fn := m.GetMatchDetailFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, apiMatchID, includeEvents)
	}
	return RawDetail{}, nil
}
