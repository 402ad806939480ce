package clientsync

import (
	"github.com/jaehyunkim/engage/internal/searchservice"
)

// SearchSession serializes overlapping search requests by sequence
// number. Debounced input can leave several queries in flight; only the
// response for the most recent query may update the visible results,
// older ones are discarded.
type SearchSession struct {
	client SearchClient

	seq     int
	applied int
	results []searchservice.RankedResult
}

func NewSearchSession(client SearchClient) *SearchSession {
	return &SearchSession{client: client}
}

func (s *SearchSession) Results() []searchservice.RankedResult {
	return s.results
}

// Begin reserves the next sequence number for a query about to be sent.
func (s *SearchSession) Begin() int {
	s.seq++
	return s.seq
}

// Apply installs a response if its sequence number is still the newest
// seen. It reports whether the results were taken.
func (s *SearchSession) Apply(seq int, results []searchservice.RankedResult) bool {
	if seq < s.seq || seq <= s.applied {
		return false
	}
	s.applied = seq
	s.results = results
	return true
}

// Query is the synchronous convenience path: one Begin/Apply pair around
// a blocking transport call.
func (s *SearchSession) Query(query, locale string) ([]searchservice.RankedResult, error) {
	seq := s.Begin()
	results, err := s.client.Search(query, locale)
	if err != nil {
		return nil, err
	}
	if !s.Apply(seq, results) {
		return s.results, nil
	}
	return results, nil
}
