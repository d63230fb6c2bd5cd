package session

import (
	"sort"
	"sync"
	"time"
)

// maxSummaryRequirement is how much of the requirement text a listing
// shows before truncation.
const maxSummaryRequirement = 100

// Registry is the process-wide keyed store of sessions. It lives for
// the process lifetime: no eviction, no deletion, no persistence.
//
// The registry itself is safe for concurrent use so operations on
// different session ids never interfere. Mutation of an individual
// session remains single-writer by design — callers must not issue
// concurrent requests against the same session id.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Put registers a session under its id, replacing any previous entry.
func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

// Get returns the session for the given id, or false if unknown.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Summary is the compact listing view of a session.
type Summary struct {
	ID           string    `json:"id"`
	Requirement  string    `json:"requirement"` // truncated to 100 chars
	Status       Status    `json:"status"`
	Completeness int       `json:"completeness"`
	CreatedAt    time.Time `json:"created_at"`
}

// List returns summaries of all sessions, oldest first.
func (r *Registry) List() []Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]Summary, 0, len(r.sessions))
	for _, s := range r.sessions {
		summaries = append(summaries, Summary{
			ID:           s.ID,
			Requirement:  truncate(s.Requirement, maxSummaryRequirement),
			Status:       s.Status,
			Completeness: s.Completeness.Overall,
			CreatedAt:    s.CreatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
	})
	return summaries
}

// Stats holds aggregate session counts for the info tool.
type Stats struct {
	Total     int `json:"total_sessions"`
	Active    int `json:"active_sessions"`
	Completed int `json:"completed_sessions"`
}

// Stats returns aggregate counts across all sessions.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st := Stats{Total: len(r.sessions)}
	for _, s := range r.sessions {
		switch s.Status {
		case StatusInProgress:
			st.Active++
		case StatusComplete:
			st.Completed++
		}
	}
	return st
}

// truncate shortens s to max characters, appending an ellipsis marker
// when anything was cut.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
