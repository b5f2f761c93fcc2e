// Package analytics collects search events, aggregates them via Kafka, and
// snapshots the aggregates to PostgreSQL.
package analytics

import "time"

type EventType string

const (
	EventSearch EventType = "search"
	EventReload EventType = "reload"
)

// SearchEvent describes one completed search call.
type SearchEvent struct {
	Type        EventType `json:"type"`
	Query       string    `json:"query"`
	QueryTokens []string  `json:"query_tokens"`
	Results     int       `json:"results"`
	CacheHit    bool      `json:"cache_hit"`
	LatencyMs   int64     `json:"latency_ms"`
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id"`
}

// ReloadEvent describes one index rebuild attempt.
type ReloadEvent struct {
	Type      EventType `json:"type"`
	Success   bool      `json:"success"`
	Products  int       `json:"products"`
	BuildMs   int64     `json:"build_ms"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ReloadRequest is the payload of the catalog reload topic. Any message on
// that topic triggers a rebuild; the fields exist for audit logging.
type ReloadRequest struct {
	RequestedBy string    `json:"requested_by"`
	Timestamp   time.Time `json:"timestamp"`
}
