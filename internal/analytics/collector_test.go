package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectorTrackNeverBlocks(t *testing.T) {
	c := NewCollector(nil, 2)

	c.Track(SearchEvent{Type: EventSearch, Query: "a"})
	c.Track(SearchEvent{Type: EventSearch, Query: "b"})
	assert.Len(t, c.eventCh, 2)

	// Buffer is full; the third event is dropped, not queued.
	c.Track(SearchEvent{Type: EventSearch, Query: "c"})
	assert.Len(t, c.eventCh, 2)
}

func TestCollectorDefaultBufferSize(t *testing.T) {
	c := NewCollector(nil, 0)
	assert.Equal(t, 10000, cap(c.eventCh))
}
