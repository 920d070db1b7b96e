// Package topk keeps a sliding estimate of the most frequently
// resolved hosts, backing the daemon's stats endpoint.
package topk

import (
	"sync"

	"github.com/keilerkonzept/topk/sliding"
)

// HostCount is one entry of the current top-k estimate.
type HostCount struct {
	Host  string `json:"host"`
	Count uint64 `json:"count"`
}

// HostSketch provides thread-safe access to a sliding sketch and
// manages ticking. The window advances every tickSize observations.
type HostSketch struct {
	mu       sync.Mutex
	sketch   *sliding.Sketch
	tickSize uint64
	tickReq  uint64 // observations since the last tick
}

// New creates a sketch tracking the top k hosts over windowSize ticks.
// tickSize is how many observations advance the window by one tick.
func New(k, windowSize int, tickSize uint64) *HostSketch {
	if tickSize == 0 {
		tickSize = 1000
	}
	return &HostSketch{
		sketch:   sliding.New(k, windowSize),
		tickSize: tickSize,
	}
}

// Observe records one resolution for host.
func (hs *HostSketch) Observe(host string) {
	if host == "" {
		return
	}

	hs.mu.Lock()
	defer hs.mu.Unlock()

	hs.sketch.Incr(host)
	hs.tickReq++
	if hs.tickReq >= hs.tickSize {
		hs.sketch.Tick()
		hs.tickReq = 0
	}
}

// Top returns up to n hosts by estimated count, most frequent first.
// n <= 0 returns the sketch's full top-k.
func (hs *HostSketch) Top(n int) []HostCount {
	hs.mu.Lock()
	defer hs.mu.Unlock()

	items := hs.sketch.SortedSlice()
	if n > 0 && len(items) > n {
		items = items[:n]
	}

	hosts := make([]HostCount, 0, len(items))
	for _, item := range items {
		hosts = append(hosts, HostCount{Host: item.Item, Count: uint64(item.Count)})
	}
	return hosts
}
