// ABOUTME: Usage counters for analyses performed by this process
// ABOUTME: Backs the stats endpoint with live numbers

package detection

import (
	"sync/atomic"

	"mediacheck/core/domain"
)

// Stats counts analyses. The zero value is ready to use and a nil *Stats ignores records.
type Stats struct {
	newsChecks  atomic.Int64
	fakeNews    atomic.Int64
	mediaChecks atomic.Int64
	fakeMedia   atomic.Int64
	failures    atomic.Int64
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	TotalChecks  int64
	FakeDetected int64
	NewsChecks   int64
	FakeNews     int64
	MediaChecks  int64
	FakeMedia    int64
	Failures     int64
}

// Record counts one outcome.
func (s *Stats) Record(outcome domain.Outcome) {
	if s == nil {
		return
	}

	switch o := outcome.(type) {
	case *domain.NewsReport:
		s.newsChecks.Add(1)
		if o.IsFake() {
			s.fakeNews.Add(1)
		}
	case *domain.DeepfakeReport:
		s.mediaChecks.Add(1)
		if o.IsFake() {
			s.fakeMedia.Add(1)
		}
	case *domain.Failure:
		s.failures.Add(1)
	}
}

// Snapshot returns the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	if s == nil {
		return StatsSnapshot{}
	}

	snap := StatsSnapshot{
		NewsChecks:  s.newsChecks.Load(),
		FakeNews:    s.fakeNews.Load(),
		MediaChecks: s.mediaChecks.Load(),
		FakeMedia:   s.fakeMedia.Load(),
		Failures:    s.failures.Load(),
	}
	snap.TotalChecks = snap.NewsChecks + snap.MediaChecks
	snap.FakeDetected = snap.FakeNews + snap.FakeMedia
	return snap
}
