package detection

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_NewRequestSupersedesOld(t *testing.T) {
	tracker := NewTracker()

	firstCtx, first := tracker.Begin(context.Background(), "s1", TargetNews)
	secondCtx, second := tracker.Begin(context.Background(), "s1", TargetNews)

	assert.ErrorIs(t, firstCtx.Err(), context.Canceled)
	assert.NoError(t, secondCtx.Err())
	assert.False(t, first.Current())
	assert.True(t, second.Current())

	first.Done()
	assert.True(t, second.Current(), "finishing a superseded request leaves the latest in place")
	assert.Equal(t, 1, tracker.Pending())

	second.Done()
	assert.Zero(t, tracker.Pending())
}

func TestTracker_KeysAreIndependent(t *testing.T) {
	tracker := NewTracker()

	_, news := tracker.Begin(context.Background(), "s1", TargetNews)
	_, media := tracker.Begin(context.Background(), "s1", TargetDeepfake)
	_, other := tracker.Begin(context.Background(), "s2", TargetNews)

	assert.True(t, news.Current())
	assert.True(t, media.Current())
	assert.True(t, other.Current())
	assert.Equal(t, 3, tracker.Pending())
}

func TestTracker_EmptyScopeIsUntracked(t *testing.T) {
	tracker := NewTracker()

	ctx1, t1 := tracker.Begin(context.Background(), "", TargetNews)
	_, t2 := tracker.Begin(context.Background(), "", TargetNews)

	assert.NoError(t, ctx1.Err())
	assert.True(t, t1.Current())
	assert.True(t, t2.Current())
	assert.Zero(t, tracker.Pending())

	t1.Done()
	assert.ErrorIs(t, ctx1.Err(), context.Canceled)
}

func TestTracker_OnlyLatestIsCurrent(t *testing.T) {
	tracker := NewTracker()

	var wg sync.WaitGroup
	tickets := make([]*Ticket, 20)
	for i := range tickets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, tickets[i] = tracker.Begin(context.Background(), "s", TargetPreview)
		}(i)
	}
	wg.Wait()

	current := 0
	for _, tk := range tickets {
		if tk.Current() {
			current++
		}
	}
	assert.Equal(t, 1, current)
}
