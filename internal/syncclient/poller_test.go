package syncclient

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskboard/internal/adapter/http/dto"
)

type fakeSource struct {
	mu          sync.Mutex
	unread      []int
	interval    time.Duration
	tasks       []dto.TaskItem
	failTasks   int
	taskCalls   int
	unreadCalls int
	queries     []url.Values
}

func (f *fakeSource) ListTasks(_ context.Context, query url.Values) ([]dto.TaskItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.taskCalls++
	f.queries = append(f.queries, query)
	if f.failTasks > 0 {
		f.failTasks--
		return nil, errors.New("connection refused")
	}
	return f.tasks, nil
}

func (f *fakeSource) UnreadCount(context.Context) (UnreadCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	if f.unreadCalls < len(f.unread) {
		count = f.unread[f.unreadCalls]
	} else if len(f.unread) > 0 {
		count = f.unread[len(f.unread)-1]
	}
	f.unreadCalls++
	return UnreadCount{Count: count, PollInterval: f.interval}, nil
}

func (f *fakeSource) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.taskCalls
}

func TestPoller_PollReportsUnreadChanges(t *testing.T) {
	source := &fakeSource{unread: []int{2, 2, 5}, tasks: []dto.TaskItem{{ID: "a"}}}

	type change struct{ prev, cur int }
	var changes []change
	poller := NewPoller(source, NewView(), PollerConfig{
		Interval: time.Hour,
		OnUnreadChange: func(prev, cur int) {
			changes = append(changes, change{prev, cur})
		},
	}, zap.NewNop())

	for i := 0; i < 3; i++ {
		poller.Poll(context.Background())
	}

	require.Equal(t, []change{{0, 2}, {2, 5}}, changes)
	require.Equal(t, 1, poller.view.Len())
}

func TestPoller_FailedFetchKeepsView(t *testing.T) {
	source := &fakeSource{tasks: []dto.TaskItem{{ID: "a"}}}
	view := NewView()
	poller := NewPoller(source, view, PollerConfig{Interval: time.Hour}, zap.NewNop())

	poller.Poll(context.Background())
	require.Equal(t, 1, view.Len())

	source.mu.Lock()
	source.failTasks = 1
	source.tasks = nil
	source.mu.Unlock()

	synced := false
	poller.cfg.OnSynced = func(*View) { synced = true }
	poller.Poll(context.Background())
	require.False(t, synced)
	require.Equal(t, 1, view.Len())

	poller.Poll(context.Background())
	require.True(t, synced)
	require.Equal(t, 0, view.Len())
}

func TestPoller_RunFetchesImmediatelyThenOnTicks(t *testing.T) {
	source := &fakeSource{failTasks: 1}
	query := url.Values{"section_id": {"sec-1"}}
	poller := NewPoller(source, NewView(), PollerConfig{Interval: 10 * time.Millisecond, Query: query}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- poller.Run(ctx) }()

	require.Eventually(t, func() bool { return source.calls() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop")
	}

	source.mu.Lock()
	defer source.mu.Unlock()
	require.Equal(t, query, source.queries[0])
}

func TestPoller_FollowsAdvertisedInterval(t *testing.T) {
	source := &fakeSource{interval: 20 * time.Millisecond}
	poller := NewPoller(source, NewView(), PollerConfig{}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- poller.Run(ctx) }()

	// The 30s default would never tick within the deadline.
	require.Eventually(t, func() bool { return source.calls() >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
