package alerts

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGetter struct {
	mock.Mock
}

func (m *MockGetter) Get(ctx context.Context, path string, out interface{}) error {
	args := m.Called(ctx, path, out)
	return args.Error(0)
}

func fill(resp models.AlertsResponse) func(mock.Arguments) {
	return func(args mock.Arguments) {
		*args.Get(2).(*models.AlertsResponse) = resp
	}
}

func TestBadgeText(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{0, ""},
		{-3, ""},
		{1, "1"},
		{99, "99"},
		{100, "99+"},
		{512, "99+"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BadgeText(tt.total), "total %d", tt.total)
	}
}

func TestFilter(t *testing.T) {
	alerts := []models.Alert{
		{Type: models.AlertLowStock, ProductName: "Biogesic"},
		{Type: models.AlertExpired, ProductName: "Neozep"},
		{Type: models.AlertLowStock, ProductName: "Alaxan"},
	}

	assert.Len(t, Filter(alerts, FilterAll), 3)
	assert.Len(t, Filter(alerts, ""), 3)
	assert.Len(t, Filter(alerts, models.AlertLowStock), 2)
	assert.Empty(t, Filter(alerts, models.AlertNearExpiry))
	assert.NotNil(t, Filter(alerts, models.AlertNearExpiry))
}

func TestFetchNormalizesNullAlerts(t *testing.T) {
	ctx := context.Background()
	getter := new(MockGetter)
	getter.On("Get", ctx, Path, mock.Anything).
		Run(fill(models.AlertsResponse{Summary: models.AlertSummary{Total: 0}})).
		Return(nil)

	resp, err := NewAlertService(getter, nil).Fetch(ctx)
	require.NoError(t, err)
	assert.NotNil(t, resp.Alerts)
	assert.Empty(t, resp.Alerts)
}

func TestWatcherKeepsLastGoodSnapshot(t *testing.T) {
	ctx := context.Background()
	getter := new(MockGetter)
	getter.On("Get", ctx, Path, mock.Anything).
		Run(fill(models.AlertsResponse{Summary: models.AlertSummary{Total: 2}, Alerts: []models.Alert{{}, {}}})).
		Return(nil).Once()
	getter.On("Get", ctx, Path, mock.Anything).Return(errors.New("offline")).Once()

	watcher := NewWatcher(NewAlertService(getter, nil), time.Minute, nil)
	delivered := 0
	deliver := func(*models.AlertsResponse) { delivered++ }

	assert.True(t, watcher.Refresh(ctx, deliver))
	assert.True(t, watcher.Refresh(ctx, deliver))
	assert.Equal(t, 1, delivered)
	require.NotNil(t, watcher.Latest())
	assert.Equal(t, 2, watcher.Latest().Summary.Total)
}

func TestWatcherSkipsOverlappingRefresh(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	started := make(chan struct{})
	getter := new(MockGetter)
	getter.On("Get", ctx, Path, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil).Once()

	watcher := NewWatcher(NewAlertService(getter, nil), time.Minute, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		watcher.Refresh(ctx, nil)
	}()
	<-started
	assert.False(t, watcher.Refresh(ctx, nil))
	close(release)
	wg.Wait()
	getter.AssertNumberOfCalls(t, "Get", 1)
}

func TestWatcherRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	getter := new(MockGetter)
	getter.On("Get", mock.Anything, Path, mock.Anything).Return(nil)

	watcher := NewWatcher(NewAlertService(getter, nil), 10*time.Millisecond, nil)
	snapshots := make(chan *models.AlertsResponse, 100)
	done := make(chan struct{})
	go func() {
		watcher.Run(ctx, func(resp *models.AlertsResponse) { snapshots <- resp })
		close(done)
	}()

	<-snapshots
	<-snapshots
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
