package alerts

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
	"go.uber.org/zap"
)

const (
	Path            = "/api/alerts/"
	DefaultInterval = 5 * time.Minute
	FilterAll       = "all"
)

// Getter is the slice of apiclient.Client the alerts service needs.
type Getter interface {
	Get(ctx context.Context, path string, out interface{}) error
}

type AlertService struct {
	client Getter
	logger *zap.Logger
}

func NewAlertService(client Getter, logger *zap.Logger) *AlertService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlertService{client: client, logger: logger}
}

// Fetch returns the current summary and alert list. A null alert list
// comes back as an empty slice.
func (s *AlertService) Fetch(ctx context.Context) (*models.AlertsResponse, error) {
	var resp models.AlertsResponse
	if err := s.client.Get(ctx, Path, &resp); err != nil {
		s.logger.Error("Error fetching alerts", zap.Error(err))
		return nil, err
	}
	if resp.Alerts == nil {
		resp.Alerts = []models.Alert{}
	}
	return &resp, nil
}

// List is Fetch flattened to the alert records.
func (s *AlertService) List(ctx context.Context) ([]models.Alert, error) {
	resp, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Alerts, nil
}

// Filter keeps alerts of one type; "all" or "" keeps everything.
func Filter(alerts []models.Alert, alertType string) []models.Alert {
	if alertType == "" || alertType == FilterAll {
		return alerts
	}
	filtered := []models.Alert{}
	for _, alert := range alerts {
		if alert.Type == alertType {
			filtered = append(filtered, alert)
		}
	}
	return filtered
}

// BadgeText is the bell counter. Empty means the badge is hidden.
func BadgeText(total int) string {
	switch {
	case total <= 0:
		return ""
	case total > 99:
		return "99+"
	default:
		return strconv.Itoa(total)
	}
}

// Watcher refreshes alerts on an interval and hands each snapshot to the
// callback. A refresh that is still running when the next one is due is
// not duplicated.
type Watcher struct {
	service  *AlertService
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	loading bool
	latest  *models.AlertsResponse
}

func NewWatcher(service *AlertService, interval time.Duration, logger *zap.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{service: service, interval: interval, logger: logger}
}

// Latest returns the last successful snapshot, nil before the first one.
func (w *Watcher) Latest() *models.AlertsResponse {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.latest
}

// Refresh fetches once. It returns false when another refresh is in flight.
func (w *Watcher) Refresh(ctx context.Context, deliver func(*models.AlertsResponse)) bool {
	w.mu.Lock()
	if w.loading {
		w.mu.Unlock()
		return false
	}
	w.loading = true
	w.mu.Unlock()

	resp, err := w.service.Fetch(ctx)

	w.mu.Lock()
	w.loading = false
	if err == nil {
		w.latest = resp
	}
	w.mu.Unlock()

	if err != nil {
		w.logger.Warn("Unable to load alerts", zap.Error(err))
		return true
	}
	if deliver != nil {
		deliver(resp)
	}
	return true
}

// Run fetches immediately and then every interval until ctx is done.
func (w *Watcher) Run(ctx context.Context, deliver func(*models.AlertsResponse)) {
	w.Refresh(ctx, deliver)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Refresh(ctx, deliver)
		}
	}
}
