package admin

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/yourorg/bragboard-client/internal/apperr"
	"github.com/yourorg/bragboard-client/internal/model"
)

// API is the admin endpoint surface the dashboard depends on.
type API interface {
	Analytics(ctx context.Context) (*model.Analytics, error)
	Leaderboard(ctx context.Context) (*model.Leaderboard, error)
	Reports(ctx context.Context, status string) ([]model.Report, error)
	ResolveReport(ctx context.Context, reportID int64, action string) error
	DeleteShoutout(ctx context.Context, shoutoutID int64) error
}

// Valid report resolution actions.
const (
	ActionApprove = "approved"
	ActionReject  = "rejected"
)

// Dashboard aggregates the admin views: analytics, the leaderboard and the
// moderation queue. Reads that fail leave the previously loaded data in place
// so the dashboard degrades instead of blanking out.
type Dashboard struct {
	api    API
	logger *zap.Logger

	mu          sync.RWMutex
	analytics   *model.Analytics
	leaderboard *model.Leaderboard
	reports     []model.Report
}

// NewDashboard creates an admin dashboard backed by the given API.
func NewDashboard(api API, logger *zap.Logger) *Dashboard {
	return &Dashboard{
		api:    api,
		logger: logger,
	}
}

// Refresh fetches analytics and the leaderboard concurrently. Each section
// updates independently, so one failing endpoint does not discard the other's
// fresh data. The first error encountered is returned.
func (d *Dashboard) Refresh(ctx context.Context) error {
	var (
		wg             sync.WaitGroup
		analytics      *model.Analytics
		leaderboard    *model.Leaderboard
		analyticsErr   error
		leaderboardErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		analytics, analyticsErr = d.api.Analytics(ctx)
	}()
	go func() {
		defer wg.Done()
		leaderboard, leaderboardErr = d.api.Leaderboard(ctx)
	}()
	wg.Wait()

	d.mu.Lock()
	if analyticsErr == nil {
		d.analytics = analytics
	}
	if leaderboardErr == nil {
		d.leaderboard = leaderboard
	}
	d.mu.Unlock()

	if analyticsErr != nil {
		d.logger.Error("failed to fetch analytics", zap.Error(analyticsErr))
		return analyticsErr
	}
	if leaderboardErr != nil {
		d.logger.Error("failed to fetch leaderboard", zap.Error(leaderboardErr))
		return leaderboardErr
	}
	return nil
}

// FetchReports loads the moderation queue, optionally filtered by status.
// On failure the previously loaded queue is kept.
func (d *Dashboard) FetchReports(ctx context.Context, status string) error {
	reports, err := d.api.Reports(ctx, status)
	if err != nil {
		d.logger.Error("failed to fetch reports", zap.Error(err))
		return err
	}
	d.mu.Lock()
	d.reports = reports
	d.mu.Unlock()
	return nil
}

// Resolve applies a moderation decision to a report and refreshes the queue.
func (d *Dashboard) Resolve(ctx context.Context, reportID int64, action string) error {
	if action != ActionApprove && action != ActionReject {
		return &apperr.ValidationError{
			Field:   "action",
			Message: fmt.Sprintf("action must be %q or %q", ActionApprove, ActionReject),
		}
	}
	if err := d.api.ResolveReport(ctx, reportID, action); err != nil {
		return err
	}
	return d.FetchReports(ctx, model.ReportPending)
}

// DeleteShoutout removes a reported shout-out and refreshes the queue.
func (d *Dashboard) DeleteShoutout(ctx context.Context, shoutoutID int64) error {
	if err := d.api.DeleteShoutout(ctx, shoutoutID); err != nil {
		return err
	}
	return d.FetchReports(ctx, model.ReportPending)
}

// Analytics returns the last successfully loaded analytics snapshot.
func (d *Dashboard) Analytics() *model.Analytics {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.analytics
}

// Leaderboard returns the last successfully loaded leaderboard.
func (d *Dashboard) Leaderboard() *model.Leaderboard {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.leaderboard
}

// Reports returns the currently loaded moderation queue.
func (d *Dashboard) Reports() []model.Report {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]model.Report, len(d.reports))
	copy(out, d.reports)
	return out
}
