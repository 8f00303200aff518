package admin

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/yourorg/bragboard-client/internal/apperr"
	"github.com/yourorg/bragboard-client/internal/model"
)

type fakeAPI struct {
	analytics      *model.Analytics
	analyticsErr   error
	leaderboard    *model.Leaderboard
	leaderboardErr error
	reports        []model.Report
	reportsErr     error

	resolved      []string
	resolveErr    error
	deleted       []int64
	reportsCalls  int
	reportsStatus []string
}

func (f *fakeAPI) Analytics(ctx context.Context) (*model.Analytics, error) {
	return f.analytics, f.analyticsErr
}

func (f *fakeAPI) Leaderboard(ctx context.Context) (*model.Leaderboard, error) {
	return f.leaderboard, f.leaderboardErr
}

func (f *fakeAPI) Reports(ctx context.Context, status string) ([]model.Report, error) {
	f.reportsCalls++
	f.reportsStatus = append(f.reportsStatus, status)
	return f.reports, f.reportsErr
}

func (f *fakeAPI) ResolveReport(ctx context.Context, reportID int64, action string) error {
	if f.resolveErr != nil {
		return f.resolveErr
	}
	f.resolved = append(f.resolved, action)
	return nil
}

func (f *fakeAPI) DeleteShoutout(ctx context.Context, shoutoutID int64) error {
	f.deleted = append(f.deleted, shoutoutID)
	return nil
}

func TestRefreshLoadsBothSections(t *testing.T) {
	api := &fakeAPI{
		analytics:   &model.Analytics{TotalUsers: 12, TotalShoutouts: 34},
		leaderboard: &model.Leaderboard{TopSenders: []model.LeaderboardSender{{}}},
	}
	d := NewDashboard(api, zap.NewNop())

	if err := d.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := d.Analytics(); got == nil || got.TotalUsers != 12 {
		t.Fatalf("analytics = %+v", got)
	}
	if got := d.Leaderboard(); got == nil || len(got.TopSenders) != 1 {
		t.Fatalf("leaderboard = %+v", got)
	}
}

func TestRefreshPartialFailureKeepsFreshSection(t *testing.T) {
	api := &fakeAPI{
		analytics:      &model.Analytics{TotalUsers: 12},
		leaderboardErr: errors.New("connection reset"),
	}
	d := NewDashboard(api, zap.NewNop())

	if err := d.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if got := d.Analytics(); got == nil || got.TotalUsers != 12 {
		t.Fatal("successful section must still update")
	}
	if d.Leaderboard() != nil {
		t.Fatal("failed section must keep prior state")
	}
}

func TestRefreshFailureKeepsPriorData(t *testing.T) {
	api := &fakeAPI{
		analytics:   &model.Analytics{TotalUsers: 12},
		leaderboard: &model.Leaderboard{},
	}
	d := NewDashboard(api, zap.NewNop())
	if err := d.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	api.analyticsErr = errors.New("connection reset")
	api.leaderboardErr = errors.New("connection reset")
	if err := d.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if got := d.Analytics(); got == nil || got.TotalUsers != 12 {
		t.Fatal("prior analytics must survive a failed refresh")
	}
}

func TestFetchReportsFailureKeepsQueue(t *testing.T) {
	api := &fakeAPI{reports: []model.Report{{ID: 1, Status: model.ReportPending}}}
	d := NewDashboard(api, zap.NewNop())

	if err := d.FetchReports(context.Background(), model.ReportPending); err != nil {
		t.Fatalf("FetchReports: %v", err)
	}
	api.reportsErr = errors.New("connection reset")
	if err := d.FetchReports(context.Background(), model.ReportPending); err == nil {
		t.Fatal("expected error")
	}
	if len(d.Reports()) != 1 {
		t.Fatal("prior queue must survive a failed fetch")
	}
}

func TestResolveRejectsUnknownAction(t *testing.T) {
	api := &fakeAPI{}
	d := NewDashboard(api, zap.NewNop())

	err := d.Resolve(context.Background(), 1, "delete")
	if !apperr.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if len(api.resolved) != 0 {
		t.Fatal("invalid action must not reach the server")
	}
}

func TestResolveRefreshesQueue(t *testing.T) {
	api := &fakeAPI{}
	d := NewDashboard(api, zap.NewNop())

	if err := d.Resolve(context.Background(), 1, ActionApprove); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(api.resolved) != 1 || api.resolved[0] != ActionApprove {
		t.Fatalf("resolved = %v", api.resolved)
	}
	if api.reportsCalls != 1 || api.reportsStatus[0] != model.ReportPending {
		t.Fatalf("queue refresh missing, calls = %d, statuses = %v", api.reportsCalls, api.reportsStatus)
	}
}

func TestDeleteShoutoutRefreshesQueue(t *testing.T) {
	api := &fakeAPI{}
	d := NewDashboard(api, zap.NewNop())

	if err := d.DeleteShoutout(context.Background(), 7); err != nil {
		t.Fatalf("DeleteShoutout: %v", err)
	}
	if len(api.deleted) != 1 || api.deleted[0] != 7 {
		t.Fatalf("deleted = %v", api.deleted)
	}
	if api.reportsCalls != 1 {
		t.Fatal("queue refresh missing after delete")
	}
}
