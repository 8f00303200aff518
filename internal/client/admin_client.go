package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/yourorg/bragboard-client/internal/model"
)

// AdminClient handles communication with the admin and moderation endpoints
type AdminClient struct {
	*Client
}

// NewAdminClient creates a new admin client
func NewAdminClient(c *Client) *AdminClient {
	return &AdminClient{Client: c}
}

// Analytics retrieves aggregate usage statistics
func (c *AdminClient) Analytics(ctx context.Context) (*model.Analytics, error) {
	var analytics model.Analytics
	if err := c.get(ctx, "/api/admin/analytics", &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}

// Leaderboard retrieves the recognition leaderboard
func (c *AdminClient) Leaderboard(ctx context.Context) (*model.Leaderboard, error) {
	var leaderboard model.Leaderboard
	if err := c.get(ctx, "/api/admin/leaderboard", &leaderboard); err != nil {
		return nil, err
	}
	return &leaderboard, nil
}

// Reports retrieves moderation reports, optionally filtered by status
func (c *AdminClient) Reports(ctx context.Context, status string) ([]model.Report, error) {
	path := "/api/admin/reports"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var reports []model.Report
	if err := c.get(ctx, path, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// ResolveReport resolves a report with the given action (approved or rejected)
func (c *AdminClient) ResolveReport(ctx context.Context, reportID int64, action string) error {
	path := fmt.Sprintf("/api/admin/reports/%d/resolve?action=%s", reportID, url.QueryEscape(action))
	return c.post(ctx, path, nil, nil)
}

// DeleteShoutout removes a shout-out as a moderation action
func (c *AdminClient) DeleteShoutout(ctx context.Context, shoutoutID int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/admin/shoutouts/%d", shoutoutID))
}

// ReportShoutout raises a moderation flag against a shout-out
func (c *AdminClient) ReportShoutout(ctx context.Context, shoutoutID int64, reason string) (*model.Report, error) {
	req := model.ReportCreate{Reason: reason}
	var report model.Report
	if err := c.post(ctx, fmt.Sprintf("/api/admin/shoutouts/%d/report", shoutoutID), req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
