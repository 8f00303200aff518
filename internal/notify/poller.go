// Package notify maintains the signed-in user's notification state: a
// polling loop keyed to the session lifetime, the panel open/close state,
// the optimistic read-reconciliation protocol, and notification routing.
package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yourorg/bragboard-client/internal/model"
)

const (
	defaultInterval   = 60 * time.Second
	defaultFetchLimit = 20

	// Delay before the post-clear re-fetch that reconciles against
	// notifications arriving server-side during the clear.
	clearRefetchDelay = 300 * time.Millisecond
)

// API is the notification collaborator surface.
type API interface {
	List(ctx context.Context, limit int) (*model.NotificationList, error)
	MarkRead(ctx context.Context, ids []int64) error
	ClearAll(ctx context.Context) error
}

// Acknowledger confirms read-state with the server after the local state
// has already been marked. The default implementation is fire-and-forget:
// once set, the local read-state is authoritative and a failed
// acknowledgment is neither retried nor surfaced. A stricter reconciling
// strategy can be substituted through this interface.
type Acknowledger interface {
	Acknowledge(ctx context.Context, ids []int64)
}

type serverAcknowledger struct {
	api    API
	logger *zap.Logger
}

func (a *serverAcknowledger) Acknowledge(ctx context.Context, ids []int64) {
	go func() {
		if err := a.api.MarkRead(ctx, ids); err != nil {
			a.logger.Debug("read acknowledgment failed", zap.Int("count", len(ids)), zap.Error(err))
		}
	}()
}

// Poller periodically fetches the unread notification feed while a session
// is active. All state it holds is cleared on Stop.
type Poller struct {
	api      API
	ack      Acknowledger
	logger   *zap.Logger
	interval time.Duration
	limit    int

	// test seams
	now          func() time.Time
	refetchDelay time.Duration

	mu            sync.Mutex
	notifications []model.Notification
	unread        int
	panelOpen     bool
	cancel        context.CancelFunc
	refetchTimer  *time.Timer
}

// New creates a poller. ack may be nil, selecting the default fire-and-forget
// server acknowledger. Zero interval and limit select the defaults.
func New(api API, ack Acknowledger, interval time.Duration, limit int, logger *zap.Logger) *Poller {
	if ack == nil {
		ack = &serverAcknowledger{api: api, logger: logger}
	}
	if interval <= 0 {
		interval = defaultInterval
	}
	if limit <= 0 {
		limit = defaultFetchLimit
	}
	return &Poller{
		api:          api,
		ack:          ack,
		logger:       logger,
		interval:     interval,
		limit:        limit,
		now:          time.Now,
		refetchDelay: clearRefetchDelay,
	}
}

// Start performs an immediate fetch and begins the polling loop. Starting an
// already-running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	p.Fetch(ctx)

	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Fetch(ctx)
		}
	}
}

// Stop tears the polling loop down and clears all local notification state.
// It is invoked when the session ends and is safe to call repeatedly.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	if p.refetchTimer != nil {
		p.refetchTimer.Stop()
		p.refetchTimer = nil
	}
	p.notifications = nil
	p.unread = 0
	p.panelOpen = false
}

// Fetch replaces the local notification state wholesale with the server's
// most-recent entries. Failure is logged and leaves prior state intact.
func (p *Poller) Fetch(ctx context.Context) error {
	list, err := p.api.List(ctx, p.limit)
	if err != nil {
		p.logger.Warn("failed to fetch notifications", zap.Error(err))
		return err
	}

	p.mu.Lock()
	p.notifications = list.Notifications
	p.unread = list.UnreadCount
	open := p.panelOpen
	p.mu.Unlock()

	if open {
		p.reconcileRead(ctx)
	}
	return nil
}

// TogglePanel flips the panel state. Opening triggers an immediate fetch and
// the read-reconciliation protocol.
func (p *Poller) TogglePanel(ctx context.Context) bool {
	p.mu.Lock()
	p.panelOpen = !p.panelOpen
	open := p.panelOpen
	p.mu.Unlock()

	if open {
		p.Fetch(ctx)
		p.reconcileRead(ctx)
	}
	return open
}

// ClosePanel closes the panel without further side effects (outside-click
// dismissal path).
func (p *Poller) ClosePanel() {
	p.mu.Lock()
	p.panelOpen = false
	p.mu.Unlock()
}

// reconcileRead optimistically marks every currently-unread entry as read,
// stamps a client-side read timestamp, zeroes the unread counter, and asks
// the acknowledger to confirm the ids with the server.
func (p *Poller) reconcileRead(ctx context.Context) {
	p.mu.Lock()
	if !p.panelOpen || p.unread == 0 {
		p.mu.Unlock()
		return
	}
	readAt := p.now()
	var ids []int64
	for i := range p.notifications {
		if p.notifications[i].IsRead {
			continue
		}
		ids = append(ids, p.notifications[i].ID)
		p.notifications[i].IsRead = true
		p.notifications[i].ReadAt = &readAt
	}
	p.unread = 0
	p.mu.Unlock()

	if len(ids) > 0 {
		p.ack.Acknowledge(ctx, ids)
	}
}

// ClearAll requests deletion of all notifications. On success the local
// state empties immediately and a delayed re-fetch runs only if the panel is
// still open, reconciling against concurrent server-side arrivals.
func (p *Poller) ClearAll(ctx context.Context) error {
	if err := p.api.ClearAll(ctx); err != nil {
		p.logger.Warn("failed to clear notifications", zap.Error(err))
		return err
	}

	p.mu.Lock()
	p.notifications = nil
	p.unread = 0
	if p.refetchTimer != nil {
		p.refetchTimer.Stop()
	}
	p.refetchTimer = time.AfterFunc(p.refetchDelay, func() {
		p.mu.Lock()
		open := p.panelOpen
		p.mu.Unlock()
		if open {
			p.Fetch(ctx)
		}
	})
	p.mu.Unlock()
	return nil
}

// Open resolves the route for a clicked notification and closes the panel.
func (p *Poller) Open(n model.Notification, viewerIsAdmin bool) string {
	p.ClosePanel()
	return routeFor(n, viewerIsAdmin)
}

// routeFor picks the navigation target: an explicit redirect embedded in the
// payload wins, else the reference type maps to a default route. The admin
// destination is gated on the viewer's role.
func routeFor(n model.Notification, viewerIsAdmin bool) string {
	if n.Payload != nil && n.Payload.Redirect != "" {
		return n.Payload.Redirect
	}
	switch n.ReferenceType {
	case model.ReferenceAdmin:
		if viewerIsAdmin {
			return "/admin"
		}
		return "/"
	case model.ReferenceDepartmentChange:
		return "/profile"
	default:
		return "/"
	}
}

// Notifications returns a copy of the currently-held entries.
func (p *Poller) Notifications() []model.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.Notification, len(p.notifications))
	copy(out, p.notifications)
	return out
}

// UnreadCount returns the local unread counter. It always equals the number
// of held entries with is_read false.
func (p *Poller) UnreadCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unread
}

// PanelOpen reports whether the panel is open.
func (p *Poller) PanelOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.panelOpen
}
