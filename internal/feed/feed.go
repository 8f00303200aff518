// Package feed orchestrates the shout-out feed: fetch, create, react,
// comment, and report cycles. The view deliberately favors a full re-fetch
// over incremental patching after every mutation; convergence relies on the
// next fetch rather than on local merges.
package feed

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yourorg/bragboard-client/internal/apperr"
	"github.com/yourorg/bragboard-client/internal/mention"
	"github.com/yourorg/bragboard-client/internal/model"
)

// ShoutoutAPI is the shout-out collaborator surface.
type ShoutoutAPI interface {
	List(ctx context.Context) ([]model.Shoutout, error)
	Get(ctx context.Context, id int64) (*model.Shoutout, error)
	Create(ctx context.Context, create model.ShoutoutCreate) (*model.Shoutout, error)
}

// ReactionAPI is the reaction collaborator surface.
type ReactionAPI interface {
	Add(ctx context.Context, shoutoutID int64, reactionType string) error
	Remove(ctx context.Context, shoutoutID int64, reactionType string) error
	Users(ctx context.Context, shoutoutID int64, reactionType string) ([]model.User, error)
	AllUsers(ctx context.Context, shoutoutID int64) (map[string][]model.User, error)
}

// CommentAPI is the comment collaborator surface.
type CommentAPI interface {
	List(ctx context.Context, shoutoutID int64) ([]model.Comment, error)
	Create(ctx context.Context, shoutoutID int64, create model.CommentCreate) (*model.Comment, error)
}

// ModerationAPI is the reporting collaborator surface.
type ModerationAPI interface {
	ReportShoutout(ctx context.Context, shoutoutID int64, reason string) (*model.Report, error)
}

// UserAPI supplies the recipient picker data.
type UserAPI interface {
	List(ctx context.Context, department string) ([]model.User, error)
}

// Session exposes the signed-in viewer to the view-model.
type Session interface {
	User() *model.User
}

// ReportOutcome is the dedicated confirmation state for report submissions,
// kept distinct from the main feed state.
type ReportOutcome int

const (
	ReportIdle ReportOutcome = iota
	ReportSubmitted
	ReportFailed
)

// ViewModel drives the shout-out feed for one signed-in viewer.
type ViewModel struct {
	shoutouts  ShoutoutAPI
	reactions  ReactionAPI
	comments   CommentAPI
	moderation ModerationAPI
	users      UserAPI
	session    Session
	logger     *zap.Logger
	validate   *validator.Validate

	mu            sync.RWMutex
	items         []model.Shoutout
	reportOutcome ReportOutcome
	reportMessage string
}

// NewViewModel creates a feed view-model bound to the given session.
func NewViewModel(
	shoutouts ShoutoutAPI,
	reactions ReactionAPI,
	comments CommentAPI,
	moderation ModerationAPI,
	users UserAPI,
	session Session,
	logger *zap.Logger,
) *ViewModel {
	return &ViewModel{
		shoutouts:  shoutouts,
		reactions:  reactions,
		comments:   comments,
		moderation: moderation,
		users:      users,
		session:    session,
		logger:     logger,
		validate:   validator.New(),
	}
}

// FetchAll replaces the entire feed from the server. It is the universal
// refresh mechanism after every mutation. Failure is logged and leaves the
// prior list intact.
func (v *ViewModel) FetchAll(ctx context.Context) error {
	items, err := v.shoutouts.List(ctx)
	if err != nil {
		v.logger.Warn("failed to fetch shoutouts", zap.Error(err))
		return err
	}
	v.mu.Lock()
	v.items = items
	v.mu.Unlock()
	return nil
}

// Items returns a copy of the currently-held feed.
func (v *ViewModel) Items() []model.Shoutout {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]model.Shoutout, len(v.items))
	copy(out, v.items)
	return out
}

// Create posts a new shout-out. Blank messages and empty recipient lists are
// rejected client-side before any network call. On success the feed is
// refreshed; the caller closes the composer.
func (v *ViewModel) Create(ctx context.Context, message string, recipientIDs []int64) error {
	if strings.TrimSpace(message) == "" {
		return &apperr.ValidationError{Field: "message", Message: "message cannot be empty"}
	}
	if len(recipientIDs) == 0 {
		return &apperr.ValidationError{Field: "recipients", Message: "select at least one recipient"}
	}

	create := model.ShoutoutCreate{Message: message, RecipientIDs: recipientIDs}
	if err := v.validate.Struct(create); err != nil {
		return &apperr.ValidationError{Message: "invalid shout-out"}
	}

	if _, err := v.shoutouts.Create(ctx, create); err != nil {
		return err
	}
	return v.FetchAll(ctx)
}

// React toggles a reaction. Whether the call adds or removes is derived from
// the viewer's own reaction list as currently held, not server-confirmed; a
// divergent server state resolves last-write-wins through the full re-fetch.
func (v *ViewModel) React(ctx context.Context, shoutoutID int64, reactionType string) error {
	isAdding := true
	v.mu.RLock()
	for i := range v.items {
		if v.items[i].ID == shoutoutID {
			isAdding = !v.items[i].ViewerReacted(reactionType)
			break
		}
	}
	v.mu.RUnlock()

	var err error
	if isAdding {
		err = v.reactions.Add(ctx, shoutoutID, reactionType)
	} else {
		err = v.reactions.Remove(ctx, shoutoutID, reactionType)
	}
	if err != nil {
		v.logger.Warn("reaction toggle failed",
			zap.Int64("shoutout_id", shoutoutID),
			zap.String("type", reactionType),
			zap.Bool("adding", isAdding),
			zap.Error(err))
	}
	return v.FetchAll(ctx)
}

// Comment submits a comment. Mention ids are extracted client-side from the
// content's inline tokens. A submission failure propagates so the caller
// keeps the input intact.
func (v *ViewModel) Comment(ctx context.Context, shoutoutID int64, content string) error {
	if strings.TrimSpace(content) == "" {
		return &apperr.ValidationError{Field: "content", Message: "comment cannot be empty"}
	}

	create := model.CommentCreate{
		Content:  content,
		Mentions: mention.ExtractIDs(content),
	}
	if _, err := v.comments.Create(ctx, shoutoutID, create); err != nil {
		return err
	}
	return v.FetchAll(ctx)
}

// Comments retrieves the comment thread for one shout-out.
func (v *ViewModel) Comments(ctx context.Context, shoutoutID int64) ([]model.Comment, error) {
	return v.comments.List(ctx, shoutoutID)
}

// ReactionUsers fetches who applied one reaction type to a shout-out. The
// detail view is independent of the main list refresh cycle.
func (v *ViewModel) ReactionUsers(ctx context.Context, shoutoutID int64, reactionType string) ([]model.User, error) {
	return v.reactions.Users(ctx, shoutoutID, reactionType)
}

// AllReactionUsers fetches reacting users grouped by type.
func (v *ViewModel) AllReactionUsers(ctx context.Context, shoutoutID int64) (map[string][]model.User, error) {
	return v.reactions.AllUsers(ctx, shoutoutID)
}

// Report submits a moderation flag. The outcome lands in the dedicated
// confirmation state rather than mutating the feed.
func (v *ViewModel) Report(ctx context.Context, shoutoutID int64, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return &apperr.ValidationError{Field: "reason", Message: "report reason cannot be empty"}
	}

	if _, err := v.moderation.ReportShoutout(ctx, shoutoutID, reason); err != nil {
		v.setReportOutcome(ReportFailed, reportFailureMessage(err))
		return err
	}
	v.setReportOutcome(ReportSubmitted, "report submitted for review")
	return nil
}

// ReportOutcome returns the confirmation state of the last report submission.
func (v *ViewModel) ReportOutcome() (ReportOutcome, string) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.reportOutcome, v.reportMessage
}

// ClearReportOutcome resets the confirmation state.
func (v *ViewModel) ClearReportOutcome() {
	v.setReportOutcome(ReportIdle, "")
}

func (v *ViewModel) setReportOutcome(outcome ReportOutcome, message string) {
	v.mu.Lock()
	v.reportOutcome = outcome
	v.reportMessage = message
	v.mu.Unlock()
}

// Recipients returns the users the viewer may tag: members of the viewer's
// department, excluding the viewer.
func (v *ViewModel) Recipients(ctx context.Context) ([]model.User, error) {
	viewer := v.session.User()
	if viewer == nil {
		return nil, &apperr.AuthError{Detail: "no active session"}
	}
	users, err := v.users.List(ctx, viewer.Department)
	if err != nil {
		return nil, err
	}
	out := users[:0]
	for _, u := range users {
		if u.ID != viewer.ID {
			out = append(out, u)
		}
	}
	return out, nil
}

func reportFailureMessage(err error) string {
	var valErr *apperr.ValidationError
	if errors.As(err, &valErr) && valErr.Message != "" {
		return valErr.Message
	}
	var srvErr *apperr.ServerError
	if errors.As(err, &srvErr) && srvErr.Detail != "" {
		return srvErr.Detail
	}
	return "failed to submit report"
}
