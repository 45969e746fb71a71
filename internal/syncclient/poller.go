package syncclient

import (
	"context"
	"net/url"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/adapter/http/dto"
)

// DefaultPollInterval applies when neither the caller nor the server picks
// one.
const DefaultPollInterval = 30 * time.Second

// Source is what the poller re-fetches from; *Client implements it.
type Source interface {
	ListTasks(ctx context.Context, query url.Values) ([]dto.TaskItem, error)
	UnreadCount(ctx context.Context) (UnreadCount, error)
}

var _ Source = (*Client)(nil)

type PollerConfig struct {
	// Interval is fixed when set. When zero the poller follows the server's
	// advertised interval, falling back to DefaultPollInterval.
	Interval time.Duration
	// Query scopes the task fetch, e.g. section_id.
	Query url.Values
	// OnUnreadChange is called when the unread count differs from the last
	// successful poll, including the first one.
	OnUnreadChange func(previous, current int)
	// OnSynced is called after each successful task reconcile.
	OnSynced func(view *View)
}

type Poller struct {
	source Source
	view   *View
	cfg    PollerConfig
	logger *zap.Logger
	now    func() time.Time

	unread     int
	haveUnread bool
}

func NewPoller(source Source, view *View, cfg PollerConfig, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.L()
	}
	return &Poller{
		source: source,
		view:   view,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Run polls immediately and then once per interval until ctx is done. A
// failed poll is logged and retried on the next tick.
func (p *Poller) Run(ctx context.Context) error {
	interval := p.cfg.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	if advertised := p.Poll(ctx); p.cfg.Interval <= 0 && advertised > 0 {
		interval = advertised
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			advertised := p.Poll(ctx)
			if p.cfg.Interval <= 0 && advertised > 0 && advertised != interval {
				interval = advertised
				ticker.Reset(interval)
				p.logger.Info("poll interval changed", zap.Duration("interval", interval))
			}
		}
	}
}

// Poll runs one fetch cycle and returns the server-advertised interval, zero
// when unknown.
func (p *Poller) Poll(ctx context.Context) time.Duration {
	var advertised time.Duration

	unread, err := p.source.UnreadCount(ctx)
	if err != nil {
		p.logFailure(ctx, "unread count", err)
	} else {
		advertised = unread.PollInterval
		if !p.haveUnread || unread.Count != p.unread {
			if p.cfg.OnUnreadChange != nil {
				p.cfg.OnUnreadChange(p.unread, unread.Count)
			}
			p.unread = unread.Count
			p.haveUnread = true
		}
	}

	startedAt := p.now()
	tasks, err := p.source.ListTasks(ctx, p.cfg.Query)
	if err != nil {
		p.logFailure(ctx, "tasks", err)
		return advertised
	}
	p.view.Reconcile(tasks, startedAt)
	if p.cfg.OnSynced != nil {
		p.cfg.OnSynced(p.view)
	}
	return advertised
}

func (p *Poller) logFailure(ctx context.Context, what string, err error) {
	if ctx.Err() != nil {
		return
	}
	p.logger.Warn("poll failed, retrying next tick", zap.String("fetch", what), zap.Error(err))
}
