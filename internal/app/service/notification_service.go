package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

const (
	defaultFanOutConcurrency = 8
	defaultNotificationLimit = 50
	maxNotificationLimit     = 200
	messagePreviewRunes      = 140
)

type notifySetResolver interface {
	ResolveNotifySet(ctx context.Context, taskID, actorID string) ([]string, error)
}

// NotificationService is the Notification Dispatcher. Fan-out happens after
// the originating mutation committed and never fails it: write errors are
// logged per recipient and dropped. There is no retry queue.
type NotificationService struct {
	uow         ports.UnitOfWork
	resolver    notifySetResolver
	concurrency int
	logger      *zap.Logger
}

func NewNotificationService(uow ports.UnitOfWork, resolver notifySetResolver, concurrency int, logger *zap.Logger) *NotificationService {
	if concurrency <= 0 {
		concurrency = defaultFanOutConcurrency
	}
	return &NotificationService{
		uow:         uow,
		resolver:    resolver,
		concurrency: concurrency,
		logger:      loggerOrGlobal(logger),
	}
}

var (
	_ ports.NotificationService = (*NotificationService)(nil)
	_ ports.EventDispatcher     = (*NotificationService)(nil)
)

// Notify writes one notification per recipient of the event's notify-set.
// It returns once every write has either landed or been logged as dropped.
func (s *NotificationService) Notify(ctx context.Context, event domain.Event) {
	logger := s.logger.With(
		zap.String("event", string(event.Type)),
		zap.String("task_id", event.TaskID),
		zap.String("actor_id", event.ActorID),
	)

	recipients, err := s.resolver.ResolveNotifySet(ctx, event.TaskID, event.ActorID)
	if err != nil {
		logger.Error("failed to resolve notify set", zap.Error(err))
		return
	}
	if len(recipients) == 0 {
		return
	}

	title, message := renderNotification(event)
	createdAt := now()
	taskID := event.TaskID

	var failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, userID := range recipients {
		userID := userID
		g.Go(func() error {
			notification := domain.Notification{
				ID:        newID(),
				UserID:    userID,
				TaskID:    &taskID,
				Type:      event.Type,
				Title:     title,
				Message:   message,
				CreatedAt: createdAt,
			}
			if err := s.uow.Notifications().Insert(ctx, notification); err != nil {
				failed.Add(1)
				logger.Error("dropped notification", zap.String("user_id", userID), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	if n := failed.Load(); n > 0 {
		logger.Warn("notification fan-out incomplete",
			zap.Int("recipients", len(recipients)),
			zap.Int64("dropped", n),
		)
		return
	}
	logger.Debug("notification fan-out done", zap.Int("recipients", len(recipients)))
}

func (s *NotificationService) ListForUser(ctx context.Context, userID string, filter domain.NotificationFilter) ([]domain.Notification, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultNotificationLimit
	}
	if filter.Limit > maxNotificationLimit {
		filter.Limit = maxNotificationLimit
	}
	return s.uow.Notifications().ListByUser(ctx, userID, filter)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.uow.Notifications().CountUnread(ctx, userID)
}

// MarkRead only lets the recipient change the read state of a notification.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	notification, err := s.uow.Notifications().GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return domain.ErrUnauthorized
	}
	if notification.IsRead {
		return nil
	}
	return s.uow.Notifications().MarkRead(ctx, notificationID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return s.uow.Notifications().MarkAllRead(ctx, userID)
}

func renderNotification(event domain.Event) (string, string) {
	p := event.Payload
	switch event.Type {
	case domain.EventStatusChanged:
		return "Status changed", fmt.Sprintf("%s changed the status of %q from %s to %s",
			event.ActorID, event.TaskTitle, p[domain.PayloadFrom], p[domain.PayloadTo])
	case domain.EventPriorityChanged:
		return "Priority changed", fmt.Sprintf("%s changed the priority of %q from %s to %s",
			event.ActorID, event.TaskTitle, p[domain.PayloadFrom], p[domain.PayloadTo])
	case domain.EventAssigned:
		assignees := strings.ReplaceAll(p[domain.PayloadAssignees], ",", ", ")
		return "Task assigned", fmt.Sprintf("%s assigned %q to %s", event.ActorID, event.TaskTitle, assignees)
	case domain.EventComment:
		return "New comment", fmt.Sprintf("%s commented on %q: %s",
			event.ActorID, event.TaskTitle, preview(p[domain.PayloadCommentBody]))
	default:
		return "Task updated", fmt.Sprintf("%s updated %q", event.ActorID, event.TaskTitle)
	}
}

func preview(body string) string {
	runes := []rune(body)
	if len(runes) <= messagePreviewRunes {
		return body
	}
	return string(runes[:messagePreviewRunes]) + "…"
}
