package notify

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"news-portal/internal/domain/entity"
	"news-portal/internal/observability/logging"
	"news-portal/internal/resilience/circuitbreaker"
)

const (
	workerPoolTimeout   = 5 * time.Second  // Timeout for acquiring worker slot
	notificationTimeout = 30 * time.Second // Timeout for individual notification
)

// ChannelHealthStatus represents the health status of a notification channel.
type ChannelHealthStatus struct {
	Name               string
	Enabled            bool
	CircuitBreakerOpen bool
}

// Service dispatches moderation events to every enabled channel.
// Each channel sits behind its own circuit breaker, and a bounded worker
// pool caps how many webhook calls run at once.
type Service struct {
	channels   []Channel
	breakers   map[string]*circuitbreaker.CircuitBreaker
	workerPool chan struct{}
	logger     *slog.Logger

	poolTimeout time.Duration
	sendTimeout time.Duration

	mu     sync.RWMutex // closed と wg.Add を Shutdown と排他にする
	closed bool
	wg     sync.WaitGroup

	abortCtx context.Context
	abort    context.CancelFunc
}

// NewService creates a notification service. maxConcurrent below 1 is treated as 1.
func NewService(channels []Channel, maxConcurrent int) *Service {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	abortCtx, abort := context.WithCancel(context.Background())

	s := &Service{
		channels:    channels,
		breakers:    make(map[string]*circuitbreaker.CircuitBreaker, len(channels)),
		workerPool:  make(chan struct{}, maxConcurrent),
		logger:      slog.Default(),
		poolTimeout: workerPoolTimeout,
		sendTimeout: notificationTimeout,
		abortCtx:    abortCtx,
		abort:       abort,
	}

	enabled := 0
	for _, ch := range channels {
		s.breakers[ch.Name()] = circuitbreaker.New(BreakerConfig(ch.Name()))
		if ch.IsEnabled() {
			enabled++
		}
	}
	SetChannelsEnabled(enabled)
	return s
}

// BreakerConfig opens a channel's circuit once five sends in a row have failed
// and probes it again after five minutes.
func BreakerConfig(channel string) circuitbreaker.Config {
	return circuitbreaker.Config{
		Name:             "notify_" + channel,
		MaxRequests:      1,
		Interval:         10 * time.Minute,
		Timeout:          5 * time.Minute,
		FailureThreshold: 1.0,
		MinRequests:      5,
	}
}

// NotifyModeration hands ev to every enabled channel and returns immediately.
// Delivery failures are logged and counted, never returned.
func (s *Service) NotifyModeration(ctx context.Context, ev entity.ModerationEvent) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrShuttingDown
	}

	id := uuid.NewString()
	dispatched := 0
	for _, ch := range s.channels {
		if !ch.IsEnabled() {
			continue
		}
		dispatched++
		s.wg.Add(1)
		go s.notifyChannel(id, ch, ev)
	}

	logging.WithTrace(ctx, s.logger).Debug("moderation notification dispatched",
		slog.String("notification_id", id),
		slog.Int64("article_id", ev.ArticleID),
		slog.String("transition", string(ev.Transition)),
		slog.Int("channels", dispatched))
	return nil
}

func (s *Service) notifyChannel(id string, ch Channel, ev entity.ModerationEvent) {
	defer s.wg.Done()

	activeNotifications.Inc()
	defer activeNotifications.Dec()

	log := s.logger.With(
		slog.String("notification_id", id),
		slog.String("channel", ch.Name()),
		slog.Int64("article_id", ev.ArticleID),
		slog.String("transition", string(ev.Transition)))

	defer func() {
		if r := recover(); r != nil {
			log.Error("panic in notification channel",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	timer := time.NewTimer(s.poolTimeout)
	select {
	case s.workerPool <- struct{}{}:
		timer.Stop()
		defer func() { <-s.workerPool }()
	case <-timer.C:
		log.Warn("notification dropped", slog.Any("error", ErrNotificationDropped))
		RecordDropped(ch.Name(), "pool_full")
		return
	case <-s.abortCtx.Done():
		timer.Stop()
		return
	}

	ctx, cancel := context.WithTimeout(s.abortCtx, s.sendTimeout)
	defer cancel()

	RecordDispatch(ch.Name(), string(ev.Transition))
	start := time.Now()
	_, err := s.breakers[ch.Name()].Execute(func() (interface{}, error) {
		return nil, ch.Send(ctx, ev)
	})
	duration := time.Since(start)

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		log.Warn("notification dropped, channel circuit open")
		RecordDropped(ch.Name(), "circuit_open")
	case err != nil:
		RecordFailure(ch.Name(), duration)
		log.Warn("channel notification failed",
			slog.Duration("send_duration", duration),
			slog.Any("error", err))
	default:
		RecordSuccess(ch.Name(), duration)
		log.Info("channel notification sent", slog.Duration("send_duration", duration))
	}
}

// ChannelHealth returns the breaker state of every channel.
func (s *Service) ChannelHealth() []ChannelHealthStatus {
	statuses := make([]ChannelHealthStatus, 0, len(s.channels))
	for _, ch := range s.channels {
		statuses = append(statuses, ChannelHealthStatus{
			Name:               ch.Name(),
			Enabled:            ch.IsEnabled(),
			CircuitBreakerOpen: s.breakers[ch.Name()].IsOpen(),
		})
	}
	return statuses
}

// Shutdown stops accepting events and waits for in-flight deliveries. When ctx
// ends first the remaining deliveries are cancelled and ctx.Err() is returned.
func (s *Service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.abort()
		s.logger.Info("notification service shutdown complete")
		return nil
	case <-ctx.Done():
		s.abort()
		<-done
		s.logger.Warn("notification service shutdown timeout, in-flight deliveries cancelled")
		return ctx.Err()
	}
}
