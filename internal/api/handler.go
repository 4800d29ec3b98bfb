package api

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/terraincognita07/slotpicker/internal/config"
	"github.com/terraincognita07/slotpicker/internal/i18n"
	"github.com/terraincognita07/slotpicker/internal/metrics"
	"github.com/terraincognita07/slotpicker/internal/picker"
	"github.com/terraincognita07/slotpicker/internal/services"
	"go.uber.org/zap"
)

const (
	adminSessionAttemptsLimit  = 5
	adminSessionAttemptsWindow = 15 * time.Minute
	notificationTimeout        = 10 * time.Second
)

type Handler struct {
	availability   *services.AvailabilityService
	bookings       *services.BookingService
	adminAuth      *services.AdminAuthService
	widget         config.WidgetConfig
	locales        *i18n.Manager
	metrics        *metrics.BookingMetrics
	gatherer       prometheus.Gatherer
	notifier       picker.HostChannel
	logger         *zap.Logger
	now            func() time.Time
	sessionLimiter *attemptLimiter
	notifications  sync.WaitGroup
}

// Dependencies wires the handler. Locales, Metrics, Gatherer and Notifier are
// optional.
type Dependencies struct {
	Availability *services.AvailabilityService
	Bookings     *services.BookingService
	AdminAuth    *services.AdminAuthService
	Widget       config.WidgetConfig
	Locales      *i18n.Manager
	Metrics      *metrics.BookingMetrics
	Gatherer     prometheus.Gatherer
	Notifier     picker.HostChannel
	Logger       *zap.Logger
	Now          func() time.Time
}

func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.Availability == nil || deps.Bookings == nil {
		return nil, errors.New("availability and booking services are required")
	}
	if deps.AdminAuth == nil {
		return nil, errors.New("admin auth service is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &Handler{
		availability:   deps.Availability,
		bookings:       deps.Bookings,
		adminAuth:      deps.AdminAuth,
		widget:         deps.Widget,
		locales:        deps.Locales,
		metrics:        deps.Metrics,
		gatherer:       deps.Gatherer,
		notifier:       deps.Notifier,
		logger:         logger,
		now:            now,
		sessionLimiter: newAttemptLimiter(adminSessionAttemptsLimit, adminSessionAttemptsWindow),
	}, nil
}

// WaitForNotifications blocks until booking notifications already handed to
// the notifier have finished.
func (handler *Handler) WaitForNotifications() {
	handler.notifications.Wait()
}
