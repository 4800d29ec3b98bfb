package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/terraincognita07/slotpicker/internal/config"
	"github.com/terraincognita07/slotpicker/internal/db"
	"github.com/terraincognita07/slotpicker/internal/i18n"
	"github.com/terraincognita07/slotpicker/internal/metrics"
	"github.com/terraincognita07/slotpicker/internal/picker"
	"github.com/terraincognita07/slotpicker/internal/services"
)

const (
	testAdminSecret = "open-sesame"
	testSecretKey   = "0123456789abcdef0123456789abcdef"
)

// Saturday morning; the schedule below is closed on Sundays.
var testNow = time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu       sync.Mutex
	payloads []string
	contexts []error
	hold     chan struct{}
}

func (notifier *recordingNotifier) SendData(ctx context.Context, payload []byte) error {
	notifier.mu.Lock()
	hold := notifier.hold
	notifier.mu.Unlock()
	if hold != nil {
		<-hold
	}

	var ctxState error
	if _, ok := ctx.Deadline(); !ok {
		ctxState = errors.New("notification context has no deadline")
	} else {
		ctxState = ctx.Err()
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.payloads = append(notifier.payloads, string(payload))
	notifier.contexts = append(notifier.contexts, ctxState)
	return nil
}

// holdDelivery blocks SendData until the returned channel is closed.
func (notifier *recordingNotifier) holdDelivery() chan struct{} {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.hold = make(chan struct{})
	return notifier.hold
}

func (notifier *recordingNotifier) sent() []string {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return append([]string(nil), notifier.payloads...)
}

func (notifier *recordingNotifier) contextErrors() []error {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return append([]error(nil), notifier.contexts...)
}

type bookingTestApp struct {
	app      *fiber.App
	handler  *Handler
	notifier *recordingNotifier
}

func newBookingTestApp(t *testing.T) bookingTestApp {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "slotpicker-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	schedule, err := services.NewSchedule("09:00", "12:00", 60, []string{"sunday"})
	if err != nil {
		t.Fatalf("init schedule: %v", err)
	}
	clock := func() time.Time { return testNow }
	repositories := db.NewRepositories(database)
	availability := services.NewAvailabilityService(repositories.Bookings, schedule, time.UTC, clock)
	locales, err := i18n.NewEmbeddedManager("uz")
	if err != nil {
		t.Fatalf("init locales: %v", err)
	}
	registry := prometheus.NewRegistry()
	notifier := &recordingNotifier{}

	handler, err := NewHandler(Dependencies{
		Availability: availability,
		Bookings:     services.NewBookingService(repositories.Bookings, availability),
		AdminAuth:    services.NewAdminAuthService(picker.NewStaticAuthorizer(testAdminSecret), testSecretKey, clock),
		Widget: config.WidgetConfig{
			APIBaseURL: "https://api.example.com",
			Language:   "uz",
			Theme:      config.ThemeConfig{Primary: "#2AABEE", Accent: "#229ED9", Background: "#FFFFFF", Text: "#000000"},
			Labels:     config.LabelsConfig{Title: "Qabulga yozilish"},
		},
		Locales:  locales,
		Metrics:  metrics.NewBookingMetrics(registry),
		Gatherer: registry,
		Notifier: notifier,
		Now:      clock,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return bookingTestApp{app: app, handler: handler, notifier: notifier}
}

func doRequest(t *testing.T, app *fiber.App, method string, path string, body string, headers map[string]string) (int, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return response.StatusCode, string(raw)
}

func decodeJSON(t *testing.T, raw string, target any) {
	t.Helper()
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
}

func openAdminSession(t *testing.T, app *fiber.App) string {
	t.Helper()

	status, body := doRequest(t, app, http.MethodPost, "/admin/session", `{"secret":"`+testAdminSecret+`"}`, nil)
	if status != http.StatusOK {
		t.Fatalf("expected admin session 200, got %d: %s", status, body)
	}
	session := adminSessionResponse{}
	decodeJSON(t, body, &session)
	if session.Token == "" {
		t.Fatal("expected admin token in session response")
	}
	return session.Token
}
