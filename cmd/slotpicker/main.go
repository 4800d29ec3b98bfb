package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/terraincognita07/slotpicker/internal/api"
	"github.com/terraincognita07/slotpicker/internal/cli"
	"github.com/terraincognita07/slotpicker/internal/client"
	"github.com/terraincognita07/slotpicker/internal/config"
	"github.com/terraincognita07/slotpicker/internal/db"
	"github.com/terraincognita07/slotpicker/internal/i18n"
	"github.com/terraincognita07/slotpicker/internal/logging"
	"github.com/terraincognita07/slotpicker/internal/metrics"
	"github.com/terraincognita07/slotpicker/internal/picker"
	"github.com/terraincognita07/slotpicker/internal/services"
	"github.com/terraincognita07/slotpicker/internal/telegram"
	"go.uber.org/zap"
)

const usage = "usage: slotpicker [serve|book|admin|hash-secret|gen-secret] [flags]"

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "slotpicker: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin *os.File, stdout io.Writer) error {
	command := "serve"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command, args = args[0], args[1:]
	}

	switch command {
	case "serve":
		return runServe(args)
	case "book":
		return runBook(args, stdin, stdout)
	case "admin":
		return runAdmin(args, stdin, stdout)
	case "hash-secret":
		return cli.RunHashSecretCommand(stdout, stdin)
	case "gen-secret":
		flags := flag.NewFlagSet("gen-secret", flag.ContinueOnError)
		length := flags.Int("length", 48, "secret length")
		if err := flags.Parse(args); err != nil {
			return err
		}
		return cli.RunGenerateSecretCommand(stdout, *length)
	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}
}

func runServe(args []string) error {
	flags := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := flags.String("config", "", "path to slotpicker.yaml")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.ValidateServer(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	location, err := config.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		return err
	}
	schedule, err := services.NewSchedule(cfg.Schedule.Open, cfg.Schedule.Close, cfg.Schedule.SlotMinutes, cfg.Schedule.ClosedWeekdays)
	if err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}

	database, err := db.OpenSQLite(cfg.Server.DBPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	repositories := db.NewRepositories(database)

	i18nManager, err := i18n.NewEmbeddedManager(cfg.Widget.Language)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	var notifier picker.HostChannel
	if strings.TrimSpace(cfg.Telegram.BotToken) != "" {
		channel, err := telegram.NewBotChannel(cfg.Telegram.BotToken, cfg.Telegram.ChatID, i18nManager.Messages(cfg.Widget.Language), log)
		if err != nil {
			return err
		}
		notifier = channel
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	availability := services.NewAvailabilityService(repositories.Bookings, schedule, location, nil)
	handler, err := api.NewHandler(api.Dependencies{
		Availability: availability,
		Bookings:     services.NewBookingService(repositories.Bookings, availability),
		AdminAuth:    services.NewAdminAuthService(adminAuthorizer(cfg.Admin, log), cfg.Server.SecretKey, nil),
		Widget:       cfg.Widget,
		Locales:      i18nManager,
		Metrics:      metrics.NewBookingMetrics(registry),
		Gatherer:     registry,
		Notifier:     notifier,
		Logger:       log,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "slotpicker",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	port, _ := config.ResolvePort(cfg.Server.Port)
	log.Info("slotpicker listening",
		zap.String("addr", "0.0.0.0:"+port),
		zap.String("db", cfg.Server.DBPath),
		zap.String("tz", location.String()),
		zap.Bool("telegram", notifier != nil),
	)
	if err := app.Listen(":" + port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	handler.WaitForNotifications()
	return nil
}

func corsConfig(allowedOrigins string) cors.Config {
	origins := strings.TrimSpace(allowedOrigins)
	if origins == "" {
		origins = "*"
	}
	return cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID,ngrok-skip-browser-warning",
	}
}

func adminAuthorizer(cfg config.AdminConfig, log *zap.Logger) picker.Authorizer {
	if hash := strings.TrimSpace(cfg.SecretHash); hash != "" {
		return picker.NewBcryptAuthorizer(hash)
	}
	log.Warn("admin.secret is compared in plain text; run hash-secret and set admin.secret_hash instead")
	return picker.NewStaticAuthorizer(cfg.Secret)
}

type clientFlags struct {
	configPath string
	apiBaseURL string
	language   string
}

func (flags *clientFlags) register(set *flag.FlagSet) {
	set.StringVar(&flags.configPath, "config", "", "path to slotpicker.yaml")
	set.StringVar(&flags.apiBaseURL, "api", "", "backend base URL (overrides widget.api_base_url)")
	set.StringVar(&flags.language, "lang", "", "message language: uz, ru or en (overrides widget.language)")
}

// widgetRuntime is what the terminal commands share: config, logger, catalog
// and the backend client.
type widgetRuntime struct {
	cfg      config.Config
	log      *zap.Logger
	location *time.Location
	messages map[string]string
	client   *client.Client
}

func newWidgetRuntime(flags clientFlags) (widgetRuntime, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return widgetRuntime{}, err
	}
	if flags.apiBaseURL != "" {
		cfg.Widget.APIBaseURL = flags.apiBaseURL
	}
	if err := cfg.Widget.Validate(); err != nil {
		return widgetRuntime{}, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return widgetRuntime{}, err
	}
	location, err := config.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		return widgetRuntime{}, err
	}
	i18nManager, err := i18n.NewEmbeddedManager(cfg.Widget.Language)
	if err != nil {
		return widgetRuntime{}, fmt.Errorf("i18n init failed: %w", err)
	}
	language, err := resolveLanguage(i18nManager, flags.language)
	if err != nil {
		return widgetRuntime{}, err
	}

	timeout, _ := cfg.Widget.Timeout()
	options := []client.Option{client.WithTimeout(timeout), client.WithLogger(log)}
	if cfg.Widget.SkipNgrokWarning {
		options = append(options, client.WithHeader("ngrok-skip-browser-warning", "true"))
	}
	apiClient, err := client.New(cfg.Widget.APIBaseURL, options...)
	if err != nil {
		return widgetRuntime{}, err
	}

	return widgetRuntime{
		cfg:      cfg,
		log:      log,
		location: location,
		messages: i18nManager.Messages(language),
		client:   apiClient,
	}, nil
}

// resolveLanguage returns the catalog language for the -lang flag. Unlike the
// widget-config endpoint, an explicit unsupported value is an error here.
func resolveLanguage(manager *i18n.Manager, requested string) (string, error) {
	if strings.TrimSpace(requested) == "" {
		return manager.DefaultLanguage(), nil
	}
	language, ok := manager.Lookup(requested)
	if !ok {
		return "", fmt.Errorf("unsupported language %q (want %s)", requested, strings.Join(manager.SupportedLanguages(), ", "))
	}
	return language, nil
}

func runBook(args []string, stdin *os.File, stdout io.Writer) error {
	set := flag.NewFlagSet("book", flag.ContinueOnError)
	var flags clientFlags
	flags.register(set)
	channelName := set.String("channel", "stdout", "where confirmed bookings go: stdout, http or telegram")
	if err := set.Parse(args); err != nil {
		return err
	}

	runtime, err := newWidgetRuntime(flags)
	if err != nil {
		return err
	}
	defer func() {
		_ = runtime.log.Sync()
	}()

	channel, err := hostChannel(*channelName, runtime, stdout)
	if err != nil {
		return err
	}
	submitter, err := picker.NewChannelSubmitter(channel, runtime.log)
	if err != nil {
		return err
	}
	widget, err := picker.NewWidget(runtime.client, submitter, picker.Options{
		Location: runtime.location,
		Messages: runtime.messages,
		Logger:   runtime.log,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return cli.RunBookCommand(ctx, widget, stdin, stdout)
}

func hostChannel(name string, runtime widgetRuntime, stdout io.Writer) (picker.HostChannel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "stdout":
		return cli.NewWriterChannel(stdout), nil
	case "http":
		return runtime.client, nil
	case "telegram":
		return telegram.NewBotChannel(runtime.cfg.Telegram.BotToken, runtime.cfg.Telegram.ChatID, runtime.messages, runtime.log)
	default:
		return nil, fmt.Errorf("unknown channel %q (want stdout, http or telegram)", name)
	}
}

func runAdmin(args []string, stdin *os.File, stdout io.Writer) error {
	set := flag.NewFlagSet("admin", flag.ContinueOnError)
	var flags clientFlags
	flags.register(set)
	rawDate := set.String("date", "", "day to list (YYYY-MM-DD, default today)")
	if err := set.Parse(args); err != nil {
		return err
	}

	runtime, err := newWidgetRuntime(flags)
	if err != nil {
		return err
	}
	defer func() {
		_ = runtime.log.Sync()
	}()

	date := picker.DateOf(time.Now().In(runtime.location))
	if *rawDate != "" {
		date, err = picker.ParseDate(*rawDate)
		if err != nil {
			return err
		}
	}

	view, err := picker.NewAdminView(client.NewRemoteAuthorizer(runtime.client), runtime.client, runtime.messages)
	if err != nil {
		return err
	}
	secret, err := cli.PromptSecret(stdout, stdin, "Admin secret: ")
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("admin secret is required")
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return cli.RunAdminCommand(ctx, view, secret, date, stdout)
}
