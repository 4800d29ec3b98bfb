package config

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix       = "SLOTPICKER"
	configName      = "slotpicker"
	minSecretKeyLen = 32
)

var (
	ErrSecretKeyMissing     = errors.New("server.secret_key is required")
	ErrSecretKeyPlaceholder = errors.New("server.secret_key uses an example placeholder")
	ErrSecretKeyTooShort    = fmt.Errorf("server.secret_key must be at least %d characters", minSecretKeyLen)
	ErrPortInvalid          = errors.New("server.port must be between 1 and 65535")
	ErrAdminSecretMissing   = errors.New("admin.secret or admin.secret_hash is required")
	ErrThemeColorInvalid    = errors.New("widget theme colors must be #RRGGBB")
	ErrAPIBaseURLMissing    = errors.New("widget.api_base_url is required")
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var insecureSecretKeys = map[string]bool{
	"change_me_in_production":                    true,
	"replace_with_at_least_32_random_characters": true,
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Widget   WidgetConfig   `mapstructure:"widget"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port           string `mapstructure:"port"`
	DBPath         string `mapstructure:"db_path"`
	Timezone       string `mapstructure:"timezone"`
	SecretKey      string `mapstructure:"secret_key"`
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

type ScheduleConfig struct {
	Open           string   `mapstructure:"open"`
	Close          string   `mapstructure:"close"`
	SlotMinutes    int      `mapstructure:"slot_minutes"`
	ClosedWeekdays []string `mapstructure:"closed_weekdays"`
}

type AdminConfig struct {
	Secret     string `mapstructure:"secret"`
	SecretHash string `mapstructure:"secret_hash"`
}

// WidgetConfig is served to the Mini App front end by /widget-config.
type WidgetConfig struct {
	APIBaseURL       string       `mapstructure:"api_base_url" json:"api_base_url"`
	Language         string       `mapstructure:"language" json:"language"`
	SkipNgrokWarning bool         `mapstructure:"skip_ngrok_warning" json:"skip_ngrok_warning"`
	RequestTimeout   string       `mapstructure:"request_timeout" json:"-"`
	Theme            ThemeConfig  `mapstructure:"theme" json:"theme"`
	Labels           LabelsConfig `mapstructure:"labels" json:"labels"`
}

type ThemeConfig struct {
	Primary    string `mapstructure:"primary" json:"primary"`
	Accent     string `mapstructure:"accent" json:"accent"`
	Background string `mapstructure:"background" json:"background"`
	Text       string `mapstructure:"text" json:"text"`
}

type LabelsConfig struct {
	Title         string `mapstructure:"title" json:"title"`
	DateHeading   string `mapstructure:"date_heading" json:"date_heading"`
	TimeHeading   string `mapstructure:"time_heading" json:"time_heading"`
	ConfirmButton string `mapstructure:"confirm_button" json:"confirm_button"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.db_path", "data/slotpicker.db")
	v.SetDefault("server.timezone", "Asia/Tashkent")
	v.SetDefault("server.secret_key", "")
	v.SetDefault("server.allowed_origins", "*")

	v.SetDefault("schedule.open", "09:00")
	v.SetDefault("schedule.close", "18:00")
	v.SetDefault("schedule.slot_minutes", 60)
	v.SetDefault("schedule.closed_weekdays", []string{"sunday"})

	v.SetDefault("admin.secret", "")
	v.SetDefault("admin.secret_hash", "")

	v.SetDefault("widget.api_base_url", "http://localhost:8080")
	v.SetDefault("widget.language", "uz")
	v.SetDefault("widget.skip_ngrok_warning", false)
	v.SetDefault("widget.request_timeout", "10s")
	v.SetDefault("widget.theme.primary", "#2AABEE")
	v.SetDefault("widget.theme.accent", "#229ED9")
	v.SetDefault("widget.theme.background", "#FFFFFF")
	v.SetDefault("widget.theme.text", "#000000")
	v.SetDefault("widget.labels.title", "Qabulga yozilish")
	v.SetDefault("widget.labels.date_heading", "Sanani tanlang")
	v.SetDefault("widget.labels.time_heading", "Vaqtni tanlang")
	v.SetDefault("widget.labels.confirm_button", "Tasdiqlash")

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Load reads path (or slotpicker.yaml from the working directory when path is
// empty) and overlays SLOTPICKER_* environment variables. Keys that are not
// recognized are rejected.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// ValidateServer checks the options the HTTP backend cannot run without.
func (cfg Config) ValidateServer() error {
	if _, err := ResolveSecretKey(cfg.Server.SecretKey); err != nil {
		return err
	}
	if _, err := ResolvePort(cfg.Server.Port); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Admin.Secret) == "" && strings.TrimSpace(cfg.Admin.SecretHash) == "" {
		return ErrAdminSecretMissing
	}
	return cfg.Widget.Validate()
}

func (widget WidgetConfig) Validate() error {
	if strings.TrimSpace(widget.APIBaseURL) == "" {
		return ErrAPIBaseURLMissing
	}
	for _, color := range []string{widget.Theme.Primary, widget.Theme.Accent, widget.Theme.Background, widget.Theme.Text} {
		if !hexColorRegex.MatchString(color) {
			return fmt.Errorf("%w: %q", ErrThemeColorInvalid, color)
		}
	}
	if _, err := widget.Timeout(); err != nil {
		return err
	}
	return nil
}

func (widget WidgetConfig) Timeout() (time.Duration, error) {
	raw := strings.TrimSpace(widget.RequestTimeout)
	if raw == "" {
		return 10 * time.Second, nil
	}
	timeout, err := time.ParseDuration(raw)
	if err != nil || timeout <= 0 {
		return 0, fmt.Errorf("widget.request_timeout %q is not a positive duration", raw)
	}
	return timeout, nil
}

func ResolveSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	switch {
	case secret == "":
		return "", ErrSecretKeyMissing
	case insecureSecretKeys[strings.ToLower(secret)]:
		return "", ErrSecretKeyPlaceholder
	case len(secret) < minSecretKeyLen:
		return "", ErrSecretKeyTooShort
	}
	return secret, nil
}

func ResolvePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return "8080", nil
	}
	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", fmt.Errorf("%w: %q", ErrPortInvalid, raw)
	}
	return port, nil
}

func LoadLocation(name string) (*time.Location, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return time.UTC, nil
	}
	location, err := time.LoadLocation(trimmed)
	if err != nil {
		return nil, fmt.Errorf("server.timezone %q: %w", name, err)
	}
	return location, nil
}
