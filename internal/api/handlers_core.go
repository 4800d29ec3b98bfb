package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/slotpicker/internal/config"
)

type widgetConfigResponse struct {
	config.WidgetConfig
	SupportedLanguages []string          `json:"supported_languages,omitempty"`
	Messages           map[string]string `json:"messages,omitempty"`
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// WidgetConfig returns the widget settings with the message catalog for the
// caller's language: ?lang= first, then Accept-Language, then the configured
// default.
func (handler *Handler) WidgetConfig(c *fiber.Ctx) error {
	response := widgetConfigResponse{WidgetConfig: handler.widget}
	if handler.locales == nil {
		return c.JSON(response)
	}

	language := handler.locales.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	if requested := strings.TrimSpace(c.Query("lang")); requested != "" {
		language = handler.locales.NormalizeLanguage(requested)
	}
	response.Language = language
	response.SupportedLanguages = handler.locales.SupportedLanguages()
	response.Messages = handler.locales.Messages(language)
	return c.JSON(response)
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found")
}
