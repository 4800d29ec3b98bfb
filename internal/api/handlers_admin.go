package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/slotpicker/internal/metrics"
	"github.com/terraincognita07/slotpicker/internal/services"
	"go.uber.org/zap"
)

type adminSessionInput struct {
	Secret string `json:"secret"`
}

type adminSessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (handler *Handler) OpenAdminSession(c *fiber.Ctx) error {
	now := handler.now()
	limiterKey := requestLimiterKey(c)
	if handler.sessionLimiter.blocked(limiterKey, now) {
		handler.metrics.ObserveAdminSession(metrics.StatusRateLimited)
		return apiError(c, fiber.StatusTooManyRequests, "too many attempts")
	}

	input := adminSessionInput{}
	if err := c.BodyParser(&input); err != nil {
		handler.sessionLimiter.fail(limiterKey, now)
		handler.metrics.ObserveAdminSession(metrics.StatusInvalid)
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	token, expiresAt, err := handler.adminAuth.OpenSession(c.UserContext(), input.Secret)
	if err != nil {
		if errors.Is(err, services.ErrAdminSecretRejected) {
			handler.sessionLimiter.fail(limiterKey, now)
			handler.metrics.ObserveAdminSession(metrics.StatusRejected)
			handler.logger.Info("admin session rejected", zap.String("ip", limiterKey))
			return apiError(c, fiber.StatusUnauthorized, "invalid secret")
		}
		handler.metrics.ObserveAdminSession(metrics.StatusError)
		handler.logger.Error("open admin session", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to open session")
	}

	handler.sessionLimiter.reset(limiterKey)
	handler.metrics.ObserveAdminSession(metrics.StatusOK)
	return c.JSON(adminSessionResponse{Token: token, ExpiresAt: expiresAt.UTC()})
}
