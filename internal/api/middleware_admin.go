package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) AdminOnly(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" || handler.adminAuth.VerifyToken(token) != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.Next()
}
