package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"fiber/kp/app/model"
	"fiber/kp/helper"
)

func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		bearer := strings.TrimSpace(c.Get("Authorization"))
		if bearer == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
				Error: "Token tidak ditemukan",
			})
		}

		if len(bearer) < 7 || !strings.EqualFold(bearer[:7], "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
				Error: "Format (Bearer) token tidak valid",
			})
		}
		token := strings.TrimSpace(bearer[7:])

		claims, err := helper.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
				Error: "Token tidak valid",
			})
		}

		if claims.Type != "access" {
			return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
				Error: "Tipe token tidak valid",
			})
		}

		if claims.Email == "" || claims.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
				Error: "Claim token tidak lengkap",
			})
		}

		c.Locals("email", claims.Email)
		c.Locals("role", strings.ToLower(claims.Role))

		return c.Next()
	}
}

func RoleRequired(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(model.ErrorResponse{
			Error: "Akses dilarang",
		})
	}
}
