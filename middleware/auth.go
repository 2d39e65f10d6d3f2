package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthRequired verifies the Bearer token and attaches the identity claims to
// the request context (user_id, username, email, role). When requiredRole is
// non-empty the caller's role must match it.
func AuthRequired(secret []byte, requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || token == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "no token provided"})
		}

		claims := jwt.MapClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		})
		if err != nil || !parsed.Valid {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		role, _ := claims["role"].(string)
		if requiredRole != "" && role != requiredRole {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "insufficient role, required: " + requiredRole,
			})
		}

		userID, _ := claims["id"].(string)
		username, _ := claims["username"].(string)
		email, _ := claims["email"].(string)

		c.Locals("user_id", userID)
		c.Locals("username", username)
		c.Locals("email", email)
		c.Locals("role", role)

		return c.Next()
	}
}
