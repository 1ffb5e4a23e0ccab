// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package ratelimit

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/betasocial/beta-api/internal/pkg/log"
)

// Config holds the configuration for the password reset throttle middleware
type Config struct {
	// Limiter applies the per-IP and per-email ceilings
	Limiter *PasswordResetLimiter

	// Next defines a function to skip this middleware when returned true
	Next func(c *fiber.Ctx) bool

	// EmailExtractor pulls the target email from the request (optional -
	// defaults to the "email" field of a JSON body)
	EmailExtractor func(c *fiber.Ctx) string
}

// configDefault sets default configuration values
func configDefault(config Config) Config {
	if config.EmailExtractor == nil {
		config.EmailExtractor = func(c *fiber.Ctx) string {
			var body struct {
				Email string `json:"email"`
			}
			if err := c.BodyParser(&body); err != nil {
				return ""
			}
			return body.Email
		}
	}
	return config
}

// New creates a middleware handler that throttles password reset requests.
// The throttle is best-effort: if the ledger store is unreachable the request
// passes through, because abuse control must never take the reset flow down
// with it.
func New(config Config) fiber.Handler {
	cfg := configDefault(config)

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		result, err := cfg.Limiter.Check(c.Context(), c.IP(), cfg.EmailExtractor(c))
		if err != nil {
			log.Warn("[RateLimit] ledger unavailable, allowing request from IP %s: %s", c.IP(), err.Error())
			return c.Next()
		}

		if !result.Allowed {
			log.Warn("[RateLimit] password reset throttled for IP %s", c.IP())
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(result.RetryAfter))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":      "Rate limit exceeded",
				"code":       "RATE_LIMIT_EXCEEDED",
				"message":    "Too many password reset attempts. Please try again later.",
				"retryAfter": result.RetryAfter,
			})
		}

		return c.Next()
	}
}
