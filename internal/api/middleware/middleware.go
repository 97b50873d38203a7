package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/log"
)

// Timing reports the handling time of each request in a Server-Timing header
// and logs requests slower than slow.
func Timing(slow time.Duration) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		elapsed := time.Since(start)
		c.Set("Server-Timing", fmt.Sprintf("app;dur=%.3f", float64(elapsed.Microseconds())/1000))
		if slow > 0 && elapsed > slow {
			log.Warnf("Slow request %s %s from %s took %s", c.Method(), c.Path(), c.IP(), elapsed)
		}

		return err
	}
}
