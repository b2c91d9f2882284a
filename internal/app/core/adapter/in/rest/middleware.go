package rest

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/JoeShih716/go-rinha-ledger/internal/logger"
)

// HeaderRequestID 請求追蹤 ID
const HeaderRequestID = "X-Request-ID"

// requestID 沿用上游帶來的 X-Request-ID，沒有就產生 uuid
// 並把帶有 request_id 的 logger 放進 UserContext
func requestID(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(HeaderRequestID, id)

		reqLog := log.With().Str("request_id", id).Logger()
		c.SetUserContext(logger.WithContext(c.UserContext(), reqLog))
		return c.Next()
	}
}

// accessLog 每個請求一行 debug log
func accessLog(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if hErr := errorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		log.Debug().
			Str("request_id", c.GetRespHeader(HeaderRequestID)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("http request")
		return nil
	}
}
