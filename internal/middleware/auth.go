package middleware

import (
	"wordmatch/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgError       = "خطایی رخ داد. بعداً دوباره تلاش کنید."
	msgAskPassword = "سلام! برای ادامه رمز عبور را وارد کنید:"
)

// AuthMiddleware lets only authorized players reach the game handlers
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			// Ensure player exists
			if err := authService.EnsurePlayerExists(userID); err != nil {
				logger.Error("Failed to ensure player exists in middleware", zap.Error(err))
				return reply(c, msgError)
			}

			authorized, err := authService.IsAuthorized(userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return reply(c, msgError)
			}

			// If not authorized and not /start command, prompt for password
			if !authorized && c.Text() != "/start" {
				logger.Debug("Unauthorized player blocked", zap.Int64("user_id", userID))
				return reply(c, msgAskPassword)
			}

			return next(c)
		}
	}
}

// reply answers a callback with an alert, or a message with a message
func reply(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
