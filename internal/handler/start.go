package handler

import (
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command and the main menu button
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("Player started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	// Ensure player exists in database
	if err := h.authService.EnsurePlayerExists(userID); err != nil {
		h.logger.Error("Failed to ensure player exists", zap.Error(err))
		return c.Send(msgError)
	}

	// Check if authorized
	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgError)
	}

	h.ResetState(userID)
	if !authorized {
		return c.Send(msgAskPassword)
	}

	if c.Callback() != nil {
		if err := c.Edit(msgMainMenu, mainMenuMarkup()); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil
			}
			return c.Send(msgMainMenu, mainMenuMarkup())
		}
		return c.Respond()
	}
	return c.Send(msgMainMenu, mainMenuMarkup())
}

// handleText handles text messages; the only text the bot expects is the password
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	if err := h.authService.EnsurePlayerExists(userID); err != nil {
		h.logger.Error("Failed to ensure player exists", zap.Error(err))
		return nil
	}

	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgError)
	}

	if authorized {
		return c.Send(msgMainMenu, mainMenuMarkup())
	}

	if !h.authService.CheckPassword(text) {
		return c.Send(msgWrongPass)
	}

	if err := h.authService.AuthorizePlayer(userID); err != nil {
		h.logger.Error("Failed to authorize player", zap.Error(err))
		return c.Send(msgError)
	}

	h.logger.Info("Player authorized", zap.Int64("user_id", userID))
	h.ResetState(userID)
	return c.Send(msgAccessGiven, mainMenuMarkup())
}
