package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"wordmatch/internal/domain"
	"wordmatch/internal/service"
	"wordmatch/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// parsePick decodes "l|3" / "r|0" pick payloads
func parsePick(data string) (domain.Side, int, error) {
	code, idx, ok := strings.Cut(cleanCallbackData(data), "|")
	if !ok {
		return "", 0, fmt.Errorf("malformed pick %q", data)
	}

	var side domain.Side
	switch code {
	case sideLeftCode:
		side = domain.SideLeft
	case sideRightCode:
		side = domain.SideRight
	default:
		return "", 0, fmt.Errorf("unknown side %q", code)
	}

	id, err := strconv.Atoi(idx)
	if err != nil || id < 0 {
		return "", 0, fmt.Errorf("bad item %q", idx)
	}
	return side, id, nil
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// If message is not modified, it means it was already edited by another callback
	// Just acknowledge and return nil - don't send new message
	if isNotModified(err) {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles callbacks that did not match a registered button
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	unique := callback.Unique
	if unique == "" {
		unique = data
	}
	switch unique {
	case btnPlay.Unique, btnPlayAgain.Unique:
		return h.handlePlay(c)
	case btnAdvance.Unique:
		return h.handleAdvance(c)
	case btnStats.Unique:
		return h.handleStats(c)
	case btnMainMenu.Unique:
		return h.handleStart(c)
	case pickUnique:
		return h.handlePick(c)
	}

	h.logger.Warn("Unhandled callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handlePlay starts a new session on the current message, or on a new one for /play
func (h *Handler) handlePlay(c tele.Context) error {
	userID := c.Sender().ID
	h.ResetState(userID)

	var msg *tele.Message
	if c.Callback() != nil {
		msg = c.Callback().Message
	}

	board := NewBoard(h.bot, nil, h.logger)
	if msg != nil {
		board.Attach(msg)
	}
	id, err := h.gameService.Start(context.Background(), domain.TelegramPlayerID(userID), domain.ChannelTelegram, board)
	if err != nil {
		h.logger.Error("Failed to start session", zap.Error(err), zap.Int64("user_id", userID))
		return h.fail(c)
	}
	state := &domain.StateData{State: domain.StatePlaying, SessionID: id}
	if msg != nil {
		state.MessageID = msg.ID
	}
	h.SetState(userID, state)

	if msg == nil {
		return h.sendBoard(c, board)
	}
	return h.showBoard(c, board, "")
}

// handlePick applies one item selection of the current page
func (h *Handler) handlePick(c tele.Context) error {
	userID := c.Sender().ID

	state, board, ok := h.currentBoard(c)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: msgOutdated})
	}

	side, item, err := parsePick(c.Callback().Data)
	if err != nil {
		h.logger.Warn("Bad pick payload", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond()
	}

	out, err := h.gameService.Select(context.Background(), state.SessionID, side, item)
	if err != nil {
		return h.respondGameError(c, err)
	}
	if out == nil {
		return h.showBoard(c, board, "")
	}
	if out.Correct {
		return h.showBoard(c, board, "✅")
	}
	return h.showBoard(c, board, fmt.Sprintf("❌ %s", out.Left.Source))
}

// handleAdvance moves to the next page once the current one is solved
func (h *Handler) handleAdvance(c tele.Context) error {
	userID := c.Sender().ID

	state, board, ok := h.currentBoard(c)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: msgOutdated})
	}

	over, err := h.gameService.Advance(context.Background(), state.SessionID)
	if err != nil {
		return h.respondGameError(c, err)
	}
	if over {
		h.logger.Info("Telegram session finished",
			zap.Int64("user_id", userID),
			zap.String("session_id", state.SessionID),
		)
		h.SetState(userID, &domain.StateData{
			State:     domain.StateIdle,
			SessionID: state.SessionID,
			MessageID: state.MessageID,
		})
	}
	return h.showBoard(c, board, "")
}

// handleStats shows aggregated results of the player
func (h *Handler) handleStats(c tele.Context) error {
	userID := c.Sender().ID

	stats, err := h.statsService.PlayerStats(context.Background(), domain.TelegramPlayerID(userID))
	if err != nil {
		h.logger.Error("Failed to get player stats", zap.Error(err), zap.Int64("user_id", userID))
		return h.fail(c)
	}

	if c.Callback() != nil {
		_ = c.Respond()
	}
	return c.Send(statsText(stats), mainMenuMarkup())
}

// currentBoard returns the live board the callback was pressed on
func (h *Handler) currentBoard(c tele.Context) (*domain.StateData, *Board, bool) {
	state := h.GetState(c.Sender().ID)
	if state.SessionID == "" {
		return nil, nil, false
	}
	if cb := c.Callback(); cb == nil || cb.Message == nil || cb.Message.ID != state.MessageID {
		return nil, nil, false
	}

	info, err := h.gameService.Info(state.SessionID)
	if err != nil {
		return nil, nil, false
	}
	board, ok := info.Renderer.(*Board)
	if !ok {
		return nil, nil, false
	}
	return state, board, true
}

// showBoard edits the board message in place and answers the callback with toast
func (h *Handler) showBoard(c tele.Context, board *Board, toast string) error {
	userID := c.Sender().ID

	err := board.Flush()
	if err == nil {
		return c.Respond(&tele.CallbackResponse{Text: toast})
	}
	if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
		return nil // Message was already modified, just acknowledged
	}
	return h.sendBoard(c, board)
}

// sendBoard sends the board as a new message and binds the session to it
func (h *Handler) sendBoard(c tele.Context, board *Board) error {
	userID := c.Sender().ID

	text, markup := board.Render()
	sent, err := h.bot.Send(c.Recipient(), text, markup)
	if err != nil {
		h.logger.Error("Failed to send board", zap.Error(err), zap.Int64("user_id", userID))
		return err
	}
	board.Attach(sent)

	state := h.GetState(userID)
	h.SetState(userID, &domain.StateData{
		State:     state.State,
		SessionID: state.SessionID,
		MessageID: sent.ID,
	})
	return nil
}

func (h *Handler) respondGameError(c tele.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		h.ResetState(c.Sender().ID)
		return c.Respond(&tele.CallbackResponse{Text: msgOutdated})
	case errors.Is(err, session.ErrAdvanceLocked):
		return c.Respond(&tele.CallbackResponse{Text: msgPageLocked})
	case errors.Is(err, session.ErrSessionOver):
		return c.Respond(&tele.CallbackResponse{Text: msgSessionEnded})
	case errors.Is(err, session.ErrUnknownItem):
		return c.Respond(&tele.CallbackResponse{Text: msgOutdated})
	}
	h.logger.Error("Game operation failed", zap.Error(err), zap.Int64("user_id", c.Sender().ID))
	return h.fail(c)
}

func (h *Handler) fail(c tele.Context) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: msgError, ShowAlert: true})
	}
	return c.Send(msgError)
}

func statsText(s *domain.PlayerStats) string {
	if s.SessionsPlayed == 0 {
		return "📊 هنوز بازی‌ای تمام نکرده‌اید"
	}
	return fmt.Sprintf(
		"📊 آمار شما\n\nبازی‌ها: %d\nکل تلاش‌ها: %d\nدرست: %d\nغلط: %d\nمیانگین امتیاز: %.0f\nبهترین امتیاز: %d",
		s.SessionsPlayed, s.TotalAttempts, s.Correct, s.Wrong, s.AverageAccuracy, s.BestAccuracy,
	)
}
