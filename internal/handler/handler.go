package handler

import (
	"sync"

	"wordmatch/internal/domain"
	"wordmatch/internal/middleware"
	"wordmatch/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot          *tele.Bot
	authService  *service.AuthService
	gameService  *service.GameService
	statsService *service.StatsService
	logger       *zap.Logger

	// Player states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	gameService *service.GameService,
	statsService *service.StatsService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:          bot,
		authService:  authService,
		gameService:  gameService,
		statsService: statsService,
		logger:       logger,
		states:       make(map[int64]*domain.StateData),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Text messages (password entry)
	h.bot.Handle(tele.OnText, h.handleText)

	// Everything below needs an authorized player
	game := h.bot.Group()
	game.Use(middleware.AuthMiddleware(h.authService, h.logger))

	game.Handle("/play", h.handlePlay)
	game.Handle(&btnPlay, h.handlePlay)
	game.Handle(&btnPlayAgain, h.handlePlay)
	game.Handle(&btnPick, h.handlePick)
	game.Handle(&btnAdvance, h.handleAdvance)
	game.Handle(&btnStats, h.handleStats)
	game.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for buttons whose Unique did not come through
	game.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns player's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets player's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets player to idle state and forgets their session
func (h *Handler) ResetState(userID int64) {
	state := h.GetState(userID)
	if state.SessionID != "" {
		h.gameService.Drop(state.SessionID)
	}
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// Callback uniques and payload codes
const (
	pickUnique    = "pick"
	sideLeftCode  = "l"
	sideRightCode = "r"
)

// Inline keyboard buttons
var (
	btnPlay = tele.Btn{
		Unique: "play",
		Text:   "▶️ شروع بازی",
	}
	btnPlayAgain = tele.Btn{
		Unique: "play_again",
		Text:   "🔁 بازی دوباره",
	}
	btnPick = tele.Btn{
		Unique: pickUnique,
	}
	btnAdvance = tele.Btn{
		Unique: "advance",
		Text:   "➡️ صفحه بعد",
	}
	btnStats = tele.Btn{
		Unique: "stats",
		Text:   "📊 آمار من",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 منوی اصلی",
	}
)

const (
	msgMainMenu     = "🏠 منوی اصلی\n\nیک گزینه را انتخاب کنید:"
	msgAskPassword  = "سلام! برای ادامه رمز عبور را وارد کنید:"
	msgWrongPass    = "رمز اشتباه است"
	msgAccessGiven  = "✅ دسترسی داده شد!\n\n" + msgMainMenu
	msgError        = "خطایی رخ داد. بعداً دوباره تلاش کنید."
	msgOutdated     = "این صفحه قدیمی است"
	msgPageLocked   = "اول همهٔ جفت‌های این صفحه را پیدا کنید"
	msgSessionEnded = "بازی تمام شده است"
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnPlay),
		menu.Row(btnStats),
	)
	return menu
}
