package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/quiz"
)

// Bot is the part of the Telegram client the handler uses.
type Bot interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// QuizService drives the quiz of each chat and returns the view to render.
type QuizService interface {
	Begin(ctx context.Context, chatID int64, userName string) (quiz.View, error)
	View(chatID int64) (quiz.View, error)
	SetUserName(chatID int64, name string) (quiz.View, error)
	SetSelectedCount(chatID int64, n int) (quiz.View, error)
	AdjustCount(chatID int64, delta int) (quiz.View, error)
	Start(chatID int64) (quiz.View, error)
	ToggleAnswer(chatID int64, answerIndex int) (quiz.View, error)
	Move(chatID int64, delta int) (quiz.View, error)
	Score(chatID int64) (quiz.View, error)
	Reset(chatID int64) (quiz.View, error)
	End(chatID int64)
}

// Handler is the Telegram presentation layer of the quiz. Updates are
// processed one at a time, so every engine sees a single event stream.
type Handler struct {
	bot         Bot
	logger      *zap.Logger
	quizService QuizService
}

// NewHandler creates a handler that serves quizzes through bot.
func NewHandler(
	bot Bot,
	logger *zap.Logger,
	quizService QuizService,
) *Handler {
	return &Handler{
		bot:         bot,
		logger:      logger,
		quizService: quizService,
	}
}

// Run polls updates until ctx is done or the update channel closes.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		args := update.Message.CommandArguments()

		switch update.Message.Command() {
		case "start", "quiz":
			_ = h.withErrorHandling(h.handleBegin(firstName(update.Message.From)))(ctx, chatID)

		case "name":
			_ = h.withErrorHandling(h.handleName(args))(ctx, chatID)

		case "count":
			_ = h.withErrorHandling(h.handleCount(args))(ctx, chatID)

		case "stop":
			h.quizService.End(chatID)
			h.send(newPlainMessage(chatID, msgQuizEnded))

		case "help":
			h.send(newPlainMessage(chatID, msgHelp))

		default:
			h.send(newPlainMessage(chatID, msgUnknownCommand))
		}

		return
	}

	_ = h.withErrorHandling(h.handleText(update.Message.Text))(ctx, chatID)
}

func (h *Handler) sendError(chatID int64, text string) {
	h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

func firstName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	return u.FirstName
}
