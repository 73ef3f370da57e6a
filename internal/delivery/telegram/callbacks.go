package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/quiz"
)

func (h *Handler) handleCallback(_ context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	v, err := h.dispatchCallback(chatID, data)
	if err != nil {
		text, known := errorMessage(err)
		if !known {
			h.logger.Error("callback error",
				zap.Int64("chat_id", chatID),
				zap.String("action", data.Action),
				zap.Error(err),
			)
		}
		if errors.Is(err, errStaleCallback) {
			h.editView(chatID, cb.Message.MessageID, v)
		}
		h.answerCallback(cb.ID, text)
		return
	}

	if data.Action != actionNoop {
		h.editView(chatID, cb.Message.MessageID, v)
	}

	// Remove the user's "clock".
	h.answerCallback(cb.ID, "")
}

// dispatchCallback forwards the button press to the quiz service.
func (h *Handler) dispatchCallback(chatID int64, data callbackData) (quiz.View, error) {
	switch data.Action {
	case actionCount:
		delta, err := data.intParam()
		if err != nil {
			return quiz.View{}, err
		}
		return h.quizService.AdjustCount(chatID, delta)

	case actionStart:
		return h.quizService.Start(chatID)

	case actionToggle:
		p, err := data.intParams(2)
		if err != nil {
			return quiz.View{}, err
		}
		if v, err := h.currentQuestion(chatID, p[0]); err != nil {
			return v, err
		}
		return h.quizService.ToggleAnswer(chatID, p[1])

	case actionMove:
		p, err := data.intParams(2)
		if err != nil {
			return quiz.View{}, err
		}
		if v, err := h.currentQuestion(chatID, p[0]); err != nil {
			return v, err
		}
		return h.quizService.Move(chatID, p[1])

	case actionScore:
		return h.quizService.Score(chatID)

	case actionRestart:
		return h.quizService.Reset(chatID)

	case actionNoop:
		return h.quizService.View(chatID)

	default:
		return quiz.View{}, errBadCallback
	}
}

// currentQuestion rejects presses on keyboards rendered for a question
// other than the one the quiz is showing now.
func (h *Handler) currentQuestion(chatID int64, questionIndex int) (quiz.View, error) {
	v, err := h.quizService.View(chatID)
	if err != nil {
		return v, err
	}

	if v.State != quiz.StateInProgress || v.Index != questionIndex {
		return v, errStaleCallback
	}
	return v, nil
}

func (h *Handler) editView(chatID int64, msgID int, v quiz.View) {
	text, kb := renderView(v)
	edit := newEdit(chatID, msgID, text)
	edit.ReplyMarkup = kb
	h.send(edit)
}

func (h *Handler) answerCallback(id, text string) {
	var answer tgbotapi.CallbackConfig
	if text == "" {
		answer = tgbotapi.NewCallback(id, "")
	} else {
		answer = tgbotapi.NewCallbackWithAlert(id, text)
	}

	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Error("callback answer error", zap.Error(err))
	}
}
