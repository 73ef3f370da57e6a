package telegram

import (
	"context"
	"strconv"
	"strings"

	"github.com/aliskhannn/quiz-bot/internal/quiz"
)

// handleBegin loads a fresh question set and shows the quiz menu.
// A failed fetch is reported before anything else is rendered.
func (h *Handler) handleBegin(userName string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		v, err := h.quizService.Begin(ctx, chatID, userName)
		if err != nil {
			return err
		}

		return h.sendView(chatID, v)
	}
}

// handleName sets the user name from /name arguments.
func (h *Handler) handleName(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		name := strings.TrimSpace(args)
		if name == "" {
			h.send(newPlainMessage(chatID, msgUseName))
			return nil
		}

		v, err := h.quizService.SetUserName(chatID, name)
		if err != nil {
			return err
		}

		return h.sendView(chatID, v)
	}
}

// handleCount sets the number of questions from /count arguments.
func (h *Handler) handleCount(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		n, err := strconv.Atoi(strings.TrimSpace(args))
		if err != nil {
			h.send(newPlainMessage(chatID, msgUseCount))
			return nil
		}

		v, err := h.quizService.SetSelectedCount(chatID, n)
		if err != nil {
			return err
		}

		return h.sendView(chatID, v)
	}
}

// handleText treats free text on the menu screen as the user name.
func (h *Handler) handleText(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		v, err := h.quizService.View(chatID)
		if err != nil {
			return err
		}

		if v.State != quiz.StateLoaded || strings.TrimSpace(text) == "" {
			return h.sendView(chatID, v)
		}

		v, err = h.quizService.SetUserName(chatID, text)
		if err != nil {
			return err
		}

		return h.sendView(chatID, v)
	}
}

// sendView sends the rendered view as a new message.
func (h *Handler) sendView(chatID int64, v quiz.View) error {
	text, kb := renderView(v)

	msg := newMessage(chatID, text)
	if kb != nil {
		msg.ReplyMarkup = *kb
	}

	if _, err := h.bot.Send(msg); err != nil {
		return err
	}
	return nil
}
