package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quiz-bot/internal/quiz"
)

// renderView projects a quiz view onto message text and keyboard.
// It has no side effects; the engine is never touched from here.
func renderView(v quiz.View) (string, *tgbotapi.InlineKeyboardMarkup) {
	var (
		text string
		kb   tgbotapi.InlineKeyboardMarkup
	)

	switch v.State {
	case quiz.StateLoaded:
		text, kb = formatMenu(v), buildMenuKeyboard(v)
	case quiz.StateInProgress:
		text, kb = formatQuestion(v), buildQuestionKeyboard(v)
	case quiz.StateCompleted:
		text, kb = formatResult(v), buildResultKeyboard()
	default:
		return md(msgNotLoaded), nil
	}

	return text, &kb
}
