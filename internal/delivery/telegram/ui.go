package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quiz-bot/internal/quiz"
)

// buildMenuKeyboard builds the quiz length picker. Buttons that would
// leave the [1, available] range are not shown.
func buildMenuKeyboard(v quiz.View) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	if v.SelectedCount > 1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("➖", buildCountCallback(-1)))
	}

	row = append(row, tgbotapi.NewInlineKeyboardButtonData(
		fmt.Sprintf("%d / %d", v.SelectedCount, v.Available),
		buildNoopCallback(),
	))

	if v.SelectedCount < v.Available {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("➕", buildCountCallback(1)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		row,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Start quiz", buildStartCallback()),
		),
	)
}

// buildQuestionKeyboard builds one checkbox button per answer and the
// navigation row. Prev is hidden on the first question and Next becomes
// "Correct quiz" on the last one.
func buildQuestionKeyboard(v quiz.View) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if v.Question != nil {
		for i, a := range v.Question.Answers {
			box := "☐"
			if a.Selected {
				box = "☑️"
			}
			button := tgbotapi.NewInlineKeyboardButtonData(box+" "+a.Text, buildToggleCallback(v.Index, i))
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
		}
	}

	var nav []tgbotapi.InlineKeyboardButton
	if !v.IsFirst() {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️ Prev question", buildMoveCallback(v.Index, -1)))
	}

	if v.IsLast() {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("✅ Correct quiz", buildScoreCallback()))
	} else {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Next question ➡️", buildMoveCallback(v.Index, 1)))
	}

	rows = append(rows, nav)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildResultKeyboard builds keyboard for quiz results screen.
func buildResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Restart", buildRestartCallback()),
		),
	)
}
