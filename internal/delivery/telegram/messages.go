// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-bot/internal/quiz"
)

// Error messages.
const (
	msgFetchFailed     = "Something went wrong while loading the questions. Please try again later."
	msgInvalidData     = "The question set is malformed, so the quiz cannot be shown."
	msgNoQuestions     = "There are no questions available right now."
	msgNotLoaded       = "No quiz is running. Send /quiz to start one."
	msgInvalidRange    = "That number of questions is out of range."
	msgIndexOutOfRange = "There is nothing there."
	msgInvalidState    = "That action is not available at this point of the quiz."
	msgStaleButton     = "That button belongs to another question. The message now shows the current one."
	msgInternalError   = "Something went wrong. Please try again later."
	msgUseCount        = "Usage: /count N"
	msgUseName         = "Usage: /name Your Name"
	msgQuizEnded       = "Quiz closed. Send /quiz to start again."
	msgUnknownCommand  = "Unknown command.\n\n" + msgHelp
	msgHelp            = "/quiz - load questions and open the quiz menu\n" +
		"/name NAME - set your name\n" +
		"/count N - set how many questions to answer\n" +
		"/stop - close the current quiz\n" +
		"/help - show this message"
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// errorMessage maps quiz errors to text shown to the user.
// ok is false for errors the user cannot act on.
func errorMessage(err error) (text string, ok bool) {
	switch {
	case errors.Is(err, quiz.ErrFetchFailed):
		return msgFetchFailed, true
	case errors.Is(err, quiz.ErrInvalidData):
		return msgInvalidData, true
	case errors.Is(err, quiz.ErrNoQuestionsAvailable):
		return msgNoQuestions, true
	case errors.Is(err, quiz.ErrNotLoaded):
		return msgNotLoaded, true
	case errors.Is(err, quiz.ErrInvalidRange):
		return msgInvalidRange, true
	case errors.Is(err, quiz.ErrIndexOutOfRange):
		return msgIndexOutOfRange, true
	case errors.Is(err, quiz.ErrInvalidState):
		return msgInvalidState, true
	case errors.Is(err, errStaleCallback):
		return msgStaleButton, true
	default:
		return msgInternalError, false
	}
}

// formatMenu formats the quiz setup screen.
func formatMenu(v quiz.View) string {
	name := v.UserName
	if name == "" {
		name = "anonymous"
	}

	return fmt.Sprintf(
		"%s\n\n%s %s\n%s %s\n\n%s",
		bold("📝 Quiz"),
		md("Your name:"),
		bold(name),
		md("Questions:"),
		bold(fmt.Sprintf("%d of %d", v.SelectedCount, v.Available)),
		md("Send a message to change your name, use ➖/➕ to pick how many questions to answer, then press Start."),
	)
}

// formatQuestion formats the current question (MarkdownV2 safe).
func formatQuestion(v quiz.View) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("Question %d of %d", v.Index+1, v.Total)))
	sb.WriteString("\n")

	if v.Question == nil {
		return sb.String()
	}

	if v.Question.Category != "" {
		sb.WriteString(italic(v.Question.Category))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(md(v.Question.Prompt))
	sb.WriteString("\n\n")
	sb.WriteString(md("Select every answer you think is correct."))

	return sb.String()
}

// maxMessageLength is Telegram's limit for message text in UTF-16 code units.
const maxMessageLength = 4096

// formatResult formats quiz results with a per-answer breakdown.
// Correctness is revealed only here. The breakdown is cut short when the
// message would exceed maxMessageLength; the score line always fits.
func formatResult(v quiz.View) string {
	var res entities.QuizResult
	if v.Result != nil {
		res = *v.Result
	}

	name := res.UserName
	if name == "" {
		name = "You"
	}

	var sb strings.Builder
	sb.WriteString(bold("🏁 Quiz corrected!"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("%s scored %d point(s) of %d possible (%.0f%%)", name, res.Score, res.PossibleScore, res.Percentage())))

	length := utf16Len(sb.String())
	for i, q := range v.Questions {
		block := formatBreakdown(i, q)

		// Leave room to say how many questions were left out.
		reserve := 0
		if rest := len(v.Questions) - i - 1; rest > 0 {
			reserve = utf16Len(omittedNote(rest))
		}

		if length+utf16Len(block)+reserve > maxMessageLength {
			sb.WriteString(omittedNote(len(v.Questions) - i))
			break
		}

		sb.WriteString(block)
		length += utf16Len(block)
	}

	return sb.String()
}

func formatBreakdown(i int, q entities.Question) string {
	var sb strings.Builder
	sb.WriteString("\n\n")
	sb.WriteString(bold(fmt.Sprintf("%d. %s", i+1, q.Prompt)))
	for _, a := range q.Answers {
		sb.WriteString("\n")
		sb.WriteString(md(answerMark(a) + " " + a.Text))
	}
	return sb.String()
}

func omittedNote(n int) string {
	return "\n\n" + italic(fmt.Sprintf("…and %d more question(s) not shown", n))
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func answerMark(a entities.Answer) string {
	switch {
	case a.Correct && a.Selected:
		return "✅"
	case a.Correct && !a.Selected:
		return "⚠️"
	case !a.Correct && a.Selected:
		return "❌"
	default:
		return "▫️"
	}
}
