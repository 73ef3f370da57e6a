package telegram

import (
	"context"

	"go.uber.org/zap"
)

// HandlerFunc handles one message for a chat.
type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling reports quiz errors to the user and logs the rest.
// The quiz itself is left in its last valid state either way.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		text, known := errorMessage(err)
		if known {
			h.logger.Info("quiz error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		} else {
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}

		h.sendError(chatID, text)
		return nil
	}
}
