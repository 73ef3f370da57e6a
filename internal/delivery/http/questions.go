package http

import (
	"bytes"
	"encoding/json"
	"errors"
	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/quiz"
	"github.com/aliskhannn/quiz-bot/internal/repository"
)

// maxBankSize caps the body of PUT /questions.
const maxBankSize = 4 << 20

type QuestionsHandler struct {
	bank   QuestionBank
	logger *zap.Logger
}

// List serves the bank in the wire format the quiz sources decode.
func (h *QuestionsHandler) List(w nethttp.ResponseWriter, r *nethttp.Request) {
	questions, err := h.bank.Questions(r.Context())
	if err != nil {
		h.logger.Error("list questions", zap.Error(err))
		respondError(w, nethttp.StatusInternalServerError, "load questions")
		return
	}

	var buf bytes.Buffer
	if err := repository.EncodeQuestions(&buf, questions); err != nil {
		h.logger.Error("encode questions", zap.Error(err))
		respondError(w, nethttp.StatusInternalServerError, "encode questions")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(nethttp.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Replace validates the request body and swaps the whole bank.
func (h *QuestionsHandler) Replace(w nethttp.ResponseWriter, r *nethttp.Request) {
	importer, ok := h.bank.(Importer)
	if !ok {
		respondError(w, nethttp.StatusNotImplemented, "question bank is read-only")
		return
	}

	questions, err := repository.DecodeQuestions(nethttp.MaxBytesReader(w, r.Body, maxBankSize))
	if err != nil {
		respondError(w, nethttp.StatusBadRequest, err.Error())
		return
	}

	if err := importer.Import(r.Context(), questions); err != nil {
		if errors.Is(err, quiz.ErrInvalidData) {
			respondError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("import questions", zap.Error(err))
		respondError(w, nethttp.StatusInternalServerError, "import questions")
		return
	}

	h.logger.Info("question bank replaced", zap.Int("count", len(questions)))
	respondJSON(w, nethttp.StatusOK, map[string]int{"imported": len(questions)})
}

func respondJSON(w nethttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func respondError(w nethttp.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
