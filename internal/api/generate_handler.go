// Package api implements the HTTP handlers of the description service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/mamyzabawki/descgen-api/internal/api/shared"
	"github.com/mamyzabawki/descgen-api/internal/domain"
	"github.com/mamyzabawki/descgen-api/internal/generation"
)

// GenerateHandler serves the synchronous single-product endpoint.
type GenerateHandler struct {
	generator generation.Generator
	logger    *slog.Logger
}

// NewGenerateHandler creates a GenerateHandler.
func NewGenerateHandler(generator generation.Generator, logger *slog.Logger) *GenerateHandler {
	return &GenerateHandler{
		generator: generator,
		logger:    logger,
	}
}

// GenerateResponse wraps the generated HTML for JSON clients.
type GenerateResponse struct {
	Response string `json:"response"`
}

// GetResponse handles POST /get_response. The product payload is loosely
// normalized, never rejected for missing fields; any failure surfaces as a
// 500 with the error's text, matching the established client contract.
func (h *GenerateHandler) GetResponse(w http.ResponseWriter, r *http.Request) {
	var input domain.ProductInput
	if err := shared.DecodeJSON(r, &input); err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	input.Normalize()

	prompt := generation.BuildPrompt(input)

	html, err := h.generator.Generate(r.Context(), prompt)
	if err != nil {
		h.logger.Error("description generation failed",
			"name", input.Name,
			"error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(html)); err != nil {
			h.logger.Error("failed to write HTML response", "error", err)
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateResponse{Response: html})
}
