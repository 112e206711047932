package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
)

type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	CardsLoaded int    `json:"cards_loaded"`
}

// DiffRequest Both deck lists are required, an empty string is an empty deck.
type DiffRequest struct {
	DeckList1 *string `json:"deck_list_1"`
	DeckList2 *string `json:"deck_list_2"`
}

type Handler struct {
	finder  CardFinder
	decks   DeckService
	version string
}

func NewHandler(finder CardFinder, decks DeckService, version string) *Handler {
	if finder == nil || decks == nil {
		panic("missing card finder or deck service")
	}

	return &Handler{
		finder:  finder,
		decks:   decks,
		version: version,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:      "healthy",
		Version:     h.version,
		CardsLoaded: h.finder.Len(),
	})
}

// Card returns the catalog record with exactly the given name.
func (h *Handler) Card(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			writeError(w, r, newErr(r, http.StatusBadRequest, "invalid card name encoding"))

			return
		}
		name = unescaped
	}
	if strings.TrimSpace(name) == "" {
		writeError(w, r, newErr(r, http.StatusBadRequest, "card name is required"))

		return
	}

	card, ok := h.finder.Lookup(name)
	if !ok {
		writeError(w, r, newErr(r, http.StatusNotFound, fmt.Sprintf("card %q not found", name)))

		return
	}

	writeJSON(w, r, http.StatusOK, card)
}

func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	text, ok := readText(w, r)
	if !ok {
		return
	}

	writeJSON(w, r, http.StatusOK, h.decks.Resolve(text))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	text, ok := readText(w, r)
	if !ok {
		return
	}

	writeJSON(w, r, http.StatusOK, h.decks.Resolve(text).Stats())
}

func (h *Handler) Diff(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, r, newErr(r, http.StatusRequestEntityTooLarge, err.Error()))

			return
		}
		writeError(w, r, newErr(r, http.StatusBadRequest, fmt.Sprintf("invalid diff request: %v", err)))

		return
	}
	if req.DeckList1 == nil || req.DeckList2 == nil {
		writeError(w, r, newErr(r, http.StatusBadRequest, "deck_list_1 and deck_list_2 are required"))

		return
	}

	writeJSON(w, r, http.StatusOK, h.decks.Diff(*req.DeckList1, *req.DeckList2))
}

// readText reads the whole body as deck list. Writes the error response and returns false on failure.
func readText(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		if isBodyTooLarge(err) {
			writeError(w, r, newErr(r, http.StatusRequestEntityTooLarge, err.Error()))

			return "", false
		}
		writeError(w, r, newErr(r, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err)))

		return "", false
	}

	if !utf8.Valid(body) {
		writeError(w, r, newErr(r, http.StatusBadRequest, "request body is not valid utf-8"))

		return "", false
	}

	return string(body), true
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError

	return errors.As(err, &maxErr)
}
