// Package handlers implements the client-facing HTTP surface. Every
// response uses the {"success": bool, ...} envelope; failures carry a
// human-readable message and no partial payload.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"listinglab/internal/content"
	"listinglab/internal/infra"
	"listinglab/internal/providers/collections"
	"listinglab/internal/providers/videogen"
	"listinglab/internal/render"
	"listinglab/internal/store"

	"github.com/rs/zerolog"
)

// App is the handler container holding every dependency the HTTP surface
// needs.
type App struct {
	Logger zerolog.Logger
	Config *infra.Config

	Users     store.Users
	Contents  store.Contents
	Histories store.Histories

	Collections *collections.Client
	Extractor   collections.Extractor
	Video       *videogen.Client

	Generator *content.Generator
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (a *App) fail(w http.ResponseWriter, code int, message string) {
	a.json(w, code, failureResponse{Success: false, Message: message})
}

// failFrom maps engine errors onto the client-facing taxonomy. Timeouts get
// a distinct message so a slow render is distinguishable from a hard
// provider failure.
func (a *App) failFrom(w http.ResponseWriter, err error) {
	var subErr *render.SubmissionError
	var persistErr *content.PersistenceError
	switch {
	case errors.As(err, &subErr):
		msg := "the render provider rejected the job"
		if subErr.Message != "" {
			msg = "the render provider rejected the job: " + subErr.Message
		}
		a.fail(w, http.StatusInternalServerError, msg)
	case errors.Is(err, render.ErrGenerationFailed):
		a.fail(w, http.StatusInternalServerError, "the render provider reported a failure")
	case errors.Is(err, render.ErrPollTimeout):
		a.fail(w, http.StatusInternalServerError, "timed out waiting for the render to complete")
	case errors.As(err, &persistErr):
		a.fail(w, http.StatusInternalServerError, "the content was rendered but could not be saved")
	default:
		a.fail(w, http.StatusInternalServerError, "content generation failed")
	}
	a.Logger.Error().Err(err).Msg("generation request failed")
}
