package main

import (
	"HoopStatApi/internal/data"
	"HoopStatApi/internal/gamehub"
	"HoopStatApi/internal/validator"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

func (app *application) StartTracking(w http.ResponseWriter, r *http.Request) {
	var input struct {
		PlayerID string `json:"player_id"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(validator.NotBlank(input.PlayerID), "player_id", "must be provided")
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	hub, err := app.hubs.Start(input.PlayerID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			v.AddError("player_id", "player not found")
			app.failedValidationResponse(w, r, v.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.logger.PrintInfo("tracking session started", map[string]string{
		"session_id": hub.ID,
		"player_id":  hub.PlayerID,
	})

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/tracking/%s", hub.ID))
	err = app.writeJSON(w, http.StatusCreated, envelope{"session": hub.Snapshot()}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// hubFromRequest writes the error response itself and returns nil when there is no such session.
func (app *application) hubFromRequest(w http.ResponseWriter, r *http.Request) *gamehub.Hub {
	hub, err := app.hubs.Get(chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, gamehub.ErrSessionNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return nil
	}
	return hub
}

func (app *application) GetTracking(w http.ResponseWriter, r *http.Request) {
	hub := app.hubFromRequest(w, r)
	if hub == nil {
		return
	}

	err := app.writeJSON(w, http.StatusOK, envelope{"session": hub.Snapshot()}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) UpdateTracking(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Opponent        *string `json:"opponent"`
		Date            *string `json:"date"`
		ScheduledGameID *string `json:"scheduled_game_id"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	hub := app.hubFromRequest(w, r)
	if hub == nil {
		return
	}

	app.applyEvent(w, r, hub, gamehub.InfoEvent{
		Opponent:        input.Opponent,
		Date:            input.Date,
		ScheduledGameID: input.ScheduledGameID,
	})
}

func (app *application) TrackEvent(w http.ResponseWriter, r *http.Request) {
	var input gamehub.GenericEvent

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	event, err := input.Parse()
	if err != nil {
		switch {
		case errors.Is(err, gamehub.ErrEventValidationFailed):
			app.failedValidationResponse(w, r, map[string]string{"event": err.Error()})
		default:
			app.badRequestResponse(w, r, err)
		}
		return
	}

	hub := app.hubFromRequest(w, r)
	if hub == nil {
		return
	}

	app.applyEvent(w, r, hub, event)
}

func (app *application) applyEvent(w http.ResponseWriter, r *http.Request, hub *gamehub.Hub,
	event gamehub.GameEvent) {
	snapshot, err := hub.Apply(event)
	if err != nil {
		switch {
		case errors.Is(err, gamehub.ErrSessionClosed):
			app.notFoundResponse(w, r)
		case errors.Is(err, gamehub.ErrEventValidationFailed):
			app.failedValidationResponse(w, r, map[string]string{"event": err.Error()})
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"session": snapshot}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) FinalizeTracking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	gs, err := app.hubs.Finalize(r.Context(), id)
	if err != nil {
		var modelValidationErr data.ModelValidationErr
		switch {
		case errors.Is(err, gamehub.ErrSessionNotFound):
			app.notFoundResponse(w, r)
		case errors.As(err, &modelValidationErr):
			app.failedValidationResponse(w, r, modelValidationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.logger.PrintInfo("tracking session saved", map[string]string{
		"session_id": id,
		"game_id":    gs.GameID,
	})

	err = app.writeJSON(w, http.StatusCreated, envelope{"game": data.Summarize(*gs)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) CancelTracking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := app.hubs.Cancel(id)
	if err != nil {
		switch {
		case errors.Is(err, gamehub.ErrSessionNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{
		"message": fmt.Sprintf("tracking session (%s) discarded", id)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			if slices.Contains(app.config.cors.trustedOrigins, origin) {
				return true
			}
			u, err := url.Parse(origin)
			return err == nil && u.Host == r.Host
		},
	}
}

func (app *application) KeepTracking(w http.ResponseWriter, r *http.Request) {
	hub := app.hubFromRequest(w, r)
	if hub == nil {
		return
	}

	upgrader := app.upgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		app.logError(r, err)
		return
	}

	err = hub.JoinKeeper(conn)
	if err != nil {
		app.logError(r, err)
	}
}

func (app *application) WatchTracking(w http.ResponseWriter, r *http.Request) {
	hub := app.hubFromRequest(w, r)
	if hub == nil {
		return
	}

	upgrader := app.upgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.logError(r, err)
		return
	}

	err = hub.JoinWatcher(conn)
	if err != nil {
		app.logError(r, err)
	}
}
