package main

import (
	"HoopStatApi/internal/data"
	"HoopStatApi/internal/extract"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) GetSchedule(w http.ResponseWriter, r *http.Request) {
	player := app.playerFromRequest(w, r)
	if player == nil {
		return
	}

	err := app.writeJSON(w, http.StatusOK, envelope{
		"schedule": data.SortScheduleByDate(player.Schedule)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) AddScheduledGame(w http.ResponseWriter, r *http.Request) {
	var input data.ScheduleEntry

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	game, err := app.state.AddScheduledGame(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		var modelValidationErr data.ModelValidationErr
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.As(err, &modelValidationErr):
			app.failedValidationResponse(w, r, modelValidationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"game": game}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) ImportSchedule(w http.ResponseWriter, r *http.Request) {
	if app.extractor == nil {
		app.featureDisabledResponse(w, r, "schedule import")
		return
	}

	document, mediaType, err := app.readDocument(w, r, "document")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	games, err := app.state.ImportSchedule(r.Context(), chi.URLParam(r, "id"), app.extractor,
		document, mediaType)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, extract.ErrBusy):
			app.conflictResponse(w, r, extract.ErrBusy)
		case errors.Is(err, extract.ErrEmptyDocument):
			app.badRequestResponse(w, r, extract.ErrEmptyDocument)
		case errors.Is(err, data.ErrExtractionFailed):
			app.collaboratorFailedResponse(w, r, err, data.ErrExtractionFailed.Error())
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"games": games}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) RemoveScheduledGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	err := app.state.RemoveScheduledGame(r.Context(), chi.URLParam(r, "id"), gameID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{
		"message": "scheduled game successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
