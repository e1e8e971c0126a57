package main

import (
	"HoopStatApi/internal/data"
	"HoopStatApi/internal/stats"
	"HoopStatApi/internal/validator"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) InsertPlayer(w http.ResponseWriter, r *http.Request) {
	var input data.PlayerDto

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	player := input.Convert(v)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.state.InsertPlayer(r.Context(), player)
	if err != nil {
		var modelValidationErr data.ModelValidationErr
		switch {
		case errors.As(err, &modelValidationErr):
			app.failedValidationResponse(w, r, modelValidationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/players/%s", player.ID))
	err = app.writeJSON(w, http.StatusCreated, envelope{"player": player}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetAllPlayers(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, envelope{"players": app.state.Players()}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// playerFromRequest writes the error response itself and returns nil when the player in the
// URL does not exist.
func (app *application) playerFromRequest(w http.ResponseWriter, r *http.Request) *data.Player {
	player, err := app.state.GetPlayer(chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return nil
	}
	return player
}

func (app *application) GetPlayer(w http.ResponseWriter, r *http.Request) {
	player := app.playerFromRequest(w, r)
	if player == nil {
		return
	}

	err := app.writeJSON(w, http.StatusOK, envelope{"player": player}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	var input data.PlayerDto

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	player, err := app.state.UpdatePlayer(r.Context(), chi.URLParam(r, "id"), &input)
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

	err = app.writeJSON(w, http.StatusOK, envelope{"player": player}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetDashboard(w http.ResponseWriter, r *http.Request) {
	player := app.playerFromRequest(w, r)
	if player == nil {
		return
	}

	games := app.state.GameStats(player.ID)
	season := stats.Aggregate(games)

	dashboard := envelope{
		"player":       player,
		"games_played": season.Totals.Games,
		"total_points": season.Totals.Points,
		"averages":     season.Averages,
		"last_game":    nil,
	}
	if len(games) > 0 {
		dashboard["last_game"] = data.Summarize(games[len(games)-1])
	}

	err := app.writeJSON(w, http.StatusOK, envelope{"dashboard": dashboard}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetGameHistory(w http.ResponseWriter, r *http.Request) {
	player := app.playerFromRequest(w, r)
	if player == nil {
		return
	}

	qs := r.URL.Query()
	v := validator.New()
	limit := app.readInt(qs, "limit", 0, v)
	v.Check(limit >= 0, "limit", "must be zero or greater")
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	games := app.state.GameStats(player.ID)
	data.SortByDateDesc(games)
	if limit > 0 && len(games) > limit {
		games = games[:limit]
	}

	rows := make([]data.GameSummary, 0, len(games))
	for _, g := range games {
		rows = append(rows, data.Summarize(g))
	}

	err := app.writeJSON(w, http.StatusOK, envelope{"games": rows}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetCard(w http.ResponseWriter, r *http.Request) {
	player := app.playerFromRequest(w, r)
	if player == nil {
		return
	}

	card := data.BuildCard(*player, app.state.GameStats(player.ID))

	err := app.writeJSON(w, http.StatusOK, envelope{"card": card}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) ShareCard(w http.ResponseWriter, r *http.Request) {
	if app.config.smtp.host == "" {
		app.featureDisabledResponse(w, r, "card sharing")
		return
	}

	var input struct {
		Email string `json:"email"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(input.Email != "", "email", "must be provided")
	v.Check(validator.Matches(input.Email, validator.EmailRX), "email",
		"must be a valid email address")
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	player := app.playerFromRequest(w, r)
	if player == nil {
		return
	}

	card := data.BuildCard(*player, app.state.GameStats(player.ID))

	app.backgroundTask(func() {
		err := app.mailer.Send(input.Email, "card_share.tmpl", card)
		if err != nil {
			app.logger.PrintError(err, map[string]string{"player_id": player.ID})
		}
	})

	err = app.writeJSON(w, http.StatusAccepted, envelope{
		"message": fmt.Sprintf("card for %s will be sent to %s", player.Name, input.Email)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
