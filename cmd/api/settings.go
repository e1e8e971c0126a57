package main

import (
	"HoopStatApi/internal/validator"
	"net/http"
)

func (app *application) GetSettings(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, envelope{
		"settings": map[string]bool{"dark_mode": app.state.DarkMode()}}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var input struct {
		DarkMode *bool `json:"dark_mode"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(input.DarkMode != nil, "dark_mode", "must be provided")
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.state.SetDarkMode(r.Context(), *input.DarkMode)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{
		"settings": map[string]bool{"dark_mode": *input.DarkMode}}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
