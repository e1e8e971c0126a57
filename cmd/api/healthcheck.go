package main

import (
	"net/http"
	"strings"
)

func (app *application) HealthCheck(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, envelope{
		"status": "available",
		"system_info": map[string]string{
			"environment": app.config.env,
			"version":     app.config.version,
			"store":       app.config.store.kind,
		},
		"cors_info": map[string]string{
			"trusted_origins": strings.Join(app.config.cors.trustedOrigins, " | "),
		},
		"features": map[string]bool{
			"schedule_import": app.extractor != nil,
			"card_share":      app.config.smtp.host != "",
		},
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
