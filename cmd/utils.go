package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ABHINAV-SUREKA/aws-lambda-slack-relay/constants"
	"github.com/ABHINAV-SUREKA/aws-lambda-slack-relay/internal/app"
	log "github.com/sirupsen/logrus"
)

// One client for the lifetime of the execution environment.
var httpClient = &http.Client{}

func loadEnvFile() {
	if err := app.LoadEnvFile(constants.EnvFile); err != nil {
		log.WithError(err).Warn("Ignoring env file")
	}
}

func newRelay(ctx context.Context, event json.RawMessage) app.Relay {
	return app.New(ctx, event, app.WithNotifier(app.NewSlackNotifier(httpClient)))
}
