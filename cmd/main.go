package main

import (
	"context"
	"encoding/json"

	"github.com/ABHINAV-SUREKA/aws-lambda-slack-relay/internal/app"
	"github.com/aws/aws-lambda-go/lambda"
	log "github.com/sirupsen/logrus"
)

var (
	relay app.Relay
)

func init() {
	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: "02-01-2006 15:04:05",
		FullTimestamp:   true,
	})
	loadEnvFile()
}

// HandleLambdaEvent accepts either a CloudWatch Logs subscription event or
// an SNS event.
func HandleLambdaEvent(ctx context.Context, event json.RawMessage) (string, error) {
	relay = newRelay(ctx, event)
	return relay.Handler()
}

func main() {
	lambda.Start(HandleLambdaEvent)
}
