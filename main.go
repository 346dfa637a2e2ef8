// Command aws-lambda-slack-relay replays a saved Lambda event through the
// relay handler locally.
//
//	go run . -event event.json -env .env.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ABHINAV-SUREKA/aws-lambda-slack-relay/constants"
	"github.com/ABHINAV-SUREKA/aws-lambda-slack-relay/internal/app"
	log "github.com/sirupsen/logrus"
)

func main() {
	eventPath := flag.String("event", "-", "path to the event JSON, - for stdin")
	envPath := flag.String("env", constants.EnvFile, "optional YAML file of environment variables")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: "02-01-2006 15:04:05",
		FullTimestamp:   true,
	})

	if err := app.LoadEnvFile(*envPath); err != nil {
		log.Fatal(err)
	}

	event, err := readEvent(*eventPath)
	if err != nil {
		log.Fatal(err)
	}

	result, err := app.New(context.Background(), event).Handler()
	if err != nil {
		os.Exit(1)
	}
	fmt.Println(result)
}

func readEvent(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
