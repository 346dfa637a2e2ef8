package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ABHINAV-SUREKA/aws-lambda-slack-relay/constants"
	"github.com/aws/aws-lambda-go/lambdacontext"
	log "github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
)

// Notifier delivers a single message. Every call is one outbound post.
type Notifier interface {
	Notify(ctx context.Context, message string, cfg DeliveryConfig) error
}

type HttpRequest struct {
	URL     string
	Headers map[string]string
	Method  string
	Body    []byte
}

type SlackNotifier struct {
	client *http.Client
}

// NewSlackNotifier posts through client, or a default http.Client when nil.
func NewSlackNotifier(client *http.Client) *SlackNotifier {
	if client == nil {
		client = &http.Client{}
	}
	return &SlackNotifier{client: client}
}

func (n *SlackNotifier) Notify(ctx context.Context, message string, cfg DeliveryConfig) error {
	httpReq, err := FormatEventMessage(message, cfg)
	if err != nil {
		return &DeliveryError{Detail: "build payload", Err: err}
	}
	return n.SendNotification(ctx, httpReq)
}

// FormatEventMessage builds the webhook request for one message.
func FormatEventMessage(message string, cfg DeliveryConfig) (HttpRequest, error) {
	payload := slack.WebhookMessage{
		Text:      message,
		Channel:   cfg.Channel,
		Username:  cfg.Username,
		IconEmoji: cfg.IconEmoji,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return HttpRequest{}, err
	}

	return HttpRequest{
		URL:     cfg.WebhookURL,
		Method:  http.MethodPost,
		Headers: map[string]string{"Content-Type": constants.ContentType},
		Body:    body,
	}, nil
}

func (n *SlackNotifier) SendNotification(ctx context.Context, httpReq HttpRequest) error {
	log.Debug("string(httpReq.Body): ", string(httpReq.Body))

	req, err := http.NewRequestWithContext(ctx, httpReq.Method, httpReq.URL, bytes.NewReader(httpReq.Body))
	if err != nil {
		return &DeliveryError{Detail: "build request", Err: err}
	}
	for key, val := range httpReq.Headers {
		req.Header.Add(key, val)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return &DeliveryError{Detail: "post webhook", Err: err}
	}
	defer func(Body io.ReadCloser) { _ = Body.Close() }(resp.Body)

	if statusOK := resp.StatusCode >= 200 && resp.StatusCode < 300; !statusOK {
		return &DeliveryError{Detail: fmt.Sprintf("non-OK HTTP status: %v", resp.StatusCode)}
	}
	return nil
}

// Handler resolves config, decodes the event and delivers each message in
// order. The first delivery failure ends the invocation; later messages are
// not attempted.
func (c *config) Handler() (string, error) {
	logger := log.NewEntry(log.StandardLogger())
	if lc, ok := lambdacontext.FromContext(c.ctx); ok {
		logger = logger.WithField("request_id", lc.AwsRequestID)
	}

	cfg, err := Resolve(c.lookup)
	if err != nil {
		logger.WithError(err).Error("Failed to resolve configuration")
		return "", err
	}
	log.SetLevel(cfg.LogLevel)

	messages, err := DecodeEvent(c.event)
	if err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			logger = logger.WithField("stage", decodeErr.Kind.Error())
		}
		logger.WithError(err).Error("Failed to decode event")
		return "", err
	}
	logger.Debugf("Decoded %d message(s)", len(messages))

	for i, message := range messages {
		if err := c.notifier.Notify(c.ctx, message, cfg.Delivery); err != nil {
			err = fmt.Errorf("message %d of %d: %w", i+1, len(messages), err)
			logger.WithError(err).WithField("channel", cfg.Delivery.Channel).Error("Failed to send notification")
			return "", err
		}
		logger.Infof("Successfully sent notification to %s", cfg.Delivery.Channel)
	}

	return fmt.Sprintf("delivered %d message(s)", len(messages)), nil
}
