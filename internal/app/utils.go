package app

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/klauspost/compress/gzip"
)

// DecodeEvent picks the decoder for the event shape: a CloudWatch Logs
// subscription event ("awslogs") or an SNS event ("Records").
func DecodeEvent(raw json.RawMessage) ([]string, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &DecodeError{Kind: ErrMalformedPayload, Err: err}
	}

	if hasKey(envelope, "awslogs") {
		event := events.CloudwatchLogsEvent{}
		if err := json.Unmarshal(raw, &event); err != nil {
			return nil, &DecodeError{Kind: ErrMalformedPayload, Err: err}
		}
		if event.AWSLogs.Data == "" {
			return nil, nil
		}
		return DecodeLogs(event.AWSLogs.Data)
	}

	if hasKey(envelope, "Records") {
		event := events.SNSEvent{}
		if err := json.Unmarshal(raw, &event); err != nil {
			return nil, &DecodeError{Kind: ErrMalformedPayload, Err: err}
		}
		return DecodeNotifications(event), nil
	}

	return nil, &DecodeError{Kind: ErrMalformedPayload, Err: errors.New("unrecognised event shape")}
}

// hasKey matches keys the way encoding/json matches field names.
func hasKey(envelope map[string]json.RawMessage, name string) bool {
	for key := range envelope {
		if strings.EqualFold(key, name) {
			return true
		}
	}
	return false
}

// DecodeLogs turns base64(gzip(json)) CloudWatch Logs data into the messages
// of its log events, in order. Events without a message are skipped.
func DecodeLogs(data string) ([]string, error) {
	gzipped, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, &DecodeError{Kind: ErrInvalidEncoding, Err: err}
	}

	raw, err := gunzip(gzipped)
	if err != nil {
		return nil, &DecodeError{Kind: ErrDecompressionFailed, Err: err}
	}

	logsData := events.CloudwatchLogsData{}
	if err := json.Unmarshal(raw, &logsData); err != nil {
		return nil, &DecodeError{Kind: ErrMalformedPayload, Err: err}
	}
	if logsData.LogEvents == nil {
		return nil, &DecodeError{Kind: ErrMalformedPayload, Err: errors.New("logEvents missing")}
	}

	messages := make([]string, 0, len(logsData.LogEvents))
	for _, logEvent := range logsData.LogEvents {
		if logEvent.Message == "" {
			continue
		}
		messages = append(messages, logEvent.Message)
	}
	return messages, nil
}

// DecodeNotifications projects the SNS message of every record that has one.
func DecodeNotifications(event events.SNSEvent) []string {
	messages := make([]string, 0, len(event.Records))
	for _, record := range event.Records {
		if record.SNS.Message == "" {
			continue
		}
		messages = append(messages, record.SNS.Message)
	}
	return messages
}

func gunzip(gzipped []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(gzipped))
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		return nil, errors.New("decompressed data is not valid UTF-8")
	}
	return raw, nil
}
