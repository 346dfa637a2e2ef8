package app_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/ABHINAV-SUREKA/aws-lambda-slack-relay/internal/app"
	"github.com/aws/aws-lambda-go/events"
	"github.com/klauspost/compress/gzip"
)

func gzipBytes(t *testing.T, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(raw); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func encodeLogs(t *testing.T, raw string) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString(gzipBytes(t, []byte(raw)))
}

func TestDecodeLogs(t *testing.T) {
	data := encodeLogs(t, `{"logEvents":[{"message":"a"},{},{"message":"b"}]}`)

	got, err := app.DecodeLogs(data)
	if err != nil {
		t.Fatalf("DecodeLogs: %v", err)
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("DecodeLogs = %q, want %q", got, want)
	}
}

func TestDecodeLogsNoMessages(t *testing.T) {
	for _, raw := range []string{`{"logEvents":[]}`, `{"logEvents":[{},{"id":"1"}]}`} {
		got, err := app.DecodeLogs(encodeLogs(t, raw))
		if err != nil {
			t.Fatalf("DecodeLogs(%s): %v", raw, err)
		}
		if len(got) != 0 {
			t.Fatalf("DecodeLogs(%s) = %q, want empty", raw, got)
		}
	}
}

func TestDecodeLogsErrors(t *testing.T) {
	gzipped := gzipBytes(t, []byte(`{"logEvents":[{"message":"a"}]}`))

	tests := []struct {
		name string
		data string
		want error
	}{
		{name: "bad characters", data: "!!not base64!!", want: app.ErrInvalidEncoding},
		{name: "bad padding", data: "YWJj=", want: app.ErrInvalidEncoding},
		{name: "not gzip", data: base64.StdEncoding.EncodeToString([]byte("plain text")), want: app.ErrDecompressionFailed},
		{name: "empty", data: "", want: app.ErrDecompressionFailed},
		{name: "truncated gzip", data: base64.StdEncoding.EncodeToString(gzipped[:len(gzipped)-6]), want: app.ErrDecompressionFailed},
		{name: "not utf8", data: base64.StdEncoding.EncodeToString(gzipBytes(t, []byte{0xff, 0xfe, 0xfd})), want: app.ErrDecompressionFailed},
		{name: "not json", data: encodeLogs(t, `{"logEvents":[`), want: app.ErrMalformedPayload},
		{name: "wrong type", data: encodeLogs(t, `{"logEvents":"a"}`), want: app.ErrMalformedPayload},
		{name: "wrong message type", data: encodeLogs(t, `{"logEvents":[{"message":1}]}`), want: app.ErrMalformedPayload},
		{name: "missing logEvents", data: encodeLogs(t, `{"owner":"123"}`), want: app.ErrMalformedPayload},
		{name: "null", data: encodeLogs(t, `null`), want: app.ErrMalformedPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := app.DecodeLogs(tt.data)
			if !errors.Is(err, tt.want) {
				t.Fatalf("DecodeLogs error = %v, want %v", err, tt.want)
			}
			var decodeErr *app.DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("DecodeLogs error %T is not a *DecodeError", err)
			}
			if got != nil {
				t.Fatalf("DecodeLogs returned %q alongside an error", got)
			}
		})
	}
}

func TestDecodeLogsPreservesOrder(t *testing.T) {
	alphabet := []rune("abcXYZ 019:-_\"\\\né日🙂")
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		var logsData events.CloudwatchLogsData
		want := []string{}
		for j := rng.Intn(20); j > 0; j-- {
			msg := make([]rune, rng.Intn(8))
			for k := range msg {
				msg[k] = alphabet[rng.Intn(len(alphabet))]
			}
			logsData.LogEvents = append(logsData.LogEvents, events.CloudwatchLogsLogEvent{Message: string(msg)})
			if len(msg) > 0 {
				want = append(want, string(msg))
			}
		}
		if logsData.LogEvents == nil {
			logsData.LogEvents = []events.CloudwatchLogsLogEvent{}
		}

		raw, err := json.Marshal(logsData)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		got, err := app.DecodeLogs(encodeLogs(t, string(raw)))
		if err != nil {
			t.Fatalf("DecodeLogs(%s): %v", raw, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("DecodeLogs(%s) = %q, want %q", raw, got, want)
		}
	}
}

func TestDecodeNotifications(t *testing.T) {
	event := events.SNSEvent{Records: []events.SNSEventRecord{
		{SNS: events.SNSEntity{Message: "first"}},
		{SNS: events.SNSEntity{Subject: "no message"}},
		{SNS: events.SNSEntity{Message: "second"}},
	}}

	if got, want := app.DecodeNotifications(event), []string{"first", "second"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("DecodeNotifications = %q, want %q", got, want)
	}
	if got := app.DecodeNotifications(events.SNSEvent{}); len(got) != 0 {
		t.Fatalf("DecodeNotifications(empty) = %q, want empty", got)
	}
}

func TestDecodeEvent(t *testing.T) {
	logs := encodeLogs(t, `{"logEvents":[{"message":"x"},{"message":"y"}]}`)

	tests := []struct {
		name    string
		event   string
		want    []string
		wantErr error
	}{
		{name: "cloudwatch logs", event: `{"awslogs":{"data":"` + logs + `"}}`, want: []string{"x", "y"}},
		{name: "cloudwatch logs camel case", event: `{"awsLogs":{"data":"` + logs + `"}}`, want: []string{"x", "y"}},
		{name: "cloudwatch logs without data", event: `{"awslogs":{}}`, want: nil},
		{name: "cloudwatch logs bad data", event: `{"awslogs":{"data":"%%%"}}`, wantErr: app.ErrInvalidEncoding},
		{name: "sns", event: `{"Records":[{"Sns":{"Message":"hello"}}]}`, want: []string{"hello"}},
		{name: "sns lower case", event: `{"records":[{"sns":{"message":"hello"}}]}`, want: []string{"hello"}},
		{name: "sns no records", event: `{"Records":[]}`, want: []string{}},
		{name: "sns wrong type", event: `{"Records":{}}`, wantErr: app.ErrMalformedPayload},
		{name: "unknown shape", event: `{"detail":{}}`, wantErr: app.ErrMalformedPayload},
		{name: "not an object", event: `[1,2]`, wantErr: app.ErrMalformedPayload},
		{name: "null", event: `null`, wantErr: app.ErrMalformedPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := app.DecodeEvent(json.RawMessage(tt.event))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DecodeEvent error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeEvent: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("DecodeEvent = %#v, want %#v", got, tt.want)
			}
		})
	}
}
