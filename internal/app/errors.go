package app

import (
	"errors"
	"fmt"
)

var (
	ErrMissingRequired     = errors.New("missing required configuration")
	ErrInvalidEncoding     = errors.New("invalid base64 encoding")
	ErrDecompressionFailed = errors.New("gzip decompression failed")
	ErrMalformedPayload    = errors.New("malformed payload")
	ErrSendFailed          = errors.New("send failed")
)

// ConfigError names the environment variable that could not be resolved.
type ConfigError struct {
	Name string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingRequired, e.Name)
}

func (e *ConfigError) Unwrap() error {
	return ErrMissingRequired
}

// DecodeError reports which decode stage failed. Kind is one of
// ErrInvalidEncoding, ErrDecompressionFailed or ErrMalformedPayload.
type DecodeError struct {
	Kind error
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

type DeliveryError struct {
	Detail string
	Err    error
}

func (e *DeliveryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrSendFailed, e.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", ErrSendFailed, e.Detail, e.Err)
}

func (e *DeliveryError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSendFailed}
	}
	return []error{ErrSendFailed, e.Err}
}
