package otelhelper

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrorTypeKey holds the Go type of an error recorded on a span.
const ErrorTypeKey = "operion.error.type"

// SetError marks span as failed, records err and adds an error_occurred event carrying attrs.
// A nil err is ignored.
func SetError(span trace.Span, err error, attrs ...attribute.KeyValue) {
	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.AddEvent("error_occurred", trace.WithAttributes(
		append(attrs, attribute.String(ErrorTypeKey, errorType(err)))...,
	))
}

func errorType(err error) string {
	return fmt.Sprintf("%T", err)
}
