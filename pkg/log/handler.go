package log

import (
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

func init() {
	zerolog.ErrorFieldName = ErrAttrKey
	zerolog.ErrorStackFieldName = StacktraceAttrKey
	zerolog.ErrorStackMarshaler = marshalStack
}

// marshalStack renders the stack trace recorded by cockroachdb/errors.
// zerolog omits the field when nil is returned.
func marshalStack(err error) interface{} {
	if stacktrace := extractStacktrace(err); stacktrace != "" {
		return stacktrace
	}
	return nil
}

func extractStacktrace(err error) string {
	for _, payload := range errors.GetAllSafeDetails(err) {
		if len(payload.SafeDetails) > 0 && payload.SafeDetails[0] != "" {
			return payload.SafeDetails[0]
		}
	}
	return ""
}
