package profiler

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrAuth means the API key is missing or was rejected.
	ErrAuth = errors.New("gemini credential missing or rejected")
	// ErrServiceUnavailable covers transport failures and non-success replies.
	ErrServiceUnavailable = errors.New("gemini service unavailable")
	// ErrParse means the reply text was missing or did not match the schema.
	ErrParse = errors.New("gemini response could not be parsed")
)

// classify maps a transport error onto ErrAuth or ErrServiceUnavailable.
func classify(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden {
			return ErrAuth
		}
	}
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unauthenticated, codes.PermissionDenied:
			return ErrAuth
		case codes.InvalidArgument:
			if strings.Contains(strings.ToLower(st.Message()), "api key") {
				return ErrAuth
			}
		}
	}
	return ErrServiceUnavailable
}
