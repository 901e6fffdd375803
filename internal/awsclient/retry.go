package awsclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"
)

const (
	// DefaultMaxAttempts bounds the retry loop for throttled remote calls.
	DefaultMaxAttempts = 5

	baseBackoff = 500 * time.Millisecond
)

// SleepFunc suspends the caller for d, returning early if ctx is cancelled.
// Tests substitute a recording implementation.
type SleepFunc func(ctx context.Context, d time.Duration) error

// DefaultSleep waits on a timer or the context, whichever finishes first.
func DefaultSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// withRetry invokes call up to maxAttempts times, backing off
// 500ms*2^(attempt-1) between attempts. Only throttling errors are retried;
// anything else propagates immediately with provider metadata attached.
func withRetry(ctx context.Context, sleep SleepFunc, maxAttempts int, call func() error) error {
	for attempt := 1; ; attempt++ {
		err := call()
		if err == nil {
			return nil
		}
		if attempt >= maxAttempts || !isThrottleError(err) {
			return fmt.Errorf("%s", FormatAPIError(err))
		}
		backoff := baseBackoff * (1 << (attempt - 1))
		if sleepErr := sleep(ctx, backoff); sleepErr != nil {
			return sleepErr
		}
	}
}

// isThrottleError matches the structured error code when available and falls
// back to message substrings otherwise. Authorization and validation errors
// must never match.
func isThrottleError(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "TooManyRequestsException", "ThrottlingException", "Throttling":
			return true
		}
	}
	message := err.Error()
	return strings.Contains(message, "TooManyRequests") ||
		strings.Contains(message, "Throttling") ||
		strings.Contains(message, "Rate exceeded")
}

// FormatAPIError flattens an SDK error into one diagnostic string carrying
// the provider error code, message, and request ID when present.
func FormatAPIError(err error) string {
	parts := []string{err.Error()}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if code := apiErr.ErrorCode(); code != "" {
			parts = append(parts, fmt.Sprintf("code=%s", code))
		}
		if message := apiErr.ErrorMessage(); message != "" {
			parts = append(parts, fmt.Sprintf("message=%s", message))
		}
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		if requestID := respErr.ServiceRequestID(); requestID != "" {
			parts = append(parts, fmt.Sprintf("request_id=%s", requestID))
		}
	}
	return strings.Join(parts, " | ")
}
