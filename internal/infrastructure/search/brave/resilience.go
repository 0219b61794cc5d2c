package brave

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/neuralnexus/assistant/internal/infrastructure/resilience"
)

type HTTPStatusError struct {
	Operation  string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "search status error"
	}
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("search %s status: %s", e.Operation, e.Status)
	}
	return fmt.Sprintf("search %s status: %s: %s", e.Operation, e.Status, strings.TrimSpace(e.Body))
}

// classifySearchError maps one failed attempt onto the retry machine:
// timeouts retry within the attempt budget, 429 retries on the rate-limit
// budget, and every other error fails immediately.
func classifySearchError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) {
		return resilience.ErrorClassification{
			Class:         resilience.ClassFatal,
			RecordFailure: false,
		}
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusTooManyRequests {
			return resilience.ErrorClassification{
				Class:         resilience.ClassRateLimited,
				RecordFailure: true,
			}
		}
		return resilience.ErrorClassification{
			Class:         resilience.ClassFatal,
			RecordFailure: statusErr.StatusCode >= 500,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{
			Class:         resilience.ClassTimeout,
			RecordFailure: true,
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return resilience.ErrorClassification{
			Class:         resilience.ClassTimeout,
			RecordFailure: true,
		}
	}

	return resilience.ErrorClassification{
		Class:         resilience.ClassFatal,
		RecordFailure: true,
	}
}
