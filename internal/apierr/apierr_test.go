package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestFromStatus(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, ErrRateLimit},
		{http.StatusUnauthorized, ErrAuthFailed},
		{http.StatusForbidden, ErrAuthFailed},
		{http.StatusRequestTimeout, ErrTimeout},
		{http.StatusGatewayTimeout, ErrTimeout},
		{http.StatusInternalServerError, ErrServer},
		{http.StatusServiceUnavailable, ErrServer},
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusNotFound, ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := FromStatus(tt.status, base)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, base)
		})
	}

	assert.Same(t, base, FromStatus(0, base))
	assert.NoError(t, FromStatus(http.StatusTooManyRequests, nil))
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap("transcribe", nil))

	err := Wrap("transcribe", errors.New("upload failed"))
	var ce *CollaboratorError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "transcribe", ce.Op)
	assert.Contains(t, err.Error(), "transcribe failed: upload failed")

	assert.Same(t, err, Wrap("generate labels", err), "already wrapped errors pass through")

	deadline := Wrap("generate labels", fmt.Errorf("call: %w", context.DeadlineExceeded))
	assert.ErrorIs(t, deadline, ErrTimeout)
	assert.True(t, IsRetryable(deadline))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(FromStatus(429, errors.New("x"))))
	assert.True(t, IsRetryable(FromStatus(502, errors.New("x"))))
	assert.False(t, IsRetryable(FromStatus(401, errors.New("x"))))
	assert.False(t, IsRetryable(Malformed("no labels")))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestRetryWithBackoff(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		var retried []int
		c := cfg
		c.OnRetry = func(attempt int, _ error) { retried = append(retried, attempt) }

		got, err := RetryWithBackoff(context.Background(), c, func() (string, error) {
			calls++
			if calls < 3 {
				return "", ErrRateLimit
			}
			return "ok", nil
		}, IsRetryable)

		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []int{1, 2}, retried)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		calls := 0
		_, err := RetryWithBackoff(context.Background(), cfg, func() (int, error) {
			calls++
			return 0, ErrAuthFailed
		}, IsRetryable)

		assert.ErrorIs(t, err, ErrAuthFailed)
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		_, err := RetryWithBackoff(context.Background(), cfg, func() (int, error) {
			calls++
			return 0, ErrServer
		}, IsRetryable)

		assert.ErrorIs(t, err, ErrServer)
		assert.Contains(t, err.Error(), "max retries (3) exceeded")
		assert.Equal(t, 4, calls)
	})

	t.Run("honors cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		slow := RetryConfig{MaxRetries: 5, BaseDelay: time.Hour}

		_, err := RetryWithBackoff(ctx, slow, func() (int, error) {
			cancel()
			return 0, ErrTimeout
		}, IsRetryable)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("negative retries means single attempt", func(t *testing.T) {
		calls := 0
		_, _ = RetryWithBackoff(context.Background(), RetryConfig{MaxRetries: -1}, func() (int, error) {
			calls++
			return 0, ErrServer
		}, IsRetryable)
		assert.Equal(t, 1, calls)
	})
}

func TestClassify(t *testing.T) {
	assert.NoError(t, Classify(nil))

	plain := errors.New("connection reset")
	assert.Same(t, plain, Classify(plain))

	rateLimited := fmt.Errorf("generate: %w", genai.APIError{Code: 429, Message: "quota"})
	assert.ErrorIs(t, Classify(rateLimited), ErrRateLimit)
	assert.True(t, IsRetryable(Classify(rateLimited)))

	denied := &genai.APIError{Code: 403, Message: "key invalid"}
	assert.ErrorIs(t, Classify(denied), ErrAuthFailed)
	assert.False(t, IsRetryable(Classify(denied)))
}
