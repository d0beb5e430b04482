package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendError_MatchesErrBackend(t *testing.T) {
	err := fmt.Errorf("save post: %w", &BackendError{Status: 400, Code: 142, Message: "caption too long"})

	require.ErrorIs(t, err, ErrBackend)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrNetwork)
}

func TestBackendError_InvalidSessionIsUnauthorized(t *testing.T) {
	tests := []struct {
		name string
		err  *BackendError
	}{
		{"code 209", &BackendError{Status: 400, Code: CodeInvalidSessionToken, Message: "invalid session token"}},
		{"status 401", &BackendError{Status: 401, Message: "unauthorized"}},
		{"status 403", &BackendError{Status: 403, Message: "forbidden"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, ErrUnauthorized)
			assert.ErrorIs(t, tt.err, ErrBackend)
		})
	}
}

func TestBackendError_Error(t *testing.T) {
	assert.Equal(t, "boom (code 1)", (&BackendError{Code: 1, Message: "boom"}).Error())
	assert.Equal(t, "boom", (&BackendError{Message: "boom"}).Error())
}

func TestInputError(t *testing.T) {
	err := InputError("please select an image first")
	require.ErrorIs(t, err, ErrInput)
	assert.Contains(t, err.Error(), "please select an image first")
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "Invalid username/password.",
		UserMessage(fmt.Errorf("login: %w", &BackendError{Code: 101, Message: "Invalid username/password."})))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}
