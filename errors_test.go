package confembed

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRemoteError_UnhandledRequest tests that the fallback error response
// matches ErrUnhandledRequest and other remote errors do not.
func TestRemoteError_UnhandledRequest(t *testing.T) {
	unhandled := &RemoteError{RequestID: "01J9Z3", Message: "unhandled request"}

	require.ErrorIs(t, unhandled, ErrUnhandledRequest)
	require.Contains(t, unhandled.Error(), "01J9Z3")

	other := &RemoteError{RequestID: "01J9Z4", Message: "engine busy"}
	require.NotErrorIs(t, other, ErrUnhandledRequest)
}

// TestBadArgumentsError_Unwrap tests BadArgumentsError formatting and unwrapping.
func TestBadArgumentsError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("argument 0: want string, got float64")
	err := &BadArgumentsError{Command: "display-name", Args: []any{42.0}, Err: inner}

	require.Contains(t, err.Error(), `"display-name"`)
	require.ErrorIs(t, err, inner)
}

// TestErrors_ImplementConfEmbedError tests the marker interface through
// wrapping.
func TestErrors_ImplementConfEmbedError(t *testing.T) {
	errs := []error{
		&BadArgumentsError{Command: "email"},
		&RemoteError{RequestID: "1"},
		&MessageDecodeError{RawData: "{"},
	}

	for _, err := range errs {
		wrapped := fmt.Errorf("context: %w", err)

		var target ConfEmbedError
		require.True(t, errors.As(wrapped, &target), "%T", err)
		require.True(t, target.IsConfEmbedError())
	}
}
