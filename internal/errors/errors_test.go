package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBadArgumentsError(t *testing.T) {
	root := errors.New("want string at 0")
	err := &BadArgumentsError{Command: "display-name", Args: []any{42.0}, Err: root}

	require.Equal(t, `bad arguments for command "display-name": want string at 0`, err.Error())
	require.ErrorIs(t, err, root)
	require.True(t, err.IsConfEmbedError())
}

func TestRemoteError(t *testing.T) {
	err := &RemoteError{RequestID: "01J", Message: "boom"}

	require.Equal(t, "request 01J failed remotely: boom", err.Error())
	require.NotErrorIs(t, err, ErrUnhandledRequest)
	require.True(t, err.IsConfEmbedError())
}

func TestRemoteError_Unhandled(t *testing.T) {
	err := fmt.Errorf("is-audio-muted: %w", &RemoteError{
		RequestID: "01J",
		Message:   ErrUnhandledRequest.Error(),
	})

	require.ErrorIs(t, err, ErrUnhandledRequest)
}

func TestMessageDecodeError(t *testing.T) {
	root := errors.New("unexpected end of JSON input")
	err := &MessageDecodeError{RawData: "{", Err: root}

	require.Equal(t, "failed to decode message: unexpected end of JSON input", err.Error())
	require.ErrorIs(t, err, root)
	require.True(t, err.IsConfEmbedError())

	var target *MessageDecodeError
	require.True(t, errors.As(fmt.Errorf("read: %w", err), &target))
	require.Equal(t, "{", target.RawData)
}
