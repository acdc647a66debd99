package common

import (
	"errors"
	"testing"
)

func TestBotError_Error(t *testing.T) {
	underlying := errors.New("connection refused")

	withCause := &BotError{LogMessage: "failed to load account", Err: underlying}
	if got := withCause.Error(); got != "failed to load account: connection refused" {
		t.Errorf("Error() = %q", got)
	}

	withoutCause := &BotError{LogMessage: "non-positive stake"}
	if got := withoutCause.Error(); got != "non-positive stake" {
		t.Errorf("Error() = %q", got)
	}
}

func TestBotError_Unwrap(t *testing.T) {
	underlying := errors.New("deadlock detected")
	err := NewSystemError(underlying, "failed to settle")

	if !errors.Is(err, underlying) {
		t.Error("NewSystemError must wrap the underlying error")
	}
}

func TestNewUserError(t *testing.T) {
	err := NewUserError("You cannot challenge yourself.", "self challenge")

	if err.UserMessage != "You cannot challenge yourself." {
		t.Errorf("UserMessage = %q", err.UserMessage)
	}
	if err.LogMessage != "self challenge" {
		t.Errorf("LogMessage = %q", err.LogMessage)
	}
	if !err.Ephemeral {
		t.Error("user errors must be ephemeral")
	}
	if err.Err != nil {
		t.Error("user errors carry no underlying error")
	}
}

func TestNewSystemError(t *testing.T) {
	underlying := errors.New("connection refused")
	err := NewSystemError(underlying, "failed to load account")

	if err.UserMessage == "" {
		t.Error("system errors must carry a generic user message")
	}
	if err.Err != underlying {
		t.Error("system errors must keep the underlying error")
	}
	if !err.Ephemeral {
		t.Error("system errors must be ephemeral")
	}
}
