package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	driverErr := errors.New("server selection timeout")

	tests := []struct {
		name     string
		err      *Error
		wantMsg  string
		wantKind ErrorKind
	}{
		{
			name:     "connection error carries phase prefix",
			err:      NewConnectionError(ReasonUnreachable, driverErr),
			wantMsg:  "Connection failed: server selection timeout",
			wantKind: ErrKindConnection,
		},
		{
			name:     "filter parse",
			err:      NewFilterParseError(errors.New("unexpected end")),
			wantMsg:  "Invalid filter: unexpected end",
			wantKind: ErrKindFilterParse,
		},
		{
			name:     "not found default message",
			err:      NewNotFoundError(""),
			wantMsg:  MsgDocumentNotFound,
			wantKind: ErrKindNotFound,
		},
		{
			name:     "operation",
			err:      NewOperationError("Failed to fetch documents", driverErr),
			wantMsg:  "Failed to fetch documents: server selection timeout",
			wantKind: ErrKindOperation,
		},
		{
			name:     "validation",
			err:      NewValidationError("database is required"),
			wantMsg:  "database is required",
			wantKind: ErrKindValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.Equal(t, tt.wantKind, KindOf(wrapped))
		})
	}
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, ErrKindOperation, KindOf(errors.New("boom")))
	assert.Equal(t, ConnectionReason(""), ReasonOf(errors.New("boom")))
	assert.Equal(t, ReasonAuthentication, ReasonOf(NewConnectionError(ReasonAuthentication, errors.New("x"))))
}

func TestEnvelope(t *testing.T) {
	ok := OK([]string{"a"})
	assert.True(t, ok.Success)
	assert.Equal(t, []string{"a"}, ok.Data)

	fail := Fail(NewNotFoundError("gone"))
	assert.False(t, fail.Success)
	assert.Equal(t, "gone", fail.Message)

	assert.Equal(t, MsgUnknownFailure, Fail(nil).Message)
}
