package task

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsert_Validate(t *testing.T) {
	tests := []struct {
		name     string
		insert   Insert
		wantMsgs []string
	}{
		{
			name:   "valid",
			insert: Insert{Title: "Test", Description: "testing"},
		},
		{
			name:     "empty body",
			insert:   Insert{},
			wantMsgs: []string{MsgTitleBlank, MsgDescriptionBlank},
		},
		{
			name:     "blank title",
			insert:   Insert{Title: "   ", Description: "testing"},
			wantMsgs: []string{MsgTitleBlank},
		},
		{
			name:     "blank description",
			insert:   Insert{Title: "Test", Description: "\t\n"},
			wantMsgs: []string{MsgDescriptionBlank},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.insert.Validate()
			if tt.wantMsgs == nil {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
			assert.Equal(t, tt.wantMsgs, verr.Messages)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Messages: []string{MsgTitleBlank, MsgDescriptionBlank}}
	assert.Equal(t, "Validation errors: Title may not be blank Description may not be blank", err.Error())
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusConcluded.Valid())
	assert.False(t, Status("pending").Valid())
	assert.False(t, Status("").Valid())
}
