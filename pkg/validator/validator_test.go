package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type command struct {
	Command string `json:"command" validate:"required,max=32"`
	Volume  int    `json:"volume" validate:"gte=0,lte=100"`
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	errs, ok := v.Validate(command{Command: "play", Volume: 50})
	assert.True(t, ok)
	assert.Empty(t, errs)

	errs, ok = v.Validate(command{Volume: 101})
	require.False(t, ok)
	require.Len(t, errs, 2)
	assert.Equal(t, "command", errs[0].Field)
	assert.Equal(t, "REQUIRED", errs[0].Code)
	assert.Equal(t, "command is required", errs[0].Message)
	assert.Equal(t, "volume", errs[1].Field)
	assert.Equal(t, "LTE", errs[1].Code)
}

func TestCheck(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Check(command{Command: "pause"}))

	err := v.Check(command{Volume: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command is required")
	assert.Contains(t, err.Error(), "volume must be greater than or equal to 0")
}
