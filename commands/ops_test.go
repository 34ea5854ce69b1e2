package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommand(t *testing.T) {
	tests := []struct {
		input string
		op    Operation
		args  []string
	}{
		{"start", START, []string{}},
		{"STOP", STOP, []string{}},
		{"mine", MINE, []string{}},
		{"show 3", SHOW, []string{"3"}},
		{"balance", BALANCE, []string{}},
		{"balance 02ab", BALANCE, []string{"02ab"}},
		{"height", HEIGHT, []string{}},
		{"  validate  ", VALIDATE, []string{}},
		{"transfer 02ab 10", TRANSFER, []string{"02ab", "10"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := CreateCommand(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.op, c.Op)
			assert.Equal(t, tt.args, c.Args)
			assert.False(t, c.IsDefault())
		})
	}
}

func TestCreateCommandRejects(t *testing.T) {
	_, err := CreateCommand("   ")
	assert.ErrorIs(t, err, ErrEmptyCommand)

	for _, input := range []string{
		"dance",
		"start now",
		"show",
		"show -1",
		"show deep",
		"balance a b",
		"transfer 02ab",
		"transfer 02ab 0",
		"transfer 02ab 1.5",
	} {
		_, err := CreateCommand(input)
		assert.ErrorIs(t, err, ErrInvalidCommand, input)
	}
}

func TestCommandArguments(t *testing.T) {
	c, err := CreateCommand("show 4")
	require.NoError(t, err)
	assert.Equal(t, 4, c.Depth())

	c, err = CreateCommand("transfer 02ab 25")
	require.NoError(t, err)
	assert.Equal(t, int64(25), c.Amount())
}

func TestNewDefaultCommand(t *testing.T) {
	assert.True(t, NewDefaultCommand().IsDefault())
	assert.False(t, NewDefaultCommand().IsValid())
}
