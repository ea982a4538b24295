package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wizzomafizzo/datasink/internal/prompt"
)

func TestNewInteractiveCommand(t *testing.T) {
	t.Parallel()

	cmd := newInteractiveCommand()

	assert.Equal(t, "interactive", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	require.NotNil(t, cmd.RunE)
}

func TestOperationChoicesCoverBothOperations(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "copy", operationChoices["c"])
	assert.Equal(t, "copy", operationChoices["copy"])
	assert.Equal(t, "move", operationChoices["m"])
	assert.Equal(t, "move", operationChoices["move"])
}

func TestExitInteractive(t *testing.T) {
	t.Parallel()

	assert.NoError(t, exitInteractive(nil))
	assert.NoError(t, exitInteractive(prompt.ErrCancelled))

	broken := errors.New("terminal broke")
	assert.ErrorIs(t, exitInteractive(broken), broken)
}
