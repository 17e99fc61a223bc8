package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
)

func TestNewRunAggregationCommand(t *testing.T) {
	t.Run("should keep the trigger", func(t *testing.T) {
		cmd := commands.NewRunAggregationCommand("cron")

		assert.NoError(t, cmd.Validate())
		assert.Equal(t, "cron", cmd.Trigger())
	})

	t.Run("should default an empty trigger", func(t *testing.T) {
		assert.Equal(t, "manual", commands.NewRunAggregationCommand("").Trigger())
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var cmd commands.RunAggregationCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrRunAggregationCommandIsNotConstructed)
	})
}
