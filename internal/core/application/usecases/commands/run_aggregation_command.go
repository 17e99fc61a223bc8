package commands

import (
	"errors"

	"logistics/internal/pkg/guard"
)

var ErrRunAggregationCommandIsNotConstructed = errors.New(
	"RunAggregationCommand must be created via NewRunAggregationCommand constructor",
)

// RunAggregationCommand starts one performance aggregation run. Trigger names
// who started it ("cron", "http") and only ends up in logs.
type RunAggregationCommand struct {
	trigger string

	guard guard.ConstructorGuard
}

func NewRunAggregationCommand(trigger string) RunAggregationCommand {
	if trigger == "" {
		trigger = "manual"
	}
	return RunAggregationCommand{
		trigger: trigger,
		guard:   guard.NewConstructorGuard(),
	}
}

func (c RunAggregationCommand) Validate() error {
	return c.guard.Validate(ErrRunAggregationCommandIsNotConstructed)
}

func (c RunAggregationCommand) Trigger() string { return c.trigger }
