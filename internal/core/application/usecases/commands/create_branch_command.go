package commands

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/branch"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var (
	ErrCreateBranchCommandIsNotConstructed = errors.New(
		"CreateBranchCommand must be created via NewCreateBranchCommand constructor",
	)
	ErrNameIsRequired              = errors.New("name is required")
	ErrPromisedDeliveryTimeInvalid = errors.New("promised delivery time must be greater than 0")
)

// CreateBranchCommand registers a Main Branch, Regional Hub or Local Office.
//
// Example:
//
//	cmd, err := NewCreateBranchCommand(branch.RegionalHub, "North Hub", 24*time.Hour)
//	if err != nil {
//	    return fmt.Errorf("invalid branch data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
//	fmt.Printf("Created branch with ID: %s", cmd.BranchID())
type CreateBranchCommand struct {
	branchID kernel.UUID
	kind     branch.Kind
	name     string
	promised time.Duration

	guard guard.ConstructorGuard
}

// NewCreateBranchCommand generates the branch ID and validates the input.
func NewCreateBranchCommand(kind branch.Kind, name string, promised time.Duration) (CreateBranchCommand, error) {
	command := CreateBranchCommand{
		branchID: kernel.NewUUID(),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setKind(kind),
		command.setName(name),
		command.setPromised(promised),
	); err != nil {
		return CreateBranchCommand{}, err
	}

	return command, nil
}

func (c CreateBranchCommand) Validate() error {
	return c.guard.Validate(ErrCreateBranchCommandIsNotConstructed)
}

func (c CreateBranchCommand) BranchID() kernel.UUID { return c.branchID }

func (c CreateBranchCommand) Kind() branch.Kind { return c.kind }

func (c CreateBranchCommand) Name() string { return c.name }

func (c CreateBranchCommand) PromisedDeliveryTime() time.Duration { return c.promised }

func (c *CreateBranchCommand) setKind(kind branch.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	c.kind = kind
	return nil
}

func (c *CreateBranchCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *CreateBranchCommand) setPromised(promised time.Duration) error {
	if promised <= 0 {
		return ErrPromisedDeliveryTimeInvalid
	}
	c.promised = promised
	return nil
}
