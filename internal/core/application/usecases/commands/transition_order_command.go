package commands

import (
	"errors"

	"dentallab/internal/core/domain/model/actor"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand represents a request to move an order to a new
// lifecycle status. Carries the target status, the actor performing the
// change and an optional reason (mandatory when rejecting).
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(orderID, order.InProgress, technician, "")
//	if err != nil {
//	    return err
//	}
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, publisher, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Transition failed: %v", err)
//	}
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	targetStatus order.Status
	performedBy  actor.Actor
	reason       string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to change an order's status.
// Validates the order identifier, the target status value and the acting
// actor. Whether the target is reachable and whether the reason is required
// are decided by the order aggregate, not here.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	targetStatus order.Status,
	performedBy actor.Actor,
	reason string,
) (TransitionOrderCommand, error) {
	command := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setTargetStatus(targetStatus),
		command.setPerformedBy(performedBy),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	command.reason = reason

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransitionOrderCommandIsNotConstructed if validation fails.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TargetStatus returns the requested destination status.
func (c TransitionOrderCommand) TargetStatus() order.Status {
	return c.targetStatus
}

// PerformedBy returns the actor performing the transition.
func (c TransitionOrderCommand) PerformedBy() actor.Actor {
	return c.performedBy
}

// Reason returns the free-form explanation for the transition.
// May be empty for any target except "rejected".
func (c TransitionOrderCommand) Reason() string {
	return c.reason
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTargetStatus(targetStatus order.Status) error {
	if err := targetStatus.Validate(); err != nil {
		return err
	}

	c.targetStatus = targetStatus
	return nil
}

func (c *TransitionOrderCommand) setPerformedBy(performedBy actor.Actor) error {
	if err := performedBy.Validate(); err != nil {
		return err
	}

	c.performedBy = performedBy
	return nil
}
