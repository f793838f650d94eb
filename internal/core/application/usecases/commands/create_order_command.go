package commands

import (
	"errors"
	"strings"

	"dentallab/internal/core/domain/model/actor"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCategoryIsRequired = errors.New("category is required")
)

// CreateOrderCommand represents a request to register a new lab order.
// Encapsulates the ordering clinic, the prosthetic category, the number of
// teeth involved and the actor placing the order.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, clinicID, "crown", 2, clinicActor)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s registered and pending", orderID)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	clinicID   kernel.UUID
	category   string
	toothCount int
	createdBy  actor.Actor

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new lab order.
// Validates that both identifiers are valid, the category is not empty and
// the creating actor was properly constructed. The tooth count range is
// enforced by the order aggregate itself.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	clinicID kernel.UUID,
	category string,
	toothCount int,
	createdBy actor.Actor,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setClinicID(clinicID),
		orderCommand.setCategory(category),
		orderCommand.setCreatedBy(createdBy),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	orderCommand.toothCount = toothCount

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClinicID returns the identifier of the ordering clinic.
func (c CreateOrderCommand) ClinicID() kernel.UUID {
	return c.clinicID
}

// Category returns the prosthetic category, e.g. "crown" or "bridge".
func (c CreateOrderCommand) Category() string {
	return c.category
}

// ToothCount returns the number of teeth the work covers.
func (c CreateOrderCommand) ToothCount() int {
	return c.toothCount
}

// CreatedBy returns the actor placing the order.
func (c CreateOrderCommand) CreatedBy() actor.Actor {
	return c.createdBy
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setClinicID(clinicID kernel.UUID) error {
	if err := clinicID.Validate(); err != nil {
		return err
	}

	c.clinicID = clinicID
	return nil
}

func (c *CreateOrderCommand) setCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return ErrCategoryIsRequired
	}

	c.category = category
	return nil
}

func (c *CreateOrderCommand) setCreatedBy(createdBy actor.Actor) error {
	if err := createdBy.Validate(); err != nil {
		return err
	}

	c.createdBy = createdBy
	return nil
}
