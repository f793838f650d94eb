// Package actor provides the value object identifying who requests a
// lifecycle transition. Every history entry records the acting party, so the
// audit trail can answer "who moved this order" for any point in time.
// Authorization decisions are not made here; the surrounding API layer owns
// them.
package actor

import (
	"fmt"

	"dentallab/internal/pkg/errs"
)

// Role classifies the party acting on an order. Roles are descriptive
// metadata for the audit trail, not permissions.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleClinic is the submitting doctor's clinic.
	RoleClinic

	// RoleTechnician is a lab technician producing the prosthetic work.
	RoleTechnician

	// RoleQA is a quality-assurance reviewer.
	RoleQA

	// RoleDepartmentHead is a lab department head.
	RoleDepartmentHead

	// RoleAdmin is a lab administrator.
	RoleAdmin

	// RoleDispatcher handles delivery of finished work back to the clinic.
	RoleDispatcher
)

// getRoleNames returns a map of Role values to their canonical names.
// All roles are included for string conversion.
func getRoleNames() map[Role]string {
	return map[Role]string{
		RoleUnknown:        "unknown",
		RoleClinic:         "clinic",
		RoleTechnician:     "technician",
		RoleQA:             "qa",
		RoleDepartmentHead: "department_head",
		RoleAdmin:          "admin",
		RoleDispatcher:     "dispatcher",
	}
}

// getValidRoleNames returns a map of only valid Role values.
// RoleUnknown is excluded to support validation.
func getValidRoleNames() map[Role]string {
	return map[Role]string{
		RoleClinic:         "clinic",
		RoleTechnician:     "technician",
		RoleQA:             "qa",
		RoleDepartmentHead: "department_head",
		RoleAdmin:          "admin",
		RoleDispatcher:     "dispatcher",
	}
}

// RoleFromName parses a canonical role name back into a Role.
// Returns an error for names outside the canonical set.
func RoleFromName(name string) (Role, error) {
	for role, roleName := range getValidRoleNames() {
		if roleName == name {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role",
		fmt.Errorf("%q is not a valid role name", name),
	)
}

// Validate checks if the Role value is valid.
// RoleUnknown (0) and any other values outside the canonical set are invalid.
func (r Role) Validate() error {
	if _, ok := getValidRoleNames()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%d is not a valid role", r),
		)
	}
	return nil
}

// String returns the canonical name of the role.
// Returns "unknown" for invalid role values.
// This method implements the fmt.Stringer interface.
func (r Role) String() string {
	if name, ok := getRoleNames()[r]; ok {
		return name
	}
	return "unknown"
}

// Actor identifies the party performing a lifecycle transition.
// It is an immutable value object; construct it via NewActor.
type Actor struct {
	id   string
	role Role

	isConstructed bool
}

// NewActor creates an Actor with validation.
// The id must be non-empty and the role must be a valid Role value.
func NewActor(id string, role Role) (Actor, error) {
	if id == "" {
		return Actor{}, errs.NewValueIsRequiredError("actor id")
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:            id,
		role:          role,
		isConstructed: true,
	}, nil
}

// RestoreActor reconstructs an Actor from persisted values.
// Used by the history repository when reading audit records back.
func RestoreActor(id string, role Role) (Actor, error) {
	return NewActor(id, role)
}

// ID returns the actor's identifier.
func (a Actor) ID() string {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// String returns "id (role)" for logs and error messages.
func (a Actor) String() string {
	return fmt.Sprintf("%s (%s)", a.id, a.role)
}

// Validate ensures the Actor was created via NewActor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return errs.NewValueIsRequiredError("actor must be created via NewActor")
	}
	return nil
}

// IsEqual compares two actors by identifier and role.
func (a Actor) IsEqual(other Actor) bool {
	return a.id == other.id && a.role == other.role
}
