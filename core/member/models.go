package member

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abovethehill/churchadmin/core"
)

// Genders
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Membership statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPending  = "pending"
)

// addressPlaceholder fills in address parts the client left out.
const addressPlaceholder = "N/A"

type Address struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	ZipCode string `bson:"zipCode" json:"zipCode"`
}

type FamilyMember struct {
	Name         string `bson:"name" json:"name"`
	Relationship string `bson:"relationship" json:"relationship"`
}

// Member is a congregant profile. Nothing references it by enforced foreign
// key; cross-references elsewhere are soft ID lookups.
type Member struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName        string             `bson:"firstName" json:"firstName"`
	LastName         string             `bson:"lastName" json:"lastName"`
	Phone            string             `bson:"phone" json:"phone"`
	Address          Address            `bson:"address" json:"address"`
	DateOfBirth      *time.Time         `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Gender           string             `bson:"gender" json:"gender"`
	MembershipDate   time.Time          `bson:"membershipDate" json:"membershipDate"`
	MembershipStatus string             `bson:"membershipStatus" json:"membershipStatus"`
	Department       []string           `bson:"department" json:"department"`
	FamilyMembers    []FamilyMember     `bson:"familyMembers" json:"familyMembers"`
	Notes            string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"` // UTC
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"` // UTC
}

// NewMember is the payload accepted by the create endpoint.
type NewMember struct {
	FirstName        string         `json:"firstName" validate:"required"`
	LastName         string         `json:"lastName" validate:"required"`
	Phone            string         `json:"phone" validate:"required,phone"`
	Address          Address        `json:"address"`
	DateOfBirth      string         `json:"dateOfBirth"`
	Gender           string         `json:"gender" validate:"omitempty,oneof=male female other"`
	MembershipDate   string         `json:"membershipDate"`
	MembershipStatus string         `json:"membershipStatus" validate:"omitempty,oneof=active inactive pending"`
	Department       []string       `json:"department"`
	FamilyMembers    []FamilyMember `json:"familyMembers"`
	Notes            string         `json:"notes"`
}

func (nm *NewMember) Validate() error {
	nm.FirstName = core.CleanString(nm.FirstName)
	nm.LastName = core.CleanString(nm.LastName)
	nm.Phone = core.CleanString(nm.Phone)
	if err := core.Validate.Struct(nm); err != nil {
		return err
	}
	if nm.DateOfBirth != "" {
		if _, err := core.ParseDate(nm.DateOfBirth); err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "dateOfBirth", Error: "Please provide a valid date of birth"})
		}
	}
	if nm.MembershipDate != "" {
		if _, err := core.ParseDate(nm.MembershipDate); err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "membershipDate", Error: "invalid date"})
		}
	}
	return nil
}

// UpdateMember is the payload accepted by the update endpoint; zero-valued
// fields keep the stored value.
type UpdateMember struct {
	FirstName        string         `json:"firstName"`
	LastName         string         `json:"lastName"`
	Phone            string         `json:"phone" validate:"omitempty,phone"`
	Address          *Address       `json:"address"`
	DateOfBirth      string         `json:"dateOfBirth"`
	Gender           string         `json:"gender" validate:"omitempty,oneof=male female other"`
	MembershipStatus string         `json:"membershipStatus" validate:"omitempty,oneof=active inactive pending"`
	Department       []string       `json:"department"`
	FamilyMembers    []FamilyMember `json:"familyMembers"`
	Notes            string         `json:"notes"`
}

func (um *UpdateMember) Validate() error {
	um.FirstName = core.CleanString(um.FirstName)
	um.LastName = core.CleanString(um.LastName)
	um.Phone = core.CleanString(um.Phone)
	if err := core.Validate.Struct(um); err != nil {
		return err
	}
	if um.DateOfBirth != "" {
		if _, err := core.ParseDate(um.DateOfBirth); err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "dateOfBirth", Error: "Please provide a valid date of birth"})
		}
	}
	return nil
}
