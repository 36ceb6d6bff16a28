package finance

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abovethehill/churchadmin/core"
)

// Payment methods
const (
	MethodCash         = "cash"
	MethodCheck        = "check"
	MethodBankTransfer = "bank_transfer"
	MethodOnline       = "online"
)

// Transaction statuses
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const defaultRecordedBy = "admin"

// Transaction is one record per monetary event.
type Transaction struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OfferingAmount    float64            `bson:"offeringAmount" json:"offeringAmount"`
	TitheAmount       float64            `bson:"titheAmount" json:"titheAmount"`
	SeedAmount        float64            `bson:"seedAmount" json:"seedAmount"`
	SeedOfFaithAmount float64            `bson:"seedOfFaithAmount" json:"seedOfFaithAmount"`
	Date              time.Time          `bson:"date" json:"date"`
	PaymentMethod     string             `bson:"paymentMethod" json:"paymentMethod"`
	Status            string             `bson:"status" json:"status"`
	RecordedBy        string             `bson:"recordedBy" json:"recordedBy"`
	PastorEmail       string             `bson:"pastorEmail" json:"pastorEmail"`
	SentToPastor      bool               `bson:"sentToPastor" json:"sentToPastor"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"` // UTC
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"` // UTC
}

// Total is derived at read/report time; it is never stored.
func (t Transaction) Total() float64 {
	return t.OfferingAmount + t.TitheAmount + t.SeedAmount + t.SeedOfFaithAmount
}

// NewTransaction is the payload accepted by the create endpoint. Unlike
// attendance headcounts, negative amounts are rejected outright.
type NewTransaction struct {
	OfferingAmount    float64 `json:"offeringAmount" validate:"gte=0"`
	TitheAmount       float64 `json:"titheAmount" validate:"gte=0"`
	SeedAmount        float64 `json:"seedAmount" validate:"gte=0"`
	SeedOfFaithAmount float64 `json:"seedOfFaithAmount" validate:"gte=0"`
	Date              string  `json:"date"`
	PaymentMethod     string  `json:"paymentMethod" validate:"omitempty,oneof=cash check bank_transfer online"`
}

func (nt *NewTransaction) Validate() error {
	if err := core.Validate.Struct(nt); err != nil {
		return err
	}
	if nt.Date != "" {
		if _, err := core.ParseDate(nt.Date); err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "invalid date"})
		}
	}
	return nil
}

// UpdateTransaction is the payload accepted by the update endpoint.
type UpdateTransaction struct {
	OfferingAmount    float64 `json:"offeringAmount" validate:"gte=0"`
	TitheAmount       float64 `json:"titheAmount" validate:"gte=0"`
	SeedAmount        float64 `json:"seedAmount" validate:"gte=0"`
	SeedOfFaithAmount float64 `json:"seedOfFaithAmount" validate:"gte=0"`
	Date              string  `json:"date"`
	PaymentMethod     string  `json:"paymentMethod" validate:"omitempty,oneof=cash check bank_transfer online"`
	Status            string  `json:"status" validate:"omitempty,oneof=pending completed cancelled"`
}

func (ut *UpdateTransaction) Validate() error {
	if err := core.Validate.Struct(ut); err != nil {
		return err
	}
	if ut.Date != "" {
		if _, err := core.ParseDate(ut.Date); err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "invalid date"})
		}
	}
	return nil
}

type (
	// Stats is one aggregation bucket; the same shape serves the monthly and
	// today windows. TotalAmount is the derived sum of the four amounts.
	Stats struct {
		TotalOffering    float64 `json:"totalOffering"`
		TotalTithe       float64 `json:"totalTithe"`
		TotalSeed        float64 `json:"totalSeed"`
		TotalSeedOfFaith float64 `json:"totalSeedOfFaith"`
		TotalAmount      float64 `json:"totalAmount"`
	}

	// Summary is always fully populated; empty periods yield zero-filled
	// buckets, never nulls.
	Summary struct {
		Monthly Stats `json:"monthly"`
		Today   Stats `json:"today"`
	}
)
