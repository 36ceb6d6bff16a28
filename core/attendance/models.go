package attendance

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abovethehill/churchadmin/core"
)

// Attendance is one record per service event.
type Attendance struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ServiceDate     time.Time          `bson:"serviceDate" json:"serviceDate"`
	ServiceType     string             `bson:"serviceType" json:"serviceType"`
	NoOfMen         int                `bson:"noOfMen" json:"noOfMen"`
	NoOfWomen       int                `bson:"noOfWomen" json:"noOfWomen"`
	NoOfBoys        int                `bson:"noOfBoys" json:"noOfBoys"`
	NoOfGirls       int                `bson:"noOfGirls" json:"noOfGirls"`
	NoOfChildren    int                `bson:"noOfChildren" json:"noOfChildren"`
	NoOfFirstTimers int                `bson:"noOfFirstTimers" json:"noOfFirstTimers"`
	TotalAttendance int                `bson:"totalAttendance" json:"totalAttendance"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedBy       primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	PastorEmail     string             `bson:"pastorEmail" json:"pastorEmail"`
	SentToPastor    bool               `bson:"sentToPastor" json:"sentToPastor"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"` // UTC
}

// ComputeTotal recomputes TotalAttendance from the six headcounts.
// A client-supplied total is never trusted.
func (a *Attendance) ComputeTotal() {
	a.TotalAttendance = a.NoOfMen + a.NoOfWomen + a.NoOfBoys + a.NoOfGirls +
		a.NoOfChildren + a.NoOfFirstTimers
}

// NewAttendance is the payload accepted by the create endpoint. Headcounts
// decode through core.FlexInt: numeric strings are coerced, garbage becomes 0
// and negatives are clamped to 0.
type NewAttendance struct {
	ServiceDate     string       `json:"serviceDate" validate:"required"`
	ServiceType     string       `json:"serviceType" validate:"required"`
	NoOfMen         core.FlexInt `json:"noOfMen"`
	NoOfWomen       core.FlexInt `json:"noOfWomen"`
	NoOfBoys        core.FlexInt `json:"noOfBoys"`
	NoOfGirls       core.FlexInt `json:"noOfGirls"`
	NoOfChildren    core.FlexInt `json:"noOfChildren"`
	NoOfFirstTimers core.FlexInt `json:"noOfFirstTimers"`
	Notes           string       `json:"notes"`
}

func (na *NewAttendance) Validate() error {
	na.ServiceType = core.CleanString(na.ServiceType)
	na.Notes = core.CleanString(na.Notes)
	if err := core.Validate.Struct(na); err != nil {
		return err
	}
	if _, err := core.ParseDate(na.ServiceDate); err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "serviceDate", Error: "invalid date"})
	}
	return nil
}

// UpdateAttendance is the payload accepted by the update endpoint.
// Missing headcounts reset to 0, matching the create coercion; ServiceDate
// and ServiceType are kept when absent.
type UpdateAttendance struct {
	ServiceDate     string       `json:"serviceDate"`
	ServiceType     string       `json:"serviceType"`
	NoOfMen         core.FlexInt `json:"noOfMen"`
	NoOfWomen       core.FlexInt `json:"noOfWomen"`
	NoOfBoys        core.FlexInt `json:"noOfBoys"`
	NoOfGirls       core.FlexInt `json:"noOfGirls"`
	NoOfChildren    core.FlexInt `json:"noOfChildren"`
	NoOfFirstTimers core.FlexInt `json:"noOfFirstTimers"`
	Notes           string       `json:"notes"`
}

func (ua *UpdateAttendance) Validate() error {
	ua.ServiceType = core.CleanString(ua.ServiceType)
	ua.Notes = core.CleanString(ua.Notes)
	if err := core.Validate.Struct(ua); err != nil {
		return err
	}
	if ua.ServiceDate != "" {
		if _, err := core.ParseDate(ua.ServiceDate); err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "serviceDate", Error: "invalid date"})
		}
	}
	return nil
}

type (
	// MonthlyStats is the single month-to-date aggregation bucket.
	MonthlyStats struct {
		TotalAttendance  int     `json:"totalAttendance"`
		TotalFirstTimers int     `json:"totalFirstTimers"`
		AvgAttendance    float64 `json:"avgAttendance"`
		Services         int     `json:"services"`
	}

	// DailyStats is the current calendar day's aggregation bucket.
	DailyStats struct {
		TotalAttendance  int `json:"totalAttendance"`
		TotalFirstTimers int `json:"totalFirstTimers"`
	}

	// Summary is always fully populated; empty periods yield zero-filled
	// buckets, never nulls.
	Summary struct {
		Monthly MonthlyStats `json:"monthly"`
		Today   DailyStats   `json:"today"`
	}

	// Stats is one raw aggregation bucket over a date window.
	Stats struct {
		TotalAttendance  int
		TotalFirstTimers int
		AvgAttendance    float64
		Services         int
	}
)
