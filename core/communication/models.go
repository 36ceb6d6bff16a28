package communication

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abovethehill/churchadmin/core"
)

// Communication types
const (
	TypeEmail        = "email"
	TypeSMS          = "sms"
	TypeWhatsApp     = "whatsapp"
	TypeAnnouncement = "announcement"
)

// Communication statuses
const (
	StatusDraft     = "draft"
	StatusScheduled = "scheduled"
	StatusSent      = "sent"
	StatusFailed    = "failed"
)

type Attachment struct {
	FileName string `bson:"fileName" json:"fileName"`
	FileURL  string `bson:"fileUrl" json:"fileUrl"`
	FileType string `bson:"fileType" json:"fileType"`
}

type DeliveryStatus struct {
	Recipient primitive.ObjectID `bson:"recipient" json:"recipient"`
	Status    string             `bson:"status" json:"status"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

type Metadata struct {
	DeliveryStatus []DeliveryStatus `bson:"deliveryStatus" json:"deliveryStatus"`
}

// Communication is a message broadcast record. The announcements endpoints
// always force Type to "announcement" regardless of client input.
type Communication struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Type            string               `bson:"type" json:"type"`
	Subject         string               `bson:"subject" json:"subject"`
	Content         string               `bson:"content" json:"content"`
	Recipients      []primitive.ObjectID `bson:"recipients" json:"recipients"`
	RecipientGroups []string             `bson:"recipientGroups" json:"recipientGroups"`
	Status          string               `bson:"status" json:"status"`
	ScheduledDate   *time.Time           `bson:"scheduledDate,omitempty" json:"scheduledDate,omitempty"`
	SentDate        *time.Time           `bson:"sentDate,omitempty" json:"sentDate,omitempty"`
	Attachments     []Attachment         `bson:"attachments" json:"attachments"`
	Sender          primitive.ObjectID   `bson:"sender" json:"sender"`
	Metadata        Metadata             `bson:"metadata" json:"metadata"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"` // UTC
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"` // UTC
}

// NewAnnouncement is the payload accepted by the create endpoint.
type NewAnnouncement struct {
	Subject         string       `json:"subject" validate:"required"`
	Content         string       `json:"content" validate:"required"`
	Recipients      []string     `json:"recipients"`
	RecipientGroups []string     `json:"recipientGroups"`
	ScheduledDate   string       `json:"scheduledDate"`
	Attachments     []Attachment `json:"attachments"`
}

func (na *NewAnnouncement) Validate() error {
	na.Subject = core.CleanString(na.Subject)
	na.Content = core.CleanString(na.Content)
	if err := core.Validate.Struct(na); err != nil {
		return err
	}
	for _, r := range na.Recipients {
		if _, err := primitive.ObjectIDFromHex(r); err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "recipients", Error: r + " is not a valid member reference"})
		}
	}
	if na.ScheduledDate != "" {
		if _, err := core.ParseDate(na.ScheduledDate); err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "scheduledDate", Error: "invalid date"})
		}
	}
	return nil
}

// UpdateAnnouncement is the payload accepted by the update endpoint;
// zero-valued fields keep the stored value.
type UpdateAnnouncement struct {
	Subject         string       `json:"subject"`
	Content         string       `json:"content"`
	Recipients      []string     `json:"recipients"`
	RecipientGroups []string     `json:"recipientGroups"`
	Status          string       `json:"status" validate:"omitempty,oneof=draft scheduled sent failed"`
	ScheduledDate   string       `json:"scheduledDate"`
	Attachments     []Attachment `json:"attachments"`
}

func (ua *UpdateAnnouncement) Validate() error {
	ua.Subject = core.CleanString(ua.Subject)
	ua.Content = core.CleanString(ua.Content)
	if err := core.Validate.Struct(ua); err != nil {
		return err
	}
	for _, r := range ua.Recipients {
		if _, err := primitive.ObjectIDFromHex(r); err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "recipients", Error: r + " is not a valid member reference"})
		}
	}
	if ua.ScheduledDate != "" {
		if _, err := core.ParseDate(ua.ScheduledDate); err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "scheduledDate", Error: "invalid date"})
		}
	}
	return nil
}

func recipientIDs(hexes []string) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		if id, err := primitive.ObjectIDFromHex(h); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
