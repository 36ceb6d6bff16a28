package communication

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abovethehill/churchadmin/core"
)

var ErrNotFound = core.NotFoundError("Announcement not found")

type (
	Repository interface {
		QueryCommunications(ctx context.Context, commType string) ([]Communication, error)
		GetCommunicationByID(ctx context.Context, id primitive.ObjectID) (Communication, error)
		CreateCommunication(ctx context.Context, comm Communication) (Communication, error)
		UpdateCommunication(ctx context.Context, comm Communication) (Communication, error)
		DeleteCommunication(ctx context.Context, id primitive.ObjectID) error
	}

	Service struct {
		repo Repository
		conf *core.Config
	}
)

func NewService(repo Repository, conf *core.Config) *Service {
	return &Service{repo: repo, conf: conf}
}

func (svc *Service) QueryAnnouncements(ctx context.Context) ([]Communication, error) {
	return svc.repo.QueryCommunications(ctx, TypeAnnouncement)
}

// CreateAnnouncement persists an announcement broadcast record. The type is
// fixed to "announcement" and the record is stamped as sent immediately;
// announcements are displayed on the dashboard, not dispatched anywhere.
func (svc *Service) CreateAnnouncement(ctx context.Context, na NewAnnouncement) (Communication, error) {
	if err := na.Validate(); err != nil {
		return Communication{}, err
	}
	sender, err := primitive.ObjectIDFromHex(svc.conf.Admin.ID)
	if err != nil {
		return Communication{}, errors.Wrap(err, "parsing admin id")
	}

	now := time.Now().UTC()
	comm := Communication{
		Type:            TypeAnnouncement,
		Subject:         na.Subject,
		Content:         na.Content,
		Recipients:      recipientIDs(na.Recipients),
		RecipientGroups: na.RecipientGroups,
		Status:          StatusSent,
		SentDate:        &now,
		Attachments:     na.Attachments,
		Sender:          sender,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if na.ScheduledDate != "" {
		sched, _ := core.ParseDate(na.ScheduledDate)
		comm.ScheduledDate = &sched
	}
	if comm.RecipientGroups == nil {
		comm.RecipientGroups = []string{}
	}
	if comm.Attachments == nil {
		comm.Attachments = []Attachment{}
	}
	return svc.repo.CreateCommunication(ctx, comm)
}

func (svc *Service) UpdateAnnouncement(ctx context.Context, id primitive.ObjectID, ua UpdateAnnouncement) (Communication, error) {
	if err := ua.Validate(); err != nil {
		return Communication{}, err
	}
	comm, err := svc.repo.GetCommunicationByID(ctx, id)
	if err != nil {
		return Communication{}, err
	}

	if ua.Subject != "" {
		comm.Subject = ua.Subject
	}
	if ua.Content != "" {
		comm.Content = ua.Content
	}
	if ua.Recipients != nil {
		comm.Recipients = recipientIDs(ua.Recipients)
	}
	if ua.RecipientGroups != nil {
		comm.RecipientGroups = ua.RecipientGroups
	}
	if ua.Status != "" {
		comm.Status = ua.Status
	}
	if ua.ScheduledDate != "" {
		sched, _ := core.ParseDate(ua.ScheduledDate)
		comm.ScheduledDate = &sched
	}
	if ua.Attachments != nil {
		comm.Attachments = ua.Attachments
	}
	comm.Type = TypeAnnouncement // never trust client input here
	comm.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateCommunication(ctx, comm)
}

func (svc *Service) DeleteAnnouncement(ctx context.Context, id primitive.ObjectID) error {
	return svc.repo.DeleteCommunication(ctx, id)
}
