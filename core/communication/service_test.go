package communication_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abovethehill/churchadmin/core"
	"github.com/abovethehill/churchadmin/core/communication"
	inmemdb "github.com/abovethehill/churchadmin/storage/inmem"
)

func setup(t *testing.T) *communication.Service {
	t.Helper()

	db, err := inmemdb.Open()
	require.NoError(t, err)
	return communication.NewService(inmemdb.NewCommunicationRepository(db), core.Conf)
}

func Test_Service_CreateAnnouncement(t *testing.T) {
	svc := setup(t)

	memberID := primitive.NewObjectID()
	comm, err := svc.CreateAnnouncement(context.Background(), communication.NewAnnouncement{
		Subject:    "Harvest Sunday",
		Content:    "Join us this Sunday for the harvest service.",
		Recipients: []string{memberID.Hex()},
	})
	require.NoError(t, err)

	assert.Equal(t, communication.TypeAnnouncement, comm.Type)
	assert.Equal(t, communication.StatusSent, comm.Status)
	require.NotNil(t, comm.SentDate)
	assert.Equal(t, core.Conf.Admin.ID, comm.Sender.Hex())
	assert.Equal(t, []primitive.ObjectID{memberID}, comm.Recipients)
	assert.NotNil(t, comm.RecipientGroups)
	assert.NotNil(t, comm.Attachments)
}

func Test_Service_CreateAnnouncement_validation(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	_, err := svc.CreateAnnouncement(ctx, communication.NewAnnouncement{Subject: "No content"})
	require.Error(t, err)

	_, err = svc.CreateAnnouncement(ctx, communication.NewAnnouncement{
		Subject:    "Harvest Sunday",
		Content:    "Join us.",
		Recipients: []string{"not-an-id"},
	})
	require.Error(t, err)
	var vErr *core.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "recipients", vErr.Fields[0].Field)
	assert.Equal(t, "not-an-id is not a valid member reference", vErr.Fields[0].Error)
}

func Test_Service_UpdateAnnouncement_keepsType(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	comm, err := svc.CreateAnnouncement(ctx, communication.NewAnnouncement{
		Subject: "Harvest Sunday",
		Content: "Join us.",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateAnnouncement(ctx, comm.ID, communication.UpdateAnnouncement{
		Subject: "Harvest Sunday - Updated",
		Status:  communication.StatusDraft,
	})
	require.NoError(t, err)
	assert.Equal(t, "Harvest Sunday - Updated", updated.Subject)
	assert.Equal(t, "Join us.", updated.Content) // kept when absent
	assert.Equal(t, communication.StatusDraft, updated.Status)
	assert.Equal(t, communication.TypeAnnouncement, updated.Type)
}

func Test_Service_QueryAnnouncements(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	_, err := svc.CreateAnnouncement(ctx, communication.NewAnnouncement{Subject: "One", Content: "First."})
	require.NoError(t, err)
	_, err = svc.CreateAnnouncement(ctx, communication.NewAnnouncement{Subject: "Two", Content: "Second."})
	require.NoError(t, err)

	comms, err := svc.QueryAnnouncements(ctx)
	require.NoError(t, err)
	assert.Len(t, comms, 2)
}

func Test_Service_DeleteAnnouncement(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	comm, err := svc.CreateAnnouncement(ctx, communication.NewAnnouncement{Subject: "One", Content: "First."})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAnnouncement(ctx, comm.ID))
	assert.Equal(t, communication.ErrNotFound, errors.Cause(svc.DeleteAnnouncement(ctx, comm.ID)))
}
