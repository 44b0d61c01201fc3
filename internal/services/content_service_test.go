package services

import (
	"context"
	"testing"

	"github.com/altamedia/contentdesk/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type serviceFixture struct {
	service       *ContentService
	contents      *fakeContentRepo
	businesses    *fakeBusinessRepo
	notifications *fakeNotificationRepo
	dispatcher    *recordingDispatcher
}

func newServiceFixture(businesses ...*models.Business) *serviceFixture {
	contentRepo := newFakeContentRepo()
	businessRepo := newFakeBusinessRepo(businesses...)
	userRepo := newFakeUserRepo(
		&models.User{ID: 10, Username: "wanda", Roles: []string{models.RoleWriter}},
		&models.User{ID: 12, Username: "dana", Roles: []string{models.RoleDesigner}},
		&models.User{ID: 13, Username: "ed", Roles: []string{models.RoleEditor}},
	)
	notificationRepo := &fakeNotificationRepo{}
	dispatcher := &recordingDispatcher{ready: true}
	logger := zap.NewNop()

	return &serviceFixture{
		service: NewContentService(
			contentRepo, businessRepo, userRepo, notificationRepo,
			dispatcher, NewTagSyncer(businessRepo, logger), logger,
		),
		contents:      contentRepo,
		businesses:    businessRepo,
		notifications: notificationRepo,
		dispatcher:    dispatcher,
	}
}

func testBusiness() *models.Business {
	return &models.Business{
		ID:                primitive.NewObjectID(),
		BusinessName:      "Sunset Cafe",
		AssignedWriters:   []string{"10", "11"},
		AssignedDesigners: []string{"12"},
		AssignedEditors:   []string{"13"},
		Status:            true,
	}
}

var writerActor = models.AuthUser{ID: "10", Username: "wanda", Roles: []string{models.RoleWriter}}

func TestCreateContent(t *testing.T) {
	t.Run("snapshots the first roster entries", func(t *testing.T) {
		business := testBusiness()
		f := newServiceFixture(business)

		item, err := f.service.CreateContent(context.Background(), writerActor, &models.CreateContentRequest{
			Business:    business.ID.Hex(),
			Date:        "09/01/2026",
			ContentType: models.ContentTypeBoth,
		})
		require.NoError(t, err)

		assert.Equal(t, "10", item.AddedBy)
		assert.Equal(t, "10", item.AssignedWriter)
		assert.Equal(t, "12", item.AssignedDesigner)
		assert.Equal(t, "13", item.AssignedEditor)
		assert.False(t, item.ID.IsZero())
	})

	t.Run("unknown business", func(t *testing.T) {
		f := newServiceFixture(testBusiness())

		_, err := f.service.CreateContent(context.Background(), writerActor, &models.CreateContentRequest{
			Business:    primitive.NewObjectID().Hex(),
			Date:        "09/01/2026",
			ContentType: models.ContentTypePoster,
		})
		assert.ErrorIs(t, err, ErrBusinessNotFound)
		assert.Empty(t, f.dispatcher.emissions)
	})

	t.Run("poster create notifies exactly the designer", func(t *testing.T) {
		business := testBusiness()
		f := newServiceFixture(business)

		_, err := f.service.CreateContent(context.Background(), writerActor, &models.CreateContentRequest{
			Business:    business.ID.Hex(),
			Date:        "09/01/2026",
			ContentType: models.ContentTypePoster,
		})
		require.NoError(t, err)

		require.Len(t, f.dispatcher.emissions, 1)
		emission := f.dispatcher.emissions[0]
		assert.Equal(t, "12", emission.UserID)
		assert.Equal(t, models.EventNewContent, emission.Event)

		payload := emission.Data.(ContentEventPayload)
		assert.Equal(t, models.DeliveryPoster, payload.Type)
		assert.Equal(t, "Sunset Cafe", payload.Business)
		assert.Equal(t, "wanda", payload.AddedBy)
	})

	t.Run("snapshot survives later roster changes", func(t *testing.T) {
		business := testBusiness()
		f := newServiceFixture(business)

		item, err := f.service.CreateContent(context.Background(), writerActor, &models.CreateContentRequest{
			Business:    business.ID.Hex(),
			Date:        "09/01/2026",
			ContentType: models.ContentTypePoster,
		})
		require.NoError(t, err)

		// Reorder rosters after the fact
		business.AssignedDesigners = []string{"77", "12"}

		reloaded, err := f.service.GetContent(context.Background(), item.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, "12", reloaded.AssignedDesigner)
	})

	t.Run("empty rosters produce an unassigned item", func(t *testing.T) {
		business := &models.Business{ID: primitive.NewObjectID(), BusinessName: "Fresh", Status: true}
		f := newServiceFixture(business)

		admin := models.AuthUser{ID: "1", Username: "root", Roles: []string{models.RoleSuperAdmin}}
		item, err := f.service.CreateContent(context.Background(), admin, &models.CreateContentRequest{
			Business:    business.ID.Hex(),
			Date:        "09/01/2026",
			ContentType: models.ContentTypeBoth,
		})
		require.NoError(t, err)

		assert.Empty(t, item.AssignedWriter)
		assert.Empty(t, f.dispatcher.emissions)
	})

	t.Run("dispatcher not ready still persists the feed row", func(t *testing.T) {
		business := testBusiness()
		f := newServiceFixture(business)
		f.dispatcher.ready = false

		_, err := f.service.CreateContent(context.Background(), writerActor, &models.CreateContentRequest{
			Business:    business.ID.Hex(),
			Date:        "09/01/2026",
			ContentType: models.ContentTypePoster,
		})
		require.NoError(t, err)

		assert.Empty(t, f.dispatcher.emissions)
		require.Len(t, f.notifications.created, 1)
		assert.Equal(t, "12", f.notifications.created[0].RecipientID)
	})
}

func TestUpdateContent(t *testing.T) {
	createItem := func(t *testing.T, f *serviceFixture, business *models.Business, contentType string) *models.ContentItem {
		t.Helper()
		item, err := f.service.CreateContent(context.Background(), writerActor, &models.CreateContentRequest{
			Business:    business.ID.Hex(),
			Date:        "09/01/2026",
			ContentType: contentType,
		})
		require.NoError(t, err)
		f.dispatcher.emissions = nil
		f.notifications.created = nil
		return item
	}

	t.Run("roster member updates and collaborators are notified", func(t *testing.T) {
		business := testBusiness()
		f := newServiceFixture(business)
		item := createItem(t, f, business, models.ContentTypeBoth)

		material := "final poster draft"
		updated, err := f.service.UpdateContent(context.Background(), writerActor, item.ID.Hex(), &models.UpdateContentRequest{
			PosterMaterial: &material,
		})
		require.NoError(t, err)
		assert.Equal(t, material, updated.PosterMaterial)

		// Designer, editor, and nothing for the actor who is both creator
		// and assigned writer.
		var recipients []string
		for _, e := range f.dispatcher.emissions {
			assert.Equal(t, models.EventUpdateContent, e.Event)
			recipients = append(recipients, e.UserID)
		}
		assert.Equal(t, []string{"12", "13"}, recipients)
	})

	t.Run("non-member is rejected without side effects", func(t *testing.T) {
		business := testBusiness()
		f := newServiceFixture(business)
		item := createItem(t, f, business, models.ContentTypePoster)

		outsider := models.AuthUser{ID: "42", Username: "mallory", Roles: []string{models.RoleWriter}}
		material := "tampered"
		_, err := f.service.UpdateContent(context.Background(), outsider, item.ID.Hex(), &models.UpdateContentRequest{
			PostMaterial: &material,
		})
		assert.ErrorIs(t, err, ErrNotAuthorized)

		reloaded, err := f.service.GetContent(context.Background(), item.ID.Hex())
		require.NoError(t, err)
		assert.Empty(t, reloaded.PostMaterial)
		assert.Empty(t, f.dispatcher.emissions)
		assert.Empty(t, f.notifications.created)
	})

	t.Run("admin bypasses the roster check", func(t *testing.T) {
		business := testBusiness()
		f := newServiceFixture(business)
		item := createItem(t, f, business, models.ContentTypePoster)

		admin := models.AuthUser{ID: "1", Username: "root", Roles: []string{models.RoleAdmin}}
		date := "09/02/2026"
		updated, err := f.service.UpdateContent(context.Background(), admin, item.ID.Hex(), &models.UpdateContentRequest{
			Date: &date,
		})
		require.NoError(t, err)
		assert.Equal(t, date, updated.Date)
	})

	t.Run("tag patch syncs hashtags into the business", func(t *testing.T) {
		business := testBusiness()
		f := newServiceFixture(business)
		item := createItem(t, f, business, models.ContentTypePoster)

		tags := "#grandopening plain"
		_, err := f.service.UpdateContent(context.Background(), writerActor, item.ID.Hex(), &models.UpdateContentRequest{
			Tags: &tags,
		})
		require.NoError(t, err)

		assert.Equal(t, "#grandopening", f.businesses.tagUpdates[business.ID.Hex()])
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newServiceFixture(testBusiness())
		date := "09/02/2026"
		_, err := f.service.UpdateContent(context.Background(), writerActor, primitive.NewObjectID().Hex(), &models.UpdateContentRequest{
			Date: &date,
		})
		assert.ErrorIs(t, err, ErrContentNotFound)
	})
}

func TestDeleteContent(t *testing.T) {
	t.Run("delete notifies collaborators without material fields", func(t *testing.T) {
		business := testBusiness()
		f := newServiceFixture(business)

		item, err := f.service.CreateContent(context.Background(), writerActor, &models.CreateContentRequest{
			Business:       business.ID.Hex(),
			Date:           "09/01/2026",
			ContentType:    models.ContentTypeBoth,
			PosterMaterial: "draft",
		})
		require.NoError(t, err)
		f.dispatcher.emissions = nil

		admin := models.AuthUser{ID: "1", Username: "root", Roles: []string{models.RoleAdmin}}
		require.NoError(t, f.service.DeleteContent(context.Background(), admin, item.ID.Hex()))

		var recipients []string
		for _, e := range f.dispatcher.emissions {
			assert.Equal(t, models.EventDeleteContent, e.Event)
			payload := e.Data.(ContentEventPayload)
			assert.Empty(t, payload.PosterMaterial)
			assert.Equal(t, "root", payload.DeletedBy)
			recipients = append(recipients, e.UserID)
		}
		assert.Equal(t, []string{"12", "13", "10"}, recipients)

		_, err = f.service.GetContent(context.Background(), item.ID.Hex())
		assert.ErrorIs(t, err, ErrContentNotFound)
	})

	t.Run("non-member cannot delete", func(t *testing.T) {
		business := testBusiness()
		f := newServiceFixture(business)

		item, err := f.service.CreateContent(context.Background(), writerActor, &models.CreateContentRequest{
			Business:    business.ID.Hex(),
			Date:        "09/01/2026",
			ContentType: models.ContentTypePoster,
		})
		require.NoError(t, err)

		outsider := models.AuthUser{ID: "42", Username: "mallory", Roles: []string{models.RoleEditor}}
		err = f.service.DeleteContent(context.Background(), outsider, item.ID.Hex())
		assert.ErrorIs(t, err, ErrNotAuthorized)

		_, err = f.service.GetContent(context.Background(), item.ID.Hex())
		assert.NoError(t, err)
	})

	t.Run("deleting an absent item is not found", func(t *testing.T) {
		f := newServiceFixture(testBusiness())
		err := f.service.DeleteContent(context.Background(), writerActor, primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, ErrContentNotFound)
	})
}

func TestListContents(t *testing.T) {
	business := testBusiness()
	f := newServiceFixture(business)

	for _, contentType := range []string{models.ContentTypePoster, models.ContentTypeVideo, models.ContentTypeBoth} {
		_, err := f.service.CreateContent(context.Background(), writerActor, &models.CreateContentRequest{
			Business:    business.ID.Hex(),
			Date:        "09/01/2026",
			ContentType: contentType,
		})
		require.NoError(t, err)
	}

	t.Run("writer sees all items", func(t *testing.T) {
		page, err := f.service.ListContents(context.Background(), writerActor, models.ContentFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
	})

	t.Run("designer sees only assigned poster and both items", func(t *testing.T) {
		designer := models.AuthUser{ID: "12", Username: "dana", Roles: []string{models.RoleDesigner}}
		page, err := f.service.ListContents(context.Background(), designer, models.ContentFilter{})
		require.NoError(t, err)
		require.Equal(t, int64(2), page.Total)
		for _, item := range page.Contents {
			assert.Equal(t, "12", item.AssignedDesigner)
			assert.Contains(t, []string{models.ContentTypePoster, models.ContentTypeBoth}, item.ContentType)
		}
	})

	t.Run("unassigned designer sees nothing", func(t *testing.T) {
		stranger := models.AuthUser{ID: "55", Username: "drew", Roles: []string{models.RoleDesigner}}
		page, err := f.service.ListContents(context.Background(), stranger, models.ContentFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), page.Total)
	})

	t.Run("editor sees only assigned video and both items", func(t *testing.T) {
		editor := models.AuthUser{ID: "13", Username: "ed", Roles: []string{models.RoleEditor}}
		page, err := f.service.ListContents(context.Background(), editor, models.ContentFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
	})
}
