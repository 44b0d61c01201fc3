package services

import (
	"context"
	"fmt"

	"github.com/altamedia/contentdesk/backend/internal/models"
	"github.com/altamedia/contentdesk/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository doubles. They implement just enough of the real
// Mongo/Postgres behavior for the service layer: ErrNotFound on misses,
// patch application on update, call recording where tests assert on it.

type fakeBusinessRepo struct {
	businesses map[string]*models.Business
	tagUpdates map[string]string // business id -> last synced tag string
}

func newFakeBusinessRepo(businesses ...*models.Business) *fakeBusinessRepo {
	repo := &fakeBusinessRepo{
		businesses: make(map[string]*models.Business),
		tagUpdates: make(map[string]string),
	}
	for _, b := range businesses {
		repo.businesses[b.ID.Hex()] = b
	}
	return repo
}

func (r *fakeBusinessRepo) CreateBusiness(_ context.Context, business *models.Business) error {
	if business.ID.IsZero() {
		business.ID = primitive.NewObjectID()
	}
	r.businesses[business.ID.Hex()] = business
	return nil
}

func (r *fakeBusinessRepo) GetBusinessByID(_ context.Context, id string) (*models.Business, error) {
	business, ok := r.businesses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *business
	return &copied, nil
}

func (r *fakeBusinessRepo) GetBusinesses(_ context.Context, _ repositories.BusinessFilter) ([]models.Business, int64, error) {
	var out []models.Business
	for _, b := range r.businesses {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBusinessRepo) UpdateBusiness(_ context.Context, id string, _ bson.M) (*models.Business, error) {
	business, ok := r.businesses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *business
	return &copied, nil
}

func (r *fakeBusinessRepo) UpdateBusinessTags(_ context.Context, id string, tags string) error {
	business, ok := r.businesses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	business.Tags = tags
	r.tagUpdates[id] = tags
	return nil
}

func (r *fakeBusinessRepo) DeleteBusiness(_ context.Context, id string) error {
	if _, ok := r.businesses[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.businesses, id)
	return nil
}

type fakeContentRepo struct {
	items map[string]*models.ContentItem
}

func newFakeContentRepo(items ...*models.ContentItem) *fakeContentRepo {
	repo := &fakeContentRepo{items: make(map[string]*models.ContentItem)}
	for _, item := range items {
		repo.items[item.ID.Hex()] = item
	}
	return repo
}

func (r *fakeContentRepo) CreateContent(_ context.Context, content *models.ContentItem) error {
	if content.ID.IsZero() {
		content.ID = primitive.NewObjectID()
	}
	r.items[content.ID.Hex()] = content
	return nil
}

func (r *fakeContentRepo) GetContentByID(_ context.Context, id string) (*models.ContentItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeContentRepo) GetContents(_ context.Context, filter models.ContentFilter) ([]models.ContentItem, int64, error) {
	var out []models.ContentItem
	for _, item := range r.items {
		if filter.AssignedDesigner != "" && item.AssignedDesigner != filter.AssignedDesigner {
			continue
		}
		if filter.AssignedEditor != "" && item.AssignedEditor != filter.AssignedEditor {
			continue
		}
		if len(filter.ContentTypeIn) > 0 && !containsString(filter.ContentTypeIn, item.ContentType) {
			continue
		}
		out = append(out, *item)
	}
	return out, int64(len(out)), nil
}

func (r *fakeContentRepo) UpdateContent(_ context.Context, id string, update bson.M) (*models.ContentItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	applyContentPatch(item, update)
	copied := *item
	return &copied, nil
}

func (r *fakeContentRepo) DeleteContent(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func applyContentPatch(item *models.ContentItem, update bson.M) {
	for key, value := range update {
		switch key {
		case "business":
			item.Business = value.(primitive.ObjectID)
		case "date":
			item.Date = value.(string)
		case "contentType":
			item.ContentType = value.(string)
		case "postMaterial":
			item.PostMaterial = value.(string)
		case "tags":
			item.Tags = value.(string)
		case "videoMaterial":
			item.VideoMaterial = value.(string)
		case "vision":
			item.Vision = value.(string)
		case "posterMaterial":
			item.PosterMaterial = value.(string)
		case "comments":
			item.Comments = value.(string)
		case "assignedWriter":
			item.AssignedWriter = value.(string)
		case "assignedDesigner":
			item.AssignedDesigner = value.(string)
		case "assignedEditor":
			item.AssignedEditor = value.(string)
		case "status":
			item.Status = value.(bool)
		}
	}
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

type fakeUserRepo struct {
	users map[uint]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	return user, nil
}

func (r *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, fmt.Errorf("record not found")
}

func (r *fakeUserRepo) GetUsers() ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) GetUsersByRole(role string) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if u.HasRole(role) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) DeleteUser(id uint) error {
	delete(r.users, id)
	return nil
}

type fakeNotificationRepo struct {
	created []models.Notification
}

func (r *fakeNotificationRepo) CreateNotification(notification *models.Notification) error {
	r.created = append(r.created, *notification)
	return nil
}

func (r *fakeNotificationRepo) GetByRecipientID(recipientID string, _, _ int) ([]models.Notification, int64, error) {
	var out []models.Notification
	for _, n := range r.created {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) GetUnreadCount(recipientID string) (int64, error) {
	var count int64
	for _, n := range r.created {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(_ uint, _ string) error { return nil }
func (r *fakeNotificationRepo) MarkAllAsRead(_ string) error      { return nil }

// recordingDispatcher captures emissions instead of writing to sockets
type recordedEmission struct {
	UserID string
	Event  string
	Data   interface{}
}

type recordingDispatcher struct {
	ready     bool
	emissions []recordedEmission
}

func (d *recordingDispatcher) IsReady() bool { return d.ready }

func (d *recordingDispatcher) EmitToUser(userID, event string, data interface{}) {
	d.emissions = append(d.emissions, recordedEmission{UserID: userID, Event: event, Data: data})
}
