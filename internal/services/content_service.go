package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/altamedia/contentdesk/backend/internal/models"
	"github.com/altamedia/contentdesk/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Dispatcher is the fan-out surface the lifecycle service emits through.
// Implemented by socket.Dispatcher; emits are no-ops before the transport
// is ready.
type Dispatcher interface {
	IsReady() bool
	EmitToUser(userID, event string, data interface{})
}

// ContentEventPayload is the denormalized payload delivered with every
// lifecycle event. Message and Type are filled per recipient.
type ContentEventPayload struct {
	ContentID      string     `json:"contentId"`
	Business       string     `json:"business"`
	Date           string     `json:"date"`
	ContentType    string     `json:"contentType"`
	AddedBy        string     `json:"addedBy"`
	PostMaterial   string     `json:"postMaterial,omitempty"`
	PosterMaterial string     `json:"posterMaterial,omitempty"`
	VideoMaterial  string     `json:"videoMaterial,omitempty"`
	Vision         string     `json:"vision,omitempty"`
	Tags           string     `json:"tags,omitempty"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
	UpdatedBy      string     `json:"updatedBy,omitempty"`
	DeletedBy      string     `json:"deletedBy,omitempty"`
	Message        string     `json:"message"`
	Type           string     `json:"type"`
}

// ContentService orchestrates the content item lifecycle: assignment
// snapshotting on create, business-scoped authorization on mutation, tag
// sync, and best-effort notification fan-out after the authoritative write.
type ContentService struct {
	contents      repositories.ContentRepository
	businesses    repositories.BusinessRepository
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
	dispatcher    Dispatcher
	tags          *TagSyncer
	logger        *zap.Logger
}

// NewContentService creates a ContentService
func NewContentService(
	contents repositories.ContentRepository,
	businesses repositories.BusinessRepository,
	users repositories.UserRepository,
	notifications repositories.NotificationRepository,
	dispatcher Dispatcher,
	tags *TagSyncer,
	logger *zap.Logger,
) *ContentService {
	return &ContentService{
		contents:      contents,
		businesses:    businesses,
		users:         users,
		notifications: notifications,
		dispatcher:    dispatcher,
		tags:          tags,
		logger:        logger,
	}
}

// CreateContent resolves the business, snapshots its default collaborators
// onto the new item and notifies them. The snapshot never auto-updates:
// later roster edits leave existing items untouched.
func (s *ContentService) CreateContent(ctx context.Context, actor models.AuthUser, req *models.CreateContentRequest) (*models.ContentItem, error) {
	business, err := s.businesses.GetBusinessByID(ctx, req.Business)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	assignments := ResolveAssignments(business)

	item := &models.ContentItem{
		Business:         business.ID,
		Date:             req.Date,
		ContentType:      req.ContentType,
		PostMaterial:     req.PostMaterial,
		Tags:             req.Tags,
		VideoMaterial:    req.VideoMaterial,
		Vision:           req.Vision,
		PosterMaterial:   req.PosterMaterial,
		Comments:         req.Comments,
		AddedBy:          actor.ID,
		AssignedWriter:   assignments.Writer,
		AssignedDesigner: assignments.Designer,
		AssignedEditor:   assignments.Editor,
		Status:           true,
	}

	if err := s.contents.CreateContent(ctx, item); err != nil {
		return nil, err
	}

	s.dispatchContentEvent(item, ActionCreate, actor, business.BusinessName)
	return item, nil
}

// GetContent retrieves one content item
func (s *ContentService) GetContent(ctx context.Context, id string) (*models.ContentItem, error) {
	item, err := s.contents.GetContentByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return item, nil
}

// ListContents returns a filtered page narrowed to the actor's visibility
func (s *ContentService) ListContents(ctx context.Context, actor models.AuthUser, filter models.ContentFilter) (*models.ContentPage, error) {
	filter = ApplyVisibility(filter, actor)

	contents, total, err := s.contents.GetContents(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	return &models.ContentPage{Contents: contents, Total: total, Page: page, Limit: limit}, nil
}

// UpdateContent authorizes the actor against the owning business, applies
// the patch, syncs any new hashtags into the business and notifies the
// affected collaborators.
func (s *ContentService) UpdateContent(ctx context.Context, actor models.AuthUser, id string, req *models.UpdateContentRequest) (*models.ContentItem, error) {
	existing, err := s.GetContent(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeMutation(ctx, actor, existing); err != nil {
		return nil, err
	}

	update, err := buildContentUpdate(req)
	if err != nil {
		return nil, err
	}

	updated, err := s.contents.UpdateContent(ctx, id, update)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}

	if req.Tags != nil {
		// Prefer the patch's business when the item is being re-pointed
		businessID := existing.Business.Hex()
		if req.Business != nil && *req.Business != "" {
			businessID = *req.Business
		}
		s.tags.Sync(ctx, businessID, *req.Tags)
	}

	s.dispatchContentEvent(updated, ActionUpdate, actor, s.businessName(ctx, updated.Business))
	return updated, nil
}

// DeleteContent authorizes like update, captures the populated item for the
// notification payload, then deletes and notifies. Deleting an absent item
// is NotFound, never a silent success.
func (s *ContentService) DeleteContent(ctx context.Context, actor models.AuthUser, id string) error {
	item, err := s.GetContent(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorizeMutation(ctx, actor, item); err != nil {
		return err
	}

	if err := s.contents.DeleteContent(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrContentNotFound
		}
		return err
	}

	s.dispatchContentEvent(item, ActionDelete, actor, s.businessName(ctx, item.Business))
	return nil
}

// authorizeMutation runs the business-scoped gate for non-elevated actors.
// A missing business is a hard NotFound, not an implicit denial.
func (s *ContentService) authorizeMutation(ctx context.Context, actor models.AuthUser, item *models.ContentItem) error {
	if actor.IsElevated() {
		return nil
	}

	business, err := s.businesses.GetBusinessByID(ctx, item.Business.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBusinessNotFound
		}
		return err
	}

	if !CanMutate(actor, business) {
		return ErrNotAuthorized
	}
	return nil
}

// dispatchContentEvent fans the event out to the computed recipient set and
// records each delivery in the persisted feed. It runs after the
// authoritative write; nothing here can fail the caller's request.
func (s *ContentService) dispatchContentEvent(item *models.ContentItem, action string, actor models.AuthUser, businessName string) {
	recipients := ComputeRecipients(item, action, actor.ID)
	if len(recipients) == 0 {
		return
	}

	event := models.EventNewContent
	base := ContentEventPayload{
		ContentID:   item.ID.Hex(),
		Business:    businessName,
		Date:        item.Date,
		ContentType: item.ContentType,
		AddedBy:     s.usernameByID(item.AddedBy),
	}

	switch action {
	case ActionCreate:
		createdAt := item.CreatedAt
		base.CreatedAt = &createdAt
	case ActionUpdate:
		event = models.EventUpdateContent
		updatedAt := item.UpdatedAt
		base.UpdatedAt = &updatedAt
		base.UpdatedBy = actor.Username
	case ActionDelete:
		event = models.EventDeleteContent
		base.DeletedBy = actor.Username
	}

	if action != ActionDelete {
		base.PostMaterial = item.PostMaterial
		base.PosterMaterial = item.PosterMaterial
		base.VideoMaterial = item.VideoMaterial
		base.Vision = item.Vision
		base.Tags = item.Tags
	}

	for _, r := range recipients {
		payload := base
		payload.Message = r.Message
		payload.Type = r.Type

		if s.dispatcher.IsReady() {
			s.dispatcher.EmitToUser(r.UserID, event, payload)
		}

		if err := s.notifications.CreateNotification(&models.Notification{
			Event:       event,
			ContentID:   payload.ContentID,
			ActorID:     actor.ID,
			RecipientID: r.UserID,
			Business:    businessName,
			Message:     r.Message,
			Type:        r.Type,
		}); err != nil {
			s.logger.Warn("failed to persist notification",
				zap.String("recipient", r.UserID), zap.Error(err))
		}
	}

	s.logger.Info("content event dispatched",
		zap.String("event", event),
		zap.String("content", base.ContentID),
		zap.Int("recipients", len(recipients)))
}

// usernameByID resolves a user ID to a display name for the denormalized
// payload, tolerating deleted users.
func (s *ContentService) usernameByID(id string) string {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return "Unknown"
	}
	user, err := s.users.GetUserByID(uint(n))
	if err != nil {
		return "Unknown"
	}
	return user.Username
}

// businessName resolves a business's display name, tolerating a business
// deleted since the item was written.
func (s *ContentService) businessName(ctx context.Context, id primitive.ObjectID) string {
	business, err := s.businesses.GetBusinessByID(ctx, id.Hex())
	if err != nil {
		return "Unknown"
	}
	return business.BusinessName
}

// buildContentUpdate translates a patch request into the persisted update.
// Nil fields are left unchanged.
func buildContentUpdate(req *models.UpdateContentRequest) (bson.M, error) {
	update := bson.M{}

	if req.Business != nil && *req.Business != "" {
		objID, err := primitive.ObjectIDFromHex(*req.Business)
		if err != nil {
			return nil, ErrBusinessNotFound
		}
		update["business"] = objID
	}
	if req.Date != nil {
		update["date"] = *req.Date
	}
	if req.ContentType != nil {
		update["contentType"] = *req.ContentType
	}
	if req.PostMaterial != nil {
		update["postMaterial"] = *req.PostMaterial
	}
	if req.Tags != nil {
		update["tags"] = *req.Tags
	}
	if req.VideoMaterial != nil {
		update["videoMaterial"] = *req.VideoMaterial
	}
	if req.Vision != nil {
		update["vision"] = *req.Vision
	}
	if req.PosterMaterial != nil {
		update["posterMaterial"] = *req.PosterMaterial
	}
	if req.Comments != nil {
		update["comments"] = *req.Comments
	}
	if req.AssignedWriter != nil {
		update["assignedWriter"] = *req.AssignedWriter
	}
	if req.AssignedDesigner != nil {
		update["assignedDesigner"] = *req.AssignedDesigner
	}
	if req.AssignedEditor != nil {
		update["assignedEditor"] = *req.AssignedEditor
	}
	if req.Status != nil {
		update["status"] = *req.Status
	}

	return update, nil
}
