package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/altamedia/contentdesk/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContentRepository defines the interface for content item data operations
type ContentRepository interface {
	CreateContent(ctx context.Context, content *models.ContentItem) error
	GetContentByID(ctx context.Context, id string) (*models.ContentItem, error)
	GetContents(ctx context.Context, filter models.ContentFilter) ([]models.ContentItem, int64, error)
	UpdateContent(ctx context.Context, id string, update bson.M) (*models.ContentItem, error)
	DeleteContent(ctx context.Context, id string) error
}

// MongoContentRepository implements ContentRepository for MongoDB
type MongoContentRepository struct {
	collection *mongo.Collection
}

// NewMongoContentRepository creates a new MongoContentRepository
func NewMongoContentRepository(db *mongo.Database) *MongoContentRepository {
	return &MongoContentRepository{collection: db.Collection("contents")}
}

// CreateContent inserts a new content item
func (r *MongoContentRepository) CreateContent(ctx context.Context, content *models.ContentItem) error {
	content.ID = primitive.NewObjectID()
	content.CreatedAt = time.Now()
	content.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, content)
	return err
}

// GetContentByID retrieves a content item by ID
func (r *MongoContentRepository) GetContentByID(ctx context.Context, id string) (*models.ContentItem, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid content ID format: %w", ErrNotFound)
	}

	var content models.ContentItem
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&content)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &content, nil
}

// todayDateString formats today the way content dates are stored (MM/DD/YYYY)
func todayDateString() string {
	return time.Now().Format("01/02/2006")
}

// GetContents retrieves content items matching the filter, paginated
func (r *MongoContentRepository) GetContents(ctx context.Context, filter models.ContentFilter) ([]models.ContentItem, int64, error) {
	query := bson.M{}

	if filter.TodayOnly {
		query["date"] = todayDateString()
	} else if filter.Date != "" {
		query["date"] = filter.Date
	}

	if filter.Business != "" {
		if objID, err := primitive.ObjectIDFromHex(filter.Business); err == nil {
			query["business"] = objID
		}
	}
	if filter.AssignedWriter != "" {
		query["assignedWriter"] = filter.AssignedWriter
	}
	if filter.AssignedDesigner != "" {
		query["assignedDesigner"] = filter.AssignedDesigner
	}
	if filter.AssignedEditor != "" {
		query["assignedEditor"] = filter.AssignedEditor
	}
	if filter.AddedBy != "" {
		query["addedBy"] = filter.AddedBy
	}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}
	if filter.ContentType != "" {
		query["contentType"] = filter.ContentType
	}
	if len(filter.ContentTypeIn) > 0 {
		// Visibility restriction is ANDed with any explicit contentType filter
		if existing, ok := query["contentType"]; ok {
			query["$and"] = bson.A{
				bson.M{"contentType": existing},
				bson.M{"contentType": bson.M{"$in": filter.ContentTypeIn}},
			}
			delete(query, "contentType")
		} else {
			query["contentType"] = bson.M{"$in": filter.ContentTypeIn}
		}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "date"
	}
	order := -1
	if filter.SortOrder == "asc" {
		order = 1
	}
	sort := bson.D{{Key: sortBy, Value: order}}
	if sortBy != "created_at" {
		sort = append(sort, bson.E{Key: "created_at", Value: -1})
	}

	findOptions := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(sort)

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var contents []models.ContentItem
	if err = cursor.All(ctx, &contents); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return contents, total, nil
}

// UpdateContent applies a partial update and returns the updated document
func (r *MongoContentRepository) UpdateContent(ctx context.Context, id string, update bson.M) (*models.ContentItem, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid content ID format: %w", ErrNotFound)
	}

	update["updated_at"] = time.Now()

	var content models.ContentItem
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&content)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &content, nil
}

// DeleteContent deletes a content item by ID
func (r *MongoContentRepository) DeleteContent(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
