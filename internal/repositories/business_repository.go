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

// BusinessFilter collects list-endpoint filters for businesses
type BusinessFilter struct {
	Search         string
	CollaboratorID string // restrict to businesses whose rosters contain this user
	Page           int
	Limit          int
	SortBy         string
	SortOrder      string
}

// BusinessRepository defines the interface for business data operations
type BusinessRepository interface {
	CreateBusiness(ctx context.Context, business *models.Business) error
	GetBusinessByID(ctx context.Context, id string) (*models.Business, error)
	GetBusinesses(ctx context.Context, filter BusinessFilter) ([]models.Business, int64, error)
	UpdateBusiness(ctx context.Context, id string, update bson.M) (*models.Business, error)
	UpdateBusinessTags(ctx context.Context, id string, tags string) error
	DeleteBusiness(ctx context.Context, id string) error
}

// MongoBusinessRepository implements BusinessRepository for MongoDB
type MongoBusinessRepository struct {
	collection *mongo.Collection
}

// NewMongoBusinessRepository creates a new MongoBusinessRepository
func NewMongoBusinessRepository(db *mongo.Database) *MongoBusinessRepository {
	return &MongoBusinessRepository{collection: db.Collection("businesses")}
}

// CreateBusiness creates a new business in MongoDB
func (r *MongoBusinessRepository) CreateBusiness(ctx context.Context, business *models.Business) error {
	business.ID = primitive.NewObjectID()
	business.Status = true
	business.CreatedAt = time.Now()
	business.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, business)
	return err
}

// GetBusinessByID retrieves a business by ID from MongoDB
func (r *MongoBusinessRepository) GetBusinessByID(ctx context.Context, id string) (*models.Business, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid business ID format: %w", ErrNotFound)
	}

	var business models.Business
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&business)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &business, nil
}

// GetBusinesses retrieves active businesses with search, roster restriction
// and pagination
func (r *MongoBusinessRepository) GetBusinesses(ctx context.Context, filter BusinessFilter) ([]models.Business, int64, error) {
	query := bson.M{"status": true}

	if filter.Search != "" {
		regex := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"businessName": regex},
			bson.M{"typeOfBusiness": regex},
			bson.M{"country": regex},
			bson.M{"package": regex},
		}
	}

	if filter.CollaboratorID != "" {
		query["$and"] = bson.A{bson.M{"$or": bson.A{
			bson.M{"assignedWriters": filter.CollaboratorID},
			bson.M{"assignedDesigners": filter.CollaboratorID},
			bson.M{"assignedEditors": filter.CollaboratorID},
		}}}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	order := -1
	if filter.SortOrder == "asc" {
		order = 1
	}
	sort := bson.D{{Key: "_id", Value: -1}}
	if filter.SortBy != "" {
		// Secondary _id sort keeps ordering stable when the primary field
		// has duplicates.
		sort = bson.D{{Key: filter.SortBy, Value: order}, {Key: "_id", Value: order}}
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

	var businesses []models.Business
	if err = cursor.All(ctx, &businesses); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return businesses, total, nil
}

// UpdateBusiness applies a partial update and returns the updated document
func (r *MongoBusinessRepository) UpdateBusiness(ctx context.Context, id string, update bson.M) (*models.Business, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid business ID format: %w", ErrNotFound)
	}

	update["updated_at"] = time.Now()

	var business models.Business
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&business)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &business, nil
}

// UpdateBusinessTags overwrites only the tags string of a business
func (r *MongoBusinessRepository) UpdateBusinessTags(ctx context.Context, id string, tags string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"tags": tags}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBusiness deletes a business by ID from MongoDB
func (r *MongoBusinessRepository) DeleteBusiness(ctx context.Context, id string) error {
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
