package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Content type classification. Poster content concerns the designer, video
// content the editor, "both" concerns both.
const (
	ContentTypeVideo  = "video"
	ContentTypePoster = "poster"
	ContentTypeBoth   = "both"
)

// ContentItem represents one scheduled piece of content for a business,
// stored in MongoDB. The assigned writer/designer/editor are snapshotted
// from the business rosters at creation time and never re-derived; a later
// roster change does not touch existing items.
type ContentItem struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Business primitive.ObjectID `json:"business" bson:"business"`
	Date     string             `json:"date" bson:"date"` // business-local date string, MM/DD/YYYY

	ContentType string `json:"contentType" bson:"contentType"`

	PostMaterial   string `json:"postMaterial,omitempty" bson:"postMaterial,omitempty"`
	Tags           string `json:"tags,omitempty" bson:"tags,omitempty"`
	VideoMaterial  string `json:"videoMaterial,omitempty" bson:"videoMaterial,omitempty"`
	Vision         string `json:"vision,omitempty" bson:"vision,omitempty"`
	PosterMaterial string `json:"posterMaterial,omitempty" bson:"posterMaterial,omitempty"`
	Comments       string `json:"comments,omitempty" bson:"comments,omitempty"`

	AddedBy          string `json:"addedBy" bson:"addedBy"`
	AssignedWriter   string `json:"assignedWriter,omitempty" bson:"assignedWriter,omitempty"`
	AssignedDesigner string `json:"assignedDesigner,omitempty" bson:"assignedDesigner,omitempty"`
	AssignedEditor   string `json:"assignedEditor,omitempty" bson:"assignedEditor,omitempty"`

	Status    bool      `json:"status" bson:"status"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CreateContentRequest defines the request body for creating a content item
type CreateContentRequest struct {
	Business    string `json:"business" validate:"required"`
	Date        string `json:"date" validate:"required"`
	ContentType string `json:"contentType" validate:"required,oneof=video poster both"`

	PostMaterial   string `json:"postMaterial,omitempty"`
	Tags           string `json:"tags,omitempty"`
	VideoMaterial  string `json:"videoMaterial,omitempty"`
	Vision         string `json:"vision,omitempty"`
	PosterMaterial string `json:"posterMaterial,omitempty"`
	Comments       string `json:"comments,omitempty"`
}

// UpdateContentRequest is the patch applied to an existing content item.
// Nil fields are left unchanged.
type UpdateContentRequest struct {
	Business    *string `json:"business,omitempty"`
	Date        *string `json:"date,omitempty"`
	ContentType *string `json:"contentType,omitempty" validate:"omitempty,oneof=video poster both"`

	PostMaterial   *string `json:"postMaterial,omitempty"`
	Tags           *string `json:"tags,omitempty"`
	VideoMaterial  *string `json:"videoMaterial,omitempty"`
	Vision         *string `json:"vision,omitempty"`
	PosterMaterial *string `json:"posterMaterial,omitempty"`
	Comments       *string `json:"comments,omitempty"`

	AssignedWriter   *string `json:"assignedWriter,omitempty"`
	AssignedDesigner *string `json:"assignedDesigner,omitempty"`
	AssignedEditor   *string `json:"assignedEditor,omitempty"`

	Status *bool `json:"status,omitempty"`
}

// ContentFilter collects the list-endpoint filters before they are
// translated to a MongoDB query.
type ContentFilter struct {
	Date             string
	TodayOnly        bool
	Business         string
	AssignedWriter   string
	AssignedDesigner string
	AssignedEditor   string
	AddedBy          string
	Status           *bool
	ContentType      string
	ContentTypeIn    []string // visibility restriction, ANDed with ContentType

	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// ContentPage is one page of a filtered content listing
type ContentPage struct {
	Contents []ContentItem `json:"contents"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	Limit    int           `json:"limit"`
}
