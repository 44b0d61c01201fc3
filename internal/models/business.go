package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Predefined list of business packages
var Packages = []string{"Basic", "Standard", "Premium", "Enterprise", "Custom"}

// Predefined list of business types
var BusinessTypes = []string{
	"Restaurant", "Hotel", "Cafe", "Bar", "Resort", "Spa", "Gym", "Salon",
	"Retail Store", "E-commerce", "Technology", "Healthcare", "Education",
	"Real Estate", "Construction", "Manufacturing", "Consulting",
	"Marketing Agency", "Law Firm", "Accounting Firm", "Travel Agency",
	"Event Planning", "Photography", "Automotive", "Entertainment", "Other",
}

// SocialMediaPlatform holds one platform's credentials. Password is stored
// encrypted (ivhex:cipherhex); plaintext never reaches the database.
type SocialMediaPlatform struct {
	URL      string `json:"url,omitempty" bson:"url,omitempty"`
	Username string `json:"username,omitempty" bson:"username,omitempty"`
	Password string `json:"password,omitempty" bson:"password,omitempty"`
}

// SocialMediaLinks groups all platform credentials and plain links
type SocialMediaLinks struct {
	Facebook       *SocialMediaPlatform `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Instagram      *SocialMediaPlatform `json:"instagram,omitempty" bson:"instagram,omitempty"`
	WhatsApp       *SocialMediaPlatform `json:"whatsApp,omitempty" bson:"whatsApp,omitempty"`
	Youtube        *SocialMediaPlatform `json:"youtube,omitempty" bson:"youtube,omitempty"`
	Website        string               `json:"website,omitempty" bson:"website,omitempty"`
	TripAdvisor    string               `json:"tripAdvisor,omitempty" bson:"tripAdvisor,omitempty"`
	GoogleBusiness string               `json:"googleBusiness,omitempty" bson:"googleBusiness,omitempty"`
}

// Platforms iterates the credential-bearing platforms for encrypt/decrypt
func (s *SocialMediaLinks) Platforms() []*SocialMediaPlatform {
	if s == nil {
		return nil
	}
	out := make([]*SocialMediaPlatform, 0, 4)
	for _, p := range []*SocialMediaPlatform{s.Facebook, s.Instagram, s.WhatsApp, s.Youtube} {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// Business represents a client business stored in MongoDB. The three
// assignment rosters are ordered: position 0 is the default assignee for
// new content items.
type Business struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	BusinessName   string             `json:"businessName" bson:"businessName"`
	TypeOfBusiness string             `json:"typeOfBusiness" bson:"typeOfBusiness"`
	Country        string             `json:"country" bson:"country"`
	Package        string             `json:"package" bson:"package"`
	EntryDate      string             `json:"entryDate" bson:"entryDate"`

	ContactDetails string `json:"contactDetails,omitempty" bson:"contactDetails,omitempty"`
	Email          string `json:"email,omitempty" bson:"email,omitempty"`
	Address        string `json:"address,omitempty" bson:"address,omitempty"`

	SocialMediaLinks *SocialMediaLinks `json:"socialMediaLinks,omitempty" bson:"socialMediaLinks,omitempty"`

	Note string `json:"note,omitempty" bson:"note,omitempty"`
	Tags string `json:"tags,omitempty" bson:"tags,omitempty"`

	AssignedWriters   []string `json:"assignedWriters" bson:"assignedWriters"`
	AssignedDesigners []string `json:"assignedDesigners" bson:"assignedDesigners"`
	AssignedEditors   []string `json:"assignedEditors" bson:"assignedEditors"`

	Status    bool      `json:"status" bson:"status"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// HasCollaborator reports whether the user appears in any of the three rosters
func (b *Business) HasCollaborator(userID string) bool {
	for _, roster := range [][]string{b.AssignedWriters, b.AssignedDesigners, b.AssignedEditors} {
		for _, id := range roster {
			if id == userID {
				return true
			}
		}
	}
	return false
}

// CreateBusinessRequest defines the request body for creating a business
type CreateBusinessRequest struct {
	BusinessName   string `json:"businessName" validate:"required,min=1,max=120"`
	TypeOfBusiness string `json:"typeOfBusiness" validate:"required"`
	Country        string `json:"country" validate:"required"`
	Package        string `json:"package" validate:"required"`
	EntryDate      string `json:"entryDate" validate:"required"`

	ContactDetails string `json:"contactDetails,omitempty"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Address        string `json:"address,omitempty"`

	SocialMediaLinks *SocialMediaLinks `json:"socialMediaLinks,omitempty"`

	Note string `json:"note,omitempty"`
	Tags string `json:"tags,omitempty"`

	AssignedWriters   []string `json:"assignedWriters,omitempty"`
	AssignedDesigners []string `json:"assignedDesigners,omitempty"`
	AssignedEditors   []string `json:"assignedEditors,omitempty"`
}

// UpdateBusinessRequest defines the request body for updating a business.
// Pointer fields distinguish "leave unchanged" from "set to empty".
type UpdateBusinessRequest struct {
	BusinessName   *string `json:"businessName,omitempty" validate:"omitempty,min=1,max=120"`
	TypeOfBusiness *string `json:"typeOfBusiness,omitempty"`
	Country        *string `json:"country,omitempty"`
	Package        *string `json:"package,omitempty"`
	EntryDate      *string `json:"entryDate,omitempty"`

	ContactDetails *string `json:"contactDetails,omitempty"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Address        *string `json:"address,omitempty"`

	SocialMediaLinks *SocialMediaLinks `json:"socialMediaLinks,omitempty"`

	Note *string `json:"note,omitempty"`
	Tags *string `json:"tags,omitempty"`

	AssignedWriters   []string `json:"assignedWriters,omitempty"`
	AssignedDesigners []string `json:"assignedDesigners,omitempty"`
	AssignedEditors   []string `json:"assignedEditors,omitempty"`

	Status *bool `json:"status,omitempty"`
}
