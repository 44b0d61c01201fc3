package services

import (
	"context"
	"errors"
	"strings"

	"github.com/altamedia/contentdesk/backend/internal/repositories"
	"go.uber.org/zap"
)

// TagSyncer merges hashtags discovered in content into the owning
// business's tag set. It runs off the mutation's critical path: every
// failure is swallowed and the content write stands regardless.
type TagSyncer struct {
	businesses repositories.BusinessRepository
	logger     *zap.Logger
}

// NewTagSyncer creates a TagSyncer
func NewTagSyncer(businesses repositories.BusinessRepository, logger *zap.Logger) *TagSyncer {
	return &TagSyncer{businesses: businesses, logger: logger}
}

// hashtags tokenizes a tag string on whitespace and keeps lower-cased
// hashtags ("#x" and longer).
func hashtags(tags string) []string {
	var out []string
	for _, token := range strings.Fields(tags) {
		if strings.HasPrefix(token, "#") && len(token) > 1 {
			out = append(out, strings.ToLower(token))
		}
	}
	return out
}

// Sync appends to the business's tag string every hashtag present in
// contentTags but missing from the business. Existing tags keep their
// original casing; re-running with the same input is a no-op. A vanished
// business or empty input is a silent no-op.
func (s *TagSyncer) Sync(ctx context.Context, businessID, contentTags string) {
	if strings.TrimSpace(contentTags) == "" {
		return
	}

	business, err := s.businesses.GetBusinessByID(ctx, businessID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			s.logger.Warn("tag sync: business lookup failed",
				zap.String("business", businessID), zap.Error(err))
		}
		return
	}

	existing := make(map[string]struct{})
	for _, tag := range hashtags(business.Tags) {
		existing[tag] = struct{}{}
	}

	var newTags []string
	for _, tag := range hashtags(contentTags) {
		if _, ok := existing[tag]; !ok {
			existing[tag] = struct{}{}
			newTags = append(newTags, tag)
		}
	}
	if len(newTags) == 0 {
		return
	}

	updated := strings.TrimSpace(business.Tags)
	if updated != "" {
		updated += " " + strings.Join(newTags, " ")
	} else {
		updated = strings.Join(newTags, " ")
	}

	if err := s.businesses.UpdateBusinessTags(ctx, businessID, updated); err != nil {
		s.logger.Warn("tag sync: update failed",
			zap.String("business", businessID), zap.Error(err))
		return
	}

	s.logger.Info("synced new tags to business",
		zap.String("business", business.BusinessName),
		zap.Strings("tags", newTags))
}
