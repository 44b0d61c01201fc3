package services

import "github.com/altamedia/contentdesk/backend/internal/models"

// CanMutate decides whether an actor may create, update or delete content
// belonging to a business. Super admins and admins bypass all checks;
// everyone else must appear in at least one of the business's three rosters.
// Authorization is scoped to the business, not to the specific assignment
// snapshotted on the item: any current collaborator may touch any of the
// business's items.
func CanMutate(actor models.AuthUser, business *models.Business) bool {
	if actor.IsElevated() {
		return true
	}
	return business.HasCollaborator(actor.ID)
}

// ApplyVisibility narrows a content listing to what the actor may see.
// Designers see only poster/both items they are the assigned designer of;
// editors only video/both items they are the assigned editor of. Writers
// and elevated roles see everything. This is a read-side filter only and is
// deliberately narrower than the mutation rule above.
func ApplyVisibility(filter models.ContentFilter, actor models.AuthUser) models.ContentFilter {
	if actor.IsElevated() || actor.HasRole(models.RoleWriter) {
		return filter
	}

	switch {
	case actor.HasRole(models.RoleDesigner):
		filter.AssignedDesigner = actor.ID
		filter.ContentTypeIn = []string{models.ContentTypePoster, models.ContentTypeBoth}
	case actor.HasRole(models.RoleEditor):
		filter.AssignedEditor = actor.ID
		filter.ContentTypeIn = []string{models.ContentTypeVideo, models.ContentTypeBoth}
	}
	return filter
}
