package services

import "github.com/altamedia/contentdesk/backend/internal/models"

// Assignments is the collaborator snapshot attached to a new content item.
// Empty fields mean the business has no roster entry for that role; the
// caller decides whether absence matters.
type Assignments struct {
	Writer   string
	Designer string
	Editor   string
}

// ResolveAssignments derives the default collaborators for new content on a
// business: the first entry of each roster, or absent when the roster is
// empty. Never an error — empty rosters are the caller's policy call.
func ResolveAssignments(business *models.Business) Assignments {
	return Assignments{
		Writer:   first(business.AssignedWriters),
		Designer: first(business.AssignedDesigners),
		Editor:   first(business.AssignedEditors),
	}
}

func first(roster []string) string {
	if len(roster) > 0 {
		return roster[0]
	}
	return ""
}
