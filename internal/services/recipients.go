package services

import "github.com/altamedia/contentdesk/backend/internal/models"

// Lifecycle actions recipient computation distinguishes
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Recipient is one deduplicated delivery target. Type and Message describe
// which rule selected the recipient; Type is informational framing for the
// client, not routing.
type Recipient struct {
	UserID  string
	Type    string
	Message string
}

// ComputeRecipients returns the final, ordered, deduplicated recipient set
// for a lifecycle event, before any dispatch happens.
//
// Create notifies the snapshot designer (poster/both) and editor
// (video/both). Update and delete apply the same two rules excluding the
// actor, then always add the item's creator and its snapshot writer when
// they differ from the actor and were not already selected. Each user
// appears at most once.
func ComputeRecipients(item *models.ContentItem, action, actorID string) []Recipient {
	verb := ""
	switch action {
	case ActionUpdate:
		verb = "updated"
	case ActionDelete:
		verb = "deleted"
	}

	var out []Recipient
	seen := make(map[string]struct{})

	add := func(userID, deliveryType, message string) {
		if userID == "" {
			return
		}
		if action != ActionCreate && userID == actorID {
			return
		}
		if _, ok := seen[userID]; ok {
			return
		}
		seen[userID] = struct{}{}
		out = append(out, Recipient{UserID: userID, Type: deliveryType, Message: message})
	}

	posterContent := item.ContentType == models.ContentTypePoster || item.ContentType == models.ContentTypeBoth
	videoContent := item.ContentType == models.ContentTypeVideo || item.ContentType == models.ContentTypeBoth

	if action == ActionCreate {
		if posterContent {
			add(item.AssignedDesigner, models.DeliveryPoster, "New poster content assigned to you")
		}
		if videoContent {
			add(item.AssignedEditor, models.DeliveryVideo, "New video content assigned to you")
		}
		return out
	}

	if posterContent {
		add(item.AssignedDesigner, models.DeliveryPoster, "Content assigned to you has been "+verb)
	}
	if videoContent {
		add(item.AssignedEditor, models.DeliveryVideo, "Video content assigned to you has been "+verb)
	}
	add(item.AddedBy, models.DeliveryWriter, "Content you created has been "+verb)
	add(item.AssignedWriter, models.DeliveryWriter, "Content for your assigned business has been "+verb)

	return out
}
