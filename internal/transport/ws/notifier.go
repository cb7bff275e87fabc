package ws

import (
	"context"

	"github.com/google/uuid"
	"github.com/vedran77/contacts/internal/domain"
	"github.com/vedran77/contacts/internal/logging"
)

// HubNotifier implements service.Notifier using the WebSocket Hub. Every
// event is addressed to the contact's owner only.
type HubNotifier struct {
	hub *Hub
	log logging.Logger
}

func NewHubNotifier(hub *Hub, log logging.Logger) *HubNotifier {
	return &HubNotifier{hub: hub, log: log}
}

func (n *HubNotifier) NotifyContactCreated(c *domain.Contact) {
	n.send(c.OwnerID, EventTypeContactCreated, ContactPayload{Contact: *c})
}

func (n *HubNotifier) NotifyContactUpdated(c *domain.Contact) {
	n.send(c.OwnerID, EventTypeContactUpdated, ContactPayload{Contact: *c})
}

func (n *HubNotifier) NotifyContactDeleted(ownerID, contactID uuid.UUID) {
	n.send(ownerID, EventTypeContactDeleted, ContactDeletedPayload{ID: contactID})
}

func (n *HubNotifier) send(ownerID uuid.UUID, eventType string, payload any) {
	evt, err := NewEvent(eventType, payload)
	if err != nil {
		n.log.Error(context.Background(), "ws notifier marshal failed", "type", eventType, "error", err)
		return
	}
	n.hub.SendToUser(ownerID, evt)
}
