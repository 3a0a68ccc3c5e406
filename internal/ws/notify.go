package ws

import (
	"encoding/json"
	"time"

	"taskmesh/internal/domain/assignment"

	"github.com/google/uuid"
)

type AssignmentEvent struct {
	Type         string    `json:"type"`
	AssignmentID uuid.UUID `json:"assignment_id"`
	Title        string    `json:"title"`
	Status       string    `json:"status"`
	AssigneeID   uuid.UUID `json:"assignee_id"`
	ManagerID    uuid.UUID `json:"manager_id"`
	Timestamp    string    `json:"timestamp"`
}

// Notifier adapts the hub to the usecase layer's notification contract.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyAssignment(event string, a assignment.Assignment) {
	if n == nil || n.hub == nil {
		return
	}
	if event == "" {
		return
	}

	evt := AssignmentEvent{
		Type:         event,
		AssignmentID: a.ID,
		Title:        a.Title,
		Status:       string(a.Status),
		AssigneeID:   a.AssigneeID,
		ManagerID:    a.ManagerID,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.Broadcast(b)
}
