// Package notifier decouples notification emission from the mutators that
// trigger it. Mutators emit events; a single worker persists them.
package notifier

import (
	"log"
	"sync"

	"github.com/arefin88/chirp/backend/internal/models"
	"github.com/arefin88/chirp/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types emitted by the engagement and follow mutators.
const (
	TypeLike   = "like"
	TypeRepost = "repost"
	TypeFollow = "follow"
)

// Event is one notification to deliver.
type Event struct {
	Type string
	From primitive.ObjectID
	To   primitive.ObjectID
}

// Notifier buffers events and persists them on a background worker. Emission
// never blocks a request: when the buffer is full the event is dropped and
// logged.
type Notifier struct {
	repo   repositories.NotificationRepository
	events chan Event
	wg     sync.WaitGroup
}

// New starts a notifier with the given buffer size.
func New(repo repositories.NotificationRepository, buffer int) *Notifier {
	n := &Notifier{
		repo:   repo,
		events: make(chan Event, buffer),
	}
	n.wg.Add(1)
	go n.run()
	return n
}

// Notify emits an event. Self-notifications are suppressed: a user acting on
// their own content produces nothing.
func (n *Notifier) Notify(eventType string, from, to primitive.ObjectID) {
	if from == to {
		return
	}
	select {
	case n.events <- Event{Type: eventType, From: from, To: to}:
	default:
		log.Printf("notifier: buffer full, dropping %s notification from %s", eventType, from.Hex())
	}
}

// Close drains pending events and stops the worker.
func (n *Notifier) Close() {
	close(n.events)
	n.wg.Wait()
}

func (n *Notifier) run() {
	defer n.wg.Done()
	for ev := range n.events {
		notification := &models.Notification{
			Type:     ev.Type,
			FromUser: ev.From.Hex(),
			ToUser:   ev.To.Hex(),
		}
		if err := n.repo.CreateNotification(notification); err != nil {
			log.Printf("notifier: failed to persist %s notification: %v", ev.Type, err)
		}
	}
}
