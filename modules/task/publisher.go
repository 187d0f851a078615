package task

import (
	"github.com/example/task-tracker/events"
	"github.com/go-monolith/mono"
)

// Publisher delivers task lifecycle events.
type Publisher interface {
	PublishTaskCreated(event events.TaskCreatedEvent) error
	PublishTaskEdited(event events.TaskEditedEvent) error
	PublishTaskConcluded(event events.TaskConcludedEvent) error
	PublishTaskDeleted(event events.TaskDeletedEvent) error
}

// busPublisher publishes through the typed event definitions on the mono EventBus.
type busPublisher struct {
	bus mono.EventBus
}

var _ Publisher = (*busPublisher)(nil)

// newBusPublisher returns nil when no bus is set so that the service skips publishing.
func newBusPublisher(bus mono.EventBus) Publisher {
	if bus == nil {
		return nil
	}
	return &busPublisher{bus: bus}
}

func (p *busPublisher) PublishTaskCreated(event events.TaskCreatedEvent) error {
	return events.TaskCreatedV1.Publish(p.bus, event, nil)
}

func (p *busPublisher) PublishTaskEdited(event events.TaskEditedEvent) error {
	return events.TaskEditedV1.Publish(p.bus, event, nil)
}

func (p *busPublisher) PublishTaskConcluded(event events.TaskConcludedEvent) error {
	return events.TaskConcludedV1.Publish(p.bus, event, nil)
}

func (p *busPublisher) PublishTaskDeleted(event events.TaskDeletedEvent) error {
	return events.TaskDeletedV1.Publish(p.bus, event, nil)
}
