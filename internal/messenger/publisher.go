package messenger

import (
	"encoding/json"

	uuid "github.com/nu7hatch/gouuid"
	"go.uber.org/zap"
)

// EventPublisher fans market events out to the message broker. The returned
// functions are registered as event listeners at startup.
type EventPublisher interface {
	Publisher(item Item) func(msg interface{})
}

type eventPublisher struct {
	messenger MessageService
}

func NewEventPublisher(messenger MessageService) EventPublisher {
	return eventPublisher{messenger}
}

type envelope struct {
	MessageId string      `json:"messageId"`
	Payload   interface{} `json:"payload"`
}

func (p eventPublisher) Publisher(item Item) func(msg interface{}) {
	return func(msg interface{}) {
		messageId, err := uuid.NewV4()
		if err != nil {
			zap.L().With(zap.Error(err)).Error("EventPublisher: Failed to create message id")
			return
		}

		body, err := json.Marshal(envelope{MessageId: messageId.String(), Payload: msg})
		if err != nil {
			zap.L().With(zap.Error(err)).Error("EventPublisher: Failed to marshal event")
			return
		}

		if err := p.messenger.SendMessage(item, body, false); err != nil {
			zap.L().With(zap.Error(err), zap.String("item", string(item))).Error("EventPublisher: Failed to publish event")
		}
	}
}
