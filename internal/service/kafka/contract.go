package kafka

import "context"

type MessageBroker interface {
	SendMessage(ctx context.Context, key, value []byte) error
	Close() error
}
