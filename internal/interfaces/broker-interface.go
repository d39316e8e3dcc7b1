package interfaces

// ProducerHandler publishes a keyed message to the event queue.
type ProducerHandler interface {
	PublishMessage(key, value []byte) error
}

// ConsumerHandler processes one raw message read from the event queue.
type ConsumerHandler interface {
	HandleMessage(message string) error
}
