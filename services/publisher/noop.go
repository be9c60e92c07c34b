package publisher

// NoopPublisher discards every record. It is wired in when publishing is
// disabled so the rest of the pipeline never has to care.
type NoopPublisher struct{}

var _ Publisher = (*NoopPublisher)(nil)

// NewNoopPublisher creates a publisher that does nothing
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// Publish discards the message
func (p *NoopPublisher) Publish(key string, message []byte) error {
	return nil
}

// TrimStreams does nothing
func (p *NoopPublisher) TrimStreams() error {
	return nil
}

// Close does nothing
func (p *NoopPublisher) Close() error {
	return nil
}
