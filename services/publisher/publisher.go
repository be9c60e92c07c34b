package publisher

// Publisher emits scraped doctor records to downstream consumers
type Publisher interface {
	// Publish appends one record payload to a stream, keyed by the
	// record's registration number
	Publish(key string, message []byte) error

	// TrimStreams trims all streams to the configured maximum length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}
