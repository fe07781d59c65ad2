package mqtt

// Publisher sends a payload to an MQTT topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
}
