package server

import "sync"

// Hub fans messages out to the subscribers of a topic. Slow subscribers miss
// messages instead of blocking the publisher.
type Hub struct {
	mu     sync.Mutex
	topics map[string]map[chan []byte]struct{}
	closed map[string]bool
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[chan []byte]struct{}),
		closed: make(map[string]bool),
	}
}

// Subscribe returns a channel receiving the topic's messages and a function
// that ends the subscription. The channel is closed when the topic closes;
// subscribing to a closed topic returns a closed channel.
func (h *Hub) Subscribe(topic string) (<-chan []byte, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan []byte, 16)
	if h.closed[topic] {
		close(ch)
		return ch, func() {}
	}

	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[chan []byte]struct{})
		h.topics[topic] = subs
	}
	subs[ch] = struct{}{}

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.topics[topic][ch]; ok {
			delete(h.topics[topic], ch)
			close(ch)
		}
	}
}

// Publish sends msg to every current subscriber of topic
func (h *Hub) Publish(topic string, msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.topics[topic] {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Close ends the topic and closes every subscriber channel
func (h *Hub) Close(topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.topics[topic] {
		close(ch)
	}
	delete(h.topics, topic)
	h.closed[topic] = true
}

// Forget drops every trace of a closed topic so its name can be reused
func (h *Hub) Forget(topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.topics[topic] {
		close(ch)
	}
	delete(h.topics, topic)
	delete(h.closed, topic)
}

// Subscribers returns the number of subscribers of topic
func (h *Hub) Subscribers(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[topic])
}
