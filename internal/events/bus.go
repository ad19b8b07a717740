package events

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// EventHandlerError reports a subscriber that returned an error or panicked.
type EventHandlerError struct {
	Topic string
	Err   error
}

// Error returns a message naming the topic and the subscriber failure.
func (e *EventHandlerError) Error() string {
	return fmt.Sprintf("events: handler for %q: %v", e.Topic, e.Err)
}

// Unwrap returns the underlying subscriber error.
func (e *EventHandlerError) Unwrap() error {
	return e.Err
}

type subscription struct {
	id   uint64
	fn   func(any) error
	once bool
}

// Bus is a registry of per-topic subscribers. The zero value is not usable;
// create one with NewBus.
type Bus struct {
	// Logger receives subscriber failures. If nil, they are discarded.
	Logger io.Writer
	// OnError, if set, is called for every subscriber failure after logging.
	OnError func(*EventHandlerError)

	mu     sync.Mutex
	nextID uint64
	topics map[string][]subscription
}

// NewBus creates an empty bus that logs subscriber failures to logger.
func NewBus(logger io.Writer) *Bus {
	return &Bus{
		Logger: logger,
		topics: make(map[string][]subscription),
	}
}

// Subscribe registers fn for every payload published on topic. The returned
// function removes the subscription; calling it more than once is harmless.
func Subscribe[T any](b *Bus, topic Topic[T], fn func(T) error) func() {
	return b.add(topic.Name, wrap(fn), false)
}

// SubscribeOnce registers fn for the next payload published on topic only.
func SubscribeOnce[T any](b *Bus, topic Topic[T], fn func(T) error) func() {
	return b.add(topic.Name, wrap(fn), true)
}

// Publish delivers payload to every current subscriber of topic, in
// subscription order. Subscribers added or removed during delivery do not
// affect the ongoing round.
func Publish[T any](b *Bus, topic Topic[T], payload T) {
	b.publish(topic.Name, payload)
}

func wrap[T any](fn func(T) error) func(any) error {
	return func(v any) error {
		payload, ok := v.(T)
		if !ok {
			return fmt.Errorf("unexpected payload type %T", v)
		}
		return fn(payload)
	}
}

func (b *Bus) add(topic string, fn func(any) error, once bool) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.topics[topic] = append(b.topics[topic], subscription{id: id, fn: fn, once: once})

	return func() { b.remove(topic, id) }
}

func (b *Bus) remove(topic string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.topics[topic]
	for i, s := range subs {
		if s.id == id {
			b.topics[topic] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.topics[topic]) == 0 {
		delete(b.topics, topic)
	}
}

func (b *Bus) publish(topic string, payload any) {
	b.mu.Lock()
	subs := make([]subscription, len(b.topics[topic]))
	copy(subs, b.topics[topic])
	b.mu.Unlock()

	for _, s := range subs {
		if s.once {
			b.remove(topic, s.id)
		}
		if err := invoke(s.fn, payload); err != nil {
			b.report(&EventHandlerError{Topic: topic, Err: err})
		}
	}
}

// invoke calls fn, converting a panic into an error.
func invoke(fn func(any) error, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(payload)
}

func (b *Bus) report(err *EventHandlerError) {
	if b.Logger != nil {
		fmt.Fprintf(b.Logger, "%v\n", err)
	}
	if b.OnError != nil {
		b.OnError(err)
	}
}

// Clear removes every subscriber of topic.
func (b *Bus) Clear(topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.topics, topic)
}

// ClearAll removes every subscriber of every topic.
func (b *Bus) ClearAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.topics = make(map[string][]subscription)
}

// SubscriberCount returns the number of subscribers registered for topic.
func (b *Bus) SubscriberCount(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.topics[topic])
}

// HasSubscribers reports whether topic has at least one subscriber.
func (b *Bus) HasSubscribers(topic string) bool {
	return b.SubscriberCount(topic) > 0
}

// Topics returns the names of all topics with subscribers, sorted.
func (b *Bus) Topics() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, 0, len(b.topics))
	for name := range b.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
