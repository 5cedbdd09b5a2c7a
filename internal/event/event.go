// internal/event/event.go
package event

// EventType names an event.
type EventType string

// Event is what listeners receive.
type Event struct {
	Type EventType
	Data interface{} // payload, see types.go for what each type carries
}

// Listener is the interface for event subscribers.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(event Event)

func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

type subscription struct {
	id       int
	listener Listener
}

// Dispatcher delivers events synchronously, in registration order.
type Dispatcher struct {
	listeners map[EventType][]subscription
	nextID    int
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]subscription),
	}
}

// Subscribe registers a listener for an event type.
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.subscribe(eventType, listener)
}

// On registers a handler function and returns a function that removes it again.
func (d *Dispatcher) On(eventType EventType, handler func(Event)) (cancel func()) {
	id := d.subscribe(eventType, ListenerFunc(handler))
	return func() {
		d.remove(eventType, func(s subscription) bool { return s.id == id })
	}
}

// Unsubscribe removes the first registration of listener. Handlers added with On
// are removed through the function On returned.
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	if _, isFunc := listener.(ListenerFunc); isFunc {
		return
	}
	d.remove(eventType, func(s subscription) bool {
		if _, isFunc := s.listener.(ListenerFunc); isFunc {
			return false
		}
		return s.listener == listener
	})
}

// Dispatch sends the event to every listener subscribed when the dispatch started.
func (d *Dispatcher) Dispatch(event Event) {
	subs := d.listeners[event.Type]
	if len(subs) == 0 {
		return
	}
	snapshot := append([]subscription(nil), subs...)
	for _, s := range snapshot {
		s.listener.OnEvent(event)
	}
}

// Count returns the number of listeners for an event type.
func (d *Dispatcher) Count(eventType EventType) int {
	return len(d.listeners[eventType])
}

func (d *Dispatcher) subscribe(eventType EventType, listener Listener) int {
	d.nextID++
	d.listeners[eventType] = append(d.listeners[eventType], subscription{id: d.nextID, listener: listener})
	return d.nextID
}

func (d *Dispatcher) remove(eventType EventType, match func(subscription) bool) {
	subs := d.listeners[eventType]
	for i, s := range subs {
		if match(s) {
			d.listeners[eventType] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}
