package game

type EventType int

const (
	EventBlockAdded EventType = iota
	EventBlockEvicted
	EventWallHit
	EventEnemyHit
	EventEnemyRemoved
	EventPaused
	EventResumed
	EventHalted
)

type Event struct {
	Type  EventType
	X, Y  float64
	Data  int    // Generic payload (e.g. block definition index).
	Block *Block // Set for block events.
	Enemy *Enemy // Set for enemy events.
}

type EventHandler func(Event)

// EventBus is a synchronous, single-threaded fan-out. Handlers run inside
// the tick that emitted the event.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
