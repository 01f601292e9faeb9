// Package telemetry provides world snapshots, event tracking, statistics and CSV output.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventAdd EventType = iota
	EventReject
	EventEatPlant
	EventEatMeat
	EventPrey
	EventClear
	EventSave
	EventRestore
)

func (t EventType) String() string {
	switch t {
	case EventAdd:
		return "add"
	case EventReject:
		return "reject"
	case EventEatPlant:
		return "eat_plant"
	case EventEatMeat:
		return "eat_meat"
	case EventPrey:
		return "prey"
	case EventClear:
		return "clear"
	case EventSave:
		return "save"
	case EventRestore:
		return "restore"
	default:
		return "unknown"
	}
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Tick     int64
	EntityID uint32

	// Optional fields depending on event type
	TargetID uint32  // prey for EventPrey
	Amount   float64 // weight gained by the eater
}

// NewEatEvent creates a plant or meat feeding event.
func NewEatEvent(tick int64, t EventType, eaterID uint32, gained float64) Event {
	return Event{
		Type:     t,
		Tick:     tick,
		EntityID: eaterID,
		Amount:   gained,
	}
}

// NewPreyEvent creates a predation event.
func NewPreyEvent(tick int64, predatorID, preyID uint32, gained float64) Event {
	return Event{
		Type:     EventPrey,
		Tick:     tick,
		EntityID: predatorID,
		TargetID: preyID,
		Amount:   gained,
	}
}
