package event

import "strings"

var typeNames = [eventTypeCount]string{
	EventNone:              "EventNone",
	EventItemSpawned:       "EventItemSpawned",
	EventItemGrabbed:       "EventItemGrabbed",
	EventItemResolved:      "EventItemResolved",
	EventItemWithdrawn:     "EventItemWithdrawn",
	EventRoundStarted:      "EventRoundStarted",
	EventRoundCleared:      "EventRoundCleared",
	EventDifficultyChanged: "EventDifficultyChanged",
	EventSessionComplete:   "EventSessionComplete",
	EventPoolShortage:      "EventPoolShortage",
	EventSessionRestart:    "EventSessionRestart",
	EventGameplayStart:     "EventGameplayStart",
	EventCrossfadeStarted:  "EventCrossfadeStarted",
	EventCrossfadeComplete: "EventCrossfadeComplete",
	EventFillTriggered:     "EventFillTriggered",
}

func (et EventType) String() string {
	if et >= 0 && et < eventTypeCount {
		return typeNames[et]
	}
	return "EventUnknown"
}

// GetEventType returns the EventType for a given name, with or without the "Event" prefix
func GetEventType(name string) (EventType, bool) {
	for i, n := range typeNames {
		if strings.EqualFold(n, name) || strings.EqualFold(strings.TrimPrefix(n, "Event"), name) {
			return EventType(i), true
		}
	}
	return EventNone, false
}
