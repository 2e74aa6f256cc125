package service

import (
	"context"
	"sync"
	"time"
)

var fixedNow = time.Date(2026, 10, 19, 7, 30, 0, 0, time.Local)

const today = "2026-10-19"

func fixedClock() time.Time { return fixedNow }

const glassCityJSON = "```json\n" + `{
  "goals": [
    {"text": "Take a walk outside", "icon": "🚶", "why": "Flying suggested a need for freedom"},
    {"text": "Sketch the glass city", "icon": "🎨", "why": "Capture the imagery while it is fresh"},
    {"text": "Call an old friend", "icon": "📞", "why": "Connection grounds you"}
  ],
  "mood": "curious",
  "insight": "Your dreams keep returning to open spaces."
}` + "\n```"

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}
