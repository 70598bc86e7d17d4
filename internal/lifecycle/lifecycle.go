// Package lifecycle holds the status transition table for user missions.
// Stores turn the table into guarded UPDATE statements so that the check
// and the write happen in one round trip.
package lifecycle

import (
	"errors"
	"fmt"

	"culture-passport/internal/models"
)

// ErrInvalidTransition is returned when the current status does not allow
// the requested event. Callers report it like a missing row.
var ErrInvalidTransition = errors.New("not found or not in correct state")

type Event string

const (
	Assign  Event = "assign"
	Start   Event = "start"
	Submit  Event = "submit"
	Approve Event = "approve"
	Reject  Event = "reject"
	Cancel  Event = "cancel"
)

type rule struct {
	from []models.MissionStatus
	to   models.MissionStatus
}

var rules = map[Event]rule{
	Assign: {to: models.StatusNotStarted},
	Start: {
		from: []models.MissionStatus{models.StatusNotStarted},
		to:   models.StatusInProgress,
	},
	Submit: {
		from: []models.MissionStatus{models.StatusInProgress, models.StatusRejected},
		to:   models.StatusSubmitted,
	},
	Approve: {
		from: []models.MissionStatus{models.StatusSubmitted},
		to:   models.StatusApproved,
	},
	Reject: {
		from: []models.MissionStatus{models.StatusSubmitted},
		to:   models.StatusRejected,
	},
	// triggered by soft-deleting the mission
	Cancel: {
		from: []models.MissionStatus{models.StatusNotStarted, models.StatusInProgress},
		to:   models.StatusCancelled,
	},
}

// Sources lists the statuses ev may be applied to. Assign has none: it
// creates the row.
func Sources(ev Event) []models.MissionStatus {
	r, ok := rules[ev]
	if !ok {
		return nil
	}
	out := make([]models.MissionStatus, len(r.from))
	copy(out, r.from)
	return out
}

// Target is the status a successful ev leads to.
func Target(ev Event) models.MissionStatus {
	return rules[ev].to
}

func Can(from models.MissionStatus, ev Event) bool {
	r, ok := rules[ev]
	if !ok {
		return false
	}
	for _, s := range r.from {
		if s == from {
			return true
		}
	}
	return false
}

// Next validates ev against from and returns the resulting status.
func Next(from models.MissionStatus, ev Event) (models.MissionStatus, error) {
	if _, ok := rules[ev]; !ok {
		return "", fmt.Errorf("unknown event %q", ev)
	}
	if !Can(from, ev) {
		return from, ErrInvalidTransition
	}
	return rules[ev].to, nil
}

// ReviewEvent maps a review decision onto its event.
func ReviewEvent(approved bool) Event {
	if approved {
		return Approve
	}
	return Reject
}
