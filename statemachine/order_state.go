package statemachine

import (
	"errors"

	"github.com/YashChoudhary13/The-MEX/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string // "staff" or "customer"
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Staff move the order along the normal path
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: "staff"},
	{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: "staff"},
	{From: models.StatusPreparing, To: models.StatusReady, Actor: "staff"},
	{From: models.StatusReady, To: models.StatusDelivered, Actor: "staff"},
	// Staff can cancel any non-terminal order
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "staff"},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: "staff"},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: "staff"},
	{From: models.StatusReady, To: models.StatusCancelled, Actor: "staff"},
	// Customers can only cancel before the kitchen starts
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "customer"},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: "customer"},
}

var allStatuses = []models.OrderStatus{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusPreparing,
	models.StatusReady,
	models.StatusDelivered,
	models.StatusCancelled,
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// IsValid reports whether a status string is part of the closed enumeration.
func IsValid(status models.OrderStatus) bool {
	for _, s := range allStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
