package statemachine

import (
	"testing"

	"github.com/YashChoudhary13/The-MEX/models"
)

func TestCanTransition_StaffForwardPath(t *testing.T) {
	path := []models.OrderStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusReady,
		models.StatusDelivered,
	}
	for i := 0; i < len(path)-1; i++ {
		if err := CanTransition(path[i], path[i+1], "staff"); err != nil {
			t.Errorf("staff should move %s -> %s: %v", path[i], path[i+1], err)
		}
	}
}

func TestCanTransition_StaffCannotSkipStates(t *testing.T) {
	if err := CanTransition(models.StatusPending, models.StatusReady, "staff"); err == nil {
		t.Error("pending -> ready should not be allowed")
	}
	if err := CanTransition(models.StatusDelivered, models.StatusPending, "staff"); err == nil {
		t.Error("delivered is terminal; no transitions out")
	}
}

func TestCanTransition_CancellationRules(t *testing.T) {
	// Staff can cancel anything non-terminal
	for _, from := range []models.OrderStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusPreparing, models.StatusReady,
	} {
		if err := CanTransition(from, models.StatusCancelled, "staff"); err != nil {
			t.Errorf("staff should cancel from %s: %v", from, err)
		}
	}

	// Customers only before the kitchen starts
	if err := CanTransition(models.StatusConfirmed, models.StatusCancelled, "customer"); err != nil {
		t.Errorf("customer should cancel a confirmed order: %v", err)
	}
	if err := CanTransition(models.StatusPreparing, models.StatusCancelled, "customer"); err == nil {
		t.Error("customer must not cancel once preparing")
	}

	// Terminal states stay terminal
	if err := CanTransition(models.StatusCancelled, models.StatusPending, "staff"); err == nil {
		t.Error("cancelled is terminal; no transitions out")
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	nexts := ValidTransitionsFrom(models.StatusPending)
	want := map[models.OrderStatus]bool{models.StatusConfirmed: true, models.StatusCancelled: true}
	if len(nexts) != len(want) {
		t.Fatalf("ValidTransitionsFrom(pending) = %v", nexts)
	}
	for _, s := range nexts {
		if !want[s] {
			t.Errorf("unexpected next state %s from pending", s)
		}
	}

	if nexts := ValidTransitionsFrom(models.StatusDelivered); len(nexts) != 0 {
		t.Errorf("delivered should have no next states, got %v", nexts)
	}
}

func TestIsValid(t *testing.T) {
	for _, s := range []models.OrderStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusPreparing,
		models.StatusReady, models.StatusDelivered, models.StatusCancelled,
	} {
		if !IsValid(s) {
			t.Errorf("%s should be a valid status", s)
		}
	}
	if IsValid("shipped") {
		t.Error("'shipped' is not a valid status")
	}
	if IsValid("") {
		t.Error("empty status is not valid")
	}
}
