package models_test

import (
	"testing"

	"ms-catering/internal/models"
)

func TestStatusForwardPath(t *testing.T) {
	steps := []models.OrderStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusDispatched,
		models.StatusCompleted,
	}

	for i := 0; i < len(steps)-1; i++ {
		next, ok := steps[i].Next()
		if !ok {
			t.Fatalf("Expected %q to have a successor", steps[i])
		}
		if next != steps[i+1] {
			t.Errorf("Expected successor of %q to be %q, got %q", steps[i], steps[i+1], next)
		}
	}
}

func TestTerminalStatusesHaveNoSuccessor(t *testing.T) {
	for _, status := range []models.OrderStatus{models.StatusCompleted, models.StatusCancelled} {
		if _, ok := status.Next(); ok {
			t.Errorf("Expected %q to have no successor", status)
		}
		if !status.Terminal() {
			t.Errorf("Expected %q to be terminal", status)
		}
	}
}

func TestCancellableStatuses(t *testing.T) {
	cancellable := map[models.OrderStatus]bool{
		models.StatusPending:    true,
		models.StatusConfirmed:  true,
		models.StatusPreparing:  false,
		models.StatusDispatched: false,
		models.StatusCompleted:  false,
		models.StatusCancelled:  false,
	}

	for status, want := range cancellable {
		if got := status.Cancellable(); got != want {
			t.Errorf("Expected Cancellable(%q) to be %t, got %t", status, want, got)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	for _, raw := range []string{"order pending", "confirmed", "preparing", "dispatched", "completed", "cancelled"} {
		status, err := models.ParseOrderStatus(raw)
		if err != nil {
			t.Errorf("Expected %q to parse, got error: %v", raw, err)
		}
		if string(status) != raw {
			t.Errorf("Expected parsed status %q, got %q", raw, status)
		}
	}

	for _, raw := range []string{"", "pending", "Confirmed", "shipped", "DONE"} {
		if _, err := models.ParseOrderStatus(raw); err == nil {
			t.Errorf("Expected %q to be rejected", raw)
		}
	}
}
