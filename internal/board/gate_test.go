package board

import (
	"testing"

	"github.com/quadroqm/quadro/internal/models"
)

func TestGateFor(t *testing.T) {
	tests := []struct {
		name    string
		current models.Status
		next    models.Status
		want    Gate
	}{
		{"todo to in progress", models.StatusTodo, models.StatusInProgress, GateNone},
		{"in review back to todo", models.StatusInReview, models.StatusTodo, GateNone},
		{"todo to done", models.StatusTodo, models.StatusDone, GateRequireSolution},
		{"in review to done", models.StatusInReview, models.StatusDone, GateRequireSolution},
		{"done to todo", models.StatusDone, models.StatusTodo, GateConfirmReopen},
		{"done to in progress", models.StatusDone, models.StatusInProgress, GateConfirmReopen},
		{"same status", models.StatusTodo, models.StatusTodo, GateNone},
		{"done to done", models.StatusDone, models.StatusDone, GateNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GateFor(tt.current, tt.next); got != tt.want {
				t.Errorf("GateFor(%s, %s) = %v, want %v", tt.current, tt.next, got, tt.want)
			}
		})
	}
}
