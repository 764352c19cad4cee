package board

import "testing"

func TestResolveMovePayloadCanonical(t *testing.T) {
	raw := MovePayload{TaskID: 7, SubtaskID: 42}.Encode()
	got, ok := ResolveMovePayload(raw, "", nil, 7)
	if !ok {
		t.Fatal("expected payload to resolve")
	}
	if got.TaskID != 7 || got.SubtaskID != 42 {
		t.Fatalf("resolved %+v", got)
	}
}

func TestResolveMovePayloadCanonicalOverridesTracked(t *testing.T) {
	tracked := &MovePayload{TaskID: 1, SubtaskID: 1}
	raw := MovePayload{TaskID: 7, SubtaskID: 42}.Encode()
	got, _ := ResolveMovePayload(raw, "", tracked, 7)
	if got.SubtaskID != 42 {
		t.Fatalf("canonical payload should win, got %+v", got)
	}
}

func TestResolveMovePayloadTrackedFallback(t *testing.T) {
	tracked := &MovePayload{TaskID: 7, SubtaskID: 42}
	got, ok := ResolveMovePayload("", "", tracked, 7)
	if !ok || got.SubtaskID != 42 {
		t.Fatalf("expected tracked fallback, got %+v ok=%v", got, ok)
	}
}

func TestResolveMovePayloadPlainFallback(t *testing.T) {
	got, ok := ResolveMovePayload("not-json", "42", nil, 7)
	if !ok {
		t.Fatal("expected plain fallback to resolve")
	}
	if got.SubtaskID != 42 || got.TaskID != 7 {
		t.Fatalf("resolved %+v", got)
	}
}

func TestResolveMovePayloadNothingRecoverable(t *testing.T) {
	if _, ok := ResolveMovePayload("", "", nil, 7); ok {
		t.Fatal("expected resolution failure")
	}
}
