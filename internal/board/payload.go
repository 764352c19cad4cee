package board

import (
	"encoding/json"
	"strconv"
)

// MovePayload identifies the subtask being dragged and the task that owns
// it. The canonical encoding is JSON; a plain numeric id acts as a fallback
// channel in case the canonical one is stripped in transit.
type MovePayload struct {
	TaskID    int `json:"taskId"`
	SubtaskID int `json:"subtaskId"`
}

// Encode returns the canonical JSON encoding.
func (p MovePayload) Encode() string {
	data, _ := json.Marshal(p)
	return string(data)
}

// EncodePlain returns the fallback encoding: the bare subtask id.
func (p MovePayload) EncodePlain() string {
	return strconv.Itoa(p.SubtaskID)
}

// ResolveMovePayload recovers the drag source from whatever survived
// transit: the canonical JSON payload, then the locally tracked in-flight
// drag, then the plain-id fallback with the task inferred from the drop
// container. Returns false when no subtask identity can be recovered.
func ResolveMovePayload(raw, plain string, current *MovePayload, containerTaskID int) (MovePayload, bool) {
	var resolved MovePayload
	if current != nil {
		resolved = *current
	}

	if raw != "" {
		var parsed MovePayload
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil &&
			parsed.TaskID != 0 && parsed.SubtaskID != 0 {
			resolved = parsed
		}
	}

	if resolved.SubtaskID == 0 && plain != "" {
		if id, err := strconv.Atoi(plain); err == nil {
			resolved.SubtaskID = id
		}
	}

	if resolved.TaskID == 0 {
		resolved.TaskID = containerTaskID
	}

	if resolved.SubtaskID == 0 || resolved.TaskID == 0 {
		return MovePayload{}, false
	}
	return resolved, true
}
