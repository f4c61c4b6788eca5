package snapshot

import (
	"bytes"

	"github.com/inovacc/envsync/internal/encoding"
	"github.com/inovacc/envsync/internal/model"
)

// KeepGeneratedAt returns s with GeneratedAt taken from the previously written
// state file when that file describes the same organization and an identical
// environment list. Otherwise s is returned unchanged. A previous file that is
// missing or unreadable is ignored.
func KeepGeneratedAt(s model.Snapshot, previousState []byte) model.Snapshot {
	if len(previousState) == 0 {
		return s
	}

	prev, err := encoding.ParseJSON[model.Snapshot](previousState)
	if err != nil || prev.Organization != s.Organization || prev.GeneratedAt.IsZero() {
		return s
	}

	candidate := s
	candidate.GeneratedAt = prev.GeneratedAt

	rendered, err := RenderState(candidate)
	if err != nil || !bytes.Equal(rendered, previousState) {
		return s
	}

	return candidate
}
