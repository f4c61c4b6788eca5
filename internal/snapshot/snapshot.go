// Package snapshot orders classified environments and renders them into the
// markdown report and the JSON state file.
package snapshot

import (
	"cmp"
	"slices"
	"time"

	"github.com/inovacc/envsync/internal/model"
)

// Build returns a Snapshot with environments sorted by category, status and
// name. The input slice is not modified.
func Build(envs []model.Environment, organization string, now time.Time) model.Snapshot {
	sorted := make([]model.Environment, len(envs))
	copy(sorted, envs)

	slices.SortStableFunc(sorted, compare)

	return model.Snapshot{
		GeneratedAt:  now.UTC(),
		Organization: organization,
		Environments: sorted,
	}
}

func compare(a, b model.Environment) int {
	return cmp.Or(
		cmp.Compare(a.Category, b.Category),
		cmp.Compare(a.Status, b.Status),
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.ID, b.ID),
	)
}
