// Package runplan computes which nodes a manual run has to execute and which prior results
// it can carry over.
package runplan

import (
	"github.com/dukex/operion-runner/pkg/models"
)

// ParentLookup is the read-only graph view the consolidator walks.
type ParentLookup interface {
	ParentNodes(name string) []string
	IsDisabled(name string) bool
}

// Consolidate computes the start nodes and the reusable run data for a run whose target has
// the given direct parents.
//
// Walking from the direct parents towards the triggers, a node restarts when its first
// recorded result is a failure or when it has neither a result nor pinned data. Failure wins
// over pinned data. Satisfied nodes are looked through to their own parents, and so are
// disabled nodes, which never restart themselves.
//
// RunData is nil when no visited node could be reused. Otherwise it is the input map with the
// start nodes' entries removed; when there is nothing to remove the input map is returned as is.
func Consolidate(directParents []string, runData models.RunData, pinData models.PinData, g ParentLookup) models.StartPlan {
	startNodes := make([]string, 0, len(directParents))

	if len(runData) == 0 {
		seen := make(map[string]struct{}, len(directParents))

		for _, name := range directParents {
			if _, dup := seen[name]; dup || g.IsDisabled(name) {
				continue
			}

			seen[name] = struct{}{}
			startNodes = append(startNodes, name)
		}

		return models.StartPlan{StartNodeNames: startNodes}
	}

	visited := make(map[string]struct{}, len(directParents))
	queue := make([]string, 0, len(directParents))
	reused := false

	enqueue := func(names []string) {
		for _, name := range names {
			if _, ok := visited[name]; ok {
				continue
			}

			visited[name] = struct{}{}
			queue = append(queue, name)
		}
	}

	enqueue(directParents)

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		if g.IsDisabled(name) {
			enqueue(g.ParentNodes(name))

			continue
		}

		if mustRestart(name, runData, pinData) {
			startNodes = append(startNodes, name)

			continue
		}

		reused = true

		enqueue(g.ParentNodes(name))
	}

	if !reused {
		return models.StartPlan{StartNodeNames: startNodes}
	}

	return models.StartPlan{
		StartNodeNames: startNodes,
		RunData:        withoutNodes(runData, startNodes),
	}
}

func mustRestart(name string, runData models.RunData, pinData models.PinData) bool {
	first, hasResult := runData.First(name)
	if hasResult && first.Failed() {
		return true
	}

	return !hasResult && !pinData.Has(name)
}

func withoutNodes(runData models.RunData, names []string) models.RunData {
	drop := false

	for _, name := range names {
		if _, ok := runData[name]; ok {
			drop = true

			break
		}
	}

	if !drop {
		return runData
	}

	excluded := make(map[string]struct{}, len(names))
	for _, name := range names {
		excluded[name] = struct{}{}
	}

	filtered := make(models.RunData, len(runData))

	for name, results := range runData {
		if _, ok := excluded[name]; ok {
			continue
		}

		filtered[name] = results
	}

	if len(filtered) == 0 {
		return nil
	}

	return filtered
}
