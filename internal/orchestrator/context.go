package orchestrator

import (
	"github.com/healthbutler/swarm/internal/worker"
	"github.com/healthbutler/swarm/pkg/models"
)

// BuildContext assembles the input context for one worker call. Order is
// deterministic: the media reference (only when present and the target is
// media-capable), the caller's side context (unparsed), then one entry per
// prior successful output in execution order. Failed steps are excluded;
// nothing is reordered or deduplicated.
func BuildContext(target worker.Worker, mediaRef string, sideContext map[string]string, previous []models.WorkerOutput) []models.ContextEntry {
	var entries []models.ContextEntry

	if mediaRef != "" && target.MediaCapable() {
		entries = append(entries, models.MediaEntry(mediaRef))
	}

	if len(sideContext) > 0 {
		entries = append(entries, models.SideEntry(sideContext))
	}

	for _, out := range previous {
		if out.Failed {
			continue
		}
		entries = append(entries, models.PreviousResultEntry(out.Worker, out.Result))
	}

	return entries
}
