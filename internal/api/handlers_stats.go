package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/docrst/internal/doctree"
	"github.com/dgallion1/docrst/internal/parser"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"workers":     s.cfg.WorkerCount,
		"queue_depth": s.orchestrator.QueueDepth(),
		"queue_size":  s.cfg.MaxQueueSize,
		"jobs":        s.orchestrator.JobCount(),
		"conversions": s.orchestrator.Stats(),
	})
}

// handleFormats lists the accepted upload extensions and the node kinds
// the renderer understands.
func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	kinds := doctree.Kinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.String())
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"extensions": parser.Extensions(),
		"node_kinds": names,
	})
}
