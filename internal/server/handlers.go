package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/0x0BSoD/newsHub/internal/fetcher"
	"github.com/0x0BSoD/newsHub/internal/logger"
	"github.com/0x0BSoD/newsHub/internal/model"
)

type fetchNewsResponse struct {
	Message string        `json:"message"`
	Stats   fetcher.Stats `json:"stats"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListFeeds(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.registry.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if feeds == nil {
		feeds = []model.Source{}
	}
	writeJSON(w, http.StatusOK, feeds)
}

func (s *Server) handleAddFeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, err)
		return
	}

	feed, err := s.registry.Add(r.Context(), req.URL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

func (s *Server) handleDeleteFeed(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Remove(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Feed deleted successfully"})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	news, err := s.news.Latest(r.Context(), s.newsLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	if news == nil {
		news = []model.Article{}
	}
	writeJSON(w, http.StatusOK, news)
}

func (s *Server) handleFetchNews(w http.ResponseWriter, r *http.Request) {
	stats, err := s.ingester.IngestAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fetchNewsResponse{
		Message: "News updated successfully",
		Stats:   stats,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("failed to encode response: %v", err)
	}
}

// writeError surfaces every failure as a 500 with a human readable message.
// The stats body of fetch-news is the only partial failure signal.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
