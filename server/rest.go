package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/umputun/newsread/pkg/domain"
)

// maxReadWait caps the wait parameter of the articles endpoint
const maxReadWait = time.Minute

// categoryInfo is the api view of a category
type categoryInfo struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Title  string `json:"title"`
	Synced bool   `json:"synced"`
}

// summaryResponse carries a summary, null while there is none
type summaryResponse struct {
	URL     string  `json:"url"`
	Summary *string `json:"summary"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	active := []string{}
	for _, cat := range s.coord.Active() {
		active = append(active, cat.String())
	}
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"online":  s.coord.Online(),
		"active":  active,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// categoriesHandler lists all categories
func (s *Server) categoriesHandler(w http.ResponseWriter, r *http.Request) {
	res := []categoryInfo{}
	for _, cat := range domain.Categories() {
		res = append(res, categoryInfo{ID: cat.ID(), Name: cat.String(), Title: cat.Title(), Synced: s.coord.Synced(cat)})
	}
	renderJSON(w, r, http.StatusOK, res)
}

// articlesHandler returns the category snapshot. While the category is loading it waits
// up to the wait parameter for the sync and then returns whatever it has.
func (s *Server) articlesHandler(w http.ResponseWriter, r *http.Request) {
	cat, err := domain.ParseCategory(r.PathValue("category"))
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	wait := s.config.GetReadWait()
	if v := r.URL.Query().Get("wait"); v != "" {
		if wait, err = time.ParseDuration(v); err != nil || wait < 0 {
			renderError(w, r, fmt.Errorf("invalid wait %q", v), http.StatusBadRequest)
			return
		}
	}
	wait = min(wait, maxReadWait)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	snapshots := s.coord.ObserveCategory(ctx, cat)
	timeout := time.NewTimer(wait)
	defer timeout.Stop()

	var last *domain.Snapshot
	for {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				if last != nil {
					renderJSON(w, r, http.StatusOK, last)
					return
				}
				renderError(w, r, fmt.Errorf("%s is not available", cat), http.StatusServiceUnavailable)
				return
			}
			if !snap.Loading {
				renderJSON(w, r, http.StatusOK, snap)
				return
			}
			last = &snap
		case <-timeout.C:
			if last == nil {
				renderError(w, r, fmt.Errorf("%s is not available yet", cat), http.StatusServiceUnavailable)
				return
			}
			renderJSON(w, r, http.StatusOK, last)
			return
		}
	}
}

// streamHandler sends category snapshots as server-sent events while the client is connected
func (s *Server) streamHandler(w http.ResponseWriter, r *http.Request) {
	cat, err := domain.ParseCategory(r.PathValue("category"))
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		log.Printf("[DEBUG] can't lift write deadline for stream: %v", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		log.Printf("[WARN] streaming not supported: %v", err)
		return
	}

	for snap := range s.coord.ObserveCategory(r.Context(), cat) {
		data, err := json.Marshal(snap)
		if err != nil {
			log.Printf("[ERROR] can't encode snapshot: %v", err)
			return
		}
		if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data); err != nil {
			log.Printf("[DEBUG] stream of %s closed: %v", cat, err)
			return
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

// refreshHandler schedules a new sync of the category
func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	cat, err := domain.ParseCategory(r.PathValue("category"))
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	s.coord.Refresh(cat)
	renderJSON(w, r, http.StatusAccepted, map[string]string{"status": "refresh scheduled", "category": cat.String()})
}

// getSummaryHandler returns the stored summary of an article url
func (s *Server) getSummaryHandler(w http.ResponseWriter, r *http.Request) {
	articleURL := r.URL.Query().Get("url")
	if articleURL == "" {
		renderError(w, r, fmt.Errorf("url is required"), http.StatusBadRequest)
		return
	}

	summary, err := s.currentSummary(r.Context(), domain.Article{URL: articleURL})
	if err != nil {
		renderError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	renderJSON(w, r, http.StatusOK, summaryResponse{URL: articleURL, Summary: summary})
}

// summarizeHandler requests a summary for the posted article and returns it
func (s *Server) summarizeHandler(w http.ResponseWriter, r *http.Request) {
	var article domain.Article
	if err := json.NewDecoder(r.Body).Decode(&article); err != nil {
		renderError(w, r, fmt.Errorf("invalid article: %w", err), http.StatusBadRequest)
		return
	}
	if article.URL == "" {
		renderError(w, r, fmt.Errorf("article url is required"), http.StatusBadRequest)
		return
	}

	if err := s.coord.Summarize(r.Context(), article); err != nil {
		log.Printf("[WARN] summarize %s: %v", article.URL, err)
		renderError(w, r, err, http.StatusBadGateway)
		return
	}

	summary, err := s.currentSummary(r.Context(), article)
	if err != nil {
		renderError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	renderJSON(w, r, http.StatusOK, summaryResponse{URL: article.URL, Summary: summary})
}

// currentSummary reads the first value of the summary stream, nil if there is no summary
func (s *Server) currentSummary(ctx context.Context, article domain.Article) (*string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	select {
	case summary, ok := <-s.coord.WatchSummary(ctx, article):
		if !ok {
			return nil, fmt.Errorf("summary of %s is not available", article.URL)
		}
		if summary == "" {
			return nil, nil
		}
		return &summary, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// downloadHandler queues a media file for download
func (s *Server) downloadHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	if !isHTTPURL(req.URL) {
		renderError(w, r, fmt.Errorf("invalid media url %q", req.URL), http.StatusBadRequest)
		return
	}

	if !s.coord.DownloadMedia(req.URL) {
		renderError(w, r, fmt.Errorf("download queue is full"), http.StatusServiceUnavailable)
		return
	}
	renderJSON(w, r, http.StatusAccepted, map[string]string{"status": "download queued", "url": req.URL})
}

// mediaHandler lists media files found on an article page
func (s *Server) mediaHandler(w http.ResponseWriter, r *http.Request) {
	pageURL := r.URL.Query().Get("url")
	if !isHTTPURL(pageURL) {
		renderError(w, r, fmt.Errorf("invalid page url %q", pageURL), http.StatusBadRequest)
		return
	}

	media, err := s.media.Scan(r.Context(), pageURL)
	if err != nil {
		log.Printf("[WARN] scan %s for media: %v", pageURL, err)
		renderError(w, r, err, http.StatusBadGateway)
		return
	}
	if media == nil {
		media = []string{}
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"url": pageURL, "media": media})
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
