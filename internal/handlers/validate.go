package handlers

import (
	"mime"
	"net/http"
	"strings"

	"gigBoard/internal/gigstatus"
)

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

// statusFilter читает ?status=. Пустой параметр - без фильтра.
func statusFilter(r *http.Request) (*gigstatus.Status, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("status"))
	if raw == "" {
		return nil, nil
	}
	status, err := gigstatus.ParseStatus(raw)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
