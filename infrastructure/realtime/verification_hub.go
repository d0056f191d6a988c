package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gin-gonic/gin"
	"media-catalog/domain/model"
)

// VerificationEvent is the SSE payload for one record's verification outcome.
type VerificationEvent struct {
	Type         string `json:"type"`
	VideoID      string `json:"video_id"`
	IsPublic     bool   `json:"is_public"`
	IsRestricted bool   `json:"is_restricted"`
	Status       string `json:"status"`
	Message      string `json:"message"`
}

// Hub fans verification results out to connected SSE subscribers as the
// batch runner persists them.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan VerificationEvent]struct{}
}

func NewVerificationHub() *Hub {
	return &Hub{subs: make(map[chan VerificationEvent]struct{})}
}

// Serve registers an SSE stream on the calling request.
func (h *Hub) Serve(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // disable nginx buffering

	ch := make(chan VerificationEvent, 8)
	h.addSubscriber(ch)
	defer h.removeSubscriber(ch)

	// Initial comment to keep connection open
	_, _ = c.Writer.Write([]byte(":ok\n\n"))
	c.Writer.Flush()

	for {
		select {
		case evt, ok := <-ch:
			if !ok {
				return
			}
			data, _ := json.Marshal(evt)
			_, _ = c.Writer.Write([]byte("event: verification_status\n"))
			_, _ = c.Writer.Write([]byte("data: "))
			_, _ = c.Writer.Write(data)
			_, _ = c.Writer.Write([]byte("\n\n"))
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

func (h *Hub) addSubscriber(ch chan VerificationEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[ch] = struct{}{}
}

func (h *Hub) removeSubscriber(ch chan VerificationEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}

// BroadcastVerification pushes one record's result to every subscriber.
func (h *Hub) BroadcastVerification(videoID string, result model.VerificationResult) {
	evt := VerificationEvent{
		Type:         "verification_status",
		VideoID:      videoID,
		IsPublic:     result.IsPublic,
		IsRestricted: result.IsRestricted,
		Status:       model.CompositeStatus(result.IsPublic, result.IsRestricted),
		Message:      result.Message,
	}
	h.mu.RLock()
	for ch := range h.subs {
		select { // non-blocking
		case ch <- evt:
		default:
		}
	}
	h.mu.RUnlock()
}
