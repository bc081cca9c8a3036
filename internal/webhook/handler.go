package webhook

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/russellteter/sc-election-map-2026-sub002/internal/ingestion"
)

// Pipeline is the intake job surface the handler drives. Declared here
// so handler tests can run against a fake.
type Pipeline interface {
	CreateJob(ctx context.Context, chamberSlug, trigger string) (string, error)
	ProcessJob(ctx context.Context, jobID string, req ingestion.IngestRequest) error
}

// Handler processes incoming pipeline webhook events.
type Handler struct {
	webhookSecret []byte
	pipeline      Pipeline
}

// NewHandler creates a new webhook Handler.
func NewHandler(webhookSecret []byte, pipeline Pipeline) *Handler {
	return &Handler{
		webhookSecret: webhookSecret,
		pipeline:      pipeline,
	}
}

// ServeHTTP handles incoming webhook requests. Deliveries are
// acknowledged as soon as the job row exists; the intake itself runs in
// the background and lands its outcome on the job record.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 10<<20)) // 10 MB limit
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("X-Scmap-Signature-256")
	if err := VerifySignature(body, signature, h.webhookSecret); err != nil {
		log.Printf("webhook signature verification failed: %v", err)
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	eventType := r.Header.Get("X-Scmap-Event")
	if eventType == "" {
		http.Error(w, "missing X-Scmap-Event header", http.StatusBadRequest)
		return
	}

	event, err := ParseEvent(eventType, body)
	if err != nil {
		log.Printf("webhook parse error for %s: %v", eventType, err)
		http.Error(w, "unsupported event", http.StatusBadRequest)
		return
	}

	req := ingestion.IngestRequest{
		ChamberSlug: event.Chamber,
		ChamberName: event.Name,
		Cycle:       event.Cycle,
		Source:      event.Source,
		Dataset:     event.Dataset,
	}
	if err := ingestion.ValidateRequest(req); err != nil {
		log.Printf("webhook payload invalid for %s: %v", eventType, err)
		http.Error(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	jobID, err := h.pipeline.CreateJob(r.Context(), event.Chamber, eventType)
	if err != nil {
		log.Printf("create intake job for %s: %v", event.Chamber, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// The request context dies with the response; the job runs on its own.
	go func() {
		if err := h.pipeline.ProcessJob(context.Background(), jobID, req); err != nil {
			log.Printf("process intake job %s: %v", jobID, err)
		}
	}()

	log.Printf("enqueued intake job %s for chamber %s (%s)", jobID, event.Chamber, eventType)
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "accepted", "job_id": jobID})
}
