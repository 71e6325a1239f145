package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"ms-structured-data/internal/auth"
	"ms-structured-data/internal/config"
	"ms-structured-data/internal/models"
	"ms-structured-data/internal/render"
	"ms-structured-data/internal/services"
	"ms-structured-data/internal/structured"
)

type StructuredDataHandler struct {
	renderer *render.Renderer
	events   *services.EventService
	clock    structured.Clock
	cfg      config.Config
}

func NewStructuredDataHandler(renderer *render.Renderer, events *services.EventService, clock structured.Clock, cfg config.Config) *StructuredDataHandler {
	return &StructuredDataHandler{
		renderer: renderer,
		events:   events,
		clock:    clock,
		cfg:      cfg,
	}
}

func (h *StructuredDataHandler) locale(r *http.Request) string {
	if locale := r.URL.Query().Get("locale"); locale != "" {
		return locale
	}
	if len(h.cfg.SupportedLocales) > 0 {
		return h.cfg.SupportedLocales[0]
	}
	return "en"
}

// GetJSONLD handles GET /api/structured-data/v1/events/{eventId}/jsonld
//
// The response body is the complete script tag for page-head injection, or
// empty when the feature is disabled, the page is a payment page, or the
// render failed. This path never returns an error to the caller.
func (h *StructuredDataHandler) GetJSONLD(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventID := vars["eventId"]

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	event, err := h.events.GetEvent(eventID)
	if err != nil {
		log.Printf("Error loading event %s for public render: %v", eventID, err)
		return
	}

	paymentPage := r.Header.Get("X-Page-Context") == "payment"
	tag := h.renderer.RenderScriptTag(r.Context(), event, h.locale(r), paymentPage)
	fmt.Fprint(w, tag)
}

// Preview handles GET /api/structured-data/v1/events/{eventId}/preview
//
// Unlike the public path, preview failures surface to the admin with
// diagnostic detail. ?refresh=1 drops the cached payload first.
func (h *StructuredDataHandler) Preview(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventID := vars["eventId"]
	locale := h.locale(r)

	event, err := h.events.GetEvent(eventID)
	if err != nil {
		log.Printf("Error loading event %s for preview: %v", eventID, err)
		http.Error(w, fmt.Sprintf("Preview generation failed: %v", err), http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("refresh") != "" {
		if err := h.renderer.InvalidateCache(r.Context(), eventID, locale); err != nil {
			log.Printf("Error invalidating cache for preview refresh of event %s: %v", eventID, err)
		}
	}

	doc, warnings, err := h.renderer.BuildDocument(event)
	if err != nil {
		log.Printf("Error building preview for event %s: %v", eventID, err)
		http.Error(w, fmt.Sprintf("Preview generation failed: %v", err), http.StatusInternalServerError)
		return
	}

	payload, err := render.Serialize(doc, true)
	if err != nil {
		log.Printf("Error serializing preview for event %s: %v", eventID, err)
		http.Error(w, fmt.Sprintf("Preview generation failed: %v", err), http.StatusInternalServerError)
		return
	}

	if warnings == nil {
		warnings = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"document":       doc,
		"payload":        payload,
		"warnings":       warnings,
		"suggestedPrice": event.MinActiveItemPrice(),
	})
}

// ListItems handles GET /api/structured-data/v1/events/{eventId}/items
//
// Returns the item/variation rows the override UI needs. Failures degrade to
// an empty list; the UI can always render.
func (h *StructuredDataHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventID := vars["eventId"]

	entries := []models.ActiveItemEntry{}
	event, err := h.events.GetEvent(eventID)
	if err != nil {
		log.Printf("Error loading event %s for item listing: %v", eventID, err)
	} else {
		entries = event.ActiveItemEntries(h.clock.Now())
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items": entries,
	})
}

// Invalidate handles POST /api/structured-data/v1/events/{eventId}/invalidate
func (h *StructuredDataHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventID := vars["eventId"]

	userID, err := auth.GetUserIDFromContext(r.Context())
	if err != nil {
		userID = "unknown"
	}
	log.Printf("Cache invalidation for event %s requested by user %s", eventID, userID)

	h.renderer.InvalidateAllLocales(r.Context(), eventID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Cached structured data invalidated",
		"eventId": eventID,
	})
}
