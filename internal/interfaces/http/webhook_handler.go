package httpinterface

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tdex-network/tdex-custody/internal/core/application"
	"github.com/tdex-network/tdex-custody/pkg/api"
)

func (h *handler) addWebhook(w http.ResponseWriter, r *http.Request) {
	var body api.AddWebhookRequest
	if err := readJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	hook, err := h.webhookSvc.AddWebhook(r.Context(), application.AddWebhookRequest{
		Event:    body.Event,
		Endpoint: body.Endpoint,
		Secret:   body.Secret,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWebhook(*hook))
}

func (h *handler) listWebhooks(w http.ResponseWriter, r *http.Request) {
	hooks, err := h.webhookSvc.ListWebhooks(r.Context(), r.URL.Query().Get("event"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWebhookList(hooks))
}

func (h *handler) removeWebhook(w http.ResponseWriter, r *http.Request) {
	if err := h.webhookSvc.RemoveWebhook(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
