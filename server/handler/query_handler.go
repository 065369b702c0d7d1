package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bikeshare/aggregator"
	"bikeshare/queryhandlers"
	"bikeshare/queryhandlers/factory"
)

// ViewResponse body of a view
// + View: name of the view
// + Selection: applied filters, "all" if none
// + Count: amount of trips the view was computed over
// + Data: content of the view
type ViewResponse struct {
	View      string `json:"view"`
	Selection string `json:"selection"`
	Count     int    `json:"count"`
	Data      any    `json:"data"`
}

// ListTables handles GET /v1/tables
func (h *APIHandler) ListTables(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(aggregator.TableNames()))
	for _, name := range aggregator.TableNames() {
		names = append(names, name.String())
	}
	WriteJSON(w, http.StatusOK, TableList{SessionID: h.store.Info().ID, Tables: names})
}

// GetTable handles GET /v1/tables/{name}. Tables are always computed over the whole
// cleaned dataset, filters do not apply
func (h *APIHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	name, err := aggregator.ParseTableName(chi.URLParam(r, "name"))
	if err != nil {
		WriteError(w, err)
		return
	}

	data, err := h.store.Tables().Get(name)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, TableResponse{
		SessionID: h.store.Info().ID,
		Table:     name.String(),
		Data:      data,
	})
}

// ViewHandler serves the views over the filtered trips
type ViewHandler struct {
	store   Store
	options queryhandlers.Options
}

func NewViewHandler(store Store, options queryhandlers.Options) *ViewHandler {
	return &ViewHandler{
		store:   store,
		options: options.WithDefaults(),
	}
}

// ListViews handles GET /v1/views
func (vh *ViewHandler) ListViews(w http.ResponseWriter, _ *http.Request) {
	kinds := queryhandlers.Kinds()
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, kind.String())
	}
	WriteJSON(w, http.StatusOK, names)
}

// GetView handles GET /v1/views/{kind}
func (vh *ViewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	kind, err := queryhandlers.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		WriteError(w, err)
		return
	}

	selection, err := SelectionFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	queryHandler, err := factory.NewQueryHandler(kind, vh.options)
	if err != nil {
		WriteError(w, err)
		return
	}

	trips := vh.store.Filtered(selection)
	data, err := queryHandler.GenerateResponse(trips)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, ViewResponse{
		View:      kind.String(),
		Selection: selection.String(),
		Count:     len(trips),
		Data:      data,
	})
}
