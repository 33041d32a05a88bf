package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-ferry-admin/components/sales"
	"github.com/goliatone/go-ferry-admin/components/sales/commands"
	"github.com/goliatone/go-ferry-admin/components/sales/queries"
)

// Handlers exposes the sales grid over net/http.
type Handlers struct {
	API        Executor
	Translator sales.TranslationService
	Locale     string
}

// Routes mounts the handlers on mux under base (default "/admin/sales").
func (h *Handlers) Routes(mux *http.ServeMux, base string) {
	base = strings.TrimRight(base, "/")
	if base == "" {
		base = "/admin/sales"
	}
	mux.HandleFunc("GET "+base+"/_view", h.HandleView)
	mux.HandleFunc("POST "+base+"/load", h.HandleLoad)
	mux.HandleFunc("POST "+base+"/filter", h.HandleFilter)
	mux.HandleFunc("POST "+base+"/sort", h.HandleSort)
	mux.HandleFunc("POST "+base+"/select", h.HandleSelect)
	mux.HandleFunc("POST "+base+"/page", h.HandlePage)
	mux.HandleFunc("POST "+base+"/delete", h.HandleDelete)
	mux.HandleFunc("POST "+base, h.HandleCreate)
	mux.HandleFunc("PUT "+base+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleUpdate(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("GET "+base+"/summary", h.HandleSummary)
	mux.HandleFunc("POST "+base+"/report", h.HandleReport)
	mux.HandleFunc("GET "+base+"/download", h.HandleDownload)
}

func (h *Handlers) HandleView(w http.ResponseWriter, r *http.Request) {
	h.writeView(w, r, http.StatusOK)
}

func (h *Handlers) HandleLoad(w http.ResponseWriter, r *http.Request) {
	var payload commands.LoadSalesInput
	if !h.decode(w, r, &payload) {
		return
	}
	if err := h.API.Load(r.Context(), payload); err != nil {
		h.writeError(w, r, sales.OpLoad, err)
		return
	}
	h.writeView(w, r, http.StatusOK)
}

func (h *Handlers) HandleFilter(w http.ResponseWriter, r *http.Request) {
	var payload commands.SetFilterInput
	if !h.decode(w, r, &payload) {
		return
	}
	if err := h.API.Filter(r.Context(), payload); err != nil {
		h.writeError(w, r, sales.OpLoad, err)
		return
	}
	h.writeView(w, r, http.StatusOK)
}

func (h *Handlers) HandleSort(w http.ResponseWriter, r *http.Request) {
	var payload commands.SortInput
	if !h.decode(w, r, &payload) {
		return
	}
	if err := h.API.Sort(r.Context(), payload); err != nil {
		h.writeError(w, r, sales.OpLoad, err)
		return
	}
	h.writeView(w, r, http.StatusOK)
}

func (h *Handlers) HandleSelect(w http.ResponseWriter, r *http.Request) {
	var payload commands.SelectRowsInput
	if !h.decode(w, r, &payload) {
		return
	}
	if err := h.API.Select(r.Context(), payload); err != nil {
		h.writeError(w, r, sales.OpLoad, err)
		return
	}
	h.writeView(w, r, http.StatusOK)
}

func (h *Handlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	var payload commands.ChangePageInput
	if !h.decode(w, r, &payload) {
		return
	}
	if err := h.API.Page(r.Context(), payload); err != nil {
		h.writeError(w, r, sales.OpLoad, err)
		return
	}
	h.writeView(w, r, http.StatusOK)
}

func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var payload commands.DeleteSalesInput
	if !h.decode(w, r, &payload) {
		return
	}
	if err := h.API.Delete(r.Context(), payload); err != nil {
		h.writeError(w, r, sales.OpDelete, err)
		return
	}
	h.writeView(w, r, http.StatusOK)
}

func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var payload sales.SaleInput
	if !h.decode(w, r, &payload) {
		return
	}
	if err := h.API.Create(r.Context(), commands.SaveSaleInput{Sale: payload}); err != nil {
		h.writeError(w, r, sales.OpCreate, err)
		return
	}
	h.writeView(w, r, http.StatusCreated)
}

func (h *Handlers) HandleUpdate(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, r, sales.OpUpdate, fmt.Errorf("%w: sale id %q", sales.ErrInvalidInput, rawID))
		return
	}
	var payload sales.SaleInput
	if !h.decode(w, r, &payload) {
		return
	}
	if err := h.API.Update(r.Context(), commands.SaveSaleInput{ID: id, Sale: payload}); err != nil {
		h.writeError(w, r, sales.OpUpdate, err)
		return
	}
	h.writeView(w, r, http.StatusOK)
}

func (h *Handlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	input := queries.SummaryInput{Window: sales.Window(r.URL.Query().Get("window"))}
	summary, err := h.API.Summary(r.Context(), input)
	if err != nil {
		h.writeError(w, r, sales.OpLoad, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	var payload queries.ReportInput
	if !h.decode(w, r, &payload) {
		return
	}
	file, err := h.API.Report(r.Context(), payload)
	if err != nil {
		h.writeError(w, r, sales.OpDownload, err)
		return
	}
	WriteFile(w, file)
}

func (h *Handlers) HandleDownload(w http.ResponseWriter, r *http.Request) {
	file, err := h.API.Download(r.Context(), queries.DownloadInput{Format: r.URL.Query().Get("format")})
	if err != nil {
		h.writeError(w, r, sales.OpDownload, err)
		return
	}
	WriteFile(w, file)
}

// WriteFile streams a download with its file name.
func WriteFile(w http.ResponseWriter, file sales.File) {
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}

// decode reads the JSON body into target. An empty body leaves target zeroed.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if r.Body == nil {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(target); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, ErrorPayload{Error: err.Error(), Kind: string(sales.KindValidation)})
		return false
	}
	return true
}

func (h *Handlers) writeView(w http.ResponseWriter, r *http.Request, status int) {
	view, err := h.API.View(r.Context())
	if errors.Is(err, ErrNotConfigured) {
		w.WriteHeader(status)
		return
	}
	if err != nil {
		h.writeError(w, r, sales.OpLoad, err)
		return
	}
	writeJSON(w, status, view)
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, op sales.Operation, err error) {
	locale := ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if locale == "" {
		locale = h.Locale
	}
	writeJSON(w, StatusFor(err), NewErrorPayload(r.Context(), h.Translator, op, locale, err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
