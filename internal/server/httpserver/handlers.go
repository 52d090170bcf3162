package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/toomanytabs/internal/logging"
	"github.com/dmitrijs2005/toomanytabs/internal/server/models"
	"github.com/dmitrijs2005/toomanytabs/internal/server/views"
	"github.com/go-chi/chi/v5"
)

const defaultMaxBodyBytes = 1 << 20

type handler struct {
	st *State
}

func entryURL(id int64) string {
	return fmt.Sprintf("/entries/%d", id)
}

// entryID parses the {id} path parameter; it must be a positive integer.
func entryID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &formError{msg: fmt.Sprintf("bad entry id %q", raw)}
	}
	return id, nil
}

func (h *handler) maxBody() int64 {
	if h.st.MaxBodyBytes > 0 {
		return h.st.MaxBodyBytes
	}
	return defaultMaxBodyBytes
}

func (h *handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.st.Views.Render(w, name, data); err != nil {
		w.Header().Del("Content-Type")
		h.writeError(w, r, err)
	}
}

func (h *handler) index(w http.ResponseWriter, r *http.Request) {
	list, err := h.st.Entries.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.render(w, r, views.Index, models.ManyEntries{Entries: list, Addr: h.st.Addr})
}

func (h *handler) newEntry(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, views.NewEntry, models.NewEntry{Addr: h.st.Addr})
}

func (h *handler) show(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	e, err := h.st.Entries.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.render(w, r, views.Entry, models.SingleEntry{Entry: e, Addr: h.st.Addr})
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	in, err := decodeEntry(w, r, h.maxBody())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := h.st.Entries.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	logging.FromContext(r.Context(), h.st.Logger).Info(r.Context(), "entry created", "id", id)
	http.Redirect(w, r, entryURL(id), http.StatusSeeOther)
}

func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	in, err := decodeEntry(w, r, h.maxBody())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.st.Entries.Update(r.Context(), id, in); err != nil {
		h.writeError(w, r, err)
		return
	}
	http.Redirect(w, r, entryURL(id), http.StatusSeeOther)
}

func (h *handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.st.Entries.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	logging.FromContext(r.Context(), h.st.Logger).Info(r.Context(), "entry deleted", "id", id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if h.st.Pinger != nil {
		if err := h.st.Pinger.Ping(r.Context()); err != nil {
			logging.FromContext(r.Context(), h.st.Logger).Warn(r.Context(), "health check failed", "error", err)
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	_, _ = w.Write([]byte("ok"))
}
