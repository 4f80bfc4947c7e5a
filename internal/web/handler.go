package web

import (
	"bytes"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/arcanaland/deckview/internal/interact"
	"github.com/arcanaland/deckview/internal/loader"
	"github.com/arcanaland/deckview/internal/render"
)

// Handler serves the deck page for a finished render set
type Handler struct {
	title       string
	description string
	set         *loader.RenderSet
	logger      *zap.Logger
	mux         *http.ServeMux
}

func NewHandler(title, description string, set *loader.RenderSet, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		title:       title,
		description: description,
		set:         set,
		logger:      logger,
		mux:         http.NewServeMux(),
	}

	h.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	h.mux.HandleFunc("/", h.page)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	n := 0
	if h.set != nil {
		n = len(h.set.Cards)
	}
	state := Decode(r.URL.Query(), n)

	var buf bytes.Buffer
	if err := WritePage(&buf, h.title, h.description, h.set, state); err != nil {
		h.logger.Error("page render failed", zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Debug("error writing response", zap.Error(err))
	}
}

// WritePage renders the page for a state with links that drive the next transitions
func WritePage(w io.Writer, title, description string, set *loader.RenderSet, state interact.State) error {
	return render.Page(w, render.Build(title, description, set, state, Linker{State: state}))
}

// WriteSnapshot renders the page for a state as a standalone file whose controls stay in place
func WriteSnapshot(w io.Writer, title, description string, set *loader.RenderSet, state interact.State) error {
	return render.Page(w, render.Build(title, description, set, state, Snapshot{}))
}
