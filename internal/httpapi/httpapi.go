// Package httpapi exposes the engine over a small JSON HTTP API.
//
// The surface is deliberately plain: one handler per operation, request
// bodies are flat JSON objects, and every response is a single-key
// envelope ({"result": ...}, {"memory": [...]}, {"pdfs": [...]}).
// Expected domain outcomes (a missing PDF, an unknown id) come back as
// result strings with status 200; only malformed requests and store
// failures use error statuses.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/HendryAvila/memex/internal/engine"
	"github.com/HendryAvila/memex/internal/memory"
)

// Server routes HTTP requests to the engine.
type Server struct {
	engine *engine.Engine
}

// New creates a Server around the engine.
func New(eng *engine.Engine) *Server {
	return &Server{engine: eng}
}

// Handler returns the API's routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /ingest_pdf", s.handleIngestPDF)
	mux.HandleFunc("POST /ask", s.handleAsk)
	mux.HandleFunc("POST /say", s.handleSay)
	mux.HandleFunc("GET /list_memory", s.handleListMemory)
	mux.HandleFunc("GET /list_pdfs", s.handleListPDFs)
	mux.HandleFunc("POST /forget", s.handleForget)
	mux.HandleFunc("POST /forget_pdf", s.handleForgetPDF)
	mux.HandleFunc("POST /toggle_tts", s.handleToggleTTS)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "Memex API is running!")
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if !decode(w, r, &req) {
		return
	}

	answer, err := s.engine.Ask(r.Context(), req.Query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeResult(w, answer)
}

func (s *Server) handleSay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decode(w, r, &req) {
		return
	}

	if _, err := s.engine.Remember(req.Text); err != nil {
		if errors.Is(err, memory.ErrEmptyContent) {
			writeError(w, http.StatusBadRequest, "'text' must not be empty")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeResult(w, "Noted and stored in memory.")
}

func (s *Server) handleIngestPDF(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PDFPath string `json:"pdf_path"`
	}
	if !decode(w, r, &req) {
		return
	}

	_, stored, err := s.engine.IngestDocument(req.PDFPath)
	if err != nil {
		var exErr *engine.ExtractionError
		switch {
		case errors.Is(err, engine.ErrDocumentMissing):
			writeResult(w, "PDF file not found.")
		case errors.As(err, &exErr):
			writeResult(w, fmt.Sprintf("Error reading PDF: %v", exErr.Err))
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeResult(w, fmt.Sprintf("Ingested %d text chunks from %s", stored, req.PDFPath))
}

func (s *Server) handleListMemory(w http.ResponseWriter, r *http.Request) {
	memories, err := s.engine.Memories()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if memories == nil {
		memories = []memory.Memory{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"memory": memories})
}

func (s *Server) handleListPDFs(w http.ResponseWriter, r *http.Request) {
	docs, err := s.engine.Documents()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if docs == nil {
		docs = []memory.Document{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"pdfs": docs})
}

func (s *Server) handleForget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemoryID int64 `json:"memory_id"`
	}
	if !decode(w, r, &req) {
		return
	}

	if err := s.engine.ForgetMemory(req.MemoryID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeResult(w, fmt.Sprintf("Deleted memory with ID %d", req.MemoryID))
}

func (s *Server) handleForgetPDF(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PDFID int64 `json:"pdf_id"`
	}
	if !decode(w, r, &req) {
		return
	}

	filename, err := s.engine.ForgetDocument(req.PDFID)
	if err != nil {
		if errors.Is(err, memory.ErrNotFound) {
			writeResult(w, fmt.Sprintf("No PDF found with ID %d", req.PDFID))
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeResult(w, fmt.Sprintf("Forgot PDF '%s' and all related memory.", filename))
}

func (s *Server) handleToggleTTS(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enable *bool `json:"enable"`
	}
	if !decode(w, r, &req) {
		return
	}

	enable := true
	if req.Enable != nil {
		enable = *req.Enable
	}
	s.engine.SetSpeech(enable)

	if enable {
		writeResult(w, "TTS enabled.")
		return
	}
	writeResult(w, "TTS disabled.")
}

// ─── Response plumbing ───────────────────────────────────────────────────────

// decode reads the JSON request body into dst, answering 400 itself on
// malformed input.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("WARNING: httpapi: encode response: %v", err)
	}
}

func writeResult(w http.ResponseWriter, result string) {
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
