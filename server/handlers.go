package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/sonnes/chatview/loader"
	jsonrender "github.com/sonnes/chatview/render/json"
	"github.com/sonnes/chatview/view"
)

// Messages shown to clients.
const (
	MsgUploadOK     = "File uploaded and processed successfully."
	MsgUploadFailed = "Error processing uploaded file. Ensure it is valid JSON."
	MsgNotFound     = "Chat not found or no data loaded"
)

// uploadField is the multipart form field holding the file.
const uploadField = "file"

// UploadResponse is the body of a successful /upload reply.
type UploadResponse struct {
	Message  string `json:"message"`
	Sessions int    `json:"sessions"`
}

// ErrorResponse is the body of a failed /upload reply.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := view.List(s.store, q.Get("search"))
	v.Message = q.Get("message")

	var buf bytes.Buffer
	if err := s.html.RenderIndex(&buf, v); err != nil {
		s.logger.Error("render index", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes())
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	v, err := view.Detail(s.store, id, r.URL.Query().Get("search"))
	if errors.Is(err, view.ErrNotFound) {
		http.Redirect(w, r, "/?message="+url.QueryEscape(MsgNotFound), http.StatusFound)
		return
	}

	var buf bytes.Buffer
	if err := s.html.RenderSession(&buf, v); err != nil {
		s.logger.Error("render session", "session_id", id, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes())
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	data, err := s.readUpload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.logger.Warn("upload too large", "limit", tooLarge.Limit)
			s.writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
				Message: MsgUploadFailed,
				Error:   fmt.Sprintf("upload exceeds the %s limit", humanize.Bytes(uint64(tooLarge.Limit))),
			})
			return
		}
		s.logger.Warn("upload read failed", "error", err)
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: MsgUploadFailed, Error: err.Error()})
		return
	}

	sessions, err := s.loader.Load(data)
	if err != nil {
		status := http.StatusInternalServerError
		var verr *loader.ValidationError
		if errors.As(err, &verr) {
			status = http.StatusBadRequest
		}
		s.logger.Warn("upload rejected", "error", err)
		s.writeJSON(w, status, ErrorResponse{Message: MsgUploadFailed, Error: err.Error()})
		return
	}

	s.store.Replace(sessions, "upload")
	s.logger.Info("dataset replaced", "source", "upload", "sessions", len(sessions))
	s.writeJSON(w, http.StatusOK, UploadResponse{Message: MsgUploadOK, Sessions: len(sessions)})
}

// readUpload returns the uploaded document: the "file" field of a multipart
// form, or the raw request body otherwise.
func (s *Server) readUpload(r *http.Request) ([]byte, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return io.ReadAll(r.Body)
	}

	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		return nil, err
	}
	f, _, err := r.FormFile(uploadField)
	if err != nil {
		return nil, fmt.Errorf("form field %q: %w", uploadField, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (s *Server) apiSessions(w http.ResponseWriter, r *http.Request) {
	v := view.List(s.store, r.URL.Query().Get("search"))
	s.writeJSON(w, http.StatusOK, jsonrender.NewList(v))
}

func (s *Server) apiSession(w http.ResponseWriter, r *http.Request) {
	v, err := view.Detail(s.store, sessionID(r), r.URL.Query().Get("search"))
	if errors.Is(err, view.ErrNotFound) {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"message": MsgNotFound})
		return
	}
	s.writeJSON(w, http.StatusOK, jsonrender.NewDetail(v))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.store.Len(),
	})
}

// sessionID returns the decoded {sessionId} path parameter. chi matches on
// the raw path when one is present, leaving the parameter escaped.
func sessionID(r *http.Request) string {
	id := chi.URLParam(r, "sessionId")
	if r.URL.RawPath == "" {
		return id
	}
	if decoded, err := url.PathUnescape(id); err == nil {
		return decoded
	}
	return id
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := s.json.Encode(w, v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}
