// Package apitest поднимает поддельный REST API фотобудки для тестов
// клиента.
package apitest

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"boothadmin/internal/domain/record"
)

const (
	Email    = "admin@booth.id"
	Password = "secret"
	Token    = "test-token"
)

// listWrappers - как API заворачивает список каждой коллекции. Пустая
// строка - голый массив.
var listWrappers = map[record.Kind]string{
	record.KindUsers:  "",
	record.KindTools:  "data",
	record.KindLogs:   "borrow_logs",
	record.KindEvents: "events",
}

type Server struct {
	*httptest.Server

	mu         sync.Mutex
	rows       map[record.Kind][]map[string]any
	nextID     int
	failures   map[string]int
	requests   []string
	attendance []map[string]any
	gallery    []map[string]any
}

// New запускает сервер и останавливает его по завершении теста.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		rows:     make(map[record.Kind][]map[string]any),
		nextID:   100,
		failures: make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(NewLogger(slog.Default()).Middleware)
	r.Use(s.track)
	r.Post("/login", s.login)

	r.Group(func(r chi.Router) {
		r.Use(s.auth)
		r.Get("/profile", s.profile)
		r.Post("/data4", s.submitAttendance)
		r.Get("/gallery", s.listGallery)
		r.Post("/gallery/add", s.uploadGallery)

		for _, kind := range record.Kinds() {
			s.mount(r, kind)
		}
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Seed добавляет записи в коллекцию.
func (s *Server) Seed(kind record.Kind, rows ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[kind] = append(s.rows[kind], rows...)
}

// Rows возвращает копию строк коллекции.
func (s *Server) Rows(kind record.Kind) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []map[string]any
	for _, row := range s.rows[kind] {
		out = append(out, maps.Clone(row))
	}
	return out
}

// Fail заставляет сервер отвечать status на запрос "METHOD /path".
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = status
}

// Requests возвращает все полученные запросы в виде "METHOD /path".
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) Attendance() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.attendance...)
}

func (s *Server) Gallery() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.gallery...)
}

func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path

		s.mu.Lock()
		s.requests = append(s.requests, key)
		status, fail := s.failures[key]
		s.mu.Unlock()

		if fail {
			writeJSON(w, status, map[string]any{"message": fmt.Sprintf("forced failure %d", status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+Token {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Token tidak valid"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid body"})
		return
	}
	if req.Email != Email || req.Password != Password {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Email atau password salah"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Login berhasil", "token": Token})
}

func (s *Server) profile(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{"id": 1, "name": "Admin Booth", "role": "admin"},
	})
}

func (s *Server) mount(r chi.Router, kind record.Kind) {
	ep := kind.Schema().Endpoints

	if ep.List != "" {
		r.Get(ep.List, func(w http.ResponseWriter, _ *http.Request) {
			rows := s.Rows(kind)
			if rows == nil {
				rows = []map[string]any{}
			}
			if key := listWrappers[kind]; key != "" {
				writeJSON(w, http.StatusOK, map[string]any{key: rows})
				return
			}
			writeJSON(w, http.StatusOK, rows)
		})
	}

	if ep.Get != "" {
		r.Get(ep.Get, func(w http.ResponseWriter, r *http.Request) {
			row, ok := s.find(kind, chi.URLParam(r, "id"))
			if !ok {
				writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"data": row})
		})
	}

	if ep.Create != "" {
		r.Post(ep.Create, func(w http.ResponseWriter, r *http.Request) {
			var row map[string]any
			if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid body"})
				return
			}

			s.mu.Lock()
			s.nextID++
			id := s.nextID
			row["id"] = id
			s.rows[kind] = append(s.rows[kind], row)
			s.mu.Unlock()

			if kind == record.KindUsers {
				writeJSON(w, http.StatusCreated, map[string]any{"message": "User ditambahkan", "insertId": id})
				return
			}
			writeJSON(w, http.StatusCreated, map[string]any{"data": row})
		})
	}

	if ep.Update != "" {
		r.Put(ep.Update, func(w http.ResponseWriter, r *http.Request) {
			var patch map[string]any
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid body"})
				return
			}
			if !s.update(kind, chi.URLParam(r, "id"), patch) {
				writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"message": "updated"})
		})
	}

	if ep.Delete != "" {
		r.Delete(ep.Delete, func(w http.ResponseWriter, r *http.Request) {
			if !s.delete(kind, chi.URLParam(r, "id")) {
				writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"message": "deleted"})
		})
	}
}

func (s *Server) find(kind record.Kind, id string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows[kind] {
		if idString(row["id"]) == id {
			return row, true
		}
	}
	return nil, false
}

func (s *Server) update(kind record.Kind, id string, patch map[string]any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows[kind] {
		if idString(row["id"]) == id {
			for k, v := range patch {
				if k != "id" {
					row[k] = v
				}
			}
			return true
		}
	}
	return false
}

func (s *Server) delete(kind record.Kind, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.rows[kind]
	for i, row := range rows {
		if idString(row["id"]) == id {
			s.rows[kind] = append(rows[:i:i], rows[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Server) submitAttendance(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid body"})
		return
	}
	photo, _ := body["photo"].(string)
	if strings.HasPrefix(photo, "data:") {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "photo must be raw base64"})
		return
	}

	s.mu.Lock()
	s.attendance = append(s.attendance, body)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Absensi tersimpan"})
}

func (s *Server) listGallery(w http.ResponseWriter, _ *http.Request) {
	items := s.Gallery()
	if items == nil {
		items = []map[string]any{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"gallery": items})
}

func (s *Server) uploadGallery(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid form"})
		return
	}

	for _, field := range []string{"image", "video"} {
		files := r.MultipartForm.File[field]
		if len(files) == 0 {
			continue
		}

		s.mu.Lock()
		s.nextID++
		item := map[string]any{
			"id":   s.nextID,
			"url":  "/uploads/" + files[0].Filename,
			"type": field,
		}
		s.gallery = append(s.gallery, item)
		s.mu.Unlock()

		writeJSON(w, http.StatusCreated, map[string]any{"data": item})
		return
	}
	writeJSON(w, http.StatusBadRequest, map[string]any{"message": "image or video is required"})
}

func idString(v any) string {
	switch id := v.(type) {
	case int:
		return strconv.Itoa(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case string:
		return id
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
