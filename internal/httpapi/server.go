package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/goldenhour/attendance-server/internal/attendance/service"
	"github.com/goldenhour/attendance-server/internal/attendance/types"
)

type Dependencies struct {
	Logger     *log.Logger
	Addr       string
	Attendance *service.AttendanceService
}

type Server struct {
	httpServer *http.Server
	logger     *log.Logger
	mux        *http.ServeMux
	attendance *service.AttendanceService
}

func NewServer(d Dependencies) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger:     d.Logger,
		mux:        mux,
		attendance: d.Attendance,
	}

	mux.HandleFunc("POST /v1/clock_in", s.handleClockIn)
	mux.HandleFunc("POST /v1/clock_out", s.handleClockOut)
	mux.HandleFunc("GET /v1/attendance/today", s.handleToday)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	handler := loggingMiddleware(d.Logger, mux)

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleClockIn(w http.ResponseWriter, r *http.Request) {
	var req types.ClockRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	resp, err := s.attendance.ClockIn(r.Context(), req.EmployeeID)
	if err != nil {
		s.writeClockError(w, "clock_in", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClockOut(w http.ResponseWriter, r *http.Request) {
	var req types.ClockRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	resp, err := s.attendance.ClockOut(r.Context(), req.EmployeeID)
	if err != nil {
		s.writeClockError(w, "clock_out", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")

	status, err := s.attendance.Today(r.Context(), employeeID)
	if err != nil {
		s.writeClockError(w, "today", err)
		return
	}
	if status == nil {
		writeError(w, http.StatusNotFound, "no_record", "no attendance record for today")
		return
	}

	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// writeClockError maps workflow errors onto HTTP statuses. Business-rule
// rejections become 409s with the service's message (which carries the
// blocking timestamp); anything unexpected logs server-side and returns an
// opaque 500 so no internal I/O detail reaches the client.
func (s *Server) writeClockError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEmployeeID):
		writeError(w, http.StatusBadRequest, "invalid_employee_id", err.Error())
	case errors.Is(err, service.ErrUnknownEmployee):
		writeError(w, http.StatusNotFound, "unknown_employee", err.Error())
	case errors.Is(err, service.ErrAlreadyClockedIn):
		writeError(w, http.StatusConflict, "already_clocked_in", err.Error())
	case errors.Is(err, service.ErrAlreadyCompletedToday):
		writeError(w, http.StatusConflict, "already_completed_today", err.Error())
	case errors.Is(err, service.ErrNotClockedInYet):
		writeError(w, http.StatusConflict, "not_clocked_in", err.Error())
	case errors.Is(err, service.ErrAlreadyClockedOut):
		writeError(w, http.StatusConflict, "already_clocked_out", err.Error())
	case errors.Is(err, service.ErrClockOutBeforeClockIn):
		writeError(w, http.StatusConflict, "clock_out_before_clock_in", err.Error())
	default:
		s.logger.Printf("%s error: %v", op, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: code, Message: msg})
}
