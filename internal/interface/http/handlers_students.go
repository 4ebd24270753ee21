package http

import (
	"net/http"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/lesson"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := s.deps.StudentRepo.List(r.Context(), userIDFrom(r.Context()),
		queryInt(r, "offset", 0), queryInt(r, "limit", 200))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]studentResponse, 0, len(students))
	for _, st := range students {
		resp = append(resp, toStudentResponse(st))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	st, err := s.deps.StudentRepo.GetByID(r.Context(), userIDFrom(r.Context()), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStudentResponse(st))
}

func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var req createStudentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	st := &student.Student{
		UserID: userIDFrom(r.Context()),
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Notes:  req.Notes,
	}
	if err := st.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.deps.StudentRepo.Create(r.Context(), st); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toStudentResponse(st))
}

func (s *Server) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateStudentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := userIDFrom(r.Context())
	st, err := s.deps.StudentRepo.GetByID(r.Context(), userID, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Email != nil {
		st.Email = *req.Email
	}
	if req.Phone != nil {
		st.Phone = *req.Phone
	}
	if req.Notes != nil {
		st.Notes = *req.Notes
	}
	if err := st.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.deps.StudentRepo.Update(r.Context(), st); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStudentResponse(st))
}

// handleDeleteStudent removes a student. Lessons and subscriptions of
// the student go with it (ON DELETE CASCADE).
func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.deps.StudentRepo.Delete(r.Context(), userIDFrom(r.Context()), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStudentLessons(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := userIDFrom(r.Context())
	opts := lesson.ListOptions{
		Offset: queryInt(r, "offset", 0),
		Limit:  queryInt(r, "limit", 100),
	}
	lessons, err := s.deps.LessonRepo.ListByStudent(r.Context(), userID, id, opts)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]lessonResponse, 0, len(lessons))
	for _, l := range lessons {
		resp = append(resp, toLessonResponse(l, nil))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStudentSubscriptions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	subs, err := s.deps.SubscriptionRepo.ListByStudent(r.Context(), userIDFrom(r.Context()), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]subscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		resp = append(resp, toSubscriptionResponse(sub))
	}
	writeJSON(w, http.StatusOK, resp)
}
