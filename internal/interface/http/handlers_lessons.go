package http

import (
	"net/http"
	"time"

	"github.com/vocal-hub/vocal-studio-hub/internal/application/command"
	"github.com/vocal-hub/vocal-studio-hub/internal/application/query"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/lesson"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// LESSON HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleListLessons returns lessons, optionally bounded by a
// [from, to) window in RFC3339. The calendar loads whole view windows
// through this endpoint.
func (s *Server) handleListLessons(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	from, to, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var lessons []*lesson.Lesson
	if !from.IsZero() && !to.IsZero() {
		lessons, err = s.deps.LessonRepo.ListInRange(r.Context(), userID, from, to)
	} else {
		opts := lesson.ListOptions{
			Offset: queryInt(r, "offset", 0),
			Limit:  queryInt(r, "limit", 100),
		}
		lessons, err = s.deps.LessonRepo.List(r.Context(), userID, opts)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.lessonsWithStudents(r, userID, lessons))
}

// lessonsWithStudents embeds student records into lesson responses.
// Students are fetched once for the whole page.
func (s *Server) lessonsWithStudents(r *http.Request, userID int64, lessons []*lesson.Lesson) []lessonResponse {
	students := make(map[int64]*student.Student)
	for _, l := range lessons {
		if _, ok := students[l.StudentID]; ok {
			continue
		}
		if st, err := s.deps.StudentRepo.GetByID(r.Context(), userID, l.StudentID); err == nil {
			students[l.StudentID] = st
		}
	}

	resp := make([]lessonResponse, 0, len(lessons))
	for _, l := range lessons {
		resp = append(resp, toLessonResponse(l, students[l.StudentID]))
	}
	return resp
}

func parseWindow(r *http.Request) (from, to time.Time, err error) {
	if v := r.URL.Query().Get("from"); v != "" {
		from, err = time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		to, err = time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return from, to, nil
}

func (s *Server) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	l, err := s.deps.LessonRepo.GetByID(r.Context(), userIDFrom(r.Context()), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLessonResponse(l, nil))
}

func (s *Server) handleCreateLesson(w http.ResponseWriter, r *http.Request) {
	var req createLessonRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.deps.ScheduleLesson.Handle(r.Context(), command.ScheduleLessonCommand{
		UserID:          userIDFrom(r.Context()),
		StudentID:       req.StudentID,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toLessonResponse(result.Lesson, nil))
}

func (s *Server) handleUpdateLesson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateLessonRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := userIDFrom(r.Context())
	l, err := s.deps.LessonRepo.GetByID(r.Context(), userID, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	req.toPatch().Apply(l)
	if err := l.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.deps.LessonRepo.Update(r.Context(), l); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLessonResponse(l, nil))
}

func (s *Server) handleDeleteLesson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.deps.LessonRepo.Delete(r.Context(), userIDFrom(r.Context()), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCompleteLesson marks the lesson as held and consumes one paid
// lesson from the student's balance.
func (s *Server) handleCompleteLesson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.deps.FinishLesson.HandleComplete(r.Context(), command.CompleteLessonCommand{
		UserID:   userIDFrom(r.Context()),
		LessonID: id,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLessonResponse(result.Lesson, nil))
}

func (s *Server) handleCancelLesson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	l, err := s.deps.FinishLesson.HandleCancel(r.Context(), command.CancelLessonCommand{
		UserID:   userIDFrom(r.Context()),
		LessonID: id,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLessonResponse(l, nil))
}

// handleUpcomingLessons returns the next lessons with student names,
// the same view the Telegram reminders are built from.
func (s *Server) handleUpcomingLessons(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	upcoming, err := s.deps.UpcomingLessons.Handle(r.Context(), query.UpcomingLessonsQuery{
		UserID: userIDFrom(r.Context()),
		From:   from,
		To:     to,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]upcomingLessonResponse, 0, len(upcoming))
	for _, u := range upcoming {
		resp = append(resp, upcomingLessonResponse{
			lessonResponse: toLessonResponse(u.Lesson, nil),
			StudentName:    u.StudentName,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
