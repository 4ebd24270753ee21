package studio

import (
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/lesson"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/student"
)

// Mapper converts between wire types and domain entities.
type Mapper struct{}

// NewMapper creates a Mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// ToLesson converts a LessonDTO to the domain entity.
func (m *Mapper) ToLesson(dto LessonDTO) *lesson.Lesson {
	return &lesson.Lesson{
		ID:              dto.ID,
		StudentID:       dto.StudentID,
		Date:            dto.Date,
		DurationMinutes: dto.DurationMinutes,
		IsCompleted:     dto.IsCompleted,
		IsCancelled:     dto.IsCancelled,
		Notes:           dto.Notes,
	}
}

// ToLessons converts a slice of LessonDTOs.
func (m *Mapper) ToLessons(dtos []LessonDTO) []*lesson.Lesson {
	lessons := make([]*lesson.Lesson, 0, len(dtos))
	for _, dto := range dtos {
		lessons = append(lessons, m.ToLesson(dto))
	}
	return lessons
}

// ToStudent converts a StudentDTO to the domain entity.
func (m *Mapper) ToStudent(dto StudentDTO) *student.Student {
	return &student.Student{
		ID:               dto.ID,
		Name:             dto.Name,
		Email:            dto.Email,
		Phone:            dto.Phone,
		Notes:            dto.Notes,
		RemainingLessons: dto.RemainingLessons,
	}
}

// ToStudents converts a slice of StudentDTOs.
func (m *Mapper) ToStudents(dtos []StudentDTO) []*student.Student {
	students := make([]*student.Student, 0, len(dtos))
	for _, dto := range dtos {
		students = append(students, m.ToStudent(dto))
	}
	return students
}

// FromDraft converts a new lesson into the create request body.
func (m *Mapper) FromDraft(l *lesson.Lesson) CreateLessonRequest {
	return CreateLessonRequest{
		StudentID:       l.StudentID,
		Date:            l.Date,
		DurationMinutes: l.DurationMinutes,
		Notes:           l.Notes,
	}
}

// FromPatch converts a domain patch into the partial-update body.
func (m *Mapper) FromPatch(p lesson.Patch) UpdateLessonRequest {
	return UpdateLessonRequest{
		StudentID:       p.StudentID,
		Date:            p.Date,
		DurationMinutes: p.DurationMinutes,
		Notes:           p.Notes,
		IsCompleted:     p.IsCompleted,
		IsCancelled:     p.IsCancelled,
	}
}
