package course

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/skillboost/core"
)

type (
	// Course is a catalog entry.
	Course struct {
		ID           string    `json:"_id"`
		Title        string    `json:"title"`
		TeacherName  string    `json:"name"`
		TeacherEmail string    `json:"email"`
		Price        float64   `json:"price"`
		Description  string    `json:"shortDescription,omitempty"`
		Image        string    `json:"image,omitempty"`
		EnrollCount  int       `json:"totalEnrollment"`
		CreatedAt    time.Time `json:"created_at"` // UTC
	}

	NewCourse struct {
		Title        string  `json:"title" validate:"required"`
		TeacherName  string  `json:"name"`
		TeacherEmail string  `json:"email" validate:"required,email"`
		Price        float64 `json:"price" validate:"gte=0"`
		Description  string  `json:"shortDescription"`
		Image        string  `json:"image" validate:"omitempty,url"`
	}

	// Assignment is posted by a teacher for one of their courses.
	Assignment struct {
		ID           string    `json:"_id"`
		CourseID     string    `json:"courseId"`
		Title        string    `json:"title"`
		Description  string    `json:"description,omitempty"`
		Deadline     string    `json:"deadline,omitempty"`
		TeacherEmail string    `json:"email"`
		CreatedAt    time.Time `json:"created_at"` // UTC
	}

	NewAssignment struct {
		CourseID     string `json:"courseId" validate:"required"`
		Title        string `json:"title" validate:"required"`
		Description  string `json:"description"`
		Deadline     string `json:"deadline"`
		TeacherEmail string `json:"email" validate:"required,email"`
	}

	// Submission is a student's answer to an Assignment.
	Submission struct {
		ID           string    `json:"_id"`
		AssignmentID string    `json:"assignmentId"`
		CourseID     string    `json:"courseId,omitempty"`
		Name         string    `json:"name,omitempty"`
		Email        string    `json:"email"`
		Link         string    `json:"link"`
		CreatedAt    time.Time `json:"created_at"` // UTC
	}

	NewSubmission struct {
		AssignmentID string `json:"assignmentId" validate:"required"`
		CourseID     string `json:"courseId"`
		Name         string `json:"name"`
		Email        string `json:"email" validate:"required,email"`
		Link         string `json:"link" validate:"required,url"`
	}

	// Review is a student's rating of a course.
	Review struct {
		ID        string    `json:"_id"`
		CourseID  string    `json:"courseId,omitempty"`
		Name      string    `json:"name,omitempty"`
		Email     string    `json:"email"`
		Photo     string    `json:"photo,omitempty"`
		Rating    int       `json:"rating"`
		Comment   string    `json:"description,omitempty"`
		CreatedAt time.Time `json:"created_at"` // UTC
	}

	NewReview struct {
		CourseID string `json:"courseId"`
		Name     string `json:"name"`
		Email    string `json:"email" validate:"required,email"`
		Photo    string `json:"photo" validate:"omitempty,url"`
		Rating   int    `json:"rating" validate:"min=1,max=5"`
		Comment  string `json:"description"`
	}

	// Class is a course submitted by a teacher for publication.
	Class struct {
		ID           string    `json:"_id"`
		Title        string    `json:"title"`
		TeacherName  string    `json:"name,omitempty"`
		TeacherEmail string    `json:"email"`
		Price        float64   `json:"price"`
		Description  string    `json:"shortDescription,omitempty"`
		Image        string    `json:"image,omitempty"`
		Status       string    `json:"status"`
		CreatedAt    time.Time `json:"created_at"` // UTC
	}

	NewClass struct {
		Title        string  `json:"title" validate:"required"`
		TeacherName  string  `json:"name"`
		TeacherEmail string  `json:"email" validate:"required,email"`
		Price        float64 `json:"price" validate:"gte=0"`
		Description  string  `json:"shortDescription"`
		Image        string  `json:"image" validate:"omitempty,url"`
	}
)

// Class statuses
const (
	ClassStatusPending = "pending"
)

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	nc.TeacherName = core.CleanString(nc.TeacherName)
	nc.TeacherEmail = core.CleanEmail(nc.TeacherEmail)
	nc.Image = core.CleanString(nc.Image)
	return validate.Struct(nc)
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.CourseID = core.CleanString(na.CourseID)
	na.Title = core.CleanString(na.Title)
	na.TeacherEmail = core.CleanEmail(na.TeacherEmail)
	return validate.Struct(na)
}

func (ns *NewSubmission) Validate(validate *validator.Validate) error {
	ns.AssignmentID = core.CleanString(ns.AssignmentID)
	ns.CourseID = core.CleanString(ns.CourseID)
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanEmail(ns.Email)
	ns.Link = core.CleanString(ns.Link)
	return validate.Struct(ns)
}

func (nr *NewReview) Validate(validate *validator.Validate) error {
	nr.CourseID = core.CleanString(nr.CourseID)
	nr.Name = core.CleanString(nr.Name)
	nr.Email = core.CleanEmail(nr.Email)
	nr.Photo = core.CleanString(nr.Photo)
	return validate.Struct(nr)
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	nc.TeacherName = core.CleanString(nc.TeacherName)
	nc.TeacherEmail = core.CleanEmail(nc.TeacherEmail)
	nc.Image = core.CleanString(nc.Image)
	return validate.Struct(nc)
}
