package course

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/skillboost/core"
)

var (
	// errors
	ErrNotFound = errors.New("course not found")
)

type (
	Repository interface {
		// QueryCourses returns courses in insertion order, windowed by p.
		QueryCourses(ctx context.Context, p core.Pagination) ([]Course, error)
		CountCourses(ctx context.Context) (int64, error)
		GetCourseByID(ctx context.Context, id string) (Course, error)
		CreateCourse(ctx context.Context, c Course) (Course, error)

		QueryAssignments(ctx context.Context) ([]Assignment, error)
		CreateAssignment(ctx context.Context, a Assignment) (Assignment, error)

		QuerySubmissions(ctx context.Context) ([]Submission, error)
		CreateSubmission(ctx context.Context, s Submission) (Submission, error)

		QueryReviews(ctx context.Context) ([]Review, error)
		CreateReview(ctx context.Context, r Review) (Review, error)

		QueryClasses(ctx context.Context) ([]Class, error)
		CreateClass(ctx context.Context, c Class) (Class, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) List(ctx context.Context, p core.Pagination) ([]Course, error) {
	return svc.repo.QueryCourses(ctx, p)
}

func (svc *Service) Count(ctx context.Context) (int64, error) {
	return svc.repo.CountCourses(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, nc NewCourse) (core.InsertResult, error) {
	c, err := svc.repo.CreateCourse(ctx, Course{
		Title:        nc.Title,
		TeacherName:  nc.TeacherName,
		TeacherEmail: nc.TeacherEmail,
		Price:        nc.Price,
		Description:  nc.Description,
		Image:        nc.Image,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return core.InsertResult{}, pkgerrors.Wrap(err, "creating course")
	}
	return core.NewInsertResult(c.ID), nil
}

func (svc *Service) ListAssignments(ctx context.Context) ([]Assignment, error) {
	return svc.repo.QueryAssignments(ctx)
}

func (svc *Service) CreateAssignment(ctx context.Context, na NewAssignment) (core.InsertResult, error) {
	a, err := svc.repo.CreateAssignment(ctx, Assignment{
		CourseID:     na.CourseID,
		Title:        na.Title,
		Description:  na.Description,
		Deadline:     na.Deadline,
		TeacherEmail: na.TeacherEmail,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return core.InsertResult{}, pkgerrors.Wrap(err, "creating assignment")
	}
	return core.NewInsertResult(a.ID), nil
}

func (svc *Service) ListSubmissions(ctx context.Context) ([]Submission, error) {
	return svc.repo.QuerySubmissions(ctx)
}

func (svc *Service) Submit(ctx context.Context, ns NewSubmission) (core.InsertResult, error) {
	s, err := svc.repo.CreateSubmission(ctx, Submission{
		AssignmentID: ns.AssignmentID,
		CourseID:     ns.CourseID,
		Name:         ns.Name,
		Email:        ns.Email,
		Link:         ns.Link,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return core.InsertResult{}, pkgerrors.Wrap(err, "creating submission")
	}
	return core.NewInsertResult(s.ID), nil
}

func (svc *Service) ListReviews(ctx context.Context) ([]Review, error) {
	return svc.repo.QueryReviews(ctx)
}

func (svc *Service) Review(ctx context.Context, nr NewReview) (core.InsertResult, error) {
	r, err := svc.repo.CreateReview(ctx, Review{
		CourseID:  nr.CourseID,
		Name:      nr.Name,
		Email:     nr.Email,
		Photo:     nr.Photo,
		Rating:    nr.Rating,
		Comment:   nr.Comment,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return core.InsertResult{}, pkgerrors.Wrap(err, "creating review")
	}
	return core.NewInsertResult(r.ID), nil
}

func (svc *Service) ListClasses(ctx context.Context) ([]Class, error) {
	return svc.repo.QueryClasses(ctx)
}

func (svc *Service) SubmitClass(ctx context.Context, nc NewClass) (core.InsertResult, error) {
	c, err := svc.repo.CreateClass(ctx, Class{
		Title:        nc.Title,
		TeacherName:  nc.TeacherName,
		TeacherEmail: nc.TeacherEmail,
		Price:        nc.Price,
		Description:  nc.Description,
		Image:        nc.Image,
		Status:       ClassStatusPending,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return core.InsertResult{}, pkgerrors.Wrap(err, "creating class")
	}
	return core.NewInsertResult(c.ID), nil
}
