package inmemdb

import (
	"context"

	"github.com/trezcool/skillboost/core"
	"github.com/trezcool/skillboost/core/course"
)

type courseRepository struct {
	db *DB
}

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) QueryCourses(_ context.Context, p core.Pagination) ([]course.Course, error) {
	return repo.db.course.window(p), nil
}

func (repo *courseRepository) CountCourses(context.Context) (int64, error) {
	return repo.db.course.count(), nil
}

func (repo *courseRepository) GetCourseByID(_ context.Context, id string) (course.Course, error) {
	if c, ok := repo.db.course.get(id); ok {
		return c, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) CreateCourse(_ context.Context, c course.Course) (course.Course, error) {
	return create(repo.db.course, c, func(c *course.Course, id string) { c.ID = id }), nil
}

func (repo *courseRepository) QueryAssignments(context.Context) ([]course.Assignment, error) {
	return repo.db.assignment.all(), nil
}

func (repo *courseRepository) CreateAssignment(_ context.Context, a course.Assignment) (course.Assignment, error) {
	return create(repo.db.assignment, a, func(a *course.Assignment, id string) { a.ID = id }), nil
}

func (repo *courseRepository) QuerySubmissions(context.Context) ([]course.Submission, error) {
	return repo.db.submission.all(), nil
}

func (repo *courseRepository) CreateSubmission(_ context.Context, s course.Submission) (course.Submission, error) {
	return create(repo.db.submission, s, func(s *course.Submission, id string) { s.ID = id }), nil
}

func (repo *courseRepository) QueryReviews(context.Context) ([]course.Review, error) {
	return repo.db.review.all(), nil
}

func (repo *courseRepository) CreateReview(_ context.Context, r course.Review) (course.Review, error) {
	return create(repo.db.review, r, func(r *course.Review, id string) { r.ID = id }), nil
}

func (repo *courseRepository) QueryClasses(context.Context) ([]course.Class, error) {
	return repo.db.class.all(), nil
}

func (repo *courseRepository) CreateClass(_ context.Context, c course.Class) (course.Class, error) {
	return create(repo.db.class, c, func(c *course.Class, id string) { c.ID = id }), nil
}
