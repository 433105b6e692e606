package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/skillboost/core"
	"github.com/trezcool/skillboost/core/course"
)

type (
	courseRow struct {
		ID           string    `db:"id"`
		Title        string    `db:"title"`
		TeacherName  string    `db:"teacher_name"`
		TeacherEmail string    `db:"teacher_email"`
		Price        float64   `db:"price"`
		Description  string    `db:"description"`
		Image        string    `db:"image"`
		EnrollCount  int       `db:"enroll_count"`
		CreatedAt    time.Time `db:"created_at"`
	}

	assignmentRow struct {
		ID           string    `db:"id"`
		CourseID     string    `db:"course_id"`
		Title        string    `db:"title"`
		Description  string    `db:"description"`
		Deadline     string    `db:"deadline"`
		TeacherEmail string    `db:"teacher_email"`
		CreatedAt    time.Time `db:"created_at"`
	}

	submissionRow struct {
		ID           string    `db:"id"`
		AssignmentID string    `db:"assignment_id"`
		CourseID     string    `db:"course_id"`
		Name         string    `db:"name"`
		Email        string    `db:"email"`
		Link         string    `db:"link"`
		CreatedAt    time.Time `db:"created_at"`
	}

	reviewRow struct {
		ID        string    `db:"id"`
		CourseID  string    `db:"course_id"`
		Name      string    `db:"name"`
		Email     string    `db:"email"`
		Photo     string    `db:"photo"`
		Rating    int       `db:"rating"`
		Comment   string    `db:"comment"`
		CreatedAt time.Time `db:"created_at"`
	}

	classRow struct {
		ID           string    `db:"id"`
		Title        string    `db:"title"`
		TeacherName  string    `db:"teacher_name"`
		TeacherEmail string    `db:"teacher_email"`
		Price        float64   `db:"price"`
		Description  string    `db:"description"`
		Image        string    `db:"image"`
		Status       string    `db:"status"`
		CreatedAt    time.Time `db:"created_at"`
	}
)

func (r courseRow) course() course.Course {
	return course.Course{
		ID:           r.ID,
		Title:        r.Title,
		TeacherName:  r.TeacherName,
		TeacherEmail: r.TeacherEmail,
		Price:        r.Price,
		Description:  r.Description,
		Image:        r.Image,
		EnrollCount:  r.EnrollCount,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

func (r assignmentRow) assignment() course.Assignment {
	return course.Assignment{
		ID:           r.ID,
		CourseID:     r.CourseID,
		Title:        r.Title,
		Description:  r.Description,
		Deadline:     r.Deadline,
		TeacherEmail: r.TeacherEmail,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

func (r submissionRow) submission() course.Submission {
	return course.Submission{
		ID:           r.ID,
		AssignmentID: r.AssignmentID,
		CourseID:     r.CourseID,
		Name:         r.Name,
		Email:        r.Email,
		Link:         r.Link,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

func (r reviewRow) review() course.Review {
	return course.Review{
		ID:        r.ID,
		CourseID:  r.CourseID,
		Name:      r.Name,
		Email:     r.Email,
		Photo:     r.Photo,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

func (r classRow) class() course.Class {
	return course.Class{
		ID:           r.ID,
		Title:        r.Title,
		TeacherName:  r.TeacherName,
		TeacherEmail: r.TeacherEmail,
		Price:        r.Price,
		Description:  r.Description,
		Image:        r.Image,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

const (
	courseColumns     = `id, title, teacher_name, teacher_email, price, description, image, enroll_count, created_at`
	assignmentColumns = `id, course_id, title, description, deadline, teacher_email, created_at`
	submissionColumns = `id, assignment_id, course_id, name, email, link, created_at`
	reviewColumns     = `id, course_id, name, email, photo, rating, comment, created_at`
	classColumns      = `id, title, teacher_name, teacher_email, price, description, image, status, created_at`
)

type courseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) QueryCourses(ctx context.Context, p core.Pagination) ([]course.Course, error) {
	// LIMIT NULL is no limit
	var limit sql.NullInt64
	if p.Limit() > 0 {
		limit = sql.NullInt64{Int64: p.Limit(), Valid: true}
	}
	q := `SELECT ` + courseColumns + ` FROM courses ORDER BY seq LIMIT $1 OFFSET $2`
	courses, err := selectAll(ctx, repo.db, courseRow.course, q, limit, p.Skip())
	return courses, errors.Wrap(err, "querying courses")
}

func (repo *courseRepository) CountCourses(ctx context.Context) (int64, error) {
	var n int64
	err := repo.db.GetContext(ctx, &n, `SELECT count(*) FROM courses`)
	return n, errors.Wrap(err, "counting courses")
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	var row courseRow
	q := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	if err := getByID(ctx, repo.db, &row, course.ErrNotFound, q, id); err != nil {
		return course.Course{}, err
	}
	return row.course(), nil
}

func (repo *courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	c.ID = newID()
	row := courseRow{
		ID:           c.ID,
		Title:        c.Title,
		TeacherName:  c.TeacherName,
		TeacherEmail: c.TeacherEmail,
		Price:        c.Price,
		Description:  c.Description,
		Image:        c.Image,
		EnrollCount:  c.EnrollCount,
		CreatedAt:    c.CreatedAt,
	}
	q := `INSERT INTO courses (` + courseColumns + `)
		VALUES (:id, :title, :teacher_name, :teacher_email, :price, :description, :image, :enroll_count, :created_at)`
	if err := insert(ctx, repo.db, q, row); err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return c, nil
}

func (repo *courseRepository) QueryAssignments(ctx context.Context) ([]course.Assignment, error) {
	items, err := selectAll(ctx, repo.db, assignmentRow.assignment, `SELECT `+assignmentColumns+` FROM assignments ORDER BY seq`)
	return items, errors.Wrap(err, "querying assignments")
}

func (repo *courseRepository) CreateAssignment(ctx context.Context, a course.Assignment) (course.Assignment, error) {
	a.ID = newID()
	row := assignmentRow{
		ID:           a.ID,
		CourseID:     a.CourseID,
		Title:        a.Title,
		Description:  a.Description,
		Deadline:     a.Deadline,
		TeacherEmail: a.TeacherEmail,
		CreatedAt:    a.CreatedAt,
	}
	q := `INSERT INTO assignments (` + assignmentColumns + `)
		VALUES (:id, :course_id, :title, :description, :deadline, :teacher_email, :created_at)`
	if err := insert(ctx, repo.db, q, row); err != nil {
		return course.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	return a, nil
}

func (repo *courseRepository) QuerySubmissions(ctx context.Context) ([]course.Submission, error) {
	items, err := selectAll(ctx, repo.db, submissionRow.submission, `SELECT `+submissionColumns+` FROM submissions ORDER BY seq`)
	return items, errors.Wrap(err, "querying submissions")
}

func (repo *courseRepository) CreateSubmission(ctx context.Context, s course.Submission) (course.Submission, error) {
	s.ID = newID()
	row := submissionRow{
		ID:           s.ID,
		AssignmentID: s.AssignmentID,
		CourseID:     s.CourseID,
		Name:         s.Name,
		Email:        s.Email,
		Link:         s.Link,
		CreatedAt:    s.CreatedAt,
	}
	q := `INSERT INTO submissions (` + submissionColumns + `)
		VALUES (:id, :assignment_id, :course_id, :name, :email, :link, :created_at)`
	if err := insert(ctx, repo.db, q, row); err != nil {
		return course.Submission{}, errors.Wrap(err, "inserting submission")
	}
	return s, nil
}

func (repo *courseRepository) QueryReviews(ctx context.Context) ([]course.Review, error) {
	items, err := selectAll(ctx, repo.db, reviewRow.review, `SELECT `+reviewColumns+` FROM reviews ORDER BY seq`)
	return items, errors.Wrap(err, "querying reviews")
}

func (repo *courseRepository) CreateReview(ctx context.Context, r course.Review) (course.Review, error) {
	r.ID = newID()
	row := reviewRow{
		ID:        r.ID,
		CourseID:  r.CourseID,
		Name:      r.Name,
		Email:     r.Email,
		Photo:     r.Photo,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
	q := `INSERT INTO reviews (` + reviewColumns + `)
		VALUES (:id, :course_id, :name, :email, :photo, :rating, :comment, :created_at)`
	if err := insert(ctx, repo.db, q, row); err != nil {
		return course.Review{}, errors.Wrap(err, "inserting review")
	}
	return r, nil
}

func (repo *courseRepository) QueryClasses(ctx context.Context) ([]course.Class, error) {
	items, err := selectAll(ctx, repo.db, classRow.class, `SELECT `+classColumns+` FROM classes ORDER BY seq`)
	return items, errors.Wrap(err, "querying classes")
}

func (repo *courseRepository) CreateClass(ctx context.Context, c course.Class) (course.Class, error) {
	c.ID = newID()
	row := classRow{
		ID:           c.ID,
		Title:        c.Title,
		TeacherName:  c.TeacherName,
		TeacherEmail: c.TeacherEmail,
		Price:        c.Price,
		Description:  c.Description,
		Image:        c.Image,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
	}
	q := `INSERT INTO classes (` + classColumns + `)
		VALUES (:id, :title, :teacher_name, :teacher_email, :price, :description, :image, :status, :created_at)`
	if err := insert(ctx, repo.db, q, row); err != nil {
		return course.Class{}, errors.Wrap(err, "inserting class")
	}
	return c, nil
}
