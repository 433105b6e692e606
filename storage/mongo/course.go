package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/skillboost/core"
	"github.com/trezcool/skillboost/core/course"
)

type (
	courseDoc struct {
		ID           primitive.ObjectID `bson:"_id,omitempty"`
		Title        string             `bson:"title"`
		TeacherName  string             `bson:"name,omitempty"`
		TeacherEmail string             `bson:"email"`
		Price        float64            `bson:"price"`
		Description  string             `bson:"shortDescription,omitempty"`
		Image        string             `bson:"image,omitempty"`
		EnrollCount  int                `bson:"totalEnrollment"`
		CreatedAt    time.Time          `bson:"created_at,omitempty"`
	}

	assignmentDoc struct {
		ID           primitive.ObjectID `bson:"_id,omitempty"`
		CourseID     string             `bson:"courseId"`
		Title        string             `bson:"title"`
		Description  string             `bson:"description,omitempty"`
		Deadline     string             `bson:"deadline,omitempty"`
		TeacherEmail string             `bson:"email"`
		CreatedAt    time.Time          `bson:"created_at,omitempty"`
	}

	submissionDoc struct {
		ID           primitive.ObjectID `bson:"_id,omitempty"`
		AssignmentID string             `bson:"assignmentId"`
		CourseID     string             `bson:"courseId,omitempty"`
		Name         string             `bson:"name,omitempty"`
		Email        string             `bson:"email"`
		Link         string             `bson:"link"`
		CreatedAt    time.Time          `bson:"created_at,omitempty"`
	}

	reviewDoc struct {
		ID        primitive.ObjectID `bson:"_id,omitempty"`
		CourseID  string             `bson:"courseId,omitempty"`
		Name      string             `bson:"name,omitempty"`
		Email     string             `bson:"email"`
		Photo     string             `bson:"photo,omitempty"`
		Rating    int                `bson:"rating"`
		Comment   string             `bson:"description,omitempty"`
		CreatedAt time.Time          `bson:"created_at,omitempty"`
	}

	classDoc struct {
		ID           primitive.ObjectID `bson:"_id,omitempty"`
		Title        string             `bson:"title"`
		TeacherName  string             `bson:"name,omitempty"`
		TeacherEmail string             `bson:"email"`
		Price        float64            `bson:"price"`
		Description  string             `bson:"shortDescription,omitempty"`
		Image        string             `bson:"image,omitempty"`
		Status       string             `bson:"status"`
		CreatedAt    time.Time          `bson:"created_at,omitempty"`
	}
)

func (d courseDoc) course() course.Course {
	return course.Course{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		TeacherName:  d.TeacherName,
		TeacherEmail: d.TeacherEmail,
		Price:        d.Price,
		Description:  d.Description,
		Image:        d.Image,
		EnrollCount:  d.EnrollCount,
		CreatedAt:    d.CreatedAt,
	}
}

func (d assignmentDoc) assignment() course.Assignment {
	return course.Assignment{
		ID:           d.ID.Hex(),
		CourseID:     d.CourseID,
		Title:        d.Title,
		Description:  d.Description,
		Deadline:     d.Deadline,
		TeacherEmail: d.TeacherEmail,
		CreatedAt:    d.CreatedAt,
	}
}

func (d submissionDoc) submission() course.Submission {
	return course.Submission{
		ID:           d.ID.Hex(),
		AssignmentID: d.AssignmentID,
		CourseID:     d.CourseID,
		Name:         d.Name,
		Email:        d.Email,
		Link:         d.Link,
		CreatedAt:    d.CreatedAt,
	}
}

func (d reviewDoc) review() course.Review {
	return course.Review{
		ID:        d.ID.Hex(),
		CourseID:  d.CourseID,
		Name:      d.Name,
		Email:     d.Email,
		Photo:     d.Photo,
		Rating:    d.Rating,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
	}
}

func (d classDoc) class() course.Class {
	return course.Class{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		TeacherName:  d.TeacherName,
		TeacherEmail: d.TeacherEmail,
		Price:        d.Price,
		Description:  d.Description,
		Image:        d.Image,
		Status:       d.Status,
		CreatedAt:    d.CreatedAt,
	}
}

type courseRepository struct {
	courses     *mongo.Collection
	assignments *mongo.Collection
	submissions *mongo.Collection
	reviews     *mongo.Collection
	classes     *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) course.Repository {
	return &courseRepository{
		courses:     db.Collection(courseColl),
		assignments: db.Collection(assignmentColl),
		submissions: db.Collection(submissionColl),
		reviews:     db.Collection(reviewColl),
		classes:     db.Collection(classColl),
	}
}

func (repo *courseRepository) QueryCourses(ctx context.Context, p core.Pagination) ([]course.Course, error) {
	// a zero limit means no limit
	opts := options.Find().SetSkip(p.Skip()).SetLimit(p.Limit())
	return findAll(ctx, repo.courses, courseDoc.course, opts)
}

func (repo *courseRepository) CountCourses(ctx context.Context) (int64, error) {
	n, err := repo.courses.EstimatedDocumentCount(ctx)
	return n, errors.Wrap(err, "counting courses")
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	return findByID(ctx, repo.courses, id, courseDoc.course, course.ErrNotFound)
}

func (repo *courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	doc := courseDoc{
		ID:           primitive.NewObjectID(),
		Title:        c.Title,
		TeacherName:  c.TeacherName,
		TeacherEmail: c.TeacherEmail,
		Price:        c.Price,
		Description:  c.Description,
		Image:        c.Image,
		EnrollCount:  c.EnrollCount,
		CreatedAt:    c.CreatedAt,
	}
	if err := insertOne(ctx, repo.courses, doc); err != nil {
		return course.Course{}, err
	}
	return doc.course(), nil
}

func (repo *courseRepository) QueryAssignments(ctx context.Context) ([]course.Assignment, error) {
	return findAll(ctx, repo.assignments, assignmentDoc.assignment)
}

func (repo *courseRepository) CreateAssignment(ctx context.Context, a course.Assignment) (course.Assignment, error) {
	doc := assignmentDoc{
		ID:           primitive.NewObjectID(),
		CourseID:     a.CourseID,
		Title:        a.Title,
		Description:  a.Description,
		Deadline:     a.Deadline,
		TeacherEmail: a.TeacherEmail,
		CreatedAt:    a.CreatedAt,
	}
	if err := insertOne(ctx, repo.assignments, doc); err != nil {
		return course.Assignment{}, err
	}
	return doc.assignment(), nil
}

func (repo *courseRepository) QuerySubmissions(ctx context.Context) ([]course.Submission, error) {
	return findAll(ctx, repo.submissions, submissionDoc.submission)
}

func (repo *courseRepository) CreateSubmission(ctx context.Context, s course.Submission) (course.Submission, error) {
	doc := submissionDoc{
		ID:           primitive.NewObjectID(),
		AssignmentID: s.AssignmentID,
		CourseID:     s.CourseID,
		Name:         s.Name,
		Email:        s.Email,
		Link:         s.Link,
		CreatedAt:    s.CreatedAt,
	}
	if err := insertOne(ctx, repo.submissions, doc); err != nil {
		return course.Submission{}, err
	}
	return doc.submission(), nil
}

func (repo *courseRepository) QueryReviews(ctx context.Context) ([]course.Review, error) {
	return findAll(ctx, repo.reviews, reviewDoc.review)
}

func (repo *courseRepository) CreateReview(ctx context.Context, r course.Review) (course.Review, error) {
	doc := reviewDoc{
		ID:        primitive.NewObjectID(),
		CourseID:  r.CourseID,
		Name:      r.Name,
		Email:     r.Email,
		Photo:     r.Photo,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
	if err := insertOne(ctx, repo.reviews, doc); err != nil {
		return course.Review{}, err
	}
	return doc.review(), nil
}

func (repo *courseRepository) QueryClasses(ctx context.Context) ([]course.Class, error) {
	return findAll(ctx, repo.classes, classDoc.class)
}

func (repo *courseRepository) CreateClass(ctx context.Context, c course.Class) (course.Class, error) {
	doc := classDoc{
		ID:           primitive.NewObjectID(),
		Title:        c.Title,
		TeacherName:  c.TeacherName,
		TeacherEmail: c.TeacherEmail,
		Price:        c.Price,
		Description:  c.Description,
		Image:        c.Image,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
	}
	if err := insertOne(ctx, repo.classes, doc); err != nil {
		return course.Class{}, err
	}
	return doc.class(), nil
}
