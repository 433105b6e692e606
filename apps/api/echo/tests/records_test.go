package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/skillboost/core"
	"github.com/trezcool/skillboost/core/course"
)

// postRecord posts data to path and returns the inserted id.
func postRecord(t *testing.T, app testApp, path string, data interface{}) string {
	t.Helper()
	req, rec := newRequest(http.MethodPost, path, marchallObj(t, data))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res core.InsertResult
	decode(t, rec, &res)
	require.True(t, res.Acknowledged)
	require.NotEmpty(t, res.InsertedID)
	return res.InsertedID
}

func Test_recordApi_assignments(t *testing.T) {
	app := setup(t)

	id := postRecord(t, app, "/assignments", course.NewAssignment{
		CourseID:     "c1",
		Title:        "Build a CLI",
		Deadline:     "2024-06-01",
		TeacherEmail: "Jane@x.com",
	})

	items, err := app.courseRepo.QueryAssignments(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.Equal(t, "jane@x.com", items[0].TeacherEmail)

	runHTTPTests(t, app, []httpTest{
		{name: "query", method: http.MethodGet, path: "/assignments", wantData: marchallList(t, items[0])},
		{
			name: "required fields", method: http.MethodPost, path: "/assignments", body: []byte(`{"email":"jane@x.com"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"courseId": "this field is required", "title": "this field is required"}),
		},
	})
}

func Test_recordApi_submissions(t *testing.T) {
	app := setup(t)

	postRecord(t, app, "/submission", course.NewSubmission{
		AssignmentID: "a1",
		Email:        "student@x.com",
		Link:         "https://github.com/student/cli",
	})

	items, err := app.courseRepo.QuerySubmissions(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	runHTTPTests(t, app, []httpTest{
		{name: "query", method: http.MethodGet, path: "/submission", wantData: marchallList(t, items[0])},
		{
			name: "link must be a url", method: http.MethodPost, path: "/submission", wantCode: http.StatusBadRequest,
			body:     marchallObj(t, course.NewSubmission{AssignmentID: "a1", Email: "student@x.com", Link: "lol"}),
			wantData: []byte(`{"link":"link must be a valid URL"}`),
		},
	})
}

func Test_recordApi_reviews(t *testing.T) {
	app := setup(t)

	postRecord(t, app, "/reviews", course.NewReview{
		CourseID: "c1",
		Email:    "student@x.com",
		Rating:   5,
		Comment:  "great",
	})

	items, err := app.courseRepo.QueryReviews(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Rating)

	for _, rating := range []int{0, 6} {
		req, rec := newRequest(http.MethodPost, "/reviews", marchallObj(t, course.NewReview{Email: "student@x.com", Rating: rating}))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "rating %d", rating)
	}

	runHTTPTests(t, app, []httpTest{
		{name: "query", method: http.MethodGet, path: "/reviews", wantData: marchallList(t, items[0])},
	})
}

func Test_recordApi_classes(t *testing.T) {
	app := setup(t)

	postRecord(t, app, "/addClass", course.NewClass{
		Title:        "Go Concurrency",
		TeacherEmail: "jane@x.com",
		Price:        49,
	})

	items, err := app.courseRepo.QueryClasses(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, course.ClassStatusPending, items[0].Status)

	runHTTPTests(t, app, []httpTest{
		{name: "query", method: http.MethodGet, path: "/addClass", wantData: marchallList(t, items[0])},
	})
}
