package tests

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/skillboost/core/payment"
)

func Test_paymentApi_createIntent(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodPost, "/create-payment-intent", []byte(`{"price":19.99}`))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var res payment.IntentResult
	decode(t, rec, &res)
	assert.True(t, strings.HasPrefix(res.ClientSecret, "pi_"), res.ClientSecret)

	// bounds are left to the processor
	for _, body := range []string{`{"price":0}`, `{"price":-5}`, `{}`} {
		req, rec := newRequest(http.MethodPost, "/create-payment-intent", []byte(body))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, body)
	}

	runHTTPTests(t, app, []httpTest{
		{
			name: "amount overflows", method: http.MethodPost, path: "/create-payment-intent", body: []byte(`{"price":1e30}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"price":"is out of range"}`),
		},
		{
			name: "negative amount overflows", method: http.MethodPost, path: "/create-payment-intent", body: []byte(`{"price":-1e30}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"price":"is out of range"}`),
		},
	})
}

func Test_paymentApi(t *testing.T) {
	app := setup(t)

	id := postRecord(t, app, "/payments", payment.NewPayment{
		Email:         "Student@x.com",
		CourseID:      "c1",
		CourseTitle:   "Go 101",
		Price:         19.99,
		TransactionID: "pi_123",
	})

	p, err := app.payRepo.GetPaymentByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "student@x.com", p.Email)
	assert.False(t, p.CreatedAt.IsZero())

	tests := []httpTest{
		{name: "query", method: http.MethodGet, path: "/payments", wantData: marchallList(t, p)},
		{name: "retrieve", method: http.MethodGet, path: "/payments/" + id, wantData: marchallObj(t, p)},
		{name: "retrieve: not found", method: http.MethodGet, path: "/payments/lol", wantData: []byte(`null`)},
		{
			name: "transaction id required", method: http.MethodPost, path: "/payments",
			body: []byte(`{"email":"student@x.com","price":10}`), wantCode: http.StatusBadRequest,
			wantData: []byte(`{"transactionId":"this field is required"}`),
		},
	}
	runHTTPTests(t, app, tests)
}
