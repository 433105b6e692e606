package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	. "github.com/trezcool/skillboost/apps/api/echo"
	"github.com/trezcool/skillboost/core"
	"github.com/trezcool/skillboost/core/auth"
	"github.com/trezcool/skillboost/core/course"
	"github.com/trezcool/skillboost/core/payment"
	"github.com/trezcool/skillboost/core/user"
	"github.com/trezcool/skillboost/services/logger"
	"github.com/trezcool/skillboost/services/payment"
	"github.com/trezcool/skillboost/storage/database/inmem"
)

var (
	errMissingToken = httpErr{Error: "unauthorized access"}
	errForbidden    = httpErr{Error: "forbidden access"}
)

type (
	testApp struct {
		*Server
		tokens     *auth.TokenService
		usrRepo    user.Repository
		courseRepo course.Repository
		payRepo    payment.Repository
	}

	appOption func(conf *core.Config, deps *Deps)
)

func withoutAdminGuard() appOption {
	return func(conf *core.Config, _ *Deps) {
		conf.Server.GuardAdminRoutes = false
	}
}

func withCourseRepo(repo course.Repository) appOption {
	return func(_ *core.Config, deps *Deps) {
		deps.CourseSvc = course.NewService(repo)
	}
}

// setup returns a server backed by a fresh in-memory DB.
func setup(t *testing.T, opts ...appOption) testApp {
	t.Helper()

	conf := &core.Config{
		AppName:   "SkillBoost",
		Env:       "TEST",
		TestMode:  true,
		SecretKey: "test-secret",
		Server: core.ServerConfig{
			JWTExpirationDelta: time.Hour,
			GuardAdminRoutes:   true,
			DisableReqLogs:     true,
		},
	}

	// set up DB & repos
	db := inmemdb.Open()
	app := testApp{
		usrRepo:    inmemdb.NewUserRepository(db),
		courseRepo: inmemdb.NewCourseRepository(db),
		payRepo:    inmemdb.NewPaymentRepository(db),
		tokens:     auth.NewTokenService(conf.AppName, conf.SecretKey, conf.Server.JWTExpirationDelta),
	}

	// set up services
	logger := logsvc.NewRollbarLogger(zap.NewNop(), conf)
	logger.Enable(false)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	deps := Deps{
		Conf:       conf,
		Logger:     logger,
		Validate:   validate,
		Translator: translator,
		Tokens:     app.tokens,
		UserSvc:    user.NewService(app.usrRepo),
		CourseSvc:  course.NewService(app.courseRepo),
		PaymentSvc: payment.NewService(app.payRepo, paymentsvc.NewConsoleProcessor(logger)),
	}
	for _, opt := range opts {
		opt(conf, &deps)
	}

	// set up server
	app.Server = NewServer(deps)
	return app
}

func (app testApp) getToken(t *testing.T, email string) string {
	token, err := app.tokens.Issue(auth.Claims{Email: email})
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	assert.Equal(t, tt.wantCode, rec.Code, "code")
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app testApp, tests []httpTest) {
	for _, tt := range tests {
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("json.Unmarshal() failed: %v; body %s", err, rec.Body.String())
	}
}
