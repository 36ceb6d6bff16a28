package tests

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	echoapi "github.com/abovethehill/churchadmin/apps/api/echo"
	"github.com/abovethehill/churchadmin/core"
	"github.com/abovethehill/churchadmin/core/attendance"
	"github.com/abovethehill/churchadmin/core/communication"
	"github.com/abovethehill/churchadmin/core/finance"
	"github.com/abovethehill/churchadmin/core/member"
	dummymail "github.com/abovethehill/churchadmin/services/email/dummy"
	logsvc "github.com/abovethehill/churchadmin/services/logger"
	inmemdb "github.com/abovethehill/churchadmin/storage/inmem"
)

const adminPassword = "Sup3rS3cret!"

func TestMain(m *testing.M) {
	core.Conf.Admin.Password = adminPassword
	os.Exit(m.Run())
}

// setup builds a fresh app on an empty in-memory store so tests stay
// order-independent.
func setup(t *testing.T) (echoapi.Server, *dummymail.Service) {
	t.Helper()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open(): %v", err)
	}
	mailSvc := dummymail.NewService()

	app := echoapi.NewServer(&echoapi.Options{
		DisableReqLogs:  true,
		Conf:            core.Conf,
		Logger:          logsvc.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags)),
		AttendanceSvc:   attendance.NewService(inmemdb.NewAttendanceRepository(db), mailSvc, core.Conf),
		FinanceSvc:      finance.NewService(inmemdb.NewFinanceRepository(db), mailSvc, core.Conf),
		MemberSvc:       member.NewService(inmemdb.NewMemberRepository(db)),
		AnnouncementSvc: communication.NewService(inmemdb.NewCommunicationRepository(db), core.Conf),
	})
	return app, mailSvc
}

// envelope mirrors the API's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
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

func getToken(t *testing.T) string {
	t.Helper()

	claims := echoapi.NewAdminClaims(core.Conf)
	token, err := echoapi.GenerateToken(claims, core.Conf.SecretKey)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func do(t *testing.T, app echoapi.Server, req *http.Request, rec *httptest.ResponseRecorder, wantCode int) envelope {
	t.Helper()

	app.ServeHTTP(rec, req)
	if rec.Code != wantCode {
		t.Fatalf("%s %s: code = %v; wantCode %v; body %s",
			req.Method, req.URL.Path, rec.Code, wantCode, rec.Body.String())
	}

	var env envelope
	if len(rec.Body.Bytes()) > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decoding envelope: %v; body %s", err, rec.Body.String())
		}
	}
	return env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()

	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decoding data: %v; data %s", err, string(env.Data))
	}
}

func fieldErrors(t *testing.T, env envelope) map[string]string {
	t.Helper()

	flds := make(map[string]string)
	if len(env.Error) > 0 {
		if err := json.Unmarshal(env.Error, &flds); err != nil {
			t.Fatalf("decoding field errors: %v; error %s", err, string(env.Error))
		}
	}
	return flds
}
