package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bus-arrival-server/api/arrivelah"
	"bus-arrival-server/config"
	"bus-arrival-server/dao/redis"
	"bus-arrival-server/db"
	services "bus-arrival-server/service"
)

var handlerNow = time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) *ArrivalHandler {
	t.Helper()
	fixture := filepath.Join("..", "..", config.RESOURCES_PATH_PREFIX, config.SERVICES_RESPONSE_RESOURCE)
	clock := func() time.Time { return handlerNow }
	api := arrivelah.NewArrivelahApiClientMock(fixture, clock, nil)
	dao := redis.NewRedisSessionDAO(db.NewMockRedisClient(), time.Hour)
	as := services.NewArrivalService(dao, api, time.UTC, nil)
	as.SetClock(clock)
	return NewArrivalHandler(as)
}

func postForm(h http.HandlerFunc, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func get(h http.HandlerFunc, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == SESSION_COOKIE_NAME {
			return c
		}
	}
	t.Fatalf("no %s cookie set", SESSION_COOKIE_NAME)
	return nil
}

func TestArrivalHandler_BoardFlow(t *testing.T) {
	h := newTestHandler(t)

	rr := postForm(h.SubmitQuery, "/arrivals", url.Values{STOP_ID_FORM_ARG: {"10009"}}, nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	cookie := sessionCookie(t, rr)

	rr = get(h.GetBoard, "/", cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `id="list-table"`)
	assert.Contains(t, body, "Data is updated as of 2/3/2025, 10:00:00 AM, GMT-00:00.")
	assert.Less(t, strings.Index(body, "<td>175</td>"), strings.Index(body, "<td>851</td>"))

	rr = postForm(h.SetFilter, "/filter", url.Values{FILTER_KIND_FORM_ARG: {"bus-number"}}, cookie)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	rr = postForm(h.ApplyFilterQuery, "/filter/query", url.Values{FILTER_QUERY_FORM_ARG: {"17"}}, cookie)
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	body = get(h.GetBoard, "/", cookie).Body.String()
	assert.Contains(t, body, "<td>175</td>")
	assert.NotContains(t, body, "<td>851</td>")
}

func TestArrivalHandler_SubmitInvalidShowsWarning(t *testing.T) {
	h := newTestHandler(t)

	rr := postForm(h.SubmitQuery, "/arrivals", url.Values{STOP_ID_FORM_ARG: {"abc"}}, nil)
	cookie := sessionCookie(t, rr)

	body := get(h.GetBoard, "/", cookie).Body.String()
	assert.Contains(t, body, "Invalid input format (Numeric only) on the following field(s). [Bus Stop ID].")
	assert.NotContains(t, body, `id="list-table"`)
}

func TestArrivalHandler_SetFilterRejectsUnknownKind(t *testing.T) {
	h := newTestHandler(t)

	rr := postForm(h.SetFilter, "/filter", url.Values{FILTER_KIND_FORM_ARG: {"colour"}}, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestArrivalHandler_GetBoardIssuesCookie(t *testing.T) {
	h := newTestHandler(t)

	rr := get(h.GetBoard, "/", &http.Cookie{Name: SESSION_COOKIE_NAME, Value: "not-a-uuid"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEqual(t, "not-a-uuid", sessionCookie(t, rr).Value)
	assert.Contains(t, rr.Body.String(), `id="bus-stop-form"`)
}

func TestArrivalHandler_GetChart(t *testing.T) {
	h := newTestHandler(t)
	cookie := sessionCookie(t, postForm(h.SubmitQuery, "/arrivals", url.Values{STOP_ID_FORM_ARG: {"10009"}}, nil))

	rr := get(h.GetChart, "/chart", cookie)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Bus Stop 10009")
}

func TestArrivalHandler_GetArrivals(t *testing.T) {
	h := newTestHandler(t)

	rr := get(h.GetArrivals, "/v1/arrivals?id=10009&filter=bus-operator&q=sbst", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var response ArrivalsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "10009", response.StopID)
	assert.Empty(t, response.Warning)
	assert.NotEmpty(t, response.Info)
	require.NotEmpty(t, response.Rows)
	for _, row := range response.Rows {
		assert.Equal(t, "SBST", row.Operator)
	}
	assert.Len(t, response.Instructions, len(response.Rows)+1)
}

func TestArrivalHandler_GetArrivalsInvalid(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"missing id", "/v1/arrivals", http.StatusBadRequest},
		{"non numeric id", "/v1/arrivals?id=12a", http.StatusBadRequest},
		{"unknown filter", "/v1/arrivals?id=10009&filter=colour", http.StatusBadRequest},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rr := get(h.GetArrivals, test.path, nil)
			assert.Equal(t, test.status, rr.Code)
		})
	}
}

func TestArrivalHandler_Ping(t *testing.T) {
	h := newTestHandler(t)

	rr := get(h.Ping, "/ping", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"pong"}`, rr.Body.String())
}

func TestDebugHandler_GetSession(t *testing.T) {
	h := newTestHandler(t)
	cookie := sessionCookie(t, postForm(h.SubmitQuery, "/arrivals", url.Values{STOP_ID_FORM_ARG: {"10009"}}, nil))
	debug := NewDebugHandler(h.arrivalService)

	rr := get(debug.GetSession, "/debug/session", cookie)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Session "+cookie.Value)
	assert.Contains(t, rr.Body.String(), "StopID")
}

func TestDebugHandler_RenderFailureWritesOnlyError(t *testing.T) {
	h := newTestHandler(t)
	debug := NewDebugHandler(h.arrivalService)
	debug.page = template.Must(template.New("broken").Parse("<p>partial</p>{{.Missing.Field}}"))

	rr := get(debug.GetSession, "/debug/session", nil)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal server error\n", rr.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
}
