package parlour

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"

	"github.com/jimiolaniyan/parlour/auth"
)

type app struct {
	handler http.Handler
	metrics *Metrics
	reg     *prometheus.Registry
	logs    *bytes.Buffer
}

func newApp(t *testing.T) *app {
	t.Helper()
	tokens := auth.NewTokens([]byte("secret"))
	accounts, err := auth.NewService(auth.NewAccountRepository(), auth.NewBcryptHasher(), tokens)
	require.NoError(t, err)

	catalog := NewService(
		NewCollection(Document{"_id": "s1", "name": "Facial"}),
		NewCollection(),
		NewCollection(),
	)

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	logs := &bytes.Buffer{}
	router := NewRouter(catalog, accounts, tokens, auth.SessionCookie{Secure: false}, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return &app{
		handler: LogHandler(zerolog.New(logs))(metrics.Instrument(router)),
		metrics: metrics,
		reg:     reg,
		logs:    logs,
	}
}

func (a *app) do(method, url, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, url, strings.NewReader(body))
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, r)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

func TestBookingJourney(t *testing.T) {
	Convey("Given a visitor V browsing the catalog", t, func() {
		a := newApp(t)

		w := a.do(http.MethodGet, "/services", "")
		So(w.Code, ShouldEqual, http.StatusOK)

		Convey("When V tries to book without an account", func() {
			w := a.do(http.MethodPost, "/booking", `{"service":"s1","email":"v@parlour.com"}`)

			Convey("Then the booking is refused", func() {
				So(w.Code, ShouldEqual, http.StatusUnauthorized)
			})
		})

		Convey("When V registers", func() {
			w := a.do(http.MethodPost, "/api/auth/register", `{"firstName":"Vee","lastName":"Visitor","email":"v@parlour.com","password":"secret-pass"}`)
			So(w.Code, ShouldEqual, http.StatusCreated)
			c := sessionCookie(w)
			So(c, ShouldNotBeNil)

			Convey("Then V is logged in", func() {
				w := a.do(http.MethodGet, "/api/auth/checkUser", "", c)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"email":"v@parlour.com"`)
			})

			Convey("And V can book and see only V's bookings", func() {
				w := a.do(http.MethodPost, "/booking", `{"service":"s1","email":"v@parlour.com","date":"2024-03-01"}`, c)
				So(w.Code, ShouldEqual, http.StatusCreated)

				w = a.do(http.MethodGet, "/booking/v@parlour.com", "", c)
				So(w.Code, ShouldEqual, http.StatusOK)
				var bookings []map[string]interface{}
				So(json.Unmarshal(w.Body.Bytes(), &bookings), ShouldBeNil)
				So(len(bookings), ShouldEqual, 1)
				So(bookings[0]["date"], ShouldEqual, "2024-03-01")

				w = a.do(http.MethodGet, "/booking/other@parlour.com", "", c)
				So(w.Code, ShouldEqual, http.StatusForbidden)
			})

			Convey("And after logging out the cookie is cleared", func() {
				w := a.do(http.MethodPost, "/api/auth/logout", "", c)
				So(w.Code, ShouldEqual, http.StatusOK)
				cleared := sessionCookie(w)
				So(cleared, ShouldNotBeNil)
				So(cleared.Value, ShouldBeEmpty)
				So(cleared.MaxAge, ShouldBeLessThan, 0)
			})
		})
	})
}

func TestRequestsAreLoggedAndCounted(t *testing.T) {
	a := newApp(t)

	a.do(http.MethodGet, "/", "")
	a.do(http.MethodGet, "/services", "")
	a.do(http.MethodGet, "/api/auth/checkUser", "")
	a.do(http.MethodPost, "/api/auth/login", `{"email":"x@y.com","password":"hunter2"}`)

	require.Equal(t, 2.0, testutil.ToFloat64(a.metrics.requests.WithLabelValues("200", "get")))
	require.Equal(t, 1.0, testutil.ToFloat64(a.metrics.requests.WithLabelValues("401", "get")))
	require.Equal(t, 1.0, testutil.ToFloat64(a.metrics.requests.WithLabelValues("400", "post")))

	logs := a.logs.String()
	require.Contains(t, logs, `"path":"/services"`)
	require.Contains(t, logs, `"status":401`)
	require.Contains(t, logs, `"req_id"`)
	require.NotContains(t, logs, "hunter2")

	w := a.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "parlour_http_requests_total")
}
