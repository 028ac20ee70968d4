package parlour

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/jimiolaniyan/parlour/auth"
)

// NewRouter wires every route of the API. metrics may be nil.
func NewRouter(svc Service, accounts auth.Service, tokens *auth.Tokens, sc auth.SessionCookie, metrics http.Handler) *httprouter.Router {
	router := httprouter.New()
	router.Handler(http.MethodGet, "/", IndexHandler())
	router.Handler(http.MethodGet, "/services", ListServicesHandler(svc))
	router.Handler(http.MethodGet, "/service/:id", auth.RequireAuth(GetServiceHandler(svc), tokens))
	router.Handler(http.MethodGet, "/reviews", ListReviewsHandler(svc))
	router.Handler(http.MethodPost, "/reviews", auth.RequireAuth(AddReviewHandler(svc), tokens))
	router.Handler(http.MethodPost, "/booking", auth.RequireAuth(AddBookingHandler(svc), tokens))
	router.Handler(http.MethodGet, "/booking/:email", auth.RequireAuth(ListBookingsHandler(svc), tokens))

	router.Handler(http.MethodGet, "/users/:email", auth.RequireAuth(auth.GetProfileHandler(accounts), tokens))
	router.Handler(http.MethodPut, "/users/:email", auth.RequireAuth(auth.UpdateProfileHandler(accounts), tokens))

	router.Handler(http.MethodPost, "/api/auth/register", auth.RegisterAccountHandler(accounts, sc))
	router.Handler(http.MethodPost, "/api/auth/login", auth.LoginHandler(accounts, sc))
	router.Handler(http.MethodGet, "/api/auth/checkUser", auth.RequireAuth(auth.CheckUserHandler(), tokens))
	router.Handler(http.MethodPost, "/api/auth/logout", auth.LogoutHandler(sc))

	if metrics != nil {
		router.Handler(http.MethodGet, "/metrics", metrics)
	}
	return router
}
