package routes

import (
	"net/http"
	"time"

	"project/controllers"
	"project/controllers/auth"
	"project/middleware"

	"github.com/gorilla/mux"
)

// ApiRoutes registers every resource route on the given subrouter.
func ApiRoutes(api *mux.Router) {
	// Login/register limiter: 60 per IP per 5 minutes
	loginLimiter := middleware.NewIPRateLimiter(60, 5*time.Minute)
	// Session limiter: 120 reads / 60 writes per user per minute
	userLimiter := middleware.NewUserRateLimiter(120, 60, 60)

	authed := func(h http.HandlerFunc) http.Handler {
		return userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(h)))
	}
	public := func(h http.HandlerFunc) http.Handler {
		return userLimiter.Middleware(http.HandlerFunc(h))
	}

	// Auth
	api.Handle("/users/register", loginLimiter.Middleware(http.HandlerFunc(controllers.RegisterHandler))).Methods(http.MethodPost)
	api.Handle("/auth/login", loginLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)
	api.Handle("/auth/refresh", loginLimiter.Middleware(http.HandlerFunc(auth.RefreshHandler))).Methods(http.MethodPost)
	api.Handle("/auth/logout", authed(auth.LogoutHandler)).Methods(http.MethodPost)

	// Users
	api.Handle("/users", authed(controllers.UserListHandler)).Methods(http.MethodGet)
	api.Handle("/users/me", authed(controllers.MeHandler)).Methods(http.MethodGet)
	api.Handle("/users/{id:[0-9]+}", authed(controllers.UserGetHandler)).Methods(http.MethodGet)
	api.Handle("/users/{id:[0-9]+}", authed(controllers.UserUpdateHandler)).Methods(http.MethodPut)
	api.Handle("/users/{id:[0-9]+}", userLimiter.Middleware(middleware.AuthMiddleware(middleware.RequireRole(http.HandlerFunc(controllers.UserDeleteHandler), "admin")))).Methods(http.MethodDelete)

	// Startups
	api.Handle("/startups", public(controllers.StartupListHandler)).Methods(http.MethodGet)
	api.Handle("/startups", authed(controllers.StartupCreateHandler)).Methods(http.MethodPost)
	api.Handle("/startups/slug/{slug}", public(controllers.StartupGetBySlugHandler)).Methods(http.MethodGet)
	api.Handle("/startups/{id:[0-9]+}", public(controllers.StartupGetHandler)).Methods(http.MethodGet)
	api.Handle("/startups/{id:[0-9]+}", authed(controllers.StartupUpdateHandler)).Methods(http.MethodPut)
	api.Handle("/startups/{id:[0-9]+}", authed(controllers.StartupDeleteHandler)).Methods(http.MethodDelete)

	// Investors
	api.Handle("/investors", public(controllers.InvestorListHandler)).Methods(http.MethodGet)
	api.Handle("/investors", authed(controllers.InvestorCreateHandler)).Methods(http.MethodPost)
	api.Handle("/investors/user/{userId:[0-9]+}", authed(controllers.InvestorGetByUserHandler)).Methods(http.MethodGet)
	api.Handle("/investors/user/{userId:[0-9]+}", authed(controllers.InvestorUpdateByUserHandler)).Methods(http.MethodPut)
	api.Handle("/investors/{id:[0-9]+}", public(controllers.InvestorGetHandler)).Methods(http.MethodGet)
	api.Handle("/investors/{id:[0-9]+}", authed(controllers.InvestorUpdateHandler)).Methods(http.MethodPut)
	api.Handle("/investors/{id:[0-9]+}", authed(controllers.InvestorDeleteHandler)).Methods(http.MethodDelete)

	// Offers; status changes have their own endpoint backed by the
	// acceptance workflow
	api.Handle("/offers", authed(controllers.OfferListHandler)).Methods(http.MethodGet)
	api.Handle("/offers", authed(controllers.OfferCreateHandler)).Methods(http.MethodPost)
	api.Handle("/offers/{id:[0-9]+}", authed(controllers.OfferGetHandler)).Methods(http.MethodGet)
	api.Handle("/offers/{id:[0-9]+}", authed(controllers.OfferUpdateHandler)).Methods(http.MethodPut)
	api.Handle("/offers/{id:[0-9]+}", authed(controllers.OfferDeleteHandler)).Methods(http.MethodDelete)
	api.Handle("/offers/{id:[0-9]+}/status", authed(controllers.OfferStatusHandler)).Methods(http.MethodPatch)

	// Investments
	api.Handle("/investments", authed(controllers.InvestmentListHandler)).Methods(http.MethodGet)
	api.Handle("/investments", authed(controllers.InvestmentCreateHandler)).Methods(http.MethodPost)
	api.Handle("/investments/investor/{investorId:[0-9]+}", authed(controllers.InvestmentsByInvestorHandler)).Methods(http.MethodGet)
	api.Handle("/investments/startup/{startupId:[0-9]+}", authed(controllers.InvestmentsByStartupHandler)).Methods(http.MethodGet)
	api.Handle("/investments/{id:[0-9]+}", authed(controllers.InvestmentGetHandler)).Methods(http.MethodGet)
	api.Handle("/investments/{id:[0-9]+}", authed(controllers.InvestmentUpdateHandler)).Methods(http.MethodPut)
	api.Handle("/investments/{id:[0-9]+}", userLimiter.Middleware(middleware.AuthMiddleware(middleware.RequireRole(http.HandlerFunc(controllers.InvestmentDeleteHandler), "admin")))).Methods(http.MethodDelete)

	// Startup metrics
	api.Handle("/startup-metrics", public(controllers.StartupMetricListHandler)).Methods(http.MethodGet)
	api.Handle("/startup-metrics", authed(controllers.StartupMetricCreateHandler)).Methods(http.MethodPost)
	api.Handle("/startup-metrics/{id:[0-9]+}", public(controllers.StartupMetricGetHandler)).Methods(http.MethodGet)
	api.Handle("/startup-metrics/{id:[0-9]+}", authed(controllers.StartupMetricUpdateHandler)).Methods(http.MethodPut)
	api.Handle("/startup-metrics/{id:[0-9]+}", authed(controllers.StartupMetricDeleteHandler)).Methods(http.MethodDelete)

	// Attachment uploads
	api.Handle("/uploads", authed(controllers.UploadHandler)).Methods(http.MethodPost)
}
