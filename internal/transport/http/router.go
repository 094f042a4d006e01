package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-otp-nosql/internal/application/content"
	"github.com/go-otp-nosql/internal/application/delivery"
	"github.com/go-otp-nosql/internal/application/issuance"
	"github.com/go-otp-nosql/internal/application/verification"
	"github.com/go-otp-nosql/internal/config"
	"github.com/go-otp-nosql/internal/domain"
	jwtinfra "github.com/go-otp-nosql/internal/infrastructure/jwt"
	"github.com/go-otp-nosql/internal/infrastructure/smtp"
	"github.com/go-otp-nosql/internal/infrastructure/sns"
	"github.com/go-otp-nosql/internal/transport/http/handler"
	appmiddleware "github.com/go-otp-nosql/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
// A nil Mailer or SMSSender selects console delivery for that channel.
// A nil JWTProvider leaves the issue route unmounted.
type Deps struct {
	Customers   RecordRepository
	Vendors     RecordRepository
	Admins      RecordRepository
	Mailer      smtp.Mailer
	SMSSender   sns.SMSSender
	JWTProvider *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10, on the public code endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	stores := verification.Stores{
		domain.RoleCustomer: deps.Customers,
		domain.RoleVendor:   deps.Vendors,
		domain.RoleAdmin:    deps.Admins,
	}
	exposeCode := !cfg.IsProduction()

	verifySvc := verification.NewService(verification.ServiceDeps{
		Stores:      stores,
		Content:     content.NewGenerator(cfg.BrandName, cfg.SupportEmail),
		Email:       delivery.NewEmailAdapter(deps.Mailer, cfg.DeliveryTimeout),
		SMS:         delivery.NewSMSAdapter(deps.SMSSender, cfg.SMSCountryCode, cfg.DeliveryTimeout),
		CountryCode: cfg.SMSCountryCode,
		ExposeCode:  exposeCode,
	})
	issueSvc := issuance.NewService(issuance.ServiceDeps{
		Stores:     stores,
		TTL:        cfg.CodeTTL,
		ExposeCode: exposeCode,
	})

	healthH := handler.NewHealthHandler()
	otpH := handler.NewOTPHandler(verifySvc, issueSvc)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)

		r.Route("/otp", func(r chi.Router) {
			r.With(sensitiveRL.Limit).Post("/send", otpH.Send)
			r.With(sensitiveRL.Limit).Post("/verify", otpH.Verify)
			r.With(sensitiveRL.Limit).Post("/cancel", otpH.Cancel)

			if deps.JWTProvider != nil {
				r.Group(func(r chi.Router) {
					r.Use(appmiddleware.Auth(deps.JWTProvider))
					r.Use(appmiddleware.RequireRole(domain.ResolutionOrder...))
					r.With(sensitiveRL.Limit).Post("/issue", otpH.Issue)
				})
			}
		})
	})

	return r
}
