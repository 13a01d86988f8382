// Package familybudget предоставляет маршруты для основного приложения.
package familybudget

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/fambudgeteer/family-budget/internal/entitlement"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/admin/admindashboard"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/admin/adminusers"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/auth/login"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/auth/register"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/billing/subscriptionwebhook"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/category/categorycreate"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/category/categorylist"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/category/categoryremove"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/category/categoryupdate"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/family/familycreate"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/family/familyget"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/health"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/liability/liabilitycreate"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/liability/liabilitylist"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/liability/liabilityremove"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/liability/liabilityupdate"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/member/membercreate"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/member/memberlist"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/member/memberremove"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/member/memberupdate"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/networth/networthget"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/transaction/transactioncreate"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/transaction/transactionlist"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/transaction/transactionremove"
	"github.com/fambudgeteer/family-budget/internal/http/handlers/transaction/transactionupdate"
	"github.com/fambudgeteer/family-budget/internal/http/middlewarectx"
	"github.com/fambudgeteer/family-budget/internal/lib/jwt"
	accessservice "github.com/fambudgeteer/family-budget/internal/services/access"
	adminservice "github.com/fambudgeteer/family-budget/internal/services/admin"
	authservice "github.com/fambudgeteer/family-budget/internal/services/auth"
	billingservice "github.com/fambudgeteer/family-budget/internal/services/billing"
	categoryservice "github.com/fambudgeteer/family-budget/internal/services/category"
	familyservice "github.com/fambudgeteer/family-budget/internal/services/family"
	liabilityservice "github.com/fambudgeteer/family-budget/internal/services/liability"
	networthservice "github.com/fambudgeteer/family-budget/internal/services/networth"
	transactionservice "github.com/fambudgeteer/family-budget/internal/services/transaction"
)

// RegisterRoutes регистрирует все маршруты приложения.
//
// Категории и записи доступны на любом тарифе. Обязательства и чистый
// капитал требуют тариф premium, участники семьи — тариф family.
// Административная область доступна только роли admin.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, webhookSecret string,
	authService *authservice.Service, accessService *accessservice.Service,
	categoryService *categoryservice.Service, transactionService *transactionservice.Service,
	liabilityService *liabilityservice.Service, networthService *networthservice.Service,
	familyService *familyservice.Service, adminService *adminservice.Service,
	billingService *billingservice.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Webhook биллинга (без аутентификации, с проверкой подписи)
		r.Post("/subscriptions/webhook", subscriptionwebhook.New(logger, billingService, webhookSecret).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/categories", categorycreate.New(logger, categoryService).ServeHTTP)
			r.Get("/categories", categorylist.New(logger, categoryService).ServeHTTP)
			r.Put("/categories/{id}", categoryupdate.New(logger, categoryService).ServeHTTP)
			r.Delete("/categories/{id}", categoryremove.New(logger, categoryService).ServeHTTP)

			r.Post("/transactions", transactioncreate.New(logger, transactionService).ServeHTTP)
			r.Get("/transactions", transactionlist.New(logger, transactionService).ServeHTTP)
			r.Put("/transactions/{id}", transactionupdate.New(logger, transactionService).ServeHTTP)
			r.Delete("/transactions/{id}", transactionremove.New(logger, transactionService).ServeHTTP)

			// Чтение своей семьи доступно всем, создание — только на тарифе family
			r.Get("/family", familyget.New(logger, familyService).ServeHTTP)

			// Тариф premium
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequirePlan(entitlement.PlanPremium, accessService, logger))
				r.Post("/liabilities", liabilitycreate.New(logger, liabilityService).ServeHTTP)
				r.Get("/liabilities", liabilitylist.New(logger, liabilityService).ServeHTTP)
				r.Put("/liabilities/{id}", liabilityupdate.New(logger, liabilityService).ServeHTTP)
				r.Delete("/liabilities/{id}", liabilityremove.New(logger, liabilityService).ServeHTTP)
				r.Get("/networth", networthget.New(logger, networthService).ServeHTTP)
			})

			// Тариф family
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequirePlan(entitlement.PlanFamily, accessService, logger))
				r.Post("/family", familycreate.New(logger, familyService).ServeHTTP)
				r.Post("/members", membercreate.New(logger, familyService).ServeHTTP)
				r.Get("/members", memberlist.New(logger, familyService).ServeHTTP)
				r.Put("/members/{id}", memberupdate.New(logger, familyService).ServeHTTP)
				r.Delete("/members/{id}", memberremove.New(logger, familyService).ServeHTTP)
			})

			// Административная область
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnly(logger))
				r.Get("/admin/users", adminusers.New(logger, adminService).ServeHTTP)
				r.Get("/admin/dashboard", admindashboard.New(logger, adminService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
