package http

import (
	"log/slog"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

type Handlers struct {
	Auth         AuthHandler
	Payroll      PayrollHandler
	Employee     EmployeeHandler
	Notification NotificationHandler
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			// EventSource cannot set headers, so the stream also accepts ?jwt=
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromQuery))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Get("/notifications/stream", h.Notification.Stream)

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeeManage)).Post("/", h.Employee.Create)
				r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/", h.Employee.List)
				r.Get("/{id}", h.Employee.Get)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(chiMiddleware.AllowContentType("application/json"))

				r.With(middleware.RequirePermission(user.PermissionPayrollCreate)).Post("/", h.Payroll.CreatePayroll)
				r.With(middleware.RequirePermission(user.PermissionPayrollViewAll)).Get("/", h.Payroll.ListPayroll)
				r.Get("/me", h.Payroll.ListMyPayroll)
				r.With(middleware.RequirePermission(user.PermissionPayrollExport)).Get("/export", h.Payroll.ExportPayroll)
				r.With(middleware.RequirePermission(user.PermissionPayrollExport)).Get("/exports/{name}", h.Payroll.DownloadExport)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Payroll.GetPayroll)
					r.With(middleware.RequirePermission(user.PermissionPayrollEdit)).Put("/", h.Payroll.UpdatePayroll)
					r.With(middleware.RequirePermission(user.PermissionPayrollDelete)).Delete("/", h.Payroll.DeletePayroll)
				})
			})
		})
	})
	return r
}
