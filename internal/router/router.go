// Package router wires the HTTP surface: route table, CORS, and rate
// limiting middleware.
package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/moneytrack/moneytrack-backend/internal/auth"
	"github.com/moneytrack/moneytrack-backend/internal/billing"
	"github.com/moneytrack/moneytrack-backend/internal/dashboard"
	"github.com/moneytrack/moneytrack-backend/internal/goal"
	"github.com/moneytrack/moneytrack-backend/internal/invoice"
	"github.com/moneytrack/moneytrack-backend/internal/transaction"
	"github.com/moneytrack/moneytrack-backend/internal/user"
)

type Router struct {
	AuthHandler        *auth.Handler
	UserHandler        *user.Handler
	TransactionHandler *transaction.Handler
	GoalHandler        *goal.Handler
	InvoiceHandler     *invoice.Handler
	BillingHandler     *billing.Handler
	DashboardHandler   *dashboard.Handler

	AuthMW      fiber.Handler
	AuthLimiter fiber.Handler
	WriteLimit  fiber.Handler
}

// RegisterRoutes mounts every /api route. Static routes are registered
// before their /:id siblings so "stats/summary" never matches as an id.
func (r *Router) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	if r.AuthHandler != nil {
		authGroup := api.Group("/auth")
		if r.AuthLimiter != nil {
			authGroup.Post("/register", r.AuthLimiter, r.AuthHandler.Register)
			authGroup.Post("/login", r.AuthLimiter, r.AuthHandler.Login)
		} else {
			authGroup.Post("/register", r.AuthHandler.Register)
			authGroup.Post("/login", r.AuthHandler.Login)
		}
		authGroup.Get("/me", r.AuthMW, r.AuthHandler.Me)
		authGroup.Post("/logout", r.AuthMW, r.AuthHandler.Logout)
		authGroup.Post("/logout-all", r.AuthMW, r.AuthHandler.LogoutAll)
	}

	if r.UserHandler != nil {
		users := api.Group("/users", r.AuthMW)
		users.Get("/profile", r.UserHandler.GetProfile)
		users.Put("/profile", r.write(), r.UserHandler.UpdateProfile)
		users.Put("/change-password", r.write(), r.UserHandler.ChangePassword)
		users.Get("/settings", r.UserHandler.GetSettings)
		users.Put("/settings", r.write(), r.UserHandler.UpdateSettings)
	}

	if r.TransactionHandler != nil {
		tx := api.Group("/transactions", r.AuthMW)
		tx.Get("/stats/summary", r.TransactionHandler.Stats)
		tx.Get("/", r.TransactionHandler.List)
		tx.Post("/", r.write(), r.TransactionHandler.Create)
		tx.Get("/:id", r.TransactionHandler.Get)
		tx.Put("/:id", r.write(), r.TransactionHandler.Update)
		tx.Delete("/:id", r.write(), r.TransactionHandler.Delete)
	}

	if r.GoalHandler != nil {
		goals := api.Group("/savings-goals", r.AuthMW)
		goals.Get("/stats/summary", r.GoalHandler.Stats)
		goals.Get("/", r.GoalHandler.List)
		goals.Post("/", r.write(), r.GoalHandler.Create)
		goals.Get("/:id", r.GoalHandler.Get)
		goals.Put("/:id", r.write(), r.GoalHandler.Update)
		goals.Post("/:id/add-savings", r.write(), r.GoalHandler.AddSavings)
		goals.Delete("/:id", r.write(), r.GoalHandler.Delete)
	}

	if r.InvoiceHandler != nil {
		invoices := api.Group("/invoices", r.AuthMW)
		invoices.Get("/stats/summary", r.InvoiceHandler.Stats)
		invoices.Get("/", r.InvoiceHandler.List)
		invoices.Post("/", r.write(), r.InvoiceHandler.Create)
		invoices.Get("/:id/pdf", r.InvoiceHandler.DownloadPDF)
		invoices.Get("/:id", r.InvoiceHandler.Get)
		invoices.Put("/:id", r.write(), r.InvoiceHandler.Update)
		invoices.Delete("/:id", r.write(), r.InvoiceHandler.Delete)
	}

	if r.BillingHandler != nil {
		bill := api.Group("/billing", r.AuthMW)
		bill.Get("/info", r.BillingHandler.ListInfo)
		bill.Post("/info", r.write(), r.BillingHandler.CreateInfo)
		bill.Put("/info/:id", r.write(), r.BillingHandler.UpdateInfo)
		bill.Delete("/info/:id", r.write(), r.BillingHandler.DeleteInfo)
		bill.Get("/payment-methods", r.BillingHandler.ListPaymentMethods)
		bill.Post("/payment-methods", r.write(), r.BillingHandler.CreatePaymentMethod)
		bill.Delete("/payment-methods/:id", r.write(), r.BillingHandler.DeletePaymentMethod)
		bill.Get("/history", r.BillingHandler.History)
		bill.Get("/summary", r.BillingHandler.Summary)
	}

	if r.DashboardHandler != nil {
		dash := api.Group("/dashboard", r.AuthMW)
		dash.Get("/stats", r.DashboardHandler.Stats)
		dash.Get("/charts/sales", r.DashboardHandler.SalesChart)
		dash.Get("/charts/performance", r.DashboardHandler.PerformanceChart)
		dash.Get("/page-visits", r.DashboardHandler.PageVisits)
		dash.Get("/social-traffic", r.DashboardHandler.SocialTraffic)
		dash.Get("/recent-activity", r.DashboardHandler.RecentActivity)
		dash.Get("/overview", r.DashboardHandler.Overview)
	}
}

// write returns the write limiter, or a pass-through when none is set.
func (r *Router) write() fiber.Handler {
	if r.WriteLimit != nil {
		return r.WriteLimit
	}
	return func(c *fiber.Ctx) error { return c.Next() }
}
