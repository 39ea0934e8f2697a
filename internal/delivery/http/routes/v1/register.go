package v1

import (
	"studentshub/internal/delivery/http/handler"
	"studentshub/internal/delivery/http/middleware"
	"studentshub/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth          *middleware.AuthMiddleware
	AuthHandler   *handler.AuthHandler
	Users         *handler.UserHandler
	Jobs          *handler.JobHandler
	Applications  *handler.ApplicationHandler
	SavedJobs     *handler.SavedJobHandler
	SavedSearches *handler.SavedSearchHandler
	Notifications *handler.NotificationHandler
	Messages      *handler.MessageHandler
	Dashboard     *handler.DashboardHandler
	Admin         *handler.AdminHandler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil || h.Auth == nil {
		return
	}

	authed := h.Auth.Middleware()
	student := middleware.RequireRole(user.RoleStudent)
	company := middleware.RequireRole(user.RoleCompany)
	employer := middleware.RequireRole(user.RoleCompany, user.RoleAdmin)
	admin := middleware.RequireRole(user.RoleAdmin)

	if h.AuthHandler != nil {
		h.AuthHandler.RegisterRoutes(r.Group("/auth"))
	}

	if h.Users != nil {
		r.Get("/users/me", authed, h.Users.GetMe)
		r.Get("/students/me", authed, student, h.Users.GetStudentProfile)
		r.Put("/students/me", authed, student, h.Users.UpdateStudentProfile)
		r.Get("/companies/me", authed, company, h.Users.GetCompanyProfile)
		r.Put("/companies/me", authed, company, h.Users.UpsertCompanyProfile)
	}

	if h.Jobs != nil {
		jobs := r.Group("/jobs")
		jobs.Get("/", h.Auth.Optional(), h.Jobs.List)
		jobs.Get("/facets", h.Jobs.Facets)
		jobs.Post("/", authed, employer, h.Jobs.Create)
		jobs.Get("/:id", h.Auth.Optional(), h.Jobs.Get)
		jobs.Patch("/:id", authed, employer, h.Jobs.Update)
		jobs.Delete("/:id", authed, employer, h.Jobs.Deactivate)
		jobs.Get("/:id/applications", authed, employer, h.Jobs.Applications)

		r.Get("/companies/me/jobs", authed, company, h.Jobs.CompanyJobs)
		r.Get("/students/me/recommended-jobs", authed, student, h.Jobs.Recommended)
	}

	apps := r.Group("/applications", authed)
	if h.Applications != nil {
		apps.Post("/", student, h.Applications.Apply)
		apps.Get("/:id", h.Applications.Get)
		apps.Patch("/:id/status", employer, h.Applications.UpdateStatus)
		apps.Delete("/:id", student, h.Applications.Withdraw)

		r.Get("/students/me/applications", authed, student, h.Applications.Mine)
		r.Get("/students/:id/applications", authed, h.Applications.ForStudent)
		r.Get("/companies/me/applications", authed, company, h.Applications.ForCompany)
	}

	if h.Messages != nil {
		apps.Get("/:id/messages", h.Messages.List)
		apps.Post("/:id/messages", h.Messages.Send)
	}

	if h.SavedJobs != nil {
		saved := r.Group("/saved-jobs", authed, student)
		saved.Post("/", h.SavedJobs.Save)
		saved.Get("/", h.SavedJobs.List)
		saved.Get("/upcoming", h.SavedJobs.Upcoming)
		saved.Get("/stats", h.SavedJobs.Stats)
		saved.Delete("/bulk", h.SavedJobs.BulkUnsave)
		saved.Get("/:jobId", h.SavedJobs.Check)
		saved.Put("/:jobId/notes", h.SavedJobs.UpdateNotes)
		saved.Delete("/:jobId", h.SavedJobs.Unsave)
	}

	if h.SavedSearches != nil {
		ss := r.Group("/saved-searches", authed)
		ss.Get("/", h.SavedSearches.List)
		ss.Post("/", h.SavedSearches.Save)
		ss.Delete("/:id", h.SavedSearches.Delete)
	}

	if h.Dashboard != nil {
		d := r.Group("/dashboard", authed)
		d.Get("/stats", h.Dashboard.Stats)
		d.Get("/upcoming-deadlines", h.Dashboard.UpcomingDeadlines)
		d.Get("/recent-activity", h.Dashboard.RecentActivity)
	}

	if h.Notifications != nil {
		n := r.Group("/notifications", authed)
		n.Get("/", h.Notifications.List)
		n.Get("/unread-count", h.Notifications.UnreadCount)
		n.Put("/read-all", h.Notifications.MarkAllRead)
		n.Put("/:id/read", h.Notifications.MarkRead)
	}

	if h.Admin != nil {
		a := r.Group("/admin", authed, admin)
		a.Get("/stats", h.Admin.Stats)
		a.Put("/companies/:id/verification", h.Admin.SetCompanyVerification)
	}
}
