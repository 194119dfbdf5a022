package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/sempozyum/internal/app/controllers"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/middleware"
)

// Controllers groups every HTTP controller the router mounts
type Controllers struct {
	Auth      *controllers.AuthController
	User      *controllers.UserController
	Symposium *controllers.SymposiumController
	Paper     *controllers.PaperController
	Review    *controllers.ReviewController
	Committee *controllers.CommitteeController
	Journal   *controllers.JournalController
	Program   *controllers.ProgramController
	Sponsor   *controllers.SponsorController
	Contact   *controllers.ContactController
	Archive   *controllers.ArchiveController
}

// SetupRouter configures all application routes under /api/v1
func SetupRouter(
	router *gin.Engine,
	c Controllers,
	authMiddleware *middleware.AuthMiddleware,
	notifications gin.HandlerFunc,
) {
	v1 := router.Group("/api/v1")

	admin := authMiddleware.RoleRequired(models.RoleAdmin)

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
		auth.POST("/logout", c.Auth.Logout)
	}

	v1.GET("/symposia", c.Symposium.ListSymposia)
	v1.GET("/symposia/active", c.Symposium.GetActiveSymposium)
	v1.GET("/symposia/:id", c.Symposium.GetSymposium)
	v1.GET("/symposia/:id/topics", c.Symposium.ListTopics)

	v1.GET("/committee", c.Committee.ListMembers)
	v1.GET("/journals", c.Journal.ListJournals)
	v1.GET("/journals/:id", c.Journal.GetJournal)
	v1.GET("/program", c.Program.ListProgram)
	v1.GET("/program/pdf", c.Program.Booklet)
	v1.GET("/sponsors", c.Sponsor.ListSponsors)
	v1.POST("/contact", c.Contact.Submit)

	archive := v1.Group("/archive")
	{
		archive.GET("", c.Archive.ListArchive)
		archive.GET("/:symposiumId/papers", c.Archive.AcceptedPapers)
		archive.GET("/:symposiumId/bibtex", c.Archive.BibTeX)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth(), authMiddleware.ActiveAccountRequired())
	{
		authenticated.GET("/auth/me", c.Auth.GetProfile)
		authenticated.PUT("/auth/me", c.Auth.UpdateProfile)

		authenticated.GET("/notifications/ws", notifications)

		// Papers: ownership and assignment are checked in the service
		papers := authenticated.Group("/papers")
		{
			papers.POST("", authMiddleware.RoleRequired(models.RoleAuthor, models.RoleAdmin), c.Paper.SubmitPaper)
			papers.GET("/mine", c.Paper.ListMyPapers)
			papers.GET("/:id", c.Paper.GetPaper)
			papers.PUT("/:id", c.Paper.UpdatePaper)
			papers.POST("/:id/file", c.Paper.UploadManuscript)
			papers.GET("/:id/file", c.Paper.DownloadManuscript)
			papers.DELETE("/:id", c.Paper.DeletePaper)
			papers.GET("/:id/acceptance-letter", c.Paper.AcceptanceLetter)
			papers.GET("/:id/revisions", c.Review.ListRevisions)
			papers.POST("/:id/revisions", authMiddleware.RoleRequired(models.RoleReviewer), c.Review.CreateRevision)

			papers.GET("", admin, c.Paper.ListPapers)
			papers.PUT("/:id/reviewers", admin, c.Paper.AssignReviewers)
			papers.GET("/:id/reviewers", admin, c.Paper.ListReviewers)
			papers.PUT("/:id/status", admin, c.Paper.UpdateStatus)
		}

		reviewer := authenticated.Group("")
		reviewer.Use(authMiddleware.RoleRequired(models.RoleReviewer))
		{
			reviewer.GET("/reviews/assigned", c.Review.ListAssigned)
			reviewer.PUT("/revisions/:id", c.Review.UpdateRevision)
		}
		authenticated.GET("/revisions/:id/file", c.Review.DownloadRevisionFile)

		// --- Admin routes ---
		adminGroup := authenticated.Group("")
		adminGroup.Use(admin)
		{
			users := adminGroup.Group("/users")
			{
				users.GET("", c.User.ListUsers)
				users.POST("", c.User.CreateUser)
				users.GET("/:id", c.User.GetUser)
				users.PUT("/:id/role", c.User.UpdateRole)
				users.PUT("/:id/status", c.User.UpdateStatus)
				users.DELETE("/:id", c.User.DeleteUser)
			}
			adminGroup.GET("/reviewers", c.User.ListReviewers)

			adminGroup.POST("/symposia", c.Symposium.CreateSymposium)
			adminGroup.PUT("/symposia/:id", c.Symposium.UpdateSymposium)
			adminGroup.DELETE("/symposia/:id", c.Symposium.DeleteSymposium)
			adminGroup.PUT("/symposia/:id/activate", c.Symposium.ActivateSymposium)
			adminGroup.POST("/symposia/:id/topics", c.Symposium.CreateTopic)
			adminGroup.PUT("/topics/:id", c.Symposium.UpdateTopic)
			adminGroup.DELETE("/topics/:id", c.Symposium.DeleteTopic)

			adminGroup.POST("/committee", c.Committee.CreateMember)
			adminGroup.PUT("/committee/:id", c.Committee.UpdateMember)
			adminGroup.DELETE("/committee/:id", c.Committee.DeleteMember)

			adminGroup.POST("/journals", c.Journal.CreateJournal)
			adminGroup.PUT("/journals/:id", c.Journal.UpdateJournal)
			adminGroup.DELETE("/journals/:id", c.Journal.DeleteJournal)

			adminGroup.POST("/program", c.Program.CreateItem)
			adminGroup.PUT("/program/:id", c.Program.UpdateItem)
			adminGroup.DELETE("/program/:id", c.Program.DeleteItem)

			adminGroup.POST("/sponsors", c.Sponsor.CreateSponsor)
			adminGroup.PUT("/sponsors/:id", c.Sponsor.UpdateSponsor)
			adminGroup.DELETE("/sponsors/:id", c.Sponsor.DeleteSponsor)

			adminGroup.GET("/contact", c.Contact.ListMessages)
			adminGroup.PUT("/contact/:id/read", c.Contact.MarkRead)
			adminGroup.DELETE("/contact/:id", c.Contact.DeleteMessage)
		}
	}
}
