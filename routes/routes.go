package routes

import (
	"applicant-review-api/controllers"
	"applicant-review-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// Public routes
		public := api.Group("")
		{
			public.POST("/auth/login", controllers.Login)
			public.GET("/health", controllers.HealthCheck)
		}

		// Protected routes (require authentication)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/auth/profile", controllers.GetProfile)
			protected.PUT("/auth/change-password", controllers.ChangePassword)

			// Applicants
			applicants := protected.Group("/applicants")
			{
				applicants.GET("", controllers.GetApplicants)
				applicants.GET("/regular", controllers.GetRegularApplicants)
				applicants.GET("/i-sub", controllers.GetISubApplicants)
				applicants.GET("/distribution", controllers.GetDistribution)
				applicants.POST("/distribution/redistribute", middleware.RequireAdmin(), controllers.Redistribute)
				applicants.GET("/:id", controllers.GetApplicant)

				// Only admins manage the applicant pool
				applicants.POST("", middleware.RequireAdmin(), controllers.CreateApplicant)
				applicants.PUT("/:id", middleware.RequireAdmin(), controllers.UpdateApplicant)
				applicants.DELETE("/:id", middleware.RequireAdmin(), controllers.DeleteApplicant)
			}

			// Reviewers
			reviewers := protected.Group("/reviewers")
			{
				reviewers.GET("", controllers.GetReviewers)
				reviewers.GET("/admins", controllers.GetAdminReviewers)
				reviewers.GET("/:id", controllers.GetReviewer)

				reviewers.POST("", middleware.RequireAdmin(), controllers.CreateReviewer)
				reviewers.PUT("/:id", middleware.RequireAdmin(), controllers.UpdateReviewer)
				reviewers.DELETE("/:id", middleware.RequireAdmin(), controllers.DeleteReviewer)
			}

			// Reviews and final selections
			reviews := protected.Group("/reviews")
			{
				reviews.GET("", controllers.GetReviews)
				reviews.POST("", controllers.SubmitReview)

				reviews.GET("/final-selections", controllers.GetFinalSelections)
				reviews.GET("/final-selections/:applicant_id", controllers.GetFinalSelection)
				reviews.PUT("/final-selections/:applicant_id", middleware.RequireAdmin(), controllers.SetAdminDecision)

				reviews.GET("/:id", controllers.GetReview)
				reviews.PUT("/:id", controllers.UpdateReview)
				reviews.DELETE("/:id", controllers.DeleteReview)
			}

			// Progress
			progress := protected.Group("/progress")
			{
				progress.GET("", controllers.GetOverallProgress)
				progress.GET("/by-reviewer", controllers.GetProgressByReviewer)
				progress.GET("/reviewer/:name", controllers.GetReviewerProgress)
				progress.GET("/dashboard", controllers.GetDashboard)
				progress.GET("/stats", controllers.GetStatsAggregate)
				progress.GET("/export", middleware.RequireAdmin(), controllers.ExportProgressCSV)
			}
		}
	}
}
