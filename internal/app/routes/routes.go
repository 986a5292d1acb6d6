package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/brainora/internal/app/controllers"
	"github.com/yigit/brainora/internal/middleware"
)

// Controllers groups every controller the router dispatches to.
type Controllers struct {
	Auth       *controllers.AuthController
	Pages      *controllers.PageController
	Courses    *controllers.CourseController
	Papers     *controllers.PaperController
	Activities *controllers.ActivityController
	Resources  *controllers.ResourceController
	Users      *controllers.UserController
	Info       *controllers.InfoController
	Health     *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/healthz", ctrl.Health.Health)

	// --- Public pages ---
	router.GET("/", ctrl.Pages.Home)
	router.GET("/login/", ctrl.Auth.LoginPage)
	router.POST("/login/", ctrl.Auth.Login)
	router.GET("/signup/", ctrl.Auth.SignupPage)
	router.POST("/signup/", ctrl.Auth.Signup)
	router.GET("/logout/", ctrl.Auth.Logout)
	router.POST("/logout/", ctrl.Auth.Logout)

	router.GET("/privacy-policy/", ctrl.Info.PrivacyPolicy)
	router.GET("/about/", ctrl.Info.About)
	router.GET("/about/member/:slug/", ctrl.Info.Member)
	router.GET("/whatsapp/", ctrl.Info.WhatsApp)
	router.GET("/telegram-premium/", ctrl.Info.TelegramPremium)

	// --- Authenticated pages ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.RequireAuth())
	{
		authenticated.GET("/dashboard/", ctrl.Pages.Dashboard)
		authenticated.GET("/upload/", ctrl.Pages.UploadPage)
		authenticated.GET("/upload_resource/", ctrl.Pages.UploadRedirect)
		authenticated.POST("/upload_resource/", ctrl.Pages.UploadResource)

		authenticated.GET("/profile/", ctrl.Users.Profile)
		authenticated.GET("/edit-profile/", ctrl.Users.EditProfilePage)
		authenticated.POST("/edit-profile/", ctrl.Users.EditProfile)

		authenticated.GET("/courses/", ctrl.Courses.List)
		authenticated.GET("/course/:id/", ctrl.Courses.Detail)

		authenticated.GET("/papers/", ctrl.Papers.List)
		authenticated.GET("/paper/:id/delete/", ctrl.Papers.DeleteConfirm)
		authenticated.POST("/paper/:id/delete/", ctrl.Papers.Delete)

		authenticated.GET("/activities/", ctrl.Activities.List)
		authenticated.GET("/activities/calendar.ics", ctrl.Activities.Calendar)
		authenticated.GET("/activity/:id/delete/", ctrl.Activities.DeleteConfirm)
		authenticated.POST("/activity/:id/delete/", ctrl.Activities.Delete)

		authenticated.GET("/resources/:category/", ctrl.Resources.List)
		authenticated.GET("/resource/:id/delete/", ctrl.Resources.DeleteConfirm)
		authenticated.POST("/resource/:id/delete/", ctrl.Resources.Delete)
	}

	router.NoRoute(middleware.NotFoundHandler())
}

// SetupStatic serves the embedded css/js under /static and, when mediaRoot is
// set, uploaded files from local storage under mediaPrefix.
func SetupStatic(router *gin.Engine, static http.FileSystem, mediaPrefix, mediaRoot string) {
	router.StaticFS("/static", static)
	if mediaRoot != "" {
		router.Static(mediaPrefix, mediaRoot)
	}
}
