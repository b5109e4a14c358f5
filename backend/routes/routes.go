package routes

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/himanshukadian/himanshu-blog-backend/backend/config"
	"github.com/himanshukadian/himanshu-blog-backend/backend/controllers"
	"github.com/himanshukadian/himanshu-blog-backend/backend/middleware"
	"github.com/himanshukadian/himanshu-blog-backend/backend/services"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SetupRoutes mounts the whole API under /api. rdb may be nil, which
// disables response caching.
func SetupRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) {
	llm := services.NewLLM(cfg)
	agent := services.NewSchedulingAgent()
	renderer := services.NewPDFRenderer(cfg)

	authController := controllers.NewAuthController(db, cfg)
	userController := controllers.NewUserController(db, cfg)
	articleController := controllers.NewArticleController(db, cfg)
	commentController := controllers.NewCommentController(db, cfg)
	courseController := controllers.NewCourseController(db, cfg)
	sectionController := controllers.NewSectionController(db, cfg)
	chapterController := controllers.NewChapterController(db, cfg)
	sceneController := controllers.NewSceneController(db, cfg)
	tagController := controllers.NewTagController(db, cfg)
	typeController := controllers.NewTypeController(db, cfg)
	postController := controllers.NewPostController(db, cfg)
	projectController := controllers.NewProjectController(db, cfg, log)
	contactController := controllers.NewContactController(db, cfg, log)
	aiController := controllers.NewAIController(cfg, llm, log)
	schedulingController := controllers.NewSchedulingController(cfg, agent, log)
	resumeController := controllers.NewResumeController(db, cfg, llm, renderer, log)

	protect := middleware.Protect(db, cfg)
	optional := middleware.OptionalProtect(db, cfg)
	adminOnly := middleware.Permit("admin")
	editorial := middleware.Permit("editor", "admin")

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	cached := middleware.Cache(rdb, cacheTTL)
	invalidateArticles := middleware.InvalidateCache(rdb, "/api/articles*")
	invalidateContent := middleware.InvalidateCache(rdb, "/api/courses*", "/api/sections*", "/api/chapters*", "/api/scenes*")

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Get("/me", protect, authController.Me)

	users := api.Group("/users")
	users.Get("/profile", protect, userController.GetProfile)
	users.Put("/profile", protect, userController.UpdateProfile)
	users.Get("/", protect, adminOnly, userController.ListUsers)
	users.Patch("/:id/role", protect, adminOnly, userController.UpdateUserRole)
	users.Delete("/:id", protect, adminOnly, userController.DeactivateUser)

	articles := api.Group("/articles")
	articles.Get("/", optional, cached, articleController.GetAllArticles)
	articles.Post("/", protect, editorial, invalidateArticles, articleController.CreateArticle)
	articles.Post("/bulk-publish", protect, editorial, invalidateArticles, articleController.BulkPublish)
	articles.Get("/:id/comments", optional, commentController.GetArticleComments)
	articles.Post("/:id/comments", protect, commentController.CreateComment)
	articles.Post("/:id/like", protect, articleController.ToggleLike)
	articles.Patch("/:id/status", protect, editorial, invalidateArticles, articleController.UpdateStatus)
	articles.Patch("/:id/feature", protect, editorial, invalidateArticles, articleController.ToggleFeature)
	articles.Patch("/:id", protect, editorial, invalidateArticles, articleController.UpdateArticle)
	articles.Delete("/:id", protect, editorial, invalidateArticles, articleController.DeleteArticle)
	articles.Get("/:slug", optional, cached, articleController.GetArticleBySlug)

	comments := api.Group("/comments")
	comments.Get("/", protect, adminOnly, commentController.GetAllComments)
	comments.Patch("/:id/approve", protect, adminOnly, commentController.ApproveComment)
	comments.Patch("/:id/unapprove", protect, adminOnly, commentController.UnapproveComment)
	comments.Patch("/:id/status", protect, adminOnly, commentController.UpdateCommentStatus)
	comments.Patch("/:id", protect, commentController.UpdateComment)
	comments.Delete("/:id", protect, commentController.DeleteComment)

	courses := api.Group("/courses")
	courses.Get("/", cached, courseController.GetAllCourses)
	courses.Post("/", protect, adminOnly, invalidateContent, courseController.CreateCourse)
	courses.Get("/:slug/sections", cached, courseController.GetCourseSections)
	courses.Patch("/:id", protect, adminOnly, invalidateContent, courseController.UpdateCourse)
	courses.Get("/:slug", cached, courseController.GetCourseBySlug)

	sections := api.Group("/sections")
	sections.Get("/", cached, sectionController.GetAllSections)
	sections.Post("/", protect, adminOnly, invalidateContent, sectionController.CreateSection)
	sections.Get("/:slug/chapters", cached, sectionController.GetSectionChapters)
	sections.Delete("/:id", protect, adminOnly, invalidateContent, sectionController.DeleteSection)
	sections.Get("/:slug", cached, sectionController.GetSectionBySlug)

	chapters := api.Group("/chapters")
	chapters.Get("/", cached, chapterController.GetAllChapters)
	chapters.Post("/", protect, adminOnly, invalidateContent, chapterController.CreateChapter)
	chapters.Get("/:slug/scenes", cached, chapterController.GetChapterScenes)
	chapters.Delete("/:slug/scenes", protect, adminOnly, invalidateContent, chapterController.DeleteChapterScenes)
	chapters.Get("/:slug", cached, chapterController.GetChapterBySlug)

	scenes := api.Group("/scenes")
	scenes.Post("/", protect, adminOnly, invalidateContent, sceneController.CreateScene)
	scenes.Get("/:id", cached, sceneController.GetScene)
	scenes.Patch("/:id", protect, adminOnly, invalidateContent, sceneController.UpdateScene)
	scenes.Delete("/:id", protect, adminOnly, invalidateContent, sceneController.DeleteScene)

	tags := api.Group("/tags")
	tags.Get("/", tagController.GetAllTags)
	tags.Post("/", protect, adminOnly, tagController.CreateTag)
	tags.Get("/:slug", tagController.GetTagBySlug)
	tags.Patch("/:id", protect, adminOnly, tagController.UpdateTag)
	tags.Delete("/:id", protect, adminOnly, tagController.DeleteTag)

	types := api.Group("/types")
	types.Get("/", typeController.GetAllTypes)
	types.Post("/", protect, adminOnly, typeController.CreateType)
	types.Get("/:slug", typeController.GetTypeBySlug)
	types.Patch("/:id", protect, adminOnly, typeController.UpdateType)
	types.Delete("/:id", protect, adminOnly, typeController.DeleteType)

	posts := api.Group("/posts")
	posts.Get("/", optional, postController.GetAllPosts)
	posts.Post("/", protect, editorial, postController.CreatePost)
	posts.Get("/:slug", optional, postController.GetPostBySlug)
	posts.Patch("/:id", protect, editorial, postController.UpdatePost)
	posts.Delete("/:id", protect, editorial, postController.DeletePost)

	categories := api.Group("/categories")
	categories.Get("/", postController.GetAllCategories)
	categories.Post("/", protect, adminOnly, postController.CreateCategory)
	categories.Delete("/:id", protect, adminOnly, postController.DeleteCategory)

	projects := api.Group("/projects")
	projects.Post("/", projectController.SubmitProject)
	projects.Get("/", protect, adminOnly, projectController.GetAllProjects)
	projects.Get("/:id", protect, adminOnly, projectController.GetProject)
	projects.Patch("/:id/status", protect, adminOnly, projectController.UpdateProjectStatus)

	contact := api.Group("/contact")
	contact.Post("/", contactController.SubmitContact)
	contact.Get("/", protect, adminOnly, contactController.GetAllContacts)

	ai := api.Group("/ai")
	ai.Post("/chat", aiController.Chat)
	ai.Get("/health", aiController.Health)

	scheduling := api.Group("/scheduling")
	scheduling.Post("/suggest", schedulingController.SuggestMeeting)
	scheduling.Post("/schedule", schedulingController.ScheduleMeeting)
	scheduling.Get("/slots", schedulingController.GetAvailableSlots)
	scheduling.Get("/health", schedulingController.Health)

	resumes := api.Group("/resumes", protect, adminOnly)
	resumes.Post("/base", resumeController.CreateBaseResume)
	resumes.Post("/analyze", resumeController.AnalyzeJob)
	resumes.Post("/customize", resumeController.CustomizeResume)
	resumes.Post("/:id/pdf", resumeController.GeneratePDF)
	resumes.Get("/", resumeController.ListResumes)
	resumes.Get("/:id", resumeController.GetResume)
}
