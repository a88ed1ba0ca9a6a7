package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/arzan03/TalentBridge/internal/auth"
	"github.com/arzan03/TalentBridge/internal/config"
	"github.com/arzan03/TalentBridge/internal/db"
	"github.com/arzan03/TalentBridge/internal/handlers"
	"github.com/arzan03/TalentBridge/internal/middleware"
	"github.com/arzan03/TalentBridge/internal/repository"
	"github.com/arzan03/TalentBridge/internal/services"
	"github.com/arzan03/TalentBridge/internal/storage"
)

// Deps are the process-wide collaborators the router is built from.
type Deps struct {
	Repos    *repository.Repositories
	Store    db.Availability
	Files    storage.Store
	Verifier auth.Verifier
	Notifier *services.Notifier
}

// NewApp builds the Fiber application with every route registered.
func NewApp(cfg *config.Config, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "TalentBridge",
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: errorHandler,
	})

	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New())

	health := handlers.NewHealthHandler(deps.Store)
	app.Get("/health", health.Health)

	if cfg.Storage.Driver == config.StorageLocal {
		app.Static("/uploads", cfg.Storage.UploadDir)
	}

	var docs handlers.DocsHandler
	api := app.Group("/api")
	api.Get("/docs", docs.JSON)
	api.Get("/docs/openapi.yaml", docs.YAML)

	userService := services.NewUserService(deps.Repos, deps.Notifier)
	companyService := services.NewCompanyService(deps.Repos)
	jobService := services.NewJobService(deps.Repos)
	applicationService := services.NewApplicationService(deps.Repos)
	evaluationService := services.NewEvaluationService(deps.Repos)
	courseService := services.NewCourseService(deps.Repos)
	messageService := services.NewMessageService(deps.Repos)
	adminService := services.NewAdminService(deps.Repos)
	authService := services.NewAuthService(deps.Repos)

	requireStore := middleware.RequireStore(deps.Store)
	authenticate := middleware.AuthMiddleware(deps.Verifier)

	// Users
	userHandler := handlers.NewUserHandler(userService, deps.Files)
	users := api.Group("/users", requireStore)
	users.Get("/uid/:uid", userHandler.GetByUID)
	users.Get("/role/:role", userHandler.ListByRole)
	users.Get("/:userId", userHandler.GetByID)
	users.Post("/", authenticate,
		middleware.Upload(deps.Files, middleware.FieldProfilePhoto, middleware.FieldCV, middleware.FieldVideo),
		userHandler.Create)
	users.Put("/:userId", userHandler.Update)
	users.Delete("/:userId", userHandler.Deactivate)
	users.Post("/:userId/cv", middleware.Upload(deps.Files, middleware.FieldCV), userHandler.UploadCV)
	users.Post("/:userId/video", middleware.Upload(deps.Files, middleware.FieldVideo), userHandler.UploadVideo)
	users.Post("/:userId/foto", middleware.Upload(deps.Files, middleware.FieldProfilePhoto), userHandler.UploadPhoto)

	// Companies
	companyHandler := handlers.NewCompanyHandler(companyService, deps.Files)
	empresas := api.Group("/empresas", requireStore)
	empresas.Post("/", authenticate, companyHandler.Create)
	empresas.Get("/", companyHandler.List)
	empresas.Get("/uid/:uid", companyHandler.GetByUID)
	empresas.Get("/:empresaId", companyHandler.Get)
	empresas.Put("/:empresaId", companyHandler.Update)
	empresas.Delete("/:empresaId", companyHandler.Deactivate)
	empresas.Post("/:empresaId/ejecutivos", companyHandler.AddExecutive)
	empresas.Put("/:empresaId/ejecutivos", companyHandler.UpdateExecutive)
	empresas.Post("/:empresaId/foto", middleware.Upload(deps.Files, middleware.FieldProfilePhoto), companyHandler.UploadPhoto)

	// Jobs
	jobHandler := handlers.NewJobHandler(jobService)
	jobs := api.Group("/jobs", requireStore)
	jobs.Post("/", jobHandler.Create)
	jobs.Get("/", jobHandler.List)
	jobs.Get("/empresa/:empresaId", jobHandler.ListByCompany)
	jobs.Get("/:jobId", jobHandler.Get)
	jobs.Put("/:jobId", jobHandler.Update)
	jobs.Delete("/:jobId", jobHandler.Delete)
	jobs.Put("/:jobId/preguntas", jobHandler.SetQuestions)

	// Applications
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	postulaciones := api.Group("/postulaciones", requireStore)
	postulaciones.Post("/", applicationHandler.Create)
	postulaciones.Get("/usuario/:userId", applicationHandler.ListByApplicant)
	postulaciones.Get("/trabajo/:jobId", applicationHandler.ListByJob)
	postulaciones.Get("/:postulacionId", applicationHandler.Get)
	postulaciones.Put("/:postulacionId", applicationHandler.UpdateStatus)

	// Evaluations
	evaluationHandler := handlers.NewEvaluationHandler(evaluationService)
	evaluacion := api.Group("/evaluacion", requireStore)
	evaluacion.Post("/", evaluationHandler.Create)
	evaluacion.Get("/usuario/:userId", evaluationHandler.ListByUser)

	// Courses
	courseHandler := handlers.NewCourseHandler(courseService, deps.Files)
	cursos := api.Group("/cursos", requireStore)
	cursos.Post("/", courseHandler.Create)
	cursos.Get("/", courseHandler.List)
	cursos.Get("/profesional/:userId", courseHandler.ListByProfessional)
	cursos.Get("/:cursoId", courseHandler.Get)
	cursos.Put("/:cursoId", courseHandler.Update)
	cursos.Delete("/:cursoId", courseHandler.Deactivate)
	cursos.Post("/:cursoId/video", middleware.Upload(deps.Files, middleware.FieldCourseVideo), courseHandler.UploadVideo)

	// Messages
	messageHandler := handlers.NewMessageHandler(messageService)
	mensajes := api.Group("/mensajes", requireStore)
	mensajes.Post("/", authenticate, messageHandler.Send)
	mensajes.Get("/usuario/:userId", messageHandler.Inbox)
	mensajes.Get("/conversacion/:userA/:userB", messageHandler.Conversation)
	mensajes.Put("/:mensajeId/leido", messageHandler.MarkRead)

	// Admin
	adminHandler := handlers.NewAdminHandler(adminService, jobService)
	admin := api.Group("/admin", requireStore, authenticate, middleware.AdminMiddleware(authService))
	admin.Get("/usuarios", adminHandler.ListUsers)
	admin.Get("/empresas", adminHandler.ListCompanies)
	admin.Put("/trabajos/:jobId/moderacion", adminHandler.ModerateJob)
	admin.Get("/estadisticas", adminHandler.Stats)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	log.Errorw("Unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal server error"})
}
