package routes

import (
	"eps-clinic/internal/adapters/http/handlers"
	"eps-clinic/internal/adapters/http/middleware"
	"eps-clinic/internal/adapters/persistence/filestore"
	"eps-clinic/internal/adapters/persistence/repositories"
	"eps-clinic/internal/config"
	"eps-clinic/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// Setup wires stores, repositories, services and handlers, then mounts
// every route. Endpoints map 1:1 onto domain operations; the handlers only
// parse and serialize.
func Setup(app *fiber.App, cfg *config.Config) {
	// Backing stores, one per collection
	affiliateStore := filestore.NewTableStore(cfg.StorePath("affiliates.csv"), repositories.AffiliateColumns)
	surveyStore := filestore.NewTableStore(cfg.StorePath("surveys.csv"), repositories.SurveyColumns)
	userStore := filestore.NewLineStore(cfg.StorePath("users.txt"))
	appointmentStore := filestore.NewLineStore(cfg.StorePath("appointments.txt"))
	prescriptionStore := filestore.NewLineStore(cfg.StorePath("prescriptions.txt"))

	// Repositories
	affiliateRepo := repositories.NewAffiliateRepository(affiliateStore)
	surveyRepo := repositories.NewSurveyRepository(surveyStore)
	userRepo := repositories.NewUserRepository(userStore)
	appointmentRepo := repositories.NewAppointmentRepository(appointmentStore)
	prescriptionRepo := repositories.NewPrescriptionRepository(prescriptionStore)

	// Services; the clinical service sees identity only as a directory
	identityService := services.NewIdentityService(userRepo)
	affiliateService := services.NewAffiliateService(affiliateRepo, surveyRepo)
	clinicalService := services.NewClinicalService(appointmentRepo, prescriptionRepo, identityService)

	// Handlers
	healthHandler := handlers.NewHealthHandler(cfg)
	userHandler := handlers.NewUserHandler(identityService)
	affiliateHandler := handlers.NewAffiliateHandler(affiliateService)
	surveyHandler := handlers.NewSurveyHandler(affiliateService)
	clinicalHandler := handlers.NewClinicalHandler(clinicalService)

	// Health check & root
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Users & sessions (stricter rate limit, these carry credentials)
	app.Post("/user/register", middleware.SessionRateLimiter(), userHandler.Register)
	app.Post("/user/session", middleware.SessionRateLimiter(), userHandler.Session)

	// Affiliates
	app.Post("/affiliate/register", affiliateHandler.Register)
	app.Get("/affiliates", affiliateHandler.List)
	app.Get("/affiliate", affiliateHandler.Search)
	app.Get("/affiliates/stats", affiliateHandler.Stats)
	app.Get("/affiliates/export", affiliateHandler.Export)

	// Surveys
	app.Post("/survey/record", surveyHandler.Record)
	app.Get("/surveys/stats", surveyHandler.Stats)

	// Clinical
	app.Post("/appointment/schedule", clinicalHandler.ScheduleAppointment)
	app.Get("/appointments", clinicalHandler.ListAppointments)
	app.Post("/appointment/cancel", clinicalHandler.CancelAppointment)
	app.Post("/prescription/create", clinicalHandler.CreatePrescription)
	app.Get("/prescriptions", clinicalHandler.ListPrescriptions)
}
