package main

import (
	"context"
	"net/http"
	"time"

	"github.com/assessly-hq/assessly/config"
	"github.com/assessly-hq/assessly/database"
	_ "github.com/assessly-hq/assessly/docs" // Swagger docs - auto-generated
	adminctrl "github.com/assessly-hq/assessly/internal/controller/admin"
	candidatectrl "github.com/assessly-hq/assessly/internal/controller/candidate"
	"github.com/assessly-hq/assessly/internal/logger"
	"github.com/assessly-hq/assessly/internal/model"
	"github.com/assessly-hq/assessly/internal/repository"
	"github.com/assessly-hq/assessly/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Assessly Interview API
// @version 1.0
// @description Interview and assessment administration API: question bank, tagging, interview composition, and candidate execution.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewTagRepository,
			repository.NewInterviewRepository,
			repository.NewCandidateInterviewRepository,
			repository.NewUserRepository,
		),

		fx.Provide(
			service.NewTagService,
			service.NewQuestionService,
			service.NewInterviewService,
			service.NewCandidateInterviewService,
			service.NewUserService,
		),

		fx.Provide(
			adminctrl.NewQuestionController,
			adminctrl.NewUserController,
			adminctrl.NewCategoryController,
			adminctrl.NewInterviewController,
			candidatectrl.NewInterviewController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server
// lifecycle through fx hooks.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	questionCtrl *adminctrl.QuestionController,
	userCtrl *adminctrl.UserController,
	categoryCtrl *adminctrl.CategoryController,
	interviewCtrl *adminctrl.InterviewController,
	candidateCtrl *candidatectrl.InterviewController,
) {
	adminAPI := router.Group("/api/v1/admin")
	{
		questions := adminAPI.Group("/questions")
		questions.POST("", questionCtrl.CreateQuestion)
		questions.GET("", questionCtrl.ListQuestions)
		questions.GET("/:id", questionCtrl.GetQuestion)
		questions.PUT("/:id", questionCtrl.UpdateQuestion)
		questions.DELETE("/:id", questionCtrl.DeleteQuestion)

		users := adminAPI.Group("/users")
		users.POST("", userCtrl.CreateUser)
		users.GET("", userCtrl.ListUsers)
		users.GET("/:id", userCtrl.GetUser)
		users.PUT("/:id", userCtrl.UpdateUser)
		users.DELETE("/:id", userCtrl.DeleteUser)

		categories := adminAPI.Group("/categories")
		categories.POST("", categoryCtrl.CreateCategory)
		categories.GET("", categoryCtrl.ListCategories)
		categories.GET("/roots", categoryCtrl.ListRootCategories)
		categories.GET("/:id/children", categoryCtrl.GetCategoryChildren)
		categories.GET("/:id/parent", categoryCtrl.GetCategoryParent)
		adminAPI.GET("/tags", categoryCtrl.ListTags)

		interviews := adminAPI.Group("/interviews")
		interviews.POST("", interviewCtrl.CreateInterview)
		interviews.GET("", interviewCtrl.ListInterviews)
		interviews.GET("/:id", interviewCtrl.GetInterview)
		interviews.PUT("/:id", interviewCtrl.UpdateInterview)
		interviews.DELETE("/:id", interviewCtrl.DeleteInterview)
		interviews.GET("/:id/questions", interviewCtrl.GetAllQuestions)
		interviews.POST("/:id/sections", interviewCtrl.AddSection)
		interviews.POST("/:id/candidates", interviewCtrl.AssignCandidate)
		interviews.GET("/:id/candidates", interviewCtrl.ListCandidates)

		sections := adminAPI.Group("/sections")
		sections.PUT("/:section_id", interviewCtrl.UpdateSection)
		sections.DELETE("/:section_id", interviewCtrl.DeleteSection)
		sections.POST("/:section_id/questions", interviewCtrl.AddQuestionToSection)
		sections.PUT("/:section_id/questions/reorder", interviewCtrl.ReorderSectionQuestions)
		sections.DELETE("/:section_id/questions/:question_id", interviewCtrl.RemoveQuestionFromSection)

		adminAPI.POST("/attempts/:attempt_id/expire", interviewCtrl.ExpireAttempt)
		adminAPI.POST("/attempts/:attempt_id/result", interviewCtrl.FinalizeResult)
		adminAPI.PUT("/responses/:response_id/evaluation", interviewCtrl.RecordEvaluation)
	}

	candidateAPI := router.Group("/api/v1")
	{
		candidateAPI.GET("/interviews", candidateCtrl.ListInterviews)
		candidateAPI.GET("/attempts/:attempt_id", candidateCtrl.GetAttempt)
		candidateAPI.POST("/attempts/:attempt_id/start", candidateCtrl.StartAttempt)
		candidateAPI.POST("/attempts/:attempt_id/complete", candidateCtrl.CompleteAttempt)
		candidateAPI.POST("/attempts/:attempt_id/responses", candidateCtrl.SubmitResponse)
		candidateAPI.GET("/attempts/:attempt_id/progress", candidateCtrl.GetProgress)
		candidateAPI.GET("/attempts/:attempt_id/result", candidateCtrl.GetResult)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Assessly API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.McqDetail{},
		&model.TrueFalseDetail{},
		&model.ShortAnswerDetail{},
		&model.CodingDetail{},
		&model.Tag{},
		&model.CategoryHierarchy{},
		&model.QuestionTag{},
		&model.Interview{},
		&model.InterviewSection{},
		&model.SectionQuestion{},
		&model.CandidateInterview{},
		&model.CandidateResponse{},
		&model.ResponseEvaluation{},
		&model.InterviewResult{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
