package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/psique-web/internal/api"
	"github.com/BruksfildServices01/psique-web/internal/audit"
	"github.com/BruksfildServices01/psique-web/internal/config"
	"github.com/BruksfildServices01/psique-web/internal/handlers"
	"github.com/BruksfildServices01/psique-web/internal/metrics"
	"github.com/BruksfildServices01/psique-web/internal/middleware"
	"github.com/BruksfildServices01/psique-web/internal/schedule"
	"github.com/BruksfildServices01/psique-web/internal/storage"
	"github.com/BruksfildServices01/psique-web/internal/timezone"
	"github.com/BruksfildServices01/psique-web/internal/web"
	"github.com/BruksfildServices01/psique-web/pkg/logging"
)

// Dependencies são os singletons montados em main.
type Dependencies struct {
	Config   *config.Config
	Store    storage.Store
	Client   *api.Client
	Logger   *logging.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Audit    *audit.Dispatcher
}

// NewEngine monta o gin com templates, middlewares e rotas.
func NewEngine(deps Dependencies) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(tmpl)

	RegisterRoutes(r, deps)
	return r, nil
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestLogger(logger),
		middleware.Metrics(deps.Metrics),
		middleware.Visitor(cfg.CookieSecure),
	)

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	loc := timezone.Location(cfg.Timezone)
	submitter := schedule.NewSubmitter(loc, logger)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(deps.Store, logger)
	authHandler := handlers.NewAuthWebHandler(deps.Client, deps.Audit, logger)
	scheduleHandler := handlers.NewScheduleWebHandler(loc, cfg.ClinicSignature, submitter, deps.Audit, logger)
	patientHandler := handlers.NewPatientWebHandler(loc, deps.Audit, logger)

	// ======================================================
	// 🔧 OPERAÇÃO
	// ======================================================
	r.GET("/health", healthHandler.Health)
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	r.NoRoute(healthHandler.NotFound)

	// ======================================================
	// 🌍 ROTAS PÚBLICAS
	// ======================================================
	app := r.Group("/")
	app.Use(middleware.Session(deps.Store, deps.Client, logger))
	{
		app.GET("/", authHandler.LoginPage)
		app.POST("/login", authHandler.Login)
		app.POST("/logout", authHandler.Logout)
		app.GET("/signup", authHandler.SignUpPage)
		app.POST("/signup", authHandler.SignUp)
		app.POST("/theme", authHandler.ToggleTheme)
	}

	// ======================================================
	// 🔐 ROTAS AUTENTICADAS
	// ======================================================
	secured := app.Group("/")
	secured.Use(middleware.RequireAuth())
	{
		secured.GET("/schedules", scheduleHandler.Board)
		secured.POST("/schedules", scheduleHandler.Create)
		secured.POST("/schedules/:id", scheduleHandler.Update)
		secured.POST("/schedules/:id/delete", scheduleHandler.Delete)
		secured.POST("/schedules/:id/sessions", scheduleHandler.LogSession)

		secured.GET("/patients", patientHandler.List)
		secured.GET("/patient", patientHandler.New)
		secured.POST("/patient", patientHandler.Create)
		secured.GET("/patient/:id", patientHandler.Show)
		secured.POST("/patient/:id", patientHandler.Update)
		secured.POST("/patient/:id/delete", patientHandler.Delete)
	}
}
