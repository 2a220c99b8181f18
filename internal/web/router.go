package web

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/BerylCAtieno/pvf-customer-form/internal/logger"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type RouterConfig struct {
	Handler        *FormHandler
	Log            *logger.Logger
	AllowedOrigins []string
	ServiceName    string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogging(log))
	if len(cfg.AllowedOrigins) > 0 {
		router.Use(CORS(cfg.AllowedOrigins))
	}
	if cfg.ServiceName != "" {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}

	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.tmpl")))

	h := cfg.Handler

	// Page
	router.GET("/", h.ServePage)
	router.POST("/profile", h.SubmitProfile)
	router.POST("/smart-fill", h.SmartFill)
	router.POST("/analyze", h.Analyze)
	router.POST("/reset", h.Reset)
	router.POST("/notice/dismiss", h.DismissNotice)

	// JSON API
	api := router.Group("/api")
	{
		api.GET("/state", h.GetState)
		api.PUT("/profile/fields/:name", h.EditField)
		api.POST("/smart-fill", h.APISmartFill)
		api.POST("/analyze", h.APIAnalyze)
		api.POST("/reset", h.APIReset)
		api.GET("/events", h.Events)
	}

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	return router
}
