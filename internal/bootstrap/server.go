package bootstrap

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	httpecho "github.com/bizdash/import-service/internal/interfaces/http/echo"
)

func NewHTTPServer(app *App) *echo.Echo {
	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit(app.Config.Import.MaxUpload))
	server.Use(requestLogger(app.Logger))

	// Validate has already accepted the size.
	maxUpload, _ := app.Config.MaxUploadBytes()
	importHandler := httpecho.NewImportHandler(app.Registry, app.FromSource, maxUpload)
	runHandler := httpecho.NewImportRunHandler(app.GetImportRun)

	httpecho.RegisterRoutes(server, importHandler, runHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if app.Config.MetricsEnabled {
		server.GET(app.Config.MetricsPath, echo.WrapHandler(promhttp.HandlerFor(app.Metrics, promhttp.HandlerOpts{})))
	}

	return server
}

func requestLogger(logger logrus.FieldLogger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request failed")
				return nil
			}
			entry.Info("request")
			return nil
		},
	})
}
