package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, importHandler *ImportHandler, runHandler *ImportRunHandler) {
	imports := server.Group("/api/v1/imports/:entity")
	imports.POST("", importHandler.Upload)
	imports.POST("/from-source", importHandler.FromSource)
	imports.GET("/template", importHandler.Template)
	imports.GET("/sessions/:id", importHandler.GetSession)
	imports.DELETE("/sessions/:id", importHandler.Discard)
	imports.POST("/sessions/:id/confirm", importHandler.Confirm)
	imports.POST("/sessions/:id/cancel", importHandler.Cancel)

	server.GET("/api/v1/import-runs/:id", runHandler.GetImportRun)
}
