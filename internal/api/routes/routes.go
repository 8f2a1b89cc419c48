// internal/api/routes/routes.go
package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"e-waste-api-server/config"
	"e-waste-api-server/internal/api/handlers"
	"e-waste-api-server/internal/api/middleware"
	"e-waste-api-server/internal/auth"
	"e-waste-api-server/internal/classifier"
	"e-waste-api-server/internal/ledger"
	"e-waste-api-server/internal/models"
	"e-waste-api-server/internal/s3"
	"e-waste-api-server/internal/socket"
	"e-waste-api-server/internal/store"
)

// SetupRouter receives the wired dependencies and registers every route.
func SetupRouter(
	cfg config.Config,
	authMgr *auth.Manager,
	ledgerSvc *ledger.Service,
	users *store.UserStore,
	bins *store.BinStore,
	stats *store.StatsStore,
	s3Uploader *s3.Uploader,
	wasteClassifier classifier.Classifier,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.MaxMultipartMemory = 10 << 20

	authHandler := &handlers.AuthHandler{Users: users, Auth: authMgr}
	binHandler := &handlers.BinHandler{Bins: bins, Hub: wsHub}
	userHandler := &handlers.UserHandler{Users: users}
	recycleHandler := &handlers.RecycleHandler{Ledger: ledgerSvc}
	classifyHandler := &handlers.ClassifyHandler{Classifier: wasteClassifier, Uploader: s3Uploader}
	analyticsHandler := &handlers.AnalyticsHandler{Stats: stats}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, Auth: authMgr}

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Backend is running successfully")
	})

	api := router.Group("/api")
	{
		// WebSocket authenticates via its token query parameter.
		api.GET("/ws", webSocketHandler.ServeWs)

		// === PUBLIC ROUTES ===

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Bin lookup stays public so the map works before signing in.
		api.GET("/bins", binHandler.GetAllBins)
		api.GET("/bins/:id", binHandler.GetBinByID)

		// === PROTECTED ROUTES ===

		protected := api.Group("/")
		protected.Use(middleware.Authenticate(authMgr))
		{
			protected.GET("/users/:id", userHandler.GetUser)
			protected.PUT("/users/:id", userHandler.UpdateUser)
			protected.POST("/recycle", recycleHandler.SubmitRecycling)
			protected.GET("/detections/:userId", recycleHandler.GetRecentDetections)
			protected.POST("/classify", classifyHandler.Classify)
		}

		// === ADMIN ROUTES ===

		admin := api.Group("/")
		admin.Use(middleware.Authenticate(authMgr))
		admin.Use(middleware.Authorize(models.UserTypeAdmin))
		{
			admin.POST("/bins", binHandler.CreateBin)
			admin.PUT("/bins/:id", binHandler.UpdateBin)
			admin.DELETE("/bins/:id", binHandler.DeleteBin)

			admin.GET("/users", userHandler.ListUsers)
			admin.GET("/analytics/summary", analyticsHandler.GetSummary)
		}
	}

	return router
}
