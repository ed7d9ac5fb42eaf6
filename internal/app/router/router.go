package router

import (
	"github.com/gin-gonic/gin"

	authhandler "churn_backend/internal/feature/auth/transport/handler"
	churnhandler "churn_backend/internal/feature/churn/transport/handler"
	platformhandler "churn_backend/internal/platform/http/handler"
	jwtmw "churn_backend/internal/platform/jwt"
)

// NewRouter builds the HTTP route table. jwtSecret is used by the auth
// middlewares; admin routes additionally require the admin claim.
func NewRouter(auth *authhandler.AuthHandler, adminUsers *authhandler.AdminUserHandler,
	churn *churnhandler.ChurnHandler, jwtSecret string) *gin.Engine {
	r := gin.Default()

	// No authentication required
	r.GET("/healthz", platformhandler.Health)
	r.POST("/signup", auth.Signup)
	r.POST("/login", auth.Login)

	// Authenticated routes
	authed := r.Group("/")
	authed.Use(jwtmw.AuthRequired(jwtSecret))
	{
		authed.POST("/predict", churn.Predict)
	}

	// Administrative routes; authorization is enforced here, not by hiding
	// links in a client.
	admin := r.Group("/admin")
	admin.Use(jwtmw.AdminRequired(jwtSecret))
	{
		admin.POST("/users", adminUsers.AddUser)
		admin.DELETE("/users/:id", adminUsers.RemoveUser)
		admin.POST("/train", churn.Train)
	}

	return r
}
