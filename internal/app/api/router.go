package api

import (
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/AndyCHK/giphy-api-app/internal/clients/http/giphy"
	favoritehttp "github.com/AndyCHK/giphy-api-app/internal/domains/favorites/adapters/http"
	favoriteworkflows "github.com/AndyCHK/giphy-api-app/internal/domains/favorites/adapters/workflows"
	favoriteports "github.com/AndyCHK/giphy-api-app/internal/domains/favorites/ports"
	gifhttp "github.com/AndyCHK/giphy-api-app/internal/domains/gifs/adapters/http"
	interactionhttp "github.com/AndyCHK/giphy-api-app/internal/domains/interactions/adapters/http"
	userhttp "github.com/AndyCHK/giphy-api-app/internal/domains/users/adapters/http"
	apierrors "github.com/AndyCHK/giphy-api-app/internal/shared/errors"
)

// RouterDeps are the collaborators the HTTP surface is built from.
type RouterDeps struct {
	ServiceName string
	Services    *Services
	Workflows   favoriteports.WorkflowOrchestrator
	// Registry is exposed on /metrics when set.
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

func init() {
	registerTagNames()
}

// registerTagNames makes validation errors report json/form field names.
func registerTagNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return ""
	})
}

// NewRouter builds the gin engine with every route of the API.
func NewRouter(deps RouterDeps) *gin.Engine {
	services := deps.Services
	responder := apierrors.NewChainedResponder("",
		userhttp.ErrorMapper,
		favoritehttp.ErrorMapper,
		gifhttp.ErrorMapper,
	)

	router := gin.New()
	router.Use(gin.Recovery())
	if deps.ServiceName != "" {
		router.Use(otelgin.Middleware(deps.ServiceName))
	}
	router.Use(interactionhttp.Recorder(interactionhttp.Config{
		Service: services.Interactions,
		Users:   services.Users,
		Logger:  deps.Logger,
	}))

	router.GET("/healthz", healthHandler(services.Giphy))
	if deps.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	users := userhttp.NewUserAPI(services.Users, responder)
	gifs := gifhttp.NewGifAPI(services.Gifs, responder)
	workflows := deps.Workflows
	if workflows == nil {
		workflows = favoriteworkflows.NewInlineFavoriteWorkflows(services.Favorites)
	}
	favorites := favoritehttp.NewFavoriteAPI(services.Favorites, workflows, responder)

	api := router.Group("/api")
	api.POST("/auth/register", users.Register)
	api.POST("/auth/login", users.Login)

	secured := api.Group("")
	secured.Use(userhttp.RequireAuth(services.Users))
	secured.POST("/auth/logout", users.Logout)
	secured.GET("/users", users.ListUsers)

	secured.GET("/gifs/search", gifs.Search)
	secured.GET("/gifs/trending", gifs.Trending)
	secured.GET("/gifs/:id", gifs.GetByID)

	secured.GET("/favorites", favorites.List)
	secured.POST("/favorites", favorites.Save)
	secured.DELETE("/favorites/:id", favorites.Remove)

	return router
}

type healthResponse struct {
	Status  string                 `json:"status"`
	Breaker *giphy.BreakerSnapshot `json:"giphy_breaker,omitempty"`
}

func healthHandler(client *giphy.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := healthResponse{Status: "ok"}
		if client != nil {
			snapshot := client.Breaker().Snapshot(c.Request.Context())
			resp.Breaker = &snapshot
			if snapshot.State == giphy.StateOpen {
				resp.Status = "degraded"
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}
