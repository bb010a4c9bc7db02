package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AndyCHK/giphy-api-app/internal/clients/http/giphy"
	favoritecatalog "github.com/AndyCHK/giphy-api-app/internal/domains/favorites/adapters/catalog"
	favoritememory "github.com/AndyCHK/giphy-api-app/internal/domains/favorites/adapters/memory"
	favoriteobs "github.com/AndyCHK/giphy-api-app/internal/domains/favorites/adapters/observability"
	favoritepostgres "github.com/AndyCHK/giphy-api-app/internal/domains/favorites/adapters/persistence/postgres"
	favoriteapp "github.com/AndyCHK/giphy-api-app/internal/domains/favorites/application"
	favoriteports "github.com/AndyCHK/giphy-api-app/internal/domains/favorites/ports"
	gifprovider "github.com/AndyCHK/giphy-api-app/internal/domains/gifs/adapters/external/giphy"
	gifobs "github.com/AndyCHK/giphy-api-app/internal/domains/gifs/adapters/observability"
	gifapp "github.com/AndyCHK/giphy-api-app/internal/domains/gifs/application"
	gifports "github.com/AndyCHK/giphy-api-app/internal/domains/gifs/ports"
	interactionmemory "github.com/AndyCHK/giphy-api-app/internal/domains/interactions/adapters/memory"
	interactionobs "github.com/AndyCHK/giphy-api-app/internal/domains/interactions/adapters/observability"
	interactionpostgres "github.com/AndyCHK/giphy-api-app/internal/domains/interactions/adapters/persistence/postgres"
	interactionapp "github.com/AndyCHK/giphy-api-app/internal/domains/interactions/application"
	interactionports "github.com/AndyCHK/giphy-api-app/internal/domains/interactions/ports"
	usermemory "github.com/AndyCHK/giphy-api-app/internal/domains/users/adapters/memory"
	userobs "github.com/AndyCHK/giphy-api-app/internal/domains/users/adapters/observability"
	userpostgres "github.com/AndyCHK/giphy-api-app/internal/domains/users/adapters/persistence/postgres"
	usersecurity "github.com/AndyCHK/giphy-api-app/internal/domains/users/adapters/security"
	userapp "github.com/AndyCHK/giphy-api-app/internal/domains/users/application"
	userports "github.com/AndyCHK/giphy-api-app/internal/domains/users/ports"
	"github.com/AndyCHK/giphy-api-app/internal/platform/kvstore"
	platformobservability "github.com/AndyCHK/giphy-api-app/internal/platform/observability"
	platformpostgres "github.com/AndyCHK/giphy-api-app/internal/platform/postgres"
)

// Stores holds the process-wide persistence handles. DB is nil when the
// process runs on in-memory adapters.
type Stores struct {
	DB *gorm.DB
	KV kvstore.Store
}

// OpenStores connects PostgreSQL and Redis, falling back to memory for each
// one that is not configured or not reachable.
func OpenStores(ctx context.Context, cfg Config, logger *slog.Logger) (*Stores, func()) {
	db, closeDB := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	kv, closeKV := kvstore.Open(ctx, cfg.RedisURL, logger)
	return &Stores{DB: db, KV: kv}, func() {
		closeKV()
		closeDB()
	}
}

// NewGiphyClient builds the resilient GIPHY client over the shared KV store.
func NewGiphyClient(cfg Config, kv kvstore.Store, instruments *platformobservability.Instruments) (*giphy.Client, error) {
	opts := []giphy.Option{}
	if instruments != nil {
		opts = append(opts,
			giphy.WithLogger(instruments.Logger),
			giphy.WithTracer(instruments.Tracer("internal.clients.giphy")),
		)
		if instruments.Registry != nil {
			opts = append(opts, giphy.WithMetrics(giphy.NewMetrics(instruments.Registry)))
		}
	}
	if cfg.Giphy.APIKey == "" && instruments != nil {
		instruments.Logger.Warn("GIPHY_API_KEY not set, upstream calls will be rejected")
	}
	return giphy.NewClient(cfg.Giphy, kv, opts...)
}

// Services bundles the instrumented application services.
type Services struct {
	Giphy        *giphy.Client
	Users        userports.Service
	Gifs         gifports.Service
	Favorites    favoriteports.Service
	Catalog      favoriteports.GifCatalog
	Interactions interactionports.Service
}

// NewServices wires every bounded context over stores.
func NewServices(cfg Config, stores *Stores, instruments *platformobservability.Instruments) (*Services, error) {
	if stores == nil || stores.KV == nil {
		return nil, errors.New("services require a kv store")
	}
	giphyClient, err := NewGiphyClient(cfg, stores.KV, instruments)
	if err != nil {
		return nil, fmt.Errorf("configure giphy client: %w", err)
	}
	users, err := NewUserService(cfg, stores.DB, instruments)
	if err != nil {
		return nil, err
	}
	gifs := NewGifService(giphyClient, instruments)
	catalog := NewGifCatalog(gifs)
	favorites := NewFavoriteService(stores.DB, catalog, instruments)
	interactions := interactionobs.New(
		interactionapp.NewService(
			interactionRepository(stores.DB),
			interactionapp.WithMaxContentLength(cfg.MaxContentLength),
		),
		interactionobs.WithLogger(effectiveLogger(instruments)),
		interactionobs.WithTracer(instruments.Tracer("internal.interactions.application")),
		interactionobs.WithMeter(instruments.Meter("internal.interactions.application")),
	)

	return &Services{
		Giphy:        giphyClient,
		Users:        users,
		Gifs:         gifs,
		Favorites:    favorites,
		Catalog:      catalog,
		Interactions: interactions,
	}, nil
}

// NewUserService wires registration, login and bearer token checks.
func NewUserService(cfg Config, db *gorm.DB, instruments *platformobservability.Instruments) (userports.Service, error) {
	signer, err := usersecurity.NewJWTSigner(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("configure token signer: %w", err)
	}
	userRepo, tokenStore := userStores(db)
	return userobs.New(
		userapp.NewService(userRepo, tokenStore, signer, usersecurity.NewBcryptHasher(bcrypt.DefaultCost), userapp.WithTokenTTL(cfg.TokenTTL)),
		userobs.WithLogger(effectiveLogger(instruments)),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	), nil
}

func NewGifService(giphyClient *giphy.Client, instruments *platformobservability.Instruments) gifports.Service {
	return gifobs.New(
		gifapp.NewService(gifprovider.NewProvider(giphyClient)),
		gifobs.WithLogger(effectiveLogger(instruments)),
		gifobs.WithTracer(instruments.Tracer("internal.gifs.application")),
		gifobs.WithMeter(instruments.Meter("internal.gifs.application")),
	)
}

// NewGifCatalog confirms GIFs exist through the gifs service.
func NewGifCatalog(gifs gifports.Service) favoriteports.GifCatalog {
	return favoritecatalog.NewGifsCatalog(gifs)
}

// NewFavoriteService wires the favorites service. A nil catalog skips the GIF
// existence check, which is what the Temporal persist activity needs.
func NewFavoriteService(db *gorm.DB, catalog favoriteports.GifCatalog, instruments *platformobservability.Instruments) favoriteports.Service {
	return favoriteobs.New(
		favoriteapp.NewService(favoriteRepository(db), catalog),
		favoriteobs.WithLogger(effectiveLogger(instruments)),
		favoriteobs.WithTracer(instruments.Tracer("internal.favorites.application")),
		favoriteobs.WithMeter(instruments.Meter("internal.favorites.application")),
	)
}

// UserTokenStore returns the token store backing db, or nil without one.
func UserTokenStore(db *gorm.DB) userports.TokenStore {
	if db == nil {
		return nil
	}
	return userpostgres.NewTokenStore(db)
}

func userStores(db *gorm.DB) (userports.Repository, userports.TokenStore) {
	if db == nil {
		return usermemory.NewRepository(), usermemory.NewTokenStore()
	}
	return userpostgres.NewRepository(db), userpostgres.NewTokenStore(db)
}

func favoriteRepository(db *gorm.DB) favoriteports.Repository {
	if db == nil {
		return favoritememory.NewRepository()
	}
	return favoritepostgres.NewRepository(db)
}

func interactionRepository(db *gorm.DB) interactionports.Repository {
	if db == nil {
		return interactionmemory.NewRepository()
	}
	return interactionpostgres.NewRepository(db)
}

// ConnectTemporal dials Temporal with tracing and structured logging.
func ConnectTemporal(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
