package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/peershare/peershare-backend/internal/api"
	"github.com/peershare/peershare-backend/internal/booking"
	"github.com/peershare/peershare-backend/internal/item"
	"github.com/peershare/peershare-backend/internal/itemrequest"
	"github.com/peershare/peershare-backend/internal/pkg/clock"
	"github.com/peershare/peershare-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	DBPool         *pgxpool.Pool
	Redis          *redis.Client // optional, nil disables the search cache
	SearchCacheTTL time.Duration
	Logger         zerolog.Logger
	Clock          clock.Clock // defaults to the system clock
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	clk := cfg.Clock
	if clk == nil {
		clk = clock.System()
	}

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Booking repository first: the item module reads booking timelines.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Item module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	commentRepo := item.NewPgxCommentRepository(cfg.DBPool)

	var searchCache item.SearchCache
	if cfg.Redis != nil {
		searchCache = item.NewRedisSearchCache(cfg.Redis, cfg.SearchCacheTTL)
	}

	itemService := item.NewService(
		itemRepo,
		commentRepo,
		userService,
		bookingReader{repo: bookingRepo},
		searchCache,
		clk,
	)

	// Item request module
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)
	requestService := itemrequest.NewService(requestRepo, userService)

	// Booking engine
	bookingService := booking.NewService(
		bookingRepo,
		itemDirectory{repo: itemRepo},
		userDirectory{repo: userRepo},
		clk,
	)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         cfg.Logger,
		UserService:    userService,
		ItemService:    itemService,
		RequestService: requestService,
		BookingService: bookingService,
	})

	return &Container{Router: router}
}
