package setup

import (
	"github.com/redis/go-redis/v9"
	"github.com/vexora-shop/accounts/internal/config"
	"github.com/vexora-shop/accounts/internal/cooldown"
	"github.com/vexora-shop/accounts/internal/handler"
	"github.com/vexora-shop/accounts/internal/service"
	"github.com/vexora-shop/accounts/internal/storage/pg"
	"github.com/vexora-shop/accounts/internal/utils/email"
	"github.com/vexora-shop/accounts/internal/utils/jwt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage *pg.Storage
	Handler *handler.Handler
	Janitor *service.Janitor
	Jwt     *jwt.Jwt
	Config  *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	emailCfg := cfg.Email()
	sender := email.New(&emailCfg)
	jwtService := jwt.New(cfg.JwtKey(), cfg.SessionTTL())

	// Redis makes the cooldown window consistent across replicas; a single
	// instance can run on the in-process tracker.
	var tracker cooldown.Tracker
	if cfg.Public.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Public.Redis.Addr,
			Password: cfg.RedisPassword(),
			DB:       cfg.Public.Redis.DB,
		})
		tracker = cooldown.NewRedisTracker(client, cfg.ResendCooldown())
	} else {
		tracker = cooldown.NewMemoryTracker(cfg.ResendCooldown())
	}

	accounts := service.NewAccounts(storage, storage, storage, sender, jwtService, tracker, cfg)
	janitor := service.NewJanitor(storage)

	googleCfg := cfg.Google()
	oauthCfg := &oauth2.Config{
		ClientID:     googleCfg.ClientID,
		ClientSecret: googleCfg.ClientSecret,
		RedirectURL:  googleCfg.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	h := handler.New(accounts, storage, oauthCfg, cfg)

	return &Dependencies{
		Storage: storage,
		Handler: h,
		Janitor: janitor,
		Jwt:     jwtService,
		Config:  cfg,
	}, nil
}
