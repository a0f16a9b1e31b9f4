// Package bootstrap assembles the process-wide runtime: storage, cache,
// catalog database, and the trained recommendation engine.
package bootstrap

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"gorm.io/gorm"

	"mesa/internal/cache"
	"mesa/internal/config"
	"mesa/internal/database"
	"mesa/internal/recommend"
	"mesa/internal/repository"
)

// Runtime carries every long-lived dependency. It is built once at startup;
// the classifier inside the engine is trained during InitRuntime and is
// immutable afterwards.
type Runtime struct {
	Config    *config.Config
	FS        afero.Fs
	Users     *repository.Users
	Posts     *repository.Posts
	Friends   *repository.Friends
	Groups    *repository.Groups
	Redis     *redis.Client
	CatalogDB *gorm.DB
	Engine    *recommend.Engine
}

// InitRuntime builds the runtime from configuration, creating the data
// directory if needed and training the recommendation classifier.
func InitRuntime(cfg *config.Config) (*Runtime, error) {
	fs := afero.NewOsFs()
	return InitRuntimeWithFS(cfg, fs)
}

// InitRuntimeWithFS is InitRuntime over an explicit filesystem, used by
// tests with an in-memory fs.
func InitRuntimeWithFS(cfg *config.Config, fs afero.Fs) (*Runtime, error) {
	if err := fs.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	users := repository.NewUsers(fs, cfg.DataDir)
	posts := repository.NewPosts(fs, cfg.DataDir)
	friends := repository.NewFriends(fs, cfg.DataDir)
	groups := repository.NewGroups(fs, cfg.DataDir)

	cache.InitRedis(cfg.RedisURL)

	db, err := database.Connect(cfg.CatalogDBPath)
	if err != nil {
		return nil, err
	}

	engine := recommend.NewEngine(users, groups, recommend.EngineConfig{
		TrainingGroups: cfg.TrainingGroups,
		ForestTrees:    cfg.ForestTrees,
		Seed:           cfg.RandomSeed,
	})

	return &Runtime{
		Config:    cfg,
		FS:        fs,
		Users:     users,
		Posts:     posts,
		Friends:   friends,
		Groups:    groups,
		Redis:     cache.GetClient(),
		CatalogDB: db,
		Engine:    engine,
	}, nil
}
