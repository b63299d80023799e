package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-builder/internal/clients/external"
	"github.com/KirkDiggler/rpg-builder/internal/config"
	"github.com/KirkDiggler/rpg-builder/internal/database"
	"github.com/KirkDiggler/rpg-builder/internal/handlers/builder/v1alpha1"
	"github.com/KirkDiggler/rpg-builder/internal/orchestrators/abilities"
	"github.com/KirkDiggler/rpg-builder/internal/orchestrators/campaign"
	"github.com/KirkDiggler/rpg-builder/internal/orchestrators/character"
	"github.com/KirkDiggler/rpg-builder/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-builder/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-builder/internal/redis"
	abilitysession "github.com/KirkDiggler/rpg-builder/internal/repositories/ability_session"
	"github.com/KirkDiggler/rpg-builder/internal/repositories/campaigns"
	"github.com/KirkDiggler/rpg-builder/internal/repositories/characters"
	"github.com/KirkDiggler/rpg-builder/internal/repositories/classes"
	"github.com/KirkDiggler/rpg-builder/internal/repositories/items"
	"github.com/KirkDiggler/rpg-builder/internal/rules/catalog"
	"github.com/KirkDiggler/rpg-builder/internal/rules/equipment"
)

// dependencies is everything the server needs, built from config
type dependencies struct {
	Handler *v1alpha1.Handler

	db    *database.DB
	redis redisclient.Client
}

// Close releases the database and redis connections
func (d *dependencies) Close() {
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			slog.Warn("Failed to close redis", "error", err)
		}
	}
	if d.db != nil {
		if err := d.db.Close(); err != nil {
			slog.Warn("Failed to close database", "error", err)
		}
	}
}

func openDatabase(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	db, err := database.Open(ctx, &database.Config{
		Dialect: database.Dialect(cfg.DatabaseDriver),
		URL:     cfg.DatabaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// wire connects storage, builds repositories and orchestrators, and
// returns the gRPC handler
func wire(ctx context.Context, cfg *config.Config) (*dependencies, error) {
	deps := &dependencies{}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	deps.db = db

	applied, err := database.Migrate(ctx, db)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	if len(applied) > 0 {
		slog.Info("Applied migrations", "names", applied)
	}

	rdb, err := redisclient.NewClientFromURL(cfg.RedisURL, nil)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	deps.redis = rdb
	if err := redisclient.Ping(ctx, rdb); err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}

	handler, err := buildHandler(cfg, db, rdb)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.Handler = handler

	return deps, nil
}

func buildHandler(cfg *config.Config, db *database.DB, rdb redisclient.Client) (*v1alpha1.Handler, error) {
	clk := clock.New()

	itemRepo, err := items.NewSQLRepository(&items.Config{DB: db})
	if err != nil {
		return nil, fmt.Errorf("failed to create item repository: %w", err)
	}
	characterRepo, err := characters.NewSQLRepository(&characters.Config{DB: db})
	if err != nil {
		return nil, fmt.Errorf("failed to create character repository: %w", err)
	}
	campaignRepo, err := campaigns.NewSQLRepository(&campaigns.Config{DB: db})
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign repository: %w", err)
	}
	classRepo, err := classes.NewSQLRepository(&classes.Config{DB: db})
	if err != nil {
		return nil, fmt.Errorf("failed to create class repository: %w", err)
	}
	if cfg.ClassSource == config.ClassSourceDND5eAPI {
		classRepo, err = external.New(&external.Config{
			BaseURL:  cfg.DND5eAPIURL,
			CacheTTL: cfg.DND5eCacheTTL,
			Fallback: classRepo,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create dnd5e-api class source: %w", err)
		}
	}
	sessionRepo, err := abilitysession.NewRedisRepository(&abilitysession.Config{
		Client: rdb,
		Clock:  clk,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ability session repository: %w", err)
	}

	matcher, err := catalog.NewMatcher(&catalog.Config{Repository: itemRepo})
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog matcher: %w", err)
	}

	abilityService, err := abilities.NewOrchestrator(&abilities.Config{
		SessionRepo:    sessionRepo,
		Roller:         dice.DefaultRoller,
		SessionIDGen:   idgen.NewUUID("ability"),
		RollGroupIDGen: idgen.NewUUID("roll"),
		SessionTTL:     cfg.SessionTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ability orchestrator: %w", err)
	}

	characterService, err := character.NewOrchestrator(&character.Config{
		CharacterRepo:  characterRepo,
		ClassRepo:      classRepo,
		SessionRepo:    sessionRepo,
		Resolver:       equipment.NewResolver(nil),
		Matcher:        matcher,
		IDGenerator:    idgen.NewUUID("char"),
		InventoryIDGen: idgen.NewUUID("inv"),
		Clock:          clk,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create character orchestrator: %w", err)
	}

	campaignService, err := campaign.NewOrchestrator(&campaign.Config{
		CampaignRepo:   campaignRepo,
		CharacterRepo:  characterRepo,
		ItemRepo:       itemRepo,
		IDGenerator:    idgen.NewUUID("camp"),
		JoinCodeGen:    idgen.NewJoinCode(),
		InventoryIDGen: idgen.NewUUID("inv"),
		Clock:          clk,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign orchestrator: %w", err)
	}

	return v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		AbilityService:   abilityService,
		CharacterService: characterService,
		CampaignService:  campaignService,
	})
}
