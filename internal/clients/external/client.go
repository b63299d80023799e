// Package external loads class reference data from the D&D 5e API
package external

//go:generate mockgen -destination=mock/mock_class_api.go -package=externalmock github.com/KirkDiggler/rpg-builder/internal/clients/external ClassAPI

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-builder/internal/errors"
	"github.com/KirkDiggler/rpg-builder/internal/repositories/classes"
	"github.com/KirkDiggler/rpg-builder/internal/rules/spellcasting"
)

// ClassAPI is the part of the dnd5e-api client used for class grants
type ClassAPI interface {
	GetClass(key string) (*entities.Class, error)
	ListClasses() ([]*entities.ReferenceItem, error)
}

var _ ClassAPI = (dnd5e.Interface)(nil)

// Config contains configuration options for the class source.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
	// Concurrency bounds parallel class loads (optional, defaults to 4)
	Concurrency int

	// Fallback serves features and spells, which the API does not carry
	// in the shape we store
	Fallback classes.Repository

	// API overrides the HTTP client, used by tests
	API ClassAPI
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.Fallback == nil {
		return errors.InvalidArgument("fallback class repository is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	return nil
}

type classSource struct {
	api         ClassAPI
	fallback    classes.Repository
	concurrency int
}

// New creates a class repository backed by the D&D 5e API
func New(cfg *Config) (classes.Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	api := cfg.API
	if api == nil {
		baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
			Client:  &http.Client{Timeout: cfg.HTTPTimeout},
			BaseURL: cfg.BaseURL,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create D&D 5e API client")
		}
		api = dnd5e.NewCachedClient(baseClient, cfg.CacheTTL)
	}

	return &classSource{
		api:         api,
		fallback:    cfg.Fallback,
		concurrency: cfg.Concurrency,
	}, nil
}

// Get fetches one class and converts its starting equipment
func (c *classSource) Get(_ context.Context, input classes.GetInput) (*classes.GetOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument("class key cannot be empty")
	}

	class, err := c.api.GetClass(input.Key)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get class "+input.Key+" from D&D 5e API")
	}
	if class == nil {
		return nil, errors.NotFoundf("class %s not found", input.Key)
	}

	return &classes.GetOutput{Class: convertClass(class)}, nil
}

// List loads every class concurrently. Results are ordered by key.
func (c *classSource) List(ctx context.Context, _ classes.ListInput) (*classes.ListOutput, error) {
	refs, err := c.api.ListClasses()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list classes from D&D 5e API")
	}
	slog.Info("Loading class details", "count", len(refs), "concurrency", c.concurrency)

	loaded := make([]*classes.Class, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, ref := range refs {
		if ref == nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := c.Get(gctx, classes.GetInput{Key: ref.Key})
			if err != nil {
				slog.Error("Failed to get class details", "class", ref.Key, "error", err)
				return err
			}
			loaded[i] = out.Class
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*classes.Class, 0, len(loaded))
	for _, class := range loaded {
		if class != nil {
			result = append(result, class)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })

	return &classes.ListOutput{Classes: result}, nil
}

// ListFeatures delegates to the fallback repository
func (c *classSource) ListFeatures(ctx context.Context, input classes.ListFeaturesInput) (*classes.ListFeaturesOutput, error) {
	return c.fallback.ListFeatures(ctx, input)
}

// ListSpells delegates to the fallback repository
func (c *classSource) ListSpells(ctx context.Context, input classes.ListSpellsInput) (*classes.ListSpellsOutput, error) {
	return c.fallback.ListSpells(ctx, input)
}

func convertClass(class *entities.Class) *classes.Class {
	return &classes.Class{
		Key:        class.Key,
		Name:       class.Name,
		HitDie:     class.HitDie,
		CasterType: spellcasting.CasterTypeForClass(class.Key),
		Grant:      convertGrant(class),
	}
}
