package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ctclostio/MojaveAdventure/internal/clock"
	"github.com/ctclostio/MojaveAdventure/internal/config"
	"github.com/ctclostio/MojaveAdventure/internal/game/combat"
	"github.com/ctclostio/MojaveAdventure/internal/game/command"
	"github.com/ctclostio/MojaveAdventure/internal/game/dice"
	"github.com/ctclostio/MojaveAdventure/internal/game/inventory"
	"github.com/ctclostio/MojaveAdventure/internal/game/npc"
	"github.com/ctclostio/MojaveAdventure/internal/game/session"
	"github.com/ctclostio/MojaveAdventure/internal/game/world"
	"github.com/ctclostio/MojaveAdventure/internal/gameserver"
	"github.com/ctclostio/MojaveAdventure/internal/narration"
	"github.com/ctclostio/MojaveAdventure/internal/observability"
	"github.com/ctclostio/MojaveAdventure/internal/scripting"
	"github.com/ctclostio/MojaveAdventure/internal/storage/file"
	"github.com/ctclostio/MojaveAdventure/internal/storage/postgres"
	"github.com/ctclostio/MojaveAdventure/internal/storage/redis"
)

const connectTimeout = 5 * time.Second

type closer struct {
	name string
	fn   func()
}

// environment is the plumbing every subcommand shares: configuration,
// logger and save store, plus what must be closed on exit.
type environment struct {
	cfg     config.Config
	logger  *zap.Logger
	store   gameserver.SaveStore
	closers []closer
}

func setup(ctx context.Context) (*environment, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	env := &environment{cfg: cfg, logger: logger}
	env.onClose("logger", func() { _ = logger.Sync() })

	if err := env.openStore(ctx); err != nil {
		env.close()
		return nil, err
	}
	return env, nil
}

func (e *environment) onClose(name string, fn func()) {
	e.closers = append(e.closers, closer{name: name, fn: fn})
}

// close runs the closers in reverse registration order.
func (e *environment) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i].fn()
	}
}

func (e *environment) openStore(ctx context.Context) error {
	switch e.cfg.Storage.Backend {
	case "postgres":
		dbStart := time.Now()
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		pool, err := postgres.NewPool(ctx, e.cfg.Database)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		e.onClose("database", pool.Close)
		if err := pool.SchemaReady(ctx); err != nil {
			return err
		}
		e.store = pool.Saves()
		e.logger.Debug("database connected",
			zap.String("host", e.cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
	default:
		store, err := file.NewStore(e.cfg.Storage.Dir)
		if err != nil {
			return fmt.Errorf("opening save directory: %w", err)
		}
		e.store = store
		e.logger.Debug("using save directory", zap.String("dir", store.Dir()))
	}
	return nil
}

// applySeed replaces the starting worldbook of a new game with the
// configured seed, if any.
func (e *environment) applySeed(st *session.GameState) error {
	seedPath := e.cfg.Content.WorldSeed
	if seedPath == "" {
		return nil
	}
	seed, err := world.LoadSeedFromFile(seedPath)
	if err != nil {
		return fmt.Errorf("loading world seed: %w", err)
	}
	st.Worldbook = seed.Build(clock.New())
	if loc, ok := st.Worldbook.Current(); ok {
		st.Location = loc.Name
	}
	return nil
}

func (e *environment) loadState(ctx context.Context, name string) (*session.GameState, error) {
	data, err := e.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return session.Unmarshal(data, e.cfg.CharacterRules(), clock.New())
}

func (e *environment) diceSource() dice.Source {
	if seed := e.cfg.Dice.Seed; seed != 0 {
		e.logger.Info("using seeded dice", zap.Int64("seed", seed))
		return dice.NewSeededSource(seed)
	}
	return dice.NewCryptoSource()
}

func (e *environment) catalog() (*inventory.Catalog, error) {
	if dir := e.cfg.Content.ItemsDir; dir != "" {
		return inventory.LoadCatalog(dir)
	}
	return inventory.DefaultCatalog()
}

func (e *environment) enemies(src dice.Source) (*npc.Registry, error) {
	eval := scripting.NewEvaluator(e.cfg.Content.FormulaInstructionLimit)
	dir := e.cfg.Content.ArchetypesDir
	if dir == "" {
		return npc.DefaultRegistry(eval, src)
	}
	tmpls, err := npc.LoadTemplates(dir)
	if err != nil {
		return nil, err
	}
	e.logger.Info("loaded archetypes", zap.Int("count", len(tmpls)), zap.String("dir", dir))
	return npc.NewRegistry(tmpls, eval, src)
}

// narrators builds the Anthropic narrator behind the configured cache, and
// the entity extractor when enabled.
func (e *environment) narrators(ctx context.Context) (narration.Narrator, narration.Extractor, error) {
	nc := e.cfg.Narrator
	key := os.Getenv(nc.APIKeyEnv)
	if key == "" {
		return nil, nil, fmt.Errorf("set %s to an Anthropic API key to play", nc.APIKeyEnv)
	}
	client := narration.NewMessageClient(key)
	model := narration.ModelConfig{
		Model:        nc.Model,
		MaxTokens:    nc.MaxTokens,
		Temperature:  nc.Temperature,
		SystemPrompt: nc.SystemPrompt,
	}
	base, err := narration.NewAnthropicNarrator(client, model, e.logger)
	if err != nil {
		return nil, nil, err
	}

	var extractor narration.Extractor
	if nc.ExtractEntities {
		x, err := narration.NewAnthropicExtractor(client, model)
		if err != nil {
			return nil, nil, err
		}
		extractor = x
	}

	cache, err := e.cache(ctx)
	if err != nil {
		return nil, nil, err
	}
	if cache == nil {
		return base, extractor, nil
	}
	return narration.NewCachedNarrator(base, cache, e.logger), extractor, nil
}

func (e *environment) cache(ctx context.Context) (narration.Cache, error) {
	cc := e.cfg.Cache
	memory := func() narration.Cache {
		return narration.NewMemoryCache(cc.TTL, cc.Capacity, clock.New())
	}
	switch cc.Backend {
	case "none":
		return nil, nil
	case "redis":
		rc := e.cfg.Redis
		client, err := redis.NewClient(rc.Endpoint, &redis.Options{
			Password:     rc.Password,
			DB:           rc.DB,
			PoolSize:     rc.PoolSize,
			MinIdleConns: rc.MinIdleConns,
			MaxRetries:   rc.MaxRetries,
		})
		if err != nil {
			return nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := redis.Ping(pingCtx, client); err != nil {
			_ = client.Close()
			e.logger.Warn("redis unreachable, caching narration in memory",
				zap.String("endpoint", rc.Endpoint), zap.Error(err))
			return memory(), nil
		}
		e.onClose("redis", func() { _ = client.Close() })
		rcache, err := narration.NewRedisCache(client, cc.TTL)
		if err != nil {
			return nil, err
		}
		return rcache, nil
	default:
		return memory(), nil
	}
}

// newGame wires the rules engine and narrator around st.
func (e *environment) newGame(ctx context.Context, st *session.GameState) (*gameserver.Game, error) {
	src := e.diceSource()
	roller := dice.NewLoggedRoller(src, e.logger)

	items, err := e.catalog()
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	enemies, err := e.enemies(src)
	if err != nil {
		return nil, fmt.Errorf("loading archetypes: %w", err)
	}
	narrator, extractor, err := e.narrators(ctx)
	if err != nil {
		return nil, err
	}

	return gameserver.New(st, gameserver.Deps{
		Commands:  command.DefaultRegistry(),
		Engine:    combat.NewEngine(e.cfg.CombatConfig(), roller, items, e.logger),
		Enemies:   enemies,
		Items:     items,
		Roller:    roller,
		Narrator:  narrator,
		Extractor: extractor,
		Store:     e.store,
		Logger:    e.logger,
	}, gameserver.Options{
		HistoryTurns: e.cfg.Narrator.HistoryTurns,
		Autosave:     e.cfg.Storage.Autosave,
		Check:        e.cfg.CheckConfig(),
	})
}
