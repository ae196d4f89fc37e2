// Package config provides Viper-based configuration loading for the game.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ctclostio/MojaveAdventure/internal/game/character"
	"github.com/ctclostio/MojaveAdventure/internal/game/combat"
	"github.com/ctclostio/MojaveAdventure/internal/game/dice"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File receives log output. Empty means stderr.
	File string `mapstructure:"file"`
}

// RulesConfig holds the character creation and growth constants.
type RulesConfig struct {
	SpecialTotal     int `mapstructure:"special_total"`
	BaseHP           int `mapstructure:"base_hp"`
	HPPerStrength    int `mapstructure:"hp_per_strength"`
	HPPerEndurance   int `mapstructure:"hp_per_endurance"`
	HPPerLevel       int `mapstructure:"hp_per_level"`
	BaseAP           int `mapstructure:"base_ap"`
	APAgilityDivisor int `mapstructure:"ap_agility_divisor"`
	XPPerLevel       int `mapstructure:"xp_per_level"`
	StartingLevel    int `mapstructure:"starting_level"`
	StartingCaps     int `mapstructure:"starting_caps"`
}

// DiceConfig holds skill-check tuning and the random source.
type DiceConfig struct {
	Sides              int `mapstructure:"sides"`
	DCWeight           int `mapstructure:"dc_weight"`
	CritSuccessPercent int `mapstructure:"crit_success_percent"`
	CritFailurePercent int `mapstructure:"crit_failure_percent"`
	// Seed makes rolls reproducible. Zero uses a crypto source.
	Seed int64 `mapstructure:"seed"`
}

// CombatConfig holds hit chances and AP costs.
type CombatConfig struct {
	BaseChance     int `mapstructure:"base_chance"`
	MinChance      int `mapstructure:"min_chance"`
	MaxChance      int `mapstructure:"max_chance"`
	CritChance     int `mapstructure:"crit_chance"`
	BaseArmorClass int `mapstructure:"base_armor_class"`
	UnarmedAPCost  int `mapstructure:"unarmed_ap_cost"`
	UseItemAPCost  int `mapstructure:"use_item_ap_cost"`
	FleeBaseChance int `mapstructure:"flee_base_chance"`
	FleePerAgility int `mapstructure:"flee_per_agility"`
}

// NarratorConfig selects the language model.
type NarratorConfig struct {
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
	// SystemPrompt overrides the built-in game master instructions.
	SystemPrompt string `mapstructure:"system_prompt"`
	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv    string        `mapstructure:"api_key_env"`
	HistoryTurns int           `mapstructure:"history_turns"`
	Timeout      time.Duration `mapstructure:"timeout"`
	// ExtractEntities merges locations and NPCs mentioned in narration into
	// the worldbook after each turn.
	ExtractEntities bool `mapstructure:"extract_entities"`
}

// CacheConfig selects the narration response cache.
type CacheConfig struct {
	// Backend is "memory", "redis" or "none".
	Backend  string        `mapstructure:"backend"`
	TTL      time.Duration `mapstructure:"ttl"`
	Capacity int           `mapstructure:"capacity"`
}

// RedisConfig holds go-redis connection settings.
type RedisConfig struct {
	Endpoint     string `mapstructure:"endpoint"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
	MaxRetries   int    `mapstructure:"max_retries"`
}

// StorageConfig selects where saves live.
type StorageConfig struct {
	// Backend is "file" or "postgres".
	Backend string `mapstructure:"backend"`
	// Dir is the save directory for the file backend.
	Dir string `mapstructure:"dir"`
	// Autosave names the save written after every turn. Empty disables it.
	Autosave string `mapstructure:"autosave"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// ContentConfig points at content overriding the built-in data. Empty paths
// use what ships with the binary.
type ContentConfig struct {
	ItemsDir      string `mapstructure:"items_dir"`
	ArchetypesDir string `mapstructure:"archetypes_dir"`
	WorldSeed     string `mapstructure:"world_seed"`
	// FormulaInstructionLimit bounds each archetype formula evaluation.
	FormulaInstructionLimit int `mapstructure:"formula_instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Rules    RulesConfig    `mapstructure:"rules"`
	Dice     DiceConfig     `mapstructure:"dice"`
	Combat   CombatConfig   `mapstructure:"combat"`
	Narrator NarratorConfig `mapstructure:"narrator"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Content  ContentConfig  `mapstructure:"content"`
}

// CharacterRules converts the rules section for the character package.
func (c Config) CharacterRules() character.Rules {
	r := c.Rules
	return character.Rules{
		SpecialTotal:     r.SpecialTotal,
		BaseHP:           r.BaseHP,
		HPPerStrength:    r.HPPerStrength,
		HPPerEndurance:   r.HPPerEndurance,
		HPPerLevel:       r.HPPerLevel,
		BaseAP:           r.BaseAP,
		APAgilityDivisor: r.APAgilityDivisor,
		XPPerLevel:       r.XPPerLevel,
		StartingLevel:    r.StartingLevel,
		StartingCaps:     r.StartingCaps,
	}
}

// CheckConfig converts the dice section for skill checks.
func (c Config) CheckConfig() dice.CheckConfig {
	return dice.CheckConfig{
		Sides:              c.Dice.Sides,
		DCWeight:           c.Dice.DCWeight,
		CritSuccessPercent: c.Dice.CritSuccessPercent,
		CritFailurePercent: c.Dice.CritFailurePercent,
	}
}

// AttackConfig converts the hit-chance part of the combat section.
func (c Config) AttackConfig() combat.AttackConfig {
	return combat.AttackConfig{
		BaseChance: c.Combat.BaseChance,
		MinChance:  c.Combat.MinChance,
		MaxChance:  c.Combat.MaxChance,
		CritChance: c.Combat.CritChance,
	}
}

// CombatConfig converts the combat section for the round engine.
func (c Config) CombatConfig() combat.Config {
	return combat.Config{
		Attack:         c.AttackConfig(),
		BaseArmorClass: c.Combat.BaseArmorClass,
		UnarmedAPCost:  c.Combat.UnarmedAPCost,
		UseItemAPCost:  c.Combat.UseItemAPCost,
		FleeBaseChance: c.Combat.FleeBaseChance,
		FleePerAgility: c.Combat.FleePerAgility,
	}
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string
	add := func(section string, err error) {
		if err != nil {
			errs = append(errs, section+": "+strings.ReplaceAll(err.Error(), "\n", "; "))
		}
	}

	add("logging", validateLogging(c.Logging))
	add("rules", c.CharacterRules().Validate())
	add("dice", c.CheckConfig().Validate())
	add("combat", c.CombatConfig().Validate())
	add("narrator", validateNarrator(c.Narrator))
	add("cache", validateCache(c.Cache, c.Redis))
	add("storage", validateStorage(c.Storage))
	if c.Storage.Backend == "postgres" {
		add("database", validateDatabase(c.Database))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateNarrator(n NarratorConfig) error {
	var errs []error
	if n.Model == "" {
		errs = append(errs, errors.New("narrator.model must not be empty"))
	}
	if n.MaxTokens < 1 {
		errs = append(errs, fmt.Errorf("narrator.max_tokens must be >= 1, got %d", n.MaxTokens))
	}
	if n.Temperature < 0 || n.Temperature > 1 {
		errs = append(errs, fmt.Errorf("narrator.temperature must be in [0,1], got %g", n.Temperature))
	}
	if n.APIKeyEnv == "" {
		errs = append(errs, errors.New("narrator.api_key_env must not be empty"))
	}
	if n.HistoryTurns < 1 {
		errs = append(errs, fmt.Errorf("narrator.history_turns must be >= 1, got %d", n.HistoryTurns))
	}
	if n.Timeout < 0 {
		errs = append(errs, errors.New("narrator.timeout must not be negative"))
	}
	return errors.Join(errs...)
}

func validateCache(c CacheConfig, r RedisConfig) error {
	var errs []error
	switch c.Backend {
	case "none":
		return nil
	case "memory":
		if c.Capacity < 1 {
			errs = append(errs, fmt.Errorf("cache.capacity must be >= 1, got %d", c.Capacity))
		}
	case "redis":
		if r.Endpoint == "" {
			errs = append(errs, errors.New("redis.endpoint must not be empty when cache.backend is redis"))
		}
	default:
		return fmt.Errorf("cache.backend must be one of [memory, redis, none], got %q", c.Backend)
	}
	if c.TTL <= 0 {
		errs = append(errs, errors.New("cache.ttl must be positive"))
	}
	return errors.Join(errs...)
}

func validateStorage(s StorageConfig) error {
	switch s.Backend {
	case "file":
		if s.Dir == "" {
			return errors.New("storage.dir must not be empty")
		}
	case "postgres":
	default:
		return fmt.Errorf("storage.backend must be one of [file, postgres], got %q", s.Backend)
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with MOJAVE_ prefix
	v.SetEnvPrefix("MOJAVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path loads defaults and
// environment overrides only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration without reading a file or the
// environment.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("config: defaults do not unmarshal: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")

	rules := character.DefaultRules()
	v.SetDefault("rules.special_total", rules.SpecialTotal)
	v.SetDefault("rules.base_hp", rules.BaseHP)
	v.SetDefault("rules.hp_per_strength", rules.HPPerStrength)
	v.SetDefault("rules.hp_per_endurance", rules.HPPerEndurance)
	v.SetDefault("rules.hp_per_level", rules.HPPerLevel)
	v.SetDefault("rules.base_ap", rules.BaseAP)
	v.SetDefault("rules.ap_agility_divisor", rules.APAgilityDivisor)
	v.SetDefault("rules.xp_per_level", rules.XPPerLevel)
	v.SetDefault("rules.starting_level", rules.StartingLevel)
	v.SetDefault("rules.starting_caps", rules.StartingCaps)

	check := dice.DefaultCheckConfig()
	v.SetDefault("dice.sides", check.Sides)
	v.SetDefault("dice.dc_weight", check.DCWeight)
	v.SetDefault("dice.crit_success_percent", check.CritSuccessPercent)
	v.SetDefault("dice.crit_failure_percent", check.CritFailurePercent)
	v.SetDefault("dice.seed", 0)

	cb := combat.DefaultConfig()
	v.SetDefault("combat.base_chance", cb.Attack.BaseChance)
	v.SetDefault("combat.min_chance", cb.Attack.MinChance)
	v.SetDefault("combat.max_chance", cb.Attack.MaxChance)
	v.SetDefault("combat.crit_chance", cb.Attack.CritChance)
	v.SetDefault("combat.base_armor_class", cb.BaseArmorClass)
	v.SetDefault("combat.unarmed_ap_cost", cb.UnarmedAPCost)
	v.SetDefault("combat.use_item_ap_cost", cb.UseItemAPCost)
	v.SetDefault("combat.flee_base_chance", cb.FleeBaseChance)
	v.SetDefault("combat.flee_per_agility", cb.FleePerAgility)

	v.SetDefault("narrator.model", "claude-sonnet-4-5")
	v.SetDefault("narrator.max_tokens", 1024)
	v.SetDefault("narrator.temperature", 0.8)
	v.SetDefault("narrator.system_prompt", "")
	v.SetDefault("narrator.api_key_env", "ANTHROPIC_API_KEY")
	v.SetDefault("narrator.history_turns", 10)
	v.SetDefault("narrator.timeout", "2m")
	v.SetDefault("narrator.extract_entities", true)

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("cache.capacity", 256)

	v.SetDefault("redis.endpoint", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.max_retries", 3)

	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.dir", "saves")
	v.SetDefault("storage.autosave", "autosave")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "mojave")
	v.SetDefault("database.password", "mojave")
	v.SetDefault("database.name", "mojave")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("content.items_dir", "")
	v.SetDefault("content.archetypes_dir", "")
	v.SetDefault("content.world_seed", "")
	v.SetDefault("content.formula_instruction_limit", 10000)
}
