package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/folbricht/adrules"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type config struct {
	Title         string
	LogLevel      string            `toml:"log-level" yaml:"log-level"`
	Sources       []string          `toml:"sources" yaml:"sources"`
	SourcesFile   string            `toml:"sources-file" yaml:"sources-file"`
	RulesDir      string            `toml:"rules-dir" yaml:"rules-dir"`
	Output        string            `toml:"output" yaml:"output"`
	HashCache     string            `toml:"hash-cache" yaml:"hash-cache"`
	MetricsFile   string            `toml:"metrics-file" yaml:"metrics-file"`
	StaticRules   []string          `toml:"static-rules" yaml:"static-rules"`
	FriendlyNames map[string]string `toml:"friendly-names" yaml:"friendly-names"`
	Download      download          `toml:"download" yaml:"download"`
	Policy        policy            `toml:"policy" yaml:"policy"`
	Redis         *redisConfig      `toml:"redis" yaml:"redis"`
	Syslog        *syslogConfig     `toml:"syslog" yaml:"syslog"`
}

type download struct {
	Skip    bool              `toml:"skip" yaml:"skip"`
	Workers int               `toml:"workers" yaml:"workers"`
	Timeout string            `toml:"timeout" yaml:"timeout"`
	Headers map[string]string `toml:"headers" yaml:"headers"`
}

type policy struct {
	BlockDirective     string `toml:"block-directive" yaml:"block-directive"`
	PlainDomain        string `toml:"plain-domain" yaml:"plain-domain"`
	Regex              *bool  `toml:"regex" yaml:"regex"`
	Validation         string `toml:"validation" yaml:"validation"`
	SkipLocalHostnames *bool  `toml:"skip-local-hostnames" yaml:"skip-local-hostnames"`
	PruneSubdomains    bool   `toml:"prune-subdomains" yaml:"prune-subdomains"`
	ValidatorCacheSize int    `toml:"validator-cache-size" yaml:"validator-cache-size"`
}

type redisConfig struct {
	Address   string `toml:"address" yaml:"address"`
	Username  string `toml:"username" yaml:"username"`
	Password  string `toml:"password" yaml:"password"`
	DB        int    `toml:"db" yaml:"db"`
	KeyPrefix string `toml:"key-prefix" yaml:"key-prefix"`
	TTL       string `toml:"ttl" yaml:"ttl"`
}

type syslogConfig struct {
	Network  string `toml:"network" yaml:"network"`
	Address  string `toml:"address" yaml:"address"`
	Priority int    `toml:"priority" yaml:"priority"`
	Tag      string `toml:"tag" yaml:"tag"`
	Level    string `toml:"level" yaml:"level"`
}

const defaultValidatorCacheSize = 1 << 16

// defaultConfig returns the settings used when no config file is given.
func defaultConfig() config {
	return config{
		LogLevel:    "info",
		SourcesFile: "sources.txt",
		RulesDir:    "rules",
		Output:      "ad.json",
		HashCache:   "hash_cache.json",
	}
}

// loadConfig reads a config file and returns the decoded structure on top of the
// defaults. Files ending in .yaml or .yml are read as YAML, everything else as TOML.
func loadConfig(name string) (config, error) {
	c := defaultConfig()
	f, err := os.Open(name)
	if err != nil {
		return c, err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err = yaml.NewDecoder(f).Decode(&c); err == io.EOF {
			err = nil
		}
	default:
		_, err = toml.NewDecoder(f).Decode(&c)
	}
	if err != nil {
		return c, errors.Wrapf(err, "failed to parse %s", name)
	}
	return c, nil
}

func (c config) logLevel() (logrus.Level, error) {
	if c.LogLevel == "" {
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(c.LogLevel)
}

// friendlyNames merges the configured names over the built-in table.
func (c config) friendlyNames() adrules.FriendlyNames {
	names := make(adrules.FriendlyNames, len(defaultFriendlyNames)+len(c.FriendlyNames))
	for k, v := range defaultFriendlyNames {
		names[k] = v
	}
	for k, v := range c.FriendlyNames {
		names[k] = v
	}
	return names
}

func (c config) downloadTimeout() (time.Duration, error) {
	if c.Download.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Download.Timeout)
}

func (p policy) classificationPolicy() (adrules.ClassificationPolicy, error) {
	opt := adrules.DefaultPolicy()
	var err error
	if p.BlockDirective != "" {
		if opt.BlockDirective, err = adrules.ParseRuleKind(p.BlockDirective); err != nil {
			return opt, errors.Wrap(err, "block-directive")
		}
	}
	if p.PlainDomain != "" {
		if opt.PlainDomain, err = adrules.ParseRuleKind(p.PlainDomain); err != nil {
			return opt, errors.Wrap(err, "plain-domain")
		}
	}
	if p.Validation != "" {
		if opt.Validation, err = adrules.ParseValidationMode(p.Validation); err != nil {
			return opt, errors.Wrap(err, "validation")
		}
	}
	if p.Regex != nil {
		opt.Regex = *p.Regex
	}
	if p.SkipLocalHostnames != nil {
		opt.SkipLocalHostnames = *p.SkipLocalHostnames
	}
	return opt, opt.Validate()
}

// hashCache returns the configured source hash cache. Redis is used if configured,
// the JSON file otherwise.
func (c config) hashCache() (adrules.HashCache, error) {
	if c.Redis == nil {
		return adrules.NewFileHashCache(c.HashCache), nil
	}
	opt := adrules.RedisHashCacheOptions{
		RedisOptions: redis.Options{
			Addr:     c.Redis.Address,
			Username: c.Redis.Username,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		},
		KeyPrefix: c.Redis.KeyPrefix,
	}
	if opt.RedisOptions.Password == "" {
		opt.RedisOptions.Password = os.Getenv("ADRULES_REDIS_PASSWORD")
	}
	if c.Redis.TTL != "" {
		ttl, err := time.ParseDuration(c.Redis.TTL)
		if err != nil {
			return nil, errors.Wrap(err, "redis ttl")
		}
		opt.TTL = ttl
	}
	return adrules.NewRedisHashCache(opt), nil
}
