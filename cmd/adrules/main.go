package main

import (
	"context"
	"io"
	"os"

	"github.com/folbricht/adrules"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	cmd := &cobra.Command{
		Use:   "adrules [config]",
		Short: "Ad-blocking list to ruleset compiler",
		Long: `Ad-blocking list to ruleset compiler.

Downloads public ad-blocking lists (Adblock Plus filters,
hosts files, domain lists), classifies every line into an
exact domain, domain suffix or domain regex rule and writes
the deduplicated result as a version 3 JSON ruleset.

Without a config file, sources are read from sources.txt,
lists are stored in rules/ and the ruleset is written to
ad.json in the current directory. Failing sources are
logged and skipped.
`,
		Example: `  adrules
  adrules config.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return start(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func start(ctx context.Context, args []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		adrules.Log.WithError(err).Warn("failed to load .env")
	}

	cfg := defaultConfig()
	if len(args) > 0 {
		var err error
		if cfg, err = loadConfig(args[0]); err != nil {
			return err
		}
	}

	level, err := cfg.logLevel()
	if err != nil {
		return err
	}
	adrules.Log.SetLevel(level)
	if cfg.Syslog != nil {
		hook, err := newSyslogHook(cfg.Syslog)
		if err != nil {
			// Log any error but don't block if this fails
			adrules.Log.WithError(err).Error("failed to initialize syslog")
		} else {
			adrules.Log.AddHook(hook)
			defer hook.Close()
		}
	}
	return run(ctx, cfg)
}

// run performs the download, classification and serialization steps. Only
// configuration errors and failing to write the ruleset are returned, everything
// else is logged.
func run(ctx context.Context, cfg config) error {
	opt, err := cfg.Policy.classificationPolicy()
	if err != nil {
		return err
	}
	size := cfg.Policy.ValidatorCacheSize
	if size <= 0 {
		size = defaultValidatorCacheSize
	}
	validator, err := adrules.NewCachedValidator(opt.Validator(), size)
	if err != nil {
		return err
	}
	classifier, err := adrules.NewClassifier(opt, validator)
	if err != nil {
		return err
	}

	if !cfg.Download.Skip {
		if err := downloadSources(ctx, cfg); err != nil {
			return err
		}
	}

	loaders, err := adrules.DirLoaders(cfg.RulesDir)
	if err != nil {
		adrules.Log.WithError(err).Warn("no downloaded lists available")
	}
	if len(cfg.StaticRules) > 0 {
		loaders = append(loaders, adrules.NewStaticLoader("static-rules", cfg.StaticRules))
	}

	set := adrules.NewAggregator(classifier).Aggregate(loaders...)
	if cfg.Policy.PruneSubdomains {
		n := set.PruneSubdomains()
		adrules.Log.WithField("removed", n).Info("pruned rules covered by a suffix")
	}

	doc := adrules.Serialize(set)
	if err := adrules.WriteDocument(doc, cfg.Output); err != nil {
		return err
	}
	adrules.LogSummary(doc, cfg.Output)

	if cfg.MetricsFile != "" {
		if err := adrules.WriteMetrics(cfg.MetricsFile); err != nil {
			adrules.Log.WithError(err).Error("failed to write metrics")
		}
	}
	return nil
}

// downloadSources refreshes the local copies of all sources. Download problems are
// logged only, the lists already on disk are used instead.
func downloadSources(ctx context.Context, cfg config) error {
	urls := append([]string(nil), cfg.Sources...)
	if cfg.SourcesFile != "" {
		fromFile, err := adrules.LoadSourceList(cfg.SourcesFile)
		if err != nil {
			adrules.Log.WithError(err).WithField("file", cfg.SourcesFile).Warn("failed to load source list")
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		adrules.Log.Warn("no sources configured, skipping download")
		return nil
	}

	timeout, err := cfg.downloadTimeout()
	if err != nil {
		return err
	}
	cache, err := cfg.hashCache()
	if err != nil {
		return err
	}
	if c, ok := cache.(io.Closer); ok {
		defer c.Close()
	}
	d := adrules.NewDownloader(adrules.DownloaderOptions{
		Dir:     cfg.RulesDir,
		Names:   cfg.friendlyNames(),
		Workers: cfg.Download.Workers,
		Timeout: timeout,
		Headers: cfg.Download.Headers,
		Cache:   cache,
	})
	if _, err := d.Run(ctx, urls); err != nil {
		adrules.Log.WithError(err).Error("download step incomplete")
	}
	return nil
}

func newSyslogHook(c *syslogConfig) (*adrules.SyslogHook, error) {
	opt := adrules.SyslogOptions{
		Network:  c.Network,
		Address:  c.Address,
		Priority: c.Priority,
		Tag:      c.Tag,
	}
	if c.Level != "" {
		level, err := logrus.ParseLevel(c.Level)
		if err != nil {
			return nil, err
		}
		opt.Level = level
	}
	if opt.Tag == "" {
		opt.Tag = "adrules"
	}
	return adrules.NewSyslogHook(opt)
}
