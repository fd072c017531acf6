package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tolkfmt/internal/config"
	"tolkfmt/internal/driver"
	"tolkfmt/internal/observ"
)

const cacheApp = "tolkfmt"

// loadConfig reads --config or discovers the file nearest to the first path.
func loadConfig(cmd *cobra.Command, paths []string) (*config.Config, error) {
	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if explicit != "" {
		return config.Load(explicit)
	}
	start := "."
	if len(paths) > 0 {
		start = paths[0]
	}
	return config.Discover(start)
}

// driverOptions merges the config file with flags; flags win when set.
func driverOptions(cmd *cobra.Command, paths []string) (driver.Options, error) {
	cfg, err := loadConfig(cmd, paths)
	if err != nil {
		return driver.Options{}, err
	}
	flags := cmd.Flags()

	maxWidth, err := flags.GetInt("max-width")
	if err != nil {
		return driver.Options{}, err
	}
	if !flags.Changed("max-width") {
		maxWidth = cfg.MaxWidthOr(0)
	} else if maxWidth <= 0 {
		return driver.Options{}, fmt.Errorf("--max-width must be positive, got %d", maxWidth)
	}

	sortImports, err := flags.GetBool("sort-imports")
	if err != nil {
		return driver.Options{}, err
	}
	if !flags.Changed("sort-imports") {
		sortImports = cfg.SortImportsOr(false)
	}

	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return driver.Options{}, err
	}
	if !flags.Changed("jobs") {
		jobs = cfg.JobsOr(0)
	}

	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return driver.Options{}, err
	}
	useCache := cfg.CacheOr(true)
	if flags.Changed("no-cache") {
		useCache = !noCache
	}

	verify, err := flags.GetBool("verify")
	if err != nil {
		return driver.Options{}, err
	}

	opts := driver.Options{Jobs: jobs, Config: cfg, Verify: verify}
	opts.Format.MaxWidth = maxWidth
	opts.Format.SortImports = sortImports

	if useCache {
		cache, err := driver.OpenDiskCache(cacheApp)
		if err != nil {
			// без кэша форматирование всё равно работает
			if verbose, _ := flags.GetBool("verbose"); verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "cache disabled: %v\n", err)
			}
		} else {
			opts.Cache = cache
		}
	}

	timings, err := flags.GetBool("timings")
	if err != nil {
		return driver.Options{}, err
	}
	if timings {
		opts.Format.Timer = observ.NewTimer()
	}
	return opts, nil
}
