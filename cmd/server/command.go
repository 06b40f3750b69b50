package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gimm/internal/platform/config"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var boundFlags = []string{
	"gedcom-input-file",
	"email",
	"addr",
	"log-level",
	"log-format",
	"watch",
	"watch-debounce",
	"search-rate-limit",
	"search-rate-window",
	"search-max-results",
	"redis-url",
	"search-cache-ttl",
	"shutdown-timeout",
}

func newRootCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gimm",
		Short:         "Serve a GEDCOM family tree as browsable web pages",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, v)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.String("config", "", "YAML config file")
	f.StringP("gedcom-input-file", "g", "", "GEDCOM file to serve (required)")
	f.StringP("email", "e", "", "contact email shown in page footers")
	f.String("addr", ":8080", "listen address")
	f.String("log-level", "info", "log level: debug, info, warn, error")
	f.String("log-format", "text", "log format: text or json")
	f.Bool("watch", false, "reload the tree when the GEDCOM file changes")
	f.Duration("watch-debounce", 500*time.Millisecond, "quiet period before a reload")
	f.Int("search-rate-limit", 60, "searches per client per window, 0 disables")
	f.Duration("search-rate-window", time.Minute, "search rate limit window")
	f.Int("search-max-results", 500, "maximum search matches returned")
	f.String("redis-url", "", "Redis URL for the search cache")
	f.Duration("search-cache-ttl", 10*time.Minute, "search cache entry lifetime")
	f.Duration("shutdown-timeout", 10*time.Second, "graceful shutdown timeout")

	return cmd
}

// initConfig binds flags to their snake_case keys and reads the optional
// config file. Env vars use the GIMM_ prefix.
func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	for _, name := range boundFlags {
		if err := v.BindPFlag(strings.ReplaceAll(name, "-", "_"), cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}

	v.SetEnvPrefix("GIMM")
	v.AutomaticEnv()

	if file, _ := cmd.Flags().GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}
	return nil
}
