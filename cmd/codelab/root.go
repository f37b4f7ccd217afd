package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	codelab "github.com/goliatone/go-codelab"
)

const envPrefix = "CODELAB"

// cliState carries the resolved configuration and module between the root
// command's PersistentPreRunE and the subcommand handlers.
type cliState struct {
	cfgFile string
	cfg     codelab.Config
	module  *codelab.Module
}

func newRootCommand() *cobra.Command {
	state := &cliState{}

	root := &cobra.Command{
		Use:   "codelab",
		Short: "Build and preview Markdown tutorial sites",
		Long: `codelab turns a directory of Markdown tutorials with step markers into
a static site: it lints the corpus, expands steps into navigable sections,
and renders category and tag listings with a themed layout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The version command must work outside a project directory.
			if cmd.Name() == "version" {
				return nil
			}
			cfg, err := loadConfig(state.cfgFile)
			if err != nil {
				return err
			}
			module, err := codelab.New(cfg)
			if err != nil {
				return err
			}
			state.cfg = module.Config()
			state.module = module
			return nil
		},
	}

	root.PersistentFlags().StringVar(&state.cfgFile, "config", "", "config file (default is ./codelab.yaml)")

	root.AddCommand(
		newBuildCommand(state),
		newLintCommand(state),
		newCleanCommand(state),
		newServeCommand(state),
		newVersionCommand(),
	)
	return root
}

// loadConfig resolves configuration from, in increasing precedence: built-in
// defaults, an optional codelab.yaml, and CODELAB_* environment variables.
func loadConfig(cfgFile string) (codelab.Config, error) {
	v := viper.New()

	defaults := codelab.DefaultConfig()
	v.SetDefault("site.baseurl", defaults.Site.BaseURL)
	v.SetDefault("site.title", defaults.Site.Title)
	v.SetDefault("site.description", defaults.Site.Description)
	v.SetDefault("content.dir", defaults.Content.Dir)
	v.SetDefault("content.pattern", defaults.Content.Pattern)
	v.SetDefault("content.includedrafts", defaults.Content.IncludeDrafts)
	v.SetDefault("assets.dir", defaults.Assets.Dir)
	v.SetDefault("build.outputdir", defaults.Build.OutputDir)
	v.SetDefault("build.workers", defaults.Build.Workers)
	v.SetDefault("build.incremental", true)
	v.SetDefault("build.generatesitemap", true)
	v.SetDefault("build.generaterobots", true)
	v.SetDefault("build.generatefeeds", true)
	v.SetDefault("theme.dir", "themes/default")
	v.SetDefault("theme.name", defaults.Theme.Name)
	v.SetDefault("theme.variant", defaults.Theme.Variant)
	v.SetDefault("lint.maxtitlelength", defaults.Lint.MaxTitleLength)
	v.SetDefault("preview.host", defaults.Preview.Host)
	v.SetDefault("preview.port", defaults.Preview.Port)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("features.generator", defaults.Features.Generator)
	v.SetDefault("features.themes", defaults.Features.Themes)
	v.SetDefault("features.preview", defaults.Features.Preview)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("codelab")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return codelab.Config{}, fmt.Errorf("read config: %w", err)
		}
		if cfgFile != "" {
			return codelab.Config{}, fmt.Errorf("config file %s not found: %w", cfgFile, err)
		}
	}

	cfg := codelab.DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return codelab.Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
