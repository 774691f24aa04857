// File: cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xkilldash9x/graphgen/internal/config"
	"github.com/xkilldash9x/graphgen/internal/generator"
	"github.com/xkilldash9x/graphgen/internal/observability"
	"github.com/xkilldash9x/graphgen/internal/random"
	"go.uber.org/zap"
)

// Version is stamped at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

// NewRootCmd builds the command tree. The root command itself generates a dataset.
func NewRootCmd(factory ComponentFactory) *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "graphgen --scale N",
		Short: "Generate a synthetic remote-work graph dataset.",
		Long: `graphgen writes a random graph of people, companies, cities, workspaces,
amenities and providers as six node tables and six edge tables in CSV form.
Every table size derives from --scale, the number of people.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initializeConfig(v, cfgFile); err != nil {
				return err
			}

			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			observability.InitializeLogger(cfg.Logger)
			observability.GetLogger().Debug("Starting graphgen", zap.String("version", Version))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, factory)
		},
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Usage()
		return fmt.Errorf("%w: %v", generator.ErrInvalidArgument, err)
	})

	pflags := rootCmd.PersistentFlags()
	pflags.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")

	flags := rootCmd.Flags()
	flags.Int("scale", 0, "approximate total number of people/nodes (e.g. 1000, 10000, 100000)")
	flags.String("out", ".", "directory the CSV files are written to")
	flags.Int64("seed", 0, "random seed for a reproducible dataset (0 picks one at random)")
	flags.Bool("manifest", false, "also write a graphgen.yaml manifest describing the files")
	flags.String("postgres-url", "", "also load the dataset into the nodes/edges tables of this Postgres database")
	flags.String("memgraph-uri", "", "also load the dataset into Memgraph at this Bolt URI")

	for key, flag := range map[string]string{
		"generator.scale": "scale",
		"generator.seed":  "seed",
		"output.dir":      "out",
		"output.manifest": "manifest",
		"postgres.url":    "postgres-url",
		"memgraph.uri":    "memgraph-uri",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the CLI with the production component factory.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd(NewComponentFactory())
	defer observability.Sync()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// A canceled run is an expected shutdown, not a failure worth logging.
		if ctx.Err() == nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			observability.GetLogger().Debug("Command execution failed", zap.Error(err))
		}
		return err
	}
	return nil
}

// runGenerate generates one dataset and hands it to every configured sink.
func runGenerate(cmd *cobra.Command, factory ComponentFactory) error {
	ctx := cmd.Context()
	cfg := config.Get()
	if err := cfg.Validate(); err != nil {
		_ = cmd.Usage()
		return fmt.Errorf("%w: %w", generator.ErrInvalidArgument, err)
	}
	logger := observability.GetLogger()

	// Sinks record the seed actually used, which differs from the configured one when that is 0.
	src := random.New(cfg.Generator.Seed)
	run := *cfg
	run.Generator.Seed = src.Seed()
	logger.Debug("Random source ready", zap.Int64("seed", src.Seed()))

	components, err := factory.Create(ctx, &run, logger)
	if err != nil {
		return err
	}
	defer components.Shutdown(context.WithoutCancel(ctx))

	ds, err := generator.New(src, logger).Generate(run.Generator.Scale)
	if err != nil {
		return err
	}

	for _, sink := range components.Sinks {
		if err := sink.Write(ctx, ds); err != nil {
			return fmt.Errorf("%s sink failed: %w", sink.Name(), err)
		}
		logger.Debug("Sink finished", zap.String("sink", sink.Name()))
	}
	return nil
}

// initializeConfig reads in config file and ENV variables if set.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("GRAPHGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine; a broken or explicitly named one is not.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}
