package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kerbaras/mangaverse/pkg/app"
	"github.com/kerbaras/mangaverse/pkg/app/screens"
	"github.com/kerbaras/mangaverse/pkg/config"
	"github.com/kerbaras/mangaverse/pkg/logger"
	"github.com/kerbaras/mangaverse/pkg/reader"
	"github.com/kerbaras/mangaverse/pkg/services"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "mangaverse",
	Short: "Read manga in your terminal",
	Long: `MangaVerse is a terminal manga reader with paged and infinite scroll
modes, bookmarks and a local profile.

Run without arguments to open the reader UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context(), nil)
	},
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mangaverse/config.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().String("storage-driver", "", "storage driver: 'duckdb', 'sqlite' or 'memory'")
	rootCmd.PersistentFlags().String("storage-path", "", "database file")
	rootCmd.PersistentFlags().String("source", "", "manga source: 'static' or 'mangadex'")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	viper.BindPFlag("storage.driver", rootCmd.PersistentFlags().Lookup("storage-driver"))
	viper.BindPFlag("storage.path", rootCmd.PersistentFlags().Lookup("storage-path"))
	viper.BindPFlag("source", rootCmd.PersistentFlags().Lookup("source"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.HomeDir())
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("MANGAVERSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setup loads the configuration and opens the controller. CLI commands log to
// stderr.
func setup(ctx context.Context) (*config.Config, *services.MangaController, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}
	log := logger.NewLoggerWithLevel(cfg.Log.Level)
	controller, err := openController(ctx, cfg, log)
	return cfg, controller, err
}

func openController(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*services.MangaController, error) {
	controller, err := services.NewMangaController(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if err := controller.Load(ctx); err != nil {
		controller.Close()
		return nil, err
	}
	return controller, nil
}

// resolveIntent picks the chapter the TUI should open on. A nil intent starts
// on the library.
type resolveIntent func(ctx context.Context, cfg *config.Config, controller *services.MangaController) (*reader.Intent, error)

// runTUI starts the terminal UI, optionally straight into a chapter.
func runTUI(ctx context.Context, resolve resolveIntent) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	log, closer, err := logger.NewFileLogger(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeQuietly(closer)

	controller, err := openController(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer controller.Close()

	a := app.NewApp(controller, screens.Options{
		Threshold:    cfg.Reader.Threshold,
		FetchTimeout: cfg.Reader.FetchTimeout,
	})
	if resolve != nil {
		in, err := resolve(ctx, cfg, controller)
		if err != nil {
			return err
		}
		if in != nil {
			a.OpenAt(*in)
		}
	}

	log.Info().Str("source", cfg.Source).Str("storage", cfg.Storage.Driver).Msg("Starting TUI")
	return errors.Wrap(a.Run(ctx), "tui exited")
}

func closeQuietly(c io.Closer) {
	if c != nil {
		c.Close()
	}
}

func truncateString(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
