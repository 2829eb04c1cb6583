package main

import (
	"fmt"

	"imagehelper/internal/config"
	"imagehelper/internal/errors"
	"imagehelper/internal/gui"
	"imagehelper/internal/log"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
	cfg     *config.Config
)

// NewRootCmd creates the root command. Without a subcommand it opens the
// image viewer.
func NewRootCmd() *cobra.Command {
	var folder string

	rootCmd := &cobra.Command{
		Use:   "imagehelper",
		Short: "Browse the images in a folder and capture the screen into it",
		Long: `Image Helper shows thumbnails of the images in a folder, opens them in
borderless viewer windows and saves screen captures next to them.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfgFile != "" {
				cfg, err = config.LoadConfigFile(cfgFile)
			} else {
				cfg, err = config.LoadConfig()
			}
			if err != nil {
				if cfgFile != "" {
					return err
				}
				log.Warnf("config not loaded: %v", err)
				if errors.IsInvalidConfig(err) {
					fmt.Println(warningText("The config file has invalid values; fix or remove it."))
				}
				fmt.Println(statusText("Using default settings."))
				cfg = config.New()
			}
			setupLogging(cfg, debug || cfg.Logging.Debug)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []gui.Option
			if folder != "" {
				opts = append(opts, gui.WithFolder(folder))
			}
			log.Info("imagehelper %s starting", version)
			app, err := gui.NewApp(cfg, opts...)
			if err != nil {
				return fmt.Errorf("error starting viewer: %w", err)
			}
			app.Run()
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/imagehelper/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVarP(&folder, "folder", "f", "", "folder to open instead of the last one")

	rootCmd.AddCommand(NewScanCmd())
	rootCmd.AddCommand(NewCaptureCmd())

	return rootCmd
}

func setupLogging(cfg *config.Config, debug bool) {
	var opts []log.Option
	if cfg.Logging.File != "" {
		opts = append(opts, log.WithFile(cfg.Logging.File))
	}
	if cfg.Logging.JSON {
		opts = append(opts, log.WithJSON())
	}
	log.Configure(opts...)
	log.SetDebug(debug)
}
