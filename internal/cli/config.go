package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"diff2md/internal/config"
)

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig(opts)
			if err != nil {
				return err
			}
			payload := map[string]any{
				"path":   path,
				"config": cfg,
			}
			data, err := json.MarshalIndent(payload, "", "  ")
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}
}

func loadConfig(opts *options) (config.AppConfig, string, error) {
	if opts.configPath != "" {
		cfg, err := config.LoadFromPath(opts.configPath)
		return cfg, opts.configPath, err
	}
	return config.Load()
}
