// Package cli assembles the oclpatcher command tree.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	oclp "github.com/jbinder6342/OpenCore-Legacy-Patcher"
	"github.com/jbinder6342/OpenCore-Legacy-Patcher/internal/logging"
	"github.com/jbinder6342/OpenCore-Legacy-Patcher/internal/version"
)

var (
	cfgFile string
	logger  = zap.NewNop()
)

// RootCmd builds the base command.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "oclpatcher",
		Short:   "Builds firmware-compatibility patches for legacy Macs",
		Version: version.String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			var logCfg logging.Config
			if err := viper.UnmarshalKey("logging", &logCfg); err != nil {
				return fmt.Errorf("failed to unmarshal logging config: %w", err)
			}
			logger = logging.New(logCfg)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./oclpatcher.yaml)")
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(BuildCmd())
	root.AddCommand(ProbeCmd())
	root.AddCommand(SimulateProbeCmd())
	return root
}

// initConfig reads in the config file and OCLP_* environment variables.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("oclpatcher")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("OCLP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; defaults and env vars apply.
	}
	return nil
}

// loadOptions merges the config file over the compiled-in defaults.
func loadOptions() oclp.Options {
	opts := oclp.DefaultOptions()
	if v := viper.GetString("model"); v != "" {
		opts.Model = v
	}
	if viper.IsSet("customModel") {
		opts.CustomModel = viper.GetBool("customModel")
	}
	if v := viper.GetString("probe.rpcUrl"); v != "" {
		opts.ProbeRPCURL = v
	}
	if v := viper.GetString("probe.reportUrl"); v != "" {
		opts.ProbeReportURL = v
	}
	if v := viper.GetString("profiles.tablePath"); v != "" {
		opts.ProfileTablePath = v
	}
	if v := viper.GetString("profiles.serverUrl"); v != "" {
		opts.ProfileServerURL = v
	}
	return opts
}
