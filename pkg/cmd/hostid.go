/*
Copyright 2020 David Arnold
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at
    http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gitlab.com/davidxarnold/hostid/pkg/cloud"
	"gitlab.com/davidxarnold/hostid/pkg/core"
	"gitlab.com/davidxarnold/hostid/pkg/util"
	v "gitlab.com/davidxarnold/hostid/version"
)

var cfgFile string

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			log.Fatalln(err)
		}

		// Search config in home directory with name ".hostid" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".hostid")
	}

	viper.SetEnvPrefix("hostid")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Debugln("Using config file:", viper.ConfigFileUsed())
	}
}

// NewHostIDCmd provides a cobra command
func NewHostIDCmd() *cobra.Command {
	var (
		output       string
		logLevel     string
		tagLookup    string
		timeout      time.Duration
		strictGroups bool
	)

	cmd := &cobra.Command{
		Use:           "hostid",
		Short:         "Show which cloud this host runs in and who it is there.",
		Long:          "hostid detects the cloud provider of the current host and resolves its instance id, private IP, instance type, region and scaling group.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return util.SetupLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := core.Collect(cmd.Context(), cloud.Default())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), snap)
		},
	}

	cmd.Version = v.Version

	cmd.PersistentFlags().StringVar(
		&cfgFile, "config", "",
		"config file (default is $HOME/.hostid.yaml)")
	cmd.PersistentFlags().StringVarP(
		&output, "output", "o", "txt",
		"-o, --output='': Output format. One of: txt|pretty|json")
	cmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "warning",
		"Log level. One of: trace|debug|info|warning|error")
	cmd.PersistentFlags().DurationVar(
		&timeout, "timeout", 200*time.Millisecond,
		"Maximum time to wait for each metadata request")
	cmd.PersistentFlags().StringVar(
		&tagLookup, "tag-lookup", cloud.TagLookupCLI,
		"How the AWS scaling group tag is read. One of: cli|sdk")
	cmd.PersistentFlags().BoolVar(
		&strictGroups, "strict-scaling-group", false,
		"Exit with an error when the AWS scaling group cannot be determined")

	cmd.AddCommand(newGetCmd(), newDetectCmd())

	cobra.OnInitialize(initConfig)

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	_ = viper.BindPFlag("output", cmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("log-level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(cloud.KeyMetadataTimeout, cmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag(cloud.KeyTagLookup, cmd.PersistentFlags().Lookup("tag-lookup"))
	_ = viper.BindPFlag(cloud.KeyStrictScalingGroup, cmd.PersistentFlags().Lookup("strict-scaling-group"))

	return cmd
}

func newGetCmd() *cobra.Command {
	valid := make([]string, 0, len(cloud.Facts))
	for _, f := range cloud.Facts {
		valid = append(valid, string(f))
	}

	return &cobra.Command{
		Use:       "get <fact>",
		Short:     "Print a single fact: " + strings.Join(valid, "|"),
		Args:      cobra.ExactArgs(1),
		ValidArgs: valid,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := cloud.ParseFact(args[0])
			if err != nil {
				return err
			}
			val, err := cloud.Default().Fact(cmd.Context(), f)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), val)
			return err
		},
	}
}

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Print the detected cloud provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ident := cloud.Default()
			return renderDetection(cmd.OutOrStdout(), ident.Kind(), ident.IsContainerized())
		},
	}
}
