// Copyright © 2018 NAME HERE <EMAIL ADDRESS>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"os"
	"path/filepath"
	"time"

	"boardkeeper/pkg"

	"github.com/fatih/color"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"
)

var colorError = color.New(color.FgRed)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "boardkeeper",
	Short:         "Bookkeeping for GitHub project boards.",
	SilenceErrors: true,
	Long: `Boardkeeper automates the bookkeeping around classic GitHub project
boards: listing issues by workflow state, finding unaccounted issues,
and keeping pull requests tagged with the right projects.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {

		viper.RegisterAlias("debug", "verbose")
		viper.BindPFlags(cmd.Flags())
		viper.BindPFlags(cmd.PersistentFlags())

		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})

		if logDir := viper.GetString(ArgGlobalLogDir); logDir != "" {
			addLogfileHook(cmd.Name(), logDir)
		}

		pkg.Log = logrus.NewEntry(logrus.StandardLogger())

		if viper.GetBool(ArgGlobalVerbose) {
			logrus.SetLevel(logrus.DebugLevel)
			pkg.Log.Debug("Logging at debug level.")
		} else {
			logrus.SetLevel(logrus.InfoLevel)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// Any error from a command becomes a non-zero process exit here; nothing
// below cmd terminates the process itself.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		colorError.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const (
	ArgGlobalVerbose    = "verbose"
	ArgGlobalConfigFile = "config-file"
	ArgGlobalLogDir     = "log-dir"
)

func init() {
	rootCmd.PersistentFlags().String(ArgGlobalConfigFile, "$HOME/.boardkeeper/boardkeeper.yaml", "Config file for boardkeeper. You can also set BOARDKEEPER_CONFIG.")
	rootCmd.PersistentFlags().Bool(ArgGlobalVerbose, false, "Enable verbose logging.")
	rootCmd.PersistentFlags().String(ArgGlobalLogDir, "log", "Directory for per-command logfiles. Empty disables the logfile mirror.")

	viper.RegisterAlias("debug", "verbose")
	viper.BindPFlags(rootCmd.PersistentFlags())

	viper.AutomaticEnv()
	viper.BindEnv(ArgGlobalConfigFile, "BOARDKEEPER_CONFIG")
}

// addLogfileHook mirrors all log output into a rotated per-command logfile.
func addLogfileHook(commandName, dir string) {
	writer := &lumberjack.Logger{
		Filename:   filepath.Join(dir, commandName+".log"),
		MaxSize:    1,
		MaxBackups: 2,
	}

	logrus.AddHook(lfshook.NewHook(
		lfshook.WriterMap{
			logrus.DebugLevel: writer,
			logrus.InfoLevel:  writer,
			logrus.WarnLevel:  writer,
			logrus.ErrorLevel: writer,
			logrus.FatalLevel: writer,
			logrus.PanicLevel: writer,
		},
		&prefixed.TextFormatter{
			TimestampFormat:  time.RFC3339Nano,
			FullTimestamp:    true,
			DisableUppercase: true,
			ForceFormatting:  true,
		},
	))
}
