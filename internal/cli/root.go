/*
 * root.go, part of gospx.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package cli implements the gospx command line tool.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

//Settings are the global settings, taken from the flags, the
//environment (GOSPX_*) and the configuration file, in that order.
type Settings struct {
	PotentialDir  string `mapstructure:"potential-dir"`
	PotentialType string `mapstructure:"potential-type"`
	Generator     string `mapstructure:"generator"`
	Threads       int    `mapstructure:"threads"`
	LogLevel      string `mapstructure:"log-level"`
}

//RootOptions holds what all the commands share.
type RootOptions struct {
	ConfigFile string
	v          *viper.Viper
	settings   Settings
}

//Settings returns the global settings, once the command line was parsed.
func (o *RootOptions) Settings() Settings {
	return o.settings
}

//NewRootCommand creates the gospx command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{v: viper.New()}
	cmd := &cobra.Command{
		Use:           "gospx",
		Short:         "Write SPHInX inputs and collect their results",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.load(); err != nil {
				return err
			}
			return setupLogging(opts.settings.LogLevel, cmd.ErrOrStderr())
		},
	}
	f := cmd.PersistentFlags()
	f.StringVar(&opts.ConfigFile, "config", "", "configuration file (default gospx.yaml in . or $HOME/.config/gospx)")
	f.String("log-level", "info", "log level (debug, info, warn, error)")
	f.String("potential-dir", "", "directory with the pseudopotentials to copy into the jobs")
	f.String("potential-type", "", "pseudopotential type, VASP or AtomPAW")
	f.String("generator", "", "name of the program, written in the inputs")
	f.Int("threads", 0, "threads for SPHInX, overrides the job file")
	for _, name := range []string{"log-level", "potential-dir", "potential-type", "generator", "threads"} {
		if err := opts.v.BindPFlag(name, f.Lookup(name)); err != nil {
			panic(err)
		}
	}

	cmd.AddCommand(NewWriteCommand(opts))
	cmd.AddCommand(NewCollectCommand(opts))
	cmd.AddCommand(NewPlotCommand(opts))
	return cmd
}

func (o *RootOptions) load() error {
	v := o.v
	v.SetEnvPrefix("GOSPX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if o.ConfigFile != "" {
		v.SetConfigFile(o.ConfigFile)
	} else {
		v.SetConfigName("gospx")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/gospx")
		}
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || o.ConfigFile != "" {
			return fmt.Errorf("reading configuration: %w", err)
		}
	}
	if err := v.Unmarshal(&o.settings); err != nil {
		return fmt.Errorf("reading configuration: %w", err)
	}
	return nil
}

func setupLogging(level string, w io.Writer) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("bad log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"})
	return nil
}
