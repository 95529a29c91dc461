package main

import (
	"fmt"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/teamaker/teabot"
	"github.com/teamaker/teabot/config"
	"github.com/teamaker/teabot/plugins"
	"github.com/teamaker/teabot/store"
	"github.com/teamaker/teabot/store/datastoredb"
	"github.com/teamaker/teabot/store/inmemorydb"
	"google.golang.org/api/option"
	"log"
	"os"
)

func newRunCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Connect to slack and serve tea",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			v, err := loadConfig(configFile)
			if err != nil {
				return err
			}

			bot, err := newBot(v)
			if err != nil {
				return err
			}
			defer bot.Close()

			return bot.Run()
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "Path to a configuration file (yaml, json or toml)")

	return cmd
}

// loadConfig layers the optional config file over the defaults and binds the startup environment
func loadConfig(configFile string) (v *viper.Viper, err error) {
	v = config.NewViperWithDefaults()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err = v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("Error loading configuration file [%s]: %w", configFile, err)
		}
	}

	if err = config.BindEnvironment(v); err != nil {
		return nil, err
	}

	return v, nil
}

// newBot resolves the connection mode and storage and assembles teabot with all its plugins
func newBot(v *viper.Viper) (bot *teabot.Teabot, err error) {
	conn, err := config.ResolveMode(v)
	if err != nil {
		return nil, err
	}

	if conn.Mode == config.ModeApp {
		return nil, config.ErrAppModeUnsupported
	}

	v.Set(config.TokenKey, conn.Token)

	storer, err := openTallyStorer(v, conn)
	if err != nil {
		return nil, err
	}

	tally := plugins.NewTeaTally(storer)

	bot, err = teabot.NewBot(name, v, teabot.OptionLog(log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile))).
		WithCloser(storer).
		WithPlugin(plugins.NewGreeter()).
		WithOptionallyConfigurablePluginErr(plugins.TeaRotaPluginName, func(c *config.PluginConfig) (*teabot.Plugin, error) {
			return plugins.NewTeaRota(c, plugins.OptionMakerRecorder(tally))
		}).
		WithPlugin(&tally.Plugin).
		WithPlugin(plugins.NewVersioner(name, teabot.VERSION)).
		Build()
	if err != nil {
		storer.Close()
		return nil, err
	}

	return bot, nil
}

// openTallyStorer returns the google cloud datastore storer when a project is configured and a
// leveldb one otherwise. Both are fronted by an in-memory copy
func openTallyStorer(v *viper.Viper, conn config.Connection) (storer store.StringStorer, err error) {
	var persistent store.StringStorer

	if projectID := v.GetString(config.DatastoreProjectIDKey); projectID != "" {
		opts := make([]option.ClientOption, 0)
		if credentialsFile := v.GetString(config.DatastoreCredentialsFileKey); credentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(credentialsFile))
		}

		persistent, err = datastoredb.New(plugins.TeaTallyPluginName, projectID, opts...)
	} else {
		storagePath := v.GetString(config.StoragePathKey)
		if storagePath == "" {
			storagePath = config.DefaultStoragePath(conn)
		}

		persistent, err = store.NewLevelDB(plugins.TeaTallyPluginName, storagePath)
	}
	if err != nil {
		return nil, fmt.Errorf("Error opening tea tally storage: %w", err)
	}

	storer, err = inmemorydb.New(persistent)
	if err != nil {
		persistent.Close()
		return nil, err
	}

	return storer, nil
}
