package main

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamaker/teabot/config"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func clearCredentials(t *testing.T) func() {
	saved := make(map[string]string)
	for _, env := range []string{config.TokenEnv, config.SlackTokenEnv, config.ClientIDEnv, config.ClientSecretEnv, config.PortEnv} {
		if val, ok := os.LookupEnv(env); ok {
			saved[env] = val
		}
		require.NoError(t, os.Unsetenv(env))
	}

	return func() {
		for env, val := range saved {
			os.Setenv(env, val)
		}
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "teabotConfig")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	configFile := filepath.Join(dir, "teabot.yaml")
	require.NoError(t, ioutil.WriteFile(configFile, []byte("debug: true\nplugins:\n  teaRota:\n    roster: [\"@ruth\", \"@lewis\"]\n"), 0600))

	v, err := loadConfig(configFile)
	require.NoError(t, err)

	assert.True(t, v.GetBool(config.DebugKey))
	assert.Equal(t, []string{"@ruth", "@lewis"}, v.GetStringSlice("plugins.teaRota.roster"))
	assert.Equal(t, 5000, v.GetInt(config.ResponseCacheSizeKey))
}

func TestLoadConfigWithMissingFile(t *testing.T) {
	_, err := loadConfig("/does/not/exist.yaml")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "Error loading configuration file [/does/not/exist.yaml]")
	}
}

func TestLoadConfigBindsEnvironment(t *testing.T) {
	defer clearCredentials(t)()
	os.Setenv(config.SlackTokenEnv, "xoxb-tea")

	v, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "xoxb-tea", v.GetString(config.SlackTokenEnv))
}

func TestNewBotWithoutCredentials(t *testing.T) {
	defer clearCredentials(t)()

	v, err := loadConfig("")
	require.NoError(t, err)

	_, err = newBot(v)
	assert.Equal(t, config.ErrMissingCredentials, err)
}

func TestNewBotRefusesAppMode(t *testing.T) {
	defer clearCredentials(t)()
	os.Setenv(config.ClientIDEnv, "id")
	os.Setenv(config.ClientSecretEnv, "secret")
	os.Setenv(config.PortEnv, "3000")

	v, err := loadConfig("")
	require.NoError(t, err)

	_, err = newBot(v)
	assert.Equal(t, config.ErrAppModeUnsupported, err)
}

func TestNewBotWithToken(t *testing.T) {
	defer clearCredentials(t)()
	os.Setenv(config.TokenEnv, "xoxb-tea")

	dir, err := ioutil.TempDir("", "teabotStorage")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	v, err := loadConfig("")
	require.NoError(t, err)
	v.Set(config.StoragePathKey, dir)

	bot, err := newBot(v)
	require.NoError(t, err)
	assert.NotNil(t, bot)
	assert.Equal(t, "xoxb-tea", v.GetString(config.TokenKey))

	assert.NoError(t, bot.Close())
}

func TestOpenTallyStorerInLevelDB(t *testing.T) {
	dir, err := ioutil.TempDir("", "teabotStorage")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	v := config.NewViperWithDefaults()
	v.Set(config.StoragePathKey, dir)

	storer, err := openTallyStorer(v, config.Connection{Mode: config.ModeCustomIntegration, Token: "xoxb-1", TokenSource: config.TokenEnv})
	require.NoError(t, err)
	defer storer.Close()

	require.NoError(t, storer.PutString("@juma", "2"))
	val, err := storer.GetString("@juma")
	require.NoError(t, err)
	assert.Equal(t, "2", val)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "teabot version 1.0.0\n", out.String())
}
