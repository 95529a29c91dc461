package config_test

import (
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamaker/teabot/config"
	"os"
	"testing"
)

func TestResolveMode(t *testing.T) {
	tests := map[string]struct {
		env          map[string]string
		expected     config.Connection
		expectedPath string
		expectedErr  error
	}{
		"TokenOnly": {
			env:          map[string]string{config.TokenEnv: "xoxb-1"},
			expected:     config.Connection{Mode: config.ModeCustomIntegration, Token: "xoxb-1", TokenSource: config.TokenEnv},
			expectedPath: "./db_slack_bot_ci/",
		},
		"SlackTokenOnly": {
			env:          map[string]string{config.SlackTokenEnv: "xoxb-2"},
			expected:     config.Connection{Mode: config.ModeCustomIntegration, Token: "xoxb-2", TokenSource: config.SlackTokenEnv},
			expectedPath: "./db_slack_bot_a/",
		},
		"TokenWinsOverSlackToken": {
			env:          map[string]string{config.TokenEnv: "xoxb-1", config.SlackTokenEnv: "xoxb-2"},
			expected:     config.Connection{Mode: config.ModeCustomIntegration, Token: "xoxb-1", TokenSource: config.TokenEnv},
			expectedPath: "./db_slack_bot_ci/",
		},
		"TokenWinsOverApp": {
			env:          map[string]string{config.SlackTokenEnv: "xoxb-2", config.ClientIDEnv: "id", config.ClientSecretEnv: "secret", config.PortEnv: "3000"},
			expected:     config.Connection{Mode: config.ModeCustomIntegration, Token: "xoxb-2", TokenSource: config.SlackTokenEnv},
			expectedPath: "./db_slack_bot_a/",
		},
		"App": {
			env:          map[string]string{config.ClientIDEnv: "id", config.ClientSecretEnv: "secret", config.PortEnv: "3000"},
			expected:     config.Connection{Mode: config.ModeApp, ClientID: "id", ClientSecret: "secret", Port: "3000"},
			expectedPath: "./db_slack_bot_a/",
		},
		"IncompleteApp": {
			env:         map[string]string{config.ClientIDEnv: "id", config.PortEnv: "3000"},
			expectedErr: config.ErrMissingCredentials,
		},
		"Nothing": {
			env:         map[string]string{},
			expectedErr: config.ErrMissingCredentials,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			for k, val := range tc.env {
				v.Set(k, val)
			}

			c, err := config.ResolveMode(v)
			if tc.expectedErr != nil {
				assert.Equal(t, tc.expectedErr, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, c)
			assert.Equal(t, tc.expectedPath, config.DefaultStoragePath(c))
		})
	}
}

func TestResolveModeFromEnvironment(t *testing.T) {
	os.Unsetenv(config.TokenEnv)
	os.Setenv(config.SlackTokenEnv, "xoxb-env")
	defer os.Unsetenv(config.SlackTokenEnv)

	v := viper.New()
	require.NoError(t, config.BindEnvironment(v))

	c, err := config.ResolveMode(v)
	require.NoError(t, err)
	assert.Equal(t, config.ModeCustomIntegration, c.Mode)
	assert.Equal(t, "xoxb-env", c.Token)
	assert.Equal(t, config.SlackTokenEnv, c.TokenSource)
}

func TestMissingCredentialsNamesAllVariables(t *testing.T) {
	msg := config.ErrMissingCredentials.Error()

	for _, env := range []string{"TOKEN", "CLIENT_ID", "CLIENT_SECRET", "PORT"} {
		assert.Contains(t, msg, env)
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "custom integration", config.ModeCustomIntegration.String())
	assert.Equal(t, "app", config.ModeApp.String())
	assert.Equal(t, "unknown", config.Mode(0).String())
}
