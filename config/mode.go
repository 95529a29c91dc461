package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
)

// Mode is the way a teabot instance connects to slack
type Mode int

// Connection modes
const (
	// ModeCustomIntegration connects with a bot token (TOKEN or SLACK_TOKEN)
	ModeCustomIntegration Mode = iota + 1
	// ModeApp is a distributed slack app identified by its client id/secret and served on a port
	ModeApp
)

const (
	customIntegrationStoragePath = "./db_slack_bot_ci/"
	appStoragePath               = "./db_slack_bot_a/"
)

var (
	// ErrMissingCredentials is returned when neither a token nor a complete app configuration is present
	ErrMissingCredentials = fmt.Errorf("If this is a custom integration, please specify %s in the environment. If this is an app, please specify %s, %s, and %s in the environment", TokenEnv, ClientIDEnv, ClientSecretEnv, PortEnv)

	// ErrAppModeUnsupported is returned when running as an app since the installation flow isn't supported
	ErrAppModeUnsupported = errors.New("Running as a slack app requires an OAuth installation flow which teabot doesn't support, use a custom integration token instead")
)

// Connection holds the resolved startup connection settings
type Connection struct {
	Mode Mode

	// Token is set for ModeCustomIntegration along with the variable it was read from
	Token       string
	TokenSource string

	// ClientID, ClientSecret and Port are set for ModeApp
	ClientID     string
	ClientSecret string
	Port         string
}

// String returns a friendly name for the mode
func (m Mode) String() string {
	switch m {
	case ModeCustomIntegration:
		return "custom integration"
	case ModeApp:
		return "app"
	default:
		return "unknown"
	}
}

// ResolveMode picks the connection mode from the environment bound on v (see BindEnvironment).
// A token (TOKEN taking precedence over SLACK_TOKEN) selects the custom integration mode. Otherwise,
// CLIENT_ID, CLIENT_SECRET and PORT must all be set to select the app mode
func ResolveMode(v *viper.Viper) (c Connection, err error) {
	for _, env := range []string{TokenEnv, SlackTokenEnv} {
		if token := v.GetString(env); token != "" {
			return Connection{Mode: ModeCustomIntegration, Token: token, TokenSource: env}, nil
		}
	}

	clientID := v.GetString(ClientIDEnv)
	clientSecret := v.GetString(ClientSecretEnv)
	port := v.GetString(PortEnv)

	if clientID != "" && clientSecret != "" && port != "" {
		return Connection{Mode: ModeApp, ClientID: clientID, ClientSecret: clientSecret, Port: port}, nil
	}

	return Connection{}, ErrMissingCredentials
}

// DefaultStoragePath returns the storage directory used when none is configured. Only a token read
// from TOKEN selects the custom integration directory. A SLACK_TOKEN shares the app directory
func DefaultStoragePath(c Connection) string {
	if c.Mode == ModeCustomIntegration && c.TokenSource == TokenEnv {
		return customIntegrationStoragePath
	}

	return appStoragePath
}
