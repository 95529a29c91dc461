// Package config provides the viper configuration keys and defaults of a teabot instance
// along with the resolution of the startup connection mode
package config

import (
	"fmt"
	"github.com/spf13/viper"
	"time"
)

// Configuration keys
const (
	TokenKey                              = "token"                                  // Slack token, string
	DebugKey                              = "debug"                                  // Debug mode, boolean
	ResponseCacheSizeKey                  = "responseCacheSize"                      // Number of triggering messages to keep responses for, int
	UserInfoCacheSizeKey                  = "userInfoCacheSize"                      // Number of user info entries to cache, int. 0 disables caching
	TimeLocationKey                       = "timeLocation"                           // Time zone name for scheduled actions, string
	StoragePathKey                        = "storagePath"                            // Directory holding the leveldb stores, string
	DatastoreProjectIDKey                 = "storage.datastore.projectID"            // Google Cloud project id. Selects datastore storage when set
	DatastoreCredentialsFileKey           = "storage.datastore.credentialsFile"      // Google Cloud credentials file, string
	ThreadedRepliesKey                    = "threadedReplies"                        // Reply in threads, boolean
	BroadcastThreadedRepliesKey           = "broadcastThreadedReplies"               // Broadcast threaded replies to the channel, boolean
	MessageProcessingPartitionCount       = "messageProcessing.partitionCount"       // Number of message processing partitions, must be a power of two
	MessageProcessingBufferedMessageCount = "messageProcessing.partitionBufferSize"  // Buffered messages per partition, int
	PluginsKey                            = "plugins"                                // Root of plugin configurations
)

// Environment variables read at startup
const (
	TokenEnv        = "TOKEN"
	SlackTokenEnv   = "SLACK_TOKEN"
	ClientIDEnv     = "CLIENT_ID"
	ClientSecretEnv = "CLIENT_SECRET"
	PortEnv         = "PORT"
)

const (
	defaultResponseCacheSize     = 5000
	defaultUserInfoCacheSize     = 0
	defaultTimeLocation          = "Local"
	defaultPartitionCount        = 16
	defaultPartitionBufferSize   = 10
	defaultThreadedReplies       = false
	defaultBroadcastThreadedReps = false
)

// PluginConfig is a plugin's configuration sub-tree
type PluginConfig = viper.Viper

// NewViperWithDefaults returns a new viper instance with all default values set
func NewViperWithDefaults() (v *viper.Viper) {
	v = viper.New()

	return LayerConfigWithDefaults(v)
}

// LayerConfigWithDefaults sets the default values on an existing viper instance. Values explicitly
// set on v are preserved
func LayerConfigWithDefaults(v *viper.Viper) *viper.Viper {
	v.SetDefault(DebugKey, false)
	v.SetDefault(ResponseCacheSizeKey, defaultResponseCacheSize)
	v.SetDefault(UserInfoCacheSizeKey, defaultUserInfoCacheSize)
	v.SetDefault(TimeLocationKey, defaultTimeLocation)
	v.SetDefault(ThreadedRepliesKey, defaultThreadedReplies)
	v.SetDefault(BroadcastThreadedRepliesKey, defaultBroadcastThreadedReps)
	v.SetDefault(MessageProcessingPartitionCount, defaultPartitionCount)
	v.SetDefault(MessageProcessingBufferedMessageCount, defaultPartitionBufferSize)

	return v
}

// BindEnvironment binds the startup environment variables so they are visible through v
func BindEnvironment(v *viper.Viper) (err error) {
	for _, env := range []string{TokenEnv, SlackTokenEnv, ClientIDEnv, ClientSecretEnv, PortEnv} {
		if err = v.BindEnv(env); err != nil {
			return err
		}
	}

	return nil
}

// GetTimeLocation returns the time location configured for scheduled actions
func GetTimeLocation(v *viper.Viper) (timeLoc *time.Location, err error) {
	timeLocationName := v.GetString(TimeLocationKey)
	timeLoc, err = time.LoadLocation(timeLocationName)
	if err != nil {
		return nil, fmt.Errorf("Unable to load time location [%s]: %w", timeLocationName, err)
	}

	return timeLoc, nil
}

// GetPluginConfig returns the configuration sub-tree of a plugin. If none exists, an error
// is returned
func GetPluginConfig(v *viper.Viper, name string) (pc *PluginConfig, err error) {
	pluginKey := fmt.Sprintf("%s.%s", PluginsKey, name)
	if !v.IsSet(pluginKey) {
		return nil, fmt.Errorf("Missing plugin configuration for plugin [%s]", name)
	}

	return v.Sub(pluginKey), nil
}

// GetPluginConfigOrEmpty returns the configuration sub-tree of a plugin or an empty
// configuration for plugins that can run with their defaults
func GetPluginConfigOrEmpty(v *viper.Viper, name string) (pc *PluginConfig) {
	pc, err := GetPluginConfig(v, name)
	if err != nil {
		return viper.New()
	}

	return pc
}
