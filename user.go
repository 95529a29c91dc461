package teabot

import (
	"fmt"
	lru "github.com/hashicorp/golang-lru"
	"github.com/slack-go/slack"
	"github.com/spf13/viper"
	"github.com/teamaker/teabot/config"
)

const userInfoCacheSizeDisabledValue = 0

// UserInfoFinder defines the interface for finding a slack user's info. slack.Client implements it
type UserInfoFinder interface {
	GetUserInfo(userID string) (user *slack.User, err error)
}

// selfInfoFinder finds the info of the connected bot user
type selfInfoFinder interface {
	GetInfo() (info *slack.Info)
}

// cachingUserInfoFinder loads user info from its loader and keeps it in an ARC cache when caching is enabled
type cachingUserInfoFinder struct {
	loader           UserInfoFinder
	logger           SLogger
	userProfileCache *lru.ARCCache
}

// NewCachingUserInfoFinder creates a new user info finder with caching if enabled via config.UserInfoCacheSizeKey. The
// loader does the actual loading on cache misses
func NewCachingUserInfoFinder(v *viper.Viper, loader UserInfoFinder, logger SLogger) (uf UserInfoFinder, err error) {
	cuf := new(cachingUserInfoFinder)

	cs := v.GetInt(config.UserInfoCacheSizeKey)
	if cs < userInfoCacheSizeDisabledValue {
		return nil, fmt.Errorf("Invalid user info cache size [%d], must be %d (disabled) or more", cs, userInfoCacheSizeDisabledValue)
	}

	if cs > userInfoCacheSizeDisabledValue {
		cuf.userProfileCache, err = lru.NewARC(cs)
		if err != nil {
			return nil, err
		}
	}

	cuf.loader = loader
	cuf.logger = logger

	return cuf, nil
}

// GetUserInfo gets the user info or returns an error if the user isn't found or loading failed
func (c *cachingUserInfoFinder) GetUserInfo(userID string) (u *slack.User, err error) {
	if c.userProfileCache == nil {
		c.logger.Debugf("Cache disabled, loading user info for [%s] from slack\n", userID)
		return c.loader.GetUserInfo(userID)
	}

	if cached, exists := c.userProfileCache.Get(userID); exists {
		c.logger.Debugf("User info for [%s] found in cache\n", userID)

		user, ok := cached.(slack.User)
		if !ok {
			return nil, fmt.Errorf("Error converting cached value for user id [%s]", userID)
		}

		return &user, nil
	}

	c.logger.Debugf("User info for [%s] not in cache, loading from slack\n", userID)
	u, err = c.loader.GetUserInfo(userID)
	if err != nil {
		return nil, err
	}

	c.userProfileCache.Add(userID, *u)

	return u, nil
}
