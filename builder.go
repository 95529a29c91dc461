package teabot

import (
	"github.com/spf13/viper"
	"github.com/teamaker/teabot/config"
	"io"
)

// Builder holds a teabot instance to build. The first error encountered is kept and
// returned by Build, skipping anything configured after it
type Builder struct {
	bot *Teabot
	err error
}

// NewBot returns a new Builder used to set up a new teabot
func NewBot(name string, v *viper.Viper, options ...Option) (sb *Builder) {
	sb = new(Builder)
	sb.bot, sb.err = New(name, v, options...)

	return sb
}

// WithPlugin adds a plugin to the teabot instance
func (sb *Builder) WithPlugin(p *Plugin) *Builder {
	return sb.WithPluginErr(p, nil)
}

// WithPluginErr adds a plugin that has a creation function returning (Plugin, error) to the teabot instance
func (sb *Builder) WithPluginErr(p *Plugin, err error) *Builder {
	return sb.WithPluginCloserErr(nil, p, err)
}

// WithPluginCloserErr adds a plugin that has a creation function returning (io.Closer, Plugin, error) to the teabot instance.
// The closer is closed along with the bot
func (sb *Builder) WithPluginCloserErr(closer io.Closer, p *Plugin, err error) *Builder {
	if sb.err == nil && err != nil {
		sb.err = err
	}

	if sb.err != nil {
		return sb
	}

	sb.bot.RegisterPlugin(p)

	if closer != nil {
		sb.bot.closers = append(sb.bot.closers, closer)
	}

	return sb
}

// WithConfigurablePluginErr adds a plugin created from its configuration sub-tree. Missing configuration is an error
func (sb *Builder) WithConfigurablePluginErr(name string, newPlugin func(c *config.PluginConfig) (p *Plugin, err error)) *Builder {
	if sb.err != nil {
		return sb
	}

	pc, err := config.GetPluginConfig(sb.bot.config, name)
	if err != nil {
		sb.err = err
		return sb
	}

	return sb.WithPluginErr(newPlugin(pc))
}

// WithConfigurablePluginCloserErr adds a plugin created from its configuration sub-tree along with a closer. Missing
// configuration is an error
func (sb *Builder) WithConfigurablePluginCloserErr(name string, newPlugin func(c *config.PluginConfig) (closer io.Closer, p *Plugin, err error)) *Builder {
	if sb.err != nil {
		return sb
	}

	pc, err := config.GetPluginConfig(sb.bot.config, name)
	if err != nil {
		sb.err = err
		return sb
	}

	return sb.WithPluginCloserErr(newPlugin(pc))
}

// WithOptionallyConfigurablePluginErr adds a plugin created from its configuration sub-tree, or from an empty
// configuration when there is none
func (sb *Builder) WithOptionallyConfigurablePluginErr(name string, newPlugin func(c *config.PluginConfig) (p *Plugin, err error)) *Builder {
	if sb.err != nil {
		return sb
	}

	return sb.WithPluginErr(newPlugin(config.GetPluginConfigOrEmpty(sb.bot.config, name)))
}

// WithCloser registers a closer to close along with the bot (i.e. a storer shared by plugins)
func (sb *Builder) WithCloser(closer io.Closer) *Builder {
	if sb.err == nil && closer != nil {
		sb.bot.closers = append(sb.bot.closers, closer)
	}

	return sb
}

// Build returns the built teabot instance. If there was an error during
// setup, the error is returned along with a nil teabot
func (sb *Builder) Build() (s *Teabot, err error) {
	if sb.err != nil {
		return nil, sb.err
	}

	return sb.bot, nil
}
