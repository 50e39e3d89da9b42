package common

import (
	"github.com/bwmarrin/discordgo"
)

// Options indexes slash command options by name
type Options map[string]*discordgo.ApplicationCommandInteractionDataOption

// ParseOptions indexes the options of a command invocation
func ParseOptions(options []*discordgo.ApplicationCommandInteractionDataOption) Options {
	parsed := make(Options, len(options))
	for _, opt := range options {
		parsed[opt.Name] = opt
	}
	return parsed
}

// String returns the string value of name, or empty when absent
func (o Options) String(name string) string {
	if opt, ok := o[name]; ok {
		return opt.StringValue()
	}
	return ""
}

// Int returns the integer value of name, or zero when absent
func (o Options) Int(name string) int64 {
	if opt, ok := o[name]; ok {
		return opt.IntValue()
	}
	return 0
}

// ID returns the snowflake of a user, role or channel option, or empty when absent
func (o Options) ID(name string) string {
	if opt, ok := o[name]; ok {
		if id, ok := opt.Value.(string); ok {
			return id
		}
	}
	return ""
}
