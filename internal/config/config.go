// Package config holds the contexts file and resolves the settings each
// command runs with.
package config

import (
	"fmt"
	"os"
)

const (
	DefaultOutput        = "json"
	DefaultConfirmImpact = "high"
)

// Settings are the effective connection and rendering settings for one
// command execution. They are passed explicitly to the client factory.
type Settings struct {
	Context       string
	Profile       string
	Region        string
	EndpointURL   string
	Output        string
	ConfirmImpact string
}

// Resolve merges explicit settings (flags and RDSCTL_* environment, already
// merged by the caller) over the selected context, the file defaults and
// finally the AWS environment variables.
func Resolve(file *File, explicit Settings) (Settings, error) {
	s := explicit

	name := explicit.Context
	if name == "" {
		name = file.CurrentContext
	}
	if name != "" {
		ctx, resolved, err := file.Resolve(name)
		if err != nil {
			return Settings{}, err
		}
		s.Context = resolved
		s.Profile = first(s.Profile, ctx.Profile)
		s.Region = first(s.Region, ctx.Region)
		s.EndpointURL = first(s.EndpointURL, ctx.EndpointURL)
	}

	if file.Defaults != nil {
		s.Output = first(s.Output, file.Defaults.Output)
		s.ConfirmImpact = first(s.ConfirmImpact, file.Defaults.ConfirmImpact)
	}

	s.Profile = first(s.Profile, os.Getenv("AWS_PROFILE"))
	s.Region = first(s.Region, os.Getenv("AWS_REGION"), os.Getenv("AWS_DEFAULT_REGION"))
	s.Output = first(s.Output, DefaultOutput)
	s.ConfirmImpact = first(s.ConfirmImpact, DefaultConfirmImpact)

	switch s.Output {
	case "json", "yaml", "text":
	default:
		return Settings{}, fmt.Errorf("invalid output format %q (json, yaml or text)", s.Output)
	}
	return s, nil
}

// Key identifies the client a set of settings needs.
func (s Settings) Key() string {
	return s.Profile + "|" + s.Region + "|" + s.EndpointURL
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
