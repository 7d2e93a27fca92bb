package aws

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/ini.v1"
)

// Profile is a named profile from the shared AWS config files
type Profile struct {
	Name   string
	Region string
	SSO    bool
	Source string // "credentials" or "config"
}

// sharedFile returns the path of a shared config file, honouring the SDK's
// AWS_CONFIG_FILE and AWS_SHARED_CREDENTIALS_FILE overrides.
func sharedFile(envVar, name string) string {
	if p := os.Getenv(envVar); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".aws", name)
}

// ListProfiles reads profiles from the shared credentials and config files.
// Missing files are not an error.
func ListProfiles() ([]Profile, error) {
	merged := make(map[string]*Profile)

	for _, src := range []struct {
		path     string
		source   string
		isConfig bool
	}{
		{sharedFile("AWS_SHARED_CREDENTIALS_FILE", "credentials"), "credentials", false},
		{sharedFile("AWS_CONFIG_FILE", "config"), "config", true},
	} {
		if src.path == "" {
			continue
		}
		f, err := os.Open(src.path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		profiles, err := parseProfiles(f, src.source, src.isConfig)
		f.Close()
		if err != nil {
			return nil, err
		}

		for _, p := range profiles {
			existing, ok := merged[p.Name]
			if !ok {
				p := p
				merged[p.Name] = &p
				continue
			}
			if existing.Region == "" {
				existing.Region = p.Region
			}
			existing.SSO = existing.SSO || p.SSO
		}
	}

	profiles := make([]Profile, 0, len(merged))
	for _, p := range merged {
		profiles = append(profiles, *p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].Name == "default" {
			return true
		}
		if profiles[j].Name == "default" {
			return false
		}
		return profiles[i].Name < profiles[j].Name
	})
	return profiles, nil
}

// ProfileExists reports whether a profile with the given name is configured
func ProfileExists(name string) bool {
	profiles, err := ListProfiles()
	if err != nil {
		return false
	}
	for _, p := range profiles {
		if p.Name == name {
			return true
		}
	}
	return false
}

// parseProfiles reads the profile sections of a shared file. In the config
// file sections are "[default]" or "[profile name]"; other sections
// (sso-session, services) are skipped.
func parseProfiles(r io.Reader, source string, isConfig bool) ([]Profile, error) {
	file, err := ini.LoadSources(ini.LoadOptions{SkipUnrecognizableLines: true}, io.NopCloser(r))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s file: %w", source, err)
	}

	var profiles []Profile
	for _, sec := range file.Sections() {
		name := strings.TrimSpace(sec.Name())
		if name == ini.DefaultSection {
			continue
		}
		if isConfig && name != "default" {
			rest, ok := strings.CutPrefix(name, "profile ")
			if !ok {
				continue
			}
			name = strings.TrimSpace(rest)
		}
		profiles = append(profiles, Profile{
			Name:   name,
			Region: strings.TrimSpace(sec.Key("region").String()),
			SSO:    sec.HasKey("sso_start_url") || sec.HasKey("sso_session"),
			Source: source,
		})
	}
	return profiles, nil
}
