package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the location of the contexts file
const EnvConfigPath = "RDSCTL_CONFIG"

// Context is a named set of connection settings for the RDS client
type Context struct {
	Profile     string `yaml:"profile,omitempty"`      // AWS shared config profile
	Region      string `yaml:"region,omitempty"`       // AWS region
	EndpointURL string `yaml:"endpoint_url,omitempty"` // RDS endpoint override
}

// Defaults represents default settings
type Defaults struct {
	Output        string `yaml:"output,omitempty"`         // json, yaml, text
	ConfirmImpact string `yaml:"confirm_impact,omitempty"` // none, low, medium, high
}

// File represents the contexts file (~/.rdsctl.yaml)
type File struct {
	CurrentContext string              `yaml:"current_context,omitempty"`
	Contexts       map[string]*Context `yaml:"contexts,omitempty"`
	Aliases        map[string]string   `yaml:"aliases,omitempty"`
	Defaults       *Defaults           `yaml:"defaults,omitempty"`

	path string
}

// DefaultPath returns the contexts file path, $RDSCTL_CONFIG or ~/.rdsctl.yaml
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rdsctl.yaml"
	}
	return filepath.Join(home, ".rdsctl.yaml")
}

// Load reads the contexts file at path. A missing file yields an empty config.
func Load(path string) (*File, error) {
	f := &File{path: path}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, f); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Initialize maps if nil
	if f.Contexts == nil {
		f.Contexts = make(map[string]*Context)
	}
	// A hand-written "name:" with no body decodes to nil
	for name, ctx := range f.Contexts {
		if ctx == nil {
			f.Contexts[name] = &Context{}
		}
	}
	if f.Aliases == nil {
		f.Aliases = make(map[string]string)
	}
	if f.Defaults == nil {
		f.Defaults = &Defaults{}
	}
	return f, nil
}

// Path returns the file the config was loaded from
func (f *File) Path() string {
	return f.path
}

// Save writes the config back to its file
func (f *File) Save() error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Resolve returns the context for a name or alias
func (f *File) Resolve(name string) (*Context, string, error) {
	if target, ok := f.Aliases[name]; ok {
		name = target
	}
	ctx, ok := f.Contexts[name]
	if !ok {
		return nil, "", fmt.Errorf("context %q not found", name)
	}
	return ctx, name, nil
}

// Current returns the active context, or nil when none is set
func (f *File) Current() (*Context, string, error) {
	if f.CurrentContext == "" {
		return nil, "", nil
	}
	return f.Resolve(f.CurrentContext)
}

// Use sets the current context
func (f *File) Use(name string) error {
	_, resolved, err := f.Resolve(name)
	if err != nil {
		return err
	}
	f.CurrentContext = resolved
	return nil
}

// Add adds or replaces a context
func (f *File) Add(name string, ctx *Context) error {
	if name == "" {
		return fmt.Errorf("context name must not be empty")
	}
	f.Contexts[name] = ctx
	return nil
}

// Delete removes a context and any aliases pointing at it
func (f *File) Delete(name string) error {
	if _, ok := f.Contexts[name]; !ok {
		return fmt.Errorf("context %q not found", name)
	}
	delete(f.Contexts, name)
	for alias, target := range f.Aliases {
		if target == name {
			delete(f.Aliases, alias)
		}
	}

	// Clear current context if it was the deleted one
	if f.CurrentContext == name {
		f.CurrentContext = ""
	}
	return nil
}

// Names returns the context names in sorted order
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Contexts))
	for name := range f.Contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
