// Package config resolves the preprocessor's configuration: viper-held
// defaults and environment overrides, merged with the
// [preprocessor.codetags] table mdbook passes in the context.
package config

import (
	"log"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/madbrain/mdbook-codetags/internal/book"
)

const (
	// DefaultSrcRoot is the source tree location relative to the book
	// root when the book.toml table does not set src-root.
	DefaultSrcRoot = "../src"

	// DefaultExtension selects which files the walker visits.
	DefaultExtension = "java"
)

// SetDefaults registers the configuration defaults with viper. Environment
// variables prefixed MDBOOK_CODETAGS_ override them.
func SetDefaults() {
	viper.SetDefault("src-root", DefaultSrcRoot)
	viper.SetDefault("extension", DefaultExtension)
	viper.SetDefault("language", "")
}

// Configuration is the resolved preprocessor configuration.
type Configuration struct {
	SrcRoot   string
	Extension string
	Language  string
}

// FromContext merges the context's preprocessor table over the viper
// defaults. A wrong-typed value logs an error and keeps the default.
func FromContext(ctx *book.Context) Configuration {
	cfg := Configuration{
		SrcRoot:   viper.GetString("src-root"),
		Extension: viper.GetString("extension"),
		Language:  viper.GetString("language"),
	}
	cfg.applyTable(ctx.PreprocessorConfig("codetags"))
	if cfg.Language == "" {
		cfg.Language = cfg.Extension
	}
	return cfg
}

// FromTable resolves configuration directly from a decoded
// [preprocessor.codetags] table, for standalone use outside the mdbook
// round trip.
func FromTable(table map[string]any) Configuration {
	cfg := Configuration{
		SrcRoot:   viper.GetString("src-root"),
		Extension: viper.GetString("extension"),
		Language:  viper.GetString("language"),
	}
	cfg.applyTable(table)
	if cfg.Language == "" {
		cfg.Language = cfg.Extension
	}
	return cfg
}

func (c *Configuration) applyTable(table map[string]any) {
	if table == nil {
		return
	}
	applyString(table, "src-root", &c.SrcRoot)
	applyString(table, "extension", &c.Extension)
	applyString(table, "language", &c.Language)
}

func applyString(table map[string]any, key string, dst *string) {
	v, ok := table[key]
	if !ok {
		return
	}
	s, ok := v.(string)
	if !ok {
		log.Printf("field `%s` has invalid data type (expected string)", key)
		return
	}
	*dst = s
}

// ResolveSrcRoot returns the absolute source directory: a relative src-root
// is resolved against the book root.
func (c Configuration) ResolveSrcRoot(bookRoot string) string {
	if filepath.IsAbs(c.SrcRoot) {
		return c.SrcRoot
	}
	return filepath.Join(bookRoot, c.SrcRoot)
}
