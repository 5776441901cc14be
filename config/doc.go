// Package config layers cmd/emswap's runtime configuration the way the
// logistics example layers its service config: defaults, then an optional
// YAML file, then environment variables, highest priority last. Built on
// github.com/knadh/koanf/v2 with the confmap/file/env providers and the
// yaml parser.
package config
