// Package config defines the build stamp resolver settings and provides
// helpers to load, validate and save them in YAML format.
//
// Settings are read from buildstamp.yaml through viper, so every key can be
// overridden with a BUILDSTAMP_ prefixed environment variable
// (BUILDSTAMP_BASE_VERSION, BUILDSTAMP_STYLE_DELIMITER, ...).
package config
