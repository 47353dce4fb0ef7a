// Package types holds configuration types shared across the CLI.
package types

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Verbose     bool              `mapstructure:"verbose"`
	Config      string            `mapstructure:"config"`
	Project     ProjectConfig     `mapstructure:"project" validate:"required"`
	Data        DataConfig        `mapstructure:"data" validate:"required"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	Generator   GeneratorConfig   `mapstructure:"generator"`
}

// ProjectConfig holds artifact-root settings.
type ProjectConfig struct {
	// RootDir is the directory feature artifact bundles are written under.
	RootDir string `mapstructure:"rootDir" validate:"required"`
	// CrashLogDir is where panic reports land, relative to RootDir unless
	// absolute.
	CrashLogDir string `mapstructure:"crashLogDir" validate:"required"`
}

// DataConfig holds the structured data file settings.
type DataConfig struct {
	Format string `mapstructure:"format" validate:"required,oneof=json yaml"`
}

// CredentialsConfig locates the optional provider credential file.
type CredentialsConfig struct {
	File string `mapstructure:"file" validate:"required"`
}

// GeneratorConfig selects and tags the generation strategy.
type GeneratorConfig struct {
	// Strategy names the generation backend. Only "template" exists today.
	Strategy string `mapstructure:"strategy" validate:"required,oneof=template"`
	// Version is the generator tag stamped on every feature record.
	Version string `mapstructure:"version" validate:"required"`
}
