// Package utils exposes the logging and configuration plumbing shared by the gamm commands.
//
// ConfigurationLoader layers defaults, an embedded YAML document, an optional
// settings file, and GAMM_* environment variables through Viper. LoggerFactory
// builds zap loggers in either console or structured form.
package utils
