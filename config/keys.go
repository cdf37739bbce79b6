package config

const (
	delimiter = "."

	ConfigPrefix = "config"

	ConfigPrecalcPrefix = ConfigPrefix + delimiter + "precalc"

	ConfigPrecalcMaxTableSize = ConfigPrecalcPrefix + delimiter + "max_table_size"
	ConfigPrecalcDefaultMode  = ConfigPrecalcPrefix + delimiter + "default_mode"
)
