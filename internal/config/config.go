package config

// Config is the root configuration of the luis2clu tool.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Convert ConvertConfig `yaml:"convert"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// ConvertConfig holds LUIS to CLU conversion settings.
type ConvertConfig struct {
	OutputDir          string            `yaml:"output_dir"           env:"LUIS2CLU_OUTPUT_DIR"           env-default:"output"`
	OutputSuffix       string            `yaml:"output_suffix"        env:"LUIS2CLU_OUTPUT_SUFFIX"        env-default:"_clu"`
	SkipEncodingRepair bool              `yaml:"skip_encoding_repair" env:"LUIS2CLU_SKIP_ENCODING_REPAIR"`
	SourceCharset      string            `yaml:"source_charset"       env:"LUIS2CLU_SOURCE_CHARSET"       env-default:"windows-1252"`
	Indent             int               `yaml:"indent"               env:"LUIS2CLU_INDENT"               env-default:"2"`
	CollisionPolicy    string            `yaml:"collision_policy"     env:"LUIS2CLU_COLLISION_POLICY"     env-default:"last"`
	WriteMapping       bool              `yaml:"write_mapping"        env:"LUIS2CLU_WRITE_MAPPING"`
	DryRun             bool              `yaml:"dry_run"              env:"LUIS2CLU_DRY_RUN"`
	SpecialCases       map[string]string `yaml:"special_cases"        env:"LUIS2CLU_SPECIAL_CASES"`
}
