package config

// Config is the root application configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Build   BuildConfig   `yaml:"build"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	Release ReleaseConfig `yaml:"release"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// BuildConfig holds settings shared by every dictionary build.
type BuildConfig struct {
	RootDir          string `yaml:"root_dir"          env:"KTY_ROOT_DIR"          env-default:"data"`
	DictName         string `yaml:"dict_name"         env:"KTY_DICT_NAME"         env-default:"kty"`
	Pretty           bool   `yaml:"pretty"            env:"KTY_PRETTY"            env-default:"false"`
	SaveTemps        bool   `yaml:"save_temps"        env:"KTY_SAVE_TEMPS"        env-default:"false"`
	SnapshotFormat   string `yaml:"snapshot_format"   env:"KTY_SNAPSHOT_FORMAT"   env-default:"json"`
	Experimental     bool   `yaml:"experimental"      env:"KTY_EXPERIMENTAL"      env-default:"false"`
	CompressionLevel int    `yaml:"compression_level" env:"KTY_COMPRESSION_LEVEL" env-default:"6"`
	// First stops reading each dataset after that many accepted records.
	// Negative keeps every record.
	First int `yaml:"first" env:"KTY_FIRST" env-default:"-1"`
}

// CorpusConfig holds settings of the SQLite corpus index.
type CorpusConfig struct {
	UseIndex bool `yaml:"use_index" env:"KTY_CORPUS_USE_INDEX" env-default:"false"`
	// IndexDir defaults to <root_dir>/db.
	IndexDir string `yaml:"index_dir" env:"KTY_CORPUS_INDEX_DIR"`
}

// ReleaseConfig holds settings of the bulk release command.
type ReleaseConfig struct {
	EditionsRaw string `yaml:"editions" env:"KTY_RELEASE_EDITIONS" env-default:"all"`
	Workers     int    `yaml:"workers"  env:"KTY_RELEASE_WORKERS"  env-default:"4"`

	// Editions is parsed from EditionsRaw during validation. Empty means
	// every edition.
	Editions []string `yaml:"-" env:"-"`
}
