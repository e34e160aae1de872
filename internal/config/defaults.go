package config

const (
	defaultDataDir       = "~/subtitles"
	defaultLogDir        = "~/.local/share/subcompare/logs"
	defaultReferenceName = "english_subtitle.srt"
	defaultOutputSuffix  = "_comparison"
	defaultArchiveDir    = "archive"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Comparison: Comparison{
			ReferenceName: defaultReferenceName,
			CandidateDirs: []string{"persian"},
			OutputSuffix:  defaultOutputSuffix,
		},
		Organize: Organize{
			ArchiveDir:          defaultArchiveDir,
			LegacyCandidateDirs: []string{"english"},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
