package config

const (
	defaultBind           = "127.0.0.1:5000"
	defaultAssetsDir      = "~/.local/share/feesheet/assets"
	defaultLogDir         = "~/.local/share/feesheet/logs"
	defaultInitialRows    = 6
	defaultExportFilename = "Monthly_Fees_Note.txt"
	defaultMaxIdleMinutes = 240
	defaultMaxSheets      = 1000
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultRetentionDays  = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			Bind: defaultBind,
		},
		Paths: Paths{
			AssetsDir: defaultAssetsDir,
			LogDir:    defaultLogDir,
		},
		Sheet: Sheet{
			InitialRows:    defaultInitialRows,
			ExportFilename: defaultExportFilename,
			MaxIdleMinutes: defaultMaxIdleMinutes,
			MaxSheets:      defaultMaxSheets,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultRetentionDays,
		},
	}
}
