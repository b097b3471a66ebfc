package cfg

type Cfg struct {
	// Input configuration
	SourcesFile  string
	KeywordsFile string

	// Run parameters
	Timezone    string
	WindowHours int
	LinkLimit   int
	WorkerCount int
	HTTPTimeout int

	// Feature toggles
	SkipHTML       bool
	DisableExtract bool

	// Output configuration
	OutputDir string
	Serve     bool
	Port      string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
