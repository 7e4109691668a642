package types

// CLIArgs represents the command-line arguments after merging with the
// config file (flags win over file values, file values win over defaults).
type CLIArgs struct {
	ConfigFile     string
	Environment    string
	Profile        string
	Region         string
	GraphqlApiArn  string
	GeoBlock       []string
	RateLimit      int64
	RetentionDays  int
	TransitionDays int
	ExpirationDays int
	ReportName     string
	ReportType     []string
	Dir            string

	// synth only
	Format string
	Output string
}
