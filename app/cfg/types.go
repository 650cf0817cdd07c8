package cfg

type Cfg struct {
	// Storage configuration
	DBPath string

	// External service configuration
	NewsAPIKey      string
	NewsAPIURL      string
	TranslateURL    string
	TranslateAPIKey string

	// Application configuration
	SourcesFile        string
	Port               string
	APIAccessKey       string
	KeywordLimit       int
	CollectionInterval int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
