package domain

// SearchSettings holds search behaviour settings.
type SearchSettings struct {
	// SnippetContext is the number of bytes shown either side of a match.
	SnippetContext int

	// CaseSensitive is the default for the case-sensitive flag.
	CaseSensitive bool

	// WholeWord is the default for the whole-word flag.
	WholeWord bool
}

// Options converts the defaults into SearchOptions.
func (s SearchSettings) Options() SearchOptions {
	return SearchOptions{
		CaseSensitive: s.CaseSensitive,
		WholeWord:     s.WholeWord,
	}
}

// StorageSettings holds content store settings.
type StorageSettings struct {
	// DataDir is the directory holding the database file.
	// Empty selects ~/.bismuth/data.
	DataDir string
}

// LogSettings holds logging settings.
type LogSettings struct {
	// Verbose enables debug output on stderr.
	Verbose bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	Search  SearchSettings
	Storage StorageSettings
	Log     LogSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			SnippetContext: DefaultSnippetContext,
		},
	}
}
