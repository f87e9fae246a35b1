package types

// AuthConfig holds settings for obtaining Drive credentials.
type AuthConfig struct {
	// CredentialsPath is the OAuth client credentials JSON file
	// (e.g. "credentials.json" downloaded from the Cloud Console).
	CredentialsPath string `json:"credentials_path" yaml:"credentials_path"`

	// TokenPath is where the persisted token lives (default "token.json").
	// Written with owner-only permissions.
	TokenPath string `json:"token_path" yaml:"token_path"`

	// ClientID and ClientSecret are an alternative to CredentialsPath.
	ClientID     string `json:"client_id,omitempty" yaml:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`
}

// MigrationConfig holds settings for a batch migration run.
type MigrationConfig struct {
	// SourceDir is the root searched recursively for pointer files.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// Limit caps the number of files processed; zero means no cap.
	Limit int `json:"limit" yaml:"limit"`

	// SkipExisting counts a file as skipped when its output already exists.
	SkipExisting bool `json:"skip_existing" yaml:"skip_existing"`

	// DryRun reports what would be converted without writing.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// KeepIntermediates retains exported DOCX files in intermediates/.
	KeepIntermediates bool `json:"keep_intermediates" yaml:"keep_intermediates"`

	// Filter restricts processing to one resource kind.
	Filter KindFilter `json:"filter" yaml:"filter"`
}
