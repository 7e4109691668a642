package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Environment    string   `json:"environment" yaml:"environment" toml:"environment"`
	Profile        string   `json:"profile" yaml:"profile" toml:"profile"`
	Region         string   `json:"region" yaml:"region" toml:"region"`
	GraphqlApiArn  string   `json:"graphql_api_arn" yaml:"graphql_api_arn" toml:"graphql_api_arn"`
	GeoBlock       []string `json:"geo_block" yaml:"geo_block" toml:"geo_block"`
	RateLimit      int64    `json:"rate_limit" yaml:"rate_limit" toml:"rate_limit"`
	RetentionDays  int      `json:"retention_days" yaml:"retention_days" toml:"retention_days"`
	TransitionDays int      `json:"transition_days" yaml:"transition_days" toml:"transition_days"`
	ExpirationDays int      `json:"expiration_days" yaml:"expiration_days" toml:"expiration_days"`
	ReportName     string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType     []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir            string   `json:"dir" yaml:"dir" toml:"dir"`
}
