package entity

import "fmt"

// Default stack parameters. They mirror the values the stack was first
// deployed with and can all be overridden via config file or CLI flags.
const (
	DefaultEnvironment    = "test"
	DefaultRegion         = "us-east-1"
	DefaultRateLimit      = 2000
	DefaultRetentionDays  = 30
	DefaultTransitionDays = 30
	DefaultExpirationDays = 365

	// LogGroupPrefix é obrigatório: a API de logging do WAF rejeita
	// qualquer destino do CloudWatch Logs cujo nome não comece com ele.
	LogGroupPrefix = "aws-waf-logs-"

	stackPrefix = "tmb12"
)

// WafStack is the declarative description of everything the stack owns:
// the Web ACL and its rules, the CloudWatch log group receiving WAF logs,
// the S3 archive bucket and the optional AppSync association.
type WafStack struct {
	Environment   string `json:"environment"`
	Region        string `json:"region"`
	AccountID     string `json:"account_id,omitempty"`
	GraphqlApiArn string `json:"graphql_api_arn,omitempty"`

	WebACL    WebACL    `json:"web_acl"`
	LogGroup  LogGroup  `json:"log_group"`
	LogBucket LogBucket `json:"log_bucket"`

	// RedactAuthorization redacts the Authorization header in WAF logs.
	RedactAuthorization bool `json:"redact_authorization"`
}

// StackParams carries the tunable knobs used to build a WafStack.
type StackParams struct {
	Environment       string
	Region            string
	AccountID         string
	GraphqlApiArn     string
	GeoBlockCountries []string
	RateLimit         int64
	RetentionDays     int
	TransitionDays    int
	ExpirationDays    int
}

// NewWafStack builds the stack description for an environment, applying
// the defaults for every parameter left at its zero value.
func NewWafStack(p StackParams) *WafStack {
	if p.Environment == "" {
		p.Environment = DefaultEnvironment
	}
	if p.Region == "" {
		p.Region = DefaultRegion
	}
	if p.RateLimit == 0 {
		p.RateLimit = DefaultRateLimit
	}
	if p.RetentionDays == 0 {
		p.RetentionDays = DefaultRetentionDays
	}
	if p.TransitionDays == 0 {
		p.TransitionDays = DefaultTransitionDays
	}
	if p.ExpirationDays == 0 {
		p.ExpirationDays = DefaultExpirationDays
	}

	return &WafStack{
		Environment:         p.Environment,
		Region:              p.Region,
		AccountID:           p.AccountID,
		GraphqlApiArn:       p.GraphqlApiArn,
		WebACL:              NewWebACL(p.Environment, p.GeoBlockCountries, p.RateLimit),
		LogGroup:            NewLogGroup(p.Environment, p.RetentionDays),
		LogBucket:           NewLogBucket(p.Environment, p.AccountID, p.TransitionDays, p.ExpirationDays),
		RedactAuthorization: true,
	}
}

// StackName is the logical name used on tags and report headers.
func (s *WafStack) StackName() string {
	return fmt.Sprintf("%s-waf-%s", stackPrefix, s.Environment)
}

// HasAssociation reports whether an AppSync API was wired to the Web ACL.
func (s *WafStack) HasAssociation() bool {
	return s.GraphqlApiArn != ""
}
