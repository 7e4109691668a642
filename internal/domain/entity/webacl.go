package entity

import "fmt"

// Rule action and override values as the WAF API spells them. The API is
// case-sensitive here; lowercase variants are rejected on create.
const (
	ActionAllow        = "ALLOW"
	ActionBlock        = "BLOCK"
	OverrideActionNone = "NONE"

	ScopeRegional = "REGIONAL"

	ManagedRuleVendor    = "AWS"
	ManagedCommonRuleSet = "AWSManagedRulesCommonRuleSet"
)

// Fixed rule priorities. WAF evaluates rules in ascending priority order
// and rejects Web ACLs carrying duplicates.
const (
	PriorityManagedCommon = 1
	PriorityGeoBlock      = 2
	PriorityRateLimit     = 3
)

// WebACL descreve a Web ACL regional e suas regras.
type WebACL struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Scope       string `json:"scope"`
	// DefaultAction applies when no rule matches; the stack allows by
	// default and lets the rules block.
	DefaultAction string `json:"default_action"`
	MetricName    string `json:"metric_name"`
	Rules         []Rule `json:"rules"`
}

// Rule is one entry of the Web ACL. Exactly one of the statement fields
// is set; the zero ones are omitted when serialized.
type Rule struct {
	Name     string `json:"name"`
	Priority int32  `json:"priority"`
	// Action blocks or allows matching requests. Managed rule groups use
	// Override instead (the group's own actions apply).
	Action     string `json:"action,omitempty"`
	Override   string `json:"override,omitempty"`
	MetricName string `json:"metric_name"`

	ManagedRuleGroup *ManagedRuleGroupStatement `json:"managed_rule_group,omitempty"`
	GeoMatch         *GeoMatchStatement         `json:"geo_match,omitempty"`
	RateBased        *RateBasedStatement        `json:"rate_based,omitempty"`
}

// ManagedRuleGroupStatement references a vendor-curated rule bundle.
type ManagedRuleGroupStatement struct {
	VendorName string `json:"vendor_name"`
	Name       string `json:"name"`
}

// GeoMatchStatement matches requests originating from the listed
// ISO 3166-1 alpha-2 country codes.
type GeoMatchStatement struct {
	CountryCodes []string `json:"country_codes"`
}

// RateBasedStatement matches source IPs exceeding Limit requests within
// the WAF rate window (5 minutes).
type RateBasedStatement struct {
	Limit            int64  `json:"limit"`
	AggregateKeyType string `json:"aggregate_key_type"`
}

// NewWebACL monta a Web ACL com as três regras do stack. A regra de
// geo-block só entra quando há países configurados.
func NewWebACL(environment string, geoCountries []string, rateLimit int64) WebACL {
	acl := WebACL{
		Name:          fmt.Sprintf("%s-web-acl-%s", stackPrefix, environment),
		Description:   fmt.Sprintf("WAF protection for the %s AppSync API", environment),
		Scope:         ScopeRegional,
		DefaultAction: ActionAllow,
		MetricName:    fmt.Sprintf("%sWebAcl%s", stackPrefix, titleCase(environment)),
	}

	acl.Rules = append(acl.Rules, Rule{
		Name:       "AWSManagedRulesCommon",
		Priority:   PriorityManagedCommon,
		Override:   OverrideActionNone,
		MetricName: "awsManagedRulesCommon",
		ManagedRuleGroup: &ManagedRuleGroupStatement{
			VendorName: ManagedRuleVendor,
			Name:       ManagedCommonRuleSet,
		},
	})

	if len(geoCountries) > 0 {
		acl.Rules = append(acl.Rules, Rule{
			Name:       "GeoBlockRule",
			Priority:   PriorityGeoBlock,
			Action:     ActionBlock,
			MetricName: "geoBlockRule",
			GeoMatch:   &GeoMatchStatement{CountryCodes: geoCountries},
		})
	}

	acl.Rules = append(acl.Rules, Rule{
		Name:       "RateLimitRule",
		Priority:   PriorityRateLimit,
		Action:     ActionBlock,
		MetricName: "rateLimitRule",
		RateBased: &RateBasedStatement{
			Limit:            rateLimit,
			AggregateKeyType: "IP",
		},
	})

	return acl
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-('a'-'A')) + s[1:]
	}
	return s
}
