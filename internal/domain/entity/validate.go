package entity

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	webACLNameRe    = regexp.MustCompile(`^[0-9A-Za-z_-]{1,128}$`)
	metricNameRe    = regexp.MustCompile(`^[0-9A-Za-z]{1,128}$`)
	logGroupRe      = regexp.MustCompile(`^[\.\-_/#A-Za-z0-9]{1,512}$`)
	bucketNameRe    = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)
	countryCodeRe   = regexp.MustCompile(`^[A-Z]{2}$`)
	appsyncApiArnRe = regexp.MustCompile(`^arn:aws:appsync:[a-z0-9-]+:\d{12}:apis/[0-9A-Za-z]+$`)
)

// Retenções aceitas pelo CloudWatch Logs (PutRetentionPolicy).
var validRetentionDays = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 14: true, 30: true, 60: true,
	90: true, 120: true, 150: true, 180: true, 365: true, 400: true,
	545: true, 731: true, 1096: true, 1827: true, 2192: true, 2557: true,
	2922: true, 3288: true, 3653: true,
}

// WAF rate-based rule limits.
const (
	minRateLimit = 100
	maxRateLimit = 2_000_000_000
)

// Validate runs every local check against the constraints the AWS control
// plane enforces at provisioning time. It returns all findings instead of
// stopping at the first, so a single run surfaces everything to fix.
func (s *WafStack) Validate() Findings {
	var findings Findings

	add := func(severity Severity, resource, format string, a ...interface{}) {
		findings = append(findings, Finding{
			Severity: severity,
			Resource: resource,
			Message:  fmt.Sprintf(format, a...),
		})
	}

	// --- Web ACL ---
	acl := s.WebACL
	if !webACLNameRe.MatchString(acl.Name) {
		add(SeverityError, acl.Name, "web ACL name must match %s", webACLNameRe.String())
	}
	if !metricNameRe.MatchString(acl.MetricName) {
		add(SeverityError, acl.Name, "CloudWatch metric name %q must be alphanumeric (WAF rejects dashes and underscores)", acl.MetricName)
	}
	if acl.Scope != ScopeRegional {
		add(SeverityError, acl.Name, "scope must be REGIONAL to associate with an AppSync API, got %q", acl.Scope)
	}
	if acl.DefaultAction != ActionAllow && acl.DefaultAction != ActionBlock {
		add(SeverityError, acl.Name, "default action must be ALLOW or BLOCK, got %q", acl.DefaultAction)
	}

	seen := make(map[int32]string)
	for _, rule := range acl.Rules {
		if rule.Priority < 0 {
			add(SeverityError, rule.Name, "rule priority must be non-negative, got %d", rule.Priority)
		}
		if prev, dup := seen[rule.Priority]; dup {
			add(SeverityError, rule.Name, "rule priority %d already used by %s", rule.Priority, prev)
		}
		seen[rule.Priority] = rule.Name

		if !metricNameRe.MatchString(rule.MetricName) {
			add(SeverityError, rule.Name, "rule metric name %q must be alphanumeric", rule.MetricName)
		}

		switch {
		case rule.ManagedRuleGroup != nil:
			if rule.Override == "" {
				add(SeverityError, rule.Name, "managed rule groups require an override action, not a rule action")
			}
		case rule.GeoMatch != nil:
			for _, cc := range rule.GeoMatch.CountryCodes {
				if !countryCodeRe.MatchString(cc) {
					add(SeverityError, rule.Name, "country code %q is not a two-letter uppercase ISO code", cc)
				}
			}
			if len(rule.GeoMatch.CountryCodes) == 0 {
				add(SeverityError, rule.Name, "geo match rule has an empty country list")
			}
		case rule.RateBased != nil:
			if rule.RateBased.Limit < minRateLimit || rule.RateBased.Limit > maxRateLimit {
				add(SeverityError, rule.Name, "rate limit %d outside the accepted range [%d, %d]", rule.RateBased.Limit, minRateLimit, maxRateLimit)
			}
			if rule.RateBased.AggregateKeyType != "IP" && rule.RateBased.AggregateKeyType != "FORWARDED_IP" {
				add(SeverityError, rule.Name, "aggregate key type must be IP or FORWARDED_IP, got %q", rule.RateBased.AggregateKeyType)
			}
		default:
			add(SeverityError, rule.Name, "rule has no statement")
		}
	}

	// --- Log group ---
	lg := s.LogGroup
	if !strings.HasPrefix(lg.Name, LogGroupPrefix) {
		add(SeverityError, lg.Name, "WAF logging destinations must be named with the %q prefix", LogGroupPrefix)
	}
	if !logGroupRe.MatchString(lg.Name) {
		add(SeverityError, lg.Name, "log group name contains characters CloudWatch Logs rejects")
	}
	if !validRetentionDays[lg.RetentionDays] {
		add(SeverityError, lg.Name, "retention of %d days is not an accepted CloudWatch Logs value", lg.RetentionDays)
	}
	if s.AccountID != "" {
		if dest := lg.DestinationArn(s.Region, s.AccountID); strings.HasSuffix(dest, ":*") {
			add(SeverityError, lg.Name, "logging destination ARN %q still carries the :* wildcard suffix", dest)
		}
	}

	// --- Bucket ---
	b := s.LogBucket
	if strings.Contains(b.Name, "_") || b.Name != strings.ToLower(b.Name) {
		add(SeverityError, b.Name, "bucket names must be lowercase and must not contain underscores")
	} else if !bucketNameRe.MatchString(b.Name) {
		add(SeverityError, b.Name, "bucket name must be 3-63 chars of lowercase letters, digits, dots and hyphens")
	}
	if b.TransitionDays < DefaultTransitionDays {
		add(SeverityError, b.Name, "STANDARD_IA transition at %d days is below the 30 day minimum S3 enforces", b.TransitionDays)
	}
	if b.ExpirationDays <= b.TransitionDays {
		add(SeverityError, b.Name, "expiration (%d days) must come after the IA transition (%d days)", b.ExpirationDays, b.TransitionDays)
	}

	// --- AppSync association ---
	if s.GraphqlApiArn != "" {
		arn := s.GraphqlApiArn
		switch {
		case strings.HasSuffix(arn, "/*") || strings.HasSuffix(arn, ":*"):
			add(SeverityError, arn, "API ARN must reference a single API; trailing wildcard suffixes are rejected by AssociateWebACL")
		case !appsyncApiArnRe.MatchString(arn):
			add(SeverityError, arn, "not a valid AppSync GraphQL API ARN (expected arn:aws:appsync:<region>:<account>:apis/<id>)")
		default:
			if region := arnRegion(arn); region != s.Region {
				add(SeverityWarning, arn, "API lives in %s but the stack deploys to %s", region, s.Region)
			}
		}
	} else {
		add(SeverityWarning, s.WebACL.Name, "no GraphQL API ARN configured; the Web ACL will be created but not associated")
	}

	return findings
}

// GraphqlApiID extracts the API ID from the configured AppSync ARN.
func (s *WafStack) GraphqlApiID() string {
	idx := strings.LastIndex(s.GraphqlApiArn, "/")
	if idx < 0 {
		return ""
	}
	return s.GraphqlApiArn[idx+1:]
}

func arnRegion(arn string) string {
	parts := strings.Split(arn, ":")
	if len(parts) < 4 {
		return ""
	}
	return parts[3]
}
