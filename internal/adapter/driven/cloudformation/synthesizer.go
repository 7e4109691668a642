// Package cloudformation renders a stack description as the equivalent
// CloudFormation template, for review pipelines and drift comparison.
package cloudformation

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Mykematt/tmb12-waf-test/internal/domain/entity"
	"github.com/Mykematt/tmb12-waf-test/internal/domain/repository"
	"github.com/Mykematt/tmb12-waf-test/internal/shared/types"
)

// Template represents a CloudFormation template.
type Template struct {
	AWSTemplateFormatVersion string                 `json:"AWSTemplateFormatVersion" yaml:"AWSTemplateFormatVersion"`
	Description              string                 `json:"Description,omitempty" yaml:"Description,omitempty"`
	Resources                map[string]ResourceDef `json:"Resources" yaml:"Resources"`
	Outputs                  map[string]Output      `json:"Outputs,omitempty" yaml:"Outputs,omitempty"`
}

// ResourceDef is a single resource in the CloudFormation template.
type ResourceDef struct {
	Type       string         `json:"Type" yaml:"Type"`
	Properties map[string]any `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	DependsOn  []string       `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
}

// Output is a CloudFormation template output.
type Output struct {
	Description string `json:"Description,omitempty" yaml:"Description,omitempty"`
	Value       any    `json:"Value" yaml:"Value"`
}

// Logical IDs used in the synthesized template.
const (
	logicalWebACL      = "WafWebAcl"
	logicalLogGroup    = "WafLogGroup"
	logicalBucket      = "WafLogArchiveBucket"
	logicalLogging     = "WafLoggingConfiguration"
	logicalAssociation = "WafWebAclAssociation"
)

// SynthesizerImpl implementa o TemplateRepository.
type SynthesizerImpl struct{}

// NewSynthesizer cria uma nova implementação do TemplateRepository.
func NewSynthesizer() repository.TemplateRepository {
	return &SynthesizerImpl{}
}

// Synthesize renders the stack as a CloudFormation template.
func (s *SynthesizerImpl) Synthesize(stack *entity.WafStack, format string) ([]byte, error) {
	template := buildTemplate(stack)

	switch format {
	case "json", "":
		return json.MarshalIndent(template, "", "  ")
	case "yaml", "yml":
		return yaml.Marshal(template)
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, format)
	}
}

func buildTemplate(stack *entity.WafStack) Template {
	template := Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              fmt.Sprintf("WAF stack for the %s environment", stack.Environment),
		Resources: map[string]ResourceDef{
			logicalWebACL:   webACLResource(stack.WebACL),
			logicalLogGroup: logGroupResource(stack.LogGroup),
			logicalBucket:   bucketResource(stack.LogBucket),
			logicalLogging:  loggingResource(stack),
		},
		Outputs: map[string]Output{
			"WebACLArn": {
				Description: "ARN of the Web ACL",
				Value:       getAtt(logicalWebACL, "Arn"),
			},
			"LogGroupName": {
				Description: "Name of the WAF log group",
				Value:       ref(logicalLogGroup),
			},
			"LogArchiveBucket": {
				Description: "Bucket archiving WAF logs",
				Value:       ref(logicalBucket),
			},
		},
	}

	if stack.HasAssociation() {
		template.Resources[logicalAssociation] = ResourceDef{
			Type: "AWS::WAFv2::WebACLAssociation",
			Properties: map[string]any{
				"ResourceArn": stack.GraphqlApiArn,
				"WebACLArn":   getAtt(logicalWebACL, "Arn"),
			},
		}
	}

	return template
}

func webACLResource(acl entity.WebACL) ResourceDef {
	rules := make([]any, 0, len(acl.Rules))
	for _, rule := range acl.Rules {
		rules = append(rules, ruleProperty(rule))
	}

	return ResourceDef{
		Type: "AWS::WAFv2::WebACL",
		Properties: map[string]any{
			"Name":          acl.Name,
			"Description":   acl.Description,
			"Scope":         acl.Scope,
			"DefaultAction": map[string]any{"Allow": map[string]any{}},
			"VisibilityConfig": map[string]any{
				"CloudWatchMetricsEnabled": true,
				"MetricName":               acl.MetricName,
				"SampledRequestsEnabled":   true,
			},
			"Rules": rules,
		},
	}
}

func ruleProperty(rule entity.Rule) map[string]any {
	property := map[string]any{
		"Name":     rule.Name,
		"Priority": rule.Priority,
		"VisibilityConfig": map[string]any{
			"CloudWatchMetricsEnabled": true,
			"MetricName":               rule.MetricName,
			"SampledRequestsEnabled":   true,
		},
	}

	switch {
	case rule.ManagedRuleGroup != nil:
		// Managed groups carry OverrideAction, never Action. CloudFormation
		// rejects the template when both (or neither) are present.
		property["OverrideAction"] = map[string]any{"None": map[string]any{}}
		property["Statement"] = map[string]any{
			"ManagedRuleGroupStatement": map[string]any{
				"VendorName": rule.ManagedRuleGroup.VendorName,
				"Name":       rule.ManagedRuleGroup.Name,
			},
		}
	case rule.GeoMatch != nil:
		property["Action"] = map[string]any{"Block": map[string]any{}}
		property["Statement"] = map[string]any{
			"GeoMatchStatement": map[string]any{
				"CountryCodes": rule.GeoMatch.CountryCodes,
			},
		}
	case rule.RateBased != nil:
		property["Action"] = map[string]any{"Block": map[string]any{}}
		property["Statement"] = map[string]any{
			"RateBasedStatement": map[string]any{
				"Limit":            rule.RateBased.Limit,
				"AggregateKeyType": rule.RateBased.AggregateKeyType,
			},
		}
	}

	return property
}

func logGroupResource(group entity.LogGroup) ResourceDef {
	return ResourceDef{
		Type: "AWS::Logs::LogGroup",
		Properties: map[string]any{
			"LogGroupName":    group.Name,
			"RetentionInDays": group.RetentionDays,
		},
	}
}

func bucketResource(bucket entity.LogBucket) ResourceDef {
	return ResourceDef{
		Type: "AWS::S3::Bucket",
		Properties: map[string]any{
			"BucketName": bucket.Name,
			"PublicAccessBlockConfiguration": map[string]any{
				"BlockPublicAcls":       true,
				"BlockPublicPolicy":     true,
				"IgnorePublicAcls":      true,
				"RestrictPublicBuckets": true,
			},
			"LifecycleConfiguration": map[string]any{
				"Rules": []any{
					map[string]any{
						"Id":     "archive-waf-logs",
						"Status": "Enabled",
						"Transitions": []any{
							map[string]any{
								"StorageClass":     "STANDARD_IA",
								"TransitionInDays": bucket.TransitionDays,
							},
						},
						"ExpirationInDays": bucket.ExpirationDays,
					},
				},
			},
		},
	}
}

func loggingResource(stack *entity.WafStack) ResourceDef {
	properties := map[string]any{
		"ResourceArn": getAtt(logicalWebACL, "Arn"),
		// The log group attribute ARN ends in :*, which PutLoggingConfiguration
		// rejects; split the wildcard off inside the template.
		"LogDestinationConfigs": []any{
			map[string]any{
				"Fn::Select": []any{
					0,
					map[string]any{
						"Fn::Split": []any{":*", getAtt(logicalLogGroup, "Arn")},
					},
				},
			},
		},
	}
	if stack.RedactAuthorization {
		properties["RedactedFields"] = []any{
			map[string]any{
				"SingleHeader": map[string]any{"Name": "authorization"},
			},
		}
	}

	return ResourceDef{
		Type:       "AWS::WAFv2::LoggingConfiguration",
		Properties: properties,
		DependsOn:  []string{logicalLogGroup},
	}
}

func getAtt(logicalID, attribute string) map[string]any {
	return map[string]any{"Fn::GetAtt": []string{logicalID, attribute}}
}

func ref(logicalID string) map[string]any {
	return map[string]any{"Ref": logicalID}
}
