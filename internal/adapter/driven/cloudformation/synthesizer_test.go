package cloudformation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mykematt/tmb12-waf-test/internal/domain/entity"
	"github.com/Mykematt/tmb12-waf-test/internal/shared/types"
)

func synthStack() *entity.WafStack {
	return entity.NewWafStack(entity.StackParams{
		Environment:       "test",
		AccountID:         "123456789012",
		GraphqlApiArn:     "arn:aws:appsync:us-east-1:123456789012:apis/abcdef123456",
		GeoBlockCountries: []string{"CN"},
	})
}

func synthesizeToTemplate(t *testing.T, stack *entity.WafStack) Template {
	t.Helper()
	out, err := NewSynthesizer().Synthesize(stack, "json")
	require.NoError(t, err)

	var template Template
	require.NoError(t, json.Unmarshal(out, &template))
	return template
}

func TestSynthesizeResources(t *testing.T) {
	template := synthesizeToTemplate(t, synthStack())

	assert.Equal(t, "2010-09-09", template.AWSTemplateFormatVersion)
	require.Len(t, template.Resources, 5)
	assert.Equal(t, "AWS::WAFv2::WebACL", template.Resources["WafWebAcl"].Type)
	assert.Equal(t, "AWS::Logs::LogGroup", template.Resources["WafLogGroup"].Type)
	assert.Equal(t, "AWS::S3::Bucket", template.Resources["WafLogArchiveBucket"].Type)
	assert.Equal(t, "AWS::WAFv2::LoggingConfiguration", template.Resources["WafLoggingConfiguration"].Type)
	assert.Equal(t, "AWS::WAFv2::WebACLAssociation", template.Resources["WafWebAclAssociation"].Type)

	logGroup := template.Resources["WafLogGroup"].Properties
	assert.Equal(t, "aws-waf-logs-tmb12-test", logGroup["LogGroupName"])
}

func TestSynthesizeWithoutAssociation(t *testing.T) {
	stack := synthStack()
	stack.GraphqlApiArn = ""

	template := synthesizeToTemplate(t, stack)
	require.Len(t, template.Resources, 4)
	assert.NotContains(t, template.Resources, "WafWebAclAssociation")
}

func TestSynthesizeLoggingStripsWildcard(t *testing.T) {
	template := synthesizeToTemplate(t, synthStack())

	logging := template.Resources["WafLoggingConfiguration"]
	assert.Equal(t, []string{"WafLogGroup"}, logging.DependsOn)

	// O destino tem que passar por Fn::Split para remover o sufixo :* do
	// ARN que o GetAtt do log group devolve.
	raw, err := json.Marshal(logging.Properties["LogDestinationConfigs"])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"Fn::Split":[":*"`)
	assert.Contains(t, string(raw), `"Fn::Select"`)
}

func TestSynthesizeWebACLRules(t *testing.T) {
	template := synthesizeToTemplate(t, synthStack())

	props := template.Resources["WafWebAcl"].Properties
	rules, ok := props["Rules"].([]any)
	require.True(t, ok)
	require.Len(t, rules, 3)

	managed := rules[0].(map[string]any)
	assert.Contains(t, managed, "OverrideAction")
	assert.NotContains(t, managed, "Action")

	rate := rules[2].(map[string]any)
	assert.Contains(t, rate, "Action")
	statement := rate["Statement"].(map[string]any)
	assert.Contains(t, statement, "RateBasedStatement")
}

func TestSynthesizeBucketLifecycle(t *testing.T) {
	template := synthesizeToTemplate(t, synthStack())

	props := template.Resources["WafLogArchiveBucket"].Properties
	raw, err := json.Marshal(props["LifecycleConfiguration"])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"StorageClass":"STANDARD_IA"`)
	assert.Contains(t, string(raw), `"TransitionInDays":30`)
	assert.Contains(t, string(raw), `"ExpirationInDays":365`)
}

func TestSynthesizeYAML(t *testing.T) {
	out, err := NewSynthesizer().Synthesize(synthStack(), "yaml")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(out), "AWS::WAFv2::WebACL"))
	assert.True(t, strings.Contains(string(out), "aws-waf-logs-tmb12-test"))
}

func TestSynthesizeUnsupportedFormat(t *testing.T) {
	_, err := NewSynthesizer().Synthesize(synthStack(), "toml")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}
