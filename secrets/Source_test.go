package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/99designs/keyring"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/reaandrew/boostfindings/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	name  string
	value string
	err   error
}

func (s staticSource) Name() string {
	return s.name
}

func (s staticSource) Lookup(ctx context.Context) (string, error) {
	return s.value, s.err
}

type MockSsmClient struct {
	value     *string
	err       error
	requested []string
}

func (m *MockSsmClient) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	m.requested = append(m.requested, aws.ToString(params.Name))
	if m.err != nil {
		return nil, m.err
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: m.value}}, nil
}

func TestEnvSource(t *testing.T) {
	t.Setenv("BOOST_TEST_KEY", "secret-value")

	key, err := EnvSource{Variable: "BOOST_TEST_KEY"}.Lookup(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "secret-value", key)

	_, err = EnvSource{Variable: "BOOST_TEST_KEY_MISSING"}.Lookup(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChain_FirstFoundWins(t *testing.T) {
	chain := Chain{
		staticSource{name: "empty", err: ErrNotFound},
		staticSource{name: "second", value: "two"},
		staticSource{name: "third", value: "three"},
	}

	key, err := chain.Lookup(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "two", key)
}

func TestChain_MissingKeyFailsFast(t *testing.T) {
	chain := Chain{staticSource{name: "empty", err: ErrNotFound}}

	_, err := chain.Lookup(context.Background())
	assert.ErrorIs(t, err, core.ErrMissingApiKey)
}

func TestChain_SourceErrorIsReturned(t *testing.T) {
	boom := errors.New("boom")
	chain := Chain{
		staticSource{name: "broken", err: boom},
		staticSource{name: "never", value: "unused"},
	}

	_, err := chain.Lookup(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSsmSource(t *testing.T) {
	client := &MockSsmClient{value: aws.String("from-ssm")}
	source := SsmSource{ParameterName: "/boost/api-key", Client: client}

	key, err := source.Lookup(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "from-ssm", key)
	assert.Equal(t, []string{"/boost/api-key"}, client.requested)
}

func TestSsmSource_NotFound(t *testing.T) {
	client := &MockSsmClient{err: &types.ParameterNotFound{}}
	_, err := SsmSource{ParameterName: "/boost/missing", Client: client}.Lookup(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = SsmSource{Client: client}.Lookup(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKeyringSource(t *testing.T) {
	ring := keyring.NewArrayKeyring(nil)

	_, err := KeyringSource{Ring: ring}.Lookup(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, StoreApiKey(ring, "from-keyring"))
	key, err := KeyringSource{Ring: ring}.Lookup(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "from-keyring", key)

	assert.Error(t, StoreApiKey(ring, ""))
}
