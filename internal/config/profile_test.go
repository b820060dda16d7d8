package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/mkadit/ethqr"
)

const restaurantProfile = `
payloads:
  - merchant:
      name: Restaurant
      city: Dire Dawa
      category_code: "5812"
    schemes:
      - type: interbank
        guid: 581b314e-257f-41bf-bbdc-6384daa31d16
        bic: CBETETAA
        account: "10000171234567890"
    amount: "50.00"
    additional_data:
      bill_number: INV-001
      reference_label: ORDER-123
  - merchant:
      name: Coffee Shop
      city: Addis Ababa
      category_code: "5812"
    schemes:
      - type: visa
        account_info: "4111111111111111"
    convenience_fee:
      type: prompt
    transaction_context: TABLE-7
`

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile([]byte(restaurantProfile))
	require.NoError(t, err)
	require.Len(t, p.Payloads, 2)

	cfgs, err := p.Configs()
	require.NoError(t, err)
	require.Len(t, cfgs, 2)

	payload, err := ethqr.Assemble(cfgs[0])
	require.NoError(t, err)
	require.Equal(t, "00020101021228690032581b314e257f41bfbbdc6384daa31d160108CBETETAA021710000171234567890520458125303230540550.005802ET5910Restaurant6009Dire Dawa62240107INV-0010509ORDER-12363040CF2", payload)

	assert.Equal(t, ethqr.ConveniencePrompt, cfgs[1].ConvenienceFee.Kind)
	payload, err = ethqr.Assemble(cfgs[1])
	require.NoError(t, err)
	assert.Contains(t, payload, "550201")
	assert.Contains(t, payload, "8007TABLE-7")
}

func TestParseProfileErrors(t *testing.T) {
	_, err := ParseProfile([]byte("payloads: []"))
	require.Error(t, err)

	_, err = ParseProfile([]byte("payloads:\n  - merchant:\n      nam: typo\n"))
	require.Error(t, err)

	_, err = ParseProfile([]byte("payloads: ["))
	require.Error(t, err)
}

func TestSchemeSpec(t *testing.T) {
	s, err := SchemeSpec{Type: "Mastercard", AccountInfo: "55"}.Scheme()
	require.NoError(t, err)
	require.Equal(t, ethqr.NewMastercard("55"), s)

	s, err = SchemeSpec{Type: "unionpay", AccountInfo: "62"}.Scheme()
	require.NoError(t, err)
	require.Equal(t, ethqr.NewUnionPay("62"), s)

	_, err = SchemeSpec{Type: "amex"}.Scheme()
	require.ErrorIs(t, err, ethqr.ErrUnsupportedScheme)

	_, err = Payload{Schemes: []SchemeSpec{{Type: "amex"}}}.Config()
	require.ErrorIs(t, err, ethqr.ErrUnsupportedScheme)
}

func TestPayloadConvenienceFeeType(t *testing.T) {
	_, err := Payload{ConvenienceFee: &FeeSpec{Type: "bogus"}}.Config()
	require.ErrorIs(t, err, ethqr.ErrInvalidValue)

	cfg, err := Payload{ConvenienceFee: &FeeSpec{Type: "Percentage", Value: "10"}}.Config()
	require.NoError(t, err)
	require.Equal(t, ethqr.PercentageFee("10"), cfg.ConvenienceFee)
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(restaurantProfile), 0o600))
	p, err := LoadProfile(path)
	require.NoError(t, err)
	require.Equal(t, "Restaurant", p.Payloads[0].Merchant.Name)

	_, err = LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestServerFromEnv(t *testing.T) {
	t.Setenv(EnvListen, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvConcurrency, "")
	t.Setenv(EnvShutdownTimeout, "")

	cfg, err := ServerFromEnv(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	require.Equal(t, defaultServer(), cfg)

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("ETHQR_CONCURRENCY=8\nETHQR_SHUTDOWN_TIMEOUT=3s\n"), 0o600))
	t.Setenv(EnvListen, "127.0.0.1:9090")
	t.Setenv(EnvLogLevel, "debug")
	os.Unsetenv(EnvConcurrency)
	os.Unsetenv(EnvShutdownTimeout)

	cfg, err = ServerFromEnv(envFile)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Listen)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestServerFromEnvInvalid(t *testing.T) {
	t.Setenv(EnvConcurrency, "zero")
	_, err := ServerFromEnv("")
	require.Error(t, err)
}
