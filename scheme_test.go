package ethqr

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testGUID    = "581b314e257f41bfbbdc6384daa31d16"
	testBIC     = "CBETETAA"
	testAccount = "10000171234567890"
)

func TestEncodeCardSchemes(t *testing.T) {
	tests := []struct {
		scheme Scheme
		want   string
	}{
		{NewVisa("4111111111111111"), "02164111111111111111"},
		{NewMastercard("5500000000000004"), "04165500000000000004"},
		{NewUnionPay("6200000000000005"), "15166200000000000005"},
		{&Visa{AccountInfo: "41"}, "020241"},
	}
	for _, tc := range tests {
		tag, err := EncodeScheme(tc.scheme)
		require.NoError(t, err)
		assert.Equal(t, tc.scheme.TagID(), tag.ID)
		assert.Equal(t, tc.want, tag.Encode())
	}
}

func TestEncodeInterbank(t *testing.T) {
	tag, err := EncodeScheme(NewInterbank(testGUID, testBIC, testAccount))
	require.NoError(t, err)
	require.Equal(t, TagInterbank, tag.ID)
	require.Equal(t, "28690032581b314e257f41bfbbdc6384daa31d160108CBETETAA021710000171234567890", tag.Encode())

	tag, err = EncodeScheme(NewInterbank(testGUID, "CBETETAAXXX", ""))
	require.NoError(t, err)
	require.Equal(t, "0032"+testGUID+"0111CBETETAAXXX0200", tag.Value)
}

func TestEncodeInterbankValidation(t *testing.T) {
	tests := []struct {
		name  string
		ib    Interbank
		field string
	}{
		{"guid 31", NewInterbank(testGUID[:31], testBIC, testAccount), "guid"},
		{"guid 33", NewInterbank(testGUID+"a", testBIC, testAccount), "guid"},
		{"guid hyphen", NewInterbank("581b314e-257f-41bf-bbdc-6384daa31", testBIC, testAccount), "guid"},
		{"guid hyphen 32", NewInterbank("581b314e-257f41bfbbdc6384daa31d1", testBIC, testAccount), "guid"},
		{"bic 9", NewInterbank(testGUID, "CBETETAAX", testAccount), "bic"},
		{"bic 7", NewInterbank(testGUID, "CBETETA", testAccount), "bic"},
		{"account 25", NewInterbank(testGUID, testBIC, strings.Repeat("1", 25)), "account"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EncodeScheme(tc.ib)
			require.ErrorIs(t, err, ErrInvalidValue)
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.field, fe.Field)
		})
	}

	_, err := EncodeScheme(NewInterbank(testGUID, testBIC, strings.Repeat("1", 24)))
	require.NoError(t, err)
}

func TestEncodeUnsupportedScheme(t *testing.T) {
	_, err := EncodeScheme(nil)
	require.ErrorIs(t, err, ErrUnsupportedScheme)

	var nilVisa *Visa
	_, err = EncodeScheme(nilVisa)
	require.ErrorIs(t, err, ErrUnsupportedScheme)
}

func TestInterbankFromUUID(t *testing.T) {
	id := uuid.MustParse("581b314e-257f-41bf-bbdc-6384daa31d16")
	ib := NewInterbankFromUUID(id, testBIC, testAccount)
	require.Equal(t, testGUID, ib.GUID)
	require.NoError(t, ib.Validate())
}

func TestNormalizeGUID(t *testing.T) {
	assert.Equal(t, testGUID, NormalizeGUID(testGUID))
	assert.Equal(t, testGUID, NormalizeGUID("581b314e-257f-41bf-bbdc-6384daa31d16"))
	assert.Equal(t, testGUID, NormalizeGUID("{581b314e-257f-41bf-bbdc-6384daa31d16}"))
	assert.Equal(t, "not-a-guid", NormalizeGUID("not-a-guid"))

	upper := strings.ToUpper(testGUID)
	assert.Equal(t, upper, NormalizeGUID("581B314E-257F-41BF-BBDC-6384DAA31D16"))
	assert.Equal(t, upper, NormalizeGUID("urn:uuid:581B314E-257F-41BF-BBDC-6384DAA31D16"))
	assert.Equal(t, upper, NormalizeGUID(upper))
}
