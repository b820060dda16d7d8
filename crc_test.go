package ethqr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const emvcoSample = "000201010212020140001234567890120415534512345678901252045999530358654041.005802CN5914BEST TRANSPORT6009GUANGZHOU6304"

func TestComputeCRC(t *testing.T) {
	require.Equal(t, "A9AD", ComputeCRC(emvcoSample))
	require.EqualValues(t, 0xA9AD, CRC16([]byte(emvcoSample)))
	// CRC-16/CCITT-FALSE check value.
	require.EqualValues(t, 0x29B1, CRC16([]byte("123456789")))
	require.Equal(t, "FFFF", ComputeCRC(""))
}

func TestCRCTable(t *testing.T) {
	assert.EqualValues(t, 0x0000, crc16Table[0])
	assert.EqualValues(t, 0x1021, crc16Table[1])
	assert.EqualValues(t, 0x2042, crc16Table[2])
	assert.EqualValues(t, 0x1EF0, crc16Table[255])
}

func TestVerifyCRC(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.True(t, VerifyCRC(emvcoSample+"A9AD"))
	})

	t.Run("lowercase checksum", func(t *testing.T) {
		require.True(t, VerifyCRC(emvcoSample+"a9ad"))
	})

	t.Run("wrong checksum", func(t *testing.T) {
		require.False(t, VerifyCRC(emvcoSample+"A9AE"))
		require.ErrorIs(t, ValidatePayload(emvcoSample+"A9AE"), ErrInvalidCRC)
	})

	t.Run("short and malformed input", func(t *testing.T) {
		for _, in := range []string{"", "1234567", "12345678901234567890"} {
			assert.False(t, VerifyCRC(in), "input %q", in)
			assert.ErrorIs(t, ValidatePayload(in), ErrInvalidFormat, "input %q", in)
		}
	})

	t.Run("bare trailer", func(t *testing.T) {
		require.True(t, VerifyCRC("6304"+ComputeCRC("6304")))
	})
}

func TestVerifyCRCDetectsSingleCharacterChanges(t *testing.T) {
	payload := emvcoSample + "A9AD"
	for i := 0; i < len(payload); i++ {
		replacement := byte('0')
		if payload[i] == '0' {
			replacement = '1'
		}
		tampered := payload[:i] + string(replacement) + payload[i+1:]
		assert.False(t, VerifyCRC(tampered), "position %d", i)
	}
	require.True(t, strings.HasSuffix(payload, "6304A9AD"))
}
