package ethqr

import "strings"

// crc16Table is the CRC-16/CCITT lookup table for polynomial 0x1021.
// It is built once at package init and never written afterwards.
var crc16Table = func() [256]uint16 {
	var table [256]uint16
	for i := 0; i < 256; i++ {
		crc := uint16(i) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ 0x1021
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
	return table
}()

// CRC16 computes the CRC-16/CCITT-FALSE checksum (seed 0xFFFF) of data.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc = (crc << 8) ^ crc16Table[byte(crc>>8)^b]
	}
	return crc
}

func crc16String(s string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(s); i++ {
		crc = (crc << 8) ^ crc16Table[byte(crc>>8)^s[i]]
	}
	return crc
}

// ComputeCRC returns the checksum of data as four uppercase hex digits.
func ComputeCRC(data string) string {
	var out [4]byte
	encodeHex16Upper(out[:], crc16String(data))
	return string(out[:])
}

// VerifyCRC reports whether payload ends in a well-formed "6304XXXX" trailer
// whose checksum matches everything before XXXX. It never panics; short or
// malformed input is simply reported as invalid.
func VerifyCRC(payload string) bool {
	return ValidatePayload(payload) == nil
}

// ValidatePayload is VerifyCRC with a reason: ErrInvalidFormat when the CRC
// trailer is missing or truncated, ErrInvalidCRC when the checksum differs.
func ValidatePayload(payload string) error {
	if len(payload) < 8 {
		return ErrInvalidFormat
	}
	start := len(payload) - 8
	if payload[start:start+4] != crcHeader {
		return ErrInvalidFormat
	}
	if !strings.EqualFold(payload[start+4:], ComputeCRC(payload[:start+4])) {
		return ErrInvalidCRC
	}
	return nil
}
