package ethqr

const hexTableUpper = "0123456789ABCDEF"

// encodeHex16Upper writes v as four uppercase hex digits into dst.
func encodeHex16Upper(dst []byte, v uint16) {
	dst[0] = hexTableUpper[v>>12]
	dst[1] = hexTableUpper[(v>>8)&0x0f]
	dst[2] = hexTableUpper[(v>>4)&0x0f]
	dst[3] = hexTableUpper[v&0x0f]
}

// appendLen2 appends n as two zero-padded decimal digits. Values above 99
// are written in full, matching %02d.
func appendLen2(dst []byte, n int) []byte {
	if n >= 0 && n < 100 {
		return append(dst, byte('0'+n/10), byte('0'+n%10))
	}
	return appendInt(dst, n)
}

func appendInt(dst []byte, n int) []byte {
	if n < 0 {
		dst = append(dst, '-')
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	return append(dst, buf[i:]...)
}

func isASCIIDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isASCIIAlnum(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// mask keeps the last four bytes of an account reference.
func mask(s string) string {
	if len(s) <= 4 {
		return s
	}
	b := make([]byte, len(s))
	for i := range b[:len(s)-4] {
		b[i] = '*'
	}
	copy(b[len(s)-4:], s[len(s)-4:])
	return string(b)
}
