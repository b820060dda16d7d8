package ethqr

import "sync"

// Scratch buffers sized for a full payload. Only the backing arrays are
// pooled; every caller copies its result out with string().
var payloadBufPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, MaxPayloadLength)
		return &buf
	},
}

// withPayloadBuf runs fill on an empty pooled buffer and returns what it
// wrote as a string. Buffers that grew past twice the payload limit are
// dropped rather than returned to the pool.
func withPayloadBuf(fill func(buf []byte) ([]byte, error)) (string, error) {
	bp := payloadBufPool.Get().(*[]byte)
	buf, err := fill((*bp)[:0])
	if err != nil {
		payloadBufPool.Put(bp)
		return "", err
	}
	out := string(buf)
	if cap(buf) <= 2*MaxPayloadLength {
		*bp = buf[:0]
		payloadBufPool.Put(bp)
	}
	return out, nil
}
