package sui

import (
	"bytes"
	"encoding/binary"
)

// bcsWriter writes Binary Canonical Serialization: little-endian fixed width
// integers, ULEB128 lengths and enum tags, no padding.
type bcsWriter struct {
	buf bytes.Buffer
}

func (w *bcsWriter) Bytes() []byte {
	return w.buf.Bytes()
}

func (w *bcsWriter) u8(v uint8) {
	w.buf.WriteByte(v)
}

func (w *bcsWriter) bool(v bool) {
	if v {
		w.u8(1)
		return
	}
	w.u8(0)
}

func (w *bcsWriter) u16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *bcsWriter) u64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *bcsWriter) uleb128(v uint64) {
	for v >= 0x80 {
		w.buf.WriteByte(byte(v) | 0x80)
		v >>= 7
	}
	w.buf.WriteByte(byte(v))
}

// variant writes an enum tag.
func (w *bcsWriter) variant(tag uint32) {
	w.uleb128(uint64(tag))
}

// length writes a sequence length prefix.
func (w *bcsWriter) length(n int) {
	w.uleb128(uint64(n))
}

// fixed writes bytes with no length prefix, as for [u8; N].
func (w *bcsWriter) fixed(b []byte) {
	w.buf.Write(b)
}

// bytes writes a vector<u8>.
func (w *bcsWriter) bytes(b []byte) {
	w.length(len(b))
	w.buf.Write(b)
}

func (w *bcsWriter) str(s string) {
	w.bytes([]byte(s))
}
