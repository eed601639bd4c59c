package jpeg

import (
	"bufio"
	"io"
)

// byteReader wraps the caller-supplied stream in a bufio.Reader, which
// also provides one byte of lookahead (peekByte). Grounded on the
// teacher's jpeg.go, which keeps a flat []byte plus a running jpg.offset;
// here the source is an io.Reader instead of a fully buffered slice.
type byteReader struct {
	r    *bufio.Reader
	nRead uint64
}

func newByteReader(r io.Reader) *byteReader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, 32*1024)
	}
	return &byteReader{r: br}
}

func (b *byteReader) readByte(op string) (byte, error) {
	c, err := b.r.ReadByte()
	if err != nil {
		return 0, wrapErr(ExhaustedData, op, "unexpected end of stream", err)
	}
	b.nRead++
	return c, nil
}

func (b *byteReader) readU16BE(op string) (uint16, error) {
	hi, err := b.readByte(op)
	if err != nil {
		return 0, err
	}
	lo, err := b.readByte(op)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// skip discards n bytes, the way APPn/COM payloads are dropped after their
// length field has been consumed.
func (b *byteReader) skip(op string, n int) error {
	for i := 0; i < n; i++ {
		if _, err := b.readByte(op); err != nil {
			return err
		}
	}
	return nil
}

func (b *byteReader) peekByte() (byte, error) {
	buf, err := b.r.Peek(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}
