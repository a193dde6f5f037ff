package scanner

// Serialize encodes the scanner's full state into the byte buffer a host
// stores between Scan calls and hands back via Deserialize, mirroring the
// external-scanner ABI's serialize/deserialize pair (spec §4.4). The
// layout is a fixed seven-byte header followed by the context stack's
// tags and then each queued heredoc's fields in FIFO order.
func (s *Scanner) Serialize() []byte {
	buf := make([]byte, 7, 7+s.ctx.len()+s.heredocs.len()*8)
	buf[0] = s.globParenDepth
	buf[1] = boolByte(s.extInDoubleQuote)
	buf[2] = boolByte(s.extSawOutsideQuote)
	buf[3] = uint8(s.ctx.len())
	buf[4] = uint8(s.heredocs.len())
	buf[5] = boolByte(s.justReturnedVariableName)
	buf[6] = boolByte(s.justReturnedBareDollar)

	for _, c := range s.ctx.stack {
		buf = append(buf, byte(c))
	}

	for _, h := range s.heredocs.items {
		buf = append(buf, boolByte(h.IsRaw), boolByte(h.Started), boolByte(h.AllowsIndent))
		buf = appendUint32LE(buf, uint32(len(h.Delimiter)))
		buf = append(buf, h.Delimiter...)
	}

	return buf
}

// Deserialize restores state encoded by Serialize. Per spec §4.4, any
// buffer that is empty, truncated, or internally inconsistent is treated
// as "no prior state" rather than an error surfaced to the host: the
// scanner is Reset and the caller is not interrupted. DeserializeDiagnose
// exposes the underlying reason for tooling that wants it.
func (s *Scanner) Deserialize(buf []byte) {
	if err := s.deserialize(buf); err != nil {
		s.Reset()
	}
}

// DeserializeDiagnose behaves like Deserialize but returns the parse
// error instead of silently resetting (on error the scanner's state is
// left as it was), for serialization tests that want to assert *why* a
// buffer was rejected.
func (s *Scanner) DeserializeDiagnose(buf []byte) error {
	return s.deserialize(buf)
}

func (s *Scanner) deserialize(buf []byte) error {
	if len(buf) == 0 {
		s.Reset()
		return nil
	}
	if len(buf) < 7 {
		return &DeserializeError{Offset: len(buf), Reason: "buffer shorter than header"}
	}

	globParenDepth := buf[0]
	extInDoubleQuote := buf[1] != 0
	extSawOutsideQuote := buf[2] != 0
	ctxLen := int(buf[3])
	heredocLen := int(buf[4])
	justVar := buf[5] != 0
	justDollar := buf[6] != 0

	off := 7
	if off+ctxLen > len(buf) {
		return &DeserializeError{Offset: off, Reason: "context stack truncated"}
	}
	ctx := make([]Context, ctxLen)
	for i := 0; i < ctxLen; i++ {
		ctx[i] = Context(buf[off+i])
	}
	off += ctxLen

	heredocs := make([]*Heredoc, heredocLen)
	for i := 0; i < heredocLen; i++ {
		if off+3+4 > len(buf) {
			return &DeserializeError{Offset: off, Reason: "heredoc record truncated"}
		}
		isRaw := buf[off] != 0
		started := buf[off+1] != 0
		allowsIndent := buf[off+2] != 0
		off += 3
		dlen := int(readUint32LE(buf[off:]))
		off += 4
		if off+dlen > len(buf) {
			return &DeserializeError{Offset: off, Reason: "heredoc delimiter truncated"}
		}
		delim := append([]byte(nil), buf[off:off+dlen]...)
		off += dlen
		heredocs[i] = &Heredoc{IsRaw: isRaw, Started: started, AllowsIndent: allowsIndent, Delimiter: delim}
	}

	if off != len(buf) {
		return &DeserializeError{Offset: off, Reason: "trailing bytes after last heredoc record"}
	}

	s.globParenDepth = globParenDepth
	s.extInDoubleQuote = extInDoubleQuote
	s.extSawOutsideQuote = extSawOutsideQuote
	s.justReturnedVariableName = justVar
	s.justReturnedBareDollar = justDollar
	s.ctx = contextStack{stack: ctx}
	s.heredocs = heredocQueue{items: heredocs}
	return nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func appendUint32LE(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func readUint32LE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
