package a2s

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// infoRequest is the A2S_INFO request datagram.
var infoRequest = []byte("\xff\xff\xff\xffTSource Engine Query\x00")

// infoResponseHeader prefixes every A2S_INFO response.
var infoResponseHeader = []byte{0xff, 0xff, 0xff, 0xff, 0x49}

// Decode parses an A2S_INFO response datagram.
// All failures wrap ErrProtocol.
func Decode(data []byte) (*Info, error) {
	if !bytes.HasPrefix(data, infoResponseHeader) {
		return nil, fmt.Errorf("%w: invalid response header", ErrProtocol)
	}
	r := &reader{buf: data, pos: len(infoResponseHeader)}

	info := &Info{}
	info.ProtocolVersion = r.readByte()
	info.Name = r.readString()
	info.Map = r.readString()
	info.Folder = r.readString()
	info.Game = r.readString()
	info.GameID = r.readUint16()
	info.Players = r.readByte()
	info.MaxPlayers = r.readByte()
	info.Bots = r.readByte()
	info.ServerType = ServerType(r.readByte())
	info.Platform = Platform(r.readByte())
	// 0 означает публичный сервер (в протоколе это флаг visibility)
	info.Public = r.readByte() == 0
	info.VAC = r.readByte() == 1

	if r.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProtocol, r.err)
	}

	if info.Platform == platformMacLegacy {
		info.Platform = PlatformMac
	}
	if !info.ServerType.Valid() {
		return nil, fmt.Errorf("%w: invalid server type %#x", ErrProtocol, byte(info.ServerType))
	}
	if !info.Platform.Valid() {
		return nil, fmt.Errorf("%w: invalid platform %#x", ErrProtocol, byte(info.Platform))
	}

	return info, nil
}

// reader is a sticky-error cursor over a response datagram.
type reader struct {
	err error
	buf []byte
	pos int
}

func (r *reader) readByte() byte {
	if r.err != nil {
		return 0
	}
	if r.pos >= len(r.buf) {
		r.err = fmt.Errorf("short read at offset %d", r.pos)
		return 0
	}
	b := r.buf[r.pos]
	r.pos++
	return b
}

func (r *reader) readUint16() uint16 {
	if r.err != nil {
		return 0
	}
	if r.pos+2 > len(r.buf) {
		r.err = fmt.Errorf("short read at offset %d", r.pos)
		return 0
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v
}

func (r *reader) readString() string {
	if r.err != nil {
		return ""
	}
	end := bytes.IndexByte(r.buf[r.pos:], 0x00)
	if end < 0 {
		r.err = fmt.Errorf("unterminated string at offset %d", r.pos)
		return ""
	}
	raw := r.buf[r.pos : r.pos+end]
	if !utf8.Valid(raw) {
		r.err = fmt.Errorf("invalid utf-8 string at offset %d", r.pos)
		return ""
	}
	r.pos += end + 1
	return string(raw)
}
