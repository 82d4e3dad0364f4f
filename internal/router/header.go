package router

import "unsafe"

// HeaderSize is the fixed size of BlockHeader in bytes: 8 for owner,
// 8 for totalSize, no padding. Also the natural alignment floor for
// every size class, since every class size is itself a multiple of
// HeaderSize.
const HeaderSize = unsafe.Sizeof(BlockHeader{})

// BlockHeader is the fixed-size record prepended to every payload
// returned to a client. Bit-exact layout per §6: bytes 0..7 are owner
// (zero means the system-fallback sentinel), bytes 8..15 are
// totalSize (header + payload), native endianness, no padding.
type BlockHeader struct {
	owner     unsafe.Pointer // owning *pool.Pool, or nil for the fallback sentinel
	totalSize uint64
}

func init() {
	if HeaderSize != 16 {
		panic("router: BlockHeader must be exactly 16 bytes on 64-bit targets")
	}
}

// headerAt interprets the HeaderSize bytes starting at block as a
// BlockHeader.
func headerAt(block unsafe.Pointer) *BlockHeader {
	return (*BlockHeader)(block)
}

// payloadOf returns the payload address for a stamped header: the
// header plus HeaderSize bytes.
func payloadOf(h *BlockHeader) unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(h), HeaderSize)
}

// headerOf reverses payloadOf: the header sits HeaderSize bytes before
// the payload.
func headerOf(payload unsafe.Pointer) *BlockHeader {
	return (*BlockHeader)(unsafe.Add(payload, -int(HeaderSize)))
}
