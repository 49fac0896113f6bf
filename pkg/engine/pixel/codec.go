// Package pixel holds the packed pixel formats used between the map data
// store and the display backend.
//
// Canonical order packs a pixel as 0xAARRGGBB (alpha, red, green, blue from
// most to least significant byte). Backend order packs it as 0xAABBGGRR, which
// laid out little-endian in memory is the R, G, B, A byte sequence the display
// backend uploads directly.
package pixel

// Channel masks for a packed 32-bit pixel
const (
	alphaMask = 0xFF000000
	greenMask = 0x0000FF00
	highMask  = 0x00FF0000
	lowMask   = 0x000000FF
)

// ToBackendOrder converts a canonical 0xAARRGGBB pixel to backend 0xAABBGGRR.
// Red and blue trade places; alpha and green are untouched.
func ToBackendOrder(p uint32) uint32 {
	return swapRedBlue(p)
}

// ToCanonicalOrder converts a backend 0xAABBGGRR pixel to canonical 0xAARRGGBB.
func ToCanonicalOrder(p uint32) uint32 {
	return swapRedBlue(p)
}

func swapRedBlue(p uint32) uint32 {
	return p&(alphaMask|greenMask) | (p&highMask)>>16 | (p&lowMask)<<16
}

// Alpha returns the alpha byte of a packed pixel (same position in both orders)
func Alpha(p uint32) uint8 {
	return uint8(p >> 24)
}

// ARGB packs channels into a canonical pixel
func ARGB(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Channels unpacks a canonical pixel
func Channels(p uint32) (a, r, g, b uint8) {
	return uint8(p >> 24), uint8(p >> 16), uint8(p >> 8), uint8(p)
}

// PremultiplyRGBA writes src, backend-order R,G,B,A bytes with straight alpha,
// into dst with each color channel scaled by alpha. dst is grown as needed and
// returned.
func PremultiplyRGBA(dst, src []byte) []byte {
	if cap(dst) < len(src) {
		dst = make([]byte, len(src))
	}
	dst = dst[:len(src)]
	for i := 0; i+3 < len(src); i += 4 {
		a := uint32(src[i+3])
		switch a {
		case 0xFF:
			copy(dst[i:i+4], src[i:i+4])
		case 0:
			dst[i], dst[i+1], dst[i+2], dst[i+3] = 0, 0, 0, 0
		default:
			dst[i] = byte((uint32(src[i])*a + 127) / 255)
			dst[i+1] = byte((uint32(src[i+1])*a + 127) / 255)
			dst[i+2] = byte((uint32(src[i+2])*a + 127) / 255)
			dst[i+3] = byte(a)
		}
	}
	return dst
}
