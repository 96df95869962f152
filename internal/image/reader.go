package image

import "bytes"

func bytesReader(data []byte) *bytes.Reader {
	return bytes.NewReader(data)
}

// Format sniffs the image container from magic bytes, defaulting to png.
// The extension picks the content-type of embedded document parts.
func Format(data []byte) string {
	switch {
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return "jpeg"
	case len(data) >= 6 && bytes.HasPrefix(data, []byte("GIF8")):
		return "gif"
	default:
		return "png"
	}
}
