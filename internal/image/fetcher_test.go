package image

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestFetch(t *testing.T) {
	payload := pngBytes(t, 4, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Write(payload)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f := NewFetcher(2*time.Second, log.NewNopLogger())

	data, ok := f.Fetch(context.Background(), srv.URL+"/ok.png")
	assert.True(t, ok)
	assert.Equal(t, payload, data)

	_, ok = f.Fetch(context.Background(), srv.URL+"/missing.png")
	assert.False(t, ok)

	_, ok = f.Fetch(context.Background(), "http://127.0.0.1:1/unreachable.png")
	assert.False(t, ok)
}

func TestFitToWidth(t *testing.T) {
	// 192x96 px at 96 DPI is 5.08x2.54 cm; fitted to 10 cm wide it keeps
	// the 2:1 aspect ratio.
	data := pngBytes(t, 192, 96)
	w, h, ok := FitToWidth(data, 10)
	assert.True(t, ok)
	assert.InDelta(t, 10.0, w, 1e-9)
	assert.InDelta(t, 5.0, h, 1e-9)

	_, _, ok = FitToWidth([]byte("not an image"), 10)
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "png", Format(pngBytes(t, 1, 1)))
	assert.Equal(t, "jpeg", Format([]byte{0xFF, 0xD8, 0xFF, 0xE0}))
	assert.Equal(t, "gif", Format([]byte("GIF89a")))
}
