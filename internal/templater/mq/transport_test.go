package mq

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	responsepkg "github.com/geoirb/doc-templater/internal/response"
	"github.com/geoirb/doc-templater/internal/templater"
)

func TestDecodeRequest(t *testing.T) {
	message := []byte(`{
		"uuid": "u-1",
		"user_id": 7,
		"template": "BASIC_SPECIFICATION",
		"language": "ja",
		"payload": {"theme_no": "T-100"}
	}`)

	transport := NewFillInTransport(responsepkg.Build)
	req, err := transport.DecodeRequest(message)
	assert.NoError(t, err)
	assert.Equal(t, "u-1", req.UUID)
	assert.Equal(t, 7, req.UserID)
	assert.Equal(t, "BASIC_SPECIFICATION", req.Template)
	assert.Equal(t, "ja", req.Language)
	assert.Equal(t, "T-100", req.Payload["theme_no"])
}

func TestEncodeResponse(t *testing.T) {
	transport := NewFillInTransport(responsepkg.Build)

	message := transport.EncodeResponse(templater.Response{
		UUID:     "u-1",
		UserID:   7,
		FileName: "out.xlsx",
		FileURL:  "https://files/out.xlsx",
	}, nil)

	var decoded struct {
		IsOk    bool `json:"is_ok"`
		Payload struct {
			UUID     string `json:"uuid"`
			FileName string `json:"file_name"`
			FileURL  string `json:"file_url"`
		} `json:"payload"`
	}
	assert.NoError(t, json.Unmarshal(message, &decoded))
	assert.True(t, decoded.IsOk)
	assert.Equal(t, "u-1", decoded.Payload.UUID)
	assert.Equal(t, "out.xlsx", decoded.Payload.FileName)
	assert.Equal(t, "https://files/out.xlsx", decoded.Payload.FileURL)
}

func TestEncodeResponseError(t *testing.T) {
	transport := NewFillInTransport(responsepkg.Build)

	message := transport.EncodeResponse(templater.Response{UUID: "u-1"}, errors.New("template file not found"))

	var decoded struct {
		IsOk    bool        `json:"is_ok"`
		Payload interface{} `json:"payload"`
	}
	assert.NoError(t, json.Unmarshal(message, &decoded))
	assert.False(t, decoded.IsOk)
	assert.Equal(t, "template file not found", decoded.Payload)
}
