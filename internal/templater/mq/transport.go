package mq

import (
	"encoding/json"

	"github.com/geoirb/doc-templater/internal/templater"
)

type builder func(payload interface{}, err error) ([]byte, error)

// FillInTransport ...
type FillInTransport struct {
	builder builder
}

// NewFillInTransport ...
func NewFillInTransport(
	builder builder,
) *FillInTransport {
	return &FillInTransport{
		builder: builder,
	}
}

// DecodeRequest ...
func (t *FillInTransport) DecodeRequest(message []byte) (templater.Request, error) {
	var req request
	err := json.Unmarshal(message, &req)
	return templater.Request(req), err
}

// EncodeResponse ...
func (t *FillInTransport) EncodeResponse(res templater.Response, err error) (message []byte) {
	message, _ = t.builder(response{
		UUID:     res.UUID,
		UserID:   res.UserID,
		FileName: res.FileName,
		FileURL:  res.FileURL,
		Document: res.Document,
	}, err)
	return
}
