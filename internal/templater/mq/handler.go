package mq

import (
	"context"

	"github.com/geoirb/doc-templater/internal/kafka"
	"github.com/geoirb/doc-templater/internal/templater"
)

type fillInServe struct {
	svc       templater.Service
	transport *FillInTransport
	publish   kafka.Publish
}

func (s *fillInServe) Handle(ctx context.Context, message []byte) {
	request, err := s.transport.DecodeRequest(message)

	var res templater.Response
	if err == nil {
		res, err = s.svc.FillIn(ctx, request)
	}

	s.publish(s.transport.EncodeResponse(res, err))
}

// NewFillInHandler ...
func NewFillInHandler(
	svc templater.Service,
	transport *FillInTransport,
	publish kafka.Publish,
) kafka.Handler {
	s := &fillInServe{
		svc:       svc,
		transport: transport,
		publish:   publish,
	}

	return s.Handle
}
