package templater

import (
	"context"
	"strings"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/geoirb/doc-templater/internal/path"
	"github.com/geoirb/doc-templater/internal/placeholder"
)

type locator interface {
	Template(template, language string) (string, error)
}

type parser interface {
	Format(filename string) (string, error)
}

type filler interface {
	Fill(ctx context.Context, template, templatePath string, params map[string]interface{}) ([]byte, error)
}

type storage interface {
	Save(ctx context.Context, name string, data []byte, project, version string) (string, error)
}

type service struct {
	locator locator
	parser  parser
	filler  filler
	storage storage

	nowFunc func() time.Time

	logger log.Logger
}

// NewService ...
func NewService(
	locator locator,
	parser parser,
	filler filler,
	storage storage,

	logger log.Logger,
) Service {
	return &service{
		locator: locator,
		parser:  parser,
		filler:  filler,
		storage: storage,
		nowFunc: time.Now,
		logger:  logger,
	}
}

// FillIn fills template by req and publishes the result.
func (s *service) FillIn(ctx context.Context, req Request) (res Response, err error) {
	logger := log.WithPrefix(s.logger, "method", "FillIn", "uuid", req.UUID)

	if req.Template == "" {
		level.Error(logger).Log("msg", "empty template")
		err = errEmptyTemplate
		return
	}

	templatePath, err := s.locator.Template(req.Template, req.Language)
	if err != nil {
		level.Error(logger).Log("msg", "resolve template", "template", req.Template, "err", err)
		return
	}

	format, err := s.parser.Format(templatePath)
	if err != nil {
		level.Error(logger).Log("msg", "template format", "path", templatePath, "err", err)
		return
	}

	res = Response{
		UUID:   req.UUID,
		UserID: req.UserID,
	}

	if res.Document, err = s.filler.Fill(ctx, req.Template, templatePath, req.Payload); err != nil {
		level.Error(logger).Log("msg", "fill in template", "template", req.Template, "err", err)
		return
	}

	res.FileName = path.OutputName(req.Template, path.Language(templatePath), format, req.Payload, s.nowFunc())
	if res.FileURL, err = s.storage.Save(
		ctx,
		res.FileName,
		res.Document,
		payloadString(req.Payload, "project_name", "project_id"),
		payloadString(req.Payload, "version", "ver"),
	); err != nil {
		level.Error(logger).Log("msg", "store result", "file", res.FileName, "err", err)
	}
	return
}

func payloadString(payload map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if value, ok := payload[key]; ok {
			if s := strings.TrimSpace(placeholder.Stringify(value)); s != "" {
				return s
			}
		}
	}
	return ""
}
