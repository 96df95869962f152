package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"

	"github.com/geoirb/doc-templater/internal/filler"
	"github.com/geoirb/doc-templater/internal/image"
	"github.com/geoirb/doc-templater/internal/kafka"
	"github.com/geoirb/doc-templater/internal/parser"
	"github.com/geoirb/doc-templater/internal/path"
	"github.com/geoirb/doc-templater/internal/placeholder"
	"github.com/geoirb/doc-templater/internal/qrcode"
	"github.com/geoirb/doc-templater/internal/response"
	"github.com/geoirb/doc-templater/internal/storage"
	"github.com/geoirb/doc-templater/internal/templater"
	"github.com/geoirb/doc-templater/internal/templater/mq"
	"github.com/geoirb/doc-templater/internal/xlsx"
)

type configuration struct {
	MQHost string `envconfig:"MQ_HOST" default:"localhost"`
	MQPort int    `envconfig:"MQ_PORT" default:"9093"`

	TmpDir      string `envconfig:"TMP_DIR" default:"/tmp"`
	TemplateDir string `envconfig:"TEMPLATE_DIR" default:"/template"`

	FillInTopicRequest  string `envconfig:"FILL_IN_TOPIC_REQUEST" default:"request"`
	FillInTopicResponse string `envconfig:"FILL_IN_TOPIC_RESPONSE" default:"response"`

	ImageTimeout time.Duration `envconfig:"IMAGE_TIMEOUT" default:"15s"`

	StorageType string `envconfig:"STORAGE_TYPE" default:"minio"`
	StorageDir  string `envconfig:"STORAGE_DIR" default:"/storage"`

	MinioEndpoint  string `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	MinioAccessKey string `envconfig:"MINIO_ACCESS_KEY" default:""`
	MinioSecretKey string `envconfig:"MINIO_SECRET_KEY" default:""`
	MinioBucket    string `envconfig:"MINIO_BUCKET" default:"documents"`
	MinioSecure    bool   `envconfig:"MINIO_SECURE" default:"false"`
}

const (
	prefixCfg   = ""
	serviceName = "doc-templater"
)

func main() {
	logger := log.NewJSONLogger(log.NewSyncWriter(os.Stdout))
	logger = log.WithPrefix(logger, "service", serviceName)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	var cfg configuration
	if err := envconfig.Process(prefixCfg, &cfg); err != nil {
		level.Error(logger).Log("msg", "configuration", "err", err)
		os.Exit(1)
	}

	level.Info(logger).Log("msg", "initialization")

	locator, err := path.NewLocator(
		cfg.TemplateDir,
		cfg.TmpDir,
		uuid.New().String,
	)
	if err != nil {
		level.Error(logger).Log("msg", "locator init", "err", err)
		os.Exit(1)
	}

	parser, err := parser.New()
	if err != nil {
		level.Error(logger).Log("msg", "parser init", "err", err)
		os.Exit(1)
	}

	scanner, err := placeholder.New()
	if err != nil {
		level.Error(logger).Log("msg", "placeholder init", "err", err)
		os.Exit(1)
	}

	fetcher := image.NewFetcher(cfg.ImageTimeout, logger)

	facade := xlsx.NewFacade(
		scanner,
		qrcode.NewCreator(),
		fetcher,
		logger,
	)

	fill := filler.New(
		scanner,
		facade,
		xlsx.NewExpander(),
		fetcher,
		logger,
	)

	var store interface {
		Save(ctx context.Context, name string, data []byte, project, version string) (string, error)
	}
	switch cfg.StorageType {
	case "local":
		if store, err = storage.NewLocal(cfg.StorageDir); err != nil {
			level.Error(logger).Log("msg", "local storage init", "err", err)
			os.Exit(1)
		}
	default:
		if store, err = storage.NewMinIO(
			cfg.MinioEndpoint,
			cfg.MinioAccessKey,
			cfg.MinioSecretKey,
			cfg.MinioBucket,
			cfg.MinioSecure,
		); err != nil {
			level.Error(logger).Log("msg", "minio storage init", "endpoint", cfg.MinioEndpoint, "err", err)
			os.Exit(1)
		}
	}

	svc := templater.NewService(
		locator,
		parser,
		fill,
		store,
		logger,
	)

	address := fmt.Sprintf("%s:%d", cfg.MQHost, cfg.MQPort)
	mqKafka, err := kafka.NewMessageQueue(
		[]string{address},
	)
	if err != nil {
		level.Error(logger).Log("msg", "kafka init", "address", address, "err", err)
		os.Exit(1)
	}

	handler := mq.NewFillInHandler(
		svc,
		mq.NewFillInTransport(
			response.Build,
		),
		mqKafka.NewPublish(cfg.FillInTopicResponse),
	)

	if err = mqKafka.Consume(cfg.FillInTopicRequest, handler); err != nil {
		level.Error(logger).Log("msg", "consume topic", "topic", cfg.FillInTopicRequest, "err", err)
		os.Exit(1)
	}

	level.Info(logger).Log("msg", "kafka listener turn on")
	mqKafka.ListenAndServe()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGINT)
	level.Info(logger).Log("msg", "received signal", "signal", <-c)

	level.Info(logger).Log("msg", "kafka listener shutdown")
	mqKafka.Shutdown()
	level.Info(logger).Log("msg", "stop service")
}
