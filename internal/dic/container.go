package dic

import (
	"time"

	"github.com/dappmarket/marketplace-ledger/internal/api"
	"github.com/dappmarket/marketplace-ledger/internal/config"
	"github.com/dappmarket/marketplace-ledger/internal/daemon"
	"github.com/dappmarket/marketplace-ledger/internal/elastic_search"
	"github.com/dappmarket/marketplace-ledger/internal/indexer"
	"github.com/dappmarket/marketplace-ledger/internal/ledger"
	"github.com/dappmarket/marketplace-ledger/internal/messenger"
	"github.com/dappmarket/marketplace-ledger/internal/metadata"
	"github.com/dappmarket/marketplace-ledger/internal/repository"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sarulabs/di/v2"
	"go.uber.org/zap"
)

type Container struct {
	ctn di.Container
}

func NewContainer() (*Container, error) {
	builder, err := di.NewBuilder()
	if err != nil {
		return nil, err
	}

	if err := builder.Add(definitions...); err != nil {
		return nil, err
	}

	return &Container{ctn: builder.Build()}, nil
}

var definitions = []di.Def{
	{
		Name: "elastic",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic, err := elastic_search.New()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to start ES")
			}

			return elastic, nil
		},
	},
	{
		Name: "ledger",
		Build: func(ctn di.Container) (interface{}, error) {
			cfg := config.Get()
			l, err := ledger.New(cfg.CollectionName, cfg.CollectionSymbol, cfg.MarketAccount, cfg.FeeAccount, cfg.FeePercent)
			if err != nil {
				zap.L().With(zap.Error(err), zap.Uint64("feePercent", cfg.FeePercent)).Fatal("Invalid ledger config")
			}

			return l, nil
		},
	},
	{
		Name: "http.client",
		Build: func(ctn di.Container) (interface{}, error) {
			client := retryablehttp.NewClient()
			client.RetryMax = config.Get().MetadataRetries
			client.HTTPClient.Timeout = time.Duration(config.Get().MetadataTimeout) * time.Second
			client.Logger = nil

			return client, nil
		},
	},
	{
		Name: "metadata.service",
		Build: func(ctn di.Container) (interface{}, error) {
			client := ctn.Get("http.client").(*retryablehttp.Client)
			return metadata.NewMetadataService(client, config.Get().IpfsHosts), nil
		},
	},
	{
		Name: "action.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic := ctn.Get("elastic").(elastic_search.Index)
			return repository.NewActionRepository(elastic), nil
		},
	},
	{
		Name: "action.indexer",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic := ctn.Get("elastic").(elastic_search.Index)
			return indexer.NewActionIndexer(elastic), nil
		},
	},
	{
		Name: "metadata.indexer",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic := ctn.Get("elastic").(elastic_search.Index)
			metadataService := ctn.Get("metadata.service").(metadata.Service)
			return indexer.NewMetadataIndexer(elastic, metadataService), nil
		},
	},
	{
		Name: "messenger",
		Build: func(ctn di.Container) (interface{}, error) {
			return messenger.NewMessenger(), nil
		},
	},
	{
		Name: "api.server",
		Build: func(ctn di.Container) (interface{}, error) {
			l := ctn.Get("ledger").(*ledger.Ledger)
			actionRepo := ctn.Get("action.repo").(repository.ActionRepository)
			metadataService := ctn.Get("metadata.service").(metadata.Service)
			return api.NewServer(l, actionRepo, metadataService), nil
		},
	},
	{
		Name: "daemon",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic := ctn.Get("elastic").(elastic_search.Index)
			l := ctn.Get("ledger").(*ledger.Ledger)
			actionIndexer := ctn.Get("action.indexer").(indexer.ActionIndexer)
			server := ctn.Get("api.server").(api.Server)
			return daemon.NewDaemon(elastic, l, actionIndexer, server), nil
		},
	},
}

func (c *Container) GetElastic() elastic_search.Index {
	return c.ctn.Get("elastic").(elastic_search.Index)
}

func (c *Container) GetLedger() *ledger.Ledger {
	return c.ctn.Get("ledger").(*ledger.Ledger)
}

func (c *Container) GetMetadataService() metadata.Service {
	return c.ctn.Get("metadata.service").(metadata.Service)
}

func (c *Container) GetActionRepo() repository.ActionRepository {
	return c.ctn.Get("action.repo").(repository.ActionRepository)
}

func (c *Container) GetActionIndexer() indexer.ActionIndexer {
	return c.ctn.Get("action.indexer").(indexer.ActionIndexer)
}

func (c *Container) GetMetadataIndexer() indexer.MetadataIndexer {
	return c.ctn.Get("metadata.indexer").(indexer.MetadataIndexer)
}

func (c *Container) GetMessenger() messenger.MessageService {
	return c.ctn.Get("messenger").(messenger.MessageService)
}

func (c *Container) GetApiServer() api.Server {
	return c.ctn.Get("api.server").(api.Server)
}

func (c *Container) GetDaemon() *daemon.Daemon {
	return c.ctn.Get("daemon").(*daemon.Daemon)
}
