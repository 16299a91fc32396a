package daemon

import (
	"net/http"

	"github.com/dappmarket/marketplace-ledger/internal/api"
	"github.com/dappmarket/marketplace-ledger/internal/config"
	"github.com/dappmarket/marketplace-ledger/internal/elastic_search"
	"github.com/dappmarket/marketplace-ledger/internal/indexer"
	"github.com/dappmarket/marketplace-ledger/internal/ledger"
	"go.uber.org/zap"
)

type Daemon struct {
	elastic       elastic_search.Index
	ledger        *ledger.Ledger
	actionIndexer indexer.ActionIndexer
	server        api.Server
}

func NewDaemon(
	elastic elastic_search.Index,
	ledger *ledger.Ledger,
	actionIndexer indexer.ActionIndexer,
	server api.Server,
) *Daemon {
	return &Daemon{elastic, ledger, actionIndexer, server}
}

func (d *Daemon) Execute() {
	d.elastic.InstallMappings()

	if config.Get().Reindex {
		if err := d.actionIndexer.Reindex(d.ledger.Journal()); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to reindex actions")
		}
		zap.L().Info("Reindex complete")
	}

	zap.L().With(zap.String("port", config.Get().ApiPort)).Info("Marketplace API listening")

	if err := http.ListenAndServe(":"+config.Get().ApiPort, d.server.Router()); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start API server")
	}
}
