package ledger

import (
	"sync"

	"github.com/dappmarket/marketplace-ledger/internal/entity"
	"github.com/dappmarket/marketplace-ledger/internal/event"
	"go.uber.org/zap"
)

// Ledger is the system of record for tokens, listings and balances. A single
// write lock serializes every mutating operation across all three tables, so
// each operation commits or aborts as a whole and readers never observe a
// write in progress. Committed operations are appended to the journal and
// dispatched to event listeners after the lock is released.
type Ledger struct {
	mu sync.RWMutex

	name          string
	symbol        string
	marketAccount string
	feeAccount    string
	feePercent    uint64

	tokens     map[uint64]*entity.Token
	approvals  map[string]map[string]bool
	listings   map[uint64]*entity.Listing
	balances   map[string]uint64
	tokenCount uint64
	itemCount  uint64

	seq     uint64
	journal []event.Record
}

// New builds an empty ledger. The fee percent is fixed for the ledger's
// lifetime and must lie in [0,100]; anything above would make the fee exceed
// the price and underflow the seller's proceeds, so it is rejected here.
func New(name, symbol, marketAccount, feeAccount string, feePercent uint64) (*Ledger, error) {
	if feePercent > 100 {
		return nil, ErrInvalidFeePercent
	}

	return &Ledger{
		name:          name,
		symbol:        symbol,
		marketAccount: marketAccount,
		feeAccount:    feeAccount,
		feePercent:    feePercent,
		tokens:        make(map[uint64]*entity.Token),
		approvals:     make(map[string]map[string]bool),
		listings:      make(map[uint64]*entity.Listing),
		balances:      make(map[string]uint64),
	}, nil
}

func (l *Ledger) Name() string {
	return l.name
}

func (l *Ledger) Symbol() string {
	return l.symbol
}

func (l *Ledger) MarketAccount() string {
	return l.marketAccount
}

func (l *Ledger) FeeAccount() string {
	return l.feeAccount
}

func (l *Ledger) FeePercent() uint64 {
	return l.feePercent
}

func (l *Ledger) Deposit(account string, amount uint64) error {
	if account == "" {
		return ErrInvalidAccount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[account] += amount

	return nil
}

func (l *Ledger) BalanceOf(account string) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balances[account]
}

// Journal returns a copy of the committed event log, oldest first.
func (l *Ledger) Journal() []event.Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	journal := make([]event.Record, len(l.journal))
	copy(journal, l.journal)

	return journal
}

// append must be called with the write lock held.
func (l *Ledger) append(eventType event.Type, payload interface{}) event.Record {
	l.seq++
	rec := event.Record{Seq: l.seq, Type: eventType, Payload: payload}
	l.journal = append(l.journal, rec)

	return rec
}

func (l *Ledger) publish(recs ...event.Record) {
	for _, rec := range recs {
		zap.L().With(
			zap.Uint64("seq", rec.Seq),
			zap.String("type", string(rec.Type)),
		).Debug("Ledger: event committed")

		event.EmitRecord(rec)
	}
}
