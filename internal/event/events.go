package event

import "github.com/dappmarket/marketplace-ledger/internal/entity"

type Type string

const (
	TokenMintedEvent      Type = "TokenMintedEvent"
	TokenTransferredEvent Type = "TokenTransferredEvent"
	ItemOfferedEvent      Type = "ItemOfferedEvent"
	ItemBoughtEvent       Type = "ItemBoughtEvent"
)

// Record is one committed entry of the ledger's append-only journal.
type Record struct {
	Seq     uint64
	Type    Type
	Payload interface{}
}

type TokenMinted struct {
	Token entity.Token
}

type TokenTransferred struct {
	Token entity.Token
	From  string
	To    string
}

type ItemOffered struct {
	Listing entity.Listing
	Token   entity.Token
}

type ItemBought struct {
	Listing entity.Listing
	Token   entity.Token
	Buyer   string
	Fee     uint64
}
