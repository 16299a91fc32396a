package entity

import (
	"crypto/md5"
	"fmt"
)

// MarketAction is the projection of a committed ledger event, indexed for
// external consumers. Seq is the ledger-wide event sequence number.
type MarketAction struct {
	Seq       uint64     `json:"seq"`
	TokenId   uint64     `json:"tokenId"`
	ListingId uint64     `json:"listingId,omitempty"`
	Action    ActionType `json:"action"`
	From      string     `json:"from"`
	To        string     `json:"to"`
	Price     uint64     `json:"price,omitempty"`
	Fee       uint64     `json:"fee,omitempty"`
	TokenUri  string     `json:"tokenUri,omitempty"`
}

type ActionType string

const (
	MintAction     ActionType = "mint"
	TransferAction ActionType = "transfer"
	ListingAction  ActionType = "listing"
	SaleAction     ActionType = "sale"
)

func (a MarketAction) Slug() string {
	return CreateMarketActionSlug(a.Seq, a.TokenId, string(a.Action))
}

func CreateMarketActionSlug(seq, tokenId uint64, action string) string {
	data := []byte(fmt.Sprintf("marketaction-%d-%d-%s", seq, tokenId, action))
	return fmt.Sprintf("%x", md5.Sum(data))
}
