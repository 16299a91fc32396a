package entity

import (
	"fmt"

	"github.com/gosimple/slug"
)

// Listing is a seller's fixed-price offer for a single token. While Sold is
// false the token is held in escrow by the market account. Listings are
// append-only; a sold listing is terminal.
type Listing struct {
	ListingId uint64 `json:"listingId"`
	TokenId   uint64 `json:"tokenId"`
	Price     uint64 `json:"price"`
	Seller    string `json:"seller"`
	Sold      bool   `json:"sold"`
}

func (l Listing) Slug() string {
	return CreateListingSlug(l.ListingId)
}

func CreateListingSlug(listingId uint64) string {
	return slug.Make(fmt.Sprintf("listing-%d", listingId))
}
