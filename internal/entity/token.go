package entity

import (
	"fmt"

	"github.com/gosimple/slug"
)

// Token is a registry entry. TokenIds are sequential from 1 and are never
// reused; the URI is fixed at mint time.
type Token struct {
	TokenId  uint64 `json:"tokenId"`
	Owner    string `json:"owner"`
	TokenUri string `json:"tokenUri"`
	MintedBy string `json:"mintedBy"`
}

func (t Token) Slug() string {
	return CreateTokenSlug(t.TokenId)
}

func CreateTokenSlug(tokenId uint64) string {
	return slug.Make(fmt.Sprintf("token-%d", tokenId))
}
