package entity

import (
	"fmt"

	"github.com/gosimple/slug"
)

type MetadataStatus string

const (
	MetadataPending MetadataStatus = "pending"
	MetadataSuccess MetadataStatus = "success"
	MetadataFailure MetadataStatus = "failure"
)

// TokenMetadata is the resolved content behind a token's URI.
type TokenMetadata struct {
	TokenId  uint64         `json:"tokenId"`
	TokenUri string         `json:"tokenUri"`
	Status   MetadataStatus `json:"status"`
	Error    string         `json:"error,omitempty"`
	Data     interface{}    `json:"data,omitempty"`
}

func (m TokenMetadata) Slug() string {
	return CreateTokenMetadataSlug(m.TokenId)
}

func CreateTokenMetadataSlug(tokenId uint64) string {
	return slug.Make(fmt.Sprintf("tokenmetadata-%d", tokenId))
}
