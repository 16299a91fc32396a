package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dappmarket/marketplace-ledger/internal/entity"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/patrickmn/go-cache"
)

var (
	ErrInvalidUri      = errors.New("invalid metadata uri")
	ErrMetadataMissing = errors.New("metadata not available")
)

type Service interface {
	GetMetadata(token entity.Token) (map[string]interface{}, error)
	ResolveUri(uri string) (string, error)
}

type service struct {
	client    *retryablehttp.Client
	cache     *cache.Cache
	ipfsHosts []string
}

func NewMetadataService(client *retryablehttp.Client, ipfsHosts []string) Service {
	return service{client, cache.New(5*time.Minute, 10*time.Minute), ipfsHosts}
}

// GetMetadata fetches and decodes the JSON document behind the token URI.
// Responses are cached per token.
func (s service) GetMetadata(token entity.Token) (map[string]interface{}, error) {
	if md, found := s.cache.Get(token.Slug()); found {
		return md.(map[string]interface{}), nil
	}

	uri, err := s.ResolveUri(token.TokenUri)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Get(uri)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, errors.New(resp.Status)
	}

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}

	var md map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &md); err != nil {
		return nil, err
	}

	s.cache.Set(token.Slug(), md, cache.DefaultExpiration)

	return md, nil
}

// ResolveUri rewrites ipfs:// URIs to the first configured gateway and
// rejects anything that is not fetchable over http.
func (s service) ResolveUri(uri string) (string, error) {
	if ipfs := getIpfs(uri); ipfs != "" {
		if len(s.ipfsHosts) == 0 {
			return "", ErrInvalidUri
		}
		return fmt.Sprintf("%s/ipfs/%s", s.ipfsHosts[0], ipfs[7:]), nil
	}

	if len(uri) < 4 || uri[:4] != "http" {
		return "", ErrInvalidUri
	}

	return uri, nil
}
