package elastic_search

import (
	"fmt"

	"github.com/tunego/nft-market/internal/config"
)

type Indices string

var (
	SaleActivityIndex Indices = "saleactivity"
)

// Get prefixes the index with the configured network and index name.
func (i *Indices) Get() string {
	return fmt.Sprintf("%s.%s.%s", config.Get().Network, config.Get().Index, string(*i))
}

func All() []Indices {
	return []Indices{
		SaleActivityIndex,
	}
}
