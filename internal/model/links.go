package model

const (
	zoraTestnetURL = "https://testnet.zora.co"
	baseScanURL    = "https://sepolia.basescan.org"
)

// Links holds the external pages for a coin.
type Links struct {
	Zora     string `json:"zora"`
	Explorer string `json:"explorer"`
}

// CoinLinks returns the Zora collect page and block explorer page of a coin.
func CoinLinks(address string) Links {
	return Links{
		Zora:     zoraTestnetURL + "/collect/base-sepolia:" + address,
		Explorer: baseScanURL + "/address/" + address,
	}
}

// ProfileLinks returns the Zora profile page and block explorer page of a creator.
func ProfileLinks(creator string) Links {
	return Links{
		Zora:     zoraTestnetURL + "/@" + creator,
		Explorer: baseScanURL + "/address/" + creator,
	}
}
