package model

// CoinView is a coin prepared for display: amounts are in ether units.
type CoinView struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	Description    string `json:"description,omitempty"`
	Address        string `json:"address"`
	CreatedAt      string `json:"createdAt"`
	CreatorAddress string `json:"creatorAddress"`
	TotalSupply    string `json:"totalSupply"`
	MarketCap      string `json:"marketCap"`
	TotalVolume    string `json:"totalVolume"`
	Volume24h      string `json:"volume24h"`
	UniqueHolders  int64  `json:"uniqueHolders"`
	ChainID        int64  `json:"chainId,omitempty"`
	Links          Links  `json:"links"`
}

func NewCoinView(raw RawCoin) CoinView {
	return CoinView{
		ID:             raw.ID,
		Name:           orDefault(raw.Name, DefaultName),
		Symbol:         orDefault(raw.Symbol, DefaultSymbol),
		Description:    raw.Description,
		Address:        raw.Address,
		CreatedAt:      raw.CreatedAt,
		CreatorAddress: raw.CreatorAddress,
		TotalSupply:    FormatEther(raw.TotalSupply),
		MarketCap:      FormatEther(raw.MarketCap),
		TotalVolume:    FormatEther(raw.TotalVolume),
		Volume24h:      FormatEther(raw.Volume24h),
		UniqueHolders:  raw.UniqueHolders,
		ChainID:        raw.ChainID,
		Links:          CoinLinks(raw.Address),
	}
}

// Dashboard summarizes the coins of one creator.
type Dashboard struct {
	Creator        string        `json:"creator"`
	Posts          int           `json:"posts"`
	TotalMarketCap string        `json:"totalMarketCap"`
	Profile        Links         `json:"profile"`
	Coins          []TokenRecord `json:"coins"`
	Scanned        int           `json:"scanned"`
}

// NewDashboard builds the summary from an aggregation result. The market cap
// total is rounded to 4 decimal places.
func NewDashboard(creator string, all, mine []TokenRecord) Dashboard {
	if mine == nil {
		mine = []TokenRecord{}
	}
	return Dashboard{
		Creator:        creator,
		Posts:          len(mine),
		TotalMarketCap: TotalMarketCap(mine).StringFixed(4),
		Profile:        ProfileLinks(creator),
		Coins:          mine,
		Scanned:        len(all),
	}
}

// CoinDetail is a coin view optionally enriched with on-chain metadata.
type CoinDetail struct {
	CoinView
	OnChain *TokenMeta `json:"onChain,omitempty"`
}
