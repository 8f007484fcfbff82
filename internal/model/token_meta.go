package model

// TokenMeta captures on-chain ERC20 metadata.
type TokenMeta struct {
	Address     string `json:"address"`
	Decimals    uint8  `json:"decimals"`
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	TotalSupply string `json:"totalSupply"`
}
