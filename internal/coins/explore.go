package coins

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"

	"postMint/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ListKind selects one of the explore lists.
type ListKind string

const (
	ListNew          ListKind = "NEW"
	ListMostValuable ListKind = "MOST_VALUABLE"
	ListLastTraded   ListKind = "LAST_TRADED"
)

// PriorityOrder is the order in which explore lists are merged.
var PriorityOrder = []ListKind{ListNew, ListMostValuable, ListLastTraded}

// Name is the short source name used in logs, metrics and the CLI.
func (k ListKind) Name() string {
	switch k {
	case ListNew:
		return "new"
	case ListMostValuable:
		return "most-valuable"
	case ListLastTraded:
		return "last-traded"
	default:
		return strings.ToLower(string(k))
	}
}

// ParseListKind accepts the short names and a few aliases.
func ParseListKind(s string) (ListKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "new", "recent":
		return ListNew, nil
	case "most-valuable", "valuable", "most_valuable":
		return ListMostValuable, nil
	case "last-traded", "traded", "last_traded":
		return ListLastTraded, nil
	}
	return "", fmt.Errorf("unknown explore list %q (want new, valuable or traded)", s)
}

type PageInfo struct {
	EndCursor   string `json:"endCursor"`
	HasNextPage bool   `json:"hasNextPage"`
}

// Page is one page of an explore list.
type Page struct {
	Coins    []model.RawCoin
	PageInfo PageInfo
}

// Explore fetches up to count coins from the given list. after is an optional
// pagination cursor.
func (c *Client) Explore(ctx context.Context, kind ListKind, count int, after string) (Page, error) {
	if count <= 0 {
		count = DefaultCount
	}
	query := url.Values{}
	query.Set("listType", string(kind))
	query.Set("count", strconv.Itoa(count))
	if after != "" {
		query.Set("after", after)
	}

	body, err := c.get(ctx, "explore", query)
	if err != nil {
		return Page{}, fmt.Errorf("explore %s: %w", kind.Name(), err)
	}
	page, err := parseExplore(body)
	if err != nil {
		return Page{}, fmt.Errorf("explore %s: %w", kind.Name(), err)
	}
	return page, nil
}

func parseExplore(body []byte) (Page, error) {
	if !gjson.ValidBytes(body) {
		return Page{}, fmt.Errorf("malformed response body")
	}
	root := gjson.ParseBytes(body)
	list := root.Get("exploreList")
	if !list.Exists() {
		list = root.Get("data.exploreList")
	}
	if !list.IsObject() {
		return Page{}, fmt.Errorf("response has no explore list")
	}

	var page Page
	if info := list.Get("pageInfo"); info.IsObject() {
		if err := json.Unmarshal([]byte(info.Raw), &page.PageInfo); err != nil {
			return Page{}, fmt.Errorf("decode page info: %w", err)
		}
	}

	edges := list.Get("edges").Array()
	page.Coins = make([]model.RawCoin, 0, len(edges))
	for _, edge := range edges {
		node := edge.Get("node")
		if !node.IsObject() {
			continue
		}
		page.Coins = append(page.Coins, rawCoinFromNode(node))
	}
	return page, nil
}
