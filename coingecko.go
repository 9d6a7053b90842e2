package cryptoledger

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

const coingeckoAPIKeyEnv = "COINGECKO_API_KEY"

var coingeckoAPIFlag = flag.String("coingecko-api-key", "", "CoinGecko API key for price lookups.\n If missing it is read from the environment variable \""+coingeckoAPIKeyEnv+"\". The free tier works without one.")

func coingeckoAPIKey() string {
	if *coingeckoAPIFlag == "" {
		*coingeckoAPIFlag = os.Getenv(coingeckoAPIKeyEnv)
	}
	return *coingeckoAPIFlag
}

// diskCache implements a simple disk cache for HTTP responses.
// The cache key embeds the current day, so entries expire daily.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	key := fmt.Sprintf("%s %s %s", Today().String(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

func (c *diskCache) put(key string, resp *http.Response) error {
	file := filepath.Join(os.TempDir(), key)
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	f.Close()
	return err
}

// daily returns a client whose responses are disk-cached until end of day.
func daily() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// CoinGecko fetches current crypto prices from the CoinGecko API.
//
// It is a collaborator of the core, not part of it: a failed or partial
// fetch yields a partial price map, and the core tolerates missing symbols.
type CoinGecko struct {
	client  *http.Client
	baseURL string
	ids     map[string]string // uppercase ticker -> coingecko coin id
}

// NewCoinGecko creates a client against the public API with a daily cache.
func NewCoinGecko() *CoinGecko {
	return &CoinGecko{
		client:  daily(),
		baseURL: "https://api.coingecko.com/api/v3",
		ids:     make(map[string]string),
	}
}

// NewCoinGeckoAt creates a client against a custom base URL, for tests.
func NewCoinGeckoAt(baseURL string, client *http.Client) *CoinGecko {
	return &CoinGecko{client: client, baseURL: baseURL, ids: make(map[string]string)}
}

// jwget performs a GET request and unmarshals the JSON response into data.
func (c *CoinGecko) jwget(addr string, data interface{}) error {
	req, err := http.NewRequest(http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if key := coingeckoAPIKey(); key != "" {
		req.Header.Set("x-cg-api-key", key)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// resolveIDs fills the ticker to coin-id index from the full coin list.
// When several coins share a ticker the last one listed wins, matching the
// original system's behavior.
func (c *CoinGecko) resolveIDs() error {
	var coins []struct {
		ID     string `json:"id"`
		Symbol string `json:"symbol"`
		Name   string `json:"name"`
	}
	if err := c.jwget(c.baseURL+"/coins/list", &coins); err != nil {
		return fmt.Errorf("cannot list coins: %w", err)
	}
	for _, coin := range coins {
		c.ids[strings.ToUpper(coin.Symbol)] = coin.ID
	}
	return nil
}

// CoinID returns the CoinGecko coin id for an asset ticker, resolving the
// index on first use.
func (c *CoinGecko) CoinID(symbol string) (string, error) {
	if len(c.ids) == 0 {
		if err := c.resolveIDs(); err != nil {
			return "", err
		}
	}
	id, ok := c.ids[strings.ToUpper(symbol)]
	if !ok {
		return "", fmt.Errorf("unknown coin %q", symbol)
	}
	return id, nil
}

// CurrentPrices fetches the current price of each symbol in the given fiat
// currency. Symbols that cannot be resolved or priced are left out of the
// returned map; the error reports the first transport-level failure, and
// the map may still be partial and usable when it is non-nil.
func (c *CoinGecko) CurrentPrices(symbols []string, currency string) (map[string]Money, error) {
	prices := make(map[string]Money)
	if len(symbols) == 0 {
		return prices, nil
	}
	cur := strings.ToLower(currency)

	idOf := make(map[string]string) // coin id -> ticker
	var ids []string
	for _, symbol := range symbols {
		id, err := c.CoinID(symbol)
		if err != nil {
			log.Printf("skipping %s: %v", symbol, err)
			continue
		}
		idOf[id] = strings.ToUpper(symbol)
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return prices, nil
	}

	addr := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s",
		c.baseURL, url.QueryEscape(strings.Join(ids, ",")), url.QueryEscape(cur))
	var jobj interface{}
	if err := c.jwget(addr, &jobj); err != nil {
		return prices, fmt.Errorf("cannot fetch prices: %w", err)
	}

	for id, symbol := range idOf {
		jval, err := jsonpath.Get(fmt.Sprintf("$[%q][%q]", id, cur), jobj)
		if err != nil {
			log.Printf("no %s price for %s: %v", currency, symbol, err)
			continue
		}
		// jsonpath sometimes returns a single-element list
		if jlist, ok := jval.([]interface{}); ok && len(jlist) > 0 {
			jval = jlist[0]
		}
		val, ok := jval.(float64)
		if !ok {
			log.Printf("no %s price for %s: not a number: %v", currency, symbol, jval)
			continue
		}
		prices[symbol] = M(val, strings.ToUpper(currency))
	}
	return prices, nil
}
