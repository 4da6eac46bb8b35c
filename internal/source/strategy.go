package source

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/SlyMarbo/rss"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/model"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/parser"
	"github.com/samber/lo"
)

// Результат стратегии: либо уже нормализованная лента, либо сырой XML
type Result struct {
	Feed *model.Feed
	Raw  string
	// Raw уже декодирован в UTF-8, encoding из декларации не применяем
	Decoded bool
}

// Один способ достать ленту
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, feedURL string) (Result, error)
}

// Сервис конвертации RSS в JSON (rss2json).
// Отдает уже разобранные записи, XML парсер не нужен.
type Converter struct {
	endpoint string
	client   *http.Client
}

func NewConverter(endpoint string, client *http.Client) *Converter {
	return &Converter{endpoint: endpoint, client: client}
}

func (c *Converter) Name() string {
	return "converter"
}

type converterResponse struct {
	Status string `json:"status"`
	Feed   struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Link        string `json:"link"`
	} `json:"feed"`
	Items []converterItem `json:"items"`
}

type converterItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Link        string `json:"link"`
	PubDate     string `json:"pubDate"`
	GUID        string `json:"guid"`
}

func (c *Converter) Fetch(ctx context.Context, feedURL string) (Result, error) {
	body, err := get(ctx, c.client, c.Name(), c.endpoint+"?rss_url="+url.QueryEscape(feedURL))
	if err != nil {
		return Result{}, err
	}

	var resp converterResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Result{}, &ValidationError{Strategy: c.Name(), Reason: "invalid JSON: " + err.Error()}
	}

	if resp.Status != "ok" {
		return Result{}, &ValidationError{Strategy: c.Name(), Reason: "API returned error"}
	}

	feed := &model.Feed{
		Title:       resp.Feed.Title,
		Description: resp.Feed.Description,
		Link:        resp.Feed.Link,
		Items: lo.Map(resp.Items, func(item converterItem, _ int) model.FeedItem {
			description := cmp.Or(item.Description, item.Content)
			return model.FeedItem{
				Title:          item.Title,
				Description:    description,
				ContentSnippet: description,
				Link:           item.Link,
				PubDate:        item.PubDate,
				GUID:           cmp.Or(item.GUID, item.Link),
				Content:        cmp.Or(item.Content, item.Description),
			}
		}),
	}

	return Result{Feed: feed}, nil
}

// Прокси, который отдает исходный XML как есть (corsproxy.io)
type DirectProxy struct {
	endpoint string
	client   *http.Client
}

func NewDirectProxy(endpoint string, client *http.Client) *DirectProxy {
	return &DirectProxy{endpoint: endpoint, client: client}
}

func (p *DirectProxy) Name() string {
	return "direct-proxy"
}

func (p *DirectProxy) Fetch(ctx context.Context, feedURL string) (Result, error) {
	body, err := get(ctx, p.client, p.Name(), p.endpoint+"?"+url.QueryEscape(feedURL))
	if err != nil {
		return Result{}, err
	}

	text := string(body)
	if !parser.HasPreamble(text) {
		return Result{}, &ValidationError{Strategy: p.Name(), Reason: "not valid XML"}
	}

	return Result{Raw: text}, nil
}

// Прокси, который заворачивает документ в JSON поле contents (allorigins.win)
type WrappedProxy struct {
	endpoint string
	client   *http.Client
}

func NewWrappedProxy(endpoint string, client *http.Client) *WrappedProxy {
	return &WrappedProxy{endpoint: endpoint, client: client}
}

func (p *WrappedProxy) Name() string {
	return "wrapped-proxy"
}

func (p *WrappedProxy) Fetch(ctx context.Context, feedURL string) (Result, error) {
	body, err := get(ctx, p.client, p.Name(), p.endpoint+"?url="+url.QueryEscape(feedURL))
	if err != nil {
		return Result{}, err
	}

	if !bytes.HasPrefix(bytes.TrimSpace(body), []byte("{")) {
		return Result{}, &ValidationError{Strategy: p.Name(), Reason: "not JSON"}
	}

	var resp struct {
		Contents *string `json:"contents"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return Result{}, &ValidationError{Strategy: p.Name(), Reason: "invalid JSON: " + err.Error()}
	}

	if resp.Contents == nil || *resp.Contents == "" {
		return Result{}, &ValidationError{Strategy: p.Name(), Reason: "no contents in response"}
	}

	return Result{Raw: *resp.Contents, Decoded: true}, nil
}

// Прямой запрос к источнику без посредников.
// Разбирается библиотекой rss, поэтому понимает и Atom.
type Direct struct {
	client *http.Client
}

func NewDirect(client *http.Client) *Direct {
	return &Direct{client: client}
}

func (d *Direct) Name() string {
	return "direct"
}

func (d *Direct) Fetch(ctx context.Context, feedURL string) (Result, error) {
	body, err := get(ctx, d.client, d.Name(), feedURL)
	if err != nil {
		return Result{}, err
	}

	parsed, err := rss.Parse(body)
	if err != nil {
		return Result{}, &ValidationError{Strategy: d.Name(), Reason: "unreadable feed: " + err.Error()}
	}

	feed := &model.Feed{
		Title:       parsed.Title,
		Description: parsed.Description,
		Link:        parsed.Link,
		Items: lo.Map(parsed.Items, func(item *rss.Item, _ int) model.FeedItem {
			var pubDate string
			if !item.Date.IsZero() {
				pubDate = item.Date.Format(time.RFC1123Z)
			}
			return model.FeedItem{
				Title:          item.Title,
				Description:    item.Summary,
				ContentSnippet: item.Summary,
				Link:           item.Link,
				PubDate:        pubDate,
				GUID:           cmp.Or(item.ID, item.Link),
				Content:        cmp.Or(item.Content, item.Summary),
			}
		}),
	}

	return Result{Feed: feed}, nil
}
