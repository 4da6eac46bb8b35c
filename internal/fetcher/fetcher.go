package fetcher

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/model"
)

// Достает ленту по URL. Реализовано цепочкой стратегий в source.
type FeedLoader interface {
	Fetch(ctx context.Context, feedURL string) (*model.Feed, error)
}

// Агрегатор двух категорий: data и attacks
type Aggregator struct {
	loader FeedLoader
	// URL источника для каждой категории
	sources map[model.Category]string
	// Как часто обновляем снимок в фоне
	fetchInterval time.Duration

	latest atomic.Pointer[model.AggregateResult]
}

func New(loader FeedLoader, dataURL, attacksURL string, fetchInterval time.Duration) *Aggregator {
	return &Aggregator{
		loader: loader,
		sources: map[model.Category]string{
			model.CategoryData:    dataURL,
			model.CategoryAttacks: attacksURL,
		},
		fetchInterval: fetchInterval,
	}
}

// Воркер, который периодически обновляет снимок лент
func (a *Aggregator) Start(ctx context.Context) error {
	ticker := time.NewTicker(a.fetchInterval)
	defer ticker.Stop()

	a.Refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			a.Refresh(ctx)
		}
	}
}

// Один проход агрегации с сохранением снимка
func (a *Aggregator) Refresh(ctx context.Context) model.AggregateResult {
	result := a.FetchAll(ctx)
	a.latest.Store(&result)
	return result
}

// Последний снимок. До первого прохода пустой.
func (a *Aggregator) Latest() model.AggregateResult {
	if r := a.latest.Load(); r != nil {
		return *r
	}
	return model.AggregateResult{}
}

// Достает обе категории параллельно.
// Ошибка одной категории не влияет на другую, сам вызов никогда не падает:
// упавшая категория просто остается nil.
func (a *Aggregator) FetchAll(ctx context.Context) model.AggregateResult {
	var (
		wg      sync.WaitGroup
		data    *model.Feed
		attacks *model.Feed
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		data = a.fetchCategory(ctx, model.CategoryData)
	}()
	go func() {
		defer wg.Done()
		attacks = a.fetchCategory(ctx, model.CategoryAttacks)
	}()
	wg.Wait()

	result := model.AggregateResult{Data: data, Attacks: attacks}

	log.Info("feeds aggregated",
		"data_items", len(result.Items(model.CategoryData)),
		"attacks_items", len(result.Items(model.CategoryAttacks)),
		"degraded", result.Degraded(),
		"empty", result.Empty(),
	)

	return result
}

func (a *Aggregator) fetchCategory(ctx context.Context, category model.Category) *model.Feed {
	feed, err := a.loader.Fetch(ctx, a.sources[category])
	if err != nil {
		log.Error("failed to fetch feed", "category", category, "url", a.sources[category], "err", err)
		return nil
	}

	return feed
}
