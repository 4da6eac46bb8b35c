package source

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/model"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/parser"
)

// Время на одну попытку
const DefaultTimeout = 6 * time.Second

// Адреса посредников, через которые достаем ленты
type Endpoints struct {
	Converter    string
	DirectProxy  string
	WrappedProxy string
	// Последней попыткой идти в источник напрямую
	Direct bool
}

// Стратегии в порядке, в котором их пробуем
func Strategies(e Endpoints, client *http.Client) []Strategy {
	strategies := []Strategy{
		NewConverter(e.Converter, client),
		NewDirectProxy(e.DirectProxy, client),
		NewWrappedProxy(e.WrappedProxy, client),
	}

	if e.Direct {
		strategies = append(strategies, NewDirect(client))
	}

	return strategies
}

// Состояния прохода по цепочке
type state int

const (
	statePending state = iota
	stateTrying
	stateSucceeded
	stateExhausted
)

func (s state) String() string {
	switch s {
	case statePending:
		return "pending"
	case stateTrying:
		return "trying"
	case stateSucceeded:
		return "succeeded"
	case stateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Цепочка стратегий: пробуем по очереди до первой удачной.
// Повторов одной и той же стратегии нет.
type Chain struct {
	strategies []Strategy
	timeout    time.Duration
}

func NewChain(timeout time.Duration, strategies ...Strategy) *Chain {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Chain{
		strategies: strategies,
		timeout:    timeout,
	}
}

// Достает и нормализует ленту по URL источника.
// Если все стратегии упали, возвращает *ExhaustedError с последней ошибкой внутри.
func (c *Chain) Fetch(ctx context.Context, feedURL string) (*model.Feed, error) {
	if len(c.strategies) == 0 {
		return nil, ErrAllMethodsFailed
	}

	var (
		st       = statePending
		attempts = make([]error, 0, len(c.strategies))
	)

	for i, strategy := range c.strategies {
		st = stateTrying
		started := time.Now()

		feed, err := c.try(ctx, strategy, feedURL)
		if err == nil {
			st = stateSucceeded
			log.Debug("feed fetched",
				"url", feedURL, "strategy", strategy.Name(), "state", st,
				"items", len(feed.Items), "took", time.Since(started))
			return feed, nil
		}

		// Родительский контекст отменен, дальше пробовать бессмысленно
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		log.Warn("feed method failed",
			"url", feedURL, "attempt", i+1, "strategy", strategy.Name(), "state", st, "err", err)
		attempts = append(attempts, err)
	}

	st = stateExhausted
	log.Debug("feed chain finished", "url", feedURL, "state", st)

	return nil, &ExhaustedError{URL: feedURL, Attempts: attempts}
}

// Одна попытка: вызов стратегии и приведение результата к ленте
func (c *Chain) try(ctx context.Context, strategy Strategy, feedURL string) (*model.Feed, error) {
	res, err := c.race(ctx, strategy, feedURL)
	if err != nil {
		return nil, err
	}

	if res.Feed != nil {
		return res.Feed, nil
	}

	// Повторная проверка, даже если стратегия уже проверяла
	if !parser.HasPreamble(res.Raw) {
		return nil, &ValidationError{Strategy: strategy.Name(), Reason: "response does not contain valid XML"}
	}

	var feed model.Feed
	if res.Decoded {
		feed, err = parser.ParseText(res.Raw)
	} else {
		feed, err = parser.Parse([]byte(res.Raw))
	}
	if err != nil {
		return nil, err
	}

	return &feed, nil
}

// Гоним стратегию наперегонки с таймером.
// По таймауту контекст попытки отменяется, так что запрос не висит в фоне.
func (c *Chain) race(ctx context.Context, strategy Strategy, feedURL string) (Result, error) {
	attemptCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		resultCh = make(chan Result, 1)
		errCh    = make(chan error, 1)
	)

	go func() {
		res, err := strategy.Fetch(attemptCtx, feedURL)
		if err != nil {
			errCh <- err
			return
		}

		resultCh <- res
	}()

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-timer.C:
		return Result{}, &TimeoutError{Strategy: strategy.Name(), After: c.timeout}
	case err := <-errCh:
		return Result{}, err
	case res := <-resultCh:
		return res, nil
	}
}
