package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/bot"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/bot/middleware"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/botkit"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/config"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/fetcher"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/model"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/notifier"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/source"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/summary"
)

func main() {
	cfg := config.Get()

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Error("failed to create bot", "err", err)
		return
	}

	var (
		client = &http.Client{}
		chain  = source.NewChain(cfg.StrategyTimeout, source.Strategies(source.Endpoints{
			Converter:    cfg.ConverterURL,
			DirectProxy:  cfg.DirectProxyURL,
			WrappedProxy: cfg.WrappedProxyURL,
			Direct:       cfg.DirectFallback,
		}, client)...)
		aggregator = fetcher.New(chain, cfg.DataFeedURL, cfg.AttacksFeedURL, cfg.FetchInterval)

		openAI = summary.Config{
			APIKey:            cfg.OpenAIKey,
			Model:             cfg.OpenAIModel,
			RequestsPerMinute: cfg.OpenAIRequestsPerMinute,
		}
		analyzer   = summary.NewAnalyzer(openAI)
		translator = summary.NewTranslator(openAI, summary.NewMemoryCache())

		notifier = notifier.New(aggregator, analyzer, botAPI, cfg.NotificationInterval, cfg.TelegramChannelID)
	)

	// Graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	feedBot := botkit.New(botAPI)
	feedBot.RegisterCmdView("start", bot.ViewCmdStart())
	feedBot.RegisterCmdView("help", bot.ViewCmdStart())
	feedBot.RegisterCmdView("news", bot.ViewCmdList(aggregator, model.CategoryAttacks, cfg.PageSize))
	feedBot.RegisterCmdView("data", bot.ViewCmdList(aggregator, model.CategoryData, cfg.PageSize))
	feedBot.RegisterCmdView("search", bot.ViewCmdSearch(aggregator, cfg.PageSize))
	feedBot.RegisterCmdView("stats", bot.ViewCmdStats(aggregator))
	feedBot.RegisterCmdView("analyze", bot.ViewCmdAnalyze(aggregator, analyzer))
	feedBot.RegisterCmdView("translate", bot.ViewCmdTranslate(aggregator, translator, cfg.TranslateLanguage, cfg.PageSize))
	feedBot.RegisterCmdView(
		"refresh",
		middleware.AdminOnly(
			cfg.TelegramChannelID,
			bot.ViewCmdRefresh(aggregator),
		),
	)

	// Воркер агрегатора
	go func(ctx context.Context) {
		if err := aggregator.Start(ctx); err != nil {
			if !errors.Is(err, context.Canceled) {
				log.Error("failed to start aggregator", "err", err)
				return
			}

			log.Info("aggregator stopped")
		}
	}(ctx)

	// Воркер notifier
	go func(ctx context.Context) {
		if err := notifier.Start(ctx); err != nil {
			if !errors.Is(err, context.Canceled) {
				log.Error("failed to start notifier", "err", err)
				return
			}

			log.Info("notifier stopped")
		}
	}(ctx)

	log.Info("bot started", "commands", feedBot.Commands())

	if err := feedBot.Run(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Error("failed to start bot", "err", err)
			return
		}

		log.Info("bot stopped")
	}
}
