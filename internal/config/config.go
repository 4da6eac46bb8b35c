package config

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfighcl"
)

// Конфиг читается из hcl файлов и переменных окружения с префиксом CFB
type Config struct {
	TelegramBotToken  string `hcl:"telegram_bot_token" env:"TELEGRAM_BOT_TOKEN" required:"true"`
	TelegramChannelID int64  `hcl:"telegram_channel_id" env:"TELEGRAM_CHANNEL_ID" required:"true"`

	// Источники двух категорий
	DataFeedURL    string `hcl:"data_feed_url" env:"DATA_FEED_URL" default:"https://www.cshub.com/rss/categories/data"`
	AttacksFeedURL string `hcl:"attacks_feed_url" env:"ATTACKS_FEED_URL" default:"https://www.cshub.com/rss/categories/attacks"`

	// Посредники, через которые достаем ленты, в порядке попыток
	ConverterURL    string        `hcl:"converter_url" env:"CONVERTER_URL" default:"https://api.rss2json.com/v1/api.json"`
	DirectProxyURL  string        `hcl:"direct_proxy_url" env:"DIRECT_PROXY_URL" default:"https://corsproxy.io/"`
	WrappedProxyURL string        `hcl:"wrapped_proxy_url" env:"WRAPPED_PROXY_URL" default:"https://api.allorigins.win/get"`
	DirectFallback  bool          `hcl:"direct_fallback" env:"DIRECT_FALLBACK" default:"false"`
	StrategyTimeout time.Duration `hcl:"strategy_timeout" env:"STRATEGY_TIMEOUT" default:"6s"`

	FetchInterval        time.Duration `hcl:"fetch_interval" env:"FETCH_INTERVAL" default:"10m"`
	NotificationInterval time.Duration `hcl:"notification_interval" env:"NOTIFICATION_INTERVAL" default:"1m"`

	OpenAIKey               string `hcl:"openai_key" env:"OPENAI_KEY"`
	OpenAIModel             string `hcl:"openai_model" env:"OPENAI_MODEL" default:"gpt-3.5-turbo"`
	OpenAIRequestsPerMinute int    `hcl:"openai_requests_per_minute" env:"OPENAI_REQUESTS_PER_MINUTE" default:"60"`

	TranslateLanguage string `hcl:"translate_language" env:"TRANSLATE_LANGUAGE" default:"ar"`
	PageSize          int    `hcl:"page_size" env:"PAGE_SIZE" default:"10"`
	LogLevel          string `hcl:"log_level" env:"LOG_LEVEL" default:"info"`
}

var (
	cfg  Config
	once sync.Once
)

// Конфиг приложения, читается один раз
func Get() Config {
	once.Do(func() {
		var err error
		if cfg, err = Load("./config.hcl", "./config.local.hcl"); err != nil {
			log.Error("failed to load config", "err", err)
		}
	})

	return cfg
}

// Читает конфиг из файлов и окружения. Окружение перекрывает файлы.
func Load(files ...string) (Config, error) {
	var c Config

	loader := aconfig.LoaderFor(&c, aconfig.Config{
		EnvPrefix: "CFB",
		SkipFlags: true,
		Files:     files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".hcl": aconfighcl.New(),
		},
	})

	if err := loader.Load(); err != nil {
		return Config{}, err
	}

	return c, nil
}
