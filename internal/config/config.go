package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type key string

const (
	KeyLogger = key("logger")
)

const (
	StoreDriverAPI      = "api"
	StoreDriverPostgres = "postgres"

	RealtimeDriverCentrifugo = "centrifugo"
	RealtimeDriverNATS       = "nats"
	RealtimeDriverPostgres   = "postgres"
	RealtimeDriverNone       = "none"
)

type Config struct {
	Service    Service
	Logger     Logger
	Platform   Platform
	Postgres   ReadEnvPostgres
	Centrifuge Centrifuge
	NATS       NATS
	ChatAPI    ChatAPI
	Gateway    Gateway
	Feed       Feed
	Draft      Draft
	Layout     Layout
}

type Service struct {
	Port string `env:"SERVICE_PORT" env-default:"8787"`
	Name string `env:"SERVICE_NAME" env-default:"chat-feed"`
}

type Logger struct {
	Host string `env:"LOGGER_SERVICE_HOST"`
	Port string `env:"LOGGER_SERVICE_PORT"`
}

type Platform struct {
	Env string `env:"ENV" env-default:"dev"`
}

type ReadEnvPostgres struct {
	User          string `env:"CHAT_SERVICE_POSTGRES_USER"`
	Password      string `env:"CHAT_SERVICE_POSTGRES_PASSWORD"`
	Database      string `env:"CHAT_SERVICE_POSTGRES_DB"`
	Host          string `env:"CHAT_SERVICE_POSTGRES_HOST"`
	Port          string `env:"CHAT_SERVICE_POSTGRES_PORT" env-default:"5432"`
	NotifyChannel string `env:"CHAT_SERVICE_POSTGRES_NOTIFY_CHANNEL" env-default:"chat_messages"`
}

type Centrifuge struct {
	BaseURL   string        `env:"CENTRIFUGO_BASE_URL"`
	WSURL     string        `env:"CENTRIFUGO_WS_URL"`
	APIKey    string        `env:"CENTRIFUGO_API_KEY"`
	JWTSecret string        `env:"CENTRIFUGO_JWT_SECRET"`
	Timeout   time.Duration `env:"CENTRIFUGO_TIMEOUT" env-default:"5s"`
}

type NATS struct {
	URL   string `env:"NATS_URL" env-default:"nats://localhost:4222"`
	Token string `env:"NATS_TOKEN"`
}

type ChatAPI struct {
	BaseURL string        `env:"CHAT_API_BASE_URL" env-default:"http://localhost:8080"`
	Token   string        `env:"CHAT_API_TOKEN"`
	Timeout time.Duration `env:"CHAT_API_TIMEOUT" env-default:"10s"`
}

type Gateway struct {
	Store    string `env:"GATEWAY_STORE" env-default:"api"`
	Realtime string `env:"GATEWAY_REALTIME" env-default:"centrifugo"`
}

type Feed struct {
	UserID          string `env:"FEED_USER_ID" env-required:"true"`
	UserDisplayName string `env:"FEED_USER_DISPLAY_NAME"`
	UserAvatarRef   string `env:"FEED_USER_AVATAR_REF"`
	PageSize        int    `env:"FEED_PAGE_SIZE" env-default:"50"`
	Timezone        string `env:"FEED_TIMEZONE" env-default:"Local"`
}

type Draft struct {
	Path string `env:"DRAFT_STORE_PATH" env-default:".chat-feed/drafts"`
}

// Layout holds pixel dimensions for row height estimation.
type Layout struct {
	AvatarHeight      int `env:"LAYOUT_AVATAR_HEIGHT" env-default:"32"`
	SenderNameHeight  int `env:"LAYOUT_SENDER_NAME_HEIGHT" env-default:"18"`
	TimestampHeight   int `env:"LAYOUT_TIMESTAMP_HEIGHT" env-default:"16"`
	GroupMargin       int `env:"LAYOUT_GROUP_MARGIN" env-default:"12"`
	DateDividerHeight int `env:"LAYOUT_DATE_DIVIDER_HEIGHT" env-default:"32"`
	MinBubbleHeight   int `env:"LAYOUT_MIN_BUBBLE_HEIGHT" env-default:"36"`
	CharsPerLine      int `env:"LAYOUT_CHARS_PER_LINE" env-default:"38"`
	LineHeight        int `env:"LAYOUT_LINE_HEIGHT" env-default:"20"`
	VerticalPadding   int `env:"LAYOUT_VERTICAL_PADDING" env-default:"16"`
	BubbleGap         int `env:"LAYOUT_BUBBLE_GAP" env-default:"4"`
	MinRowHeight      int `env:"LAYOUT_MIN_ROW_HEIGHT" env-default:"60"`
}

func MustLoad() *Config {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		log.Fatalf("failed to read env variables: %v", err)
	}
	return cfg
}
