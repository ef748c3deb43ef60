package bot

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"confession-bot/command"
	"confession-bot/config"
	"confession-bot/database"
	"confession-bot/ledger"
	"confession-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

// Bot encapsulates the bot's state: the Discord session, the ledger engine
// that owns all submission records, and the sqlite audit log.
type Bot struct {
	Session *discordgo.Session
	Ledger  *ledger.Engine
	Audit   *sql.DB
	Auth    *utils.Auth
}

// NewBot creates and initializes a new Bot instance.
func NewBot() (*Bot, error) {
	config.LoadConfig()
	token := viper.GetString("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("no bot token provided")
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsGuilds | discordgo.IntentsMessageContent

	store := ledger.NewStore(viper.GetString("bot.dataFile"))
	engine, err := ledger.NewEngine(store)
	if err != nil {
		return nil, fmt.Errorf("error loading ledger: %w", err)
	}

	auditDB, err := database.InitDB(viper.GetString("bot.auditDb"))
	if err != nil {
		return nil, fmt.Errorf("error opening audit database: %w", err)
	}

	auth, err := utils.NewAuth()
	if err != nil {
		auditDB.Close()
		return nil, fmt.Errorf("error loading auth configuration: %w", err)
	}

	return &Bot{
		Session: dg,
		Ledger:  engine,
		Audit:   auditDB,
		Auth:    auth,
	}, nil
}

// Start opens the bot's session and registers handlers and slash commands.
func (b *Bot) Start(registerHandlers func(*Bot)) error {
	registerHandlers(b)

	err := b.Session.Open()
	if err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	utils.InitLogger(b.Session)

	// Register slash commands
	for _, def := range command.GetCommandDefinitions() {
		_, err := b.Session.ApplicationCommandCreate(b.Session.State.User.ID, "", def)
		if err != nil {
			log.Printf("Cannot create '%v' command: %v", def.Name, err)
		}
	}

	startScheduler(b)

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully closes the bot's session and the audit database.
func (b *Bot) Stop() {
	stopScheduler()
	if b.Session != nil {
		b.Session.Close()
	}
	if b.Audit != nil {
		b.Audit.Close()
	}
	fmt.Println("Bot stopped gracefully.")
}

// Run is the main entry point for the bot application.
func Run(registerHandlers func(*Bot)) {
	bot, err := NewBot()
	if err != nil {
		log.Fatalf("Error initializing bot: %v", err)
	}

	if err := bot.Start(registerHandlers); err != nil {
		log.Fatalf("Error starting bot: %v", err)
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	bot.Stop()
}
