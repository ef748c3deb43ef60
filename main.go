package main

import (
	"confession-bot/bot"
	"confession-bot/handlers"
)

func main() {
	bot.Run(handlers.Register)
}
