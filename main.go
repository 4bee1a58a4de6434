package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"payoutdesk/cmd"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Err(err).Msg("No .env file loaded, using process environment")
	}

	cmd.Execute()
}
