package main

import (
	"log"

	"github.com/abiosoft/ishell/v2"
	pendant "github.com/iwtcode/pendantService"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load("./.env"); err != nil {
		log.Printf("Warning: Could not load .env file. Using default values or environment variables: %v", err)
	}

	cfg := pendant.Load()
	client, err := pendant.New(cfg)
	if err != nil {
		log.Fatalf("Не удалось запустить пульт: %v", err)
	}
	defer client.Close()

	shell := ishell.New()
	shell.Println("Teach pendant shell. Type 'help' for commands.")
	shell.ShowPrompt(true)
	registerCommands(shell, client)

	events, cancel := client.Subscribe()
	defer cancel()
	go printEvents(shell, events)

	shell.Run()
	shell.Close()
}
