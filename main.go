package main

import (
	"github.com/joho/godotenv"

	"folio/api/cmd"
)

func main() {
	_ = godotenv.Load()
	cmd.Execute()
}
