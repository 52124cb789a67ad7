package main

import (
	"log"
	"os"

	"diabkit/config"
	"diabkit/routes"
	"diabkit/services"
	"diabkit/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	if os.Getenv("SES_EMAIL") != "" {
		utils.InitMailer()
	}

	if sp, err := services.RestoreSession(); err == nil && sp != nil {
		log.Printf("restored session for %s", sp.Email)
	}

	stop := make(chan struct{})
	defer close(stop)
	go services.RunReminderLoop(stop)

	r := routes.SetupRouter()
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
