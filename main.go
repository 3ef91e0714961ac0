package main

import (
	"log"

	"fiber/kp/config"
	"fiber/kp/db"
	"fiber/kp/route"
)

func main() {
	config.LoadEnv()
	config.InitLogger()
	defer config.Log.Sync()

	db.ConnectDB()

	app := config.NewApp()
	route.SetupRoutes(app)

	if err := app.Listen(":" + config.Env.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
