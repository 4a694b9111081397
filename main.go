package main

import (
	"log"

	"oakridge/config"
	authController "oakridge/controllers/auth"
	"oakridge/database"
	adminRoutes "oakridge/routers/adminRoutes"
	applicationRoutes "oakridge/routers/applicationRoutes"
	authRoutes "oakridge/routers/authRoutes"
	courseRoutes "oakridge/routers/courseRoutes"
	verifyRoutes "oakridge/routers/verifyRoutes"
	"oakridge/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	if err := authController.SeedAdminUser(database.Database.Db); err != nil {
		log.Printf("Admin seeding failed: %v", err)
	}

	utils.InitializeCertificateScheduler()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	applicationRoutes.SetupApplicationRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	verifyRoutes.SetupVerifyRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
