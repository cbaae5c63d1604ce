package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/olekukonko/tablewriter"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/faouziesf/cod-manager/config"
	"github.com/faouziesf/cod-manager/database"
	"github.com/faouziesf/cod-manager/routes"
	"github.com/faouziesf/cod-manager/services"
	"github.com/faouziesf/cod-manager/utils"
)

func main() {
	// All timestamps and daily boundaries follow Tunisian local time.
	tunisLocation, err := time.LoadLocation("Africa/Tunis")
	if err != nil {
		tunisLocation = time.FixedZone("CET", 1*60*60)
	}
	time.Local = tunisLocation

	cfg := config.LoadConfig()

	if err := utils.InitLogger(); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	db := connectPostgres(cfg)
	utils.SetDB(db)

	if len(os.Args) > 1 {
		runCommand(os.Args[1], db, cfg)
		return
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	log.Println("Migration complete")

	if err := database.SeedSuperAdmin(db, cfg); err != nil {
		log.Fatalf("failed to seed super admin: %v", err)
	}
	if err := database.SeedRegions(db); err != nil {
		log.Fatalf("failed to seed regions: %v", err)
	}
	log.Println("Seeding complete")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	utils.SetRedis(rdb)
	log.Println("Connected to Redis")

	c := services.StartMaintenanceCron(db, cfg)
	defer c.Stop()
	log.Println("Maintenance cron started")

	r := routes.SetupRouter(cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("Server is running on port %s", port)

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func connectPostgres(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	log.Println("Connected to PostgreSQL")
	return db
}

// runCommand executes a one-shot maintenance task. The same jobs run on
// the cron schedule; the subcommands exist for manual runs and for
// external schedulers.
func runCommand(name string, db *gorm.DB, cfg *config.Config) {
	switch name {
	case "reset-daily-attempts":
		affected, err := services.NewOrderService(db).ResetDailyAttempts()
		if err != nil {
			log.Fatalf("reset-daily-attempts failed: %v", err)
		}
		printSummary("Daily attempts reset", [][]string{
			{"orders_reset", strconv.FormatInt(affected, 10)},
		})
	case "deactivate-trials":
		count, err := services.NewUserService(db).DeactivateExpiredTrials()
		if err != nil {
			log.Fatalf("deactivate-trials failed: %v", err)
		}
		printSummary("Expired trials deactivated", [][]string{
			{"admins_deactivated", strconv.Itoa(count)},
		})
	case "clear-notifications":
		days := 10
		if len(os.Args) > 2 {
			if n, err := strconv.Atoi(os.Args[2]); err == nil && n > 0 {
				days = n
			}
		}
		removed, err := services.NewNotificationService(db, cfg).ClearOld(days)
		if err != nil {
			log.Fatalf("clear-notifications failed: %v", err)
		}
		printSummary("Old notifications cleared", [][]string{
			{"older_than_days", strconv.Itoa(days)},
			{"notifications_removed", strconv.FormatInt(removed, 10)},
		})
	case "promote-scheduled":
		promoted, err := services.NewOrderService(db).PromoteScheduledOrders()
		if err != nil {
			log.Fatalf("promote-scheduled failed: %v", err)
		}
		printSummary("Scheduled orders promoted", [][]string{
			{"orders_promoted", strconv.FormatInt(promoted, 10)},
		})
	default:
		log.Fatalf("unknown command %q (expected reset-daily-attempts, deactivate-trials, clear-notifications or promote-scheduled)", name)
	}
}

func printSummary(title string, rows [][]string) {
	fmt.Println(title)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}
