package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/vastrakart/go-storefront/app/configs"
	"github.com/vastrakart/go-storefront/app/db/seeders"
	"github.com/vastrakart/go-storefront/app/models/migrations"
	"github.com/vastrakart/go-storefront/app/repositories/gormstore"
)

func RunCli() {
	cmd := &cli.Command{
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(configs.LoadEnv())
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Seed the database with the demo catalog",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(configs.LoadEnv())
					if err != nil {
						return err
					}
					if err := seeders.Seed(ctx, gormstore.NewStore(db)); err != nil {
						return err
					}
					log.Println("✅ Seeding complete")
					return nil
				},
			},
			{
				Name:  "generate-secret",
				Usage: "Generate a new JWT signing secret for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					secret := make([]byte, 32)
					if _, err := rand.Read(secret); err != nil {
						return err
					}
					fmt.Printf("JWT_SECRET=%s\n", hex.EncodeToString(secret))
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
