// Command generate migrates the schema and writes gorm/gen query helpers.
// With -report it only prints the column mismatch report.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/bgpaten/ahyarpattani/config"
	"github.com/bgpaten/ahyarpattani/database"
	"github.com/bgpaten/ahyarpattani/models"
)

func main() {
	reportOnly := flag.Bool("report", false, "only print the column mismatch report")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	db, err := database.Open(config.LoadDatabase(config.New()))
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	if *reportOnly {
		fmt.Println("Generating column mismatch report...")
		if _, err := models.GenerateColumnMismatchReport(db); err != nil {
			fmt.Printf("Error generating report: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("Generating models and query helpers...")
	if err := models.GenerateModels(db); err != nil {
		fmt.Printf("Error generating models: %v\n", err)
		os.Exit(1)
	}
}
