// Command invoicegen renders one invoice to PDF.
//
// Input paths are read from the environment, optionally via a .env file in
// the working directory:
//
//	INVOICE_COMPANY     company profile (default config/company_config.json)
//	INVOICE_RENDER      render configuration (default config/render_config.json)
//	INVOICE_DATA        invoice record (required)
//	INVOICE_OUTPUT_DIR  output directory (default outputs)
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lvillar/invoicepdf/generator"
)

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invoicegen: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	data := os.Getenv("INVOICE_DATA")
	if data == "" {
		fmt.Fprintln(os.Stderr, "invoicegen: INVOICE_DATA is not set")
		os.Exit(2)
	}

	gen := generator.New(
		generator.WithOutputDir(getEnv("INVOICE_OUTPUT_DIR", generator.DefaultOutputDir)),
		generator.WithLogger(logger),
	)
	path, err := gen.GenerateFiles(
		getEnv("INVOICE_COMPANY", "config/company_config.json"),
		getEnv("INVOICE_RENDER", "config/render_config.json"),
		data,
	)
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	fmt.Println(path)
}
