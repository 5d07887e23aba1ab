package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/craneworks/crane-valuation/internal/config"
	"github.com/craneworks/crane-valuation/internal/refdata"
	"github.com/craneworks/crane-valuation/internal/valuation"
	"github.com/craneworks/crane-valuation/pkg/constants"
	"github.com/craneworks/crane-valuation/pkg/financing"
	"github.com/craneworks/crane-valuation/pkg/marketdata"
	"github.com/craneworks/crane-valuation/pkg/output"
)

func main() {

	_ = godotenv.Load()

	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	specLocation := flag.String("spec", constants.DefaultSpecFile, "path to crane specification file")
	outputFormat := flag.String("output", "", "output format (pretty or csv); overrides the config")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		logger, _ := zap.NewProduction()
		logger.Fatal(fmt.Sprintf("failed to load configuration at %s", *configLocation),
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	logger, err := conf.BuildLogger()
	if err != nil {
		fmt.Println("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initiate logger\"}")
		panic(err)
	}
	defer logger.Sync()

	spec, err := config.LoadSpecification(*specLocation)
	if err != nil {
		logger.Fatal(fmt.Sprintf("failed to load crane specification at %s", *specLocation),
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	store, err := refdata.Load(logger, refdata.Sources{
		ComparablesFile:   conf.ReferenceData.ComparablesFile,
		ComparablesSQLite: conf.ReferenceData.ComparablesSQLite,
		RentalRatesFile:   conf.ReferenceData.RentalRatesFile,
		AdjustmentsFile:   conf.ReferenceData.AdjustmentsFile,
	})
	if err != nil {
		logger.Fatal("failed to load reference data",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	opts := valuation.Options{
		MarketTimeout: time.Duration(conf.MarketData.TimeoutSeconds) * time.Second,
		FinancingTerms: financing.Terms{
			TermMonths:          conf.Financing.TermMonths,
			AnnualRatePercent:   conf.Financing.AnnualRatePercent,
			DownPaymentFraction: conf.Financing.DownPaymentFraction,
			RentalUtilization:   conf.Financing.RentalUtilization,
		},
	}
	if conf.MarketData.Enabled && conf.MarketData.Endpoint != "" {
		opts.Provider = marketdata.NewHTTPProvider(conf.MarketData.Endpoint, opts.MarketTimeout)
	}

	engine := valuation.NewEngine(logger, store, opts)
	result, err := engine.Valuate(context.Background(), spec)
	if err != nil {
		logger.Fatal("failed to compute valuation",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	formatChoice := conf.Output.Format
	if *outputFormat != "" {
		formatChoice = *outputFormat
	}
	switch formatChoice {
	case constants.OutputFormatCSV:
		output.CsvFormat(result)
	default:
		output.PrettyFormat(result)
	}
}
