// Command bridgectl exercises the bridge providers from the command line.
// It composes the same wiring the shared library uses, so its output is
// what a host embedding the library would see.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bytedance/sonic"

	"github.com/contextkit/nativebridge/internal/config"
	"github.com/contextkit/nativebridge/internal/logging"
	"github.com/contextkit/nativebridge/internal/providers/appdetect"
	"github.com/contextkit/nativebridge/internal/providers/knownapps"
	"github.com/contextkit/nativebridge/internal/providers/ocr"
	"github.com/contextkit/nativebridge/internal/service"
)

func main() {
	frontmost := flag.Bool("frontmost", false, "Print the frontmost application")
	apps := flag.Bool("apps", false, "Print installed applications as JSON")
	ocrFile := flag.String("ocr", "", "Recognize text in the given image file")
	configFile := flag.String("config", "", "YAML config overlay")
	listTools := flag.Bool("tools", false, "List registered services and tools")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *configFile != "" {
		loaded, err := config.LoadFile(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	catalog := knownapps.New()
	if cfg.KnownApps.Path != "" {
		if err := catalog.LoadFile(cfg.KnownApps.Path); err != nil {
			log.Fatalf("Failed to load known apps: %v", err)
		}
	}

	appProvider := appdetect.NewProvider(
		appdetect.NewDetector(cfg.Detection), catalog, logger, cfg.Detection.Serialize)
	ocrProvider := ocr.NewProvider(
		ocr.NewEngine(), logger, cfg.OCR.MaxImageBytes, cfg.OCR.Serialize)

	registry := service.NewRegistry()
	if err := registry.Register(appProvider); err != nil {
		log.Fatalf("Failed to register appdetect: %v", err)
	}
	if err := registry.Register(ocrProvider); err != nil {
		log.Fatalf("Failed to register ocr: %v", err)
	}

	ctx := context.Background()

	switch {
	case *listTools:
		printJSON(map[string]interface{}{
			"services": registry.List(nil),
			"stats":    registry.Stats(),
		})

	case *frontmost:
		result, err := registry.Execute(ctx, "appdetect.frontmost", nil, nil)
		if err != nil {
			log.Fatalf("Execute failed: %v", err)
		}
		printResult(result.Success, result.Data, result.Error)

	case *apps:
		json, err := appProvider.InstalledAppsJSON()
		if err != nil {
			log.Fatalf("Enumeration failed: %v", err)
		}
		fmt.Println(json)

	case *ocrFile != "":
		image, err := os.ReadFile(*ocrFile)
		if err != nil {
			log.Fatalf("Failed to read image: %v", err)
		}
		text, err := ocrProvider.Extract(ctx, image)
		if err != nil {
			log.Fatalf("Recognition failed: %v", err)
		}
		fmt.Println(text)

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func printResult(ok bool, data map[string]interface{}, errMsg *string) {
	if !ok {
		msg := "unavailable"
		if errMsg != nil {
			msg = *errMsg
		}
		log.Fatalf("Call failed: %s", msg)
	}
	printJSON(data)
}

func printJSON(v interface{}) {
	out, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
	fmt.Println(string(out))
}
