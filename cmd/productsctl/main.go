// Package main is the productsctl command line tool. It drives the catalog
// client core against a real backend: listing products, running the form
// workflow for creates and updates, and deleting or verifying ids.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/bancoplus/catalog/internal/api"
	"github.com/bancoplus/catalog/internal/config"
	"github.com/bancoplus/catalog/internal/form"
	"github.com/bancoplus/catalog/internal/observability"
	"github.com/bancoplus/catalog/internal/products"
)

// Build-time variables set via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0 -X main.commit=abc1234"
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: productsctl [-config FILE] COMMAND [args]

commands:
  list                      print the product collection
  get ID                    print one product
  create                    create a product from field flags
  update ID                 update a product from field flags
  delete ID                 delete a product
  verify ID                 report whether an id is taken

field flags for create/update:
  -id -name -description -logo -release [-revision]`)
}

func run() int {
	flag.Usage = usage
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 1
	}

	logger, err := observability.NewLogger(cfg.Observability)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()
	logger = logger.With(zap.String("version", version), zap.String("commit", commit))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()
	ctx = observability.WithLogger(ctx, logger)

	var opts []api.ClientOption
	if cfg.Observability.Metrics.Enabled {
		opts = append(opts, api.WithMetrics(observability.InitMetrics(prometheus.DefaultRegisterer)))
	}
	client := api.NewClient(cfg.API, logger, opts...)
	repo := products.NewRepository(client)
	cache := products.NewListCache(repo, 0)

	switch cmd := flag.Arg(0); cmd {
	case "list":
		return list(ctx, cache)
	case "get":
		return get(ctx, cache, flag.Arg(1))
	case "create":
		return submit(ctx, logger, repo, cache, form.ModeAdd, "", flag.Args()[1:])
	case "update":
		if flag.NArg() < 2 {
			usage()
			return 2
		}
		return submit(ctx, logger, repo, cache, form.ModeEdit, flag.Arg(1), flag.Args()[2:])
	case "delete":
		return del(ctx, logger, repo, cache, flag.Arg(1))
	case "verify":
		return verify(ctx, repo, flag.Arg(1))
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		usage()
		return 2
	}
}

func list(ctx context.Context, cache *products.ListCache) int {
	items, err := cache.Get(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return printJSON(items)
}

func get(ctx context.Context, cache *products.ListCache, id string) int {
	prefill := form.NewPrefill(cache, nil)
	prefill.Load(ctx, id)
	if err := prefill.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if prefill.NotFound() {
		fmt.Fprintf(os.Stderr, "product %q not found\n", id)
		return 1
	}
	return printJSON(prefill.Values())
}

// submit runs the full form workflow so a CLI mutation goes through the
// same validation and verification path the mobile form uses.
func submit(ctx context.Context, logger *zap.Logger, repo products.Repository, cache *products.ListCache, mode form.Mode, productID string, args []string) int {
	fs := flag.NewFlagSet("fields", flag.ContinueOnError)
	id := fs.String("id", "", "product id")
	name := fs.String("name", "", "product name")
	description := fs.String("description", "", "product description")
	logo := fs.String("logo", "", "logo URL")
	release := fs.String("release", "", "release date (YYYY-MM-DD)")
	revision := fs.String("revision", "", "revision date, derived from release when omitted")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	w := form.NewWorkflow(form.WorkflowConfig{
		Mode:       mode,
		ProductID:  productID,
		Repository: repo,
		OnAfterSuccess: func(context.Context) error {
			cache.Invalidate()
			return nil
		},
	})

	if mode == form.ModeEdit {
		prefill := form.NewPrefill(cache, func(v form.Values) { w.Reset(v) })
		prefill.Load(ctx, productID)
		if err := prefill.Err(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if prefill.NotFound() {
			fmt.Fprintf(os.Stderr, "product %q not found\n", productID)
			return 1
		}
	}

	setIfGiven(w, form.FieldID, *id)
	setIfGiven(w, form.FieldName, *name)
	setIfGiven(w, form.FieldDescription, *description)
	setIfGiven(w, form.FieldLogo, *logo)
	setIfGiven(w, form.FieldDateRelease, *release)
	setIfGiven(w, form.FieldDateRevision, *revision)

	if err := w.Submit(ctx); err != nil {
		logger.Error("submission rejected", zap.Error(err))
		return 1
	}

	for _, fe := range w.FieldErrors() {
		fmt.Fprintf(os.Stderr, "%s: %s\n", fe.Field, fe.Message)
	}
	if msg := w.SubmitError(); msg != "" {
		fmt.Fprintln(os.Stderr, msg)
		return 1
	}
	if msg := w.SubmitSuccess(); msg != "" {
		fmt.Println(msg)
		return 0
	}
	return 1
}

func setIfGiven(w *form.Workflow, field, value string) {
	if value != "" {
		w.SetField(field, value)
	}
}

func del(ctx context.Context, logger *zap.Logger, repo products.Repository, cache *products.ListCache, id string) int {
	if id == "" {
		usage()
		return 2
	}
	if err := repo.DeleteProduct(ctx, id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cache.Invalidate()
	logger.Info("product deleted", zap.String("id", id))
	fmt.Println("Product removed successfully.")
	return 0
}

func verify(ctx context.Context, repo products.Repository, id string) int {
	if id == "" {
		usage()
		return 2
	}
	exists, err := repo.VerifyProductID(ctx, id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(exists)
	return 0
}

func printJSON(v any) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
