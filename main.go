package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"quotedesk/collections"
	"quotedesk/config"
	"quotedesk/export"
	"quotedesk/handlers"
	"quotedesk/persistence"
	"quotedesk/store"
)

func main() {
	cfg := config.Load()
	app := pocketbase.New()

	var (
		st      *store.Store
		closers []func() error
	)

	// Open the backend and the store once the app is bootstrapped
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		ctx := context.Background()

		backend, closeBackend, err := openBackend(ctx, app, cfg)
		if err != nil {
			return err
		}
		if closeBackend != nil {
			closers = append(closers, closeBackend)
		}

		if cfg.Seed {
			if _, err := collections.Seed(ctx, backend, time.Now()); err != nil {
				log.Printf("Warning: seed data failed: %v", err)
			}
		}

		st, err = store.Open(ctx, backend)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		if cfg.Currency != "" {
			currency := cfg.Currency
			if _, err := st.UpdateSettings(store.SettingsPatch{Currency: &currency}); err != nil {
				log.Printf("Warning: currency override %q ignored: %v", cfg.Currency, err)
			}
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		ex := export.New(st, nil)

		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// ── Clients ──────────────────────────────────────────────
		se.Router.GET("/api/clients", handlers.HandleClientList(st))
		se.Router.POST("/api/clients", handlers.HandleClientCreate(st))
		se.Router.PATCH("/api/clients/{id}", handlers.HandleClientUpdate(st))
		se.Router.DELETE("/api/clients/{id}", handlers.HandleClientDelete(st))

		// ── Estimates ────────────────────────────────────────────
		// Item template routes must be before {id} to avoid matching "items" as an ID
		se.Router.GET("/api/estimates/items/template", handlers.HandleItemTemplateDownload())
		se.Router.POST("/api/estimates/items/import/errors", handlers.HandleImportErrorReport())
		se.Router.GET("/api/estimates", handlers.HandleEstimateList(st))
		se.Router.POST("/api/estimates", handlers.HandleEstimateCreate(st))
		se.Router.GET("/api/estimates/{id}", handlers.HandleEstimateView(st))
		se.Router.PATCH("/api/estimates/{id}", handlers.HandleEstimateUpdate(st))
		se.Router.PUT("/api/estimates/{id}/items", handlers.HandleEstimateItems(st))
		se.Router.POST("/api/estimates/{id}/items/import", handlers.HandleEstimateImport(st))
		se.Router.POST("/api/estimates/{id}/quotes", handlers.HandleQuoteFromEstimate(st))

		// ── Quotes ───────────────────────────────────────────────
		se.Router.GET("/api/quotes", handlers.HandleQuoteList(st))
		se.Router.GET("/api/quotes/{id}", handlers.HandleQuoteView(st))
		se.Router.PATCH("/api/quotes/{id}", handlers.HandleQuoteUpdate(st))
		se.Router.PUT("/api/quotes/{id}/items", handlers.HandleQuoteItems(st))
		se.Router.GET("/api/quotes/{id}/metrics", handlers.HandleQuoteMetrics(st))
		se.Router.POST("/api/quotes/{id}/status", handlers.HandleQuoteStatus(st))

		// ── Quote export ─────────────────────────────────────────
		se.Router.GET("/api/templates", handlers.HandleTemplateList())
		se.Router.GET("/quotes/{id}/export/pdf", handlers.HandleExportPDF(ex))
		se.Router.GET("/quotes/{id}/export/excel", handlers.HandleExportExcel(ex))
		se.Router.GET("/quotes/{id}/report/pdf", handlers.HandleMarginReport(ex))
		se.Router.GET("/quotes/{id}/print", handlers.HandlePrint(ex))

		// ── Settings & data ──────────────────────────────────────
		se.Router.GET("/api/settings", handlers.HandleSettingsView(st))
		se.Router.PATCH("/api/settings", handlers.HandleSettingsUpdate(st))
		se.Router.GET("/api/options", handlers.HandleOptions())
		se.Router.GET("/api/dashboard", handlers.HandleDashboard(st))
		se.Router.GET("/api/backup", handlers.HandleBackupDownload(st))
		se.Router.POST("/api/backup", handlers.HandleBackupRestore(st))
		se.Router.DELETE("/api/backup", handlers.HandleClearAll(st))

		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/api/dashboard")
		})

		return se.Next()
	})

	app.OnTerminate().BindFunc(func(e *core.TerminateEvent) error {
		if st != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := st.Close(ctx); err != nil {
				log.Printf("Warning: closing store: %v", err)
			}
		}
		for _, c := range closers {
			if err := c(); err != nil {
				log.Printf("Warning: closing backend: %v", err)
			}
		}
		return e.Next()
	})

	app.RootCmd.AddCommand(renderCommand())

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// openBackend picks the persistence backend named by the configuration. The
// returned close func may be nil.
func openBackend(ctx context.Context, app core.App, cfg config.Config) (persistence.Backend, func() error, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		r := persistence.NewRedis(persistence.RedisConf{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Key:      cfg.StateKey,
		})
		if err := r.Ping(ctx); err != nil {
			_ = r.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		return r, r.Close, nil
	case config.BackendMemory:
		log.Println("Warning: memory backend, data is lost on exit")
		return persistence.NewMemory(), nil, nil
	default:
		if err := collections.Setup(app); err != nil {
			return nil, nil, fmt.Errorf("setup collections: %w", err)
		}
		return persistence.NewPocketBase(app, cfg.StateKey), nil, nil
	}
}

// renderCommand renders one quote of a backup file to a PDF without starting
// the server.
func renderCommand() *cobra.Command {
	var dataPath, quoteID, templateID, outPath string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a quote from a backup file to PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := os.ReadFile(dataPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			backend := persistence.NewMemory()
			if err := backend.Save(ctx, blob); err != nil {
				return err
			}
			st, err := store.Open(ctx, backend)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			res, err := export.New(st, nil).Export(ctx, export.Request{
				QuoteID:    quoteID,
				TemplateID: templateID,
			})
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = res.Filename
			}
			if err := os.WriteFile(outPath, res.Blob, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d pages)\n", outPath, res.Pages)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "backup JSON file")
	cmd.Flags().StringVar(&quoteID, "quote", "", "quote id")
	cmd.Flags().StringVar(&templateID, "template", "", "template id (modern, classic or bold)")
	cmd.Flags().StringVar(&outPath, "out", "", "output file, defaults to the quote number")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("quote")
	return cmd
}
