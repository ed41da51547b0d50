// Command pagecraft runs the landing page builder.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pagecraft/pagecraft/internal/config"
	"github.com/pagecraft/pagecraft/internal/resolver"
	"github.com/pagecraft/pagecraft/internal/server"
	"github.com/pagecraft/pagecraft/pkg/logging"
	"github.com/pagecraft/pagecraft/pkg/registry"
	"github.com/pagecraft/pagecraft/pkg/render"
	"github.com/pagecraft/pagecraft/pkg/store"
)

var version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	command := os.Args[1]

	switch command {
	case "serve":
		if err := runServe(os.Args[2:]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

	case "render":
		if len(os.Args) < 3 {
			fmt.Println("Error: page slug required")
			fmt.Println("Usage: pagecraft render <slug>")
			os.Exit(1)
		}
		if err := runRender(os.Args[2], os.Args[3:]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

	case "pages":
		if err := runPages(os.Args[2:]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

	case "version", "-v", "--version":
		fmt.Printf("pagecraft v%s\n", version)

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`pagecraft v%s

Usage: pagecraft <command> [arguments]

Commands:
  serve [config.yaml]    Start the builder server
  render <slug>          Render a stored page to stdout
  pages                  List stored pages
  version                Show version
  help                   Show this help

Examples:
  pagecraft serve config.yaml
  pagecraft render home
  pagecraft pages
`, version)
}

func loadConfig(args []string) (*config.Config, error) {
	if len(args) == 0 {
		return config.Default(), nil
	}
	return config.Load(args[0])
}

func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.DBPath == "" {
		return store.NewMemoryStore(), nil
	}
	return store.NewSQLiteStore(cfg.DBPath)
}

func newLogger(cfg *config.Config) *logging.SlogLogger {
	opts := []logging.Option{logging.WithLevel(logging.ParseLevel(cfg.Log.Level))}
	if cfg.Log.JSON {
		opts = append(opts, logging.WithJSON())
	}
	return logging.New(opts...)
}

func runServe(args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var res render.Resolver = render.NopResolver{}
	if cfg.DBPath != "" {
		r, err := resolver.New(cfg.DBPath)
		if err != nil {
			return err
		}
		defer r.Close()
		res = r
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, st, registry.Builtin(),
		server.WithLogger(log),
		server.WithResolver(res),
	)
	return srv.Start(ctx)
}

func runRender(slug string, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	doc, err := st.LoadBySlug(ctx, slug)
	if err != nil {
		return err
	}

	var res render.Resolver = render.NopResolver{}
	if cfg.DBPath != "" {
		r, err := resolver.New(cfg.DBPath)
		if err != nil {
			return err
		}
		defer r.Close()
		res = r
	}

	fmt.Println(render.RenderDocument(ctx, doc, res).HTML())
	return nil
}

func runPages(args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	pages, err := st.List(context.Background())
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		fmt.Println("No pages.")
		return nil
	}
	for _, p := range pages {
		status := "active"
		if !p.Active {
			status = "inactive"
		}
		fmt.Printf("%-20s %-20s %-8s %d components\n", p.ID, p.Slug, status, p.Components)
	}
	return nil
}
