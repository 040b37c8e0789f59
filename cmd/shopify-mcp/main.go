// Command shopify-mcp starts the Shopify MCP server on either the HTTP or
// the stdio front end.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"shopify-mcp/internal/config"
	"shopify-mcp/internal/mcp"
	"shopify-mcp/internal/registry"
	"shopify-mcp/internal/server"
	"shopify-mcp/internal/shopify"
	"shopify-mcp/internal/tools"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "shopify-mcp",
	Short:        "MCP server for the Shopify Admin API",
	Long:         "shopify-mcp exposes Shopify product, order, and customer operations as MCP tools over HTTP or stdio.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("access-token", "", "Shopify Admin API access token (or "+config.EnvAccessToken+")")
	rootCmd.PersistentFlags().String("store-domain", "", "myshopify store domain (or "+config.EnvStoreDomain+")")
	rootCmd.PersistentFlags().String("config", "", "Path to optional YAML config file")

	rootCmd.Version = version
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newStdioCmd())
}

// loadConfig resolves configuration from flags, environment, and file,
// exiting with a diagnostic when required credentials are missing.
func loadConfig(cmd *cobra.Command) *config.Config {
	accessToken, _ := cmd.Flags().GetString("access-token")
	storeDomain, _ := cmd.Flags().GetString("store-domain")
	configPath, _ := cmd.Flags().GetString("config")
	port, _ := cmd.Flags().GetString("port")

	cfg, err := config.Load(config.Options{
		AccessToken: accessToken,
		StoreDomain: storeDomain,
		Port:        port,
		ConfigPath:  configPath,
	})
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	return cfg
}

// buildRegistry wires the tool set to a Shopify client built from cfg.
func buildRegistry(cfg *config.Config) *registry.Registry {
	client := shopify.New(cfg.StoreDomain, cfg.AccessToken, nil)
	reg, err := registry.New(tools.All(client)...)
	if err != nil {
		log.Fatalf("tool registration failed: %v", err)
	}
	return reg
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP front end",
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := loadConfig(cmd)
			reg := buildRegistry(cfg)
			srv := server.New(server.Config{
				Registry: reg,
				Token:    cfg.Token,
				CacheTTL: cfg.CacheTTL,
			})

			log.Printf("Starting MCP HTTP server on :%s (%d tools)", cfg.Port, reg.Len())
			certFile := os.Getenv("TLS_CERT_FILE")
			keyFile := os.Getenv("TLS_KEY_FILE")
			if certFile != "" && keyFile != "" {
				log.Println("TLS enabled: using provided certificate and key")
				if err := http.ListenAndServeTLS(":"+cfg.Port, certFile, keyFile, srv.Router()); err != nil {
					log.Fatalf("server error: %v", err)
				}
				return
			}
			if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
				log.Fatalf("server error: %v", err)
			}
		},
	}
	cmd.Flags().String("port", "", "Listening port (or "+config.EnvPort+", default "+config.DefaultPort+")")
	return cmd
}

func newStdioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Start the stdio JSON-RPC front end",
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := loadConfig(cmd)
			reg := buildRegistry(cfg)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Printf("Starting MCP stdio server (%d tools)", reg.Len())
			if err := mcp.NewServer(reg).Run(ctx); err != nil && err != context.Canceled {
				log.Fatalf("server error: %v", err)
			}
		},
	}
}
