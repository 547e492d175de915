package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"foodwala-storefront/config"
	httpapi "foodwala-storefront/shop-svc/internal/api/http"
	"foodwala-storefront/shop-svc/internal/catalog"
	"foodwala-storefront/shop-svc/internal/delivery"
	"foodwala-storefront/shop-svc/internal/domain"
	"foodwala-storefront/shop-svc/internal/order"
	"foodwala-storefront/shop-svc/internal/service"
	"foodwala-storefront/shop-svc/internal/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type zoneLister interface {
	ListZones(ctx context.Context) ([]domain.DeliveryZone, error)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "shop-svc",
		Short:        "Foodwala storefront: catalog, cart and chat checkout",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("SHOP_CONFIG"), "path to a YAML config file")

	root.AddCommand(
		newServeCmd(&configPath),
		newZonesCmd(&configPath),
		newOrdersCmd(&configPath),
	)
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func newZonesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "Print the delivery fee table this deployment charges",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			resolver, err := buildResolver(cmd.Context(), cfg.Delivery, zoneSource(cmd.Context(), cfg, logger))
			if err != nil {
				return err
			}
			return printZones(cmd.OutOrStdout(), resolver, cfg.Order.Currency)
		},
	}
}

func newOrdersCmd(configPath *string) *cobra.Command {
	var groupID string

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Follow order_placed events on the orders topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()
			if cfg.Kafka.Broker == "" {
				return fmt.Errorf("KAFKA_BROKER is not set")
			}

			reader := config.NewKafkaReader(cfg.Kafka, groupID)
			defer reader.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			feed := service.NewOrderFeed(reader, func(event domain.OrderEvent) {
				fmt.Fprintln(out, formatEvent(event, cfg.Order.Currency))
			}, logger)
			return feed.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&groupID, "group", "shop-svc-orders", "consumer group id")
	return cmd
}

func setup(configPath string) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := config.NewLogger(cfg.Server.LogLevel, cfg.Server.LogFormat)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

func serve(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	rdb := config.MustInitRedis(cfg.Redis, logger)
	defer rdb.Close()

	resolver, err := buildResolver(ctx, cfg.Delivery, zoneSource(ctx, cfg, logger))
	if err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: cfg.Catalog.Timeout}

	var writer storage.MessageWriter
	if cfg.Kafka.Broker != "" {
		kafkaWriter := config.NewKafkaWriter(cfg.Kafka)
		defer kafkaWriter.Close()
		writer = kafkaWriter
	}
	sinks := buildSinks(cfg.Order, writer, httpClient)
	if len(sinks) == 0 {
		logger.Warn("no order log sinks configured")
	}

	catalogClient := catalog.NewClient(catalog.Config{
		BaseURL:      cfg.Catalog.BaseURL,
		SpaceID:      cfg.Catalog.SpaceID,
		Environment:  cfg.Catalog.Environment,
		AccessToken:  cfg.Catalog.AccessToken,
		DefaultPhone: cfg.Order.ChatPhone,
		HouseName:    cfg.Catalog.HouseName,
	}, httpClient)
	house := domain.Restaurant{
		ID:    service.HouseRestaurantID,
		Name:  cfg.Catalog.HouseName,
		Phone: cfg.Order.ChatPhone,
	}
	catalogSvc := service.NewCatalogService(catalogClient, storage.NewRedisCatalogCache(rdb, cfg.Redis.CatalogTTL), house, logger)

	cartSvc := service.NewCartService(storage.NewRedisCartRepository(rdb, cfg.Redis.CartTTL), catalogSvc, logger,
		service.WithIdleTimeout(cfg.Redis.SessionIdle),
		service.WithSessionLimit(cfg.Redis.SessionLimit))

	composer := order.NewComposer(composerConfig(cfg.Order))
	dispatcher := order.NewDispatcher(composer, sinks, cfg.Order.LogTimeout, logger)
	checkoutSvc := service.NewCheckoutService(cartSvc, catalogSvc, resolver, composer, dispatcher,
		service.DefaultQRGenerator{}, cfg.Order.Currency, logger)

	handler := httpapi.NewHandler(catalogSvc, cartSvc, checkoutSvc, logger)
	logger.Info("delivery configured",
		zap.String("mode", string(resolver.Mode())),
		zap.Int("zones", len(resolver.ListZones())),
		zap.Int("sinks", len(sinks)))

	return httpapi.StartServer(ctx, ":"+cfg.Server.Port, httpapi.NewRouter(handler), logger)
}

// zoneSource opens the zone table only when the deployment reads zones from
// Postgres.
func zoneSource(ctx context.Context, cfg config.Config, logger *zap.Logger) zoneLister {
	if !cfg.Delivery.ZonesFromDB {
		return nil
	}
	repo := storage.NewPostgresZoneRepository(config.MustInitPostgres(cfg.Postgres, logger))
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Fatal("Failed to ensure delivery zone schema", zap.Error(err))
	}
	return repo
}

func buildResolver(ctx context.Context, cfg config.DeliveryConfig, source zoneLister) (*delivery.Resolver, error) {
	mode, err := delivery.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	if mode == delivery.ModeFlat {
		return delivery.NewFlatResolver(cfg.FlatFee, cfg.FlatLabel)
	}

	var zones []domain.DeliveryZone
	if cfg.ZonesFromDB {
		if source == nil {
			return nil, fmt.Errorf("zone table requested but no database configured")
		}
		if zones, err = source.ListZones(ctx); err != nil {
			return nil, fmt.Errorf("failed to load delivery zones: %w", err)
		}
	} else {
		for _, zone := range cfg.Zones {
			zones = append(zones, domain.DeliveryZone{ID: zone.ID, Name: zone.Name, Fee: zone.Fee})
		}
	}
	return delivery.NewZoneResolver(zones)
}

func buildSinks(cfg config.OrderConfig, writer storage.MessageWriter, client storage.HTTPClient) []order.Sink {
	var sinks []order.Sink
	if cfg.WebhookURL != "" {
		sinks = append(sinks, storage.NewWebhookLogger(cfg.WebhookURL, client))
	}
	if writer != nil {
		sinks = append(sinks, storage.NewKafkaPublisher(writer))
	}
	return sinks
}

func composerConfig(cfg config.OrderConfig) order.Config {
	composed := order.DefaultConfig()
	composed.ChatBaseURL = cfg.ChatBaseURL
	composed.Phone = cfg.ChatPhone
	composed.Currency = cfg.Currency
	return composed
}

func printZones(w io.Writer, resolver *delivery.Resolver, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "mode\t%s\n", resolver.Mode())
	if !resolver.RequiresZone() {
		fmt.Fprintf(tw, "fee\t%s%s\n", currency, resolver.FlatFee().String())
		return tw.Flush()
	}
	fmt.Fprintln(tw, "ID\tAREA\tFEE")
	for _, zone := range resolver.ListZones() {
		fmt.Fprintf(tw, "%s\t%s\t%s%s\n", zone.ID, zone.Name, currency, zone.Fee.String())
	}
	return tw.Flush()
}

func formatEvent(event domain.OrderEvent, currency string) string {
	area := event.Area
	if area == "" {
		area = "-"
	}
	return fmt.Sprintf("%s  %s  %s  %d items  %s%.2f",
		event.Timestamp.Format("2006-01-02 15:04:05"), event.Reference, area, event.TotalItems, currency, event.Total)
}
