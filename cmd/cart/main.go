package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/parthg2112/ecommerce-wp-proj/internal/cart"
	"github.com/parthg2112/ecommerce-wp-proj/internal/config"
)

const usage = `usage: cart <command> [args]

commands:
  products              list the catalog
  add <productId>       add one unit to the cart
  qty <productId> <n>   change a quantity by n (may be negative)
  remove <productId>    drop a product from the cart
  show                  print the cart and bill
  clear                 empty the cart
  checkout              place an order for the cart`

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.LoadCart(), args, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.CartConfig, args []string, logger *slog.Logger) error {
	client := cart.NewClient(cfg.StorefrontURL, &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})

	storage, closeStorage := openStorage(cfg)
	defer closeStorage()

	command := args[0]

	var catalog cart.Catalog
	if command == "products" || command == "add" {
		products, err := client.Products(ctx)
		if err != nil {
			return err
		}
		catalog = cart.NewCatalog(products)

		if command == "products" {
			for _, p := range products {
				fmt.Printf("%3d  %-16s %-12s %8s\n", p.ID, p.Name, p.Type, p.Price.StringFixed(2))
			}
			return nil
		}
	}

	m, err := cart.NewManager(ctx, storage, catalog)
	if err != nil {
		return err
	}

	switch command {
	case "add":
		id, err := productArg(args, 1)
		if err != nil {
			return err
		}
		if _, ok := catalog.Lookup(id); !ok {
			return fmt.Errorf("no product with id %d", id)
		}
		if err := m.Add(ctx, id); err != nil {
			return err
		}
	case "qty":
		id, err := productArg(args, 1)
		if err != nil {
			return err
		}
		if len(args) < 3 {
			return errors.New("qty needs a product id and a delta")
		}
		delta, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid delta %q", args[2])
		}
		if err := m.ChangeQuantity(ctx, id, delta); err != nil {
			return err
		}
	case "remove":
		id, err := productArg(args, 1)
		if err != nil {
			return err
		}
		if err := m.Remove(ctx, id); err != nil {
			return err
		}
	case "clear":
		if err := m.Clear(ctx); err != nil {
			return err
		}
	case "show":
	case "checkout":
		res, err := cart.NewCheckout(client, logger).PlaceOrder(ctx, m)
		if err != nil {
			return errors.New(cart.Notice(err))
		}
		fmt.Printf("Order placed successfully! Order ID: %s\n", res.Reference)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n\n%s", command, usage)
	}

	printCart(m.State())
	return nil
}

func openStorage(cfg config.CartConfig) (cart.Storage, func()) {
	if cfg.RedisAddr == "" {
		return cart.NewFileStorage(cfg.File), func() {}
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	return cart.NewRedisStorage(rdb, cfg.Owner), func() { _ = rdb.Close() }
}

func productArg(args []string, i int) (int64, error) {
	if len(args) <= i {
		return 0, errors.New("missing product id")
	}
	id, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q", args[i])
	}
	return id, nil
}

func printCart(state cart.State) {
	if len(state) == 0 {
		fmt.Println("Your cart is empty.")
		return
	}
	for _, it := range state {
		fmt.Printf("%3d  %-16s x%-3d %8s\n", it.ProductID, it.Name, it.Quantity, it.Price.StringFixed(2))
	}
	fmt.Printf("\n%d items\n%s", state.Count(), cart.ComputeBill(state))
}
