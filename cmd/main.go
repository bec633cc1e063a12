package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/shopspring/decimal"

	amqpAdapter "github.com/nurbakyt/cafepos/internal/adapter/amqp"
	"github.com/nurbakyt/cafepos/internal/adapter/logger"
	"github.com/nurbakyt/cafepos/internal/adapter/postgres"
	"github.com/nurbakyt/cafepos/internal/adapter/rabbitmq"
	"github.com/nurbakyt/cafepos/internal/adapter/receipt"
	"github.com/nurbakyt/cafepos/internal/app/catalog"
	"github.com/nurbakyt/cafepos/internal/app/checkout"
	orderApp "github.com/nurbakyt/cafepos/internal/app/order"
	"github.com/nurbakyt/cafepos/internal/config"
	"github.com/nurbakyt/cafepos/internal/domain"
	"github.com/nurbakyt/cafepos/internal/interfaces"
)

func main() {
	mode := flag.String("mode", "", "Service mode: pos, report, receipt-printer")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	if *mode == "" {
		log.Fatal("--mode flag is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	lgr := logger.New(*mode)

	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to prepare schema: %v", err)
	}

	lgr.Info("db_connected", "Connected to PostgreSQL database", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	switch *mode {
	case "pos":
		runPOS(ctx, cfg, db, mqConn, lgr)
	case "report":
		runReport(ctx, db)
	case "receipt-printer":
		runReceiptPrinter(ctx, mqConn, lgr)
	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

// posSession holds the state of one interactive counter session.
type posSession struct {
	catalog      *catalog.Manager
	orders       *orderApp.Service
	customerRepo interfaces.CustomerRepository
	calc         *checkout.Calculator
	renderer     *receipt.Renderer
	logger       logger.Logger

	customer *domain.Customer
	current  *domain.Order
}

func runPOS(ctx context.Context, cfg *config.Config, db postgres.DB, mqConn rabbitmq.Connection, lgr logger.Logger) {
	catalogMgr := catalog.NewManager(postgres.NewCatalogRepository(db), lgr)
	if err := catalogMgr.Load(ctx); err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	session := &posSession{
		catalog:      catalogMgr,
		orders:       orderApp.NewService(postgres.NewOrderRepository(db), rabbitmq.NewPublisher(mqConn), lgr),
		customerRepo: postgres.NewCustomerRepository(db),
		calc:         checkout.NewCalculator(cfg.Pricing.AutoDiscountThreshold, cfg.Pricing.AutoDiscountRate),
		renderer:     receipt.NewRenderer(),
		logger:       lgr,
	}

	lgr.Info("service_started", "POS session started", map[string]interface{}{
		"menu_items": len(catalogMgr.Items()),
	})

	fmt.Println("cafepos — type 'help' for commands")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		session.handle(ctx, line)
	}
}

func (s *posSession) handle(ctx context.Context, line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	var err error
	switch cmd {
	case "help":
		s.printHelp()
	case "menu":
		for _, item := range s.catalog.Available() {
			fmt.Printf("  %s [%s]\n", item, item.Details())
		}
	case "customer":
		err = s.setCustomer(ctx, args)
	case "new":
		err = s.newOrder()
	case "add":
		err = s.addItem(args)
	case "undo":
		if s.current == nil || !s.orders.RemoveLastItem(s.current) {
			fmt.Println("nothing to undo")
		}
	case "discount":
		err = s.applyDiscount(args)
	case "note":
		if s.current == nil {
			err = errors.New("no open order")
		} else {
			s.current.Instructions = strings.Join(args, " ")
		}
	case "bill":
		if s.current == nil {
			err = errors.New("no open order")
		} else {
			fmt.Print(s.renderer.RenderOrder(s.current))
		}
	case "confirm":
		err = s.confirm(ctx)
	case "checkout":
		err = s.checkout(args)
	case "cancel":
		if s.current == nil {
			err = errors.New("no open order")
		} else {
			s.orders.CancelOrder(s.current)
			s.current = nil
		}
	case "history":
		err = s.history()
	default:
		fmt.Printf("unknown command %q — type 'help'\n", cmd)
	}

	if err != nil {
		fmt.Println("error:", err)
	}
}

func (s *posSession) printHelp() {
	fmt.Print(`  menu                        list available items
  customer <name> <age> <gender>  select or register the customer
  new                         open a new order for the customer
  add <qty> <item name>       add units of an item
  undo                        undo the last added unit
  discount <percent>          set the manual discount percent
  note <text>                 set order special instructions
  bill                        print the current bill
  confirm                     confirm the order
  checkout <extra%> [cash]    checkout breakdown for the last confirm
  cancel                      cancel the open order
  history                     list the customer's orders
  quit                        leave
`)
}

func (s *posSession) setCustomer(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: customer <name> <age> <gender>")
	}
	age, err := strconv.Atoi(args[len(args)-2])
	if err != nil {
		return fmt.Errorf("invalid age: %w", err)
	}
	name := strings.Join(args[:len(args)-2], " ")
	gender := args[len(args)-1]

	if existing, err := s.customerRepo.FindByName(ctx, name); err == nil {
		s.customer = existing
		fmt.Println(existing)
		return nil
	}

	customer, err := domain.NewCustomer(name, age, gender)
	if err != nil {
		return err
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		// Keep serving from memory; the card just will not survive a restart.
		s.logger.Error("customer_save_failed", "Failed to persist customer", map[string]interface{}{
			"customer": customer.Name,
		}, err)
	}
	s.customer = customer
	fmt.Println(customer)
	return nil
}

func (s *posSession) newOrder() error {
	order, err := s.orders.CreateOrder(s.customer)
	if err != nil {
		return err
	}
	s.current = order
	fmt.Println("opened order", order.ID)
	return nil
}

func (s *posSession) addItem(args []string) error {
	if s.current == nil {
		return errors.New("no open order — use 'new'")
	}
	if len(args) < 2 {
		return errors.New("usage: add <qty> <item name>")
	}
	qty, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid quantity: %w", err)
	}
	name := strings.Join(args[1:], " ")

	item, ok := s.catalog.Find(name)
	if !ok {
		return domain.ErrItemNotFound
	}
	if err := s.orders.AddItem(s.current, item, qty); err != nil {
		return err
	}
	fmt.Printf("%s x%d added — running total %s TK\n", item.Name, qty, s.current.Total().StringFixed(2))
	return nil
}

func (s *posSession) applyDiscount(args []string) error {
	if s.current == nil {
		return errors.New("no open order")
	}
	if len(args) != 1 {
		return errors.New("usage: discount <percent>")
	}
	percent, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid percent: %w", err)
	}
	return s.orders.ApplyDiscount(s.current, percent)
}

func (s *posSession) confirm(ctx context.Context) error {
	if s.current == nil {
		return errors.New("no open order")
	}
	if err := s.orders.ConfirmOrder(ctx, s.current); err != nil {
		return err
	}
	if s.customer != nil {
		if err := s.customerRepo.UpdateStats(ctx, s.customer); err != nil {
			s.logger.Error("customer_stats_save_failed", "Failed to persist customer stats", map[string]interface{}{
				"customer": s.customer.Name,
			}, err)
		}
	}
	fmt.Print(s.renderer.RenderOrder(s.current))
	return nil
}

func (s *posSession) checkout(args []string) error {
	if s.current == nil {
		return errors.New("no order to check out")
	}
	extra := 0.0
	if len(args) >= 1 {
		p, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid extra percent: %w", err)
		}
		extra = p
	}

	sum, err := s.calc.Summarize(s.current.Total(), extra)
	if err != nil {
		return err
	}

	var cash *decimal.Decimal
	if len(args) >= 2 {
		c, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("invalid cash amount: %w", err)
		}
		if _, ok := sum.ChangeDue(c); !ok {
			return fmt.Errorf("cash %s does not cover payable %s", c.StringFixed(2), sum.Payable.StringFixed(2))
		}
		cash = &c
	}

	fmt.Print(s.renderer.RenderCheckout(sum, cash))
	return nil
}

func (s *posSession) history() error {
	if s.customer == nil {
		return domain.ErrMissingCustomer
	}
	orders, err := s.orders.OrderHistory(s.customer)
	if err != nil {
		return err
	}
	for _, o := range orders {
		fmt.Printf("  %s  %s  %s  %s TK\n",
			o.ID, o.CreatedAt.Format("15:04:05"), o.Status(), o.Total().StringFixed(2))
	}
	return nil
}

func runReport(ctx context.Context, db postgres.DB) {
	repo := postgres.NewOrderRepository(db)

	revenue, err := repo.TotalRevenue(ctx)
	if err != nil {
		log.Fatalf("Failed to compute revenue: %v", err)
	}
	popular, err := repo.PopularItems(ctx, 5)
	if err != nil {
		log.Fatalf("Failed to compute popular items: %v", err)
	}

	fmt.Print(receipt.NewRenderer().RenderReport(revenue, popular))
}

func runReceiptPrinter(ctx context.Context, mqConn rabbitmq.Connection, lgr logger.Logger) {
	consumer := rabbitmq.NewConsumer(mqConn)
	handler := amqpAdapter.NewReceiptHandler(receipt.NewRenderer(), lgr)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := consumer.ConsumeReceipts(ctx, handler.HandleReceipt); err != nil && !errors.Is(err, context.Canceled) {
			lgr.Error("consumer_error", "Error consuming receipts", nil, err)
		}
	}()

	lgr.Info("service_started", "Receipt printer started", nil)

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	<-sigint

	lgr.Info("shutdown_initiated", "Shutting down receipt printer", nil)
}
