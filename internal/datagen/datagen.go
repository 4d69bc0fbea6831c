// Package datagen synthesizes the five e-commerce record sets and
// serializes them to CSV. All randomness flows through one seeded faker,
// so a fixed seed reproduces the dataset byte for byte.
package datagen

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"time"

	gofakeit "github.com/brianvoe/gofakeit/v7"

	"github.com/shopetl/shopetl/internal/config"
	"github.com/shopetl/shopetl/internal/csvio"
	"github.com/shopetl/shopetl/internal/schema"
)

var categories = []string{
	"Electronics",
	"Home & Kitchen",
	"Books",
	"Fashion",
	"Sports",
	"Beauty",
	"Toys",
	"Groceries",
}

var (
	orderStatuses = []any{"pending", "processing", "shipped", "delivered", "cancelled"}
	statusWeights = []float32{15, 25, 25, 30, 5}
)

const (
	maxItemsPerOrder  = 5
	maxItemQuantity   = 4
	reviewProbability = 0.55
)

// Dataset holds one generated run, ready to serialize.
type Dataset struct {
	Users      []User
	Products   []Product
	Orders     []Order
	OrderItems []OrderItem
	Reviews    []Review
}

// Generator draws synthetic records from a seeded faker.
type Generator struct {
	faker *gofakeit.Faker
	now   time.Time
}

// New creates a Generator seeded for deterministic output. Generated
// dates are anchored to the current UTC day, so a fixed seed reproduces
// identical files for any runs on the same day. Seed must be nonzero;
// the faker self-seeds on zero.
func New(seed uint64) *Generator {
	return newAt(seed, time.Now().UTC().Truncate(24*time.Hour))
}

func newAt(seed uint64, now time.Time) *Generator {
	return &Generator{
		faker: gofakeit.New(seed),
		now:   now,
	}
}

// Run validates the configuration, generates all five record sets, and
// returns them as a Dataset.
func Run(cfg config.GenerateConfig, logger *slog.Logger) (*Dataset, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	g := New(cfg.Seed)
	users := g.Users(cfg.Users)
	products := g.Products(cfg.Products)
	orders, items := g.Orders(users, products, cfg.Orders)
	reviews := g.Reviews(users, products, cfg.MaxReviews)

	logger.Info("dataset generated",
		"users", len(users),
		"products", len(products),
		"orders", len(orders),
		"order_items", len(items),
		"reviews", len(reviews),
		"seed", cfg.Seed,
	)

	return &Dataset{
		Users:      users,
		Products:   products,
		Orders:     orders,
		OrderItems: items,
		Reviews:    reviews,
	}, nil
}

func validate(cfg config.GenerateConfig) error {
	if cfg.Users < 1 {
		return fmt.Errorf("users count must be at least 1, got %d", cfg.Users)
	}
	if cfg.Products < 1 {
		return fmt.Errorf("products count must be at least 1, got %d", cfg.Products)
	}
	if cfg.Orders < 1 {
		return fmt.Errorf("orders count must be at least 1, got %d", cfg.Orders)
	}
	if cfg.MaxReviews < 1 {
		return fmt.Errorf("max_reviews must be at least 1, got %d", cfg.MaxReviews)
	}
	// The faker treats seed 0 as "pick a random seed", which would break
	// reproducibility without any visible failure.
	if cfg.Seed == 0 {
		return fmt.Errorf("seed must be nonzero")
	}
	return nil
}

// Users produces count users with sequential ids starting at 1.
func (g *Generator) Users(count int) []User {
	users := make([]User, count)
	for i := range users {
		addr := g.faker.Address()
		users[i] = User{
			UserID:     i + 1,
			Name:       g.faker.Name(),
			Email:      g.faker.Email(),
			Phone:      g.faker.PhoneFormatted(),
			Address:    addr.Street,
			City:       addr.City,
			Country:    addr.Country,
			SignupDate: g.dateBack(2, 0),
		}
	}
	return users
}

// Products produces count products with sequential ids starting at 1.
func (g *Generator) Products(count int) []Product {
	products := make([]Product, count)
	for i := range products {
		products[i] = Product{
			ProductID: i + 1,
			Name:      g.faker.ProductName(),
			Category:  g.faker.RandomString(categories),
			Price:     g.faker.Price(5, 500),
			Currency:  "USD",
			StockQty:  g.faker.Number(0, 500),
			CreatedAt: g.faker.DateRange(g.now.AddDate(-2, 0, 0), g.now.AddDate(0, 0, -1)),
		}
	}
	return products
}

// Orders produces count orders and their line items. Each order picks a
// uniform random user, a weighted status, and 1-5 distinct products;
// order_item_id is one running counter across all orders.
func (g *Generator) Orders(users []User, products []Product, count int) ([]Order, []OrderItem) {
	orders := make([]Order, 0, count)
	var items []OrderItem
	orderItemID := 1

	for orderID := 1; orderID <= count; orderID++ {
		user := users[g.faker.Number(0, len(users)-1)]
		status := g.orderStatus()

		total := 0.0
		for _, p := range g.sampleProducts(products) {
			quantity := g.faker.Number(1, maxItemQuantity)
			lineTotal := round2(float64(quantity) * p.Price)
			total += lineTotal
			items = append(items, OrderItem{
				OrderItemID: orderItemID,
				OrderID:     orderID,
				ProductID:   p.ProductID,
				Quantity:    quantity,
				UnitPrice:   p.Price,
				LineTotal:   lineTotal,
			})
			orderItemID++
		}

		orders = append(orders, Order{
			OrderID:     orderID,
			UserID:      user.UserID,
			OrderDate:   g.dateBack(0, 18),
			Status:      status,
			TotalAmount: round2(total),
		})
	}

	return orders, items
}

// Reviews runs maxReviews independent trials, each emitting a review
// with probability 0.55. Ids increment only for emitted reviews, and the
// reviewed user/product pair is independent of any order.
func (g *Generator) Reviews(users []User, products []Product, maxReviews int) []Review {
	var reviews []Review
	reviewID := 1
	for trial := 0; trial < maxReviews; trial++ {
		if g.faker.Float64Range(0, 1) >= reviewProbability {
			continue
		}
		reviews = append(reviews, Review{
			ReviewID:   reviewID,
			UserID:     users[g.faker.Number(0, len(users)-1)].UserID,
			ProductID:  products[g.faker.Number(0, len(products)-1)].ProductID,
			Rating:     g.faker.Number(1, 5),
			ReviewDate: g.dateBack(0, 18),
			ReviewText: g.faker.Sentence(18),
		})
		reviewID++
	}
	return reviews
}

// orderStatus draws one status from the weighted pool. The pools are
// fixed equal-length slices, so Weighted cannot fail; the fallback keeps
// the draw total even if they ever diverge.
func (g *Generator) orderStatus() string {
	v, err := g.faker.Weighted(orderStatuses, statusWeights)
	if err != nil {
		return "pending"
	}
	s, ok := v.(string)
	if !ok {
		return "pending"
	}
	return s
}

// sampleProducts picks 1-5 distinct products without replacement.
func (g *Generator) sampleProducts(products []Product) []Product {
	k := g.faker.Number(1, maxItemsPerOrder)
	if k > len(products) {
		k = len(products)
	}

	idx := make([]int, len(products))
	for i := range idx {
		idx[i] = i
	}
	g.faker.ShuffleInts(idx)

	picked := make([]Product, k)
	for i := 0; i < k; i++ {
		picked[i] = products[idx[i]]
	}
	return picked
}

// dateBack draws a uniform random time between now minus the given
// offset and now.
func (g *Generator) dateBack(yearsAgo, monthsAgo int) time.Time {
	start := g.now.AddDate(-yearsAgo, -monthsAgo, 0)
	return g.faker.DateRange(start, g.now)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WriteCSVs serializes the dataset into dir, one file per entity. The
// reviews file is only written when at least one review was emitted.
func (d *Dataset) WriteCSVs(dir string) error {
	type fileSet struct {
		table   string
		records [][]string
	}
	files := []fileSet{
		{"users", userRecords(d.Users)},
		{"products", productRecords(d.Products)},
		{"orders", orderRecords(d.Orders)},
		{"order_items", itemRecords(d.OrderItems)},
	}
	if len(d.Reviews) > 0 {
		files = append(files, fileSet{"reviews", reviewRecords(d.Reviews)})
	}

	for _, f := range files {
		t, ok := schema.ByName(f.table)
		if !ok {
			return fmt.Errorf("unknown table %s", f.table)
		}
		path := filepath.Join(dir, t.CSVFile())
		if err := csvio.Write(path, t.ColumnNames(), f.records); err != nil {
			return err
		}
	}
	return nil
}

func userRecords(users []User) [][]string {
	out := make([][]string, len(users))
	for i, u := range users {
		out[i] = u.record()
	}
	return out
}

func productRecords(products []Product) [][]string {
	out := make([][]string, len(products))
	for i, p := range products {
		out[i] = p.record()
	}
	return out
}

func orderRecords(orders []Order) [][]string {
	out := make([][]string, len(orders))
	for i, o := range orders {
		out[i] = o.record()
	}
	return out
}

func itemRecords(items []OrderItem) [][]string {
	out := make([][]string, len(items))
	for i, it := range items {
		out[i] = it.record()
	}
	return out
}

func reviewRecords(reviews []Review) [][]string {
	out := make([][]string, len(reviews))
	for i, r := range reviews {
		out[i] = r.record()
	}
	return out
}
