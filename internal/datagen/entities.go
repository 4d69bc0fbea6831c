package datagen

import (
	"strconv"
	"time"
)

const (
	dateFormat      = "2006-01-02"
	timestampFormat = "2006-01-02 15:04:05"
)

// User is one synthetic customer record.
type User struct {
	UserID     int
	Name       string
	Email      string
	Phone      string
	Address    string
	City       string
	Country    string
	SignupDate time.Time
}

// Product is one synthetic catalog entry.
type Product struct {
	ProductID int
	Name      string
	Category  string
	Price     float64
	Currency  string
	StockQty  int
	CreatedAt time.Time
}

// Order is one synthetic order header. TotalAmount is always the
// rounded sum of the order's line totals.
type Order struct {
	OrderID     int
	UserID      int
	OrderDate   time.Time
	Status      string
	TotalAmount float64
}

// OrderItem is one product line within an order.
type OrderItem struct {
	OrderItemID int
	OrderID     int
	ProductID   int
	Quantity    int
	UnitPrice   float64
	LineTotal   float64
}

// Review is one synthetic product review.
type Review struct {
	ReviewID   int
	UserID     int
	ProductID  int
	Rating     int
	ReviewDate time.Time
	ReviewText string
}

func (u User) record() []string {
	return []string{
		strconv.Itoa(u.UserID),
		u.Name,
		u.Email,
		u.Phone,
		u.Address,
		u.City,
		u.Country,
		u.SignupDate.Format(dateFormat),
	}
}

func (p Product) record() []string {
	return []string{
		strconv.Itoa(p.ProductID),
		p.Name,
		p.Category,
		money(p.Price),
		p.Currency,
		strconv.Itoa(p.StockQty),
		p.CreatedAt.Format(dateFormat),
	}
}

func (o Order) record() []string {
	return []string{
		strconv.Itoa(o.OrderID),
		strconv.Itoa(o.UserID),
		o.OrderDate.Format(timestampFormat),
		o.Status,
		money(o.TotalAmount),
	}
}

func (i OrderItem) record() []string {
	return []string{
		strconv.Itoa(i.OrderItemID),
		strconv.Itoa(i.OrderID),
		strconv.Itoa(i.ProductID),
		strconv.Itoa(i.Quantity),
		money(i.UnitPrice),
		money(i.LineTotal),
	}
}

func (r Review) record() []string {
	return []string{
		strconv.Itoa(r.ReviewID),
		strconv.Itoa(r.UserID),
		strconv.Itoa(r.ProductID),
		strconv.Itoa(r.Rating),
		r.ReviewDate.Format(dateFormat),
		r.ReviewText,
	}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
