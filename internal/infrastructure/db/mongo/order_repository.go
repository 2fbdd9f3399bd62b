package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/docushop/storefront/internal/core/domain"
	"github.com/docushop/storefront/internal/core/ports"
)

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

type billingDoc struct {
	Name    string `bson:"name"`
	Address string `bson:"address"`
	City    string `bson:"city"`
	Country string `bson:"country"`
	Zip     string `bson:"zip"`
	Phone   string `bson:"phone,omitempty"`
	Email   string `bson:"email"`
}

func toBillingDoc(b domain.Billing) billingDoc {
	return billingDoc(b)
}

func (d billingDoc) toDomain() domain.Billing {
	return domain.Billing(d)
}

type orderLineDoc struct {
	ProductID   string               `bson:"product_id"`
	ProductName string               `bson:"product_name"`
	Variant     string               `bson:"variant,omitempty"`
	Quantity    int                  `bson:"quantity"`
	UnitPrice   primitive.Decimal128 `bson:"unit_price"`
	Subtotal    primitive.Decimal128 `bson:"subtotal"`
}

type orderDoc struct {
	ID           string               `bson:"_id"`
	AccountID    string               `bson:"account_id,omitempty"`
	Lines        []orderLineDoc       `bson:"lines"`
	Billing      billingDoc           `bson:"billing"`
	ShippingTier string               `bson:"shipping_tier"`
	Subtotal     primitive.Decimal128 `bson:"subtotal"`
	Shipping     primitive.Decimal128 `bson:"shipping"`
	Total        primitive.Decimal128 `bson:"total"`
	Status       string               `bson:"status"`
	CreatedAt    time.Time            `bson:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at"`
}

func toOrderDoc(o *domain.Order) (orderDoc, error) {
	doc := orderDoc{
		ID:           o.ID,
		AccountID:    o.AccountID,
		Lines:        make([]orderLineDoc, 0, len(o.Lines)),
		Billing:      toBillingDoc(o.Billing),
		ShippingTier: string(o.ShippingTier),
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt.UTC(),
		UpdatedAt:    o.UpdatedAt.UTC(),
	}

	var err error
	for _, l := range o.Lines {
		line := orderLineDoc{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Variant:     l.Variant,
			Quantity:    l.Quantity,
		}
		if line.UnitPrice, err = toDecimal128(l.UnitPrice); err != nil {
			return orderDoc{}, err
		}
		if line.Subtotal, err = toDecimal128(l.Subtotal); err != nil {
			return orderDoc{}, err
		}
		doc.Lines = append(doc.Lines, line)
	}
	if doc.Subtotal, err = toDecimal128(o.Subtotal); err != nil {
		return orderDoc{}, err
	}
	if doc.Shipping, err = toDecimal128(o.Shipping); err != nil {
		return orderDoc{}, err
	}
	if doc.Total, err = toDecimal128(o.Total); err != nil {
		return orderDoc{}, err
	}
	return doc, nil
}

func (d orderDoc) toDomain() (*domain.Order, error) {
	o := &domain.Order{
		ID:           d.ID,
		AccountID:    d.AccountID,
		Lines:        make([]domain.OrderLine, 0, len(d.Lines)),
		Billing:      d.Billing.toDomain(),
		ShippingTier: domain.ShippingTier(d.ShippingTier),
		Status:       domain.OrderStatus(d.Status),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}

	var err error
	for _, l := range d.Lines {
		line := domain.OrderLine{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Variant:     l.Variant,
			Quantity:    l.Quantity,
		}
		if line.UnitPrice, err = fromDecimal128(l.UnitPrice); err != nil {
			return nil, err
		}
		if line.Subtotal, err = fromDecimal128(l.Subtotal); err != nil {
			return nil, err
		}
		o.Lines = append(o.Lines, line)
	}
	if o.Subtotal, err = fromDecimal128(d.Subtotal); err != nil {
		return nil, err
	}
	if o.Shipping, err = fromDecimal128(d.Shipping); err != nil {
		return nil, err
	}
	if o.Total, err = fromDecimal128(d.Total); err != nil {
		return nil, err
	}
	return o, nil
}

// Create inserts the order as one document, lines and billing included.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toOrderDoc(o)
	if err != nil {
		return err
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d orderDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return d.toDomain()
}

// TransitionStatus updates the status only while it still equals from, so of
// two racing transitions exactly one matches the filter.
func (r *OrderRepository) TransitionStatus(ctx context.Context, id string, from, to domain.OrderStatus, at time.Time) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "status": string(from)}
	update := bson.M{"$set": bson.M{"status": string(to), "updated_at": at.UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var d orderDoc
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&d)
	if err == nil {
		return d.toDomain()
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("count order: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return nil, domain.ErrInvalidTransition
}

func (r *OrderRepository) List(ctx context.Context, f ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(skipFor(f.Page, f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find orders: %w", err)
	}
	defer cur.Close(ctx)

	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]*domain.Order, 0, len(docs))
	for _, d := range docs {
		o, err := d.toDomain()
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, nil
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

// Revenue sums completed order totals server-side.
func (r *OrderRepository) Revenue(ctx context.Context) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": string(domain.OrderCompleted)}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "revenue": bson.M{"$sum": "$total"}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return decimal.Zero, fmt.Errorf("aggregate revenue: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Revenue primitive.Decimal128 `bson:"revenue"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return decimal.Zero, fmt.Errorf("decode revenue: %w", err)
	}
	if len(rows) == 0 {
		return decimal.Zero, nil
	}
	return fromDecimal128(rows[0].Revenue)
}
