package mapper_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/flatstore/internal/domain"
	"github.com/vladislavdragonenkov/flatstore/internal/storage/file/mapper"
	"github.com/vladislavdragonenkov/flatstore/internal/storage/file/record"
)

func validOrderRecord() *record.Order {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &record.Order{
		ID:         record.Ptr[int64](1000),
		CustomerID: record.Ptr[int64](1),
		CreatedAt:  &created,
		Items:      []record.Item{{ProductID: record.Ptr[int64](5), Qty: record.Ptr[int32](2)}},
	}
}

func TestOrderMapper_ToEntity(t *testing.T) {
	m := mapper.OrderMapper{}

	got, ok := m.ToEntity(validOrderRecord()).Get()
	require.True(t, ok)
	assert.Equal(t, int64(1000), got.ID)
	assert.Equal(t, int32(2), got.Items.Qty(5))
}

func TestOrderMapper_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mut    func(r *record.Order) *record.Order
		reason string
	}{
		{
			name:   "absent record",
			mut:    func(*record.Order) *record.Order { return nil },
			reason: "absent",
		},
		{
			name:   "missing id",
			mut:    func(r *record.Order) *record.Order { r.ID = nil; return r },
			reason: "id is required",
		},
		{
			name:   "missing timestamp",
			mut:    func(r *record.Order) *record.Order { r.CreatedAt = nil; return r },
			reason: "created_at is required",
		},
		{
			name:   "empty items",
			mut:    func(r *record.Order) *record.Order { r.Items = nil; return r },
			reason: "items must not be empty",
		},
		{
			name: "duplicate product",
			mut: func(r *record.Order) *record.Order {
				r.Items = append(r.Items, record.Item{ProductID: record.Ptr[int64](5), Qty: record.Ptr[int32](1)})
				return r
			},
			reason: "duplicate product_id 5",
		},
		{
			name:   "id out of range",
			mut:    func(r *record.Order) *record.Order { r.ID = record.Ptr(domain.MaxID + 1); return r },
			reason: domain.ErrIDOutOfRange.Error(),
		},
		{
			name: "qty not positive",
			mut: func(r *record.Order) *record.Order {
				r.Items[0].Qty = record.Ptr[int32](0)
				return r
			},
			reason: domain.ErrItemQtyInvalid.Error(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := mapper.OrderMapper{}.ToEntity(tc.mut(validOrderRecord()))
			require.False(t, out.IsAccepted())
			assert.Contains(t, out.Reason(), tc.reason)
		})
	}
}

func TestOrderMapper_RoundTrip(t *testing.T) {
	m := mapper.OrderMapper{}
	order, err := domain.NewOrder(1001, 42, time.Now(), domain.Items{9: 1, 3: 4})
	require.NoError(t, err)

	rec, ok := m.ToRecord(&order).Get()
	require.True(t, ok)
	require.Len(t, rec.Items, 2)
	assert.Equal(t, int64(3), *rec.Items[0].ProductID, "items are written in product order")

	back, ok := m.ToEntity(rec).Get()
	require.True(t, ok)
	assert.True(t, order.Equal(back))
}

func TestOrderMapper_ToRecordRejectsInvalid(t *testing.T) {
	m := mapper.OrderMapper{}

	out := m.ToRecord(nil)
	assert.False(t, out.IsAccepted())

	broken := domain.Order{ID: 1000, CustomerID: 1}
	out = m.ToRecord(&broken)
	require.False(t, out.IsAccepted())
	assert.Contains(t, out.Reason(), "created_at is required")
}

func TestBasketMapper_RoundTripEmpty(t *testing.T) {
	m := mapper.BasketMapper{}
	basket, err := domain.NewBasket(1000, 7, nil)
	require.NoError(t, err)

	rec, ok := m.ToRecord(&basket).Get()
	require.True(t, ok)

	back, ok := m.ToEntity(rec).Get()
	require.True(t, ok)
	assert.True(t, basket.Equal(back))

	out := m.ToEntity(&record.Basket{ID: record.Ptr[int64](1000)})
	assert.Contains(t, out.Reason(), "customer_id is required")
}

func TestCustomerAndProductMappers(t *testing.T) {
	c, err := domain.NewCustomer(100_000_000, "Anna")
	require.NoError(t, err)
	rec, ok := mapper.CustomerMapper{}.ToRecord(&c).Get()
	require.True(t, ok)
	back, ok := mapper.CustomerMapper{}.ToEntity(rec).Get()
	require.True(t, ok)
	assert.True(t, c.Equal(back))

	out := mapper.CustomerMapper{}.ToEntity(&record.Customer{ID: record.Ptr[int64](1), Name: record.Ptr("bad,name")})
	assert.Contains(t, out.Reason(), domain.ErrCustomerNameInvalid.Error())

	out2 := mapper.ProductMapper{}.ToEntity(&record.Product{ID: record.Ptr[int64](1)})
	assert.Contains(t, out2.Reason(), "name is required")
}

func TestRowMappers(t *testing.T) {
	m := mapper.NewProductRowMapper()

	p, ok := m.ToEntity(&record.NamedRow{ID: " 100000001 ", Name: "Milk", Columns: 2}).Get()
	require.True(t, ok)
	assert.Equal(t, domain.Product{ID: 100_000_001, Name: "Milk"}, p)

	row, ok := m.ToRecord(&p).Get()
	require.True(t, ok)
	assert.Equal(t, []string{"100000001", "Milk"}, row.Fields())

	tests := []struct {
		name   string
		row    *record.NamedRow
		reason string
	}{
		{name: "absent", row: nil, reason: "absent"},
		{name: "short row", row: &record.NamedRow{ID: "1", Columns: 1}, reason: "expected 2 columns"},
		{name: "no id", row: &record.NamedRow{Name: "Milk", Columns: 2}, reason: "id is required"},
		{name: "not a number", row: &record.NamedRow{ID: "abc", Name: "Milk", Columns: 2}, reason: "not a number"},
		{name: "bad name", row: &record.NamedRow{ID: "1", Name: "", Columns: 2}, reason: domain.ErrProductNameInvalid.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := m.ToEntity(tt.row)
			require.False(t, out.IsAccepted())
			assert.Contains(t, out.Reason(), tt.reason)
		})
	}

	cm := mapper.NewCustomerRowMapper()
	c, ok := cm.ToEntity(&record.NamedRow{ID: "100000000", Name: "Ivan Petrov", Columns: 2}).Get()
	require.True(t, ok)
	assert.Equal(t, "Ivan Petrov", c.Name)
}
