package cart

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/boutique-next/internal/models"

	"github.com/shopspring/decimal"
)

type memoryPersister struct {
	payload  string
	found    bool
	loadErr  error
	saveErr  error
	saveHits int
}

func (p *memoryPersister) Load() (string, bool, error) {
	return p.payload, p.found, p.loadErr
}

func (p *memoryPersister) Save(payload string) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.payload = payload
	p.found = true
	p.saveHits++
	return nil
}

func testProduct(id string, price int64) *models.Product {
	return &models.Product{
		ID:     id,
		Name:   "Produit " + id,
		Price:  models.NewMoneyFromInt(price),
		Sizes:  models.StringArray{"S", "M", "L"},
		Colors: models.StringArray{"Noir", "Blanc"},
		Stock:  10,
	}
}

func saleProduct(id string, price, salePrice int64) *models.Product {
	p := testProduct(id, price)
	p.OnSale = true
	sp := models.NewMoneyFromInt(salePrice)
	p.SalePrice = &sp
	return p
}

func mustAdd(t *testing.T, s *Store, product *models.Product, size, color string, quantity int) Item {
	t.Helper()
	item, err := s.Add(product, size, color, quantity)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	return item
}

func assertTotals(t *testing.T, s *Store, total int64, count int) {
	t.Helper()
	st := s.State()
	if !st.Total.Equal(decimal.NewFromInt(total)) {
		t.Fatalf("unexpected total: got=%s expected=%d", st.Total, total)
	}
	if st.ItemCount != count {
		t.Fatalf("unexpected item count: got=%d expected=%d", st.ItemCount, count)
	}
}

func TestAddCreatesSingleLine(t *testing.T) {
	s := NewStore(nil)
	mustAdd(t, s, testProduct("p1", 1000), "M", "Noir", 2)

	st := s.State()
	if len(st.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(st.Items))
	}
	assertTotals(t, s, 2000, 2)
	if !st.IsOpen {
		t.Fatalf("expected drawer to open after add")
	}
}

func TestAddMergesSameVariant(t *testing.T) {
	s := NewStore(nil)
	first := mustAdd(t, s, testProduct("p1", 1000), "M", "Noir", 2)
	second := mustAdd(t, s, testProduct("p1", 1000), "M", "Noir", 1)

	st := s.State()
	if len(st.Items) != 1 {
		t.Fatalf("expected merge into 1 line, got %d", len(st.Items))
	}
	if second.ID != first.ID {
		t.Fatalf("merge must keep line identity: got=%s expected=%s", second.ID, first.ID)
	}
	if st.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", st.Items[0].Quantity)
	}
	assertTotals(t, s, 3000, 3)
}

func TestAddMergeInvariantOverSequence(t *testing.T) {
	s := NewStore(nil)
	quantities := []int{1, 4, 2, 3}
	sum := 0
	for _, q := range quantities {
		mustAdd(t, s, testProduct("p1", 500), "S", "Blanc", q)
		sum += q
	}

	st := s.State()
	if len(st.Items) != 1 {
		t.Fatalf("expected exactly one line, got %d", len(st.Items))
	}
	if st.Items[0].Quantity != sum {
		t.Fatalf("expected quantity %d, got %d", sum, st.Items[0].Quantity)
	}
	assertTotals(t, s, int64(sum)*500, sum)
}

func TestAddDistinctVariantsKeepSeparateLines(t *testing.T) {
	s := NewStore(nil)
	mustAdd(t, s, testProduct("p1", 1000), "M", "Noir", 1)
	mustAdd(t, s, testProduct("p1", 1000), "L", "Noir", 1)
	mustAdd(t, s, testProduct("p1", 1000), "M", "Blanc", 1)

	if got := len(s.State().Items); got != 3 {
		t.Fatalf("expected 3 lines, got %d", got)
	}
	assertTotals(t, s, 3000, 3)
}

func TestAddValidation(t *testing.T) {
	s := NewStore(nil)
	if _, err := s.Add(nil, "M", "Noir", 1); !errors.Is(err, ErrProductRequired) {
		t.Fatalf("expected ErrProductRequired, got %v", err)
	}
	if _, err := s.Add(testProduct("p1", 100), "", "Noir", 1); !errors.Is(err, ErrVariantRequired) {
		t.Fatalf("expected ErrVariantRequired, got %v", err)
	}
	if _, err := s.Add(testProduct("p1", 100), "M", "", 1); !errors.Is(err, ErrVariantRequired) {
		t.Fatalf("expected ErrVariantRequired, got %v", err)
	}
	if _, err := s.Add(testProduct("p1", 100), "M", "Noir", 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if len(s.State().Items) != 0 {
		t.Fatalf("failed add must not mutate state")
	}
}

func TestSalePriceUsedWhenPresent(t *testing.T) {
	s := NewStore(nil)
	mustAdd(t, s, saleProduct("p1", 1000, 800), "M", "Noir", 1)
	assertTotals(t, s, 800, 1)
}

func TestZeroSalePriceFallsBackToBasePrice(t *testing.T) {
	s := NewStore(nil)
	mustAdd(t, s, saleProduct("p1", 1000, 0), "M", "Noir", 1)
	assertTotals(t, s, 1000, 1)
}

func TestSnapshotIsolatesLaterCatalogChanges(t *testing.T) {
	s := NewStore(nil)
	product := testProduct("p1", 1000)
	mustAdd(t, s, product, "M", "Noir", 1)

	// 加购后的目录调价不影响已入车的行
	product.Price = models.NewMoneyFromInt(9999)
	assertTotals(t, s, 1000, 1)
}

func TestUpdateQuantityZeroBehavesAsRemove(t *testing.T) {
	s := NewStore(nil)
	item := mustAdd(t, s, testProduct("p1", 1000), "M", "Noir", 3)

	s.UpdateQuantity(item.ID, 0)
	st := s.State()
	if len(st.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(st.Items))
	}
	assertTotals(t, s, 0, 0)
}

func TestUpdateQuantityNegativeMatchesRemove(t *testing.T) {
	build := func() (*Store, string) {
		s := NewStore(nil)
		mustAdd(t, s, testProduct("p1", 700), "S", "Noir", 2)
		target := mustAdd(t, s, testProduct("p2", 300), "M", "Blanc", 1)
		return s, target.ID
	}

	viaRemove, id1 := build()
	viaRemove.Remove(id1)
	viaUpdate, id2 := build()
	viaUpdate.UpdateQuantity(id2, -5)

	a, b := viaRemove.State(), viaUpdate.State()
	if a.ItemCount != b.ItemCount || !a.Total.Equal(b.Total.Decimal) || len(a.Items) != len(b.Items) {
		t.Fatalf("remove and update(<=0) diverged: %+v vs %+v", a, b)
	}
}

func TestUnknownIDIsNoOp(t *testing.T) {
	s := NewStore(nil)
	mustAdd(t, s, testProduct("p1", 1000), "M", "Noir", 2)
	before := s.State()

	s.Remove("missing")
	s.UpdateQuantity("missing", 5)

	after := s.State()
	if !reflect.DeepEqual(before.Items, after.Items) {
		t.Fatalf("no-op operations mutated items")
	}
	if !before.Total.Equal(after.Total.Decimal) || before.ItemCount != after.ItemCount {
		t.Fatalf("no-op operations mutated totals")
	}
}

func TestClearEmptiesItemsButKeepsDrawerState(t *testing.T) {
	s := NewStore(nil)
	mustAdd(t, s, testProduct("p1", 1000), "M", "Noir", 2)
	s.Close()

	s.Clear()
	st := s.State()
	if len(st.Items) != 0 || st.ItemCount != 0 || !st.Total.IsZero() {
		t.Fatalf("expected empty state after clear, got %+v", st)
	}
	if st.IsOpen {
		t.Fatalf("clear must not touch drawer state")
	}
}

func TestDrawerToggleDoesNotTouchItems(t *testing.T) {
	s := NewStore(nil)
	mustAdd(t, s, testProduct("p1", 1000), "M", "Noir", 1)

	s.Close()
	if s.State().IsOpen {
		t.Fatalf("expected drawer closed")
	}
	s.Toggle()
	if !s.State().IsOpen {
		t.Fatalf("expected drawer open after toggle")
	}
	s.Open()
	if !s.State().IsOpen {
		t.Fatalf("expected drawer open")
	}
	assertTotals(t, s, 1000, 1)
}

func TestReAddAfterRemoveCreatesNewLine(t *testing.T) {
	s := NewStore(nil)
	first := mustAdd(t, s, testProduct("p1", 1000), "M", "Noir", 2)
	s.Remove(first.ID)

	second := mustAdd(t, s, testProduct("p1", 1000), "M", "Noir", 1)
	if second.ID == first.ID {
		t.Fatalf("re-added variant must get a fresh line id")
	}
	st := s.State()
	if len(st.Items) != 1 || st.Items[0].Quantity != 1 {
		t.Fatalf("unexpected state after re-add: %+v", st.Items)
	}
}

func TestLoadRecomputesTotals(t *testing.T) {
	s := NewStore(nil)
	items := []Item{
		{ID: "a", ProductID: "p1", Size: "M", Color: "Noir", Quantity: 2, Product: testProduct("p1", 1000)},
		{ID: "b", ProductID: "p2", Size: "S", Color: "Blanc", Quantity: 1, Product: saleProduct("p2", 500, 400)},
	}
	s.Load(items)
	assertTotals(t, s, 2400, 3)
}

func TestMissingSnapshotCountsAsZeroPrice(t *testing.T) {
	s := NewStore(nil)
	s.Load([]Item{{ID: "a", ProductID: "p1", Size: "M", Color: "Noir", Quantity: 2, Product: nil}})
	assertTotals(t, s, 0, 2)
}

func TestPersistAfterEveryItemMutation(t *testing.T) {
	p := &memoryPersister{}
	s := NewStore(p)

	item := mustAdd(t, s, testProduct("p1", 1000), "M", "Noir", 2)
	s.UpdateQuantity(item.ID, 5)
	s.Remove(item.ID)
	if p.saveHits != 3 {
		t.Fatalf("expected 3 persisted writes, got %d", p.saveHits)
	}

	// 抽屉操作不改变 items，不触发写入
	s.Toggle()
	s.Open()
	s.Close()
	if p.saveHits != 3 {
		t.Fatalf("drawer ops must not persist, got %d writes", p.saveHits)
	}
}

func TestRestoreFromPersistedPayload(t *testing.T) {
	items := []Item{
		{ID: "a", ProductID: "p1", Size: "M", Color: "Noir", Quantity: 2, Product: testProduct("p1", 1000)},
	}
	payload, err := json.Marshal(items)
	if err != nil {
		t.Fatalf("marshal fixture failed: %v", err)
	}

	s := NewStore(&memoryPersister{payload: string(payload), found: true})
	assertTotals(t, s, 2000, 2)
	if len(s.State().Items) != 1 {
		t.Fatalf("expected restored line")
	}
}

func TestMalformedPersistedPayloadFallsBackToEmpty(t *testing.T) {
	s := NewStore(&memoryPersister{payload: "{not json", found: true})
	st := s.State()
	if len(st.Items) != 0 || st.ItemCount != 0 || !st.Total.IsZero() {
		t.Fatalf("expected empty cart on malformed payload, got %+v", st)
	}
}

func TestPersisterLoadErrorFallsBackToEmpty(t *testing.T) {
	s := NewStore(&memoryPersister{loadErr: errors.New("connection refused")})
	if len(s.State().Items) != 0 {
		t.Fatalf("expected empty cart on load error")
	}
}

func TestTotalsConsistentAfterRandomishSequence(t *testing.T) {
	s := NewStore(nil)
	p1 := testProduct("p1", 250)
	p2 := saleProduct("p2", 1000, 750)

	a := mustAdd(t, s, p1, "M", "Noir", 2)
	mustAdd(t, s, p2, "L", "Blanc", 1)
	mustAdd(t, s, p1, "M", "Noir", 3)
	s.UpdateQuantity(a.ID, 1)
	mustAdd(t, s, p2, "L", "Blanc", 2)

	// p1: 1 × 250, p2: 3 × 750
	assertTotals(t, s, 250+3*750, 4)

	st := s.State()
	var recomputed int64
	count := 0
	for _, line := range st.Items {
		recomputed += line.EffectiveUnitPrice().IntPart() * int64(line.Quantity)
		count += line.Quantity
	}
	if !st.Total.Equal(decimal.NewFromInt(recomputed)) || st.ItemCount != count {
		t.Fatalf("stored totals diverge from recomputation: %+v", st)
	}
}
