package cart

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/boutique-next/internal/logger"
	"github.com/boutique-next/internal/models"

	"github.com/google/uuid"
)

var (
	// ErrProductRequired 加购时未提供商品
	ErrProductRequired = errors.New("cart: product is required")
	// ErrVariantRequired 加购时未选择尺码或颜色
	ErrVariantRequired = errors.New("cart: size and color are required")
	// ErrInvalidQuantity 加购数量必须大于等于 1
	ErrInvalidQuantity = errors.New("cart: quantity must be at least 1")
)

// Item 购物车行：一个 (商品, 尺码, 颜色) 变体及其数量
type Item struct {
	ID        string          `json:"id"`         // 行ID（随机 UUID，删除后重加会生成新行）
	ProductID string          `json:"product_id"` // 商品ID
	Size      string          `json:"size"`       // 尺码
	Color     string          `json:"color"`      // 颜色
	Quantity  int             `json:"quantity"`   // 数量
	Product   *models.Product `json:"product"`    // 加购时的商品快照
	CreatedAt time.Time       `json:"created_at"` // 行创建时间
}

// EffectiveUnitPrice 行生效单价；商品快照缺失时按 0 计
func (i Item) EffectiveUnitPrice() models.Money {
	return i.Product.EffectivePrice()
}

// State 购物车状态快照
type State struct {
	Items     []Item       `json:"items"`
	IsOpen    bool         `json:"is_open"`
	Total     models.Money `json:"total"`
	ItemCount int          `json:"item_count"`
}

// Store 购物车状态容器。
// items 是唯一的真实状态，total 与 itemCount 在每次变更后由 items 重新计算，
// 不会被独立赋值。isOpen 仅是抽屉的显示状态，不参与持久化。
type Store struct {
	mu        sync.Mutex
	items     []Item
	isOpen    bool
	total     models.Money
	itemCount int
	persister Persister
}

// NewStore 创建购物车并尝试从持久化层恢复一次。
// 持久化数据损坏时回退为空购物车，只记日志不报错。
func NewStore(persister Persister) *Store {
	if persister == nil {
		persister = NoopPersister{}
	}
	s := &Store{persister: persister}

	payload, found, err := persister.Load()
	if err != nil {
		logger.Warnw("cart_restore_read_failed", "error", err)
		return s
	}
	if !found {
		return s
	}
	var items []Item
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		logger.Warnw("cart_restore_parse_failed", "error", err)
		return s
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(items)
	return s
}

// Add 加入购物车。
// 与当前存在的 (商品, 尺码, 颜色) 行合并数量；否则追加新行并快照商品。
// 加购会顺带打开购物车抽屉。返回受影响的行。
func (s *Store) Add(product *models.Product, size, color string, quantity int) (Item, error) {
	if product == nil {
		return Item{}, ErrProductRequired
	}
	if strings.TrimSpace(size) == "" || strings.TrimSpace(color) == "" {
		return Item{}, ErrVariantRequired
	}
	if quantity < 1 {
		return Item{}, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var result Item
	merged := false
	for idx := range s.items {
		line := &s.items[idx]
		if line.ProductID == product.ID && line.Size == size && line.Color == color {
			line.Quantity += quantity
			result = *line
			merged = true
			break
		}
	}
	if !merged {
		snapshot := *product
		result = Item{
			ID:        uuid.NewString(),
			ProductID: product.ID,
			Size:      size,
			Color:     color,
			Quantity:  quantity,
			Product:   &snapshot,
			CreatedAt: time.Now(),
		}
		s.items = append(s.items, result)
	}

	s.isOpen = true
	s.recomputeLocked()
	s.persistLocked()
	return result, nil
}

// Remove 删除购物车行；行不存在时为 no-op
func (s *Store) Remove(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(itemID)
}

// UpdateQuantity 修改行数量；数量小于等于 0 时等价于 Remove，行不存在时为 no-op
func (s *Store) UpdateQuantity(itemID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(itemID)
		return
	}
	changed := false
	for idx := range s.items {
		if s.items[idx].ID == itemID {
			s.items[idx].Quantity = quantity
			changed = true
			break
		}
	}
	if !changed {
		return
	}
	s.recomputeLocked()
	s.persistLocked()
}

// Clear 清空购物车；抽屉状态不变
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.recomputeLocked()
	s.persistLocked()
}

// Load 整体替换购物车行（启动恢复用）并重新计算合计
func (s *Store) Load(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(items)
}

// Toggle 切换抽屉显示状态
func (s *Store) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = !s.isOpen
}

// Open 打开抽屉
func (s *Store) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = true
}

// Close 关闭抽屉
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = false
}

// State 返回当前状态快照
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return State{
		Items:     items,
		IsOpen:    s.isOpen,
		Total:     s.total,
		ItemCount: s.itemCount,
	}
}

func (s *Store) removeLocked(itemID string) {
	kept := s.items[:0]
	removed := false
	for _, line := range s.items {
		if line.ID == itemID {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return
	}
	s.items = kept
	s.recomputeLocked()
	s.persistLocked()
}

func (s *Store) loadLocked(items []Item) {
	s.items = items
	s.recomputeLocked()
	s.persistLocked()
}

// recomputeLocked 由 items 重算 total 与 itemCount
func (s *Store) recomputeLocked() {
	total := models.Money{}
	count := 0
	for _, line := range s.items {
		total = total.Add(line.EffectiveUnitPrice().MulInt(line.Quantity))
		count += line.Quantity
	}
	s.total = total
	s.itemCount = count
}

// persistLocked 将行列表序列化写入持久化层；失败只记日志
func (s *Store) persistLocked() {
	items := s.items
	if items == nil {
		items = []Item{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		logger.Warnw("cart_persist_marshal_failed", "error", err)
		return
	}
	if err := s.persister.Save(string(payload)); err != nil {
		logger.Warnw("cart_persist_write_failed", "error", err)
	}
}
