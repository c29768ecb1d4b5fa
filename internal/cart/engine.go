package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pizzaorder-next/internal/logger"

	"github.com/shopspring/decimal"
)

const persistTimeout = 3 * time.Second

// Engine 购物车聚合与计价引擎。
// 内存状态是唯一权威：所有变更同步生效，持久化在后台尽力而为地跟进。
type Engine struct {
	key   string
	store Store

	mu    sync.Mutex
	items []LineItem

	saveCh    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewEngine 创建引擎并从存储恢复历史状态。
// 恢复失败（无数据或数据损坏）一律按空购物车处理，从不致命。
func NewEngine(key string, store Store) *Engine {
	e := &Engine{
		key:    key,
		store:  store,
		saveCh: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	e.restore()
	go e.saveLoop()
	return e
}

func (e *Engine) restore() {
	if e.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	payload, ok, err := e.store.Get(ctx, e.key)
	if err != nil {
		logger.Warnw("cart_restore_failed", "key", e.key, "error", err)
		return
	}
	if !ok {
		return
	}
	var items []LineItem
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		logger.Warnw("cart_restore_unmarshal_failed", "key", e.key, "error", err)
		return
	}
	restored := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		item.Toppings = canonicalToppings(item.Toppings)
		restored = append(restored, item)
	}
	e.items = restored
}

// AddItem 加入一个配置。
// 已有等价配置时合并数量，否则按加入顺序追加；quantity 不足 1 时按 1 处理。
func (e *Engine) AddItem(candidate Candidate, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	incoming := LineItem{
		ProductID:      candidate.ProductID,
		ProductType:    candidate.ProductType,
		Size:           candidate.Size,
		UnitPrice:      candidate.UnitPrice,
		Toppings:       canonicalToppings(candidate.Toppings),
		Customizations: candidate.Customizations,
		Quantity:       quantity,
	}

	e.mu.Lock()
	merged := false
	for i := range e.items {
		if sameConfiguration(e.items[i], incoming) {
			e.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		e.items = append(e.items, copyLineItem(incoming))
	}
	e.mu.Unlock()

	e.requestSave()
}

// UpdateQuantity 更新指定行的数量。
// 数量不足 1 时等价于删除该行；索引越界静默忽略（前端索引可能已过期）。
func (e *Engine) UpdateQuantity(index, quantity int) {
	e.mu.Lock()
	if index < 0 || index >= len(e.items) {
		e.mu.Unlock()
		logger.Debugw("cart_update_index_out_of_range", "key", e.key, "index", index)
		return
	}
	if quantity < 1 {
		e.items = append(e.items[:index], e.items[index+1:]...)
	} else {
		e.items[index].Quantity = quantity
	}
	e.mu.Unlock()

	e.requestSave()
}

// RemoveItem 删除指定行，后续行前移；索引越界静默忽略。
func (e *Engine) RemoveItem(index int) {
	e.mu.Lock()
	if index < 0 || index >= len(e.items) {
		e.mu.Unlock()
		logger.Debugw("cart_remove_index_out_of_range", "key", e.key, "index", index)
		return
	}
	e.items = append(e.items[:index], e.items[index+1:]...)
	e.mu.Unlock()

	e.requestSave()
}

// Clear 无条件清空购物车
func (e *Engine) Clear() {
	e.mu.Lock()
	e.items = nil
	e.mu.Unlock()

	e.requestSave()
}

// LineItems 返回行项的只读快照
func (e *Engine) LineItems() []LineItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	snapshot := make([]LineItem, 0, len(e.items))
	for _, item := range e.items {
		snapshot = append(snapshot, copyLineItem(item))
	}
	return snapshot
}

// TotalItems 返回所有行项数量之和
func (e *Engine) TotalItems() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := 0
	for _, item := range e.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice 返回所有行小计之和
func (e *Engine) TotalPrice() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := decimal.Zero
	for _, item := range e.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Len 返回行项条数
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.items)
}

// Close 停止后台持久化并做最后一次同步落盘
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		close(e.done)
		e.persistSnapshot()
	})
}

// requestSave 触发一次异步持久化。
// 信号通道容量为 1，密集变更会被合并成一次落盘（last-write-wins）。
func (e *Engine) requestSave() {
	select {
	case e.saveCh <- struct{}{}:
	default:
	}
}

func (e *Engine) saveLoop() {
	for {
		select {
		case <-e.done:
			return
		case <-e.saveCh:
			e.persistSnapshot()
		}
	}
}

// persistSnapshot 把当前状态写入存储。
// 失败只记日志：内存状态在本进程生命周期内始终是权威数据。
func (e *Engine) persistSnapshot() {
	if e.store == nil {
		return
	}

	e.mu.Lock()
	items := make([]LineItem, 0, len(e.items))
	for _, item := range e.items {
		items = append(items, copyLineItem(item))
	}
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if len(items) == 0 {
		if err := e.store.Remove(ctx, e.key); err != nil {
			logger.Warnw("cart_persist_remove_failed", "key", e.key, "error", err)
		}
		return
	}

	payload, err := json.Marshal(items)
	if err != nil {
		logger.Warnw("cart_persist_marshal_failed", "key", e.key, "error", err)
		return
	}
	if err := e.store.Set(ctx, e.key, string(payload)); err != nil {
		logger.Warnw("cart_persist_set_failed", "key", e.key, "error", err)
	}
}
