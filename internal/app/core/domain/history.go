package domain

import "iter"

// HistoryCapacity 每個帳戶保留的最近交易筆數
const HistoryCapacity = 10

// History 固定容量的環狀緩衝區，最新的在最前面
//
// 結構:
//
//	items: 建立時一次配置，之後不再擴容
//	head: 下一筆寫入的位置
//	count: 目前筆數 (<= len(items))
type History[T any] struct {
	items []T
	head  int
	count int
}

// NewHistory 建立指定容量的 History，容量必須大於 0
func NewHistory[T any](capacity int) *History[T] {
	if capacity <= 0 {
		panic("domain: history capacity must be positive")
	}
	return &History[T]{
		items: make([]T, capacity),
	}
}

// Push 寫入一筆資料，滿了就覆蓋最舊的一筆
func (h *History[T]) Push(item T) {
	h.items[h.head] = item
	h.head = (h.head + 1) % len(h.items)
	if h.count < len(h.items) {
		h.count++
	}
}

// Len 目前筆數
func (h *History[T]) Len() int {
	return h.count
}

// Cap 容量
func (h *History[T]) Cap() int {
	return len(h.items)
}

// Snapshot 由新到舊依序走訪，不修改內容
// 回傳的序列是 lazy 的，呼叫端需在持有讀鎖時消費完畢
func (h *History[T]) Snapshot() iter.Seq[T] {
	return func(yield func(T) bool) {
		size := len(h.items)
		for i := 0; i < h.count; i++ {
			idx := (h.head - 1 - i + size) % size
			if !yield(h.items[idx]) {
				return
			}
		}
	}
}
