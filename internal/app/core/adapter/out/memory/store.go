package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/domain"
)

// accountCell 單一帳戶與保護它的讀寫鎖
type accountCell struct {
	mu      sync.RWMutex
	account *domain.Account
}

// AccountStore 帳戶 ID 對應到各自獨立上鎖的帳戶
//
// cells 在 NewAccountStore 建好之後就不再增刪，
// 所以並發查詢 map 不需要鎖，只需要每個帳戶自己的鎖
type AccountStore struct {
	cells map[uint8]*accountCell
}

// NewAccountStore 依照 seeds 建立所有帳戶 (餘額皆為 0)
//
// 參數:
//
//	seeds: 帳戶 ID 與透支額度
//
// 回傳:
//
//	*AccountStore: 建好的帳戶表
//	error: ID 重複或額度為負
func NewAccountStore(seeds []domain.AccountSeed) (*AccountStore, error) {
	cells := make(map[uint8]*accountCell, len(seeds))
	for _, seed := range seeds {
		if _, ok := cells[seed.ID]; ok {
			return nil, fmt.Errorf("account %d: %w", seed.ID, domain.ErrAccountAlreadyExists)
		}
		account, err := domain.NewAccount(seed.ID, seed.Limit)
		if err != nil {
			return nil, fmt.Errorf("account %d: %w", seed.ID, err)
		}
		cells[seed.ID] = &accountCell{account: account}
	}
	return &AccountStore{cells: cells}, nil
}

// Get 取得帳戶的存取把手，帳戶不存在時 ok 為 false
func (s *AccountStore) Get(id uint8) (AccountHandle, bool) {
	cell, ok := s.cells[id]
	if !ok {
		return AccountHandle{}, false
	}
	return AccountHandle{cell: cell}, true
}

// IDs 回傳所有帳戶 ID (由小到大)
func (s *AccountStore) IDs() []uint8 {
	ids := make([]uint8, 0, len(s.cells))
	for id := range s.cells {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len 帳戶數量
func (s *AccountStore) Len() int {
	return len(s.cells)
}

// AccountHandle 對單一帳戶的共享 / 獨占存取
type AccountHandle struct {
	cell *accountCell
}

// View 以讀鎖 (共享) 執行 fn，fn 不可修改帳戶
//
// ctx 在取得鎖之前或等待鎖期間被取消時，fn 不會執行
func (h AccountHandle) View(ctx context.Context, fn func(a *domain.Account)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.cell.mu.RLock()
	defer h.cell.mu.RUnlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	fn(h.cell.account)
	return nil
}

// Update 以寫鎖 (獨占) 執行 fn
//
// fn 一旦開始就會執行完畢，不受 ctx 取消影響
// fn 結束後若 balance < -limit 代表程式有 bug，直接 panic
func (h AccountHandle) Update(ctx context.Context, fn func(a *domain.Account) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.cell.mu.Lock()
	defer h.cell.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	err := fn(h.cell.account)
	if !h.cell.account.InvariantHolds() {
		panic(fmt.Sprintf("memory: account %d balance %d below limit %d",
			h.cell.account.ID, h.cell.account.Balance(), h.cell.account.Limit()))
	}
	return err
}
