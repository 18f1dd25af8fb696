// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package balances is the currency of the runtime: free and reserved balances,
// named locks and the total issuance.
package balances

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/dappforce/subsocial-go/builtin/storage"
	"github.com/dappforce/subsocial-go/log"
	"github.com/dappforce/subsocial-go/subsocial"
)

var logger = log.WithContext("pkg", "balances")

var (
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrLiquidityRestrictions = errors.New("account liquidity restrictions prevent withdrawal")
	ErrOverflow              = errors.New("balance overflow")
)

// Balances implements the currency over runtime storage.
type Balances struct {
	accounts      *storage.Map[subsocial.AccountID, account]
	locks         *storage.DoubleMap[subsocial.AccountID, LockID, uint256.Int]
	totalIssuance *storage.Value[uint256.Int]
}

func New(sctx *storage.Context) *Balances {
	return &Balances{
		accounts:      storage.NewMap[subsocial.AccountID, account](sctx, "Account", subsocial.DecodeAccountID),
		locks:         storage.NewDoubleMap[subsocial.AccountID, LockID, uint256.Int](sctx, "Locks", decodeLockID),
		totalIssuance: storage.NewValue[uint256.Int](sctx, "TotalIssuance"),
	}
}

func (b *Balances) getAccount(who subsocial.AccountID) (account, error) {
	acc, err := b.accounts.Get(who)
	if err != nil {
		return account{}, errors.Wrap(err, "failed to get account")
	}
	return acc, nil
}

func (b *Balances) setAccount(who subsocial.AccountID, acc account) error {
	if acc.Free.IsZero() && acc.Reserved.IsZero() {
		b.accounts.Remove(who)
		return nil
	}
	if err := b.accounts.Set(who, acc); err != nil {
		return errors.Wrap(err, "failed to set account")
	}
	return nil
}

// FreeBalance returns the free balance, locked funds included.
func (b *Balances) FreeBalance(who subsocial.AccountID) (uint256.Int, error) {
	acc, err := b.getAccount(who)
	return acc.Free, err
}

// ReservedBalance returns the reserved balance.
func (b *Balances) ReservedBalance(who subsocial.AccountID) (uint256.Int, error) {
	acc, err := b.getAccount(who)
	return acc.Reserved, err
}

// TotalIssuance returns the amount of currency in existence.
func (b *Balances) TotalIssuance() (uint256.Int, error) {
	return b.totalIssuance.Get()
}

// Frozen returns the largest lock on the account. Locks overlap, they do not add up.
func (b *Balances) Frozen(who subsocial.AccountID) (uint256.Int, error) {
	var frozen uint256.Int
	err := b.locks.IteratePrefix(who, func(_ LockID, amount uint256.Int) (bool, error) {
		if amount.Cmp(&frozen) > 0 {
			frozen = amount
		}
		return true, nil
	})
	if err != nil {
		return uint256.Int{}, errors.Wrap(err, "failed to iterate locks")
	}
	return frozen, nil
}

// Usable returns the part of the free balance not held by any lock.
func (b *Balances) Usable(who subsocial.AccountID) (uint256.Int, error) {
	acc, err := b.getAccount(who)
	if err != nil {
		return uint256.Int{}, err
	}
	frozen, err := b.Frozen(who)
	if err != nil {
		return uint256.Int{}, err
	}
	var usable uint256.Int
	if acc.Free.Cmp(&frozen) > 0 {
		usable.Sub(&acc.Free, &frozen)
	}
	return usable, nil
}

func (b *Balances) ensureCanWithdraw(who subsocial.AccountID, acc *account, amount *uint256.Int) error {
	if acc.Free.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	usable, err := b.Usable(who)
	if err != nil {
		return err
	}
	if usable.Cmp(amount) < 0 {
		return ErrLiquidityRestrictions
	}
	return nil
}

// Reserve moves amount from the free to the reserved balance.
func (b *Balances) Reserve(who subsocial.AccountID, amount *uint256.Int) error {
	acc, err := b.getAccount(who)
	if err != nil {
		return err
	}
	if err := b.ensureCanWithdraw(who, &acc, amount); err != nil {
		return err
	}
	acc.Free.Sub(&acc.Free, amount)
	acc.Reserved.Add(&acc.Reserved, amount)
	return b.setAccount(who, acc)
}

// Unreserve moves up to amount back to the free balance.
// It returns the part of amount that was not reserved.
func (b *Balances) Unreserve(who subsocial.AccountID, amount *uint256.Int) (uint256.Int, error) {
	acc, err := b.getAccount(who)
	if err != nil {
		return uint256.Int{}, err
	}
	actual := *amount
	if acc.Reserved.Cmp(&actual) < 0 {
		actual = acc.Reserved
	}
	acc.Reserved.Sub(&acc.Reserved, &actual)
	acc.Free.Add(&acc.Free, &actual)
	if err := b.setAccount(who, acc); err != nil {
		return uint256.Int{}, err
	}
	var missing uint256.Int
	missing.Sub(amount, &actual)
	return missing, nil
}

// SetLock creates or replaces the lock id on the account.
func (b *Balances) SetLock(id LockID, who subsocial.AccountID, amount *uint256.Int) error {
	if amount.IsZero() {
		return b.RemoveLock(id, who)
	}
	if err := b.locks.Set(who, id, *amount); err != nil {
		return errors.Wrap(err, "failed to set lock")
	}
	logger.Trace("set lock", "id", id, "who", who.AbbrevString(), "amount", amount)
	return nil
}

// RemoveLock drops the lock id from the account.
func (b *Balances) RemoveLock(id LockID, who subsocial.AccountID) error {
	b.locks.Remove(who, id)
	return nil
}

// Lock returns the amount held by lock id.
func (b *Balances) Lock(id LockID, who subsocial.AccountID) (uint256.Int, error) {
	return b.locks.Get(who, id)
}

// Withdraw takes amount out of the usable balance. The funds leave circulation
// until the returned imbalance is resolved.
func (b *Balances) Withdraw(who subsocial.AccountID, amount *uint256.Int) (Imbalance, error) {
	if amount.IsZero() {
		return Imbalance{}, nil
	}
	acc, err := b.getAccount(who)
	if err != nil {
		return Imbalance{}, err
	}
	if err := b.ensureCanWithdraw(who, &acc, amount); err != nil {
		return Imbalance{}, err
	}
	issuance, err := b.totalIssuance.Get()
	if err != nil {
		return Imbalance{}, err
	}
	acc.Free.Sub(&acc.Free, amount)
	issuance.Sub(&issuance, amount)
	if err := b.setAccount(who, acc); err != nil {
		return Imbalance{}, err
	}
	if err := b.totalIssuance.Set(issuance); err != nil {
		return Imbalance{}, err
	}
	return Imbalance{amount: *amount}, nil
}

// ResolveCreating deposits the imbalance into the account, creating it if needed.
func (b *Balances) ResolveCreating(who subsocial.AccountID, imbalance Imbalance) error {
	if imbalance.amount.IsZero() {
		return nil
	}
	acc, err := b.getAccount(who)
	if err != nil {
		return err
	}
	issuance, err := b.totalIssuance.Get()
	if err != nil {
		return err
	}
	if _, overflow := issuance.AddOverflow(&issuance, &imbalance.amount); overflow {
		return ErrOverflow
	}
	if _, overflow := acc.Free.AddOverflow(&acc.Free, &imbalance.amount); overflow {
		return ErrOverflow
	}
	if err := b.setAccount(who, acc); err != nil {
		return err
	}
	return b.totalIssuance.Set(issuance)
}

// Issue creates new currency. It enters circulation once resolved into an account.
func (b *Balances) Issue(amount *uint256.Int) (Imbalance, error) {
	issuance, err := b.totalIssuance.Get()
	if err != nil {
		return Imbalance{}, err
	}
	if _, overflow := issuance.AddOverflow(&issuance, amount); overflow {
		return Imbalance{}, ErrOverflow
	}
	return Imbalance{amount: *amount}, nil
}

// Deposit mints amount into the account.
func (b *Balances) Deposit(who subsocial.AccountID, amount *uint256.Int) error {
	imbalance, err := b.Issue(amount)
	if err != nil {
		return err
	}
	return b.ResolveCreating(who, imbalance)
}

// Transfer moves amount of usable balance between accounts.
func (b *Balances) Transfer(from, to subsocial.AccountID, amount *uint256.Int) error {
	imbalance, err := b.Withdraw(from, amount)
	if err != nil {
		return err
	}
	return b.ResolveCreating(to, imbalance)
}
