package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 10000")
	ErrCorruptSnapshot = errors.New("corrupt cart snapshot")
)

// MaxQuantity bounds a single entry.
const MaxQuantity = 10000

// Entry is one cart line. The JSON names match the snapshot format the storefront has always written.
type Entry struct {
	ProductID int `json:"id"`
	Quantity  int `json:"qty"`
}

// Cart keeps entries in insertion order with at most one entry per product.
// No entry ever holds a quantity below 1. The zero value is an empty cart.
type Cart struct {
	entries []Entry
}

func (c Cart) index(productID int) int {
	for i, e := range c.entries {
		if e.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add increases an existing entry or appends a new one. The resulting quantity may not exceed MaxQuantity.
func (c *Cart) Add(productID, qty int) error {
	if qty < 1 || qty > MaxQuantity {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, qty)
	}
	if i := c.index(productID); i >= 0 {
		if qty > MaxQuantity-c.entries[i].Quantity {
			return fmt.Errorf("%w: %d more of product %d would exceed the limit", ErrInvalidQuantity, qty, productID)
		}
		c.entries[i].Quantity += qty
		return nil
	}
	c.entries = append(c.entries, Entry{ProductID: productID, Quantity: qty})
	return nil
}

// ChangeQuantity applies delta and drops the entry once it falls below 1.
// It reports whether the cart changed; an absent product is a no-op.
// A delta that would take the entry above MaxQuantity is rejected and leaves the cart as is.
func (c *Cart) ChangeQuantity(productID, delta int) (bool, error) {
	i := c.index(productID)
	if i < 0 {
		return false, nil
	}
	q := c.entries[i].Quantity
	if delta > MaxQuantity-q {
		return false, fmt.Errorf("%w: product %d at %d cannot grow by %d", ErrInvalidQuantity, productID, q, delta)
	}
	if delta < 1-q {
		c.entries = append(c.entries[:i], c.entries[i+1:]...)
		return true, nil
	}
	c.entries[i].Quantity += delta
	return delta != 0, nil
}

// Remove deletes the entry for productID and reports whether one existed.
func (c *Cart) Remove(productID int) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	return true
}

func (c *Cart) Clear() {
	c.entries = nil
}

func (c Cart) Quantity(productID int) (int, bool) {
	if i := c.index(productID); i >= 0 {
		return c.entries[i].Quantity, true
	}
	return 0, false
}

func (c Cart) Len() int { return len(c.entries) }

func (c Cart) IsEmpty() bool { return len(c.entries) == 0 }

// Entries returns a copy in insertion order.
func (c Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c Cart) Clone() Cart {
	return Cart{entries: c.Entries()}
}

// FromEntries builds a cart from stored entries, rejecting anything a live cart could not hold.
func FromEntries(entries []Entry) (Cart, error) {
	seen := make(map[int]struct{}, len(entries))
	for _, e := range entries {
		if e.Quantity < 1 || e.Quantity > MaxQuantity {
			return Cart{}, fmt.Errorf("%w: product %d has quantity %d", ErrCorruptSnapshot, e.ProductID, e.Quantity)
		}
		if _, dup := seen[e.ProductID]; dup {
			return Cart{}, fmt.Errorf("%w: product %d appears twice", ErrCorruptSnapshot, e.ProductID)
		}
		seen[e.ProductID] = struct{}{}
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return Cart{entries: out}, nil
}

// MarshalSnapshot encodes the cart as a JSON array of {"id","qty"} records.
func MarshalSnapshot(c Cart) ([]byte, error) {
	entries := c.Entries()
	return json.Marshal(entries)
}

func UnmarshalSnapshot(payload []byte) (Cart, error) {
	var entries []Entry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return Cart{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return FromEntries(entries)
}
