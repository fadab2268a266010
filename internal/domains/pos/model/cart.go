// Package model holds the point-of-sale cart of a workspace.
package model

import (
	productModel "hotelops/internal/domains/product/model"
	saleModel "hotelops/internal/domains/sale/model"
	"slices"
	"sync"
)

type CartItem struct {
	Product  productModel.Product
	Quantity int
}

func (i CartItem) Subtotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}

// Cart keeps items in the order they were first added.
type Cart struct {
	mu    sync.RWMutex
	items []CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// Add puts one unit of product in the cart, incrementing an existing line.
func (c *Cart) Add(product productModel.Product) CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx := c.index(product.ID); idx >= 0 {
		c.items[idx].Quantity++

		return c.items[idx]
	}

	item := CartItem{Product: product, Quantity: 1}
	c.items = append(c.items, item)

	return item
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
// It reports whether the product was in the cart.
func (c *Cart) UpdateQuantity(productID string, quantity int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.index(productID)
	if idx < 0 {
		return false
	}

	if quantity <= 0 {
		c.items = slices.Delete(c.items, idx, idx+1)

		return true
	}

	c.items[idx].Quantity = quantity

	return true
}

func (c *Cart) Remove(productID string) bool {
	return c.UpdateQuantity(productID, 0)
}

func (c *Cart) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0.0
	for _, item := range c.items {
		total += item.Subtotal()
	}

	return total
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
}

func (c *Cart) Items() []CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.items)
}

func (c *Cart) Empty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items) == 0
}

// SaleItems converts the cart lines into stored sale items.
func (c *Cart) SaleItems() saleModel.SaleItems {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make(saleModel.SaleItems, len(c.items))
	for i, item := range c.items {
		items[i] = saleModel.SaleItem{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
			Subtotal:  item.Subtotal(),
		}
	}

	return items
}

func (c *Cart) index(productID string) int {
	return slices.IndexFunc(c.items, func(item CartItem) bool { return item.Product.ID == productID })
}
