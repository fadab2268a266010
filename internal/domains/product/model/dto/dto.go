package dto

import (
	"hotelops/internal/domains/product/model"
	"hotelops/shared"
	"slices"
	"strings"

	"github.com/google/uuid"
)

type ProductResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Unit     string  `json:"unit"`
}

func (r *ProductResponse) FromModel(m model.Product) {
	r.ID = m.ID
	r.Name = m.Name
	r.Category = m.Category
	r.Price = m.Price
	r.Stock = m.Stock
	r.Unit = m.Unit
}

type GetProductsResponse struct {
	Products   []ProductResponse `json:"products"`
	Categories []string          `json:"categories"`
}

// FromModels lists the filtered products; categories always come from the full list.
func (r *GetProductsResponse) FromModels(filtered, all []model.Product) {
	r.Products = make([]ProductResponse, len(filtered))
	for i, m := range filtered {
		r.Products[i].FromModel(m)
	}

	r.Categories = []string{model.CategoryAll}

	seen := map[string]bool{}
	categories := []string{}

	for _, m := range all {
		if m.Category == "" || seen[m.Category] {
			continue
		}

		seen[m.Category] = true
		categories = append(categories, m.Category)
	}

	slices.Sort(categories)
	r.Categories = append(r.Categories, categories...)
}

type CreateProductRequest struct {
	Name     string  `json:"name"     validate:"required,max=100"`
	Category string  `json:"category" validate:"required,max=50"`
	Price    float64 `json:"price"    validate:"min=0"`
	Cost     float64 `json:"cost"     validate:"min=0"`
	Stock    int     `json:"stock"    validate:"min=0"`
	Unit     string  `json:"unit"     validate:"required,max=20"`
}

func (c *CreateProductRequest) ToModel(propertyID string) model.Product {
	return model.Product{
		ID:         uuid.NewString(),
		PropertyID: propertyID,
		Name:       strings.TrimSpace(c.Name),
		Category:   strings.TrimSpace(c.Category),
		Price:      c.Price,
		Cost:       c.Cost,
		Stock:      c.Stock,
		Unit:       c.Unit,
	}
}

// UpdateProductRequest leaves stock alone; stock moves through AdjustStockRequest.
type UpdateProductRequest struct {
	Name     string   `db:"name"     json:"name"     validate:"omitempty,max=100"`
	Category string   `db:"category" json:"category" validate:"omitempty,max=50"`
	Price    *float64 `db:"price"    json:"price"    validate:"omitempty,min=0"`
	Cost     *float64 `db:"cost"     json:"cost"     validate:"omitempty,min=0"`
	Unit     string   `db:"unit"     json:"unit"     validate:"omitempty,max=20"`
}

type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

// StockItemResponse is the back-office view of a product, cost included.
type StockItemResponse struct {
	ProductResponse
	Cost float64 `json:"cost"`
}

func (r *StockItemResponse) FromModel(m model.Product) {
	r.ProductResponse.FromModel(m)
	r.Cost = m.Cost
}

type ListProductsResponse struct {
	Products  []StockItemResponse `json:"products"`
	TotalPage int                 `json:"total_page"`
	TotalData int                 `json:"total_data"`
}

func (r *ListProductsResponse) FromModels(models []model.Product, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Products = make([]StockItemResponse, len(models))
	for i, m := range models {
		r.Products[i].FromModel(m)
	}
}
