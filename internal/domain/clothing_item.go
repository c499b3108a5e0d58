package domain

// ClothingItem — одна позиция заказа. Собственной идентичности не имеет,
// принадлежит целиком родительскому заказу. JSON-теги фиксируют формат
// items_json в хранилище.
type ClothingItem struct {
	Type      string  `json:"type"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price"`
	LineTotal float64 `json:"totalPrice"`
}

// NewClothingItem создаёт позицию с посчитанной суммой строки.
func NewClothingItem(itemType string, quantity int, unitPrice float64) ClothingItem {
	return ClothingItem{
		Type:      itemType,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: float64(quantity) * unitPrice,
	}
}

// WithQuantity возвращает копию с новым количеством и пересчитанной суммой.
func (c ClothingItem) WithQuantity(quantity int) ClothingItem {
	c.Quantity = quantity
	c.LineTotal = float64(quantity) * c.UnitPrice
	return c
}

// WithUnitPrice возвращает копию с новой ценой и пересчитанной суммой.
func (c ClothingItem) WithUnitPrice(unitPrice float64) ClothingItem {
	c.UnitPrice = unitPrice
	c.LineTotal = float64(c.Quantity) * unitPrice
	return c
}
