package domain

type Product struct {
	SKU   string
	Name  string
	Price Money
}
