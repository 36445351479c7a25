package postgres

import (
	"context"

	"github.com/devanshyadav01/sweetshop/internal/model"
)

// sampleSweets is the starter catalog inserted by SeedSweets.
var sampleSweets = []model.NewSweet{
	{Name: "Milk Chocolate Bar", Category: "Chocolate", Price: 2.99, Quantity: 100},
	{Name: "Dark Chocolate Truffles", Category: "Chocolate", Price: 5.99, Quantity: 50},
	{Name: "Gummy Bears", Category: "Gummy", Price: 1.99, Quantity: 150},
	{Name: "Sour Gummy Worms", Category: "Gummy", Price: 2.49, Quantity: 80},
	{Name: "Rainbow Lollipops", Category: "Lollipop", Price: 0.99, Quantity: 200},
	{Name: "Cherry Lollipop", Category: "Lollipop", Price: 1.49, Quantity: 120},
	{Name: "Peppermint Candies", Category: "Hard Candy", Price: 1.29, Quantity: 90},
	{Name: "Butterscotch Discs", Category: "Hard Candy", Price: 1.79, Quantity: 75},
	{Name: "English Toffee", Category: "Toffee", Price: 4.99, Quantity: 40},
	{Name: "Caramel Chews", Category: "Caramel", Price: 3.49, Quantity: 60},
	{Name: "Marshmallow Treats", Category: "Other", Price: 2.99, Quantity: 85},
	{Name: "White Chocolate Bark", Category: "Chocolate", Price: 6.99, Quantity: 30},
	{Name: "Fruit Gummies", Category: "Gummy", Price: 2.29, Quantity: 110},
	{Name: "Cola Gummies", Category: "Gummy", Price: 2.49, Quantity: 0}, // out of stock
	{Name: "Jawbreaker", Category: "Hard Candy", Price: 0.79, Quantity: 250},
}

// SeedSweets inserts the sample catalog if the sweets table is empty.
// Returns the number of rows inserted.
func SeedSweets(ctx context.Context, db *DB) (int, error) {
	var count int64
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM sweets`).Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	const q = `INSERT INTO sweets (name, category, price, quantity) VALUES ($1, $2, $3, $4)`
	for _, s := range sampleSweets {
		if _, err := db.Pool.Exec(ctx, q, s.Name, s.Category, s.Price, s.Quantity); err != nil {
			return 0, err
		}
	}
	return len(sampleSweets), nil
}
