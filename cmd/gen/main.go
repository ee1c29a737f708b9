package main

import (
	"booknest/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.AccountModel{},
		model.WishlistItemModel{},
		model.RefreshTokenModel{},
		model.BookModel{},
		model.OrderModel{},
		model.OrderItemModel{},
		model.ReviewModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
