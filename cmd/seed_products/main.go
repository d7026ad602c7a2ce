// seed_products carga productos desde un CSV a través del mismo caso de uso que
// POST /products, así que aplica las mismas validaciones y la unicidad de SKU.
//
// Uso: go run ./cmd/seed_products [ruta/productos.csv] [utf-8|windows-1252|iso-8859-1]
// Por defecto lee productos.csv en UTF-8.
// Columnas (cabecera obligatoria, orden libre): name,type,sku,quantity,price,description,image_url
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/stockroom-api/internal/application/usecase"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/store"
	"github.com/jhoicas/stockroom-api/pkg/config"
	"github.com/jhoicas/stockroom-api/pkg/logger"
)

func main() {
	csvPath := "productos.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	encoding := "utf-8"
	if len(os.Args) > 2 {
		encoding = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	r, err := decodeReader(f, encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	rows, err := readProducts(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	repos, err := store.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir store: %v\n", err)
		os.Exit(1)
	}
	defer repos.Close(ctx)

	uc := usecase.NewProductUseCase(repos.Products, nil, log)
	sum := importProducts(ctx, uc, rows, log)

	fmt.Printf("Importado %s: %d creados, %d duplicados, %d inválidos\n",
		csvPath, sum.Created, sum.Duplicates, sum.Invalid)
}
