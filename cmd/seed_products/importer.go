package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/application/usecase"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/pkg/logger"
)

var requiredColumns = []string{"name", "type", "sku", "price"}

// csvRow una fila del CSV ya convertida a la entrada del caso de uso.
type csvRow struct {
	Line int
	In   dto.CreateProductRequest
	Err  error // error de formato (precio ilegible); la fila cuenta como inválida
}

// summary resultado de la importación.
type summary struct {
	Created    int
	Duplicates int
	Invalid    int
}

// decodeReader envuelve r para transcodificar a UTF-8.
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(encoding, "_", "-")) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "iso-8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("codificación no soportada: %q", encoding)
	}
}

// readProducts lee el CSV con cabecera. Las columnas se ubican por nombre.
func readProducts(r io.Reader) ([]csvRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cabecera: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("falta la columna %q", c)
		}
	}

	var rows []csvRow
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(col string) string {
			i, ok := cols[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		row := csvRow{Line: line, In: dto.CreateProductRequest{
			Name:        get("name"),
			Type:        get("type"),
			SKU:         get("sku"),
			Description: get("description"),
			ImageURL:    get("image_url"),
		}}
		if q := get("quantity"); q != "" {
			n := json.Number(q)
			row.In.Quantity = &n
		}
		if p := get("price"); p != "" {
			price, err := decimal.NewFromString(p)
			if err != nil {
				row.Err = fmt.Errorf("price %q: %w", p, err)
			} else {
				row.In.Price = &price
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// importProducts crea cada fila; duplicados e inválidos se cuentan y registran sin abortar.
func importProducts(ctx context.Context, uc *usecase.ProductUseCase, rows []csvRow, log *logger.Logger) summary {
	var sum summary
	for _, row := range rows {
		if row.Err != nil {
			sum.Invalid++
			log.Warn().Int("line", row.Line).Err(row.Err).Msg("fila inválida")
			continue
		}
		_, err := uc.Create(ctx, row.In)
		switch {
		case err == nil:
			sum.Created++
		case errors.Is(err, domain.ErrConflict):
			sum.Duplicates++
			log.Info().Int("line", row.Line).Str("sku", row.In.SKU).Msg("sku ya existe, se omite")
		case errors.Is(err, domain.ErrInvalidInput):
			sum.Invalid++
			log.Warn().Int("line", row.Line).Err(err).Msg("fila inválida")
		default:
			sum.Invalid++
			log.Error().Int("line", row.Line).Err(err).Msg("error creando producto")
		}
	}
	return sum
}
