package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/application/ports"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
	"github.com/jhoicas/stockroom-api/pkg/logger"
)

// ProductUseCase casos de uso del catálogo: alta, cambio de cantidad y listado paginado.
type ProductUseCase struct {
	repo   repository.ProductRepository
	events ports.ProductEventPublisher
	log    *logger.Logger
}

// NewProductUseCase construye el caso de uso. events y log pueden ser nil.
func NewProductUseCase(repo repository.ProductRepository, events ports.ProductEventPublisher, log *logger.Logger) *ProductUseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, events: events, log: log}
}

// Create valida y crea un producto. Devuelve domain.ErrConflict si el SKU ya existe.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	product, err := newProduct(in)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetBySKU(ctx, product.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.publish(ctx, ports.EventProductCreated, product)
	return &dto.CreateProductResponse{Message: "producto creado correctamente", ID: product.ID}, nil
}

// Límites de precio alineados con la columna NUMERIC(14, 2) de PostgreSQL.
const priceScale = 2

var maxPrice = decimal.New(1, 12)

// newProduct aplica las reglas de campos obligatorios y construye la entidad.
func newProduct(in dto.CreateProductRequest) (*entity.Product, error) {
	verr := domain.NewValidationError()
	name := strings.TrimSpace(in.Name)
	typ := strings.TrimSpace(in.Type)
	sku := strings.TrimSpace(in.SKU)
	if name == "" {
		verr.Add("name", "es requerido")
	}
	if typ == "" {
		verr.Add("type", "es requerido")
	}
	if sku == "" {
		verr.Add("sku", "es requerido")
	}
	var quantity int64
	if in.Quantity != nil {
		q, msg := parseQuantity(*in.Quantity)
		if msg != "" {
			verr.Add("quantity", msg)
		}
		quantity = q
	}
	switch {
	case in.Price == nil:
		verr.Add("price", "es requerido")
	case in.Price.IsNegative():
		verr.Add("price", "no puede ser negativo")
	case !in.Price.Equal(in.Price.Round(priceScale)):
		verr.Add("price", "admite a lo sumo 2 decimales")
	case in.Price.GreaterThanOrEqual(maxPrice):
		verr.Add("price", "debe ser menor que 1000000000000")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Type:        typ,
		SKU:         sku,
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Quantity:    quantity,
		Price:       *in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// parseQuantity devuelve la cantidad o un mensaje de validación.
func parseQuantity(n json.Number) (int64, string) {
	q, err := n.Int64()
	if err != nil {
		return 0, "debe ser un número entero"
	}
	if q < 0 {
		return 0, "no puede ser negativa"
	}
	return q, ""
}

// UpdateQuantity reemplaza la cantidad del producto. raw es el valor JSON tal cual llegó:
// cualquier cosa que no sea un número se rechaza antes de consultar el store.
func (uc *ProductUseCase) UpdateQuantity(ctx context.Context, id string, raw json.RawMessage) (*dto.ProductResponse, error) {
	quantity, err := quantityFromJSON(raw)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.repo.UpdateQuantity(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	uc.publish(ctx, ports.EventProductQuantityUpdated, product)
	return toProductResponse(product), nil
}

func quantityFromJSON(raw json.RawMessage) (int64, error) {
	verr := domain.NewValidationError()
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		verr.Add("quantity", "es requerida")
		return 0, verr
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		verr.Add("quantity", "debe ser un número")
		return 0, verr
	}
	n, ok := v.(json.Number)
	if !ok {
		verr.Add("quantity", "debe ser un número")
		return 0, verr
	}
	q, msg := parseQuantity(n)
	if msg != "" {
		verr.Add("quantity", msg)
		return 0, verr
	}
	return q, nil
}

// GetByID obtiene un producto por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List devuelve una página de productos en orden de inserción.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductPageResponse, error) {
	page = page.Normalize()
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductPageResponse{
		CurrentPage:   page.Page,
		TotalPages:    page.TotalPages(total),
		TotalProducts: total,
		Products:      []dto.ProductResponse{},
	}
	// Páginas más allá de la última no consultan el store.
	if int64(page.Page) > out.TotalPages {
		return out, nil
	}
	list, err := uc.repo.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out.Products = toProductResponses(list)
	return out, nil
}

func (uc *ProductUseCase) publish(ctx context.Context, eventType string, p *entity.Product) {
	ev := ports.ProductEvent{
		Type:       eventType,
		ProductID:  p.ID,
		SKU:        p.SKU,
		Quantity:   p.Quantity,
		OccurredAt: time.Now().UTC(),
	}
	if err := uc.events.Publish(ctx, ev); err != nil {
		uc.log.Warn().Err(err).Str("event", eventType).Str("product_id", p.ID).Msg("no se pudo publicar el evento")
	}
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		SKU:         p.SKU,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Quantity:    p.Quantity,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
