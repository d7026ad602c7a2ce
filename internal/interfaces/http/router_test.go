package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stockroom-api/internal/application/auth"
	"github.com/jhoicas/stockroom-api/internal/application/usecase"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/stockroom-api/internal/interfaces/http"
	"github.com/jhoicas/stockroom-api/pkg/logger"
	"github.com/jhoicas/stockroom-api/pkg/password"
)

// newTestAPI arma la API completa sobre el store en memoria, con un admin sembrado.
func newTestAPI(t *testing.T) *fiber.App {
	t.Helper()
	db := memory.NewDB()
	users := memory.NewUserRepository(db)

	authUC := auth.NewAuthUseCase(users, password.NewHasher(bcrypt.MinCost), auth.JWTConfig{
		Secret: testJWTSecret,
		Issuer: testIssuer,
	})
	_, err := authUC.EnsureAdmin(context.Background(), "admin", "adminpw")
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		Gate:        auth.NewGate(users, testJWTSecret),
		UserUC:      usecase.NewUserUseCase(users),
		ProductUC:   usecase.NewProductUseCase(memory.NewProductRepository(db), nil, logger.Nop()),
		AnalyticsUC: usecase.NewAnalyticsUseCase(memory.NewAnalyticsRepository(db), pdf.NewMarotoReportGenerator("Stockroom")),
	})
	return app
}

// call ejecuta la petición y devuelve status, headers y cuerpo.
func call(t *testing.T, app *fiber.App, method, path, token, body string) (int, http.Header, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header, out
}

func decode(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m), string(body))
	return m
}

func login(t *testing.T, app *fiber.App, username, pass string) string {
	t.Helper()
	status, _, body := call(t, app, http.MethodPost, "/login", "",
		fmt.Sprintf(`{"username":%q,"password":%q}`, username, pass))
	require.Equal(t, http.StatusOK, status, string(body))
	tok, _ := decode(t, body)["access_token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func register(t *testing.T, app *fiber.App, username, pass string) {
	t.Helper()
	status, _, body := call(t, app, http.MethodPost, "/register", "",
		fmt.Sprintf(`{"username":%q,"password":%q}`, username, pass))
	require.Equal(t, http.StatusCreated, status, string(body))
}

func createProduct(t *testing.T, app *fiber.App, token, sku string, quantity int) string {
	t.Helper()
	status, _, body := call(t, app, http.MethodPost, "/products", token,
		fmt.Sprintf(`{"name":"Prod %s","type":"General","sku":%q,"quantity":%d,"price":"10.50"}`, sku, sku, quantity))
	require.Equal(t, http.StatusCreated, status, string(body))
	id, _ := decode(t, body)["id"].(string)
	require.NotEmpty(t, id)
	return id
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_EscenarioRegistroLoginListado(t *testing.T) {
	app := newTestAPI(t)

	status, _, body := call(t, app, http.MethodPost, "/register", "", `{"username":"alice","password":"pw1"}`)
	require.Equal(t, http.StatusCreated, status)
	reg := decode(t, body)
	assert.Equal(t, "alice", reg["username"])
	assert.NotEmpty(t, reg["id"])
	assert.NotEmpty(t, reg["message"])
	assert.NotContains(t, string(body), "password")

	token := login(t, app, "alice", "pw1")

	status, _, _ = call(t, app, http.MethodGet, "/products", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _, body = call(t, app, http.MethodGet, "/products", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"currentPage":1,"totalPages":0,"totalProducts":0,"products":[]}`, string(body))
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Register_Duplicado409(t *testing.T) {
	app := newTestAPI(t)
	register(t, app, "bob", "x")

	status, _, body := call(t, app, http.MethodPost, "/register", "", `{"username":"bob","password":"y"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", decode(t, body)["code"])
}

func TestAPI_Register_Validacion400(t *testing.T) {
	app := newTestAPI(t)

	status, _, body := call(t, app, http.MethodPost, "/register", "", `{"username":"bob"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	out := decode(t, body)
	assert.Equal(t, "VALIDATION", out["code"])
	assert.Contains(t, out["fields"], "password")

	status, _, _ = call(t, app, http.MethodPost, "/register", "", `{not json`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_Login_ErroresIndistinguibles(t *testing.T) {
	app := newTestAPI(t)
	register(t, app, "carol", "right")

	s1, _, wrongPass := call(t, app, http.MethodPost, "/login", "", `{"username":"carol","password":"wrong"}`)
	s2, _, unknown := call(t, app, http.MethodPost, "/login", "", `{"username":"nadie","password":"right"}`)

	assert.Equal(t, http.StatusUnauthorized, s1)
	assert.Equal(t, http.StatusUnauthorized, s2)
	assert.JSONEq(t, string(wrongPass), string(unknown))
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios (admin)
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Users_SoloAdmin(t *testing.T) {
	app := newTestAPI(t)
	register(t, app, "dave", "pw")
	userTok := login(t, app, "dave", "pw")
	adminTok := login(t, app, "admin", "adminpw")

	status, _, _ := call(t, app, http.MethodGet, "/users", userTok, "")
	assert.Equal(t, http.StatusForbidden, status)

	status, _, body := call(t, app, http.MethodGet, "/users", adminTok, "")
	require.Equal(t, http.StatusOK, status)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(body, &users))
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0]["username"])
	assert.Equal(t, "dave", users[1]["username"])
	assert.NotContains(t, string(body), "$2a$")
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Products_CrearObtenerYDuplicado(t *testing.T) {
	app := newTestAPI(t)
	register(t, app, "erin", "pw")
	tok := login(t, app, "erin", "pw")

	id := createProduct(t, app, tok, "SKU-1", 4)

	status, _, body := call(t, app, http.MethodGet, "/products/"+id, tok, "")
	require.Equal(t, http.StatusOK, status)
	p := decode(t, body)
	assert.Equal(t, "SKU-1", p["sku"])
	assert.EqualValues(t, 4, p["quantity"])
	assert.Equal(t, "10.5", p["price"])

	status, _, body = call(t, app, http.MethodPost, "/products", tok,
		`{"name":"Otro","type":"General","sku":"SKU-1","quantity":99,"price":1}`)
	assert.Equal(t, http.StatusConflict, status, string(body))

	_, _, body = call(t, app, http.MethodGet, "/products/"+id, tok, "")
	assert.EqualValues(t, 4, decode(t, body)["quantity"], "el original no cambia")
}

func TestAPI_Products_CrearValidacion(t *testing.T) {
	app := newTestAPI(t)
	register(t, app, "frank", "pw")
	tok := login(t, app, "frank", "pw")

	status, _, body := call(t, app, http.MethodPost, "/products", tok, `{"name":"Sin sku","quantity":-2}`)
	assert.Equal(t, http.StatusBadRequest, status)
	fields, _ := decode(t, body)["fields"].(map[string]any)
	assert.Contains(t, fields, "sku")
	assert.Contains(t, fields, "type")
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "quantity")
}

func TestAPI_Products_UpdateQuantity(t *testing.T) {
	app := newTestAPI(t)
	register(t, app, "gina", "pw")
	tok := login(t, app, "gina", "pw")
	id := createProduct(t, app, tok, "UPD", 1)

	status, _, body := call(t, app, http.MethodPut, "/products/"+id+"/quantity", tok, `{"quantity":12}`)
	require.Equal(t, http.StatusOK, status, string(body))
	out := decode(t, body)
	assert.NotEmpty(t, out["message"])
	product, _ := out["product"].(map[string]any)
	assert.EqualValues(t, 12, product["quantity"])

	status, _, body = call(t, app, http.MethodPut, "/products/"+id+"/quantity", tok, `{"quantity":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode(t, body)["code"])

	status, _, _ = call(t, app, http.MethodPut, "/products/00000000-0000-0000-0000-0000000000ff/quantity", tok, `{"quantity":3}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, _, _ = call(t, app, http.MethodPut, "/products/no-existe/quantity", tok, `{"quantity":3}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_Products_Paginacion(t *testing.T) {
	app := newTestAPI(t)
	register(t, app, "hank", "pw")
	tok := login(t, app, "hank", "pw")
	for i := 0; i < 25; i++ {
		createProduct(t, app, tok, fmt.Sprintf("P-%02d", i), i)
	}

	status, _, body := call(t, app, http.MethodGet, "/products?page=2&limit=10", tok, "")
	require.Equal(t, http.StatusOK, status)
	var page struct {
		CurrentPage   int              `json:"currentPage"`
		TotalPages    int              `json:"totalPages"`
		TotalProducts int              `json:"totalProducts"`
		Products      []map[string]any `json:"products"`
	}
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 25, page.TotalProducts)
	require.Len(t, page.Products, 10)
	assert.Equal(t, "P-10", page.Products[0]["sku"])

	_, _, body = call(t, app, http.MethodGet, "/products?page=abc&limit=0", tok, "")
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 1, page.CurrentPage)
	assert.Len(t, page.Products, 10)

	status, _, body = call(t, app, http.MethodGet, "/products?page=1000000000000000000&limit=10", tok, "")
	require.Equal(t, http.StatusOK, status)
	page.Products = nil
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 1000000000000000000, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 25, page.TotalProducts)
	require.NotNil(t, page.Products)
	assert.Empty(t, page.Products)
}

// ──────────────────────────────────────────────────────────────────────────────
// Analítica (admin)
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_TopProducts(t *testing.T) {
	app := newTestAPI(t)
	adminTok := login(t, app, "admin", "adminpw")
	for i, q := range []int{5, 10, 3, 10, 1, 7} {
		createProduct(t, app, adminTok, fmt.Sprintf("T-%d", i), q)
	}

	status, _, body := call(t, app, http.MethodGet, "/analytics/top-products", adminTok, "")
	require.Equal(t, http.StatusOK, status)
	var top []map[string]any
	require.NoError(t, json.Unmarshal(body, &top))
	require.Len(t, top, 5)
	got := make([]string, 0, len(top))
	for _, p := range top {
		got = append(got, p["sku"].(string))
	}
	assert.Equal(t, []string{"T-1", "T-3", "T-5", "T-0", "T-2"}, got)

	register(t, app, "ivan", "pw")
	status, _, _ = call(t, app, http.MethodGet, "/analytics/top-products", login(t, app, "ivan", "pw"), "")
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAPI_TopProductsReport(t *testing.T) {
	app := newTestAPI(t)
	adminTok := login(t, app, "admin", "adminpw")
	createProduct(t, app, adminTok, "PDF-1", 3)

	status, header, body := call(t, app, http.MethodGet, "/analytics/top-products/report.pdf", adminTok, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/pdf", header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestAPI_RutaInexistente(t *testing.T) {
	app := newTestAPI(t)
	status, _, body := call(t, app, http.MethodGet, "/no-existe", "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decode(t, body)["code"])
}
