// Package docs registra la especificación OpenAPI de la API en el registro de swag.
// swagger.json se regenera con `swag init -g cmd/api/main.go`.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var swaggerJSON string

// SwaggerInfo metadatos de la especificación registrada.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Title:            "Stockroom API",
	Description:      "API de inventario: usuarios con roles, catálogo de productos paginado y analítica de existencias.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  swaggerJSON,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// JSON devuelve el documento OpenAPI embebido, sin depender del directorio de trabajo.
func JSON() []byte {
	return []byte(swaggerJSON)
}
