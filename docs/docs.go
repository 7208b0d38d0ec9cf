// Package docs serves the OpenAPI description built from the handler annotations.
package docs

//go:generate go run github.com/swaggo/swag/cmd/swag init --dir ../ --generalInfo cmd/app/main.go --output . --outputTypes go,json

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.tmpl
var docTemplate string

// SwaggerInfo holds the values substituted into the template on every read.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "AfriStay API",
	Description:      "Accommodation marketplace for Rwanda: listings, bookings, favorites and promotions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
