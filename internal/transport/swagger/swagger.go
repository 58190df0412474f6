package swagger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	httpSwagger "github.com/swaggo/http-swagger"
)

func Handler() http.Handler {
	// Serve the OpenAPI spec from api/openapi.yml
	return httpSwagger.Handler(
		httpSwagger.URL("/openapi.yml"), // URL to the OpenAPI spec served at root
	)
}

// ValidateSpec loads and validates the OpenAPI document so a broken spec
// fails at startup instead of in the Swagger UI.
func ValidateSpec(ctx context.Context, path string) error {
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: true}

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("failed to load OpenAPI spec %s: %w", path, err)
	}

	if err := doc.Validate(ctx); err != nil {
		return fmt.Errorf("OpenAPI spec %s is invalid: %w", path, err)
	}

	return nil
}
