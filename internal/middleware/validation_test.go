package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFilterRequest struct {
	Search     string              `json:"search" validate:"max=100"`
	Limit      *int                `json:"limit" validate:"omitempty,gte=1,lte=100"`
	SortOrder  string              `json:"sort_order" validate:"omitempty,oneof=asc desc"`
	Attributes map[string][]string `json:"attributes" validate:"dive,keys,attribute_key,endkeys"`
}

type testBrandRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
		wantErr   bool
	}{
		{"empty body", "", "", false},
		{"valid filter", `{"search":"pipe","limit":10,"sort_order":"desc","attributes":{"color":["white"]}}`, "", false},
		{"limit above maximum", `{"limit":101}`, "limit", true},
		{"unknown sort order", `{"sort_order":"up"}`, "sort_order", true},
		{"bad attribute key", `{"attributes":{"Color":["white"]}}`, "attributes[Color]", true},
		{"malformed json", `{"search":`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req testFilterRequest
			err := DecodeAndValidate(jsonRequest(tt.body), &req)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.wantField != "" {
				errs := FormatValidationErrors(err)
				require.Len(t, errs, 1)
				assert.Contains(t, errs[0].Field, tt.wantField)
			}
		})
	}
}

// Feature: catalog-api, Property: required fields are enforced
func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a brand name is required and bounded", prop.ForAll(
		func(name string) bool {
			err := ValidateRequest(&testBrandRequest{Name: name})
			shouldPass := name != "" && len(name) <= 50
			if shouldPass {
				return err == nil
			}
			errs := FormatValidationErrors(err)
			return len(errs) == 1 && errs[0].Field == "name"
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
