// Package render produces a printable HTML view of a computed invoice.
package render

import (
	businessdomain "github.com/fairmog/tagihin/internal/business/domain"
	invoicedomain "github.com/fairmog/tagihin/internal/invoice/domain"
)

// RenderInput is the deterministic input used for invoice rendering.
type RenderInput struct {
	Business businessdomain.Profile
	Invoice  invoicedomain.Response
}

type Renderer interface {
	RenderHTML(input RenderInput) (string, error)
}
