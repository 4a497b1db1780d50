// internal/app/features/viewer/templates.go
package viewer

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "viewer",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
