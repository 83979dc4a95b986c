package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// TemplOption sets where and how a fragment is patched into the page.
type TemplOption = datastar.PatchElementOption

// WithTarget selects the element to patch, e.g. "#notifications".
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// TemplPatch is one fragment of a TemplMulti response.
type TemplPatch struct {
	Component templ.Component
	Options   []TemplOption
}

func Patch(component templ.Component, opts ...TemplOption) TemplPatch {
	return TemplPatch{Component: component, Options: opts}
}

type templMultiResponse struct {
	patches []TemplPatch
}

// Render patches every fragment over SSE for datastar requests and writes
// them one after another as HTML otherwise.
func (t templMultiResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := datastar.NewSSE(w, r)
		for _, p := range t.patches {
			if err := sse.PatchElementTempl(p.Component, p.Options...); err != nil {
				return err
			}
		}
		return nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	for _, p := range t.patches {
		if err := p.Component.Render(r.Context(), w); err != nil {
			return err
		}
	}
	return nil
}

// Templ renders a single component.
func Templ(component templ.Component, opts ...TemplOption) Response {
	return templMultiResponse{patches: []TemplPatch{Patch(component, opts...)}}
}

// TemplMulti renders several components, each with its own target.
func TemplMulti(patches ...TemplPatch) Response {
	return templMultiResponse{patches: patches}
}
