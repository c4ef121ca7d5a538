// Package providers wraps mounted units with request-scoped context: the
// admin session and the locked theme.
package providers

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/festival/internal/services/web/adminauth"
	"github.com/louisbranch/festival/internal/services/web/mount"
)

// Provider wraps a unit subtree.
type Provider interface {
	Wrap(child templ.Component) templ.Component
}

// Func adapts a function to Provider.
type Func func(child templ.Component) templ.Component

// Wrap calls f.
func (f Func) Wrap(child templ.Component) templ.Component {
	return f(child)
}

// Compose nests providers with the first one outermost, so inner providers
// can read context set by outer ones. Nil providers are skipped.
func Compose(providers ...Provider) mount.Decorator {
	return func(child templ.Component) templ.Component {
		for i := len(providers) - 1; i >= 0; i-- {
			if providers[i] == nil {
				continue
			}
			child = providers[i].Wrap(child)
		}
		return child
	}
}

// Auth exposes the admin session to its subtree.
type Auth struct {
	Session adminauth.Session
}

// Wrap renders child with the session in its context.
func (a Auth) Wrap(child templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if a.Session.Valid() {
			ctx = adminauth.WithSession(ctx, a.Session)
		}
		return child.Render(ctx, w)
	})
}

// Theme renders its subtree inside a container pinned to one theme.
type Theme struct {
	Value string
}

// Wrap renders child inside a data-theme scope.
func (t Theme) Wrap(child templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if t.Value == "" {
			return child.Render(ctx, w)
		}
		if _, err := io.WriteString(w, `<div class="theme-scope" data-theme="`+templ.EscapeString(t.Value)+`">`); err != nil {
			return err
		}
		if err := child.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
