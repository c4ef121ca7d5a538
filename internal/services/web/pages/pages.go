// Package pages embeds the site's static HTML shells and maps request paths
// to them.
package pages

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/louisbranch/festival/internal/services/web/routepath"
)

//go:embed shells/*.html shells/admin/*.html
var shellFS embed.FS

// NotFoundFile is the shell served for unknown paths.
const NotFoundFile = "not-found.html"

// Page is one routable shell.
type Page struct {
	Path string
	File string
	// Admin pages pin the light theme.
	Admin bool
	// Protected pages require an admin session.
	Protected bool
}

// DefaultPages lists the festival site.
func DefaultPages() []Page {
	return []Page{
		{Path: routepath.Root, File: "index.html"},
		{Path: routepath.About, File: "about.html"},
		{Path: routepath.Lineup, File: "lineup.html"},
		{Path: routepath.Schedule, File: "schedule.html"},
		{Path: routepath.EventInfo, File: "info.html"},
		{Path: routepath.Venue, File: "venue.html"},
		{Path: routepath.FAQ, File: "faq.html"},
		{Path: routepath.Register, File: "register.html"},
		{Path: routepath.Tickets, File: "tickets.html"},
		{Path: routepath.Donate, File: "donate.html"},
		{Path: routepath.Privacy, File: "privacy.html"},
		{Path: routepath.Admin, File: "admin/dashboard.html", Admin: true, Protected: true},
		{Path: routepath.AdminRegistrants, File: "admin/registrations.html", Admin: true, Protected: true},
		{Path: routepath.AdminTickets, File: "admin/tickets.html", Admin: true, Protected: true},
		{Path: routepath.AdminDonations, File: "admin/donations.html", Admin: true, Protected: true},
		{Path: routepath.AdminAnalytics, File: "admin/analytics.html", Admin: true, Protected: true},
		{Path: routepath.AdminAudit, File: "admin/audit.html", Admin: true, Protected: true},
		{Path: routepath.AdminCheckIn, File: "admin/check-in.html", Admin: true, Protected: true},
		{Path: routepath.AdminLogin, File: "admin/login.html", Admin: true},
	}
}

// Catalog resolves request paths to shells. It is read-only after
// construction.
type Catalog struct {
	fsys  fs.FS
	pages map[string]Page
}

// NewCatalog checks that every page's shell exists in fsys.
func NewCatalog(fsys fs.FS, pages []Page) (*Catalog, error) {
	if fsys == nil {
		return nil, errors.New("shell filesystem is required")
	}
	byPath := make(map[string]Page, len(pages))
	for _, page := range pages {
		if page.Path == "" || page.File == "" {
			return nil, fmt.Errorf("page %q: path and file are required", page.Path)
		}
		if _, exists := byPath[page.Path]; exists {
			return nil, fmt.Errorf("page %q registered twice", page.Path)
		}
		if _, err := fs.Stat(fsys, page.File); err != nil {
			return nil, fmt.Errorf("page %q: %w", page.Path, err)
		}
		byPath[page.Path] = page
	}
	return &Catalog{fsys: fsys, pages: byPath}, nil
}

// Default returns the catalog of embedded festival shells.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(shellFS, "shells")
	if err != nil {
		return nil, fmt.Errorf("resolve shells: %w", err)
	}
	return NewCatalog(sub, DefaultPages())
}

// Lookup finds the page served at path.
func (c *Catalog) Lookup(path string) (Page, bool) {
	page, ok := c.pages[path]
	return page, ok
}

// Shell reads the HTML of page.
func (c *Catalog) Shell(page Page) ([]byte, error) {
	data, err := fs.ReadFile(c.fsys, page.File)
	if err != nil {
		return nil, fmt.Errorf("read shell %s: %w", page.File, err)
	}
	return data, nil
}

// NotFound reads the shell for unknown paths. A catalog without one returns
// fs.ErrNotExist.
func (c *Catalog) NotFound() ([]byte, error) {
	return c.Shell(Page{File: NotFoundFile})
}

// Pages returns every page sorted by path.
func (c *Catalog) Pages() []Page {
	pages := make([]Page, 0, len(c.pages))
	for _, page := range c.pages {
		pages = append(pages, page)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Path < pages[j].Path })
	return pages
}
