// Package document parses page shells and exposes their host slot to the
// mount dispatcher.
package document

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/louisbranch/festival/internal/services/web/mount"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// MountAttribute marks a slot whose unit is fetched by the browser after
	// the shell loads.
	MountAttribute = "data-mount"
	// MountDeferred is the MountAttribute value for browser-side mounting.
	MountDeferred = "deferred"
	// NoticeID is the element that receives one-shot flash notices.
	NoticeID = "notice"
)

// Document is a parsed page. The node tree is guarded by mu because the
// dispatcher mounts from its own goroutine.
type Document struct {
	mu       sync.Mutex
	root     *html.Node
	fragment bool

	slotOnce sync.Once
	slot     *Slot
}

// Parse reads a full HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Document{root: root}, nil
}

// NewFragment builds a document that is only a host slot requesting unit.
// It backs fragment endpoints where the caller wants the unit HTML alone.
func NewFragment(unit string) *Document {
	slot := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr: []html.Attribute{
			{Key: "id", Val: mount.HostSlotID},
			{Key: mount.UnitAttribute, Val: unit},
		},
	}
	return &Document{root: slot, fragment: true}
}

// HostSlot returns the page's host slot, looked up once and cached.
func (d *Document) HostSlot() (mount.Slot, bool) {
	slot, ok := d.Slot()
	if !ok {
		return nil, false
	}
	return slot, true
}

// Slot is HostSlot with the concrete type.
func (d *Document) Slot() (*Slot, bool) {
	if d == nil {
		return nil, false
	}
	d.slotOnce.Do(func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if node := findByID(d.root, mount.HostSlotID); node != nil {
			d.slot = &Slot{doc: d, node: node}
		}
	})
	return d.slot, d.slot != nil
}

// SetRootAttributes sets attributes on the <html> element. Keys are
// applied in sorted order so output is stable.
func (d *Document) SetRootAttributes(attrs map[string]string) {
	if d == nil || len(attrs) == 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	node := findElement(d.root, atom.Html)
	if node == nil {
		return
	}
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		setAttr(node, key, attrs[key])
	}
}

// RootAttribute reads an attribute of the <html> element.
func (d *Document) RootAttribute(key string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	node := findElement(d.root, atom.Html)
	if node == nil {
		return "", false
	}
	return getAttr(node, key)
}

// SetNotice fills the notice element with message. It reports false when the
// page has no notice element.
func (d *Document) SetNotice(kind, message string) bool {
	if d == nil || strings.TrimSpace(message) == "" {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	node := findByID(d.root, NoticeID)
	if node == nil {
		return false
	}
	for child := node.FirstChild; child != nil; {
		next := child.NextSibling
		node.RemoveChild(child)
		child = next
	}
	setAttr(node, "class", "notice notice-"+kind)
	node.AppendChild(&html.Node{Type: html.TextNode, Data: message})
	return true
}

// Render writes the page. A fragment document writes only the slot content.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fragment {
		return renderChildren(w, d.root)
	}
	return html.Render(w, d.root)
}

// Slot is the host slot element of a document.
type Slot struct {
	doc     *Document
	node    *html.Node
	claimed atomic.Bool
	mounted bool
}

// UnitName returns the trimmed data-component value.
func (s *Slot) UnitName() string {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()
	name, _ := getAttr(s.node, mount.UnitAttribute)
	return strings.TrimSpace(name)
}

// Claim reserves the slot for a single mount.
func (s *Slot) Claim() bool {
	return s.claimed.CompareAndSwap(false, true)
}

// Deferred reports whether the shell asks for browser-side mounting.
func (s *Slot) Deferred() bool {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()
	value, _ := getAttr(s.node, MountAttribute)
	return strings.EqualFold(strings.TrimSpace(value), MountDeferred)
}

// Defer claims the slot and annotates it so htmx loads the unit from
// endpoint once the page is shown.
func (s *Slot) Defer(endpoint string) error {
	if !s.Claim() {
		return mount.ErrSlotOccupied
	}
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()
	setAttr(s.node, "hx-get", endpoint)
	setAttr(s.node, "hx-trigger", "load")
	setAttr(s.node, "hx-swap", "innerHTML")
	return nil
}

// Mount replaces the slot's children with fragment.
func (s *Slot) Mount(fragment []byte) error {
	nodes, err := html.ParseFragment(bytes.NewReader(fragment), s.contextNode())
	if err != nil {
		return fmt.Errorf("parse unit html: %w", err)
	}
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()
	if s.mounted {
		return mount.ErrSlotOccupied
	}
	for child := s.node.FirstChild; child != nil; {
		next := child.NextSibling
		s.node.RemoveChild(child)
		child = next
	}
	for _, node := range nodes {
		s.node.AppendChild(node)
	}
	s.mounted = true
	return nil
}

// Mounted reports whether a unit has been inserted.
func (s *Slot) Mounted() bool {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()
	return s.mounted
}

// contextNode is a detached copy of the slot element used as the parsing
// context, so fragment parsing does not touch the live tree.
func (s *Slot) contextNode() *html.Node {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()
	return &html.Node{Type: html.ElementNode, Data: s.node.Data, DataAtom: s.node.DataAtom}
}

func renderChildren(w io.Writer, node *html.Node) error {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(w, child); err != nil {
			return err
		}
	}
	return nil
}

func findByID(node *html.Node, id string) *html.Node {
	if node == nil {
		return nil
	}
	if node.Type == html.ElementNode {
		if value, ok := getAttr(node, "id"); ok && value == id {
			return node
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

func findElement(node *html.Node, a atom.Atom) *html.Node {
	if node == nil {
		return nil
	}
	if node.Type == html.ElementNode && node.DataAtom == a {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, a); found != nil {
			return found
		}
	}
	return nil
}

func getAttr(node *html.Node, key string) (string, bool) {
	for _, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func setAttr(node *html.Node, key, value string) {
	for i := range node.Attr {
		if node.Attr[i].Namespace == "" && node.Attr[i].Key == key {
			node.Attr[i].Val = value
			return
		}
	}
	node.Attr = append(node.Attr, html.Attribute{Key: key, Val: value})
}
