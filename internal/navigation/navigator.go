package navigation

import (
	"sync"

	"github.com/fjod/maison/internal/domain"
)

// Page ids understood by the storefront besides the product categories.
const (
	PageHome    = "home"
	PageJournal = "journal"
	PageProduct = "product"
)

// ViewKind is what the main area renders for a page.
type ViewKind string

const (
	ViewHero          ViewKind = "hero"
	ViewJournal       ViewKind = "journal"
	ViewProductDetail ViewKind = "product_detail"
	ViewCategory      ViewKind = "category"
)

// View is the resolved page switch.
type View struct {
	Page       string          `json:"page"`
	Kind       ViewKind        `json:"kind"`
	Category   string          `json:"category,omitempty"`
	Product    *domain.Product `json:"product,omitempty"`
	ShowFooter bool            `json:"show_footer"`
}

// Resolve maps a page id to the view that renders it. Unknown pages fall back to the hero.
func Resolve(page string, selected *domain.Product) View {
	switch {
	case page == PageHome:
		return View{Page: page, Kind: ViewHero, ShowFooter: true}
	case page == PageJournal:
		return View{Page: page, Kind: ViewJournal}
	case page == PageProduct:
		return View{Page: page, Kind: ViewProductDetail, Product: selected}
	case domain.IsCategory(page):
		return View{Page: page, Kind: ViewCategory, Category: page, ShowFooter: true}
	default:
		return View{Page: page, Kind: ViewHero}
	}
}

// Navigator tracks the current page and selected product of one session.
type Navigator struct {
	mu       sync.Mutex
	page     string
	selected *domain.Product
}

func New() *Navigator {
	return &Navigator{page: PageHome}
}

// SelectCategory switches to page and drops any product selection.
func (n *Navigator) SelectCategory(page string) View {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.page = page
	n.selected = nil
	return Resolve(n.page, nil)
}

func (n *Navigator) SelectProduct(p domain.Product) View {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.page = PageProduct
	n.selected = &p
	return Resolve(n.page, n.selected)
}

// Back leaves the product detail for the women's collection and the journal for home.
func (n *Navigator) Back() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	switch n.page {
	case PageProduct:
		n.page = domain.CategoryWomen
		n.selected = nil
	case PageJournal:
		n.page = PageHome
	}
	return Resolve(n.page, n.selected)
}

func (n *Navigator) View() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Resolve(n.page, n.selected)
}

// Chrome is the cart-dependent part of the page frame.
type Chrome struct {
	BadgeCount       int  `json:"badge_count"`
	ShowFloatingCart bool `json:"show_floating_cart"`
}

func ChromeFor(snap domain.Snapshot) Chrome {
	return Chrome{
		BadgeCount:       snap.ItemCount,
		ShowFloatingCart: len(snap.Items) > 0,
	}
}
