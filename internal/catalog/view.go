package catalog

import (
	"fmt"

	"github.com/UnknownOlympus/bazaar/internal/models"
	"github.com/shopspring/decimal"
)

// View is what the grid shows at one moment.
type View struct {
	Loading        bool                `json:"loading"`
	Skeletons      int                 `json:"skeletons"`
	Cards          []Card              `json:"cards"`
	Search         string              `json:"search"`
	Location       *models.Coordinates `json:"location,omitempty"`
	MyListingsHref string              `json:"my_listings_href"`
}

// Card is one product tile of the grid.
type Card struct {
	ID            string `json:"id"`
	Href          string `json:"href"`
	Image         string `json:"image"`
	Title         string `json:"title"`
	Condition     string `json:"condition"`
	DistanceBadge string `json:"distance_badge,omitempty"`
	Price         string `json:"price"`
	LocationName  string `json:"location_name,omitempty"`
}

// View renders the current state. While a fetch is in flight the grid consists of
// SkeletonCount placeholders, whatever was loaded before.
func (p *Page) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()

	view := View{
		Search:         p.search,
		MyListingsHref: MyListingsPath,
		Cards:          []Card{},
	}
	if p.coords != nil {
		c := *p.coords
		view.Location = &c
	}

	if p.state == FetchInFlight {
		view.Loading = true
		view.Skeletons = SkeletonCount
		return view
	}

	for _, product := range Filter(p.items, p.search) {
		view.Cards = append(view.Cards, NewCard(product, p.currencySymbol))
	}

	return view
}

// NewCard builds the tile of a product.
func NewCard(product models.ProductWithDistance, currencySymbol string) Card {
	card := Card{
		ID:        product.ID,
		Href:      ProductPath(product.ID),
		Image:     PlaceholderImage,
		Title:     product.Title,
		Condition: string(product.Condition),
		Price:     FormatPrice(currencySymbol, product.Price),
	}
	if len(product.Images) > 0 && product.Images[0] != "" {
		card.Image = product.Images[0]
	}
	if product.Distance != nil {
		card.DistanceBadge = FormatDistance(*product.Distance)
	}
	if product.LocationName != nil {
		card.LocationName = *product.LocationName
	}

	return card
}

// FormatDistance renders meters as kilometers with one decimal, e.g. "1.5km".
func FormatDistance(meters float64) string {
	return fmt.Sprintf("%.1fkm", meters/1000)
}

// FormatPrice renders an amount with two decimals after the currency symbol.
func FormatPrice(currencySymbol string, amount decimal.Decimal) string {
	if currencySymbol == "" {
		return amount.StringFixed(2)
	}
	return currencySymbol + " " + amount.StringFixed(2)
}
