// Package events declares every topic published by the state engine. Each
// topic has exactly one payload type.
package events

import (
	cartdomain "github.com/dwikikusuma/storefront-state/internal/cart/domain"
	catalogdomain "github.com/dwikikusuma/storefront-state/internal/catalog/domain"
	"github.com/dwikikusuma/storefront-state/internal/eventbus"
	orderdomain "github.com/dwikikusuma/storefront-state/internal/order/domain"
	prefdomain "github.com/dwikikusuma/storefront-state/internal/preference/domain"
	sessiondomain "github.com/dwikikusuma/storefront-state/internal/session/domain"
	wishlistdomain "github.com/dwikikusuma/storefront-state/internal/wishlist/domain"
)

type ProductsLoaded struct {
	Products []catalogdomain.Product
}

type CartUpdated struct {
	Items cartdomain.Cart
}

type OrderCreated struct {
	Order orderdomain.Order
}

type OrderUpdated struct {
	Order orderdomain.Order
}

type WishlistUpdated struct {
	ProductIDs wishlistdomain.Wishlist
}

type UserUpdated struct {
	Session sessiondomain.UserSession
}

type UserLoggedOut struct{}

type ThemeChanged struct {
	Theme prefdomain.Theme
}

var (
	ProductsLoadedTopic  = eventbus.NewTopic[ProductsLoaded]("productsLoaded")
	CartUpdatedTopic     = eventbus.NewTopic[CartUpdated]("cartUpdated")
	OrderCreatedTopic    = eventbus.NewTopic[OrderCreated]("orderCreated")
	OrderUpdatedTopic    = eventbus.NewTopic[OrderUpdated]("orderUpdated")
	WishlistUpdatedTopic = eventbus.NewTopic[WishlistUpdated]("wishlistUpdated")
	UserUpdatedTopic     = eventbus.NewTopic[UserUpdated]("userUpdated")
	UserLoggedOutTopic   = eventbus.NewTopic[UserLoggedOut]("userLoggedOut")
	ThemeChangedTopic    = eventbus.NewTopic[ThemeChanged]("themeChanged")
)
