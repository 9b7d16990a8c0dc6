package domain

// Wishlist is an ordered set of product ids.
type Wishlist []string

func (w Wishlist) Contains(productID string) bool {
	for _, id := range w {
		if id == productID {
			return true
		}
	}
	return false
}

// Toggle adds productID when absent and removes it when present. It reports
// whether the product is in the returned list.
func (w Wishlist) Toggle(productID string) (Wishlist, bool) {
	out := make(Wishlist, 0, len(w)+1)
	found := false
	for _, id := range w {
		if id == productID {
			found = true
			continue
		}
		out = append(out, id)
	}
	if !found {
		out = append(out, productID)
	}
	return out, !found
}

func (w Wishlist) Clone() Wishlist {
	out := make(Wishlist, len(w))
	copy(out, w)
	return out
}

// Validate rejects duplicated ids, which Toggle never produces.
func (w Wishlist) Validate() error {
	seen := make(map[string]struct{}, len(w))
	for _, id := range w {
		if _, ok := seen[id]; ok {
			return errDuplicate(id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

type errDuplicate string

func (e errDuplicate) Error() string {
	return "duplicate wishlist entry " + string(e)
}
