package linker

import "github.com/tinker-fit/checkout/internal/domain"

// MinimizeOrder converts a hydrated order to its storage form: linked
// collections become id arrays, entries whose id cannot be determined are
// dropped, scalar fields copy through untouched. Children are never
// mutated.
func MinimizeOrder(o *domain.Order) domain.StoredOrder {
	return domain.StoredOrder{
		ID:          o.ID,
		Rev:         o.Rev,
		Email:       o.Email,
		Wheelchairs: collectIDs(o.Wheelchairs),
		Discounts:   collectIDs(o.Discounts),
		Subtotal:    o.Subtotal,
		Tax:         o.Tax,
		Shipping:    o.Shipping,
		Total:       o.Total,
		PayMethod:   o.PayMethod,
		Sent:        o.Sent,
		SentDate:    o.SentDate,
		OrderNum:    o.OrderNum,
	}
}

// MinimizeUser converts a hydrated user to its storage form. A nil cart
// minimizes to null, as does a cart whose id cannot be determined.
func MinimizeUser(u *domain.User) domain.StoredUser {
	su := domain.StoredUser{
		ID:           u.ID,
		Rev:          u.Rev,
		FName:        u.FName,
		LName:        u.LName,
		Email:        u.Email,
		Phone:        u.Phone,
		Addr:         u.Addr,
		Addr2:        u.Addr2,
		Orders:       collectIDs(u.Orders),
		SavedDesigns: collectIDs(u.SavedDesigns),
	}
	if u.Cart != nil {
		if id := EntryID[domain.Order, *domain.Order](*u.Cart); id != "" {
			su.Cart = &id
		}
	}
	return su
}

func collectIDs[T any, P interface {
	*T
	domain.Doc
}](refs []domain.Ref[T]) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if id := EntryID[T, P](ref); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
